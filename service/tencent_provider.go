package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/common"
	"github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/common/profile"
	tts "github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/tts/v20190823"

	"slidecast/model"
)

// TencentSynthesizer 腾讯云长文本TTS引擎。
// 以wav编码请求任务，下载结果后解码为PCM采样，供时间轴流水线使用。
type TencentSynthesizer struct {
	client *tts.Client
	config *model.Config
}

// NewTencentSynthesizer 创建腾讯云合成引擎
func NewTencentSynthesizer(secretID, secretKey, region string, config *model.Config) (*TencentSynthesizer, error) {
	if secretID == "" || secretID == "your_secret_id" {
		return nil, fmt.Errorf("腾讯云SecretID未配置")
	}
	if secretKey == "" || secretKey == "your_secret_key" {
		return nil, fmt.Errorf("腾讯云SecretKey未配置")
	}
	if region == "" {
		return nil, fmt.Errorf("腾讯云Region未配置")
	}

	credential := common.NewCredential(secretID, secretKey)

	cpf := profile.NewClientProfile()
	cpf.HttpProfile.Endpoint = "tts.tencentcloudapi.com"

	client, err := tts.NewClient(credential, region, cpf)
	if err != nil {
		return nil, fmt.Errorf("创建腾讯云TTS客户端失败: %w", err)
	}

	return &TencentSynthesizer{client: client, config: config}, nil
}

// Name 引擎名称
func (ts *TencentSynthesizer) Name() string {
	return "TencentCloud"
}

// SampleRate 引擎宣告的取样率
func (ts *TencentSynthesizer) SampleRate() int {
	if ts.config.TTS.SampleRate > 0 {
		return int(ts.config.TTS.SampleRate)
	}
	return 16000
}

// Synthesize 合成单句：创建任务 → 轮询状态 → 下载wav → 解码为采样
func (ts *TencentSynthesizer) Synthesize(ctx context.Context, text string, speed float64) ([]float32, int, error) {
	taskID, err := ts.createTask(text, speed)
	if err != nil {
		return nil, 0, err
	}

	audioURL, err := ts.waitForTask(ctx, taskID)
	if err != nil {
		return nil, 0, err
	}

	raw, err := ts.downloadAudio(ctx, audioURL)
	if err != nil {
		return nil, 0, err
	}

	samples, sampleRate, err := DecodeWav(raw)
	if err != nil {
		return nil, 0, fmt.Errorf("解码合成结果失败: %w", err)
	}
	if len(samples) == 0 {
		// 空采样按合成失败处理，不允许静默返回空结果
		return nil, 0, fmt.Errorf("合成结果为空 (文本: %.30s)", text)
	}

	return samples, sampleRate, nil
}

// createTask 创建长文本合成任务
func (ts *TencentSynthesizer) createTask(text string, speed float64) (string, error) {
	voiceType := ts.config.TTS.VoiceType
	if voiceType == 0 {
		voiceType = 101008 // 智琪 - 女声
	}
	volume := ts.config.TTS.Volume
	if volume == 0 {
		volume = 5
	}
	if speed == 0 {
		speed = 1.0
	}
	primaryLanguage := ts.config.TTS.PrimaryLanguage
	if primaryLanguage == 0 {
		primaryLanguage = 1
	}

	request := tts.NewCreateTtsTaskRequest()
	request.Text = common.StringPtr(text)
	request.Volume = common.Float64Ptr(float64(volume))
	request.Speed = common.Float64Ptr(speed)
	request.VoiceType = common.Int64Ptr(voiceType)
	request.PrimaryLanguage = common.Int64Ptr(primaryLanguage)
	request.SampleRate = common.Uint64Ptr(uint64(ts.SampleRate()))
	// 固定wav编码，流水线需要能解码的PCM
	request.Codec = common.StringPtr("wav")

	response, err := ts.client.CreateTtsTask(request)
	if err != nil {
		return "", fmt.Errorf("调用腾讯云TTS失败: %w", err)
	}
	if response.Response == nil || response.Response.Data == nil || response.Response.Data.TaskId == nil {
		return "", fmt.Errorf("腾讯云TTS返回缺少任务ID")
	}

	return *response.Response.Data.TaskId, nil
}

// waitForTask 轮询任务状态直到完成、失败或ctx取消
func (ts *TencentSynthesizer) waitForTask(ctx context.Context, taskID string) (string, error) {
	const checkInterval = 2 * time.Second

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		request := tts.NewDescribeTtsTaskStatusRequest()
		request.TaskId = common.StringPtr(taskID)

		response, err := ts.client.DescribeTtsTaskStatus(request)
		if err != nil {
			return "", fmt.Errorf("查询TTS任务状态失败: %w", err)
		}
		if response.Response == nil || response.Response.Data == nil || response.Response.Data.Status == nil {
			return "", fmt.Errorf("腾讯云TTS状态响应缺少数据")
		}
		data := response.Response.Data

		switch *data.Status {
		case 2: // 任务完成
			if data.ResultUrl == nil || *data.ResultUrl == "" {
				return "", fmt.Errorf("任务完成但没有获取到音频URL")
			}
			return *data.ResultUrl, nil

		case 3: // 任务失败
			errMsg := ""
			if data.ErrorMsg != nil {
				errMsg = *data.ErrorMsg
			}
			return "", fmt.Errorf("TTS任务失败: %s", errMsg)

		case 0, 1: // 排队中或处理中
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(checkInterval):
			}

		default:
			return "", fmt.Errorf("未知任务状态: %d", *data.Status)
		}
	}
}

// downloadAudio 下载合成结果
func (ts *TencentSynthesizer) downloadAudio(ctx context.Context, audioURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, audioURL, nil)
	if err != nil {
		return nil, fmt.Errorf("构造下载请求失败: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("下载音频失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("下载音频失败，HTTP状态码: %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取音频数据失败: %w", err)
	}
	return raw, nil
}
