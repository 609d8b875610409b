package service

import (
	"context"
	"fmt"

	"slidecast/model"
)

// Synthesizer 语音合成引擎接口。
// Synthesize 必须可被多个goroutine同时调用；返回空采样视为失败，
// 实现应返回error而不是静默给出空结果。
type Synthesizer interface {
	// Synthesize 合成单句，返回 (采样, 取样率)
	Synthesize(ctx context.Context, text string, speed float64) ([]float32, int, error)

	// SampleRate 引擎宣告的取样率。时间轴计算以首个成功结果的实际值为准，
	// 这里只作全部失败时的静音替代依据。
	SampleRate() int

	// Name 引擎名称
	Name() string
}

// CreateSynthesizer 根据配置创建语音合成引擎
func CreateSynthesizer(config *model.Config) (Synthesizer, error) {
	switch config.TTS.Engine {
	case "", "tencent", "tencentcloud":
		return NewTencentSynthesizer(
			config.TencentCloud.SecretID,
			config.TencentCloud.SecretKey,
			config.TencentCloud.Region,
			config,
		)
	default:
		return nil, fmt.Errorf("不支持的合成引擎: %s（时间轴合成需要可解码为PCM的引擎）", config.TTS.Engine)
	}
}
