package service

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/difyz9/edge-tts-go/pkg/communicate"
	"github.com/difyz9/edge-tts-go/pkg/types"
	"github.com/difyz9/edge-tts-go/pkg/voices"

	"slidecast/model"
)

// Edge TTS 只输出压缩音频，无法进入取样级时间轴流水线，
// 这里仅用于音色目录查询和单句试听。

// ListEdgeVoices 列出可用的 Edge TTS 语音
func ListEdgeVoices(languageFilter string) error {
	ctx := context.Background()

	fmt.Println("正在获取Edge TTS语音列表...")

	voiceList, err := voices.ListVoices(ctx, "")
	if err != nil {
		return fmt.Errorf("获取语音列表失败: %w", err)
	}

	// 过滤语音（如果指定了语言）
	var filteredVoices []types.Voice
	if languageFilter != "" {
		languageFilter = strings.ToLower(languageFilter)
		for _, voice := range voiceList {
			locale := strings.ToLower(voice.Locale)
			if strings.HasPrefix(locale, languageFilter) {
				filteredVoices = append(filteredVoices, voice)
			}
		}
		fmt.Printf("\n找到 %d 个 '%s' 语言的语音:\n\n", len(filteredVoices), languageFilter)
	} else {
		filteredVoices = voiceList
		fmt.Printf("\n找到 %d 个可用语音:\n\n", len(filteredVoices))
	}

	if len(filteredVoices) == 0 {
		return fmt.Errorf("没有找到匹配的语音")
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "音色\t区域")
	fmt.Fprintln(w, "--------\t--------")
	for _, voice := range filteredVoices {
		fmt.Fprintf(w, "%s\t%s\n", voice.ShortName, voice.Locale)
	}
	w.Flush()
	fmt.Println()

	return nil
}

// PreviewSentence 用 Edge TTS 合成单句试听音频（mp3），返回输出路径
func PreviewSentence(ctx context.Context, config *model.Config, text, outputPath string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("试听文本不可为空")
	}

	voice := config.EdgeTTS.Voice
	if voice == "" {
		voice = "zh-CN-XiaoyiNeural" // 默认中文女声
	}
	rate := config.EdgeTTS.Rate
	if rate == "" {
		rate = "+0%"
	}
	volume := config.EdgeTTS.Volume
	if volume == "" {
		volume = "+0%"
	}
	pitch := config.EdgeTTS.Pitch
	if pitch == "" {
		pitch = "+0Hz"
	}

	comm, err := communicate.NewCommunicate(
		text,
		voice,
		rate,   // 语速
		volume, // 音量
		pitch,  // 音调
		"",     // proxy
		10,     // connectTimeout
		60,     // receiveTimeout
	)
	if err != nil {
		return "", fmt.Errorf("创建Edge TTS通信失败: %w", err)
	}

	if outputPath == "" {
		outputPath = "preview.mp3"
	}
	if err := comm.Save(ctx, outputPath, ""); err != nil {
		return "", fmt.Errorf("保存试听音频失败: %w", err)
	}

	return outputPath, nil
}
