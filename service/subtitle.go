package service

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"slidecast/model"
)

// SRT字幕生成。字幕条目直接从讲稿时间轴派生，
// 不自己累计时间，时间轴是唯一的真值来源。

// FormatSRTTime 秒数格式化为 SRT 时间戳 HH:MM:SS,mmm。
// 负数按0处理；毫秒四舍五入后截到999，不向上进位秒。
func FormatSRTTime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}

	total := int(seconds)
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60

	millis := int(math.Round((seconds - float64(total)) * 1000))
	if millis > 999 {
		millis = 999
	}

	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
}

// GenerateSRT 从讲稿时间轴生成SRT文本。
// 时长≤0的句子跳过，编号对保留的条目从1连续递增。
func GenerateSRT(script *model.Script) string {
	var entries []string
	index := 1

	for _, fs := range script.Flatten() {
		sentence := fs.Sentence
		if sentence.DurationSec <= 0 {
			continue
		}

		start := FormatSRTTime(sentence.StartSec)
		end := FormatSRTTime(sentence.StartSec + sentence.DurationSec)

		entries = append(entries, fmt.Sprintf("%d\n%s --> %s\n%s\n", index, start, end, sentence.Text))
		index++
	}

	return strings.Join(entries, "\n")
}

// SaveSRT 保存SRT字幕文件，带UTF-8 BOM以兼容部分播放器
func SaveSRT(script *model.Script, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("创建字幕目录失败: %w", err)
		}
	}

	content := "\ufeff" + GenerateSRT(script)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("写入字幕文件失败: %w", err)
	}
	return nil
}
