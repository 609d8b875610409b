/*
Copyright © 2025 Slidecast Contributors
*/
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"slidecast/service"
)

var (
	synthConfigFile string
	synthInputFile  string
	synthOutputDir  string
	synthSlidesDir  string
)

// synthCmd represents the synth command
var synthCmd = &cobra.Command{
	Use:   "synth",
	Short: "合成讲稿音频与同步字幕（默认并发模式）",
	Long: `解析讲稿后并发合成全部句子，生成逐页音频、SRT字幕与项目清单。

合成失败的句子以1秒静音替代，不会中断整体流程。
输出目录下会生成 manifest.json，供后续 regen / srt 命令使用。

示例:
  slidecast synth                               # 使用默认配置
  slidecast synth -i script.txt                 # 指定讲稿文件
  slidecast synth -i script.txt -o ./out        # 指定讲稿和输出目录
  slidecast synth --config custom.yaml          # 使用自定义配置`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runSynth(cmd.Context()); err != nil {
			fmt.Printf("错误: %v\n", err)
		}
	},
}

func runSynth(ctx context.Context) error {
	config, err := loadConfig(synthConfigFile)
	if err != nil {
		return err
	}

	if synthInputFile != "" {
		config.InputFile = synthInputFile
	}
	if synthOutputDir != "" {
		config.Audio.OutputDir = synthOutputDir
	}
	if synthSlidesDir != "" {
		config.SlidesDir = synthSlidesDir
	}

	// 解析讲稿
	parser := service.NewScriptParser(config.Parser.MinSentenceLen)
	script, err := parser.ParseScriptFile(config.InputFile)
	if err != nil {
		return err
	}

	slideCount := 0
	if config.SlidesDir != "" {
		if slideCount, err = service.CountSlideImages(config.SlidesDir); err != nil {
			return err
		}
	}
	for _, w := range service.ValidateScript(script, slideCount) {
		fmt.Printf("⚠️  %s\n", w)
	}

	// 创建合成引擎
	synth, err := service.CreateSynthesizer(config)
	if err != nil {
		return err
	}

	fmt.Printf("配置信息:\n")
	fmt.Printf("- 输入文件: %s\n", config.InputFile)
	fmt.Printf("- 合成引擎: %s\n", synth.Name())
	fmt.Printf("- 页面数: %d\n", len(script.Pages))
	fmt.Printf("- 句子数: %d\n", script.TotalSentences())
	fmt.Printf("- 句间停顿: %.2f秒\n", config.Audio.PauseSec)
	fmt.Printf("- 输出目录: %s\n", config.Audio.OutputDir)
	fmt.Printf("- 最大并发数: %d\n", config.Concurrent.MaxWorkers)
	fmt.Printf("- 速率限制: %d次/秒\n", config.Concurrent.RateLimit)
	fmt.Println()

	// 两阶段流水线：并发合成 + 顺序时间轴
	pipeline := service.NewNarrationPipeline(config, synth)
	pageAudios, err := pipeline.ProcessScript(ctx, script, config.Audio.OutputDir,
		func(completed, total int, message string) {
			fmt.Printf("\r🎵 %s", message)
			if completed == total {
				fmt.Println()
			}
		})
	if err != nil {
		return fmt.Errorf("合成失败: %w", err)
	}

	sampleRate := pipeline.ReferenceRate()

	// 生成字幕
	subtitleFile := config.Audio.SubtitleFile
	if subtitleFile == "" {
		subtitleFile = config.Audio.OutputDir + "/narration.srt"
	}
	if err := service.SaveSRT(script, subtitleFile); err != nil {
		return err
	}

	// 保存项目清单
	manifest := service.NewManifest(pipeline.RunID(), synth.Name(), sampleRate,
		config.Audio.PauseSec, script, pageAudios)
	if err := manifest.Save(config.Audio.OutputDir); err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("✅ 合成完成！\n")
	fmt.Printf("- 页面音频: %d 个\n", len(pageAudios))
	fmt.Printf("- 总时长: %.2f秒\n", script.TotalDuration())
	fmt.Printf("- 字幕文件: %s\n", subtitleFile)
	fmt.Printf("- 项目清单: %s/%s\n", config.Audio.OutputDir, service.ManifestFile)
	return nil
}

func init() {
	rootCmd.AddCommand(synthCmd)

	synthCmd.Flags().StringVarP(&synthConfigFile, "config", "c", "", "配置文件路径（默认自动查找config.yaml）")
	synthCmd.Flags().StringVarP(&synthInputFile, "input", "i", "", "讲稿文本文件路径")
	synthCmd.Flags().StringVarP(&synthOutputDir, "output", "o", "", "输出目录路径（默认为./output）")
	synthCmd.Flags().StringVarP(&synthSlidesDir, "slides", "s", "", "投影片图片目录（用于页数核对）")
}
