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
	regenConfigFile string
	regenOutputDir  string
	regenPage       int
	regenSentence   int
	regenText       string
)

// regenCmd represents the regen command
var regenCmd = &cobra.Command{
	Use:   "regen",
	Short: "重新合成单个句子并更新时间轴",
	Long: `从项目清单中找到指定句子，重新合成后重建所在页面的音频，
并重走整份讲稿的时间轴，最后更新字幕与清单。

页码与句号都从1开始，与 parse 命令的预览输出一致。

示例:
  slidecast regen -p 2 -n 3                          # 重新合成第2页第3句
  slidecast regen -p 2 -n 3 -t "修改后的句子内容"     # 同时替换句子文本`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runRegen(cmd.Context()); err != nil {
			fmt.Printf("错误: %v\n", err)
		}
	},
}

func runRegen(ctx context.Context) error {
	config, err := loadConfig(regenConfigFile)
	if err != nil {
		return err
	}
	if regenOutputDir != "" {
		config.Audio.OutputDir = regenOutputDir
	}
	if regenPage < 1 || regenSentence < 1 {
		return fmt.Errorf("请用 -p 和 -n 指定页码与句号（从1开始）")
	}

	manifest, err := service.LoadManifest(config.Audio.OutputDir)
	if err != nil {
		return err
	}
	script := manifest.Script

	// 按讲稿声明的页码找结构位置
	pageIndex := -1
	for i, p := range script.Pages {
		if p.PageNumber == regenPage {
			pageIndex = i
			break
		}
	}
	if pageIndex < 0 {
		return fmt.Errorf("清单中没有第%d页", regenPage)
	}
	sentence := script.GetSentence(pageIndex, regenSentence-1)
	if sentence == nil {
		return fmt.Errorf("第%d页没有第%d句", regenPage, regenSentence)
	}

	synth, err := service.CreateSynthesizer(config)
	if err != nil {
		return err
	}

	fmt.Printf("重新合成 第%d页 第%d句: %s\n", regenPage, regenSentence, sentence.Text)

	// 清单记录的停顿与本次配置保持一致，避免编辑后时间轴漂移
	config.Audio.PauseSec = manifest.PauseSec

	pipeline := service.NewNarrationPipeline(config, synth)
	pageAudio, err := pipeline.ResynthesizeSentence(ctx, script, pageIndex, regenSentence-1,
		regenText, config.Audio.OutputDir)
	if err != nil {
		return err
	}

	manifest.UpdatePage(pageAudio)

	// 字幕与清单一起刷新
	subtitleFile := config.Audio.SubtitleFile
	if subtitleFile == "" {
		subtitleFile = config.Audio.OutputDir + "/narration.srt"
	}
	if err := service.SaveSRT(script, subtitleFile); err != nil {
		return err
	}
	if err := manifest.Save(config.Audio.OutputDir); err != nil {
		return err
	}

	fmt.Printf("✅ 重新合成完成，页面音频: %s (%.2f秒)\n", pageAudio.AudioPath, pageAudio.Duration)
	return nil
}

func init() {
	rootCmd.AddCommand(regenCmd)

	regenCmd.Flags().StringVarP(&regenConfigFile, "config", "c", "", "配置文件路径（默认自动查找config.yaml）")
	regenCmd.Flags().StringVarP(&regenOutputDir, "output", "o", "", "输出目录路径（默认为./output）")
	regenCmd.Flags().IntVarP(&regenPage, "page", "p", 0, "页码（从1开始）")
	regenCmd.Flags().IntVarP(&regenSentence, "sentence", "n", 0, "句号（从1开始）")
	regenCmd.Flags().StringVarP(&regenText, "text", "t", "", "替换的句子文本（留空则用原文重新合成）")
}
