/*
Copyright © 2025 Slidecast Contributors
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"slidecast/service"
)

var (
	srtConfigFile string
	srtOutputDir  string
	srtFile       string
)

// srtCmd represents the srt command
var srtCmd = &cobra.Command{
	Use:   "srt",
	Short: "从项目清单重新生成SRT字幕",
	Long: `读取输出目录下的 manifest.json，按记录的时间轴重新生成SRT字幕。

不做任何合成。适合字幕文件被误删或需要输出到其他路径的场景。

示例:
  slidecast srt                          # 重新生成到配置指定的位置
  slidecast srt -f custom.srt            # 输出到指定文件`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runSRT(); err != nil {
			fmt.Printf("错误: %v\n", err)
		}
	},
}

func runSRT() error {
	config, err := loadConfig(srtConfigFile)
	if err != nil {
		return err
	}
	if srtOutputDir != "" {
		config.Audio.OutputDir = srtOutputDir
	}

	manifest, err := service.LoadManifest(config.Audio.OutputDir)
	if err != nil {
		return err
	}

	subtitleFile := srtFile
	if subtitleFile == "" {
		subtitleFile = config.Audio.SubtitleFile
	}
	if subtitleFile == "" {
		subtitleFile = config.Audio.OutputDir + "/narration.srt"
	}

	if err := service.SaveSRT(manifest.Script, subtitleFile); err != nil {
		return err
	}

	fmt.Printf("✅ 字幕已生成: %s（%d 个句子）\n", subtitleFile, manifest.Script.TotalSentences())
	return nil
}

func init() {
	rootCmd.AddCommand(srtCmd)

	srtCmd.Flags().StringVarP(&srtConfigFile, "config", "c", "", "配置文件路径（默认自动查找config.yaml）")
	srtCmd.Flags().StringVarP(&srtOutputDir, "output", "o", "", "输出目录路径（默认为./output）")
	srtCmd.Flags().StringVarP(&srtFile, "file", "f", "", "字幕输出路径（默认取配置中的subtitle_file）")
}
