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
	voicesConfigFile string
	voicesLang       string
	voicesPreview    string
	voicesOut        string
)

// voicesCmd represents the voices command
var voicesCmd = &cobra.Command{
	Use:   "voices",
	Short: "列出Edge TTS可用语音或试听单句",
	Long: `查询Edge TTS的语音目录，或用指定语音试听一句话（mp3）。

试听不进入时间轴流水线，仅用于挑选音色。

示例:
  slidecast voices                              # 列出全部语音
  slidecast voices -l zh                        # 只看中文语音
  slidecast voices --preview "你好世界"          # 试听一句话
  slidecast voices --preview "你好" --out t.mp3  # 指定试听输出文件`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runVoices(cmd); err != nil {
			fmt.Printf("错误: %v\n", err)
		}
	},
}

func runVoices(cmd *cobra.Command) error {
	if voicesPreview != "" {
		config, err := loadConfig(voicesConfigFile)
		if err != nil {
			return err
		}
		path, err := service.PreviewSentence(cmd.Context(), config, voicesPreview, voicesOut)
		if err != nil {
			return err
		}
		fmt.Printf("✅ 试听音频已保存: %s\n", path)
		return nil
	}

	return service.ListEdgeVoices(voicesLang)
}

func init() {
	rootCmd.AddCommand(voicesCmd)

	voicesCmd.Flags().StringVarP(&voicesConfigFile, "config", "c", "", "配置文件路径（默认自动查找config.yaml）")
	voicesCmd.Flags().StringVarP(&voicesLang, "list", "l", "", "按语言前缀过滤，如 zh, en, ja")
	voicesCmd.Flags().StringVar(&voicesPreview, "preview", "", "试听文本")
	voicesCmd.Flags().StringVar(&voicesOut, "out", "", "试听音频输出路径（默认preview.mp3）")
}
