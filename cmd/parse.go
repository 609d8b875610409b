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
	parseConfigFile string
	parseInputFile  string
	parseSlidesDir  string
)

// parseCmd represents the parse command
var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "解析讲稿并预览分页分句结果",
	Long: `解析讲稿文本，显示识别出的页面与句子，不做任何语音合成。

用于在正式合成前确认页面标记与分句是否符合预期。

示例:
  slidecast parse -i script.txt                 # 预览解析结果
  slidecast parse -i script.txt -s ./slides     # 同时核对投影片页数`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runParse(); err != nil {
			fmt.Printf("错误: %v\n", err)
		}
	},
}

func runParse() error {
	config, err := loadConfig(parseConfigFile)
	if err != nil {
		return err
	}

	if parseInputFile != "" {
		config.InputFile = parseInputFile
	}
	if parseSlidesDir != "" {
		config.SlidesDir = parseSlidesDir
	}

	parser := service.NewScriptParser(config.Parser.MinSentenceLen)
	script, err := parser.ParseScriptFile(config.InputFile)
	if err != nil {
		return err
	}

	fmt.Print(service.FormatScriptPreview(script))
	fmt.Println()

	// 配置了投影片目录时顺带核对页数
	slideCount := 0
	if config.SlidesDir != "" {
		slideCount, err = service.CountSlideImages(config.SlidesDir)
		if err != nil {
			return err
		}
		fmt.Printf("投影片图片: %d 张\n", slideCount)
	}

	warnings := service.ValidateScript(script, slideCount)
	if len(warnings) == 0 {
		fmt.Println("✅ 讲稿检查通过")
	} else {
		fmt.Printf("⚠️  发现 %d 个问题:\n", len(warnings))
		for _, w := range warnings {
			fmt.Printf("  - %s\n", w)
		}
	}

	return nil
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseConfigFile, "config", "c", "", "配置文件路径（默认自动查找config.yaml）")
	parseCmd.Flags().StringVarP(&parseInputFile, "input", "i", "", "讲稿文本文件路径")
	parseCmd.Flags().StringVarP(&parseSlidesDir, "slides", "s", "", "投影片图片目录（用于页数核对）")
}
