/*
Copyright © 2025 Slidecast Contributors
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"slidecast/service"
)

var initConfigFile string

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "初始化配置文件",
	Long: `在当前目录创建默认配置文件 config.yaml。

示例:
  slidecast init                    # 创建 config.yaml
  slidecast init -c custom.yaml     # 创建自定义路径的配置文件`,
	Run: func(cmd *cobra.Command, args []string) {
		created, err := service.CheckAndInitConfig(initConfigFile)
		if err != nil {
			fmt.Printf("错误: %v\n", err)
			return
		}
		if !created {
			path := initConfigFile
			if path == "" {
				path = service.DefaultConfigFile
			}
			fmt.Printf("配置文件已存在: %s\n", path)
		}

		scriptCreated, err := service.WriteSampleScript("script.txt")
		if err != nil {
			fmt.Printf("错误: %v\n", err)
			return
		}
		if scriptCreated {
			fmt.Println("✅ 已创建示例讲稿: script.txt")
		}
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().StringVarP(&initConfigFile, "config", "c", "", "配置文件路径（默认config.yaml）")
}
