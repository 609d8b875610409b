/*
slidecast - 投影片讲稿语音合成工具

Copyright © 2025 Slidecast Contributors
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"slidecast/model"
	"slidecast/pkg/logger"
	"slidecast/service"
)

// 版本信息
var (
	appVersion   = "dev"
	appBuildTime = "unknown"
	appGitCommit = "unknown"
)

// SetVersionInfo 设置版本信息
func SetVersionInfo(version, buildTime, gitCommit string) {
	appVersion = version
	appBuildTime = buildTime
	appGitCommit = gitCommit

	rootCmd.Version = getVersionString()
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "slidecast",
	Short: "🎬 投影片讲稿语音合成工具 - 讲稿转定时音频与同步字幕",
	Long: `🎬 slidecast 投影片讲稿语音合成工具

把投影片讲稿文本转换成逐页定时的语音与同步SRT字幕。

✨ 核心特色：
  📄 讲稿解析      - 自动识别页面标记与分句
  🚀 并发合成      - 多worker并行调用TTS引擎
  ⏱  精确时间轴    - 字幕与音频取样级对齐
  🔁 单句重合成    - 修改一句不用重跑整份讲稿
  📊 实时进度      - 详细处理状态显示

🚀 快速开始：
  # 初始化配置（新用户）
  slidecast init

  # 预览讲稿解析结果
  slidecast parse -i script.txt

  # 合成音频与字幕
  slidecast synth -i script.txt

  # 查看可用语音
  slidecast voices --list zh`,
	Version: getVersionString(),
}

// getVersionString 获取版本字符串
func getVersionString() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", appVersion, appGitCommit, appBuildTime)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// loadConfig 加载配置并初始化日志，所有子命令共用
func loadConfig(configFile string) (*model.Config, error) {
	created, err := service.CheckAndInitConfig(configFile)
	if err != nil {
		return nil, err
	}
	if created {
		return nil, fmt.Errorf("请先编辑配置文件后再运行")
	}

	config, err := service.LoadConfig(configFile)
	if err != nil {
		return nil, err
	}

	if _, err := logger.Init(logger.Config{
		Level:       config.Log.Level,
		Environment: config.Log.Environment,
		File:        config.Log.File,
	}); err != nil {
		return nil, fmt.Errorf("初始化日志失败: %w", err)
	}

	return config, nil
}

func init() {
	// 设置版本模板
	rootCmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s" .Version}}
`)

	// 全局标志
	rootCmd.PersistentFlags().BoolP("help", "h", false, "显示帮助信息")
	rootCmd.PersistentFlags().BoolP("version", "v", false, "显示版本信息")

	rootCmd.PersistentFlags().MarkHidden("help")
}
