/*
slidecast - 投影片讲稿语音合成工具
把讲稿文本转换成逐页定时的语音与同步SRT字幕

Copyright © 2025 Slidecast Contributors
*/
package main

import (
	"slidecast/cmd"
)

// 版本信息，在编译时通过ldflags注入
var (
	version   = "dev"
	buildTime = "unknown"
	gitCommit = "unknown"
)

func main() {
	// 设置版本信息到cmd包
	cmd.SetVersionInfo(version, buildTime, gitCommit)

	// 执行根命令
	cmd.Execute()
}
