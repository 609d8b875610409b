package service

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"slidecast/model"
)

// DefaultConfigFile 默认配置文件名
const DefaultConfigFile = "config.yaml"

// defaultConfigContent 默认配置文件内容
const defaultConfigContent = `# slidecast 配置文件
# 讲稿 → 定时语音 + 同步字幕

# 腾讯云API配置（时间轴合成引擎）
tencent_cloud:
  secret_id: "your_secret_id"
  secret_key: "your_secret_key"
  region: "ap-beijing"

# 语音合成配置
tts:
  engine: "tencent"      # 时间轴合成引擎
  voice_type: 101008     # 音色ID：101008-智琪(女声)
  volume: 5              # 音量大小 (0-10)
  speed: 1.0             # 语速 (0.6-1.5)
  primary_language: 1    # 主语言：1-中文，2-英文
  sample_rate: 16000     # 取样率

# Edge TTS配置（voices列表与单句试听）
edge_tts:
  voice: "zh-CN-XiaoyiNeural"
  rate: "+0%"
  volume: "+0%"
  pitch: "+0Hz"

# 音频输出配置
audio:
  output_dir: "output"
  temp_dir: "temp"
  subtitle_file: "output/narration.srt"
  pause_sec: 0.5               # 句间停顿（秒）
  reconcile_tolerance_sec: 0.1 # 字幕总时长与音频总时长允许偏差

# 并发配置
concurrent:
  max_workers: 4       # 同时合成的worker数
  rate_limit: 5        # 每秒最大请求数
  synth_timeout_sec: 120 # 单句合成超时（秒）

# 讲稿解析配置
parser:
  min_sentence_len: 4  # 最短句子长度（字数）

# 日志配置
log:
  level: "info"
  environment: "dev"
  file: ""

# 输入文件路径
input_file: "script.txt"

# 投影片图片目录（用于页数核对）
slides_dir: ""
`

// sampleScriptContent 示例讲稿，展示支持的页面标记与分句格式
const sampleScriptContent = `第1頁：
大家好，歡迎收看本期簡報。
今天我們要介紹的主題是自動語音合成。

Page2: 這是英文頁面標記的範例 同一行可以放多個句子

【第三頁】
中文數字頁碼也可以。最後感謝大家的收看！
`

// WriteSampleScript 写出示例讲稿文件，已存在时不覆盖。返回是否新建。
func WriteSampleScript(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("检查讲稿文件失败: %w", err)
	}

	if err := os.WriteFile(path, []byte(sampleScriptContent), 0644); err != nil {
		return false, fmt.Errorf("创建示例讲稿失败: %w", err)
	}
	return true, nil
}

// CheckAndInitConfig 检查配置文件是否存在，不存在则创建默认配置。
// 返回是否新建了配置文件。
func CheckAndInitConfig(configFile string) (bool, error) {
	if configFile == "" {
		configFile = DefaultConfigFile
	}

	if _, err := os.Stat(configFile); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("检查配置文件失败: %w", err)
	}

	if err := os.WriteFile(configFile, []byte(defaultConfigContent), 0644); err != nil {
		return false, fmt.Errorf("创建默认配置文件失败: %w", err)
	}

	fmt.Printf("✅ 已创建默认配置文件: %s\n", configFile)
	fmt.Println("📝 请编辑配置文件，填入您的腾讯云API密钥：")
	fmt.Println("   - secret_id: 您的腾讯云SecretId")
	fmt.Println("   - secret_key: 您的腾讯云SecretKey")
	fmt.Println()

	return true, nil
}

// LoadConfig 读取并解析配置文件，对缺省值做兜底
func LoadConfig(configFile string) (*model.Config, error) {
	if configFile == "" {
		configFile = DefaultConfigFile
	}

	data, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	var config model.Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	applyDefaults(&config)
	return &config, nil
}

// applyDefaults 给未填写的配置项补默认值
func applyDefaults(config *model.Config) {
	if config.TTS.Speed == 0 {
		config.TTS.Speed = 1.0
	}
	if config.TTS.SampleRate == 0 {
		config.TTS.SampleRate = 16000
	}
	if config.Audio.OutputDir == "" {
		config.Audio.OutputDir = "output"
	}
	if config.Audio.PauseSec == 0 {
		config.Audio.PauseSec = 0.5
	}
	if config.Audio.ReconcileToleranceSec == 0 {
		config.Audio.ReconcileToleranceSec = 0.1
	}
	if config.Concurrent.MaxWorkers == 0 {
		config.Concurrent.MaxWorkers = 4
	}
	if config.Concurrent.RateLimit == 0 {
		config.Concurrent.RateLimit = 5
	}
	if config.Parser.MinSentenceLen == 0 {
		config.Parser.MinSentenceLen = DefaultMinSentenceLen
	}
	if config.Log.Level == "" {
		config.Log.Level = "info"
	}
}
