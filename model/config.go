package model

// Config 总配置结构
type Config struct {
	TencentCloud TencentCloudConfig `yaml:"tencent_cloud"`
	TTS          TTSConfig          `yaml:"tts"`
	EdgeTTS      EdgeTTSConfig      `yaml:"edge_tts"`
	Audio        AudioConfig        `yaml:"audio"`
	Concurrent   ConcurrentConfig   `yaml:"concurrent"`
	Parser       ParserConfig       `yaml:"parser"`
	Log          LogConfig          `yaml:"log"`
	InputFile    string             `yaml:"input_file"`
	SlidesDir    string             `yaml:"slides_dir"`
}

// TencentCloudConfig 腾讯云配置
type TencentCloudConfig struct {
	SecretID  string `yaml:"secret_id"`
	SecretKey string `yaml:"secret_key"`
	Region    string `yaml:"region"`
}

// TTSConfig 语音合成参数配置
type TTSConfig struct {
	Engine          string  `yaml:"engine"` // 时间轴合成引擎，目前支持 tencent
	VoiceType       int64   `yaml:"voice_type"`
	Volume          int64   `yaml:"volume"`
	Speed           float64 `yaml:"speed"`
	PrimaryLanguage int64   `yaml:"primary_language"`
	SampleRate      int64   `yaml:"sample_rate"`
}

// EdgeTTSConfig Edge TTS配置（仅用于voices列表与单句试听）
type EdgeTTSConfig struct {
	Voice  string `yaml:"voice"`  // 语音名称，如 zh-CN-XiaoyiNeural
	Rate   string `yaml:"rate"`   // 语速，如 +10%, +0%, -10%
	Volume string `yaml:"volume"` // 音量，如 +10%, +0%, -10%
	Pitch  string `yaml:"pitch"`  // 音调，如 +10Hz, +0Hz, -10Hz
}

// AudioConfig 音频输出配置
type AudioConfig struct {
	OutputDir             string  `yaml:"output_dir"`
	TempDir               string  `yaml:"temp_dir"`
	SubtitleFile          string  `yaml:"subtitle_file"`
	PauseSec              float64 `yaml:"pause_sec"`               // 句间停顿（秒）
	ReconcileToleranceSec float64 `yaml:"reconcile_tolerance_sec"` // 字幕总时长与音频总时长允许偏差
}

// ConcurrentConfig 并发配置
type ConcurrentConfig struct {
	MaxWorkers      int `yaml:"max_workers"`
	RateLimit       int `yaml:"rate_limit"`
	SynthTimeoutSec int `yaml:"synth_timeout_sec"` // 单句合成超时（秒），超时按合成失败处理
}

// ParserConfig 讲稿解析配置
type ParserConfig struct {
	// 最短句子长度（rune数）。既是空格分句的平均长度阈值，也是碎句合并阈值。
	// 经验值，对很短的合法短句可能误判，可按语料调整。
	MinSentenceLen int `yaml:"min_sentence_len"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level       string `yaml:"level"`       // debug/info/warn/error
	Environment string `yaml:"environment"` // prod输出JSON，其余输出文本
	File        string `yaml:"file"`        // 非空时写入轮转日志文件
}
