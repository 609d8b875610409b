package service

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
)

// 音频工具：float32 采样缓冲与 16-bit PCM 单声道 WAV 之间的转换。
// 流水线所有中间产物都用这个格式，页面时长以写盘后读回的值为准。

// GenerateSilence 产生指定长度的静音
func GenerateSilence(durationSec float64, sampleRate int) []float32 {
	numSamples := int(durationSec * float64(sampleRate))
	if numSamples < 0 {
		numSamples = 0
	}
	return make([]float32, numSamples)
}

// CalculateDuration 计算采样缓冲的秒数
func CalculateDuration(samples []float32, sampleRate int) float64 {
	if sampleRate <= 0 {
		return 0
	}
	return float64(len(samples)) / float64(sampleRate)
}

// ConcatenateAudio 串接多段音频，相邻段之间插入静音。
// 静音只出现在段与段之间，开头结尾都没有。
func ConcatenateAudio(segments [][]float32, pauseSec float64, sampleRate int) []float32 {
	if len(segments) == 0 {
		return nil
	}

	silence := GenerateSilence(pauseSec, sampleRate)

	total := 0
	for _, seg := range segments {
		total += len(seg)
	}
	total += len(silence) * (len(segments) - 1)

	out := make([]float32, 0, total)
	for i, seg := range segments {
		out = append(out, seg...)
		if i < len(segments)-1 {
			out = append(out, silence...)
		}
	}
	return out
}

// SaveWav 将 float32 采样保存为 16-bit PCM 单声道 WAV
func SaveWav(path string, samples []float32, sampleRate int) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("创建音频目录失败: %w", err)
	}

	dataSize := len(samples) * 2
	buf := bytes.NewBuffer(make([]byte, 0, 44+dataSize))

	// RIFF头
	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, uint32(36+dataSize))
	buf.WriteString("WAVE")

	// fmt块: PCM, 单声道, 16-bit
	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16))
	binary.Write(buf, binary.LittleEndian, uint16(1))
	binary.Write(buf, binary.LittleEndian, uint16(1))
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate*2))
	binary.Write(buf, binary.LittleEndian, uint16(2))
	binary.Write(buf, binary.LittleEndian, uint16(16))

	// data块
	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, uint32(dataSize))
	for _, s := range samples {
		v := s * 32767
		if v > 32767 {
			v = 32767
		} else if v < -32768 {
			v = -32768
		}
		binary.Write(buf, binary.LittleEndian, int16(v))
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("写入WAV文件失败: %w", err)
	}
	return nil
}

// wavInfo data块内容与格式参数
type wavInfo struct {
	sampleRate int
	channels   int
	bitsPerSmp int
	data       []byte
}

func readWavInfo(path string) (*wavInfo, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取WAV文件失败: %w", err)
	}
	info, err := parseWav(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, path)
	}
	return info, nil
}

func parseWav(raw []byte) (*wavInfo, error) {
	if len(raw) < 12 || string(raw[0:4]) != "RIFF" || string(raw[8:12]) != "WAVE" {
		return nil, fmt.Errorf("不是有效的WAV文件")
	}

	info := &wavInfo{}
	pos := 12
	for pos+8 <= len(raw) {
		chunkID := string(raw[pos : pos+4])
		chunkSize := int(binary.LittleEndian.Uint32(raw[pos+4 : pos+8]))
		body := pos + 8
		if body+chunkSize > len(raw) {
			chunkSize = len(raw) - body
		}

		switch chunkID {
		case "fmt ":
			if chunkSize < 16 {
				return nil, fmt.Errorf("WAV fmt块损坏")
			}
			format := binary.LittleEndian.Uint16(raw[body : body+2])
			if format != 1 {
				return nil, fmt.Errorf("仅支持PCM编码的WAV文件")
			}
			info.channels = int(binary.LittleEndian.Uint16(raw[body+2 : body+4]))
			info.sampleRate = int(binary.LittleEndian.Uint32(raw[body+4 : body+8]))
			info.bitsPerSmp = int(binary.LittleEndian.Uint16(raw[body+14 : body+16]))
		case "data":
			info.data = raw[body : body+chunkSize]
		}

		// 块按偶数字节对齐
		pos = body + chunkSize
		if chunkSize%2 == 1 {
			pos++
		}
	}

	if info.sampleRate == 0 || info.data == nil {
		return nil, fmt.Errorf("WAV文件缺少fmt或data块")
	}
	if info.bitsPerSmp != 16 || info.channels != 1 {
		return nil, fmt.Errorf("仅支持16-bit单声道WAV")
	}
	return info, nil
}

func samplesFromInfo(info *wavInfo) []float32 {
	numSamples := len(info.data) / 2
	samples := make([]float32, numSamples)
	for i := 0; i < numSamples; i++ {
		v := int16(binary.LittleEndian.Uint16(info.data[i*2 : i*2+2]))
		samples[i] = float32(v) / 32767.0
	}
	return samples
}

// LoadWav 读取 16-bit PCM 单声道 WAV，返回 float32 采样与取样率
func LoadWav(path string) ([]float32, int, error) {
	info, err := readWavInfo(path)
	if err != nil {
		return nil, 0, err
	}
	return samplesFromInfo(info), info.sampleRate, nil
}

// DecodeWav 解码内存中的WAV数据（引擎下载结果用）
func DecodeWav(raw []byte) ([]float32, int, error) {
	info, err := parseWav(raw)
	if err != nil {
		return nil, 0, err
	}
	return samplesFromInfo(info), info.sampleRate, nil
}

// GetWavDuration 从实际WAV文件读取精确时长（秒）。
// 这是页面时长的权威值，下游视频合成以它为准。
func GetWavDuration(path string) (float64, error) {
	info, err := readWavInfo(path)
	if err != nil {
		return 0, err
	}
	frames := len(info.data) / 2
	return float64(frames) / float64(info.sampleRate), nil
}
