package service

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"slidecast/model"
)

// 项目清单：一次合成运行的全部状态（讲稿树、时间轴、产物路径）。
// regen 与 srt 命令靠它在不重跑整个流水线的情况下继续工作。

// ManifestVersion 清单格式版本
const ManifestVersion = 1

// ManifestFile 清单文件名，固定放在输出目录下
const ManifestFile = "manifest.json"

// Manifest 合成运行清单
type Manifest struct {
	FormatVersion int           `json:"format_version"`
	RunID         string        `json:"run_id"`
	CreatedAt     time.Time     `json:"created_at"`
	Engine        string        `json:"engine"`
	SampleRate    int           `json:"sample_rate"` // 本次运行的基准取样率
	PauseSec      float64       `json:"pause_sec"`
	Script        *model.Script `json:"script"`
	Pages         []PageAudio   `json:"pages"`
}

// NewManifest 从一次流水线运行的结果构造清单
func NewManifest(runID, engine string, sampleRate int, pauseSec float64, script *model.Script, pages []PageAudio) *Manifest {
	return &Manifest{
		FormatVersion: ManifestVersion,
		RunID:         runID,
		CreatedAt:     time.Now(),
		Engine:        engine,
		SampleRate:    sampleRate,
		PauseSec:      pauseSec,
		Script:        script,
		Pages:         pages,
	}
}

// Save 保存清单到输出目录
func (m *Manifest) Save(outputDir string) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("序列化清单失败: %w", err)
	}

	path := filepath.Join(outputDir, ManifestFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("写入清单失败: %w", err)
	}
	return nil
}

// LoadManifest 从输出目录读取清单
func LoadManifest(outputDir string) (*Manifest, error) {
	path := filepath.Join(outputDir, ManifestFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取清单失败（请先执行synth）: %w", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("解析清单失败: %w", err)
	}
	if m.FormatVersion != ManifestVersion {
		return nil, fmt.Errorf("不支持的清单版本: %d", m.FormatVersion)
	}
	if m.Script == nil {
		return nil, fmt.Errorf("清单缺少讲稿数据")
	}
	return &m, nil
}

// UpdatePage 更新清单中指定页的音频信息
func (m *Manifest) UpdatePage(pa PageAudio) {
	for i := range m.Pages {
		if m.Pages[i].PageNumber == pa.PageNumber {
			m.Pages[i] = pa
			return
		}
	}
	m.Pages = append(m.Pages, pa)
}
