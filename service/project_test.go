package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slidecast/model"
)

func TestManifestSaveLoad(t *testing.T) {
	dir := t.TempDir()

	script := &model.Script{Pages: []*model.Page{
		{PageNumber: 1, Sentences: []*model.Sentence{
			{Text: "测试句子", DurationSec: 2.0, StartSec: 0.0},
		}},
	}}
	pages := []PageAudio{{PageNumber: 1, AudioPath: "page001_full.wav", Duration: 2.0}}

	m := NewManifest("run-123", "stub", 16000, 0.5, script, pages)
	require.NoError(t, m.Save(dir))

	loaded, err := LoadManifest(dir)
	require.NoError(t, err)

	assert.Equal(t, "run-123", loaded.RunID)
	assert.Equal(t, "stub", loaded.Engine)
	assert.Equal(t, 16000, loaded.SampleRate)
	assert.InDelta(t, 0.5, loaded.PauseSec, 1e-9)
	require.Len(t, loaded.Script.Pages, 1)
	assert.Equal(t, "测试句子", loaded.Script.Pages[0].Sentences[0].Text)
	require.Len(t, loaded.Pages, 1)
	assert.InDelta(t, 2.0, loaded.Pages[0].Duration, 1e-9)
}

func TestLoadManifestMissing(t *testing.T) {
	_, err := LoadManifest(t.TempDir())
	assert.Error(t, err)
}

func TestManifestUpdatePage(t *testing.T) {
	m := &Manifest{Pages: []PageAudio{
		{PageNumber: 1, Duration: 2.0},
		{PageNumber: 2, Duration: 3.0},
	}}

	m.UpdatePage(PageAudio{PageNumber: 2, Duration: 5.0})
	assert.InDelta(t, 5.0, m.Pages[1].Duration, 1e-9)
	assert.Len(t, m.Pages, 2)

	// 不存在的页追加
	m.UpdatePage(PageAudio{PageNumber: 3, Duration: 1.0})
	assert.Len(t, m.Pages, 3)
}
