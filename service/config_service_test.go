package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckAndInitConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	created, err := CheckAndInitConfig(path)
	require.NoError(t, err)
	assert.True(t, created)

	// 已存在时不覆盖
	created, err = CheckAndInitConfig(path)
	require.NoError(t, err)
	assert.False(t, created)

	// 生成的默认配置可以被解析
	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "tencent", config.TTS.Engine)
	assert.InDelta(t, 0.5, config.Audio.PauseSec, 1e-9)
	assert.Equal(t, 4, config.Concurrent.MaxWorkers)
}

func TestLoadConfigDefaults(t *testing.T) {
	// 最小配置，其余项走默认值
	path := filepath.Join(t.TempDir(), "minimal.yaml")
	require.NoError(t, os.WriteFile(path, []byte("input_file: script.txt\n"), 0644))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "script.txt", config.InputFile)
	assert.InDelta(t, 1.0, config.TTS.Speed, 1e-9)
	assert.Equal(t, int64(16000), config.TTS.SampleRate)
	assert.InDelta(t, 0.5, config.Audio.PauseSec, 1e-9)
	assert.InDelta(t, 0.1, config.Audio.ReconcileToleranceSec, 1e-9)
	assert.Equal(t, 4, config.Concurrent.MaxWorkers)
	assert.Equal(t, 5, config.Concurrent.RateLimit)
	assert.Equal(t, DefaultMinSentenceLen, config.Parser.MinSentenceLen)
	assert.Equal(t, "output", config.Audio.OutputDir)
	assert.Equal(t, "info", config.Log.Level)
}

func TestWriteSampleScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.txt")

	created, err := WriteSampleScript(path)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = WriteSampleScript(path)
	require.NoError(t, err)
	assert.False(t, created)

	// 示例讲稿本身可以被解析成三页
	script, err := NewScriptParser(0).ParseScriptFile(path)
	require.NoError(t, err)
	require.Len(t, script.Pages, 3)
	assert.Equal(t, 3, script.Pages[2].PageNumber)
	assert.Empty(t, ValidateScript(script, 3))
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":::not yaml:::"), 0644))
	_, err = LoadConfig(path)
	assert.Error(t, err)
}
