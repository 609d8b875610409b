package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelFromString(t *testing.T) {
	for _, lvl := range []string{"debug", "info", "warn", "warning", "error", "", "INFO"} {
		_, err := levelFromString(lvl)
		assert.NoError(t, err, "级别: %q", lvl)
	}

	_, err := levelFromString("verbose")
	assert.Error(t, err)
}

func TestNew(t *testing.T) {
	log, err := New(Config{Level: "debug"})
	require.NoError(t, err)
	assert.NotNil(t, log)

	_, err = New(Config{Level: "bogus"})
	assert.Error(t, err)
}

func TestLFallback(t *testing.T) {
	// 未初始化时退回默认logger，不panic
	assert.NotNil(t, L())
}
