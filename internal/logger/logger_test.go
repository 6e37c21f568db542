package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"seoscope/internal/config"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zapcore.Level
	}{
		{config.LogLevelDebug, zap.DebugLevel},
		{config.LogLevelInfo, zap.InfoLevel},
		{config.LogLevelWarn, zap.WarnLevel},
		{config.LogLevelError, zap.ErrorLevel},
		{"", zap.InfoLevel},
		{"bogus", zap.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLogLevel(tt.input))
		})
	}
}

func TestNew_RespectsLevel(t *testing.T) {
	log := New(config.LogConfig{Level: config.LogLevelWarn, Format: config.LogFormatConsole})
	require.NotNil(t, log)

	assert.False(t, log.Core().Enabled(zap.InfoLevel))
	assert.True(t, log.Core().Enabled(zap.WarnLevel))
}

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.log")
	log := New(config.LogConfig{
		Level:  config.LogLevelInfo,
		Format: config.LogFormatConsole,
		File:   config.FileLogConfig{Path: path, MaxSize: 1},
	})

	log.Info("audit finished", zap.String("url", "https://example.com"))
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "audit finished")
	assert.Contains(t, string(data), "INFO")
}
