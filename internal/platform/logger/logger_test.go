package logger

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		" INFO ":  zapcore.InfoLevel,
		"warning": zapcore.WarnLevel,
		"Error":   zapcore.ErrorLevel,
		"":        zapcore.InfoLevel,
		"bogus":   zapcore.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLevel(in), in)
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv(envLevel, "DEBUG")
	t.Setenv(envFormat, "text")
	t.Setenv(envOutput, "")

	cfg := ConfigFromEnv()
	assert.Equal(t, Config{Level: zapcore.DebugLevel, Format: FormatConsole, Output: "stdout"}, cfg)
	assert.False(t, cfg.toFile())
}

func TestBuild_WritesToFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "logs", "web.log")
	l := build(Config{Level: zapcore.WarnLevel, Format: FormatJSON, Output: out})
	require.NotNil(t, l)

	named := l.Named("test").With(zap.String("k", "v"))
	assert.False(t, named.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, named.Core().Enabled(zapcore.WarnLevel))
	assert.FileExists(t, out)
}
