package logger

import (
	"os"
	"strings"

	"go.uber.org/zap/zapcore"
)

const (
	envLevel  = "LOG_LEVEL"
	envFormat = "LOG_FORMAT"
	envOutput = "LOG_OUTPUT_FILE"

	FormatJSON    = "json"
	FormatConsole = "console"
)

// Config selects level, encoding and sink for the web logger.
// Output is "stdout", "stderr" or a file path.
type Config struct {
	Level  zapcore.Level
	Format string
	Output string
}

// ConfigFromEnv reads LOG_LEVEL, LOG_FORMAT and LOG_OUTPUT_FILE.
// Unknown values fall back to info, json and stdout.
func ConfigFromEnv() Config {
	return Config{
		Level:  parseLevel(os.Getenv(envLevel)),
		Format: parseFormat(os.Getenv(envFormat)),
		Output: strings.TrimSpace(os.Getenv(envOutput)),
	}.withDefaults()
}

func (c Config) withDefaults() Config {
	if c.Format == "" {
		c.Format = FormatJSON
	}
	if c.Output == "" {
		c.Output = "stdout"
	}
	return c
}

func (c Config) toFile() bool {
	return c.Output != "stdout" && c.Output != "stderr"
}

func parseLevel(s string) zapcore.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	lvl, err := zapcore.ParseLevel(s)
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

func parseFormat(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case FormatConsole, "text":
		return FormatConsole
	default:
		return FormatJSON
	}
}
