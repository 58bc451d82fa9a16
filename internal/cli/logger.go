package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/AndresSalinasB/expo-cli/internal/config"
)

// newLogger builds the diagnostic logger from --log-level and the log.*
// settings. Command output goes to stdout; logs go to w.
func newLogger(w io.Writer) (*slog.Logger, error) {
	levelName := logLevel
	if levelName == "" {
		levelName = config.Get(config.KeyLogLevel)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(levelName)); err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", levelName, err)
	}

	opts := &slog.HandlerOptions{Level: level}
	switch format := strings.ToLower(config.Get(config.KeyLogFormat)); format {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q (want text or json)", format)
	}
}
