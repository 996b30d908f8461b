package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/lmittmann/tint"
)

const (
	logFormatText = "text"
	logFormatJSON = "json"
)

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("log level %q: %w", s, err)
	}
	return level, nil
}

// newLogger builds the CLI logger. Text output goes through tint, with
// error attributes in red.
func newLogger(output io.Writer, level slog.Level, format string, noColor bool) (*slog.Logger, error) {
	switch strings.ToLower(format) {
	case logFormatJSON:
		return slog.New(slog.NewJSONHandler(output, &slog.HandlerOptions{Level: level})), nil
	case logFormatText, "":
	default:
		return nil, fmt.Errorf("unknown log format %q (want %s or %s)", format, logFormatText, logFormatJSON)
	}

	handler := tint.NewHandler(output, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05.000",
		NoColor:    noColor,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Value.Kind() == slog.KindAny {
				if _, ok := a.Value.Any().(error); ok {
					return tint.Attr(9, a)
				}
			}
			return a
		},
	})
	return slog.New(handler), nil
}
