package main

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestNewLoggerText(t *testing.T) {
	var out bytes.Buffer
	logger, err := newLogger(&out, slog.LevelInfo, logFormatText, true)
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("run finished", slog.String("termination", "escaped"))
	logger.Debug("hidden")

	line := out.String()
	if !strings.Contains(line, "run finished") || !strings.Contains(line, "termination=escaped") {
		t.Fatalf("unexpected text output: %s", line)
	}
	if strings.Contains(line, "hidden") {
		t.Error("debug line written at info level")
	}
	if strings.Contains(line, "\x1b[") {
		t.Error("colour codes written with NoColor")
	}
}

func TestNewLoggerJSON(t *testing.T) {
	var out bytes.Buffer
	logger, err := newLogger(&out, slog.LevelDebug, logFormatJSON, false)
	if err != nil {
		t.Fatal(err)
	}
	logger.Debug("run failed", "err", errors.New("boom"))

	line := out.String()
	if !strings.Contains(line, `"msg":"run failed"`) || !strings.Contains(line, `"err":"boom"`) {
		t.Fatalf("unexpected json output: %s", line)
	}
}

func TestNewLoggerErrorColour(t *testing.T) {
	var out bytes.Buffer
	logger, _ := newLogger(&out, slog.LevelInfo, logFormatText, false)
	logger.Error("run failed", "err", errors.New("boom"))

	if !strings.Contains(out.String(), "\x1b[") {
		t.Error("expected ANSI colour around the error")
	}
}

func TestNewLoggerBadFormat(t *testing.T) {
	if _, err := newLogger(&bytes.Buffer{}, slog.LevelInfo, "xml", false); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
		ok   bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{"warn", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"loud", 0, false},
	}
	for _, tt := range tests {
		got, err := parseLevel(tt.in)
		if (err == nil) != tt.ok {
			t.Errorf("parseLevel(%q) err = %v", tt.in, err)
			continue
		}
		if tt.ok && got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
