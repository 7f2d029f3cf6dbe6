package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kozaktomas/face-attendance/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    zapcore.Level
		wantErr bool
	}{
		{"", zapcore.InfoLevel, false},
		{"debug", zapcore.DebugLevel, false},
		{" WARN ", zapcore.WarnLevel, false},
		{"error", zapcore.ErrorLevel, false},
		{"loud", zapcore.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	if _, err := New(config.LogConfig{Level: "nope"}); err == nil {
		t.Error("expected error for invalid level")
	}
}

func TestNewLogger_ConsoleRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := newLogger(config.LogConfig{Level: "warn"}, &buf)
	if err != nil {
		t.Fatal(err)
	}

	log.Info("hidden")
	log.Warn("visible", zap.String("name", "Ada"))
	_ = log.Sync()

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info line should be filtered at warn level")
	}
	if !strings.Contains(out, "visible") || !strings.Contains(out, "Ada") {
		t.Errorf("expected warn line with field, got %q", out)
	}
}

func TestNewLogger_FileWritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "attendance.log")
	var console bytes.Buffer

	log, err := newLogger(config.LogConfig{
		Level:      "info",
		File:       path,
		MaxSizeMB:  1,
		MaxBackups: 1,
		MaxAgeDays: 1,
	}, &console)
	if err != nil {
		t.Fatal(err)
	}

	log.Info("recorded", zap.String("name", "Grace"))
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}

	var line map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(data), &line); err != nil {
		t.Fatalf("expected a JSON line, got %q: %v", data, err)
	}
	if line["msg"] != "recorded" || line["name"] != "Grace" {
		t.Errorf("unexpected log line %v", line)
	}
	if console.Len() == 0 {
		t.Error("expected console output as well")
	}
}
