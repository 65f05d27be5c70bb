package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestSetLevelFromString(t *testing.T) {
	t.Cleanup(func() { SetLevel(slog.LevelInfo) })

	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			SetLevelFromString(tt.in)
			if got := Level(); got != tt.want {
				t.Errorf("Level() = %v, want %v", got, tt.want)
			}
		})
	}

	SetLevel(slog.LevelWarn)
	SetLevelFromString("verbose")
	if Level() != slog.LevelWarn {
		t.Error("unknown level strings must leave the level unchanged")
	}
}

func TestInitStructuredTo_JSON(t *testing.T) {
	t.Cleanup(func() { InitStructured("text", "info") })

	var buf bytes.Buffer
	InitStructuredTo(&buf, "json", "debug")
	Component("repository").Debug("cache miss", "member_id", 7)

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("expected a JSON log line, got %q: %v", buf.String(), err)
	}
	if record["component"] != "repository" {
		t.Errorf("expected component attribute, got %v", record["component"])
	}
	if record["msg"] != "cache miss" {
		t.Errorf("unexpected msg %v", record["msg"])
	}
}

func TestInitStructuredTo_RespectsLevel(t *testing.T) {
	t.Cleanup(func() { InitStructured("text", "info") })

	var buf bytes.Buffer
	InitStructuredTo(&buf, "text", "warn")
	Op().Info("dropped")
	Op().Warn("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Errorf("info line written at warn level: %q", out)
	}
	if !strings.Contains(out, "kept") {
		t.Errorf("warn line missing: %q", out)
	}
}

func TestOrOp(t *testing.T) {
	l := Discard()
	if OrOp(l, "x") != l {
		t.Error("OrOp must return the given logger")
	}
	if OrOp(nil, "x") == nil {
		t.Error("OrOp must fall back to the op logger")
	}
}
