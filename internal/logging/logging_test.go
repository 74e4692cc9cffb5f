package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Spyabo/CLI-Chess/internal/config"
	"github.com/Spyabo/CLI-Chess/internal/testutil"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"INFO", zapcore.InfoLevel},
		{" warn ", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
		{"loud", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			testutil.AssertEqual(t, ParseLevel(tt.in), tt.want)
		})
	}
}

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(config.LogConfig{Level: "info", Format: config.JSONFormat}, &buf)

	logger.Debug("hidden")
	logger.Info("move applied", zap.String("san", "e4"), zap.Int("ply", 1))
	testutil.AssertNoError(t, logger.Sync())

	var entry map[string]interface{}
	testutil.AssertNoError(t, json.Unmarshal(buf.Bytes(), &entry), "exactly one JSON line")
	testutil.AssertEqual(t, entry["level"], "info")
	testutil.AssertEqual(t, entry["msg"], "move applied")
	testutil.AssertEqual(t, entry["san"], "e4")
	testutil.AssertEqual(t, entry["ply"], float64(1))
}

func TestNewWithWriter_Console(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(config.LogConfig{Level: "warn", Format: config.ConsoleFormat}, &buf)

	logger.Info("hidden")
	logger.Warn("notation mismatch", zap.String("claimed", "#"))

	out := buf.String()
	testutil.AssertContains(t, out, "WARN | notation mismatch")
	testutil.AssertContains(t, out, `"claimed": "#"`)
	testutil.AssertNotContains(t, out, "hidden")
}
