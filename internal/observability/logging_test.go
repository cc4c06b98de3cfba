package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"WARNING", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"bogus", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.expected {
			t.Errorf("ParseLevel(%q) = %v, expected %v", tt.input, got, tt.expected)
		}
	}
}

func restoreLogger(t *testing.T) {
	t.Helper()
	prevLevel := zerolog.GlobalLevel()
	prevLogger := log.Logger
	t.Cleanup(func() {
		zerolog.SetGlobalLevel(prevLevel)
		log.Logger = prevLogger
	})
}

func TestSetupLogging_JSON(t *testing.T) {
	restoreLogger(t)

	var buf bytes.Buffer
	SetupLogging("warn", "json", &buf)

	log.Info().Msg("hidden")
	log.Warn().Msg("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message should be filtered at warn level: %s", out)
	}
	if !strings.Contains(out, `"message":"visible"`) {
		t.Errorf("warn message should be logged as JSON: %s", out)
	}
}

func TestLogger_Component(t *testing.T) {
	restoreLogger(t)

	var buf bytes.Buffer
	SetupLogging("debug", "json", &buf)

	logger := Logger("args")
	logger.Debug().Msg("parsed")

	if !strings.Contains(buf.String(), `"component":"args"`) {
		t.Errorf("component field missing: %s", buf.String())
	}
}

func TestSanitizeForLog(t *testing.T) {
	data := map[string]interface{}{
		"password":        "hunter2",
		"hashed-password": "$argon2",
		"bind-addr":       "127.0.0.1:8080",
	}

	got := SanitizeForLog(data)
	if got["password"] != "[REDACTED]" {
		t.Errorf("password should be redacted, got %v", got["password"])
	}
	if got["hashed-password"] != "[REDACTED]" {
		t.Errorf("hashed-password should be redacted, got %v", got["hashed-password"])
	}
	if got["bind-addr"] != "127.0.0.1:8080" {
		t.Errorf("bind-addr should be kept, got %v", got["bind-addr"])
	}
	if data["password"] != "hunter2" {
		t.Error("SanitizeForLog must not modify its input")
	}
}
