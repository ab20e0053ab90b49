package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"unknown", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Fatalf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNewJSONFormat(t *testing.T) {
	var buf bytes.Buffer

	log := New(Config{Level: "debug", Format: "json"}, &buf)
	log.Info().Str("tx_id", "666").Msg("hello")

	output := buf.String()
	if !strings.HasPrefix(strings.TrimSpace(output), "{") {
		t.Fatalf("expected json output to start with '{', got %q", output)
	}
	if !strings.Contains(output, `"tx_id":"666"`) {
		t.Fatalf("expected json output to carry tx_id field, got %q", output)
	}
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer

	log := New(Config{Level: "error", Format: "json"}, &buf)
	log.Info().Msg("suppressed")

	if buf.Len() != 0 {
		t.Fatalf("expected info event to be suppressed at error level, got %q", buf.String())
	}
}
