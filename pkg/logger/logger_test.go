package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"debug":   zerolog.DebugLevel,
		"info":    zerolog.InfoLevel,
		"warn":    zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"ERROR":   zerolog.ErrorLevel,
		"  info ": zerolog.InfoLevel,
		"":        zerolog.InfoLevel,
		"bogus":   zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestInit_EmitsJSONAndFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := Init(Options{Level: "info", Output: &buf})

	log.Debug().Msg("filtered")
	log.Info().Str("component", "test").Msg("visible")

	out := buf.String()
	if strings.Contains(out, "filtered") {
		t.Error("debug entry leaked through an info-level logger")
	}
	if !strings.Contains(out, `"message":"visible"`) || !strings.Contains(out, `"component":"test"`) {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestInit_SecondCallReturnsSameLogger(t *testing.T) {
	var buf bytes.Buffer
	first := Init(Options{Level: "info", Output: &buf})
	second := Init(Options{Level: "error"})

	if first.GetLevel() != second.GetLevel() {
		t.Error("second Init must not rebuild the logger")
	}
}
