package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestSetupLevels(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)
	var buf bytes.Buffer
	if got := Setup("WARN", &buf); got != zerolog.WarnLevel {
		t.Fatalf("expected warn level, got %v", got)
	}
	log.Info().Msg("hidden")
	log.Warn().Str("source", "test").Msg("shown")
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Fatalf("unexpected output %q", out)
	}
	if !strings.Contains(out, "source=test") {
		t.Fatalf("expected structured field in %q", out)
	}
	if got := Setup("chatty", &buf); got != zerolog.InfoLevel {
		t.Fatalf("expected fallback to info, got %v", got)
	}
}

func TestSetupFile(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)
	path := filepath.Join(t.TempDir(), "snow.log")
	c, err := SetupFile("info", path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	log.Info().Msg("to file")
	c.Close()
	data, err := os.ReadFile(path)
	if err != nil || !strings.Contains(string(data), "to file") {
		t.Fatalf("expected log line in file, got %q (%v)", data, err)
	}

	c, err = SetupFile("info", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_ = c.Close()
}
