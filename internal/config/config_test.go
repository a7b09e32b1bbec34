package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"snowfall/internal/snow"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "snow.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ReleaseInterval != 12*time.Second || cfg.Clock.Resync != 5*time.Minute {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.Countdown.Month != 12 || cfg.Countdown.Day != 25 {
		t.Fatalf("unexpected target %+v", cfg.Countdown)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, `
variant: blizzard
release_interval: 8s
scene:
  count: 300
  decay_rate: 0.02
clock:
  url: http://localhost:9999/time
  timeout: 2s
countdown:
  month: 1
  day: 1
  location: UTC
server:
  addr: ":9090"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Variant != "blizzard" || cfg.ReleaseInterval != 8*time.Second {
		t.Fatalf("unexpected top-level values %+v", cfg)
	}
	if cfg.Clock.URL != "http://localhost:9999/time" || cfg.Clock.Timeout != 2*time.Second {
		t.Fatalf("unexpected clock %+v", cfg.Clock)
	}
	if cfg.Clock.Resync != 5*time.Minute {
		t.Fatal("expected unset fields to keep defaults")
	}
	loc, err := cfg.Location()
	if err != nil || loc != time.UTC {
		t.Fatalf("expected UTC location, got %v (%v)", loc, err)
	}

	sc := snow.FromMap(cfg.SceneOverrides())
	if sc.Params.FlakeCount != 300 || sc.Params.DecayRate != 0.02 {
		t.Fatalf("scene overrides not applied: %+v", sc.Params)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := []string{
		"countdown:\n  month: 13\n",
		"countdown:\n  day: 0\n",
		"countdown:\n  month: 2\n  day: 31\n",
		"countdown:\n  location: Nowhere/Special\n",
		"release_interval: -1s\n",
		"scene: [oops\n",
	}
	for _, body := range cases {
		if _, err := Load(writeFile(t, body)); err == nil {
			t.Fatalf("expected error for %q", body)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("SNOW_TIME_URL", "http://time.test/api")
	t.Setenv("SNOW_OFFLINE", "true")
	t.Setenv("PORT", "7000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SNOW_TZ", "UTC")

	cfg := Default()
	cfg.ApplyEnv()
	if cfg.Clock.URL != "http://time.test/api" || !cfg.Clock.Offline {
		t.Fatalf("unexpected clock %+v", cfg.Clock)
	}
	if cfg.Server.Addr != ":7000" || cfg.LogLevel != "debug" || cfg.Countdown.Location != "UTC" {
		t.Fatalf("unexpected env overrides %+v", cfg)
	}
}

func TestApplyEnvIgnoresGarbage(t *testing.T) {
	t.Setenv("PORT", "not-a-port")
	t.Setenv("SNOW_OFFLINE", "maybe")
	cfg := Default()
	cfg.ApplyEnv()
	if cfg.Server.Addr != ":8080" || cfg.Clock.Offline {
		t.Fatalf("expected defaults kept, got %+v", cfg)
	}
}
