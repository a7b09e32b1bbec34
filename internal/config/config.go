// Package config loads the optional YAML file and environment overrides shared
// by the snowfall commands.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"snowfall/internal/clock"
	"snowfall/internal/countdown"
)

// File mirrors the YAML layout.
type File struct {
	Variant         string         `yaml:"variant"`
	Scene           map[string]any `yaml:"scene"`
	ReleaseInterval time.Duration  `yaml:"release_interval"`
	LogLevel        string         `yaml:"log_level"`

	Clock     Clock     `yaml:"clock"`
	Countdown Countdown `yaml:"countdown"`
	Server    Server    `yaml:"server"`
	Audio     Audio     `yaml:"audio"`
}

// Clock configures the network time source.
type Clock struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
	Resync  time.Duration `yaml:"resync"`
	Offline bool          `yaml:"offline"`
}

// Countdown configures the target date.
type Countdown struct {
	Month    int    `yaml:"month"`
	Day      int    `yaml:"day"`
	Location string `yaml:"location"`
}

// Server configures cmd/snowd.
type Server struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	SnapshotWidth  int      `yaml:"snapshot_width"`
}

// Audio configures the release chime.
type Audio struct {
	Enabled   bool    `yaml:"enabled"`
	Frequency float64 `yaml:"frequency"`
}

// Default returns the built-in settings.
func Default() *File {
	return &File{
		Variant:         "snow",
		ReleaseInterval: 12 * time.Second,
		LogLevel:        "info",
		Clock: Clock{
			URL:     clock.DefaultTimeURL,
			Timeout: clock.DefaultSyncTimeout,
			Resync:  clock.DefaultResyncInterval,
		},
		Countdown: Countdown{Month: int(time.December), Day: 25, Location: "Local"},
		Server: Server{
			Addr:           ":8080",
			AllowedOrigins: []string{"*"},
			SnapshotWidth:  640,
		},
		Audio: Audio{Frequency: 880},
	}
}

// Load reads path on top of the defaults. An empty path returns the defaults.
func Load(path string) (*File, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, cfg.Validate()
}

// LoadDotenv loads .env from the working directory when present.
func LoadDotenv() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn().Err(err).Msg("could not load .env file")
	}
}

// ApplyEnv overrides settings from SNOW_TIME_URL, SNOW_OFFLINE, SNOW_TZ,
// PORT and LOG_LEVEL.
func (f *File) ApplyEnv() {
	f.Clock.URL = getEnv("SNOW_TIME_URL", f.Clock.URL)
	f.Clock.Offline = getEnvAsBool("SNOW_OFFLINE", f.Clock.Offline)
	f.Countdown.Location = getEnv("SNOW_TZ", f.Countdown.Location)
	f.LogLevel = getEnv("LOG_LEVEL", f.LogLevel)
	if port := getEnvAsInt("PORT", 0); port > 0 {
		f.Server.Addr = ":" + strconv.Itoa(port)
	}
}

// Validate checks ranges that would otherwise fail later.
func (f *File) Validate() error {
	if f.Countdown.Month < 1 || f.Countdown.Month > 12 {
		return fmt.Errorf("countdown month %d out of range", f.Countdown.Month)
	}
	if !countdown.ValidDate(time.Month(f.Countdown.Month), f.Countdown.Day) {
		return fmt.Errorf("countdown day %d does not exist in month %d", f.Countdown.Day, f.Countdown.Month)
	}
	if f.ReleaseInterval < 0 || f.Clock.Timeout < 0 || f.Clock.Resync < 0 {
		return fmt.Errorf("durations must not be negative")
	}
	if _, err := f.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves the countdown time zone.
func (f *File) Location() (*time.Location, error) {
	switch f.Countdown.Location {
	case "", "Local":
		return time.Local, nil
	}
	loc, err := time.LoadLocation(f.Countdown.Location)
	if err != nil {
		return nil, fmt.Errorf("failed to load location %q: %w", f.Countdown.Location, err)
	}
	return loc, nil
}

// SceneOverrides flattens the scene section into flag-style strings for
// snow.FromMap.
func (f *File) SceneOverrides() map[string]string {
	out := make(map[string]string, len(f.Scene))
	for k, v := range f.Scene {
		out[k] = fmt.Sprint(v)
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
