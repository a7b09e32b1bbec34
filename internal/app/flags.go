package app

import (
	"flag"
	"time"
)

// Config represents the command-line parameters shared by the frontends.
type Config struct {
	Variant    string
	ConfigFile string
	Width      int
	Height     int
	TPS        int
	Seed       int64
	HUDWidth   int
	TimeURL    string
	Offline    bool
	Release    time.Duration
	LogLevel   string
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Variant:  "snow",
		Width:    960,
		Height:   600,
		TPS:      60,
		Seed:     1225,
		HUDWidth: 240,
		Release:  12 * time.Second,
		LogLevel: "info",
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Variant, "variant", c.Variant, "scene variant (snow, blizzard)")
	fs.StringVar(&c.ConfigFile, "config", c.ConfigFile, "optional YAML config file")
	fs.IntVar(&c.Width, "w", c.Width, "scene width")
	fs.IntVar(&c.Height, "h", c.Height, "scene height")
	fs.IntVar(&c.TPS, "tps", c.TPS, "frames per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for scene reset")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "HUD panel width, 0 to hide")
	fs.StringVar(&c.TimeURL, "time-url", c.TimeURL, "network time endpoint")
	fs.BoolVar(&c.Offline, "offline", c.Offline, "skip the network time sync")
	fs.DurationVar(&c.Release, "release", c.Release, "interval between cap releases")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "zerolog level")
}

// Visited returns the names of flags explicitly set on fs.
func Visited(fs *flag.FlagSet) map[string]bool {
	seen := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { seen[f.Name] = true })
	return seen
}
