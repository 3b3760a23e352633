package config

import "time"

// Config holds runtime settings for the geo-time-tracker CLI.
//
// Units: FixTimeout is a time.Duration; DesiredAccuracy is a horizontal
// accuracy radius in meters, 0 meaning "best available".
type Config struct {
	DatabasePath    string
	FixTimeout      time.Duration
	DesiredAccuracy float64
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "geotime.db"
	c.FixTimeout = 60 * time.Second
	c.DesiredAccuracy = 0
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from a JSON file when one is named via -c/-config. Command-line
// overrides are applied afterwards by the command layer, which owns the
// flag surface.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	return cfg
}
