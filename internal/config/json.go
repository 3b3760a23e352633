package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/chris-shaw-2011/geo-time-tracker/internal/flagx"
	"github.com/chris-shaw-2011/geo-time-tracker/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies
// on timex.Duration so intervals can be written either as strings like
// "60s" or as integer nanoseconds. After parsing, values are copied into
// the runtime Config.
type JsonConfig struct {
	DatabasePath    string         `json:"database_path"`
	FixTimeout      timex.Duration `json:"fix_timeout"`
	DesiredAccuracy float64        `json:"desired_accuracy"`
}

// parseJson overlays cfg with values loaded from the JSON file named via
// the -c or -config flags. When neither flag is present nothing is
// loaded. Read or unmarshal errors panic; the process cannot run with a
// config file it was told to use but cannot read.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.FixTimeout.Duration > 0 {
		cfg.FixTimeout = time.Duration(jc.FixTimeout.Duration)
	}
	if jc.DesiredAccuracy > 0 {
		cfg.DesiredAccuracy = jc.DesiredAccuracy
	}
}
