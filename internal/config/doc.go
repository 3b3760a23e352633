// Package config loads runtime configuration for the geo-time-tracker CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via flags: -c or -config.
//  3. Command flags registered by the command layer, which override
//     earlier values.
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be
// either strings like "60s" or integer nanoseconds:
//
//	{
//	  "database_path": "geotime.db",
//	  "fix_timeout": "60s",
//	  "desired_accuracy": 25
//	}
package config
