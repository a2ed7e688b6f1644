// Package config loads runtime configuration for the caltrack CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file: the --config flag, or <user config dir>/caltrack/config.json
//     when that file exists.
//  3. Command-line flags that were explicitly set.
//
// # JSON schema
//
//	{
//	  "db_path": "/home/me/.config/caltrack/caltrack.db",
//	  "log_level": "warn",
//	  "log_format": "text",
//	  "locale": "de",
//	  "day_tz": "Europe/Berlin",
//	  "backup_dir": "/home/me/caltrack-backups"
//	}
//
// Keys that are absent keep their earlier value.
package config
