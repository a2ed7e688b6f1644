package config

import (
	"fmt"

	"github.com/spf13/pflag"
)

const (
	FlagConfig    = "config"
	FlagDB        = "db"
	FlagLogLevel  = "log-level"
	FlagLogFormat = "log-format"
	FlagLocale    = "locale"
	FlagTZ        = "tz"
	FlagBackupDir = "backup-dir"
)

// RegisterFlags adds the config flags to fs. Defaults are empty so that only
// explicitly set flags override the JSON file.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String(FlagConfig, "", "path to JSON config file")
	fs.String(FlagDB, "", "path to SQLite database")
	fs.String(FlagLogLevel, "", "log level: debug|info|warn|error (default warn)")
	fs.String(FlagLogFormat, "", "log format: text|json (default text)")
	fs.String(FlagLocale, "", "output language: en|de")
	fs.String(FlagTZ, "", "time zone for calendar days: Local, UTC or an IANA name")
	fs.String(FlagBackupDir, "", "directory for database backups")
}

func applyFlags(cfg *Config, fs *pflag.FlagSet) error {
	if fs == nil {
		return nil
	}
	targets := map[string]*string{
		FlagDB:        &cfg.DBPath,
		FlagLogLevel:  &cfg.LogLevel,
		FlagLogFormat: &cfg.LogFormat,
		FlagLocale:    &cfg.Locale,
		FlagTZ:        &cfg.DayTZ,
		FlagBackupDir: &cfg.BackupDir,
	}
	for name, dst := range targets {
		if fs.Lookup(name) == nil || !fs.Changed(name) {
			continue
		}
		v, err := fs.GetString(name)
		if err != nil {
			return fmt.Errorf("read --%s: %w", name, err)
		}
		*dst = v
	}
	return nil
}
