package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/saadjs/caltrack/internal/app"
	"github.com/saadjs/caltrack/internal/i18n"
	"github.com/saadjs/caltrack/internal/logging"
)

// Config holds runtime settings for the caltrack CLI.
//
// DayTZ names the zone whose calendar days entries are grouped by: "Local",
// "UTC" or an IANA name such as "Europe/Berlin".
type Config struct {
	DBPath    string
	LogLevel  string
	LogFormat string
	Locale    string
	DayTZ     string
	BackupDir string
}

// LoadDefaults populates c with defaults.
func (c *Config) LoadDefaults() error {
	dbPath, err := app.DefaultDBPath()
	if err != nil {
		return err
	}
	backupDir, err := app.DefaultBackupDir()
	if err != nil {
		return err
	}
	c.DBPath = dbPath
	c.LogLevel = "warn"
	c.LogFormat = "text"
	c.Locale = i18n.DefaultLocale
	c.DayTZ = "Local"
	c.BackupDir = backupDir
	return nil
}

// Load builds a Config from defaults, the JSON file and fs. fs may be nil.
func Load(fs *pflag.FlagSet) (*Config, error) {
	cfg := &Config{}
	if err := cfg.LoadDefaults(); err != nil {
		return nil, err
	}
	if err := parseJSON(cfg, fs); err != nil {
		return nil, err
	}
	if err := applyFlags(cfg, fs); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.DBPath) == "" {
		return fmt.Errorf("db path is required")
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(c.LogFormat)) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q (use text or json)", c.LogFormat)
	}
	if !i18n.IsSupported(c.Locale) {
		return fmt.Errorf("unsupported locale %q (use %s)", c.Locale, strings.Join(i18n.Supported(), ", "))
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves DayTZ.
func (c *Config) Location() (*time.Location, error) {
	switch tz := strings.TrimSpace(c.DayTZ); {
	case tz == "" || strings.EqualFold(tz, "local"):
		return time.Local, nil
	case strings.EqualFold(tz, "utc"):
		return time.UTC, nil
	default:
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("load time zone %q: %w", tz, err)
		}
		return loc, nil
	}
}
