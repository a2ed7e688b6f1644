package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/saadjs/caltrack/internal/app"
)

// JSONConfig is the on-disk DTO. Pointer fields distinguish absent keys.
type JSONConfig struct {
	DBPath    *string `json:"db_path"`
	LogLevel  *string `json:"log_level"`
	LogFormat *string `json:"log_format"`
	Locale    *string `json:"locale"`
	DayTZ     *string `json:"day_tz"`
	BackupDir *string `json:"backup_dir"`
}

// parseJSON overlays cfg with the JSON file. An explicit --config path must
// exist; the default path is optional.
func parseJSON(cfg *Config, flags *pflag.FlagSet) error {
	path, explicit := "", false
	if flags != nil && flags.Lookup(FlagConfig) != nil {
		v, _ := flags.GetString(FlagConfig)
		path = strings.TrimSpace(v)
		explicit = path != ""
	}
	if path == "" {
		p, err := app.DefaultConfigPath()
		if err != nil {
			return err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}

	var jc JSONConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&cfg.DBPath, jc.DBPath)
	set(&cfg.LogLevel, jc.LogLevel)
	set(&cfg.LogFormat, jc.LogFormat)
	set(&cfg.Locale, jc.Locale)
	set(&cfg.DayTZ, jc.DayTZ)
	set(&cfg.BackupDir, jc.BackupDir)
	return nil
}
