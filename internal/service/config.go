package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/saadjs/caltrack/internal/common"
	"github.com/saadjs/caltrack/internal/i18n"
	"github.com/saadjs/caltrack/internal/model"
)

// settableKeys maps the preference keys `config set` may write to their
// validators. Profile keys go through UpdateProfile instead.
var settableKeys = map[string]func(string) error{
	model.PrefLocale: func(v string) error {
		if !i18n.IsSupported(v) {
			return fmt.Errorf("%w: unsupported locale %q (use %s)", common.ErrInvalidInput, v, strings.Join(i18n.Supported(), ", "))
		}
		return nil
	},
}

func SetConfig(ctx context.Context, db *sql.DB, key, value string) error {
	key = strings.TrimSpace(strings.ToLower(key))
	if key == "" {
		return fmt.Errorf("%w: config key is required", common.ErrInvalidInput)
	}
	validate, ok := settableKeys[key]
	if !ok {
		return fmt.Errorf("%w: %q cannot be set here (use `caltrack profile set` for profile values)", common.ErrInvalidInput, key)
	}
	value = strings.ToLower(strings.TrimSpace(value))
	if value != "" {
		if err := validate(value); err != nil {
			return err
		}
	}
	if err := prefRepo(db).Set(ctx, key, value); err != nil {
		return fmt.Errorf("set config %q: %w", key, err)
	}
	return nil
}

func GetConfig(ctx context.Context, db *sql.DB, key string) (string, bool, error) {
	key = strings.TrimSpace(strings.ToLower(key))
	if key == "" {
		return "", false, fmt.Errorf("%w: config key is required", common.ErrInvalidInput)
	}
	value, ok, err := prefRepo(db).Get(ctx, key)
	if err != nil {
		return "", false, fmt.Errorf("get config %q: %w", key, err)
	}
	return value, ok, nil
}

func ListConfig(ctx context.Context, db *sql.DB) (map[string]string, error) {
	out, err := prefRepo(db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list config: %w", err)
	}
	return out, nil
}
