package service

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/saadjs/caltrack/internal/common"
	"github.com/saadjs/caltrack/internal/dbx"
	"github.com/saadjs/caltrack/internal/logging"
	"github.com/saadjs/caltrack/internal/nutrition"
	"github.com/saadjs/caltrack/internal/repositories/entries"
	"github.com/saadjs/caltrack/internal/repositories/preferences"
)

// Clock supplies entry timestamps. Tests replace it.
var Clock = time.Now

func entryRepo(db dbx.DBTX) *entries.SQLiteRepository {
	return entries.NewSQLiteRepository(db, Clock)
}

func prefRepo(db dbx.DBTX) *preferences.SQLiteRepository {
	return preferences.NewSQLiteRepository(db)
}

func loggerOr(log logging.Logger) logging.Logger {
	if log == nil {
		return logging.Nop()
	}
	return log
}

func validateNonNegativeInt(name string, value int) error {
	if value < 0 {
		return fmt.Errorf("%w: %s must be >= 0", common.ErrInvalidInput, name)
	}
	return nil
}

func validatePositive(name string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) || value <= 0 {
		return fmt.Errorf("%w: %s must be a finite number > 0", common.ErrInvalidInput, name)
	}
	return nil
}

// parseDay resolves a YYYY-MM-DD date in loc; empty means today.
func parseDay(date string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	date = strings.TrimSpace(date)
	if date == "" {
		y, m, d := Clock().In(loc).Date()
		return time.Date(y, m, d, 0, 0, 0, 0, loc), nil
	}
	t, err := time.ParseInLocation(nutrition.DateLayout, date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q (expected YYYY-MM-DD)", common.ErrInvalidInput, date)
	}
	return t, nil
}
