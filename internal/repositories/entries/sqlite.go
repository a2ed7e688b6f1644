package entries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/saadjs/caltrack/internal/common"
	"github.com/saadjs/caltrack/internal/dbx"
	"github.com/saadjs/caltrack/internal/model"
)

const selectColumns = `id, name, amount_g, calories_per_100g, protein_per_100g, carbs_per_100g, fat_per_100g,
  saturated_fat_per_100g, sugars_per_100g, salt_per_100g, created_at`

// SQLiteRepository implements Repository using a DBTX.
type SQLiteRepository struct {
	db  dbx.DBTX
	now func() time.Time
}

// NewSQLiteRepository returns a repository bound to db. now supplies creation
// timestamps; nil means time.Now.
func NewSQLiteRepository(db dbx.DBTX, now func() time.Time) *SQLiteRepository {
	if now == nil {
		now = time.Now
	}
	return &SQLiteRepository{db: db, now: now}
}

func (r *SQLiteRepository) Add(ctx context.Context, in model.NewEntry) (model.Entry, error) {
	e := model.Entry{
		Name:                strings.TrimSpace(in.Name),
		AmountG:             in.AmountG,
		CaloriesPer100G:     in.CaloriesPer100G,
		ProteinPer100G:      in.ProteinPer100G,
		CarbsPer100G:        in.CarbsPer100G,
		FatPer100G:          in.FatPer100G,
		SaturatedFatPer100G: in.SaturatedFatPer100G,
		SugarsPer100G:       in.SugarsPer100G,
		SaltPer100G:         in.SaltPer100G,
		CreatedAt:           r.now().UnixMilli(),
	}
	return r.insert(ctx, e)
}

func (r *SQLiteRepository) Import(ctx context.Context, e model.Entry) (model.Entry, error) {
	e.ID = 0
	e.Name = strings.TrimSpace(e.Name)
	if e.CreatedAt <= 0 {
		return model.Entry{}, fmt.Errorf("%w: created_at must be > 0", common.ErrInvalidInput)
	}
	return r.insert(ctx, e)
}

func (r *SQLiteRepository) insert(ctx context.Context, e model.Entry) (model.Entry, error) {
	if err := Validate(e); err != nil {
		return model.Entry{}, err
	}
	res, err := r.db.ExecContext(ctx, `
INSERT INTO entries(name, amount_g, calories_per_100g, protein_per_100g, carbs_per_100g, fat_per_100g,
  saturated_fat_per_100g, sugars_per_100g, salt_per_100g, created_at)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, e.Name, e.AmountG, e.CaloriesPer100G, e.ProteinPer100G, e.CarbsPer100G, e.FatPer100G,
		e.SaturatedFatPer100G, e.SugarsPer100G, e.SaltPer100G, e.CreatedAt)
	if err != nil {
		return model.Entry{}, fmt.Errorf("insert entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Entry{}, fmt.Errorf("resolve inserted entry id: %w", err)
	}
	e.ID = id
	return e, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (model.Entry, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM entries WHERE id = ?`, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Entry{}, fmt.Errorf("entry %d: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return model.Entry{}, fmt.Errorf("get entry %d: %w", id, err)
	}
	return e, nil
}

func (r *SQLiteRepository) GetForDay(ctx context.Context, date string, loc *time.Location) ([]model.Entry, error) {
	if loc == nil {
		loc = time.Local
	}
	start, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(date), loc)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", common.ErrInvalidInput, date)
	}
	// AddDate keeps DST days at their real length.
	return r.GetRange(ctx, start, start.AddDate(0, 0, 1))
}

func (r *SQLiteRepository) GetRange(ctx context.Context, from, to time.Time) ([]model.Entry, error) {
	return r.query(ctx, `SELECT `+selectColumns+` FROM entries WHERE created_at >= ? AND created_at < ? ORDER BY created_at DESC, id DESC`,
		from.UnixMilli(), to.UnixMilli())
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]model.Entry, error) {
	return r.query(ctx, `SELECT `+selectColumns+` FROM entries ORDER BY created_at DESC, id DESC`)
}

func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: entry id must be > 0", common.ErrInvalidInput)
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete entry %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected for entry %d: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("entry %d: %w", id, common.ErrNotFound)
	}
	return nil
}

func (r *SQLiteRepository) query(ctx context.Context, query string, args ...any) ([]model.Entry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	out := make([]model.Entry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (model.Entry, error) {
	var e model.Entry
	err := s.Scan(&e.ID, &e.Name, &e.AmountG, &e.CaloriesPer100G, &e.ProteinPer100G, &e.CarbsPer100G, &e.FatPer100G,
		&e.SaturatedFatPer100G, &e.SugarsPer100G, &e.SaltPer100G, &e.CreatedAt)
	return e, err
}

// Validate checks the store's input schema for e.
func Validate(e model.Entry) error {
	if strings.TrimSpace(e.Name) == "" {
		return fmt.Errorf("%w: entry name is required", common.ErrInvalidInput)
	}
	fields := []struct {
		name  string
		value float64
	}{
		{"amount", e.AmountG},
		{"calories per 100g", e.CaloriesPer100G},
		{"protein per 100g", e.ProteinPer100G},
		{"carbs per 100g", e.CarbsPer100G},
		{"fat per 100g", e.FatPer100G},
		{"saturated fat per 100g", e.SaturatedFatPer100G},
		{"sugars per 100g", e.SugarsPer100G},
		{"salt per 100g", e.SaltPer100G},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s must be a finite number", common.ErrInvalidInput, f.name)
		}
		if f.value < 0 {
			return fmt.Errorf("%w: %s must be >= 0", common.ErrInvalidInput, f.name)
		}
	}
	return nil
}
