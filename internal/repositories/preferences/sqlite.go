package preferences

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/saadjs/caltrack/internal/common"
	"github.com/saadjs/caltrack/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM preferences WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get preference[%s]: %w", key, err)
	}
	return value, true, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, key, value string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("%w: preference key is required", common.ErrInvalidInput)
	}
	if value == "" {
		return r.Delete(ctx, key)
	}
	_, err := r.db.ExecContext(ctx, `
INSERT INTO preferences(key, value, updated_at) VALUES(?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
`, key, value)
	if err != nil {
		return fmt.Errorf("set preference[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM preferences WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete preference[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context) (map[string]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value FROM preferences ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list preferences: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan preference row: %w", err)
		}
		out[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate preference rows: %w", err)
	}
	return out, nil
}
