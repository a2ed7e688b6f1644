package entries

import (
	"context"
	"time"

	"github.com/saadjs/caltrack/internal/model"
)

// Repository persists diary entries. Entries are immutable once added.
type Repository interface {
	// Add validates and stores a new entry, assigning ID and CreatedAt.
	Add(ctx context.Context, in model.NewEntry) (model.Entry, error)

	// Import stores an entry with its original CreatedAt and a fresh ID.
	Import(ctx context.Context, e model.Entry) (model.Entry, error)

	// GetByID returns common.ErrNotFound when the id does not exist.
	GetByID(ctx context.Context, id int64) (model.Entry, error)

	// GetForDay returns the entries created on date (YYYY-MM-DD) in loc, in
	// no particular order.
	GetForDay(ctx context.Context, date string, loc *time.Location) ([]model.Entry, error)

	// GetRange returns entries created in [from, to).
	GetRange(ctx context.Context, from, to time.Time) ([]model.Entry, error)

	GetAll(ctx context.Context) ([]model.Entry, error)

	Delete(ctx context.Context, id int64) error
}
