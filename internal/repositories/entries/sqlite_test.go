package entries

import (
	"context"
	"database/sql"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saadjs/caltrack/internal/common"
	"github.com/saadjs/caltrack/internal/db"
	"github.com/saadjs/caltrack/internal/model"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := db.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, db.Migrate(context.Background(), conn))
	return conn
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func TestAdd_AssignsIDAndTimestamp(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 2, 20, 10, 0, 0, 0, time.UTC)}
	r := NewSQLiteRepository(setupDB(t), clock.Now)
	ctx := context.Background()

	e, err := r.Add(ctx, model.NewEntry{Name: "  apple ", AmountG: 150, CaloriesPer100G: 52, CarbsPer100G: 14})
	require.NoError(t, err)
	assert.Positive(t, e.ID)
	assert.Equal(t, "apple", e.Name)
	assert.Equal(t, clock.t.UnixMilli(), e.CreatedAt)

	got, err := r.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, e, got)
}

func TestAdd_RejectsInvalidInput(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t), nil)
	ctx := context.Background()

	cases := map[string]model.NewEntry{
		"empty name":       {Name: " ", AmountG: 100, CaloriesPer100G: 50},
		"negative amount":  {Name: "x", AmountG: -1, CaloriesPer100G: 50},
		"negative density": {Name: "x", AmountG: 100, CaloriesPer100G: -5},
		"nan amount":       {Name: "x", AmountG: math.NaN(), CaloriesPer100G: 50},
		"inf salt":         {Name: "x", AmountG: 100, CaloriesPer100G: 50, SaltPer100G: math.Inf(1)},
	}
	for name, in := range cases {
		_, err := r.Add(ctx, in)
		require.ErrorIs(t, err, common.ErrInvalidInput, name)
	}

	all, err := r.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestAdd_AcceptsZeroDensity(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t), nil)
	e, err := r.Add(context.Background(), model.NewEntry{Name: "water", AmountG: 250})
	require.NoError(t, err)
	assert.Zero(t, e.CaloriesPer100G)
}

func TestGetByID_NotFound(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t), nil)
	_, err := r.GetByID(context.Background(), 42)
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestGetForDay_UsesHalfOpenLocalDay(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	clock := &fakeClock{}
	r := NewSQLiteRepository(setupDB(t), clock.Now)
	ctx := context.Background()

	add := func(name string, at time.Time) {
		clock.t = at
		_, err := r.Add(ctx, model.NewEntry{Name: name, AmountG: 100, CaloriesPer100G: 100})
		require.NoError(t, err)
	}
	add("before", time.Date(2026, 3, 1, 23, 59, 59, 0, berlin))
	add("start", time.Date(2026, 3, 2, 0, 0, 0, 0, berlin))
	add("late", time.Date(2026, 3, 2, 23, 59, 0, 0, berlin))
	add("next", time.Date(2026, 3, 3, 0, 0, 0, 0, berlin))

	day, err := r.GetForDay(ctx, "2026-03-02", berlin)
	require.NoError(t, err)
	names := make([]string, 0, len(day))
	for _, e := range day {
		names = append(names, e.Name)
	}
	assert.ElementsMatch(t, []string{"start", "late"}, names)

	_, err = r.GetForDay(ctx, "02/03/2026", berlin)
	require.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestGetForDay_DSTDayHas23Hours(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	clock := &fakeClock{t: time.Date(2026, 3, 29, 23, 30, 0, 0, berlin)}
	r := NewSQLiteRepository(setupDB(t), clock.Now)
	ctx := context.Background()
	_, err = r.Add(ctx, model.NewEntry{Name: "late snack", AmountG: 50, CaloriesPer100G: 500})
	require.NoError(t, err)

	day, err := r.GetForDay(ctx, "2026-03-29", berlin)
	require.NoError(t, err)
	require.Len(t, day, 1)

	next, err := r.GetForDay(ctx, "2026-03-30", berlin)
	require.NoError(t, err)
	assert.Empty(t, next)
}

func TestGetAll_NewestFirst(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)}
	r := NewSQLiteRepository(setupDB(t), clock.Now)
	ctx := context.Background()

	first, err := r.Add(ctx, model.NewEntry{Name: "a", AmountG: 1, CaloriesPer100G: 1})
	require.NoError(t, err)
	same, err := r.Add(ctx, model.NewEntry{Name: "b", AmountG: 1, CaloriesPer100G: 1})
	require.NoError(t, err)
	clock.t = clock.t.Add(time.Hour)
	later, err := r.Add(ctx, model.NewEntry{Name: "c", AmountG: 1, CaloriesPer100G: 1})
	require.NoError(t, err)

	all, err := r.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []int64{later.ID, same.ID, first.ID}, []int64{all[0].ID, all[1].ID, all[2].ID})
}

func TestImport_KeepsCreatedAt(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t), nil)
	ctx := context.Background()

	in := model.Entry{ID: 99, Name: "soup", AmountG: 400, CaloriesPer100G: 45, CreatedAt: 1767225600000}
	got, err := r.Import(ctx, in)
	require.NoError(t, err)
	assert.NotEqual(t, int64(99), got.ID)
	assert.Equal(t, in.CreatedAt, got.CreatedAt)

	_, err = r.Import(ctx, model.Entry{Name: "soup", AmountG: 1})
	require.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestDelete(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t), nil)
	ctx := context.Background()

	e, err := r.Add(ctx, model.NewEntry{Name: "x", AmountG: 10, CaloriesPer100G: 10})
	require.NoError(t, err)
	require.NoError(t, r.Delete(ctx, e.ID))
	require.ErrorIs(t, r.Delete(ctx, e.ID), common.ErrNotFound)
	require.ErrorIs(t, r.Delete(ctx, 0), common.ErrInvalidInput)
}

func TestQueries_DBErrorWrapped(t *testing.T) {
	conn := setupDB(t)
	r := NewSQLiteRepository(conn, nil)
	ctx := context.Background()
	require.NoError(t, conn.Close())

	_, err := r.GetAll(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list entries")

	_, err = r.Add(ctx, model.NewEntry{Name: "x", AmountG: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert entry")
}
