// Package entries is the entry store: persistence for diary entries.
//
// The Repository interface is what services depend on; SQLiteRepository
// implements it over a dbx.DBTX, so it works with either *sql.DB or *sql.Tx.
// Timestamps are stored as unix milliseconds in created_at, which keeps day
// queries a plain integer range scan on idx_entries_created_at.
//
// Inputs are validated at this boundary: a name is required and every
// numeric field must be finite and >= 0. A density of 0 is accepted (water,
// tea) and simply contributes no calories.
//
// Typical usage
//
//	repo := entries.NewSQLiteRepository(db, nil)
//	e, _ := repo.Add(ctx, model.NewEntry{Name: "apple", AmountG: 150, CaloriesPer100G: 52})
//	day, _ := repo.GetForDay(ctx, "2026-02-20", time.Local)
package entries
