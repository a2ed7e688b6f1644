// Package preferences is the preference store: a flat key/value table of
// user settings. Values are text; callers parse them.
package preferences

import "context"

type Repository interface {
	// Get reports ok=false when the key is unset.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set upserts key. An empty value deletes it.
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string]string, error)
}
