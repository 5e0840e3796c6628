// Package metadata implements the client's local storage: a string
// key/value store persisted in SQLite, playing the role a browser's
// localStorage plays for the docs site.
package metadata

import (
	"context"
)

// Repository is a persistent string key/value store.
//
// Get returns ok == false when the key is absent. Remove ignores absent keys.
type Repository interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, keys ...string) error
}
