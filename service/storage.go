package service

import (
	"context"
)

// Storage is the key-value collaborator that favorites, recent searches and the word of
// the day are persisted through. Get reports ok=false for keys that were never set.
type Storage interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// Updater is implemented by storages shared between processes. Update holds a lock on
// keys for the duration of fn, and fn's reads and writes go through the given Storage.
// Nothing fn wrote is kept if it returns an error.
type Updater interface {
	Update(ctx context.Context, keys []string, fn func(storage Storage) error) error
}
