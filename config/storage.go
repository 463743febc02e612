package config

import (
	"context"
	"github.com/gissleh/tawngbu/adapters/jsonstorage"
	"github.com/gissleh/tawngbu/adapters/pgstorage"
	"github.com/gissleh/tawngbu/adapters/sqlitestorage"
	"github.com/gissleh/tawngbu/service"
	"strings"
)

const (
	DriverMemory   = "memory"
	DriverJSON     = "json"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// OpenStorage builds the configured key-value store. The returned close function is
// never nil.
func OpenStorage(ctx context.Context, cfg StorageConfig) (service.Storage, func(), error) {
	switch strings.ToLower(cfg.Driver) {
	case DriverMemory:
		return jsonstorage.New(""), func() {}, nil

	case DriverSQLite:
		storage, err := sqlitestorage.Open(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		return storage, func() { _ = storage.Close() }, nil

	case DriverPostgres:
		storage, pool, err := pgstorage.Connect(ctx, cfg.DSN, cfg.Table)
		if err != nil {
			return nil, nil, err
		}
		return storage, pool.Close, nil

	default:
		storage, err := jsonstorage.Open(cfg.Path, cfg.ReadOnly)
		if err != nil {
			return nil, nil, err
		}
		return storage, func() {}, nil
	}
}
