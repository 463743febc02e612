// Package pgstorage keeps the key-value state in PostgreSQL, which lets favorites and
// recent searches follow a profile across devices.
package pgstorage

import (
	"context"
	"errors"
	"fmt"
	"github.com/Masterminds/squirrel"
	"github.com/gissleh/tawngbu/service"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"sort"
)

const defaultTable = "tawngbu_kv"

// Querier is the subset of *pgxpool.Pool the storage needs. pgx.Tx satisfies it as well.
type Querier interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Storage struct {
	q    Querier
	name string
	// table is name quoted for use in statements.
	table string
	psql  squirrel.StatementBuilderType
}

func New(q Querier, table string) *Storage {
	if table == "" {
		table = defaultTable
	}

	return &Storage{
		q:     q,
		name:  table,
		table: pgx.Identifier{table}.Sanitize(),
		psql:  squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Connect opens a pool for dsn, checks it and creates the table when missing.
func Connect(ctx context.Context, dsn, table string) (*Storage, *pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("pgstorage: connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("pgstorage: ping: %w", err)
	}

	storage := New(pool, table)
	if err := storage.Migrate(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}

	return storage, pool, nil
}

func (s *Storage) Migrate(ctx context.Context) error {
	_, err := s.q.Exec(ctx, fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`, s.table))
	if err != nil {
		return fmt.Errorf("pgstorage: migrate: %w", err)
	}

	return nil
}

func (s *Storage) Get(ctx context.Context, key string) (string, bool, error) {
	query, args, err := s.psql.Select("value").
		From(s.table).
		Where(squirrel.Eq{"key": key}).
		ToSql()
	if err != nil {
		return "", false, err
	}

	var value string
	err = s.q.QueryRow(ctx, query, args...).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	} else if err != nil {
		return "", false, fmt.Errorf("pgstorage: get %s: %w", key, err)
	}

	return value, true, nil
}

func (s *Storage) Set(ctx context.Context, key, value string) error {
	query, args, err := s.psql.Insert(s.table).
		Columns("key", "value").
		Values(key, value).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()").
		ToSql()
	if err != nil {
		return err
	}

	if _, err := s.q.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("pgstorage: set %s: %w", key, err)
	}

	return nil
}

// Update runs fn in a transaction holding an advisory lock per key, so instances sharing
// the database cannot interleave a read-modify-write on the same keys. Advisory locks
// cover keys that have no row yet.
func (s *Storage) Update(ctx context.Context, keys []string, fn func(storage service.Storage) error) error {
	tx, err := s.q.Begin(ctx)
	if err != nil {
		return fmt.Errorf("pgstorage: begin: %w", err)
	}

	if err := s.updateInTx(ctx, tx, keys, fn); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("pgstorage: rollback failed: %w (original error: %v)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("pgstorage: commit: %w", err)
	}

	return nil
}

func (s *Storage) updateInTx(ctx context.Context, tx pgx.Tx, keys []string, fn func(storage service.Storage) error) error {
	// A fixed lock order keeps two updates over overlapping keys from deadlocking.
	sorted := append([]string(nil), keys...)
	sort.Strings(sorted)

	for _, key := range sorted {
		query, args, err := s.psql.Select().
			Column(squirrel.Expr("pg_advisory_xact_lock(hashtext(?))", s.name+":"+key)).
			ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("pgstorage: lock %s: %w", key, err)
		}
	}

	return fn(&Storage{q: tx, name: s.name, table: s.table, psql: s.psql})
}
