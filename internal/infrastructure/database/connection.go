package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"catalogstats/internal/logging"
)

// NewPool creates a pgx connection pool for PostgreSQL.
func NewPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	logging.Info().Msg("✅ PostgreSQL connected")
	return pool, nil
}

// DB is an open catalog store: a database/sql handle plus its dialect.
type DB struct {
	SQL     *sql.DB
	Dialect Dialect
	pool    *pgxpool.Pool
}

// sqlitePragmas are applied to every pooled SQLite connection.
const sqlitePragmas = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

// Open connects to the store named by dsn (postgres://… or sqlite://path).
func Open(ctx context.Context, dsn string) (*DB, error) {
	dialect, target, err := ParseDSN(dsn)
	if err != nil {
		return nil, err
	}

	switch dialect {
	case DialectPostgres:
		pool, err := NewPool(ctx, target)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		return &DB{SQL: stdlib.OpenDBFromPool(pool), Dialect: dialect, pool: pool}, nil

	default:
		db, err := sql.Open("sqlite", "file:"+target+"?"+sqlitePragmas)
		if err != nil {
			return nil, fmt.Errorf("open sqlite db: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("ping sqlite db: %w", err)
		}
		logging.Info().Str("path", target).Msg("✅ SQLite opened")
		return &DB{SQL: db, Dialect: dialect}, nil
	}
}

// Close closes the database/sql handle and, for PostgreSQL, the pool under it.
func (db *DB) Close() error {
	if db == nil || db.SQL == nil {
		return nil
	}
	err := db.SQL.Close()
	if db.pool != nil {
		db.pool.Close()
	}
	return err
}
