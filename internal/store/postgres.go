// Package store implements the relational persistence for product cost rows
// and the daily net profit table.
package store

import (
	"context"
	"embed"
	"fmt"
	"time"

	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	migrate "github.com/rubenv/sql-migrate"
)

// Config defines configurations to connect the database.
type Config struct {
	DSN                string `mapstructure:"dsn"`
	Automigrate        bool   `mapstructure:"automigrate"`
	MaxOpenConnections int    `mapstructure:"max_open_connections"`
	MaxIdleConnections int    `mapstructure:"max_idle_connections"`
}

// PGStore implements dependency.MetricsStore on Postgres.
type PGStore struct {
	db *sqlx.DB
}

//go:embed sql
var fs embed.FS

// New connects to the database, optionally applies migrations and returns a
// ready store.
func New(ctx context.Context, cfg Config) (*PGStore, error) {
	db, err := sqlx.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("couldn't open database: %w", err)
	}

	if cfg.MaxOpenConnections > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConnections)
	}
	if cfg.MaxIdleConnections > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConnections)
	}
	db.SetConnMaxLifetime(2 * time.Minute)
	db.SetConnMaxIdleTime(30 * time.Second)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if cfg.Automigrate {
		slog.Default().InfoContext(ctx, "applying migrations")
		source := &migrate.EmbedFileSystemMigrationSource{FileSystem: fs, Root: "sql"}
		n, err := migrate.Exec(db.Unsafe().DB, "postgres", source, migrate.Up)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("migration failed: %w", err)
		}
		slog.Default().InfoContext(ctx, "migrations applied", slog.Int("count", n))
	}

	return &PGStore{db: db}, nil
}

// Close releases the connection pool.
func (s *PGStore) Close() {
	s.db.Close()
}
