package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/avialine/flight-booking/internal/config"
	"github.com/avialine/flight-booking/internal/logger"
	"github.com/avialine/flight-booking/migrations"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// DB is the process-wide persistence factory. It owns the connection pool;
// repositories derive per-operation transactions from it and handlers never
// see raw connections.
type DB struct {
	*sql.DB
	logger *logger.Logger

	closeOnce sync.Once
}

// NewConnectPostgres opens the PostgreSQL connection pool described by cfg,
// verifies connectivity with a ping, and returns the ready factory.
//
// Exactly one DB is expected per process (see [DB.Close] for teardown).
func NewConnectPostgres(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	conn, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error occured during database connection")
		return nil, fmt.Errorf("error occured during database connection: %w", err)
	}

	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(4)

	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error connecting database (ping)")
		return nil, err
	}
	log.Info().Str("func", "NewConnectPostgres").Msg("connected to database successfully")

	return &DB{
		DB:     conn,
		logger: log,
	}, nil
}

// Migrate applies all pending schema migrations.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}

// Close releases the connection pool. It is safe to call multiple times;
// only the first call closes the pool.
func (db *DB) Close() error {
	var err error
	db.closeOnce.Do(func() {
		err = db.DB.Close()
	})
	return err
}

// postgresError returns the PostgreSQL error code carried by err, or an
// empty string when err does not originate from the pgx driver.
func postgresError(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}
