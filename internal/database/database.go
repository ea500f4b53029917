package database

import (
	"context"
	"fmt"
	"time"

	"wiki-quiz/internal/config"
	"wiki-quiz/internal/logger"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// DriverName is the database/sql driver registered by pgx's stdlib package.
const DriverName = "pgx"

const pingTimeout = 5 * time.Second

// NewSQLXPostgresDB opens a pooled Postgres connection and verifies it with a ping.
func NewSQLXPostgresDB(ctx context.Context, dsn string, pool config.DBConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open(DriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open Postgres database: %w", err)
	}

	if pool.MaxOpenConns > 0 {
		db.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.MaxIdleConns > 0 {
		db.SetMaxIdleConns(pool.MaxIdleConns)
	}
	if pool.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(pool.ConnMaxLifetime)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping Postgres database: %w", err)
	}

	logger.Get().Info("Connected to Postgres",
		zap.String("host", pool.Host),
		zap.String("database", pool.DBName),
		zap.Int("max_open_conns", pool.MaxOpenConns),
	)
	return db, nil
}
