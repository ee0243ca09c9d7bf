// Package db opens the primary PostgreSQL connection pool.
package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/incidentdesk/backend/internal/infra/datasource"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNilParams = errors.New("datasource params are required")

// NewPoolConfig builds the pgxpool configuration for params without
// connecting. Username and Password only override what the connection
// string (or PGUSER, PGPASSWORD, .pgpass) provides when they are set.
func NewPoolConfig(params *datasource.Params) (*pgxpool.Config, error) {
	if params == nil {
		return nil, ErrNilParams
	}

	config, err := pgxpool.ParseConfig(params.DSN())
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}

	if params.Username != "" {
		config.ConnConfig.User = params.Username
	}
	if params.Password != "" {
		config.ConnConfig.Password = params.Password
	}

	config.MaxConns = params.Pool.MaxConns
	config.MinConns = params.Pool.MinIdleConns
	config.ConnConfig.ConnectTimeout = params.Pool.ConnectionTimeout
	config.MaxConnIdleTime = params.Pool.IdleTimeout
	config.MaxConnLifetime = params.Pool.MaxLifetime

	return config, nil
}

// NewPool opens the connection pool described by params and verifies it
// with a ping. Connection failures are returned as is.
func NewPool(ctx context.Context, params *datasource.Params) (*pgxpool.Pool, error) {
	config, err := NewPoolConfig(params)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// PoolStats is a point-in-time view of pool usage.
type PoolStats struct {
	MaxConns      int32
	TotalConns    int32
	IdleConns     int32
	AcquiredConns int32
}

func Stats(pool *pgxpool.Pool) PoolStats {
	stat := pool.Stat()
	return PoolStats{
		MaxConns:      stat.MaxConns(),
		TotalConns:    stat.TotalConns(),
		IdleConns:     stat.IdleConns(),
		AcquiredConns: stat.AcquiredConns(),
	}
}
