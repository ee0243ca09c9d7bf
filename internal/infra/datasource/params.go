// Package datasource resolves the primary database connection parameters
// from DATABASE_URL and the spring.datasource.* properties.
package datasource

import (
	"strings"
	"time"
)

const (
	// DriverID names the database/sql driver registered by pgx.
	DriverID = "pgx"

	// DriverPrefix marks a connection string that is already in driver form.
	DriverPrefix = "jdbc:"

	// PostgresScheme and PostgresShortScheme are the URI schemes accepted in DATABASE_URL.
	PostgresScheme      = "postgresql://"
	PostgresShortScheme = "postgres://"

	// DefaultPort is used when DATABASE_URL omits the port.
	DefaultPort = 5432
)

// Pool sizing policy applied to every resolved datasource.
const (
	DefaultMaxConns          = 10
	DefaultMinIdleConns      = 2
	DefaultConnectionTimeout = 30 * time.Second
	DefaultIdleTimeout       = 10 * time.Minute
	DefaultMaxLifetime       = 30 * time.Minute
)

// Source identifies which configuration channel produced the connection string.
type Source int

const (
	SourceUnknown Source = iota
	SourceDatabaseURL
	SourceJDBCURL
	SourceDatasourceProperties
)

func (s Source) String() string {
	switch s {
	case SourceDatabaseURL:
		return "DATABASE_URL"
	case SourceJDBCURL:
		return "DATABASE_URL (jdbc)"
	case SourceDatasourceProperties:
		return "spring.datasource"
	default:
		return "unknown"
	}
}

// PoolPolicy holds the sizing and timing settings handed to the connection pool.
type PoolPolicy struct {
	MaxConns          int32
	MinIdleConns      int32
	ConnectionTimeout time.Duration
	IdleTimeout       time.Duration
	MaxLifetime       time.Duration
}

// DefaultPoolPolicy returns the fixed pool policy.
func DefaultPoolPolicy() PoolPolicy {
	return PoolPolicy{
		MaxConns:          DefaultMaxConns,
		MinIdleConns:      DefaultMinIdleConns,
		ConnectionTimeout: DefaultConnectionTimeout,
		IdleTimeout:       DefaultIdleTimeout,
		MaxLifetime:       DefaultMaxLifetime,
	}
}

// Params is the resolved connection configuration for the primary pool.
// Empty Username or Password means unset: the pool falls back to its own
// defaults (PGUSER, PGPASSWORD, .pgpass).
type Params struct {
	URL      string
	Username string
	Password string
	Driver   string
	Source   Source
	Pool     PoolPolicy
}

// DSN returns the connection string in the form pgx parses. For a jdbc:
// URL the driver prefix is removed and JDBC-only query parameters are
// translated (see jdbcToPgx); any other URL is returned unchanged.
func (p *Params) DSN() string {
	if !strings.HasPrefix(p.URL, DriverPrefix) {
		return p.URL
	}
	return jdbcToPgx(strings.TrimPrefix(p.URL, DriverPrefix))
}

// Redacted returns URL with any embedded credentials masked.
func (p *Params) Redacted() string {
	return MaskURL(p.URL)
}

func (p *Params) applyCredentials(username, password string) {
	if username != "" {
		p.Username = username
	}
	if password != "" {
		p.Password = password
	}
}
