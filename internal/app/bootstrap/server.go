// Package bootstrap provides application startup utilities for the backend.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/incidentdesk/backend/internal/app"
	"github.com/incidentdesk/backend/internal/infra/datasource"
	"github.com/incidentdesk/backend/internal/infra/db"
)

const (
	defaultStartupTimeout  = 30 * time.Second
	defaultShutdownTimeout = 10 * time.Second
)

// RunFunc runs the application on top of the opened container until ctx
// is cancelled by a shutdown signal.
type RunFunc func(ctx context.Context, container *app.Container) error

type ServerConfig struct {
	ServiceName     string
	Datasource      datasource.Inputs
	StartupTimeout  time.Duration
	ShutdownTimeout time.Duration
	Run             RunFunc // optional: wait for a signal when nil
}

func (c *ServerConfig) Validate() error {
	if c.ServiceName == "" {
		return fmt.Errorf("service name is required")
	}
	return nil
}

func (c *ServerConfig) applyDefaults() {
	if c.StartupTimeout <= 0 {
		c.StartupTimeout = defaultStartupTimeout
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = defaultShutdownTimeout
	}
}

// StartServer resolves the datasource, opens the primary pool and runs the
// application until SIGTERM or SIGINT. Configuration and connection errors
// are returned unchanged so the caller can abort startup.
func StartServer(cfg ServerConfig) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	cfg.applyDefaults()

	slog.Info("starting service", "name", cfg.ServiceName)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	container, err := Open(ctx, cfg.Datasource, cfg.StartupTimeout)
	if err != nil {
		return err
	}

	runErr := run(ctx, cfg.Run, container)

	closeContainer(container, cfg.ShutdownTimeout)
	slog.Info("service shutdown complete", "name", cfg.ServiceName)

	return runErr
}

// Open resolves inputs and opens the primary pool within startupTimeout.
func Open(ctx context.Context, inputs datasource.Inputs, startupTimeout time.Duration) (*app.Container, error) {
	params, err := datasource.Resolve(inputs)
	if err != nil {
		return nil, fmt.Errorf("resolve datasource: %w", err)
	}
	logDatasource(params)

	openCtx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()

	pool, err := db.NewPool(openCtx, params)
	if err != nil {
		return nil, fmt.Errorf("database connection: %w", err)
	}

	stats := db.Stats(pool)
	slog.Info("postgres connected",
		"max_conns", stats.MaxConns,
		"total_conns", stats.TotalConns,
		"idle_conns", stats.IdleConns,
	)

	container, err := app.NewContainer(app.ContainerConfig{
		Datasource: params,
		Pool:       pool,
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("container: %w", err)
	}

	return container, nil
}

func run(ctx context.Context, fn RunFunc, container *app.Container) error {
	if fn == nil {
		slog.Info("waiting for shutdown signal")
		<-ctx.Done()
		slog.Info("shutdown signal received")
		return nil
	}

	if err := fn(ctx, container); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}

// closeContainer closes the pool, giving up after timeout if connections
// are still held.
func closeContainer(container *app.Container, timeout time.Duration) {
	done := make(chan struct{})
	go func() {
		container.Close()
		close(done)
	}()

	select {
	case <-done:
		slog.Info("database pool closed")
	case <-time.After(timeout):
		slog.Warn("database pool close timed out", "timeout", timeout)
	}
}
