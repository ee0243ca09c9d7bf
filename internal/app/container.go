package app

import (
	"fmt"

	"github.com/incidentdesk/backend/internal/infra/datasource"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ContainerConfig holds the resources shared across the application.
type ContainerConfig struct {
	Datasource *datasource.Params
	Pool       *pgxpool.Pool
}

func (c ContainerConfig) Validate() error {
	if c.Datasource == nil {
		return fmt.Errorf("datasource params are required")
	}
	if c.Pool == nil {
		return fmt.Errorf("pool is required")
	}
	return nil
}

// Container exposes the primary database pool to the rest of the backend.
// Pool is the only connection source; handlers and repositories share it.
type Container struct {
	Datasource *datasource.Params
	Pool       *pgxpool.Pool
}

func NewContainer(cfg ContainerConfig) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid container config: %w", err)
	}

	return &Container{
		Datasource: cfg.Datasource,
		Pool:       cfg.Pool,
	}, nil
}

// Close releases the pool. It blocks until all acquired connections are released.
func (c *Container) Close() {
	if c.Pool != nil {
		c.Pool.Close()
	}
}
