package bootstrap

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/incidentdesk/backend/internal/app"
	"github.com/incidentdesk/backend/internal/infra/datasource"
	testdb "github.com/incidentdesk/backend/internal/testutil/postgres"
)

func TestServerConfig_Validate(t *testing.T) {
	cfg := ServerConfig{}
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should fail without a service name")
	}

	cfg.ServiceName = "backend"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestServerConfig_ApplyDefaults(t *testing.T) {
	cfg := ServerConfig{ServiceName: "backend", ShutdownTimeout: time.Minute}
	cfg.applyDefaults()

	if cfg.StartupTimeout != defaultStartupTimeout {
		t.Errorf("StartupTimeout = %v, want %v", cfg.StartupTimeout, defaultStartupTimeout)
	}
	if cfg.ShutdownTimeout != time.Minute {
		t.Errorf("ShutdownTimeout = %v, want 1m", cfg.ShutdownTimeout)
	}
}

func TestStartServer_MissingConfiguration(t *testing.T) {
	err := StartServer(ServerConfig{ServiceName: "backend"})
	if !errors.Is(err, datasource.ErrMissingConfiguration) {
		t.Fatalf("StartServer() error = %v, want ErrMissingConfiguration", err)
	}
}

func TestStartServer_MalformedDatabaseURL(t *testing.T) {
	err := StartServer(ServerConfig{
		ServiceName: "backend",
		Datasource:  datasource.Inputs{DatabaseURL: "postgresql://:5432/db"},
	})
	if !errors.Is(err, datasource.ErrMalformedURL) {
		t.Fatalf("StartServer() error = %v, want ErrMalformedURL", err)
	}
}

func TestStartServer(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	databaseURL, cleanup := testdb.StartContainer(t)
	defer cleanup()

	t.Run("should run with the primary pool", func(t *testing.T) {
		var ran bool
		err := StartServer(ServerConfig{
			ServiceName: "backend",
			Datasource:  datasource.Inputs{DatabaseURL: databaseURL},
			Run: func(ctx context.Context, container *app.Container) error {
				ran = true
				if container.Datasource.Source != datasource.SourceDatabaseURL {
					t.Errorf("Source = %v, want DATABASE_URL", container.Datasource.Source)
				}
				return container.Pool.Ping(ctx)
			},
		})
		if err != nil {
			t.Fatalf("StartServer() error = %v", err)
		}
		if !ran {
			t.Error("Run was not called")
		}
	})

	t.Run("should return run errors", func(t *testing.T) {
		runErr := errors.New("boom")
		err := StartServer(ServerConfig{
			ServiceName: "backend",
			Datasource:  datasource.Inputs{DatabaseURL: databaseURL},
			Run: func(context.Context, *app.Container) error {
				return runErr
			},
		})
		if !errors.Is(err, runErr) {
			t.Fatalf("StartServer() error = %v, want %v", err, runErr)
		}
	})

	t.Run("should open from spring.datasource properties", func(t *testing.T) {
		params, err := datasource.Resolve(datasource.Inputs{DatabaseURL: databaseURL})
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}

		container, err := Open(context.Background(), datasource.Inputs{
			URL:      params.URL,
			Username: testdb.TestUsername,
			Password: testdb.TestPassword,
		}, 30*time.Second)
		if err != nil {
			t.Fatalf("Open() error = %v", err)
		}
		defer container.Close()

		if container.Datasource.Source != datasource.SourceDatasourceProperties {
			t.Errorf("Source = %v, want spring.datasource", container.Datasource.Source)
		}
	})
}
