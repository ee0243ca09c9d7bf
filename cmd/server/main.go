package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/incidentdesk/backend/internal/app/bootstrap"
	"github.com/incidentdesk/backend/internal/infra/config"
	"github.com/spf13/pflag"
)

func main() {
	flags := pflag.NewFlagSet("server", pflag.ContinueOnError)
	configFile := flags.String("config", os.Getenv("CONFIG_FILE"), "path to the YAML config file (default application.yml)")
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(2)
	}

	cfg, err := config.LoadFile(*configFile)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	if cfg.ConfigFile != "" {
		slog.Info("config file loaded", "path", cfg.ConfigFile)
	}

	if err := bootstrap.StartServer(bootstrap.ServerConfig{
		ServiceName:     "backend",
		Datasource:      cfg.Datasource,
		StartupTimeout:  cfg.StartupTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}); err != nil {
		slog.Error("backend failed", "error", err)
		os.Exit(1)
	}
}
