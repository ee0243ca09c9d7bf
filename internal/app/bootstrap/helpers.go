package bootstrap

import (
	"log/slog"

	"github.com/incidentdesk/backend/internal/infra/datasource"
)

// logDatasource logs the resolved datasource without credentials.
func logDatasource(params *datasource.Params) {
	slog.Info("datasource resolved",
		"source", params.Source.String(),
		"url", params.Redacted(),
		"username_set", params.Username != "",
		"password_set", params.Password != "",
		"driver", params.Driver,
		"max_conns", params.Pool.MaxConns,
		"min_idle_conns", params.Pool.MinIdleConns,
		"connection_timeout", params.Pool.ConnectionTimeout.String(),
		"idle_timeout", params.Pool.IdleTimeout.String(),
		"max_lifetime", params.Pool.MaxLifetime.String(),
	)
}
