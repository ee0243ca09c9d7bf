package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/incidentdesk/backend/internal/infra/datasource"
	"github.com/spf13/viper"
)

const (
	KeyDatabaseURL        = "database_url"
	KeyDatasourceURL      = "spring.datasource.url"
	KeyDatasourceUsername = "spring.datasource.username"
	KeyDatasourcePassword = "spring.datasource.password"

	// DefaultConfigFile is read when present; a missing default file is not an error.
	DefaultConfigFile = "application.yml"

	defaultStartupTimeout  = 30 * time.Second
	defaultShutdownTimeout = 10 * time.Second
)

type Config struct {
	ConfigFile      string
	Datasource      datasource.Inputs
	LogLevel        slog.Level
	StartupTimeout  time.Duration
	ShutdownTimeout time.Duration
}

// Load reads configuration from the file named by CONFIG_FILE (or
// application.yml) and the process environment.
func Load() (*Config, error) {
	return LoadFile(os.Getenv("CONFIG_FILE"))
}

// LoadFile reads configuration from path and the process environment.
// Environment variables win over file values; spring.datasource.url is
// overridden by SPRING_DATASOURCE_URL and so on. An empty path means
// DefaultConfigFile, which may be absent.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	file, err := readConfigFile(v, path)
	if err != nil {
		return nil, err
	}

	inputs := datasource.Inputs{
		DatabaseURL: v.GetString(KeyDatabaseURL),
	}
	for _, f := range []struct {
		key string
		dst *string
	}{
		{KeyDatasourceURL, &inputs.URL},
		{KeyDatasourceUsername, &inputs.Username},
		{KeyDatasourcePassword, &inputs.Password},
	} {
		value, err := expandPlaceholders(v.GetString(f.key), os.LookupEnv)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.key, err)
		}
		*f.dst = value
	}

	return &Config{
		ConfigFile:      file,
		Datasource:      inputs,
		LogLevel:        getEnvLogLevel("LOG_LEVEL", slog.LevelInfo),
		StartupTimeout:  getEnvDuration("DB_STARTUP_TIMEOUT", defaultStartupTimeout),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}, nil
}

func readConfigFile(v *viper.Viper, path string) (string, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}

	if _, err := os.Stat(path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("config file %s: %w", path, err)
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return "", fmt.Errorf("read config file %s: %w", path, err)
	}
	return path, nil
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}

func getEnvLogLevel(key string, defaultValue slog.Level) slog.Level {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(value)); err != nil {
		return defaultValue
	}
	return level
}
