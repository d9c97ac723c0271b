package config

import (
	"errors"
	"fmt"
	"time"
)

// Config holds application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Postgres PostgresConfig `mapstructure:"postgres"`
	HTTP     HTTPConfig     `mapstructure:"http"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Import   ImportConfig   `mapstructure:"import"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// Validate ensures required fields are present.
func (c Config) Validate() error {
	if c.Server.Port == 0 {
		return errors.New("server.port is required")
	}
	if c.Postgres.User == "" || c.Postgres.Password == "" || c.Postgres.DBName == "" {
		return errors.New("postgres credentials are required")
	}
	if c.Postgres.Host == "" {
		return errors.New("postgres.host is required")
	}
	if !c.Auth.Disabled && c.Auth.Secret == "" {
		return errors.New("auth.secret is required unless auth.disabled is set")
	}
	if c.Import.MaxRows <= 0 || c.Import.MaxFileBytes <= 0 {
		return errors.New("import.max_rows and import.max_file_bytes must be positive")
	}
	return nil
}

// ServerAddr returns host:port for HTTP server binding.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// ServerConfig contains HTTP server options.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// HTTPConfig contains transport settings.
type HTTPConfig struct {
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	BodyLimit      int           `mapstructure:"body_limit"`
}

// LoggingConfig contains logger preferences.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// AuthConfig holds bearer token verification settings.
type AuthConfig struct {
	Secret   string `mapstructure:"secret"`
	Issuer   string `mapstructure:"issuer"`
	Disabled bool   `mapstructure:"disabled"`
}

// ImportConfig bounds spreadsheet uploads.
type ImportConfig struct {
	MaxRows      int   `mapstructure:"max_rows"`
	MaxFileBytes int64 `mapstructure:"max_file_bytes"`
}

// MetricsConfig controls the prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// PostgresConfig describes database connection parameters.
type PostgresConfig struct {
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port"`
	User           string        `mapstructure:"user"`
	Password       string        `mapstructure:"password"`
	DBName         string        `mapstructure:"db_name"`
	SSLMode        string        `mapstructure:"ssl_mode"`
	MigrationsDir  string        `mapstructure:"migrations_dir"`
	MigrateTimeout time.Duration `mapstructure:"migrate_timeout"`
	QueryTimeout   time.Duration `mapstructure:"query_timeout"`
	MaxConns       int32         `mapstructure:"max_conns"`
	MinConns       int32         `mapstructure:"min_conns"`
}

// DSN returns a Postgres connection string.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.DBName, p.SSLMode,
	)
}
