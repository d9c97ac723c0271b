// Package config loads application configuration.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envFile = "config/.env"

var keys = []string{
	"logging.level",
	"server.host",
	"server.port",
	"server.shutdown_timeout",
	"http.request_timeout",
	"http.body_limit",
	"postgres.host",
	"postgres.port",
	"postgres.user",
	"postgres.password",
	"postgres.db_name",
	"postgres.ssl_mode",
	"postgres.migrations_dir",
	"postgres.migrate_timeout",
	"postgres.query_timeout",
	"postgres.max_conns",
	"postgres.min_conns",
	"auth.secret",
	"auth.issuer",
	"auth.disabled",
	"import.max_rows",
	"import.max_file_bytes",
	"metrics.enabled",
	"metrics.path",
}

// NewConfig loads configuration from environment using viper with typed defaults and validation.
func NewConfig() (*Config, error) {
	v := viper.New()
	if envMap, err := godotenv.Read(envFile); err == nil {
		for k, v := range envMap {
			if _, exists := os.LookupEnv(k); !exists {
				_ = os.Setenv(k, v)
			}
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	bindEnvs(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.shutdown_timeout", 5*time.Second)

	v.SetDefault("http.request_timeout", 10*time.Second)
	v.SetDefault("http.body_limit", 16<<20)

	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.user", "postgres")
	v.SetDefault("postgres.password", "postgres")
	v.SetDefault("postgres.db_name", "impacttrack")
	v.SetDefault("postgres.ssl_mode", "disable")
	v.SetDefault("postgres.migrations_dir", "db/migrations")
	v.SetDefault("postgres.migrate_timeout", 30*time.Second)
	v.SetDefault("postgres.query_timeout", 5*time.Second)
	v.SetDefault("postgres.max_conns", 10)
	v.SetDefault("postgres.min_conns", 2)

	v.SetDefault("auth.issuer", "impacttrack")
	v.SetDefault("auth.disabled", false)

	v.SetDefault("import.max_rows", 5000)
	v.SetDefault("import.max_file_bytes", 10<<20)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
}

func bindEnvs(v *viper.Viper) {
	for _, k := range keys {
		_ = v.BindEnv(k)
	}
}
