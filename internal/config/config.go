package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"
)

type (
	Config struct {
		HTTP
		Global
		Database
		CORS
		UI
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		Environment              Environment
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Driver   string // "sqlite" or "postgres"
		Path     string // SQLite file path
		URL      string // PostgreSQL DSN
		LogLevel string // silent, error, warn, info
	}
	CORS struct {
		AllowedOrigins []string
	}
	UI struct {
		Enabled bool
	}
)

// IsDevelopment reports whether verbose error details should be exposed.
func (c *Config) IsDevelopment() bool {
	return c.Global.Environment == EnvDevelopment
}

// Validate checks the combinations viper cannot express as defaults.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.Path == "" {
			return errors.New("DATABASE_PATH is required when DATABASE_DRIVER is sqlite")
		}
	case DriverPostgres:
		if c.Database.URL == "" {
			return errors.New("DATABASE_URL is required when DATABASE_DRIVER is postgres")
		}
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q (want %s or %s)", c.Database.Driver, DriverSQLite, DriverPostgres)
	}

	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.HTTP.Port)
	}

	switch c.Global.Environment {
	case EnvDevelopment, EnvProduction:
	default:
		return fmt.Errorf("unsupported APP_ENV %q", c.Global.Environment)
	}
	return nil
}

// loadEnvFile merges a dotenv file into the process environment.
// Variables that are already set win over the file.
func loadEnvFile(path string) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("WARNING: could not load %s: %v", path, err)
	}
}

// splitList parses a comma-separated setting, dropping empty items.
func splitList(raw string) []string {
	var items []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func NewConfig() *Config {
	loadEnvFile(DefaultEnvFile)

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8080)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 5)
	v.SetDefault("app_env", string(EnvProduction))

	// Database defaults
	v.SetDefault("database_driver", DriverSQLite)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("database_url", "")
	v.SetDefault("database_log_level", "warn")

	// The Angular dev server runs on :4200
	v.SetDefault("cors_allowed_origins", "http://localhost:4200")
	v.SetDefault("ui_enabled", true)

	environment := Environment(strings.ToLower(v.GetString("APP_ENV")))
	origins := splitList(v.GetString("CORS_ALLOWED_ORIGINS"))
	if environment == EnvDevelopment {
		origins = []string{"*"}
	}

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			Environment:              environment,
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Driver:   strings.ToLower(v.GetString("DATABASE_DRIVER")),
			Path:     v.GetString("DATABASE_PATH"),
			URL:      v.GetString("DATABASE_URL"),
			LogLevel: strings.ToLower(v.GetString("DATABASE_LOG_LEVEL")),
		},
		CORS: CORS{
			AllowedOrigins: origins,
		},
		UI: UI{
			Enabled: v.GetBool("UI_ENABLED"),
		},
	}
}
