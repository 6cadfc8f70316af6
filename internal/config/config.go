package config

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	HTTPAddr       string
	DatabaseDriver string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string

	SQLitePath string
	JWTSecret  string

	// Args holds the positional arguments left after flag parsing.
	Args []string
}

// Load reads .env when present, then flags. Every flag defaults to its
// environment variable.
func Load(name string, args []string) (Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found")
	}

	var cfg Config
	fs := flag.NewFlagSet(name, flag.ContinueOnError)

	fs.StringVar(&cfg.HTTPAddr, "addr", envOr("HTTP_ADDR", "0.0.0.0:8080"), "HTTP listen address")
	fs.StringVar(&cfg.DatabaseDriver, "db-driver", envOr("DATABASE_DRIVER", DriverPostgres), "Database driver (postgres or sqlite)")
	fs.StringVar(&cfg.PostgresHost, "db-host", os.Getenv("POSTGRES_HOST"), "Database host")
	fs.StringVar(&cfg.PostgresPort, "db-port", envOr("POSTGRES_PORT", "5432"), "Database port")
	fs.StringVar(&cfg.PostgresUser, "db-user", os.Getenv("POSTGRES_USER"), "Database user")
	fs.StringVar(&cfg.PostgresPassword, "db-pass", os.Getenv("POSTGRES_PASSWORD"), "Database password")
	fs.StringVar(&cfg.PostgresDB, "db-name", os.Getenv("POSTGRES_DB"), "Database name")
	fs.StringVar(&cfg.SQLitePath, "sqlite-path", envOr("SQLITE_PATH", "app.db"), "SQLite database file")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", os.Getenv("JWT_SECRET"), "Secret for admin access tokens (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	cfg.Args = fs.Args()

	switch cfg.DatabaseDriver {
	case DriverPostgres:
		if cfg.PostgresHost == "" || cfg.PostgresDB == "" {
			return Config{}, errors.New("postgres host and database name are required (use -db-host/-db-name or POSTGRES_HOST/POSTGRES_DB)")
		}
	case DriverSQLite:
		if cfg.SQLitePath == "" {
			return Config{}, errors.New("sqlite path required (use -sqlite-path or SQLITE_PATH)")
		}
	default:
		return Config{}, fmt.Errorf("unsupported database driver %q", cfg.DatabaseDriver)
	}

	return cfg, nil
}

// DataSource returns the database/sql driver name and connection string.
func (c Config) DataSource() (string, string) {
	if c.DatabaseDriver == DriverSQLite {
		return DriverSQLite, c.SQLitePath
	}
	return DriverPostgres, fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.PostgresUser, c.PostgresPassword, c.PostgresHost, c.PostgresPort, c.PostgresDB)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
