package main

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/vncsmyrnk/motionvote/internal/adapters/repository/sqlite"
	"github.com/vncsmyrnk/motionvote/internal/config"
)

// Usage: migrations [flags] <migration-name>
// SQLite databases ignore the name and receive the full schema.
func main() {
	if err := run(os.Args[1:]); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load("migrations", args)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	driver, dsn := cfg.DataSource()
	if driver == config.DriverPostgres && len(cfg.Args) == 0 {
		return errors.New("a migration name is required")
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if driver == config.DriverSQLite {
		if err := sqlite.CreateSchema(db); err != nil {
			return err
		}
		slog.Info("sqlite schema ready", "path", dsn)
		return nil
	}

	migrationName := cfg.Args[0]
	basePath := filepath.Join(".", "internal", "adapters", "repository", "postgres", "migrations")
	fileContent, err := migrationFileContent(basePath, migrationName)
	if err != nil {
		return fmt.Errorf("failed to read migration %s: %w", migrationName, err)
	}

	if _, err := db.Exec(string(fileContent)); err != nil {
		return fmt.Errorf("failed to execute migration %s: %w", migrationName, err)
	}

	slog.Info("migration file executed successfully", "name", migrationName)
	return nil
}

func migrationFileContent(basePath string, migrationName string) ([]byte, error) {
	filePath, err := migrationFilePath(basePath, migrationName)
	if err != nil {
		return nil, err
	}

	return os.ReadFile(filepath.Join(basePath, filePath))
}

func migrationFilePath(basePath string, migrationName string) (string, error) {
	regex, err := regexp.Compile(fmt.Sprintf(`^.*%s\.sql$`, regexp.QuoteMeta(migrationName)))
	if err != nil {
		return "", fmt.Errorf("invalid pattern: %w", err)
	}

	files, err := os.ReadDir(basePath)
	if err != nil {
		return "", err
	}
	for _, f := range files {
		if f.IsDir() {
			continue
		}

		if regex.MatchString(f.Name()) {
			return f.Name(), nil
		}
	}

	return "", fmt.Errorf("migration file %q not found", migrationName)
}
