// Package repository opens the configured database and wires the matching
// repository implementations.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/vncsmyrnk/motionvote/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/motionvote/internal/adapters/repository/sqlite"
	"github.com/vncsmyrnk/motionvote/internal/config"
	"github.com/vncsmyrnk/motionvote/internal/core/ports"
)

type Store struct {
	DB        *sql.DB
	Snapshots ports.MotionSnapshotRepository
	Results   ports.TallyResultRepository
}

func Open(ctx context.Context, cfg config.Config) (*Store, error) {
	driver, dsn := cfg.DataSource()
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", driver, err)
	}

	store := &Store{DB: db}
	switch driver {
	case config.DriverSQLite:
		// one writer at a time; concurrent tallies queue on the pool instead of failing with SQLITE_BUSY
		db.SetMaxOpenConns(1)
		if err := sqlite.CreateSchema(db); err != nil {
			db.Close()
			return nil, err
		}
		store.Snapshots = sqlite.NewMotionSnapshotRepository(db)
		store.Results = sqlite.NewTallyResultRepository(db)
	default:
		store.Snapshots = postgres.NewMotionSnapshotRepository(db)
		store.Results = postgres.NewTallyResultRepository(db)
	}
	return store, nil
}

func (s *Store) Close() error {
	return s.DB.Close()
}
