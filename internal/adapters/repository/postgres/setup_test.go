package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupPostgresContainer(ctx context.Context) (testcontainers.Container, string, error) {
	pgContainer, err := tcpostgres.Run(ctx, "postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("user"),
		tcpostgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", err
	}

	return pgContainer, connStr, nil
}

func applyMigrations(db *sql.DB) error {
	dirPath := "migrations"

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), "up.sql") {
			continue
		}

		content, err := os.ReadFile(filepath.Join(dirPath, entry.Name()))
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", entry.Name(), err)
		}

		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", entry.Name(), err)
		}
	}

	return nil
}

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	container, dbURL, err := setupPostgresContainer(ctx)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	db, err := sql.Open("postgres", dbURL)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, applyMigrations(db))
	return db
}

// seedMotion creates a meeting with one motion, its options and n voters and
// returns the motion id, the option ids and the voter ids.
func seedMotion(t *testing.T, db *sql.DB, motionType, status string, numWinners *int, options []string, voters int) (int64, []int64, []int64) {
	t.Helper()

	var meetingID, motionID int64
	require.NoError(t, db.QueryRow(`INSERT INTO meetings (title) VALUES ('AGM') RETURNING id`).Scan(&meetingID))
	require.NoError(t, db.QueryRow(
		`INSERT INTO motions (meeting_id, title, type, status, num_winners) VALUES ($1, 'Board', $2, $3, $4) RETURNING id`,
		meetingID, motionType, status, numWinners,
	).Scan(&motionID))

	optionIDs := make([]int64, len(options))
	for i, text := range options {
		require.NoError(t, db.QueryRow(
			`INSERT INTO options (motion_id, text) VALUES ($1, $2) RETURNING id`, motionID, text,
		).Scan(&optionIDs[i]))
	}

	voterIDs := make([]int64, voters)
	for i := range voterIDs {
		require.NoError(t, db.QueryRow(
			`INSERT INTO voters (meeting_id, name, code) VALUES ($1, $2, $3) RETURNING id`,
			meetingID, fmt.Sprintf("Voter %d", i), fmt.Sprintf("m%d-v%d", motionID, i),
		).Scan(&voterIDs[i]))
	}
	return motionID, optionIDs, voterIDs
}

func castVote(t *testing.T, db *sql.DB, voterID, motionID, optionID int64, rank any) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO votes (voter_id, motion_id, option_id, rank) VALUES ($1, $2, $3, $4)`,
		voterID, motionID, optionID, rank,
	)
	require.NoError(t, err)
}
