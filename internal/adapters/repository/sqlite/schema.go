package sqlite

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables the tally service reads and writes.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

const schema = `
PRAGMA foreign_keys = ON;

CREATE TABLE IF NOT EXISTS meetings (
    id INTEGER PRIMARY KEY,
    title VARCHAR(200) NOT NULL,
    description TEXT
);

CREATE TABLE IF NOT EXISTS motions (
    id INTEGER PRIMARY KEY,
    meeting_id INTEGER NOT NULL REFERENCES meetings(id),
    title VARCHAR(200) NOT NULL,
    type VARCHAR(50) NOT NULL DEFAULT 'YES_NO',
    status VARCHAR(20) NOT NULL DEFAULT 'DRAFT',
    num_winners INTEGER
);

CREATE TABLE IF NOT EXISTS options (
    id INTEGER PRIMARY KEY,
    motion_id INTEGER NOT NULL REFERENCES motions(id),
    text VARCHAR(200) NOT NULL
);

CREATE TABLE IF NOT EXISTS voters (
    id INTEGER PRIMARY KEY,
    meeting_id INTEGER NOT NULL REFERENCES meetings(id),
    name VARCHAR(200) NOT NULL,
    code VARCHAR(50) NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS votes (
    id INTEGER PRIMARY KEY,
    voter_id INTEGER NOT NULL REFERENCES voters(id),
    motion_id INTEGER NOT NULL REFERENCES motions(id),
    option_id INTEGER NOT NULL REFERENCES options(id),
    rank INTEGER
);

CREATE INDEX IF NOT EXISTS idx_votes_motion_id ON votes(motion_id);

CREATE TABLE IF NOT EXISTS tally_results (
    id TEXT PRIMARY KEY,
    motion_id INTEGER NOT NULL REFERENCES motions(id),
    computed_at TEXT NOT NULL,
    inputs_hash TEXT NOT NULL,
    payload TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_tally_results_motion_id ON tally_results(motion_id, computed_at);
`
