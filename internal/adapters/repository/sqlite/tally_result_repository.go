package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/motionvote/internal/core/domain"
	"github.com/vncsmyrnk/motionvote/internal/core/ports"
)

type tallyResultRepository struct {
	db *sql.DB
}

func NewTallyResultRepository(db *sql.DB) ports.TallyResultRepository {
	return &tallyResultRepository{db: db}
}

// Save stores computed_at as fixed-width UTC text so it sorts lexically.
func (r *tallyResultRepository) Save(ctx context.Context, snapshot *domain.TallySnapshot) error {
	payload, err := json.Marshal(snapshot.Result)
	if err != nil {
		return fmt.Errorf("failed to encode tally result: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO tally_results (id, motion_id, computed_at, inputs_hash, payload) VALUES (?, ?, ?, ?, ?)`,
		snapshot.ID.String(),
		snapshot.MotionID,
		snapshot.ComputedAt.UTC().Format(timeLayout),
		snapshot.InputsHash,
		string(payload),
	)
	if err != nil {
		return fmt.Errorf("failed to save tally result for motion %d: %w", snapshot.MotionID, err)
	}
	return nil
}

func (r *tallyResultRepository) GetLatest(ctx context.Context, motionID int64) (*domain.TallySnapshot, error) {
	var id, computedAt, payload string
	snapshot := domain.TallySnapshot{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, motion_id, computed_at, inputs_hash, payload
		FROM tally_results
		WHERE motion_id = ?
		ORDER BY computed_at DESC, rowid DESC
		LIMIT 1
	`, motionID).Scan(&id, &snapshot.MotionID, &computedAt, &snapshot.InputsHash, &payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrResultNotFound
		}
		return nil, fmt.Errorf("failed to get tally result: %w", err)
	}

	if snapshot.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("failed to parse tally result id: %w", err)
	}
	if snapshot.ComputedAt, err = time.Parse(timeLayout, computedAt); err != nil {
		return nil, fmt.Errorf("failed to parse tally result time: %w", err)
	}
	if err := json.Unmarshal([]byte(payload), &snapshot.Result); err != nil {
		return nil, fmt.Errorf("failed to decode tally result: %w", err)
	}
	return &snapshot, nil
}

const timeLayout = "2006-01-02T15:04:05.000000000Z"
