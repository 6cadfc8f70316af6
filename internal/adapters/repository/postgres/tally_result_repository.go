package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vncsmyrnk/motionvote/internal/core/domain"
	"github.com/vncsmyrnk/motionvote/internal/core/ports"
)

type tallyResultRepository struct {
	db *sql.DB
}

func NewTallyResultRepository(db *sql.DB) ports.TallyResultRepository {
	return &tallyResultRepository{
		db: db,
	}
}

func (r *tallyResultRepository) Save(ctx context.Context, snapshot *domain.TallySnapshot) error {
	payload, err := json.Marshal(snapshot.Result)
	if err != nil {
		return fmt.Errorf("failed to encode tally result: %w", err)
	}

	query := `
		INSERT INTO tally_results (id, motion_id, computed_at, inputs_hash, payload)
		VALUES ($1, $2, $3, $4, $5::jsonb)
	`
	_, err = r.db.ExecContext(ctx, query, snapshot.ID, snapshot.MotionID, snapshot.ComputedAt, snapshot.InputsHash, string(payload))
	if err != nil {
		return fmt.Errorf("failed to save tally result for motion %d: %w", snapshot.MotionID, err)
	}
	return nil
}

func (r *tallyResultRepository) GetLatest(ctx context.Context, motionID int64) (*domain.TallySnapshot, error) {
	query := `
		SELECT id, motion_id, computed_at, inputs_hash, payload
		FROM tally_results
		WHERE motion_id = $1
		ORDER BY computed_at DESC, created_at DESC
		LIMIT 1
	`

	var snapshot domain.TallySnapshot
	var payload []byte
	err := r.db.QueryRowContext(ctx, query, motionID).Scan(
		&snapshot.ID, &snapshot.MotionID, &snapshot.ComputedAt, &snapshot.InputsHash, &payload,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrResultNotFound
		}
		return nil, fmt.Errorf("failed to get tally result: %w", err)
	}

	if err := json.Unmarshal(payload, &snapshot.Result); err != nil {
		return nil, fmt.Errorf("failed to decode tally result: %w", err)
	}
	snapshot.ComputedAt = snapshot.ComputedAt.UTC()
	return &snapshot, nil
}
