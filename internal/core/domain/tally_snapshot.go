package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/motionvote/internal/core/tally"
)

// TallySnapshot is a stored election result together with a hash of the
// ballots it was computed from.
type TallySnapshot struct {
	ID         uuid.UUID            `json:"id"`
	MotionID   int64                `json:"motion_id"`
	ComputedAt time.Time            `json:"computed_at"`
	InputsHash string               `json:"inputs_hash"`
	Result     tally.ElectionResult `json:"result"`
}
