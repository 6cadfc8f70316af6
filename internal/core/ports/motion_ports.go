package ports

import (
	"context"

	"github.com/vncsmyrnk/motionvote/internal/core/domain"
)

// MotionSnapshotRepository reads motions for tallying. GetSnapshot must read the
// motion, its options and its votes as of a single point in time.
type MotionSnapshotRepository interface {
	GetSnapshot(ctx context.Context, motionID int64) (*domain.MotionSnapshot, error)
	ListClosedPreferenceMotions(ctx context.Context) ([]domain.Motion, error)
}
