package ports

import (
	"context"

	"github.com/vncsmyrnk/motionvote/internal/core/domain"
	"github.com/vncsmyrnk/motionvote/internal/core/tally"
)

type TallyResultRepository interface {
	Save(ctx context.Context, snapshot *domain.TallySnapshot) error
	GetLatest(ctx context.Context, motionID int64) (*domain.TallySnapshot, error)
}

type TallyOutput struct {
	Meeting domain.Meeting       `json:"meeting"`
	Motion  domain.Motion        `json:"motion"`
	Result  tally.ElectionResult `json:"result"`
	Report  tally.Report         `json:"report"`
}

type TallyService interface {
	Tally(ctx context.Context, motionID int64) (*TallyOutput, error)
	Recompute(ctx context.Context, motionID int64) (*domain.TallySnapshot, error)
	Latest(ctx context.Context, motionID int64) (*domain.TallySnapshot, error)
}

type SummaryService interface {
	SummarizeAllTallies(ctx context.Context) error
}
