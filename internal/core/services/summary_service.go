package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/vncsmyrnk/motionvote/internal/core/ports"
)

type summaryService struct {
	snapshots ports.MotionSnapshotRepository
	tallies   ports.TallyService
	logger    *slog.Logger
}

func NewSummaryService(snapshots ports.MotionSnapshotRepository, tallies ports.TallyService, logger *slog.Logger) ports.SummaryService {
	return &summaryService{
		snapshots: snapshots,
		tallies:   tallies,
		logger:    ResolveLogger(logger),
	}
}

// SummarizeAllTallies recomputes and stores the result of every closed
// preference motion. Each tally reads its own snapshot, so they run concurrently.
func (s *summaryService) SummarizeAllTallies(ctx context.Context) error {
	motions, err := s.snapshots.ListClosedPreferenceMotions(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch closed motions: %w", err)
	}

	var wg sync.WaitGroup
	errChan := make(chan error, len(motions))

	for _, motion := range motions {
		wg.Add(1)
		go func(motionID int64) {
			defer wg.Done()
			if _, err := s.tallies.Recompute(ctx, motionID); err != nil {
				errChan <- fmt.Errorf("failed to summarize motion %d: %w", motionID, err)
			}
		}(motion.ID)
	}

	wg.Wait()
	close(errChan)

	for err := range errChan {
		if err != nil {
			return err
		}
	}

	s.logger.Info("tallies summarized", "motions", len(motions))
	return nil
}
