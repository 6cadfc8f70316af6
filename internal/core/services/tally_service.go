package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/motionvote/internal/core/domain"
	"github.com/vncsmyrnk/motionvote/internal/core/ports"
	"github.com/vncsmyrnk/motionvote/internal/core/tally"
)

type tallyService struct {
	snapshots ports.MotionSnapshotRepository
	results   ports.TallyResultRepository
	logger    *slog.Logger
	now       func() time.Time
}

func NewTallyService(snapshots ports.MotionSnapshotRepository, results ports.TallyResultRepository, logger *slog.Logger) ports.TallyService {
	return &tallyService{
		snapshots: snapshots,
		results:   results,
		logger:    ResolveLogger(logger),
		now:       time.Now,
	}
}

func (s *tallyService) Tally(ctx context.Context, motionID int64) (*ports.TallyOutput, error) {
	snapshot, ballots, err := s.load(ctx, motionID)
	if err != nil {
		return nil, err
	}

	result := tally.Elect(snapshot.OptionIDs(), ballots, snapshot.Motion.Seats())
	s.logger.Info("tally computed",
		"motion_id", motionID,
		"ballots", result.TotalBallots,
		"seats", result.Seats,
		"winners", result.Winners,
	)

	return &ports.TallyOutput{
		Meeting: snapshot.Meeting,
		Motion:  snapshot.Motion,
		Result:  result,
		Report:  tally.Format(result, snapshot.OptionLabels()),
	}, nil
}

func (s *tallyService) Recompute(ctx context.Context, motionID int64) (*domain.TallySnapshot, error) {
	snapshot, ballots, err := s.load(ctx, motionID)
	if err != nil {
		return nil, err
	}

	stored := &domain.TallySnapshot{
		ID:         uuid.New(),
		MotionID:   motionID,
		// timestamptz keeps microseconds
		ComputedAt: s.now().UTC().Truncate(time.Microsecond),
		InputsHash: hashBallots(ballots),
		Result:     tally.Elect(snapshot.OptionIDs(), ballots, snapshot.Motion.Seats()),
	}

	if err := s.results.Save(ctx, stored); err != nil {
		return nil, fmt.Errorf("failed to save tally result: %w", err)
	}

	s.logger.Info("tally result stored",
		"motion_id", motionID,
		"snapshot_id", stored.ID,
		"inputs_hash", stored.InputsHash,
		"winners", stored.Result.Winners,
	)
	return stored, nil
}

func (s *tallyService) Latest(ctx context.Context, motionID int64) (*domain.TallySnapshot, error) {
	if motionID <= 0 {
		return nil, domain.ErrInvalidMotionID
	}
	return s.results.GetLatest(ctx, motionID)
}

// load reads the motion snapshot and turns its vote rows into ballots. Rows
// that cannot belong to a valid ranking are dropped here so the engine only
// ever sees positive ranks for the motion's own options.
func (s *tallyService) load(ctx context.Context, motionID int64) (*domain.MotionSnapshot, []tally.Ballot, error) {
	if motionID <= 0 {
		return nil, nil, domain.ErrInvalidMotionID
	}

	snapshot, err := s.snapshots.GetSnapshot(ctx, motionID)
	if err != nil {
		return nil, nil, err
	}
	if snapshot.Motion.Type != domain.MotionTypePreference {
		return nil, nil, domain.ErrNotPreferenceMotion
	}

	options := make(map[int64]bool, len(snapshot.Options))
	for _, opt := range snapshot.Options {
		options[opt.ID] = true
	}

	votes := make([]tally.Vote, 0, len(snapshot.Votes))
	for _, v := range snapshot.Votes {
		if v.MotionID != motionID || !options[v.OptionID] {
			s.logger.Warn("skipping vote for foreign option",
				"motion_id", motionID, "voter_id", v.VoterID, "option_id", v.OptionID)
			continue
		}
		if v.Rank != nil && *v.Rank <= 0 {
			s.logger.Warn("skipping vote with invalid rank",
				"motion_id", motionID, "voter_id", v.VoterID, "rank", *v.Rank)
			continue
		}
		votes = append(votes, tally.Vote{VoterID: v.VoterID, OptionID: v.OptionID, Rank: v.Rank})
	}

	return snapshot, tally.BuildBallots(votes), nil
}

// hashBallots fingerprints the ballots a result was computed from.
func hashBallots(ballots []tally.Ballot) string {
	h := sha256.New()
	for _, ballot := range ballots {
		for i, c := range ballot {
			if i > 0 {
				h.Write([]byte{','})
			}
			h.Write([]byte(strconv.FormatInt(c, 10)))
		}
		h.Write([]byte{';'})
	}
	return hex.EncodeToString(h.Sum(nil))
}
