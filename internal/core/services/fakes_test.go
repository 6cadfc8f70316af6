package services

import (
	"context"
	"sync"

	"github.com/vncsmyrnk/motionvote/internal/core/domain"
)

type fakeSnapshotRepository struct {
	snapshots map[int64]*domain.MotionSnapshot
}

func (r *fakeSnapshotRepository) GetSnapshot(_ context.Context, motionID int64) (*domain.MotionSnapshot, error) {
	snapshot, ok := r.snapshots[motionID]
	if !ok {
		return nil, domain.ErrMotionNotFound
	}
	return snapshot, nil
}

func (r *fakeSnapshotRepository) ListClosedPreferenceMotions(_ context.Context) ([]domain.Motion, error) {
	var motions []domain.Motion
	for _, s := range r.snapshots {
		if s.Motion.Type == domain.MotionTypePreference && s.Motion.Status == domain.MotionStatusClosed {
			motions = append(motions, s.Motion)
		}
	}
	return motions, nil
}

type fakeResultRepository struct {
	mu    sync.Mutex
	saved map[int64][]*domain.TallySnapshot
	err   error
}

func newFakeResultRepository() *fakeResultRepository {
	return &fakeResultRepository{saved: make(map[int64][]*domain.TallySnapshot)}
}

func (r *fakeResultRepository) Save(_ context.Context, snapshot *domain.TallySnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.saved[snapshot.MotionID] = append(r.saved[snapshot.MotionID], snapshot)
	return nil
}

func (r *fakeResultRepository) GetLatest(_ context.Context, motionID int64) (*domain.TallySnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.saved[motionID]
	if len(list) == 0 {
		return nil, domain.ErrResultNotFound
	}
	return list[len(list)-1], nil
}

func rank(n int) *int { return &n }

func seats(n int) *int { return &n }

func preferenceSnapshot(motionID int64, status domain.MotionStatus) *domain.MotionSnapshot {
	return &domain.MotionSnapshot{
		Meeting: domain.Meeting{ID: 1, Title: "Annual general meeting"},
		Motion: domain.Motion{
			ID:        motionID,
			MeetingID: 1,
			Title:     "Board election",
			Type:      domain.MotionTypePreference,
			Status:    status,
		},
		Options: []domain.Option{
			{ID: 10, MotionID: motionID, Text: "Alice"},
			{ID: 11, MotionID: motionID, Text: "Bob"},
			{ID: 12, MotionID: motionID, Text: "Carol"},
		},
		Votes: []domain.VoteRecord{
			{VoterID: 1, MotionID: motionID, OptionID: 10, Rank: rank(1)},
			{VoterID: 1, MotionID: motionID, OptionID: 11, Rank: rank(2)},
			{VoterID: 2, MotionID: motionID, OptionID: 10, Rank: rank(1)},
			{VoterID: 3, MotionID: motionID, OptionID: 11, Rank: rank(1)},
			{VoterID: 3, MotionID: motionID, OptionID: 12, Rank: rank(2)},
			{VoterID: 4, MotionID: motionID, OptionID: 12, Rank: rank(1)},
			{VoterID: 4, MotionID: motionID, OptionID: 11, Rank: rank(2)},
		},
	}
}
