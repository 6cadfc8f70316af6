package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vncsmyrnk/motionvote/internal/core/domain"
	"github.com/vncsmyrnk/motionvote/internal/core/ports"
)

type motionSnapshotRepository struct {
	db *sql.DB
}

func NewMotionSnapshotRepository(db *sql.DB) ports.MotionSnapshotRepository {
	return &motionSnapshotRepository{
		db: db,
	}
}

// GetSnapshot reads the motion, its options and its votes inside one
// repeatable-read transaction so a ballot being cast concurrently is seen
// either whole or not at all.
func (r *motionSnapshotRepository) GetSnapshot(ctx context.Context, motionID int64) (*domain.MotionSnapshot, error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	queryMotion := `
		SELECT id, meeting_id, title, type, status, num_winners
		FROM motions
		WHERE id = $1
	`
	var motion domain.Motion
	var numWinners sql.NullInt64
	err = tx.QueryRowContext(ctx, queryMotion, motionID).Scan(
		&motion.ID, &motion.MeetingID, &motion.Title, &motion.Type, &motion.Status, &numWinners,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMotionNotFound
		}
		return nil, fmt.Errorf("failed to get motion: %w", err)
	}
	if numWinners.Valid {
		n := int(numWinners.Int64)
		motion.NumWinners = &n
	}

	meeting, err := r.fetchMeeting(ctx, tx, motion.MeetingID)
	if err != nil {
		return nil, err
	}

	options, err := r.fetchOptions(ctx, tx, motionID)
	if err != nil {
		return nil, err
	}

	votes, err := r.fetchVotes(ctx, tx, motionID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &domain.MotionSnapshot{
		Meeting: meeting,
		Motion:  motion,
		Options: options,
		Votes:   votes,
	}, nil
}

func (r *motionSnapshotRepository) ListClosedPreferenceMotions(ctx context.Context) ([]domain.Motion, error) {
	query := `
		SELECT id, meeting_id, title, type, status, num_winners
		FROM motions
		WHERE type = $1 AND status = $2
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query, domain.MotionTypePreference, domain.MotionStatusClosed)
	if err != nil {
		return nil, fmt.Errorf("failed to list motions: %w", err)
	}
	defer rows.Close()

	var motions []domain.Motion
	for rows.Next() {
		var motion domain.Motion
		var numWinners sql.NullInt64
		if err := rows.Scan(&motion.ID, &motion.MeetingID, &motion.Title, &motion.Type, &motion.Status, &numWinners); err != nil {
			return nil, fmt.Errorf("failed to scan motion: %w", err)
		}
		if numWinners.Valid {
			n := int(numWinners.Int64)
			motion.NumWinners = &n
		}
		motions = append(motions, motion)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating motions: %w", err)
	}
	return motions, nil
}

func (r *motionSnapshotRepository) fetchMeeting(ctx context.Context, tx *sql.Tx, meetingID int64) (domain.Meeting, error) {
	queryMeeting := `
		SELECT id, title, description
		FROM meetings
		WHERE id = $1
	`
	var meeting domain.Meeting
	var description sql.NullString
	err := tx.QueryRowContext(ctx, queryMeeting, meetingID).Scan(&meeting.ID, &meeting.Title, &description)
	if err != nil {
		return domain.Meeting{}, fmt.Errorf("failed to get meeting: %w", err)
	}
	meeting.Description = description.String
	return meeting, nil
}

func (r *motionSnapshotRepository) fetchOptions(ctx context.Context, tx *sql.Tx, motionID int64) ([]domain.Option, error) {
	queryOptions := `
		SELECT id, motion_id, text
		FROM options
		WHERE motion_id = $1
		ORDER BY id
	`
	rows, err := tx.QueryContext(ctx, queryOptions, motionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get motion options: %w", err)
	}
	defer rows.Close()

	var options []domain.Option
	for rows.Next() {
		var opt domain.Option
		if err := rows.Scan(&opt.ID, &opt.MotionID, &opt.Text); err != nil {
			return nil, fmt.Errorf("failed to scan option: %w", err)
		}
		options = append(options, opt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating options: %w", err)
	}
	return options, nil
}

func (r *motionSnapshotRepository) fetchVotes(ctx context.Context, tx *sql.Tx, motionID int64) ([]domain.VoteRecord, error) {
	queryVotes := `
		SELECT voter_id, motion_id, option_id, rank
		FROM votes
		WHERE motion_id = $1
		ORDER BY id
	`
	rows, err := tx.QueryContext(ctx, queryVotes, motionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get votes: %w", err)
	}
	defer rows.Close()

	var votes []domain.VoteRecord
	for rows.Next() {
		var vote domain.VoteRecord
		var rank sql.NullInt64
		if err := rows.Scan(&vote.VoterID, &vote.MotionID, &vote.OptionID, &rank); err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		if rank.Valid {
			n := int(rank.Int64)
			vote.Rank = &n
		}
		votes = append(votes, vote)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating votes: %w", err)
	}
	return votes, nil
}
