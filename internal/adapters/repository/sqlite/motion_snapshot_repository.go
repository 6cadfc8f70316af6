package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vncsmyrnk/motionvote/internal/core/domain"
	"github.com/vncsmyrnk/motionvote/internal/core/ports"
)

const motionColumns = `id, meeting_id, title, type, status, num_winners`

type motionSnapshotRepository struct {
	db *sql.DB
}

func NewMotionSnapshotRepository(db *sql.DB) ports.MotionSnapshotRepository {
	return &motionSnapshotRepository{db: db}
}

// GetSnapshot reads everything inside one transaction; SQLite transactions
// are serializable, so writers cannot interleave with the three reads.
func (r *motionSnapshotRepository) GetSnapshot(ctx context.Context, motionID int64) (*domain.MotionSnapshot, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	motion, err := scanMotion(tx.QueryRowContext(ctx, `SELECT `+motionColumns+` FROM motions WHERE id = ?`, motionID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMotionNotFound
		}
		return nil, fmt.Errorf("failed to get motion: %w", err)
	}

	snapshot := &domain.MotionSnapshot{Motion: motion}

	var description sql.NullString
	err = tx.QueryRowContext(ctx, `SELECT id, title, description FROM meetings WHERE id = ?`, motion.MeetingID).
		Scan(&snapshot.Meeting.ID, &snapshot.Meeting.Title, &description)
	if err != nil {
		return nil, fmt.Errorf("failed to get meeting: %w", err)
	}
	snapshot.Meeting.Description = description.String

	optionRows, err := tx.QueryContext(ctx, `SELECT id, motion_id, text FROM options WHERE motion_id = ? ORDER BY id`, motionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get motion options: %w", err)
	}
	defer optionRows.Close()
	for optionRows.Next() {
		var opt domain.Option
		if err := optionRows.Scan(&opt.ID, &opt.MotionID, &opt.Text); err != nil {
			return nil, fmt.Errorf("failed to scan option: %w", err)
		}
		snapshot.Options = append(snapshot.Options, opt)
	}
	if err := optionRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating options: %w", err)
	}

	voteRows, err := tx.QueryContext(ctx, `SELECT voter_id, motion_id, option_id, rank FROM votes WHERE motion_id = ? ORDER BY id`, motionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get votes: %w", err)
	}
	defer voteRows.Close()
	for voteRows.Next() {
		var vote domain.VoteRecord
		var rank sql.NullInt64
		if err := voteRows.Scan(&vote.VoterID, &vote.MotionID, &vote.OptionID, &rank); err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		if rank.Valid {
			n := int(rank.Int64)
			vote.Rank = &n
		}
		snapshot.Votes = append(snapshot.Votes, vote)
	}
	if err := voteRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating votes: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return snapshot, nil
}

func (r *motionSnapshotRepository) ListClosedPreferenceMotions(ctx context.Context) ([]domain.Motion, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+motionColumns+` FROM motions WHERE type = ? AND status = ? ORDER BY id`,
		string(domain.MotionTypePreference), string(domain.MotionStatusClosed),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list motions: %w", err)
	}
	defer rows.Close()

	var motions []domain.Motion
	for rows.Next() {
		motion, err := scanMotion(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan motion: %w", err)
		}
		motions = append(motions, motion)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating motions: %w", err)
	}
	return motions, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMotion(row rowScanner) (domain.Motion, error) {
	var motion domain.Motion
	var motionType, status string
	var numWinners sql.NullInt64
	if err := row.Scan(&motion.ID, &motion.MeetingID, &motion.Title, &motionType, &status, &numWinners); err != nil {
		return domain.Motion{}, err
	}
	motion.Type = domain.MotionType(motionType)
	motion.Status = domain.MotionStatus(status)
	if numWinners.Valid {
		n := int(numWinners.Int64)
		motion.NumWinners = &n
	}
	return motion, nil
}
