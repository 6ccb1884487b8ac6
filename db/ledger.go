package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/YH949494/APUGC/model"
)

// GrantReward writes the reward ledger entry for a validated submission.
//
// The write is an idempotent upsert keyed on (submission_id, tier): the
// insert is a single atomic statement that does nothing when an entry
// already exists, and the surviving row is read back either way. Retried
// validations therefore never double-credit a user.
func (s *Store) GrantReward(userID, submissionID string, tier model.Tier) (*model.LedgerEntry, error) {
	dropID := s.t1DropID
	if tier == model.TierT2 {
		dropID = s.t2DropID
	}
	now := time.Now().Unix()

	_, err := s.db.Exec(fmt.Sprintf(`INSERT INTO %s(
		id, user_id, submission_id, tier, amount, drop_id, status,
		created_at, claimable_after, claimed_at, voucher_code
	) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, NULL, NULL)
	ON CONFLICT(submission_id, tier) DO NOTHING`, s.ledgerTable),
		s.node.Generate().Int64(), userID, submissionID, string(tier),
		tier.Amount(), dropID, model.LedgerStatusPendingClaim, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("grant reward: %w", err)
	}

	e, err := s.FindReward(submissionID, tier)
	if err != nil {
		return nil, err
	}

	s.log.Debug("reward granted",
		zap.String("submission_id", submissionID),
		zap.String("tier", string(tier)),
		zap.Int64("amount", e.Amount))
	return e, nil
}

// FindReward returns the ledger entry for a (submission, tier) pair, or
// model.ErrNotFound when none has been granted yet.
func (s *Store) FindReward(submissionID string, tier model.Tier) (*model.LedgerEntry, error) {
	row := s.db.QueryRow(fmt.Sprintf(
		`SELECT id, user_id, submission_id, tier, amount, drop_id, status,
			created_at, claimable_after, COALESCE(claimed_at, 0), COALESCE(voucher_code, '')
		 FROM %s WHERE submission_id = ? AND tier = ?`, s.ledgerTable),
		submissionID, string(tier))

	var e model.LedgerEntry
	err := row.Scan(&e.ID, &e.UserID, &e.SubmissionID, &e.Tier, &e.Amount,
		&e.DropID, &e.Status, &e.CreatedAt, &e.ClaimableAfter, &e.ClaimedAt, &e.VoucherCode)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("read ledger entry: %w", err)
	}
	return &e, nil
}
