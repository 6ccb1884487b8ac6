package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/YH949494/APUGC/model"
)

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

const submissionColumns = `
	id, user_id, username_lower, platform, post_url, post_hash, ugc_code,
	caption, proof_sha256, tier_claimed, status,
	COALESCE(metrics_proof_sha256, '') AS metrics_proof_sha256,
	created_at, updated_at, COALESCE(validated_at, 0) AS validated_at`

// scanSubmission scans a row into a Submission struct.
func scanSubmission(scanner rowScanner) (*model.Submission, error) {
	var sub model.Submission
	err := scanner.Scan(
		&sub.ID, &sub.UserID, &sub.UsernameLower, &sub.Platform, &sub.PostURL,
		&sub.PostHash, &sub.UGCCode, &sub.Caption, &sub.ProofSHA256,
		&sub.TierClaimed, &sub.Status, &sub.MetricsProofSHA256,
		&sub.CreatedAt, &sub.UpdatedAt, &sub.ValidatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// CreateSubmission inserts a new submission and returns its id.
//
// The insert is a single atomic statement guarded by the unique index on
// (platform, post_hash). When the index rejects a duplicate, the existing
// record's id is returned with created=false instead of an error, so the
// caller can report "already submitted" with a stable id.
func (s *Store) CreateSubmission(sub *model.Submission) (string, bool, error) {
	id := uuid.New().String()
	now := time.Now().Unix()

	_, err := s.db.Exec(fmt.Sprintf(`INSERT INTO %s(
		id, user_id, username_lower, platform, post_url, post_hash, ugc_code,
		caption, proof_sha256, tier_claimed, status, metrics_proof_sha256,
		created_at, updated_at, validated_at
	) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NULL, ?, ?, NULL)`, s.submissionsTable),
		id, sub.UserID, sub.UsernameLower, sub.Platform, sub.PostURL, sub.PostHash,
		sub.UGCCode, sub.Caption, sub.ProofSHA256, string(sub.TierClaimed),
		model.StatusSubmitted, now, now,
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			row := s.db.QueryRow(fmt.Sprintf(
				`SELECT id FROM %s WHERE platform = ? AND post_hash = ?`, s.submissionsTable),
				sub.Platform, sub.PostHash)
			var existing string
			if scanErr := row.Scan(&existing); scanErr != nil {
				return "", false, fmt.Errorf("lookup duplicate submission: %w", scanErr)
			}
			return existing, false, nil
		}
		return "", false, fmt.Errorf("insert submission: %w", err)
	}

	s.log.Debug("submission created",
		zap.String("id", id),
		zap.String("user_id", sub.UserID),
		zap.String("platform", sub.Platform))
	return id, true, nil
}

// MarkValidated transitions a submission to validated status. Re-invoking
// on an already-validated record keeps the original validation timestamp.
// An unknown id reports model.ErrNotFound.
func (s *Store) MarkValidated(id string) error {
	now := time.Now().Unix()
	res, err := s.db.Exec(fmt.Sprintf(
		`UPDATE %s SET status = ?, validated_at = COALESCE(validated_at, ?), updated_at = ? WHERE id = ?`,
		s.submissionsTable),
		model.StatusValidated, now, now, id)
	if err != nil {
		return fmt.Errorf("mark validated: %w", err)
	}
	return errIfNoRows(res)
}

// AttachMetricsProof records the metrics proof hash and marks the
// submission validated in one statement. An unknown id reports
// model.ErrNotFound.
func (s *Store) AttachMetricsProof(id, fingerprint string) error {
	now := time.Now().Unix()
	res, err := s.db.Exec(fmt.Sprintf(
		`UPDATE %s SET metrics_proof_sha256 = ?, status = ?, validated_at = COALESCE(validated_at, ?), updated_at = ? WHERE id = ?`,
		s.submissionsTable),
		fingerprint, model.StatusValidated, now, now, id)
	if err != nil {
		return fmt.Errorf("attach metrics proof: %w", err)
	}
	return errIfNoRows(res)
}

func errIfNoRows(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return model.ErrNotFound
	}
	return nil
}

// FindOwnedSubmission looks up a submission scoped to the requesting
// user. A valid id owned by someone else reports model.ErrNotFound, the
// same as an unknown id.
func (s *Store) FindOwnedSubmission(id, userID string) (*model.Submission, error) {
	row := s.db.QueryRow(fmt.Sprintf(
		`SELECT %s FROM %s WHERE id = ? AND user_id = ?`, submissionColumns, s.submissionsTable),
		id, userID)
	sub, err := scanSubmission(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("find submission: %w", err)
	}
	return sub, nil
}

// CountSubmissionsSince counts a user's submissions created at or after
// the given time. Backs the rolling-day rate limit.
func (s *Store) CountSubmissionsSince(userID string, since time.Time) (int, error) {
	row := s.db.QueryRow(fmt.Sprintf(
		`SELECT COUNT(*) FROM %s WHERE user_id = ? AND created_at >= ?`, s.submissionsTable),
		userID, since.Unix())
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("count submissions: %w", err)
	}
	return n, nil
}
