package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/YH949494/APUGC/model"
)

// ValidateCode checks that a redemption code exists, belongs to the
// given user and has not been consumed. Checks run in that order so the
// caller gets the most specific failure.
func (s *Store) ValidateCode(userID, code string) error {
	row := s.db.QueryRow(fmt.Sprintf(
		`SELECT user_id, status FROM %s WHERE code = ?`, s.codeTable), code)

	var owner, status string
	if err := row.Scan(&owner, &status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.ErrCodeNotFound
		}
		return fmt.Errorf("lookup code: %w", err)
	}
	if owner != userID {
		return model.ErrCodeNotOwned
	}
	if status == model.CodeStatusUsed || status == model.CodeStatusExpired {
		return model.ErrCodeAlreadyUsed
	}
	return nil
}

// ConsumeCode marks a code used and records the submission it paid for.
//
// Consumption happens after submission creation and is deliberately
// best-effort: re-consuming a code already used for the same submission
// (a retried commit) matches the WHERE clause and is a harmless
// overwrite, while a code burned by a different submission is left
// untouched and only logged.
func (s *Store) ConsumeCode(code, submissionID string) error {
	res, err := s.db.Exec(fmt.Sprintf(
		`UPDATE %s SET status = ?, used_at = ?, submission_id = ?
		 WHERE code = ? AND (status = ? OR submission_id = ?)`, s.codeTable),
		model.CodeStatusUsed, time.Now().Unix(), submissionID,
		code, model.CodeStatusUnused, submissionID)
	if err != nil {
		return fmt.Errorf("consume code: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		s.log.Warn("code not consumable",
			zap.String("code", code),
			zap.String("submission_id", submissionID))
	}
	return nil
}

// InsertCode registers a fresh code bound to a user. Codes are normally
// issued by the community bot writing to the same table; this entry
// point exists for tooling and tests.
func (s *Store) InsertCode(code, userID string) error {
	_, err := s.db.Exec(fmt.Sprintf(
		`INSERT INTO %s(code, user_id, status) VALUES(?, ?, ?)`, s.codeTable),
		code, userID, model.CodeStatusUnused)
	if err != nil {
		return fmt.Errorf("insert code: %w", err)
	}
	return nil
}

// FindCode returns a code record, or model.ErrCodeNotFound.
func (s *Store) FindCode(code string) (*model.RedemptionCode, error) {
	row := s.db.QueryRow(fmt.Sprintf(
		`SELECT code, user_id, status, COALESCE(used_at, 0), COALESCE(submission_id, '')
		 FROM %s WHERE code = ?`, s.codeTable), code)

	var rc model.RedemptionCode
	err := row.Scan(&rc.Code, &rc.UserID, &rc.Status, &rc.UsedAt, &rc.SubmissionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrCodeNotFound
		}
		return nil, fmt.Errorf("find code: %w", err)
	}
	return &rc, nil
}
