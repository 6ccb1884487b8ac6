package db

import "fmt"

// migrate creates the tables and indexes if they don't exist.
//
// The unique indexes are load-bearing: uq_platform_posthash backs the
// one-post-one-reward dedupe, uq_reward_submission_tier backs ledger
// idempotency. The secondary indexes serve the daily rate-limit count
// and status scans.
func (s *Store) migrate() error {
	stmts := []string{
		fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS %s (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		username_lower TEXT NOT NULL DEFAULT '',
		platform TEXT NOT NULL,
		post_url TEXT NOT NULL,
		post_hash TEXT NOT NULL,
		ugc_code TEXT NOT NULL,
		caption TEXT NOT NULL,
		proof_sha256 TEXT NOT NULL,
		tier_claimed TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'submitted',
		metrics_proof_sha256 TEXT,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL,
		validated_at INTEGER
	);`, s.submissionsTable),
		fmt.Sprintf(`CREATE UNIQUE INDEX IF NOT EXISTS uq_%[1]s_platform_posthash ON %[1]s(platform, post_hash);`, s.submissionsTable),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS ix_%[1]s_user_created ON %[1]s(user_id, created_at);`, s.submissionsTable),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS ix_%[1]s_status ON %[1]s(status);`, s.submissionsTable),

		fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS %s (
		code TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'unused',
		used_at INTEGER,
		submission_id TEXT
	);`, s.codeTable),

		fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS %s (
		id INTEGER PRIMARY KEY,
		user_id TEXT NOT NULL,
		submission_id TEXT NOT NULL,
		tier TEXT NOT NULL,
		amount INTEGER NOT NULL,
		drop_id TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending_claim',
		created_at INTEGER NOT NULL,
		claimable_after INTEGER NOT NULL,
		claimed_at INTEGER,
		voucher_code TEXT
	);`, s.ledgerTable),
		fmt.Sprintf(`CREATE UNIQUE INDEX IF NOT EXISTS uq_%[1]s_submission_tier ON %[1]s(submission_id, tier);`, s.ledgerTable),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS ix_%[1]s_user_pending ON %[1]s(user_id, status, claimable_after);`, s.ledgerTable),
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
