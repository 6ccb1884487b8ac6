package model

// Ledger entry statuses. Claiming is handled by the external claims
// service; this bot only ever writes pending_claim entries.
const (
	LedgerStatusPendingClaim = "pending_claim"
)

// LedgerEntry records an earned-but-not-yet-paid reward.
//
// (SubmissionID, Tier) doubles as the idempotency key: granting the same
// pair twice must return the original row unchanged, so a retried
// validation can never double-credit a user.
type LedgerEntry struct {
	ID             int64
	UserID         string
	SubmissionID   string
	Tier           Tier
	Amount         int64
	DropID         string
	Status         string
	CreatedAt      int64
	ClaimableAfter int64
	ClaimedAt      int64  // 0 until the claims service pays out
	VoucherCode    string // filled by the claims service
}
