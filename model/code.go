package model

// Redemption code statuses.
const (
	CodeStatusUnused  = "unused"
	CodeStatusUsed    = "used"
	CodeStatusExpired = "expired"
)

// RedemptionCode is a single-use token issued by the community bot.
// It is bound to one user and consumed by exactly one submission.
type RedemptionCode struct {
	Code         string
	UserID       string
	Status       string
	UsedAt       int64  // 0 until consumed
	SubmissionID string // set when consumed
}
