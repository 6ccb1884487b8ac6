package model

// Submission statuses.
const (
	StatusSubmitted = "submitted"
	StatusValidated = "validated"
)

// Submission represents one UGC post submitted as proof of promotional
// activity. At most one submission may exist per (platform, post hash);
// the store enforces this with a unique index.
type Submission struct {
	ID                 string
	UserID             string
	UsernameLower      string
	Platform           string
	PostURL            string
	PostHash           string
	UGCCode            string
	Caption            string
	ProofSHA256        string
	TierClaimed        Tier
	Status             string
	MetricsProofSHA256 string // empty until a T2 metrics proof is attached
	CreatedAt          int64
	UpdatedAt          int64
	ValidatedAt        int64 // 0 until validated
}
