package model

import "strings"

// Tier is a reward bracket. T1 validates immediately at commit time,
// T2 stays in submitted status until a metrics proof is attached.
type Tier string

const (
	TierT1 Tier = "T1"
	TierT2 Tier = "T2"
)

// ParseTier parses a user-typed tier token.
func ParseTier(s string) (Tier, bool) {
	switch Tier(strings.ToUpper(strings.TrimSpace(s))) {
	case TierT1:
		return TierT1, true
	case TierT2:
		return TierT2, true
	}
	return "", false
}

// Amount returns the fixed reward amount for the tier.
func (t Tier) Amount() int64 {
	if t == TierT2 {
		return 5
	}
	return 1
}
