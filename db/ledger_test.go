package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YH949494/APUGC/model"
)

func TestGrantRewardAmountsAndPools(t *testing.T) {
	s := setupTestStore(t)

	e1, err := s.GrantReward("u1", "sub-1", model.TierT1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), e1.Amount)
	assert.Equal(t, "drop-t1", e1.DropID)
	assert.Equal(t, model.LedgerStatusPendingClaim, e1.Status)
	assert.Greater(t, e1.CreatedAt, int64(0))
	assert.Equal(t, e1.CreatedAt, e1.ClaimableAfter)
	assert.Zero(t, e1.ClaimedAt)
	assert.Empty(t, e1.VoucherCode)

	e2, err := s.GrantReward("u1", "sub-2", model.TierT2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), e2.Amount)
	assert.Equal(t, "drop-t2", e2.DropID)
}

func TestGrantRewardIdempotent(t *testing.T) {
	s := setupTestStore(t)

	first, err := s.GrantReward("u1", "sub-1", model.TierT2)
	require.NoError(t, err)

	// A retried validation must return the original entry, not mint a new one.
	second, err := s.GrantReward("u1", "sub-1", model.TierT2)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)

	var n int
	row := s.db.QueryRow("SELECT COUNT(*) FROM reward_ledger WHERE submission_id = 'sub-1'")
	require.NoError(t, row.Scan(&n))
	assert.Equal(t, 1, n)
}

func TestGrantRewardPerTierKeys(t *testing.T) {
	s := setupTestStore(t)

	t1, err := s.GrantReward("u1", "sub-1", model.TierT1)
	require.NoError(t, err)
	t2, err := s.GrantReward("u1", "sub-1", model.TierT2)
	require.NoError(t, err)

	// Same submission, different tier: distinct entries.
	assert.NotEqual(t, t1.ID, t2.ID)
}
