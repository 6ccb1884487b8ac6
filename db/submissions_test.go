package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YH949494/APUGC/model"
)

func TestCreateSubmissionDedupe(t *testing.T) {
	s := setupTestStore(t)

	first, created, err := s.CreateSubmission(testSubmission("u1", "tt", "hash1", model.TierT1))
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEmpty(t, first)

	// Same post from a different user still collides on (platform, hash).
	second, created, err := s.CreateSubmission(testSubmission("u2", "tt", "hash1", model.TierT2))
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first, second, "duplicate must resolve to the existing id")

	// Same hash on another platform is a distinct post.
	third, created, err := s.CreateSubmission(testSubmission("u1", "ig", "hash1", model.TierT1))
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEqual(t, first, third)
}

func TestMarkValidatedIdempotent(t *testing.T) {
	s := setupTestStore(t)

	id, _, err := s.CreateSubmission(testSubmission("u1", "tt", "hash1", model.TierT1))
	require.NoError(t, err)

	require.NoError(t, s.MarkValidated(id))
	sub, err := s.FindOwnedSubmission(id, "u1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusValidated, sub.Status)
	first := sub.ValidatedAt
	assert.Greater(t, first, int64(0))

	require.NoError(t, s.MarkValidated(id))
	sub, err = s.FindOwnedSubmission(id, "u1")
	require.NoError(t, err)
	assert.Equal(t, first, sub.ValidatedAt, "revalidation keeps the first timestamp")
}

func TestAttachMetricsProof(t *testing.T) {
	s := setupTestStore(t)

	id, _, err := s.CreateSubmission(testSubmission("u1", "tt", "hash1", model.TierT2))
	require.NoError(t, err)

	require.NoError(t, s.AttachMetricsProof(id, "metricshash"))
	sub, err := s.FindOwnedSubmission(id, "u1")
	require.NoError(t, err)
	assert.Equal(t, "metricshash", sub.MetricsProofSHA256)
	assert.Equal(t, model.StatusValidated, sub.Status)
	assert.Greater(t, sub.ValidatedAt, int64(0))
}

func TestFindOwnedSubmissionIsolation(t *testing.T) {
	s := setupTestStore(t)

	id, _, err := s.CreateSubmission(testSubmission("u1", "tt", "hash1", model.TierT1))
	require.NoError(t, err)

	_, err = s.FindOwnedSubmission(id, "u2")
	assert.ErrorIs(t, err, model.ErrNotFound, "another user's valid id must read as not found")

	_, err = s.FindOwnedSubmission("missing", "u1")
	assert.ErrorIs(t, err, model.ErrNotFound)

	sub, err := s.FindOwnedSubmission(id, "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", sub.UserID)
	assert.Equal(t, model.StatusSubmitted, sub.Status)
}

func TestCountSubmissionsSince(t *testing.T) {
	s := setupTestStore(t)

	for i, hash := range []string{"a", "b", "c"} {
		_, created, err := s.CreateSubmission(testSubmission("u1", "tt", hash, model.TierT1))
		require.NoError(t, err)
		require.True(t, created, "submission %d", i)
	}
	_, _, err := s.CreateSubmission(testSubmission("u2", "tt", "d", model.TierT1))
	require.NoError(t, err)

	n, err := s.CountSubmissionsSince("u1", time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = s.CountSubmissionsSince("u1", time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 0, n, "future window excludes everything")

	// Once the oldest submission ages past the rolling 24h window,
	// capacity frees up by exactly one.
	_, err = s.db.Exec("UPDATE ugc_submissions SET created_at = ? WHERE post_hash = 'a'",
		time.Now().Add(-25*time.Hour).Unix())
	require.NoError(t, err)

	n, err = s.CountSubmissionsSince("u1", time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestConditionalUpdatesUnknownID(t *testing.T) {
	s := setupTestStore(t)

	assert.ErrorIs(t, s.MarkValidated("missing"), model.ErrNotFound)
	assert.ErrorIs(t, s.AttachMetricsProof("missing", "metricshash"), model.ErrNotFound)
}
