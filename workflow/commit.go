package workflow

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/YH949494/APUGC/model"
	"github.com/YH949494/APUGC/utils"
)

// commit persists the finished draft. Submission creation is the single
// atomic dedupe point: a duplicate post resolves to the existing record
// and ends the flow with a notice instead of an error. Code consumption
// follows the insert and is best-effort (see Store.ConsumeCode); T1
// validates and credits the ledger immediately, T2 waits for /metrics.
func (e *Engine) commit(userID string, d draft, tier model.Tier) string {
	sub := &model.Submission{
		UserID:        userID,
		UsernameLower: d.usernameLower,
		Platform:      d.platform,
		PostURL:       d.postURL,
		PostHash:      d.postHash,
		UGCCode:       d.code,
		Caption:       d.caption,
		ProofSHA256:   d.proofHash,
		TierClaimed:   tier,
	}

	id, created, err := e.store.CreateSubmission(sub)
	if err != nil {
		e.log.Error("submission insert failed", zap.String("user_id", userID), zap.Error(err))
		return msgTryAgain
	}

	if !created {
		e.sessions.remove(userID)
		return fmt.Sprintf(
			"This post was already submitted.\nUGC ID: %s\nUse /status %s", id, id)
	}

	// One code = one post. Not atomic with the insert; safe to retry.
	if err := e.store.ConsumeCode(d.code, id); err != nil {
		e.log.Error("code consumption failed",
			zap.String("submission_id", id), zap.Error(err))
	}

	e.sessions.remove(userID)

	if tier == model.TierT1 {
		if err := e.store.MarkValidated(id); err != nil {
			e.log.Error("validate failed", zap.String("submission_id", id), zap.Error(err))
			return msgTryAgain
		}
		if _, err := e.store.GrantReward(userID, id, model.TierT1); err != nil {
			e.log.Error("reward grant failed", zap.String("submission_id", id), zap.Error(err))
			return msgTryAgain
		}
		return fmt.Sprintf(
			"✅ Submitted & validated (T1).\nUGC ID: %s\n\nClaim in community bot: /claim", id)
	}

	return fmt.Sprintf(
		"✅ Submitted (T2 pending metrics).\nUGC ID: %s\n\n"+
			"Now upload metrics proof:\n/metrics %s\n"+
			"(Send a screenshot of views/likes/comments/shares.)", id, id)
}

// gotMetricsProof completes the T2 follow-up: the submission must belong
// to the caller, then the proof hash is attached, the record validated
// and the T2 reward granted. Grants are idempotent, so a retry after a
// timeout cannot double-credit.
func (e *Engine) gotMetricsProof(userID string, d draft, content []byte) string {
	sub, err := e.store.FindOwnedSubmission(d.metricsSubmissionID, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			e.sessions.remove(userID)
			return "UGC not found for your account."
		}
		e.log.Error("metrics lookup failed", zap.String("user_id", userID), zap.Error(err))
		return msgTryAgain
	}

	hash := utils.FingerprintBytes(content)
	if err := e.store.AttachMetricsProof(sub.ID, hash); err != nil {
		e.log.Error("metrics attach failed", zap.String("submission_id", sub.ID), zap.Error(err))
		return msgTryAgain
	}
	if _, err := e.store.GrantReward(userID, sub.ID, model.TierT2); err != nil {
		e.log.Error("reward grant failed", zap.String("submission_id", sub.ID), zap.Error(err))
		return msgTryAgain
	}

	e.sessions.remove(userID)
	return fmt.Sprintf(
		"✅ T2 validated.\nUGC ID: %s\n\nClaim in community bot: /claim", sub.ID)
}
