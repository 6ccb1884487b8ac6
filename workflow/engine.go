package workflow

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/YH949494/APUGC/db"
	"github.com/YH949494/APUGC/model"
	"github.com/YH949494/APUGC/utils"
)

const (
	minCaptionLen = 5
	sessionTTL    = 15 * time.Minute
)

const msgTryAgain = "Something went wrong. Please try again."

// Engine drives the per-user submission conversations. Each user has at
// most one active draft; every entry point takes the user id, advances
// the draft's state machine and returns the reply text to send. An empty
// reply means the input was not for us.
type Engine struct {
	store     *db.Store
	sessions  *sessionStore
	maxPerDay int
	log       *zap.Logger
}

// New creates an Engine backed by the given store.
func New(store *db.Store, maxPerDay int, log *zap.Logger) *Engine {
	return &Engine{
		store:     store,
		sessions:  newSessionStore(sessionTTL),
		maxPerDay: maxPerDay,
		log:       log,
	}
}

// StartSubmit begins the proof flow for a user, subject to the rolling
// daily submission limit.
func (e *Engine) StartSubmit(userID, usernameLower string) string {
	if err := e.checkRateLimit(userID); err != nil {
		if errors.Is(err, model.ErrRateLimited) {
			return "Daily submission limit reached. Try again tomorrow."
		}
		e.log.Error("rate limit count failed", zap.String("user_id", userID), zap.Error(err))
		return msgTryAgain
	}

	e.sessions.put(userID, draft{state: stateAwaitURL, usernameLower: usernameLower})
	return "Send your post URL (FB/IG/TikTok)."
}

// checkRateLimit recomputes the user's trailing-24h submission count
// from durable state and returns model.ErrRateLimited at the cap.
func (e *Engine) checkRateLimit(userID string) error {
	count, err := e.store.CountSubmissionsSince(userID, time.Now().Add(-24*time.Hour))
	if err != nil {
		return err
	}
	if count >= e.maxPerDay {
		return model.ErrRateLimited
	}
	return nil
}

// StartMetrics begins the T2 metrics-proof follow-up for an existing
// submission id.
func (e *Engine) StartMetrics(userID, submissionID string) string {
	submissionID = strings.TrimSpace(submissionID)
	if submissionID == "" {
		return "Usage: /metrics <ugc_id>"
	}

	e.sessions.put(userID, draft{state: stateAwaitMetricsProof, metricsSubmissionID: submissionID})
	return "Upload ONE screenshot of the post metrics (photo)."
}

// Status reports a submission's platform, tier, status and validation
// time. Lookups are scoped to the requesting user.
func (e *Engine) Status(userID, submissionID string) string {
	submissionID = strings.TrimSpace(submissionID)
	if submissionID == "" {
		return "Usage: /status <ugc_id>"
	}

	sub, err := e.store.FindOwnedSubmission(submissionID, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return "Not found."
		}
		e.log.Error("status lookup failed", zap.String("user_id", userID), zap.Error(err))
		return msgTryAgain
	}

	validated := "-"
	if sub.ValidatedAt > 0 {
		validated = time.Unix(sub.ValidatedAt, 0).UTC().Format(time.RFC3339)
	}
	return fmt.Sprintf(
		"UGC %s\nPlatform: %s\nTier: %s\nStatus: %s\nValidated: %s\nTip: claim rewards in community bot using /claim",
		sub.ID, sub.Platform, sub.TierClaimed, sub.Status, validated)
}

// Cancel discards the user's active draft, if any.
func (e *Engine) Cancel(userID string) string {
	if _, ok := e.sessions.get(userID); !ok {
		return "Nothing to cancel."
	}
	e.sessions.remove(userID)
	return "Submission cancelled."
}

// HandleText advances the active draft with a text input. Returns ""
// when the user has no draft or the draft isn't waiting for text.
func (e *Engine) HandleText(userID, text string) string {
	d, ok := e.sessions.get(userID)
	if !ok {
		return ""
	}

	switch d.state {
	case stateAwaitURL:
		return e.gotURL(userID, d, text)
	case stateAwaitCode:
		return e.gotCode(userID, d, text)
	case stateAwaitCaption:
		return e.gotCaption(userID, d, text)
	case stateAwaitTier:
		return e.gotTier(userID, d, text)
	case stateAwaitProof:
		return "Please upload as a photo (not text). Try again."
	case stateAwaitMetricsProof:
		return "Please upload as a photo. Try again."
	}
	return ""
}

// HandlePhoto advances the active draft with a downloaded photo. Returns
// "" when the user has no draft or the draft isn't waiting for a photo.
func (e *Engine) HandlePhoto(userID string, content []byte) string {
	d, ok := e.sessions.get(userID)
	if !ok {
		return ""
	}

	switch d.state {
	case stateAwaitProof:
		d.proofHash = utils.FingerprintBytes(content)
		d.state = stateAwaitTier
		e.sessions.put(userID, d)
		return "Which tier are you claiming?\nReply with: T1 or T2"
	case stateAwaitMetricsProof:
		return e.gotMetricsProof(userID, d, content)
	}
	return ""
}

// got* handlers receive the draft by value and write the advanced copy
// back through the session store's mutex.

func (e *Engine) gotURL(userID string, d draft, text string) string {
	url := utils.NormalizeURL(text)
	platform := utils.DetectPlatform(url)
	if platform == "" {
		return "Invalid URL. Must be Facebook / Instagram / TikTok link. Send again."
	}

	d.platform = platform
	d.postURL = url
	d.postHash = utils.FingerprintURL(platform, url)
	d.state = stateAwaitCode
	e.sessions.put(userID, d)
	return "Send your UGC code (from community bot)."
}

func (e *Engine) gotCode(userID string, d draft, text string) string {
	code := strings.TrimSpace(text)
	if err := e.store.ValidateCode(userID, code); err != nil {
		return codeErrorText(err, e.log, userID)
	}

	d.code = code
	d.state = stateAwaitCaption
	e.sessions.put(userID, d)
	return "Send your caption text (copy/paste what you posted)."
}

func (e *Engine) gotCaption(userID string, d draft, text string) string {
	caption := strings.TrimSpace(text)
	if len(caption) < minCaptionLen {
		return "Caption too short. Send again."
	}

	d.caption = caption
	d.state = stateAwaitProof
	e.sessions.put(userID, d)
	return "Upload ONE screenshot proof of the post (photo)."
}

func (e *Engine) gotTier(userID string, d draft, text string) string {
	tier, ok := model.ParseTier(text)
	if !ok {
		return "Invalid. Reply with T1 or T2."
	}
	return e.commit(userID, d, tier)
}

func codeErrorText(err error, log *zap.Logger, userID string) string {
	var msg string
	switch {
	case errors.Is(err, model.ErrCodeNotFound):
		msg = "Code not found. Get a code from the community bot first."
	case errors.Is(err, model.ErrCodeNotOwned):
		msg = "This code is not bound to your account."
	case errors.Is(err, model.ErrCodeAlreadyUsed):
		msg = "Code already used/expired. Get a new one from the community bot."
	default:
		log.Error("code validation failed", zap.String("user_id", userID), zap.Error(err))
		return msgTryAgain
	}
	return msg + "\n\nSend a valid UGC code."
}
