package model

import "errors"

// Sentinel errors surfaced by the store and mapped to user-facing text
// by the workflow engine.
var (
	ErrCodeNotFound    = errors.New("code not found")
	ErrCodeNotOwned    = errors.New("code not bound to user")
	ErrCodeAlreadyUsed = errors.New("code already used or expired")
	ErrNotFound        = errors.New("submission not found")
	ErrRateLimited     = errors.New("daily submission limit reached")
)
