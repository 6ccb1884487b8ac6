package workflow

import (
	"sync"
	"time"
)

type state int

const (
	stateAwaitURL state = iota
	stateAwaitCode
	stateAwaitCaption
	stateAwaitProof
	stateAwaitTier
	stateAwaitMetricsProof
)

// draft accumulates the fields of one in-progress submission. It lives
// only for the duration of the conversation; committing, cancelling or
// session expiry discards it.
type draft struct {
	state         state
	usernameLower string

	platform  string
	postURL   string
	postHash  string
	code      string
	caption   string
	proofHash string

	metricsSubmissionID string

	createdAt time.Time
}

// sessionStore keeps at most one active draft per user. Drafts are
// stored and handed out by value: callers mutate their own copy and
// write it back with put, so concurrent deliveries for the same user
// never share a mutable draft.
type sessionStore struct {
	mu     sync.RWMutex
	drafts map[string]draft
	ttl    time.Duration
}

func newSessionStore(ttl time.Duration) *sessionStore {
	s := &sessionStore{
		drafts: make(map[string]draft),
		ttl:    ttl,
	}
	go s.janitor()
	return s
}

func (s *sessionStore) get(userID string) (draft, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.drafts[userID]
	return d, ok
}

func (s *sessionStore) put(userID string, d draft) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d.createdAt = time.Now()
	s.drafts[userID] = d
}

func (s *sessionStore) remove(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.drafts, userID)
}

// janitor drops drafts abandoned longer than the TTL.
func (s *sessionStore) janitor() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		s.mu.Lock()
		for userID, d := range s.drafts {
			if time.Since(d.createdAt) > s.ttl {
				delete(s.drafts, userID)
			}
		}
		s.mu.Unlock()
	}
}
