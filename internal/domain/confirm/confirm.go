// Package confirm implements two-phase deletion: a caller first requests a
// token naming what will be deleted, then confirms it in a separate step.
package confirm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrUnknownToken indicates the token was never issued or was already used.
	ErrUnknownToken = errors.New("unknown confirmation token")
	// ErrTokenExpired indicates the token outlived its TTL.
	ErrTokenExpired = errors.New("confirmation token expired")
	// ErrInvalidInput indicates a request that can't be turned into a token.
	ErrInvalidInput = errors.New("invalid confirmation request")
)

// DefaultTTL is how long a token stays valid when none is configured.
const DefaultTTL = 5 * time.Minute

// Kind names what a token deletes.
type Kind string

const (
	KindBean Kind = "bean"
	KindBrew Kind = "brew"
)

// Token is a pending deletion.
type Token struct {
	ID        string    `json:"token"`
	Kind      Kind      `json:"kind"`
	TargetID  int64     `json:"target_id"`
	Label     string    `json:"label,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Executor performs the deletion once a token is confirmed.
type Executor func(ctx context.Context, id int64) error

// Service issues and redeems tokens. It is safe for concurrent use.
type Service struct {
	mu        sync.Mutex
	pending   map[string]Token
	executors map[Kind]Executor
	ttl       time.Duration
	now       func() time.Time
	logger    *slog.Logger
}

// NewService creates a service whose tokens live for ttl.
func NewService(ttl time.Duration, logger *slog.Logger) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{
		pending:   make(map[string]Token),
		executors: make(map[Kind]Executor),
		ttl:       ttl,
		now:       time.Now,
		logger:    logger,
	}
}

// WithClock overrides the clock used for expiry.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Register sets the executor for kind.
func (s *Service) Register(kind Kind, exec Executor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.executors[kind] = exec
}

// Request issues a token for deleting targetID. Nothing is deleted yet.
func (s *Service) Request(kind Kind, targetID int64, label string) (Token, error) {
	if targetID <= 0 {
		return Token{}, fmt.Errorf("%w: target id must be positive", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.executors[kind]; !ok {
		return Token{}, fmt.Errorf("%w: unknown kind %q", ErrInvalidInput, kind)
	}
	s.sweep()

	tok := Token{
		ID:        uuid.NewString(),
		Kind:      kind,
		TargetID:  targetID,
		Label:     label,
		ExpiresAt: s.now().Add(s.ttl),
	}
	s.pending[tok.ID] = tok

	if s.logger != nil {
		s.logger.Info("delete requested", "kind", kind, "target_id", targetID, "expires_at", tok.ExpiresAt)
	}
	return tok, nil
}

// Confirm redeems a token and runs its deletion. A token is consumed by the
// first Confirm whatever the outcome, including expiry.
func (s *Service) Confirm(ctx context.Context, tokenID string) (Token, error) {
	s.mu.Lock()
	tok, ok := s.pending[tokenID]
	if ok {
		delete(s.pending, tokenID)
	}
	exec := s.executors[tok.Kind]
	now := s.now()
	s.mu.Unlock()

	if !ok {
		return Token{}, ErrUnknownToken
	}
	if now.After(tok.ExpiresAt) {
		return tok, fmt.Errorf("%w: issued for %s %d", ErrTokenExpired, tok.Kind, tok.TargetID)
	}

	if err := exec(ctx, tok.TargetID); err != nil {
		return tok, fmt.Errorf("deleting %s %d: %w", tok.Kind, tok.TargetID, err)
	}

	if s.logger != nil {
		s.logger.Info("delete confirmed", "kind", tok.Kind, "target_id", tok.TargetID)
	}
	return tok, nil
}

// Cancel discards a token. It reports whether the token was pending.
func (s *Service) Cancel(tokenID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.pending[tokenID]
	delete(s.pending, tokenID)
	return ok
}

// Pending reports the number of unexpired tokens.
func (s *Service) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep()
	return len(s.pending)
}

// sweep drops expired tokens. Callers hold mu.
func (s *Service) sweep() {
	now := s.now()
	for id, tok := range s.pending {
		if now.After(tok.ExpiresAt) {
			delete(s.pending, id)
		}
	}
}
