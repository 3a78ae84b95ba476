package gate

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"github.com/brewsterlabs/brewtrack/internal/domain"
)

// Registry tracks live gate sessions in process memory. Only the verified
// flag is durable; a restart resets every in-progress walk, which matches
// the session-scoped semantics of the gate.
type Registry struct {
	flags FlagStore

	mu       sync.Mutex
	sessions map[string]*Gate
	rng      *rand.Rand
}

// NewRegistry takes a seedable rng so tests can pin the training-mode
// challenge draw.
func NewRegistry(flags FlagStore, rng *rand.Rand) *Registry {
	return &Registry{
		flags:    flags,
		sessions: make(map[string]*Gate),
		rng:      rng,
	}
}

// Start creates (or resets) the session for the key. A verification start
// for a key whose flag is already persisted bypasses the gate entirely.
func (r *Registry) Start(ctx context.Context, sessionKey string, mode Mode) (*Gate, error) {
	switch mode {
	case ModeVerification, ModeTraining:
	default:
		return nil, &domain.ValidationError{Field: "mode", Reason: "must be verification or training"}
	}

	var g *Gate
	if mode == ModeVerification {
		verified, err := r.flags.Verified(ctx, sessionKey)
		if err != nil {
			return nil, err
		}
		if verified {
			g = Unlocked()
		} else {
			g = NewVerificationGate()
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if g == nil {
		g = NewTrainingGate(r.rng)
	}
	r.sessions[sessionKey] = g

	return g, nil
}

func (r *Registry) Get(sessionKey string) (*Gate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.sessions[sessionKey]
	if !ok {
		return nil, fmt.Errorf("gate session %s: %w", sessionKey, domain.ErrNotFound)
	}
	return g, nil
}

// Submit routes the answer to the session and persists the verified flag
// when a verification walk completes. Training outcomes never touch the
// flag.
func (r *Registry) Submit(ctx context.Context, sessionKey string, a Answer) (*Gate, error) {
	r.mu.Lock()
	g, ok := r.sessions[sessionKey]
	if !ok {
		r.mu.Unlock()
		return nil, fmt.Errorf("gate session %s: %w", sessionKey, domain.ErrNotFound)
	}

	state, err := g.Submit(a)
	r.mu.Unlock()
	if err != nil {
		return nil, err
	}

	if g.Mode() == ModeVerification && state == StateUnlocked {
		if err := r.flags.SetVerified(ctx, sessionKey); err != nil {
			return nil, err
		}
	}

	return g, nil
}
