// Package gate implements the quiz challenge state machine that blocks the
// ordering features until a client session passes verification once. The
// machine itself is pure (no IO); persistence of the verified flag is the
// caller's job via FlagStore.
package gate

import (
	"fmt"
	"math/rand"

	"github.com/brewsterlabs/brewtrack/internal/domain"
)

type State string

const (
	StateLocked     State = "locked"
	StateInProgress State = "in_progress"
	StateUnlocked   State = "unlocked"
	StateDenied     State = "denied"
)

type Mode string

const (
	// ModeVerification is the entry gate: the full catalogue, in order,
	// one failure is terminal.
	ModeVerification Mode = "verification"
	// ModeTraining presents a single random challenge and never touches
	// the persisted flag.
	ModeTraining Mode = "training"
)

// Gate is single-threaded per session; callers serialize access.
type Gate struct {
	mode       Mode
	state      State
	challenges []Challenge
	index      int
	passCount  int
}

// NewVerificationGate starts an in-progress walk of the full catalogue.
// Callers must check the persisted flag first and skip the gate entirely
// when it is already set (see Unlocked).
func NewVerificationGate() *Gate {
	return &Gate{
		mode:       ModeVerification,
		state:      StateInProgress,
		challenges: Catalogue(),
	}
}

// NewTrainingGate draws one random challenge from the catalogue. The draw
// happens here, exactly once per activation; rendering the same session
// again must not reroll it.
func NewTrainingGate(rng *rand.Rand) *Gate {
	catalogue := Catalogue()
	return &Gate{
		mode:       ModeTraining,
		state:      StateInProgress,
		challenges: []Challenge{catalogue[rng.Intn(len(catalogue))]},
	}
}

// Unlocked returns a gate that was bypassed because the session's verified
// flag is already set.
func Unlocked() *Gate {
	return &Gate{
		mode:       ModeVerification,
		state:      StateUnlocked,
		challenges: Catalogue(),
		passCount:  len(Catalogue()),
	}
}

func (g *Gate) Mode() Mode     { return g.mode }
func (g *Gate) State() State   { return g.state }
func (g *Gate) PassCount() int { return g.passCount }
func (g *Gate) Total() int     { return len(g.challenges) }

// Current returns the challenge awaiting an answer, or false when the gate
// is in a terminal state.
func (g *Gate) Current() (Challenge, bool) {
	if g.state != StateInProgress {
		return Challenge{}, false
	}
	return g.challenges[g.index], true
}

// Submit evaluates the answer against the current challenge and advances
// the machine. In verification mode a pass either advances to the next
// challenge or, when the catalogue is exhausted, unlocks; a fail is
// immediately terminal with no retry path. In training mode both outcomes
// are terminal and carry no further meaning.
func (g *Gate) Submit(a Answer) (State, error) {
	if g.state != StateInProgress {
		return g.state, fmt.Errorf("gate session already %s: %w", g.state, domain.ErrConflict)
	}

	passed := g.challenges[g.index].Check(a)

	if passed {
		g.passCount++
	}

	switch g.mode {
	case ModeVerification:
		if !passed {
			g.state = StateDenied
			break
		}
		if g.passCount == len(g.challenges) {
			g.state = StateUnlocked
			break
		}
		g.index++
	case ModeTraining:
		if passed {
			g.state = StateUnlocked
		} else {
			g.state = StateDenied
		}
	}

	return g.state, nil
}
