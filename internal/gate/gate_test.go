package gate

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brewsterlabs/brewtrack/internal/domain"
)

func passAnswerFor(t *testing.T, c Challenge) Answer {
	t.Helper()
	switch c.Kind {
	case KindRecipeBuild:
		return Answer{Ingredients: []string{"Milk", "Espresso"}}
	case KindNameThatCoffee:
		return Answer{Choice: "Latte"}
	default:
		t.Fatalf("unknown challenge kind %q", c.Kind)
		return Answer{}
	}
}

func failAnswer() Answer {
	return Answer{Ingredients: []string{"Ice"}, Choice: "Americano"}
}

func TestVerificationPassAllUnlocks(t *testing.T) {
	g := NewVerificationGate()
	require.Equal(t, StateInProgress, g.State())
	require.Equal(t, 2, g.Total())

	first, ok := g.Current()
	require.True(t, ok)
	assert.Equal(t, KindRecipeBuild, first.Kind)

	state, err := g.Submit(passAnswerFor(t, first))
	require.NoError(t, err)
	assert.Equal(t, StateInProgress, state)
	assert.Equal(t, 1, g.PassCount())

	second, ok := g.Current()
	require.True(t, ok)
	assert.Equal(t, KindNameThatCoffee, second.Kind)

	state, err = g.Submit(passAnswerFor(t, second))
	require.NoError(t, err)
	assert.Equal(t, StateUnlocked, state)
	assert.Equal(t, 2, g.PassCount())

	_, ok = g.Current()
	assert.False(t, ok)
}

func TestVerificationFailSecondChallengeDenies(t *testing.T) {
	g := NewVerificationGate()

	first, _ := g.Current()
	_, err := g.Submit(passAnswerFor(t, first))
	require.NoError(t, err)

	state, err := g.Submit(failAnswer())
	require.NoError(t, err)
	assert.Equal(t, StateDenied, state)
}

func TestVerificationFailFirstChallengeDeniesImmediately(t *testing.T) {
	g := NewVerificationGate()

	state, err := g.Submit(failAnswer())
	require.NoError(t, err)
	assert.Equal(t, StateDenied, state)

	// Challenge 2 is never presented.
	_, ok := g.Current()
	assert.False(t, ok)
	assert.Equal(t, 0, g.PassCount())
}

func TestSubmitAfterTerminalStateIsConflict(t *testing.T) {
	g := NewVerificationGate()
	_, err := g.Submit(failAnswer())
	require.NoError(t, err)

	_, err = g.Submit(failAnswer())
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestTrainingDrawIsSeededAndDrawnOnce(t *testing.T) {
	a := NewTrainingGate(rand.New(rand.NewSource(1)))
	b := NewTrainingGate(rand.New(rand.NewSource(1)))

	require.Equal(t, 1, a.Total())

	ca, _ := a.Current()
	cb, _ := b.Current()
	assert.Equal(t, ca.Kind, cb.Kind, "same seed must draw the same challenge")

	// Re-reading the current challenge never rerolls it.
	again, _ := a.Current()
	assert.Equal(t, ca.Kind, again.Kind)
}

func TestRegistryVerificationPersistsFlagOnUnlock(t *testing.T) {
	ctx := context.Background()
	flags := NewMemFlagStore()
	r := NewRegistry(flags, rand.New(rand.NewSource(42)))

	g, err := r.Start(ctx, "sess-1", ModeVerification)
	require.NoError(t, err)
	require.Equal(t, StateInProgress, g.State())

	for {
		current, ok := g.Current()
		if !ok {
			break
		}
		g, err = r.Submit(ctx, "sess-1", passAnswerFor(t, current))
		require.NoError(t, err)
	}

	assert.Equal(t, StateUnlocked, g.State())

	verified, err := flags.Verified(ctx, "sess-1")
	require.NoError(t, err)
	assert.True(t, verified)
}

func TestRegistryVerificationDeniedDoesNotPersistFlag(t *testing.T) {
	ctx := context.Background()
	flags := NewMemFlagStore()
	r := NewRegistry(flags, rand.New(rand.NewSource(42)))

	_, err := r.Start(ctx, "sess-2", ModeVerification)
	require.NoError(t, err)

	g, err := r.Submit(ctx, "sess-2", failAnswer())
	require.NoError(t, err)
	assert.Equal(t, StateDenied, g.State())

	verified, err := flags.Verified(ctx, "sess-2")
	require.NoError(t, err)
	assert.False(t, verified)
}

func TestRegistryVerifiedSessionBypassesGate(t *testing.T) {
	ctx := context.Background()
	flags := NewMemFlagStore()
	require.NoError(t, flags.SetVerified(ctx, "sess-3"))

	r := NewRegistry(flags, rand.New(rand.NewSource(42)))

	g, err := r.Start(ctx, "sess-3", ModeVerification)
	require.NoError(t, err)
	assert.Equal(t, StateUnlocked, g.State())

	_, ok := g.Current()
	assert.False(t, ok, "bypassed gate must not present a challenge")
}

func TestRegistryTrainingNeverTouchesFlag(t *testing.T) {
	ctx := context.Background()

	for seed := int64(0); seed < 4; seed++ {
		for _, pass := range []bool{true, false} {
			flags := NewMemFlagStore()
			r := NewRegistry(flags, rand.New(rand.NewSource(seed)))

			g, err := r.Start(ctx, "trainee", ModeTraining)
			require.NoError(t, err)
			require.Equal(t, 1, g.Total())

			current, ok := g.Current()
			require.True(t, ok)

			answer := failAnswer()
			if pass {
				answer = passAnswerFor(t, current)
			}

			g, err = r.Submit(ctx, "trainee", answer)
			require.NoError(t, err)
			if pass {
				assert.Equal(t, StateUnlocked, g.State())
			} else {
				assert.Equal(t, StateDenied, g.State())
			}

			verified, err := flags.Verified(ctx, "trainee")
			require.NoError(t, err)
			assert.False(t, verified, "training outcome must not persist the verified flag")
		}
	}
}

func TestRegistryStartRejectsUnknownMode(t *testing.T) {
	r := NewRegistry(NewMemFlagStore(), rand.New(rand.NewSource(1)))

	_, err := r.Start(context.Background(), "sess", Mode("speedrun"))
	assert.True(t, domain.IsValidation(err))
}

func TestRegistryGetUnknownSession(t *testing.T) {
	r := NewRegistry(NewMemFlagStore(), rand.New(rand.NewSource(1)))

	_, err := r.Get("nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
