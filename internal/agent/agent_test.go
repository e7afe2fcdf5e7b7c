package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/deckcrawl/internal/game"
	"github.com/peterkuimelis/deckcrawl/internal/rng"
)

func newRun(t *testing.T, seed uint64) (*game.State, *rng.RNG) {
	t.Helper()
	r := rng.New(seed)
	s, err := game.NewRun(r, game.DefaultRunConfig())
	require.NoError(t, err)
	return s, r
}

func TestRandomPicksLegalIndex(t *testing.T) {
	s, r := newRun(t, 1)
	for range 200 {
		i, err := Random{}.Choose(context.Background(), s, r)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, i, 0)
		assert.Less(t, i, s.LegalActionCount())
	}
}

func TestRandomOnTerminalState(t *testing.T) {
	s, r := newRun(t, 1)
	s.Choice = game.Choice{Kind: game.ChoiceLoss}
	_, err := Random{}.Choose(context.Background(), s, r)
	assert.ErrorIs(t, err, game.ErrTerminal)
}

func TestScriptedThenFallback(t *testing.T) {
	s, r := newRun(t, 2)
	last := s.LegalActionCount() - 1
	fallback := AgentFunc(func(context.Context, *game.State, *rng.RNG) (int, error) { return 42, nil })
	a := NewScripted(fallback, last, 0)

	got, err := a.Choose(context.Background(), s, r)
	require.NoError(t, err)
	assert.Equal(t, last, got)
	got, err = a.Choose(context.Background(), s, r)
	require.NoError(t, err)
	assert.Equal(t, 0, got)
	assert.Equal(t, 0, a.Remaining())

	got, err = a.Choose(context.Background(), s, r)
	require.NoError(t, err)
	assert.Equal(t, 42, got)
}

func TestScriptedRejectsIllegalStep(t *testing.T) {
	s, r := newRun(t, 2)
	a := NewScripted(nil, 99)
	_, err := a.Choose(context.Background(), s, r)
	assert.ErrorIs(t, err, game.ErrActionOutOfRange)
}

func TestPlayRunsToTerminal(t *testing.T) {
	s, r := newRun(t, 5)
	res, err := Play(context.Background(), s, r, Random{}, 0)
	require.NoError(t, err)
	assert.True(t, s.IsTerminal())
	assert.Equal(t, s.Won(), res.Won)
	assert.Equal(t, s.Fingerprint(), res.Fingerprint)
	assert.Positive(t, res.Steps)
}

func TestPlayIsDeterministic(t *testing.T) {
	a, ra := newRun(t, 11)
	b, rb := newRun(t, 11)
	resA, errA := Play(context.Background(), a, ra, Random{}, 0)
	resB, errB := Play(context.Background(), b, rb, Random{}, 0)
	require.NoError(t, errA)
	require.NoError(t, errB)
	assert.Equal(t, resA, resB)
}

func TestPlayStepLimit(t *testing.T) {
	s, r := newRun(t, 3)
	res, err := Play(context.Background(), s, r, Random{}, 3)
	assert.ErrorIs(t, err, ErrStepLimit)
	assert.Equal(t, 3, res.Steps)
	assert.False(t, s.IsTerminal())
}

func TestPlayStopsOnCancel(t *testing.T) {
	s, r := newRun(t, 3)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := Play(ctx, s, r, Random{}, 0)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, res.Steps)
}

func TestRolloutIgnoresWorkerCount(t *testing.T) {
	s, r := newRun(t, 21)
	serial := NewRollout(4, 30, 1)
	parallel := NewRollout(4, 30, 8)

	a, err := serial.Choose(context.Background(), s, r.Clone())
	require.NoError(t, err)
	b, err := parallel.Choose(context.Background(), s, r.Clone())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRolloutLeavesStateUntouched(t *testing.T) {
	s, r := newRun(t, 8)
	before := s.Fingerprint()
	_, err := NewRollout(2, 20, 4).Choose(context.Background(), s, r)
	require.NoError(t, err)
	assert.Equal(t, before, s.Fingerprint())
}

func TestRolloutCancelled(t *testing.T) {
	s, r := newRun(t, 8)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewRollout(2, 10, 2).Choose(ctx, s, r)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRolloutSingleActionShortCircuits(t *testing.T) {
	s, r := newRun(t, 8)
	s.Choice = game.Choice{Kind: game.ChoiceReward}
	before := r.Clone().Uint64()
	i, err := NewRollout(2, 10, 2).Choose(context.Background(), s, r)
	require.NoError(t, err)
	assert.Equal(t, 0, i)
	assert.Equal(t, before, r.Uint64(), "no randomness should be consumed")
}

func TestScoreOrdering(t *testing.T) {
	s, _ := newRun(t, 1)

	won := s.Clone()
	won.Choice = game.Choice{Kind: game.ChoiceWin}
	lost := s.Clone()
	lost.Choice = game.Choice{Kind: game.ChoiceLoss}
	lost.Player.HP = 0
	hurt := s.Clone()
	hurt.Player.HP = 10

	assert.Greater(t, Score(won), Score(s))
	assert.Greater(t, Score(s), Score(hurt))
	assert.Greater(t, Score(hurt), Score(lost))
}
