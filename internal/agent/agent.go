// Package agent contains decision policies that drive a game.State through
// its action interface.
package agent

import (
	"context"
	"errors"
	"fmt"

	"github.com/peterkuimelis/deckcrawl/internal/game"
	"github.com/peterkuimelis/deckcrawl/internal/rng"
)

// ErrStepLimit is returned by Play when the state is still live after the
// step budget is spent.
var ErrStepLimit = errors.New("step limit reached")

// Agent picks one of the legal action indices of a non-terminal state.
// Implementations must not modify s; r may be consumed.
type Agent interface {
	Choose(ctx context.Context, s *game.State, r *rng.RNG) (int, error)
}

// AgentFunc adapts a plain function to the Agent interface.
type AgentFunc func(ctx context.Context, s *game.State, r *rng.RNG) (int, error)

func (f AgentFunc) Choose(ctx context.Context, s *game.State, r *rng.RNG) (int, error) {
	return f(ctx, s, r)
}

// Random picks a uniformly random legal action.
type Random struct{}

func (Random) Choose(_ context.Context, s *game.State, r *rng.RNG) (int, error) {
	n := s.LegalActionCount()
	if n == 0 {
		return 0, game.ErrTerminal
	}
	return r.IntN(n), nil
}

// Scripted replays a fixed list of action indices, then defers to Fallback.
// A nil Fallback always picks the first action.
type Scripted struct {
	Steps    []int
	Fallback Agent

	pos int
}

// NewScripted returns a scripted agent over steps.
func NewScripted(fallback Agent, steps ...int) *Scripted {
	return &Scripted{Steps: steps, Fallback: fallback}
}

func (a *Scripted) Choose(ctx context.Context, s *game.State, r *rng.RNG) (int, error) {
	if a.pos < len(a.Steps) {
		i := a.Steps[a.pos]
		a.pos++
		if i < 0 || i >= s.LegalActionCount() {
			return 0, fmt.Errorf("scripted step %d: index %d: %w", a.pos-1, i, game.ErrActionOutOfRange)
		}
		return i, nil
	}
	if a.Fallback != nil {
		return a.Fallback.Choose(ctx, s, r)
	}
	return 0, nil
}

// Remaining reports how many scripted steps have not been used yet.
func (a *Scripted) Remaining() int { return len(a.Steps) - a.pos }

// Result summarizes a finished Play.
type Result struct {
	Won         bool   `json:"won"`
	Floor       int    `json:"floor"`
	HP          int    `json:"hp"`
	Steps       int    `json:"steps"`
	Fingerprint uint64 `json:"fingerprint"`
}

// Play drives s with a until it is terminal or maxSteps actions have been
// applied. maxSteps <= 0 means no limit. The returned Result describes s at
// the point Play stopped, even when an error is returned.
func Play(ctx context.Context, s *game.State, r *rng.RNG, a Agent, maxSteps int) (Result, error) {
	res := Result{}
	var err error
	for !s.IsTerminal() {
		if maxSteps > 0 && res.Steps >= maxSteps {
			err = ErrStepLimit
			break
		}
		if err = ctx.Err(); err != nil {
			break
		}
		var i int
		if i, err = a.Choose(ctx, s, r); err != nil {
			err = fmt.Errorf("choose at step %d: %w", res.Steps, err)
			break
		}
		if err = s.Apply(r, i); err != nil {
			err = fmt.Errorf("apply at step %d: %w", res.Steps, err)
			break
		}
		res.Steps++
	}
	res.Won = s.Won()
	res.Floor = s.Floor
	res.HP = s.Player.HP
	res.Fingerprint = s.Fingerprint()
	return res, err
}
