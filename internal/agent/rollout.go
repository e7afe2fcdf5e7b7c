package agent

import (
	"context"
	"math"
	"runtime"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/peterkuimelis/deckcrawl/internal/game"
	"github.com/peterkuimelis/deckcrawl/internal/rng"
)

const (
	DefaultRollouts = 16
	DefaultDepth    = 80
)

// Rollout scores every legal action by playing random continuations on
// independent clones and picks the best average. Rollouts for one decision
// run concurrently; each gets its own RNG forked from the caller's, in a
// fixed order, so the choice does not depend on scheduling.
type Rollout struct {
	Rollouts int // continuations per action
	Depth    int // actions per continuation
	Workers  int // concurrent continuations, 0 means GOMAXPROCS
	Tracer   trace.Tracer
}

// NewRollout returns a rollout agent with the given budget. Zero values fall
// back to the package defaults.
func NewRollout(rollouts, depth, workers int) *Rollout {
	return &Rollout{Rollouts: rollouts, Depth: depth, Workers: workers}
}

func (a *Rollout) tracer() trace.Tracer {
	if a.Tracer != nil {
		return a.Tracer
	}
	return otel.Tracer("deckcrawl/agent")
}

func (a *Rollout) budget() (rollouts, depth, workers int) {
	rollouts, depth, workers = a.Rollouts, a.Depth, a.Workers
	if rollouts <= 0 {
		rollouts = DefaultRollouts
	}
	if depth <= 0 {
		depth = DefaultDepth
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return rollouts, depth, workers
}

func (a *Rollout) Choose(ctx context.Context, s *game.State, r *rng.RNG) (int, error) {
	n := s.LegalActionCount()
	switch n {
	case 0:
		return 0, game.ErrTerminal
	case 1:
		return 0, nil
	}
	rollouts, depth, workers := a.budget()

	ctx, span := a.tracer().Start(ctx, "rollout.choose", trace.WithAttributes(
		attribute.Int("actions", n),
		attribute.Int("rollouts", rollouts),
		attribute.Int("depth", depth),
		attribute.String("choice.kind", s.Choice.Kind.String()),
	))
	defer span.End()

	seeds := make([]*rng.RNG, n*rollouts)
	for i := range seeds {
		seeds[i] = r.Fork()
	}
	scores := make([]float64, n*rollouts)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range n {
		for j := range rollouts {
			k := i*rollouts + j
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				scores[k] = simulate(s, i, seeds[k], depth)
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return 0, err
	}

	best, bestScore := 0, math.Inf(-1)
	for i := range n {
		total := 0.0
		for _, sc := range scores[i*rollouts : (i+1)*rollouts] {
			total += sc
		}
		if total > bestScore {
			best, bestScore = i, total
		}
	}
	span.SetAttributes(
		attribute.Int("choice", best),
		attribute.Float64("score", bestScore/float64(rollouts)),
	)
	return best, nil
}

// simulate applies action i to a clone of s, continues with random actions
// for up to depth steps and scores the result.
func simulate(s *game.State, i int, r *rng.RNG, depth int) float64 {
	c := s.Clone()
	if err := c.Apply(r, i); err != nil {
		return Score(c)
	}
	for range depth {
		if c.IsTerminal() {
			break
		}
		if err := c.Apply(r, r.IntN(c.LegalActionCount())); err != nil {
			break
		}
	}
	return Score(c)
}

// Score rates a state for search. Winning dominates, then encounters
// cleared, then remaining player HP, then damage dealt in the current fight.
// A session ended by an error scores lowest.
func Score(s *game.State) float64 {
	if s.Err() != nil {
		return -2
	}
	if s.Choice.Kind == game.ChoiceLoss {
		return -1 + progress(s)
	}
	hp := float64(s.Player.HP) / float64(max(s.Player.MaxHP, 1))
	if s.Won() {
		return 3 + hp
	}
	return progress(s) + hp + 0.5*fightProgress(s)
}

func progress(s *game.State) float64 {
	if len(s.Encounters) == 0 {
		return 0
	}
	floor := s.Floor
	if s.Choice.Kind == game.ChoiceReward {
		floor++
	}
	return float64(floor) / float64(len(s.Encounters))
}

// fightProgress rises towards 1 as the living enemies' combined HP drops.
func fightProgress(s *game.State) float64 {
	if s.Fight == nil || s.Choice.Kind == game.ChoiceReward {
		return 0
	}
	hp := 0
	for _, e := range s.Fight.Enemies {
		if e.Alive() {
			hp += e.HP
		}
	}
	return 1 / (1 + float64(hp)/20)
}
