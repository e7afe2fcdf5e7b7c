package game

import (
	"fmt"
	"slices"

	"github.com/peterkuimelis/deckcrawl/internal/rng"
)

// Transition is a weighted successor distribution over a species' states.
type Transition struct {
	Next    []string `yaml:"next"`
	Weights []int    `yaml:"weights"`

	next []uint32
}

// AIState is one row of a species' transition table.
type AIState struct {
	Name       string        `yaml:"name"`
	Actions    []EnemyAction `yaml:"actions"`
	Transition `yaml:",inline"`
}

// sample draws a successor state id.
func (t *Transition) sample(r *rng.RNG) uint32 {
	return t.next[r.Weighted(t.Weights)]
}

// Probabilities returns the normalized successor distribution, keyed by state id.
func (t *Transition) Probabilities() map[uint32]float64 {
	total := 0
	for _, w := range t.Weights {
		total += max(w, 0)
	}
	out := make(map[uint32]float64, len(t.next))
	for i, id := range t.next {
		out[id] += float64(max(t.Weights[i], 0)) / float64(total)
	}
	return out
}

func (t *Transition) resolve(sp *Species, where string) error {
	if len(t.Next) == 0 || len(t.Next) != len(t.Weights) {
		return fmt.Errorf("species %q %s: %d successors with %d weights", sp.Name, where, len(t.Next), len(t.Weights))
	}
	total := 0
	t.next = make([]uint32, len(t.Next))
	for i, name := range t.Next {
		id, ok := sp.stateID(name)
		if !ok {
			return fmt.Errorf("species %q %s: unknown state %q", sp.Name, where, name)
		}
		if t.Weights[i] < 0 {
			return fmt.Errorf("species %q %s: negative weight for %q", sp.Name, where, name)
		}
		t.next[i] = id
		total += t.Weights[i]
	}
	if total <= 0 {
		return fmt.Errorf("species %q %s: weights sum to zero", sp.Name, where)
	}
	return nil
}

// --- Deciders ---

// deciders maps a species' decider tag to its decision function builder.
var deciders = map[string]func(sp *Species) Decider{
	"table": tableDecider,
	"split": splitDecider,
}

// tableDecider follows the weighted transition table. The actions returned
// are those of the state being left.
func tableDecider(sp *Species) Decider {
	return func(r *rng.RNG, _ FightView, _ Enemy, state uint32) (uint32, []EnemyAction) {
		st := &sp.States[state]
		return st.sample(r), slices.Clone(st.Actions)
	}
}

// splitDecider splits the enemy once it is at or below half HP and
// otherwise defers to the table.
func splitDecider(sp *Species) Decider {
	table := tableDecider(sp)
	return func(r *rng.RNG, view FightView, self Enemy, state uint32) (uint32, []EnemyAction) {
		if shouldSplit(sp, &self) {
			return state, []EnemyAction{{Kind: ActSplit}}
		}
		return table(r, view, self, state)
	}
}

func shouldSplit(sp *Species, e *Enemy) bool {
	return sp.SplitInto != "" && e.HP > 0 && e.HP <= e.MaxHP/2
}
