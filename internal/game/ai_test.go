package game

import (
	"errors"
	"math"
	"testing"

	"github.com/peterkuimelis/deckcrawl/internal/rng"
)

func TestDefaultBestiaryLoads(t *testing.T) {
	b := DefaultBestiary()
	want := []string{
		"Cultist", "Jaw Worm", "Red Louse", "Green Louse",
		"Acid Slime (L)", "Acid Slime (M)", "Acid Slime (S)",
		"Spike Slime (L)", "Spike Slime (M)", "Fungi Beast", "Gremlin Nob",
	}
	for _, name := range want {
		if _, ok := b.Lookup(name); !ok {
			t.Errorf("species %q missing", name)
		}
	}
	if err := b.Validate(DefaultCatalog()); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestTransitionDistribution(t *testing.T) {
	sp, _ := DefaultBestiary().Lookup("Jaw Worm")
	thrash, ok := sp.stateID("thrash")
	if !ok {
		t.Fatal("Jaw Worm has no thrash state")
	}
	self := Enemy{Species: sp.Name, HP: 40, MaxHP: 40}
	r := rng.New(42)

	const samples = 100000
	counts := map[uint32]int{}
	for range samples {
		next, actions := sp.Decide()(r, FightView{}, self, thrash)
		counts[next]++
		if len(actions) != 2 || actions[0].Kind != ActAttack || actions[0].Amount != 7 || actions[1].Kind != ActBlock {
			t.Fatalf("thrash should return its own actions, got %+v", actions)
		}
	}

	st := sp.States[thrash]
	for id, p := range st.Probabilities() {
		freq := float64(counts[id]) / samples
		if math.Abs(freq-p) > 0.01 {
			t.Errorf("%s: frequency %.4f, want %.4f", sp.StateName(id), freq, p)
		}
	}
}

func TestDeciderIsPure(t *testing.T) {
	sp, _ := DefaultBestiary().Lookup("Cultist")
	self := Enemy{Species: sp.Name, HP: 50, MaxHP: 50}
	r := rng.New(1)
	next, actions := sp.Decide()(r, FightView{}, self, 0)
	if sp.StateName(next) != "dark_strike" {
		t.Errorf("incantation should lead to dark_strike, got %s", sp.StateName(next))
	}
	if len(actions) != 1 || actions[0].Kind != ActBuff || actions[0].Status != StatusRitual {
		t.Errorf("incantation actions = %+v", actions)
	}
	actions[0].Amount = 99
	if sp.States[0].Actions[0].Amount != 3 {
		t.Error("returned actions alias the species table")
	}
}

func TestSplitShortCircuitsTable(t *testing.T) {
	b := DefaultBestiary()
	r := rng.New(2)
	e, err := b.Spawn(r, "Acid Slime (L)")
	if err != nil {
		t.Fatal(err)
	}
	state := e.AIState

	_, actions := e.Decide(r, FightView{}, *e, state)
	if len(actions) > 0 && actions[0].Kind == ActSplit {
		t.Fatal("healthy slime should not split")
	}

	e.HP = e.MaxHP / 2
	next, actions := e.Decide(r, FightView{}, *e, state)
	if len(actions) != 1 || actions[0].Kind != ActSplit {
		t.Fatalf("slime at half HP should split, got %+v", actions)
	}
	if next != state {
		t.Errorf("split should keep the AI state, got %d want %d", next, state)
	}
	if got := e.IntentString(); got != "Split" {
		t.Errorf("intent = %q, want Split", got)
	}
}

func TestSpawnRollsWithinRanges(t *testing.T) {
	b := DefaultBestiary()
	for seed := range uint64(30) {
		e, err := b.Spawn(rng.New(seed), "Red Louse")
		if err != nil {
			t.Fatal(err)
		}
		if e.HP < 10 || e.HP > 15 || e.HP != e.MaxHP {
			t.Errorf("seed %d: hp %d/%d", seed, e.HP, e.MaxHP)
		}
		if e.Bite < 5 || e.Bite > 7 {
			t.Errorf("seed %d: bite %d", seed, e.Bite)
		}
		if curl := e.Statuses[StatusCurlUp]; curl < 3 || curl > 7 {
			t.Errorf("seed %d: curl up %d", seed, curl)
		}
	}
}

func TestSpawnUnknownSpecies(t *testing.T) {
	_, err := DefaultBestiary().Spawn(rng.New(1), "Slime Boss")
	var ue *UnsupportedError
	if !errors.As(err, &ue) || ue.Kind != "species" {
		t.Fatalf("expected unsupported species, got %v", err)
	}
}

func TestLoadBestiaryRejectsBadTables(t *testing.T) {
	cases := map[string]string{
		"zero weights": `
species:
  - name: A
    hp: [1, 2]
    decider: table
    opening: {next: [s], weights: [0]}
    states:
      - {name: s, actions: [], next: [s], weights: [0]}
`,
		"unknown state": `
species:
  - name: A
    hp: [1, 2]
    decider: table
    opening: {next: [s], weights: [1]}
    states:
      - {name: s, actions: [], next: [t], weights: [1]}
`,
		"unknown action": `
species:
  - name: A
    hp: [1, 2]
    decider: table
    opening: {next: [s], weights: [1]}
    states:
      - name: s
        actions: [{kind: summon}]
        next: [s]
        weights: [1]
`,
		"unknown decider": `
species:
  - name: A
    hp: [1, 2]
    decider: boss
    opening: {next: [s], weights: [1]}
    states:
      - {name: s, actions: [], next: [s], weights: [1]}
`,
		"missing split target": `
species:
  - name: A
    hp: [1, 2]
    decider: split
    split_into: B
    opening: {next: [s], weights: [1]}
    states:
      - {name: s, actions: [], next: [s], weights: [1]}
`,
	}
	for name, data := range cases {
		if _, err := LoadBestiary([]byte(data)); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}
