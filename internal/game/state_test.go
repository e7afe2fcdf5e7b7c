package game

import (
	"errors"
	"testing"

	"github.com/peterkuimelis/deckcrawl/internal/log"
	"github.com/peterkuimelis/deckcrawl/internal/rng"
)

// randomPlayout applies uniformly random legal actions and returns the
// fingerprint after each step.
func randomPlayout(t *testing.T, s *State, r, policy *rng.RNG, maxSteps int) []uint64 {
	t.Helper()
	var fps []uint64
	for step := 0; step < maxSteps && !s.IsTerminal(); step++ {
		apply(t, s, r, policy.IntN(s.LegalActionCount()))
		fps = append(fps, s.Fingerprint())
	}
	return fps
}

func newDefaultRun(t *testing.T, seed uint64) (*State, *rng.RNG) {
	t.Helper()
	return mustRun(t, DefaultRunConfig(), seed)
}

func mustRun(t *testing.T, cfg RunConfig, seed uint64) (*State, *rng.RNG) {
	t.Helper()
	r := rng.New(seed)
	s, err := NewRun(r, cfg)
	if err != nil {
		t.Fatalf("NewRun: %v", err)
	}
	return s, r
}

func TestReplayIsDeterministic(t *testing.T) {
	for seed := range uint64(5) {
		a, ra := newDefaultRun(t, seed)
		b, rb := newDefaultRun(t, seed)
		if a.Fingerprint() != b.Fingerprint() {
			t.Fatalf("seed %d: initial states differ", seed)
		}
		fa := randomPlayout(t, a, ra, rng.New(seed+100), 400)
		fb := randomPlayout(t, b, rb, rng.New(seed+100), 400)
		if len(fa) != len(fb) {
			t.Fatalf("seed %d: %d vs %d steps", seed, len(fa), len(fb))
		}
		for i := range fa {
			if fa[i] != fb[i] {
				t.Fatalf("seed %d: diverged at step %d", seed, i)
			}
		}
	}
}

func TestCardConservationDuringPlay(t *testing.T) {
	for seed := range uint64(20) {
		s, r := newDefaultRun(t, seed)
		// apply checks conservation after every action.
		randomPlayout(t, s, r, rng.New(seed), 1500)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	s, r := newDefaultRun(t, 3)
	s.Logger = log.NewMemoryLogger()
	randomPlayout(t, s, r, rng.New(8), 10)

	c := s.Clone()
	if c.Logger != nil {
		t.Error("clones should not share the logger")
	}
	if c.Fingerprint() != s.Fingerprint() {
		t.Fatal("clone fingerprint differs from original")
	}

	before := s.Fingerprint()
	handBefore := len(s.Fight.Hand)
	randomPlayout(t, c, r.Clone(), rng.New(9), 200)
	if s.Fingerprint() != before || len(s.Fight.Hand) != handBefore {
		t.Error("playing the clone changed the original")
	}
}

func TestCloneReplaysLikeOriginal(t *testing.T) {
	s, r := newDefaultRun(t, 4)
	c, rc := s.Clone(), r.Clone()
	fs := randomPlayout(t, s, r, rng.New(1), 300)
	fc := randomPlayout(t, c, rc, rng.New(1), 300)
	if len(fs) != len(fc) || fs[len(fs)-1] != fc[len(fc)-1] {
		t.Error("clone with a cloned RNG should follow the same trajectory")
	}
}

func TestApplyRejectsBadIndex(t *testing.T) {
	s, r := newDefaultRun(t, 1)
	n := s.LegalActionCount()
	for _, i := range []int{-1, n} {
		if err := s.Apply(r, i); !errors.Is(err, ErrActionOutOfRange) {
			t.Errorf("Apply(%d) = %v, want ErrActionOutOfRange", i, err)
		}
		if _, err := s.DescribeAction(i); !errors.Is(err, ErrActionOutOfRange) {
			t.Errorf("DescribeAction(%d) = %v, want ErrActionOutOfRange", i, err)
		}
	}
	if label, err := s.DescribeAction(n - 1); err != nil || label != "End turn" {
		t.Errorf("last action = %q, %v", label, err)
	}
}

type brokenCatalog struct {
	Catalog
}

func (b brokenCatalog) Effects(c Card) ([]Effect, error) {
	if c.ID == CardStrike {
		return nil, &UnsupportedError{Kind: "card", Name: "Strike"}
	}
	return b.Catalog.Effects(c)
}

func TestUnsupportedCardPoisonsSession(t *testing.T) {
	s, r, _ := newFight(t, []string{"Strike"}, nil, dummyEnemy("Dummy", 50, 5))
	s.catalog = brokenCatalog{DefaultCatalog()}

	apply(t, s, r, findAction(t, s, "Play Strike"))
	err := s.Apply(r, findAction(t, s, "Target Dummy"))

	var ue *UnsupportedError
	if !errors.As(err, &ue) || ue.Name != "Strike" {
		t.Fatalf("Apply = %v, want unsupported card", err)
	}
	if !s.IsTerminal() || s.Err() == nil {
		t.Error("session should be terminal after unsupported content")
	}
	err = s.Apply(r, 0)
	if !errors.Is(err, ErrTerminal) || !errors.As(err, &ue) {
		t.Errorf("later Apply = %v, want ErrTerminal wrapping the cause", err)
	}
}

func TestUnsupportedEnemyActionPoisonsSession(t *testing.T) {
	e := scriptedEnemy("Glitch", 50, EnemyAction{Kind: numEnemyActionKinds})
	s, r, _ := newFight(t, nil, repeat("Defend", 10), e)

	err := s.Apply(r, findAction(t, s, "End turn"))
	var ue *UnsupportedError
	if !errors.As(err, &ue) || ue.Kind != "enemy action" {
		t.Fatalf("Apply = %v, want unsupported enemy action", err)
	}
	if !s.IsTerminal() {
		t.Error("session should be terminal")
	}
}

func TestRewardLeadsToNextEncounter(t *testing.T) {
	s, r, logger := newFight(t, []string{"Strike"}, nil, dummyEnemy("Dummy", 6, 5))
	s.Encounters = [][]string{{"Dummy"}, {"Jaw Worm"}}
	play(t, s, r, "Strike", 0)

	reward := s.Choice.Rewards[0]
	apply(t, s, r, findAction(t, s, "Take "))

	if len(s.Player.Deck) != 1 || s.Player.Deck[0] != reward {
		t.Fatalf("master deck = %v", s.Player.Deck)
	}
	if s.Floor != 1 || s.Fight.Enemies[0] == nil || s.Fight.Enemies[0].Species != "Jaw Worm" {
		t.Fatalf("floor %d, enemies %+v", s.Floor, s.Fight.Enemies)
	}
	if s.Fight.Introduced != 1 || s.Fight.Turn != 1 {
		t.Errorf("new fight: introduced %d turn %d", s.Fight.Introduced, s.Fight.Turn)
	}
	if s.Choice.Kind != ChoicePlayCard {
		t.Errorf("choice = %s", s.Choice.Kind)
	}
	if got := logger.EventsOfType(log.EventReward); len(got) != 1 || got[0].Card == "" {
		t.Errorf("reward events = %+v", got)
	}
}

func TestSkippingLastRewardWinsRun(t *testing.T) {
	s, r, _ := newFight(t, []string{"Strike"}, nil, dummyEnemy("Dummy", 6, 5))
	play(t, s, r, "Strike", 0)
	apply(t, s, r, findAction(t, s, "Skip reward"))

	if s.Choice.Kind != ChoiceWin || !s.Won() || !s.IsTerminal() {
		t.Fatalf("choice = %s, want Win", s.Choice.Kind)
	}
	if len(s.Player.Deck) != 0 {
		t.Error("skipping should not add a card")
	}
}

func TestNewRunValidation(t *testing.T) {
	r := rng.New(1)
	cfg := DefaultRunConfig()
	cfg.Encounters = [][]string{{"Slime Boss"}}
	_, err := NewRun(r, cfg)
	var ue *UnsupportedError
	if !errors.As(err, &ue) || ue.Kind != "species" {
		t.Errorf("NewRun with unknown species = %v", err)
	}

	cfg = DefaultRunConfig()
	cfg.Deck = nil
	if _, err := NewRun(r, cfg); err == nil {
		t.Error("NewRun with an empty deck should fail")
	}
}

func TestNewRunStartsFirstFight(t *testing.T) {
	s, _ := newDefaultRun(t, 7)
	f := s.Fight
	if f.Turn != 1 || len(f.Hand) != DrawPerTurn || f.Deck.Len() != 5 {
		t.Errorf("turn %d hand %d deck %d", f.Turn, len(f.Hand), f.Deck.Len())
	}
	if e := f.Enemies[0]; e == nil || e.Species != "Cultist" {
		t.Fatalf("first enemy = %+v", e)
	}
	if s.Choice.Kind != ChoicePlayCard {
		t.Errorf("choice = %s", s.Choice.Kind)
	}
}
