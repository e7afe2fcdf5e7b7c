package game

import (
	"fmt"
	"testing"

	"github.com/peterkuimelis/deckcrawl/internal/log"
	"github.com/peterkuimelis/deckcrawl/internal/rng"
)

// cards builds card instances from default library names.
func cards(names ...string) []Card {
	out := make([]Card, len(names))
	for i, n := range names {
		out[i] = LookupCard(n)
	}
	return out
}

func repeat(name string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = name
	}
	return out
}

// dummyEnemy is an enemy that attacks for attack damage every turn.
func dummyEnemy(name string, hp, attack int) *Enemy {
	return scriptedEnemy(name, hp, EnemyAction{Kind: ActAttack, Amount: attack})
}

// scriptedEnemy is an enemy that performs the same actions every turn.
func scriptedEnemy(name string, hp int, actions ...EnemyAction) *Enemy {
	return &Enemy{
		Species: name,
		HP:      hp,
		MaxHP:   hp,
		Decide: func(_ *rng.RNG, _ FightView, _ Enemy, state uint32) (uint32, []EnemyAction) {
			return state, actions
		},
	}
}

// newFight builds a session in the middle of turn 1 with a fixed hand, a
// draw pile and the given enemies. Nothing is drawn.
func newFight(t *testing.T, hand, deck []string, enemies ...*Enemy) (*State, *rng.RNG, *log.MemoryLogger) {
	t.Helper()
	s := NewState(nil, nil, Player{HP: 80, MaxHP: 80})
	logger := log.NewMemoryLogger()
	s.Logger = logger
	f := &Fight{
		Turn:   1,
		Energy: BaseEnergy,
		Hand:   cards(hand...),
		Deck:   NewDeck(cards(deck...)),
	}
	f.Introduced = len(f.Hand) + f.Deck.Len()
	copy(f.Enemies[:], enemies)
	s.Fight = f
	s.Choice = Choice{Kind: ChoicePlayCard}
	return s, rng.New(1), logger
}

// findAction returns the index of the first action whose label starts with prefix.
func findAction(t *testing.T, s *State, prefix string) int {
	t.Helper()
	var labels []string
	for i, a := range s.Actions() {
		label := s.Describe(a)
		if len(label) >= len(prefix) && label[:len(prefix)] == prefix {
			return i
		}
		labels = append(labels, label)
	}
	t.Fatalf("no action starting with %q in %v", prefix, labels)
	return -1
}

func apply(t *testing.T, s *State, r *rng.RNG, i int) {
	t.Helper()
	if err := s.Apply(r, i); err != nil {
		t.Fatalf("apply %d: %v", i, err)
	}
	checkConservation(t, s)
}

// play plays the named hand card, choosing the enemy in slot target when
// the card asks for one.
func play(t *testing.T, s *State, r *rng.RNG, name string, target int) {
	t.Helper()
	apply(t, s, r, findAction(t, s, "Play "+name+" ("))
	if s.Choice.Kind == ChoiceChooseEnemy {
		apply(t, s, r, findAction(t, s, fmt.Sprintf("Target %s [%d]", s.Fight.Enemies[target].Name(), target)))
	}
}

func choose(t *testing.T, s *State, r *rng.RNG, cardName string) {
	t.Helper()
	if s.Choice.Kind != ChoiceSelectCard {
		t.Fatalf("expected SelectCard choice, got %s", s.Choice.Kind)
	}
	apply(t, s, r, findAction(t, s, s.Choice.Select.Kind.String()+": "+cardName))
}

func endTurn(t *testing.T, s *State, r *rng.RNG) {
	t.Helper()
	apply(t, s, r, findAction(t, s, "End turn"))
}

func checkConservation(t *testing.T, s *State) {
	t.Helper()
	if s.Fight == nil {
		return
	}
	if got, want := s.CardsInPlay(), s.Introduced(); got != want {
		t.Fatalf("card conservation: %d cards in play, %d introduced", got, want)
	}
}

func pileNames(s *State, pile []Card) []string {
	out := make([]string, len(pile))
	for i, c := range pile {
		out[i] = s.cardName(c)
	}
	return out
}

func countNamed(s *State, pile []Card, name string) int {
	n := 0
	for _, c := range pile {
		if s.cardName(c) == name {
			n++
		}
	}
	return n
}
