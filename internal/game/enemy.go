package game

import (
	"fmt"
	"strings"

	"github.com/peterkuimelis/deckcrawl/internal/rng"
)

// EnemyActionKind identifies an atomic enemy action.
type EnemyActionKind int

const (
	ActAttack          EnemyActionKind = iota // Amount damage, Hits times
	ActBite                                   // attack for the enemy's rolled bite amount
	ActBlock                                  // gain Amount block
	ActBuff                                   // add Amount of Status to self
	ActDebuff                                 // add Amount of Status to the player
	ActAddToDiscard                           // put Count copies of Card in the player's discard pile
	ActShuffleIntoDraw                        // shuffle Count copies of Card into the player's draw pile
	ActSplit                                  // replace self with two copies of the split species
	numEnemyActionKinds
)

var enemyActionNames = [numEnemyActionKinds]string{
	"attack", "bite", "block", "buff", "debuff", "add_to_discard", "shuffle_into_draw", "split",
}

func (k EnemyActionKind) String() string {
	if k < 0 || k >= numEnemyActionKinds {
		return fmt.Sprintf("EnemyActionKind(%d)", int(k))
	}
	return enemyActionNames[k]
}

// UnmarshalText parses the snake_case action names used in species tables.
func (k *EnemyActionKind) UnmarshalText(text []byte) error {
	name := strings.ToLower(string(text))
	for i, n := range enemyActionNames {
		if n == name {
			*k = EnemyActionKind(i)
			return nil
		}
	}
	return unsupported("enemy action", string(text))
}

// EnemyAction is one atomic step of an enemy's turn.
type EnemyAction struct {
	Kind   EnemyActionKind `yaml:"kind"`
	Amount int             `yaml:"amount"`
	Hits   int             `yaml:"hits"`
	Status Status          `yaml:"status"`
	Card   string          `yaml:"card"`
	Count  int             `yaml:"count"`
}

func (a EnemyAction) hits() int {
	if a.Hits < 1 {
		return 1
	}
	return a.Hits
}

// Describe renders the action as an intent label.
func (a EnemyAction) Describe(e *Enemy) string {
	switch a.Kind {
	case ActAttack:
		if a.hits() > 1 {
			return fmt.Sprintf("Attack %dx%d", a.Amount, a.hits())
		}
		return fmt.Sprintf("Attack %d", a.Amount)
	case ActBite:
		return fmt.Sprintf("Attack %d", e.Bite)
	case ActBlock:
		return fmt.Sprintf("Block %d", a.Amount)
	case ActBuff:
		return fmt.Sprintf("Buff %s %d", a.Status, a.Amount)
	case ActDebuff:
		return fmt.Sprintf("Debuff %s %d", a.Status, a.Amount)
	case ActAddToDiscard, ActShuffleIntoDraw:
		return fmt.Sprintf("Add %dx %s", max(a.Count, 1), a.Card)
	case ActSplit:
		return "Split"
	default:
		return a.Kind.String()
	}
}

// FightView is the read-only snapshot of the fight handed to enemy deciders.
type FightView struct {
	Turn        int
	PlayerHP    int
	PlayerMaxHP int
	PlayerBlock int
	Living      int
}

// Decider is a species' decision function. Given the enemy's current AI
// state it returns the successor state and the actions to perform now. It
// must not mutate anything; the orchestrator applies the returned actions.
type Decider func(r *rng.RNG, view FightView, self Enemy, state uint32) (uint32, []EnemyAction)

// Enemy is one occupied enemy slot.
type Enemy struct {
	Species  string
	HP       int
	MaxHP    int
	Block    int
	Statuses Statuses
	AIState  uint32
	Bite     int // rolled bite damage for species that bite
	Decide   Decider
	Fresh    bool // spawned this enemy phase; acts from next phase on

	species *Species
}

// Name returns the display name of the enemy.
func (e *Enemy) Name() string { return e.Species }

// Alive reports whether the enemy still has HP.
func (e *Enemy) Alive() bool { return e != nil && e.HP > 0 }

// Intent describes the actions the enemy will take from its current state.
func (e *Enemy) Intent() []EnemyAction {
	if e.species == nil {
		return nil
	}
	return e.species.intent(e)
}

// IntentString joins the intent labels for display.
func (e *Enemy) IntentString() string {
	acts := e.Intent()
	parts := make([]string, len(acts))
	for i, a := range acts {
		parts[i] = a.Describe(e)
	}
	return strings.Join(parts, ", ")
}

func (e *Enemy) clone() *Enemy {
	if e == nil {
		return nil
	}
	c := *e
	return &c
}

// statusIfAlive returns a status amount of a living enemy, or 0 for holes
// and dead enemies.
func (e *Enemy) statusIfAlive(st Status) int {
	if !e.Alive() {
		return 0
	}
	return e.Statuses[st]
}
