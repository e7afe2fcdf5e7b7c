package game

import (
	"fmt"
	"strings"
)

// --- Enums ---

type CardType int

const (
	CardTypeAttack CardType = iota
	CardTypeSkill
	CardTypePower
	CardTypeStatus
	CardTypeCurse
)

func (ct CardType) String() string {
	switch ct {
	case CardTypeAttack:
		return "Attack"
	case CardTypeSkill:
		return "Skill"
	case CardTypePower:
		return "Power"
	case CardTypeStatus:
		return "Status"
	case CardTypeCurse:
		return "Curse"
	default:
		return "Unknown"
	}
}

type Rarity int

const (
	RarityStarter Rarity = iota
	RarityCommon
	RarityUncommon
	RarityRare
	RaritySpecial // statuses, curses and generated cards; never offered as rewards
)

func (r Rarity) String() string {
	switch r {
	case RarityStarter:
		return "Starter"
	case RarityCommon:
		return "Common"
	case RarityUncommon:
		return "Uncommon"
	case RarityRare:
		return "Rare"
	default:
		return "Special"
	}
}

// CostKind describes how a card's energy cost is determined.
type CostKind int

const (
	CostFixed      CostKind = iota
	CostUnplayable          // cannot be played from hand
	CostX                   // spends all remaining energy, bound as X
	CostHPLoss              // fixed cost reduced by 1 per HP-loss event this fight
)

// Cost is a resolved card cost.
type Cost struct {
	Kind   CostKind
	Amount int
}

func (c Cost) String() string {
	switch c.Kind {
	case CostUnplayable:
		return "-"
	case CostX:
		return "X"
	default:
		return fmt.Sprintf("%d", c.Amount)
	}
}

// --- Statuses (buffs and debuffs) ---

// Status identifies a buff or debuff stack on the player or an enemy.
type Status int

const (
	StatusStrength Status = iota
	StatusDexterity
	StatusVulnerable
	StatusWeak
	StatusFrail
	StatusThorns
	StatusMetallicize
	StatusRitual
	StatusFeelNoPain
	StatusDarkEmbrace
	StatusFireBreathing
	StatusDoubleTap
	StatusRage
	StatusBarricade
	StatusDemonForm
	StatusEntangled
	StatusLoseStrength
	StatusCurlUp
	StatusEnrage
	StatusSporeCloud
	numStatuses
)

var statusNames = [numStatuses]string{
	StatusStrength:      "strength",
	StatusDexterity:     "dexterity",
	StatusVulnerable:    "vulnerable",
	StatusWeak:          "weak",
	StatusFrail:         "frail",
	StatusThorns:        "thorns",
	StatusMetallicize:   "metallicize",
	StatusRitual:        "ritual",
	StatusFeelNoPain:    "feel_no_pain",
	StatusDarkEmbrace:   "dark_embrace",
	StatusFireBreathing: "fire_breathing",
	StatusDoubleTap:     "double_tap",
	StatusRage:          "rage",
	StatusBarricade:     "barricade",
	StatusDemonForm:     "demon_form",
	StatusEntangled:     "entangled",
	StatusLoseStrength:  "lose_strength",
	StatusCurlUp:        "curl_up",
	StatusEnrage:        "enrage",
	StatusSporeCloud:    "spore_cloud",
}

func (s Status) String() string {
	if s < 0 || s >= numStatuses {
		return "unknown"
	}
	return statusNames[s]
}

// ParseStatus maps a snake_case status name to its Status.
func ParseStatus(name string) (Status, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range statusNames {
		if n == name {
			return Status(i), true
		}
	}
	return 0, false
}

// UnmarshalText lets species tables name statuses in YAML.
func (s *Status) UnmarshalText(text []byte) error {
	st, ok := ParseStatus(string(text))
	if !ok {
		return fmt.Errorf("unknown status %q", text)
	}
	*s = st
	return nil
}

// turnScoped reports whether a status ticks down by one every round.
func (s Status) turnScoped() bool {
	return s == StatusVulnerable || s == StatusWeak || s == StatusFrail
}

// Statuses holds one stack count per Status. Strength and Dexterity may be negative.
type Statuses [numStatuses]int

func (st *Statuses) Get(s Status) int { return st[s] }

// Add changes a stack count and returns the new value.
func (st *Statuses) Add(s Status, amount int) int {
	st[s] += amount
	return st[s]
}

// windDown decrements every turn-scoped status by exactly one.
func (st *Statuses) windDown() {
	for s := Status(0); s < numStatuses; s++ {
		if s.turnScoped() && st[s] > 0 {
			st[s]--
		}
	}
}

// Active returns the non-zero statuses in declaration order, for display.
func (st *Statuses) Active() []StatusStack {
	var out []StatusStack
	for s := Status(0); s < numStatuses; s++ {
		if st[s] != 0 {
			out = append(out, StatusStack{Status: s, Amount: st[s]})
		}
	}
	return out
}

// StatusStack pairs a status with its current amount.
type StatusStack struct {
	Status Status
	Amount int
}

// --- Constants ---

const (
	MaxHandSize  = 10
	MaxEnemies   = 5
	BaseEnergy   = 3
	DrawPerTurn  = 5
	RewardChoice = 3
)
