package game

import (
	"fmt"
	"strings"
)

// Catalog is the static card content the engine consults. It is read-only
// and shared between cloned states.
type Catalog interface {
	Name(c Card) string
	Type(c Card) CardType
	Cost(c Card) Cost
	// Effects returns the ordered effect list for the card's current upgrade level.
	Effects(c Card) ([]Effect, error)
	RequiresTarget(c Card) bool
	CanUpgrade(c Card) bool
	Ethereal(c Card) bool
	// EndTurnDamage is the damage the card deals to the player when it is
	// still in hand at the end of the turn.
	EndTurnDamage(c Card) int
	// Playable reports card-specific play restrictions beyond cost.
	Playable(c Card, f *Fight) bool
	Lookup(name string) (CardID, bool)
	// RewardPool lists the cards that may be offered after a won fight.
	RewardPool() []CardID
}

// cardDef is one entry of the default card library.
type cardDef struct {
	name      string
	typ       CardType
	rarity    Rarity
	cost      [2]Cost // unupgraded, upgraded
	target    bool
	ethereal  bool
	unlimited bool   // may be upgraded any number of times
	burn      [2]int // end-of-turn damage while held
	clash     bool   // only playable when every card in hand is an Attack
	effects   func(upgrades int) []Effect
}

// CardLibrary is the built-in Catalog.
type CardLibrary struct {
	defs   []cardDef
	byName map[string]CardID
	pool   []CardID
}

// newCardLibrary builds a catalog from defs indexed by CardID.
func newCardLibrary(defs []cardDef) *CardLibrary {
	lib := &CardLibrary{defs: defs, byName: make(map[string]CardID, len(defs))}
	for i, d := range defs {
		id := CardID(i)
		lib.byName[strings.ToLower(d.name)] = id
		switch d.rarity {
		case RarityCommon, RarityUncommon, RarityRare:
			lib.pool = append(lib.pool, id)
		}
	}
	return lib
}

func (l *CardLibrary) def(c Card) *cardDef {
	if int(c.ID) >= len(l.defs) {
		return nil
	}
	return &l.defs[c.ID]
}

func level(c Card) int {
	if c.Upgrades > 0 {
		return 1
	}
	return 0
}

func (l *CardLibrary) Name(c Card) string {
	d := l.def(c)
	if d == nil {
		return fmt.Sprintf("card#%d", c.ID)
	}
	switch {
	case c.Upgrades == 0:
		return d.name
	case d.unlimited:
		return fmt.Sprintf("%s+%d", d.name, c.Upgrades)
	default:
		return d.name + "+"
	}
}

func (l *CardLibrary) Type(c Card) CardType {
	if d := l.def(c); d != nil {
		return d.typ
	}
	return CardTypeStatus
}

func (l *CardLibrary) Rarity(c Card) Rarity {
	if d := l.def(c); d != nil {
		return d.rarity
	}
	return RaritySpecial
}

func (l *CardLibrary) Cost(c Card) Cost {
	d := l.def(c)
	if d == nil {
		return Cost{Kind: CostUnplayable}
	}
	return d.cost[level(c)]
}

func (l *CardLibrary) Effects(c Card) ([]Effect, error) {
	d := l.def(c)
	if d == nil || d.effects == nil {
		return nil, unsupported("card", l.Name(c))
	}
	return d.effects(c.Upgrades), nil
}

func (l *CardLibrary) RequiresTarget(c Card) bool {
	d := l.def(c)
	return d != nil && d.target
}

func (l *CardLibrary) CanUpgrade(c Card) bool {
	d := l.def(c)
	if d == nil || d.typ == CardTypeCurse {
		return false
	}
	if d.typ == CardTypeStatus && d.burn[0] == 0 {
		return false
	}
	return d.unlimited || c.Upgrades == 0
}

func (l *CardLibrary) Ethereal(c Card) bool {
	d := l.def(c)
	return d != nil && d.ethereal
}

func (l *CardLibrary) EndTurnDamage(c Card) int {
	if d := l.def(c); d != nil {
		return d.burn[level(c)]
	}
	return 0
}

func (l *CardLibrary) Playable(c Card, f *Fight) bool {
	d := l.def(c)
	if d == nil {
		return false
	}
	if d.clash {
		for _, h := range f.Hand {
			if l.Type(h) != CardTypeAttack {
				return false
			}
		}
	}
	return true
}

func (l *CardLibrary) Lookup(name string) (CardID, bool) {
	id, ok := l.byName[strings.ToLower(strings.TrimSpace(name))]
	return id, ok
}

func (l *CardLibrary) RewardPool() []CardID {
	return append([]CardID(nil), l.pool...)
}

// Names lists every card name in CardID order.
func (l *CardLibrary) Names() []string {
	names := make([]string, len(l.defs))
	for i, d := range l.defs {
		names[i] = d.name
	}
	return names
}

// CardInfo is a display summary of one card.
type CardInfo struct {
	ID     CardID `json:"id"`
	Name   string `json:"name"`
	Type   string `json:"type"`
	Rarity string `json:"rarity"`
	Cost   string `json:"cost"`
	Target bool   `json:"target"`
}

// Infos summarizes every card in the library, unupgraded.
func (l *CardLibrary) Infos() []CardInfo {
	out := make([]CardInfo, len(l.defs))
	for i := range l.defs {
		c := NewCard(CardID(i))
		out[i] = CardInfo{
			ID:     c.ID,
			Name:   l.Name(c),
			Type:   l.Type(c).String(),
			Rarity: l.Rarity(c).String(),
			Cost:   l.Cost(c).String(),
			Target: l.RequiresTarget(c),
		}
	}
	return out
}
