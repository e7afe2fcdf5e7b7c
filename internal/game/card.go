package game

import "cmp"

// CardID identifies a card's effect set in the catalog.
type CardID uint16

// Card is a single card instance. Cards are small values that are copied
// between piles; no two piles ever share a Card.
type Card struct {
	ID       CardID
	Upgrades int // number of upgrades; only unlimited-upgrade cards exceed 1
	Bonus    int // per-instance stored value, e.g. Rampage's accumulated damage

	// One-turn cost override, cleared when the card leaves the hand at end of turn.
	TempCost    int
	HasTempCost bool
}

// NewCard returns an unupgraded instance of id.
func NewCard(id CardID) Card {
	return Card{ID: id}
}

// Upgraded reports whether the card has been upgraded at least once.
func (c Card) Upgraded() bool {
	return c.Upgrades > 0
}

// Upgrade returns the upgraded form of c.
func (c Card) Upgrade() Card {
	c.Upgrades++
	return c
}

// compareCards orders cards canonically. Shuffled segments keep their cards
// in this order so equal multisets compare and hash identically.
func compareCards(a, b Card) int {
	if c := cmp.Compare(a.ID, b.ID); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Upgrades, b.Upgrades); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Bonus, b.Bonus); c != 0 {
		return c
	}
	if a.HasTempCost != b.HasTempCost {
		if a.HasTempCost {
			return 1
		}
		return -1
	}
	return cmp.Compare(a.TempCost, b.TempCost)
}
