package game

import "slices"

// Fight is the state of one encounter. It is rebuilt at the start of every
// fight from the run's master deck.
type Fight struct {
	Turn     int
	Hand     []Card
	Discard  []Card
	Exhaust  []Card
	Deck     Deck
	Energy   int
	Block    int
	Statuses Statuses
	Enemies  [MaxEnemies]*Enemy // nil slots are holes left by dead enemies
	Queue    Queue
	Active   *PlayCardContext

	HPLosses    int // times the player lost HP this fight
	CardsPlayed int
	Introduced  int // cards ever added to the fight's piles
	Vanished    int // Powers removed from play once resolved
	Over        bool

	enemyPhase bool
}

// Living returns the number of living enemies.
func (f *Fight) Living() int {
	n := 0
	for _, e := range f.Enemies {
		if e.Alive() {
			n++
		}
	}
	return n
}

// LivingSlots returns the slot indices of living enemies in slot order.
func (f *Fight) LivingSlots() []int {
	var slots []int
	for i, e := range f.Enemies {
		if e.Alive() {
			slots = append(slots, i)
		}
	}
	return slots
}

// Enemy returns the living enemy in slot, or nil.
func (f *Fight) Enemy(slot int) *Enemy {
	if slot < 0 || slot >= MaxEnemies || !f.Enemies[slot].Alive() {
		return nil
	}
	return f.Enemies[slot]
}

func (f *Fight) freeSlot(from int) int {
	for i := from; i < MaxEnemies; i++ {
		if f.Enemies[i] == nil {
			return i
		}
	}
	for i := 0; i < from && i < MaxEnemies; i++ {
		if f.Enemies[i] == nil {
			return i
		}
	}
	return -1
}

// removeHand removes and returns the card at index i of the hand.
func (f *Fight) removeHand(i int) Card {
	c := f.Hand[i]
	f.Hand = slices.Delete(f.Hand, i, i+1)
	return c
}

// addToHand puts c in hand, or in the discard pile when the hand is full.
func (f *Fight) addToHand(c Card) bool {
	if len(f.Hand) >= MaxHandSize {
		f.Discard = append(f.Discard, c)
		return false
	}
	f.Hand = append(f.Hand, c)
	return true
}

// discard moves a card to the discard pile, clearing any one-turn cost.
func (f *Fight) discard(c Card) {
	c.HasTempCost, c.TempCost = false, 0
	f.Discard = append(f.Discard, c)
}

// PileCount returns the number of cards in the draw, hand, discard and exhaust piles.
func (f *Fight) PileCount() int {
	return f.Deck.Len() + len(f.Hand) + len(f.Discard) + len(f.Exhaust)
}

func (f *Fight) clone() *Fight {
	if f == nil {
		return nil
	}
	c := *f
	c.Hand = slices.Clone(f.Hand)
	c.Discard = slices.Clone(f.Discard)
	c.Exhaust = slices.Clone(f.Exhaust)
	c.Deck = f.Deck.Clone()
	c.Queue = f.Queue.clone()
	for i, e := range f.Enemies {
		c.Enemies[i] = e.clone()
	}
	if f.Active != nil {
		a := *f.Active
		c.Active = &a
	}
	return &c
}
