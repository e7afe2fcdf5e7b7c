package game

import (
	"slices"

	"github.com/peterkuimelis/deckcrawl/internal/rng"
)

// Segment is one node of a draw pile. Every node is wholly owned by its
// parent, so cloning a deck is a structural copy.
type Segment interface {
	// Len is the number of cards reachable beneath this node.
	Len() int
	draw(r *rng.RNG) Card
	count(pred func(Card) bool) int
	clone() Segment
	appendCards(dst []Card) []Card
	encode(b []byte) []byte
}

// --- Shuffled ---

// Shuffled is an order-agnostic multiset. Cards are kept in canonical order;
// draws remove a uniformly random card.
type Shuffled struct {
	cards []Card
}

// NewShuffled builds a canonically sorted Shuffled segment holding a copy of cards.
func NewShuffled(cards []Card) *Shuffled {
	cs := slices.Clone(cards)
	slices.SortFunc(cs, compareCards)
	return &Shuffled{cards: cs}
}

func (s *Shuffled) Len() int { return len(s.cards) }

func (s *Shuffled) draw(r *rng.RNG) Card {
	i := r.IntN(len(s.cards))
	c := s.cards[i]
	s.cards = slices.Delete(s.cards, i, i+1)
	return c
}

func (s *Shuffled) count(pred func(Card) bool) int {
	n := 0
	for _, c := range s.cards {
		if pred(c) {
			n++
		}
	}
	return n
}

func (s *Shuffled) clone() Segment { return &Shuffled{cards: slices.Clone(s.cards)} }

func (s *Shuffled) appendCards(dst []Card) []Card { return append(dst, s.cards...) }

func (s *Shuffled) encode(b []byte) []byte {
	b = append(b, 'S')
	return encodeCards(b, s.cards)
}

// --- Known ---

// Known is a strictly ordered run of cards. The last element is the top.
type Known struct {
	cards []Card
}

// NewKnown builds a Known segment where cards[0] is drawn first.
func NewKnown(cards []Card) *Known {
	cs := slices.Clone(cards)
	slices.Reverse(cs)
	return &Known{cards: cs}
}

func (k *Known) Len() int { return len(k.cards) }

func (k *Known) draw(*rng.RNG) Card {
	last := len(k.cards) - 1
	c := k.cards[last]
	k.cards = k.cards[:last]
	return c
}

func (k *Known) count(pred func(Card) bool) int {
	n := 0
	for _, c := range k.cards {
		if pred(c) {
			n++
		}
	}
	return n
}

func (k *Known) clone() Segment { return &Known{cards: slices.Clone(k.cards)} }

func (k *Known) appendCards(dst []Card) []Card { return append(dst, k.cards...) }

func (k *Known) encode(b []byte) []byte {
	b = append(b, 'K')
	return encodeCards(b, k.cards)
}

// --- Composite ---

// Composite is an ordered list of sub-decks. Draws come from the last
// non-empty part; empty parts at the tail are pruned when encountered.
type Composite struct {
	parts []Segment
	n     int
}

func (c *Composite) Len() int { return c.n }

func (c *Composite) draw(r *rng.RNG) Card {
	for len(c.parts) > 0 {
		last := c.parts[len(c.parts)-1]
		if last.Len() == 0 {
			c.parts = c.parts[:len(c.parts)-1]
			continue
		}
		c.n--
		return last.draw(r)
	}
	violate("composite segment count %d with no cards", c.n)
	return Card{}
}

func (c *Composite) count(pred func(Card) bool) int {
	n := 0
	for _, p := range c.parts {
		n += p.count(pred)
	}
	return n
}

func (c *Composite) clone() Segment {
	parts := make([]Segment, len(c.parts))
	for i, p := range c.parts {
		parts[i] = p.clone()
	}
	return &Composite{parts: parts, n: c.n}
}

func (c *Composite) appendCards(dst []Card) []Card {
	for _, p := range c.parts {
		dst = p.appendCards(dst)
	}
	return dst
}

func (c *Composite) encode(b []byte) []byte {
	b = append(b, 'C')
	b = appendInt(b, len(c.parts))
	for _, p := range c.parts {
		b = p.encode(b)
	}
	return b
}

// --- ShuffleInto ---

// ShuffleInto interleaves cards shuffled into an existing pile. Each draw
// takes from the primary side with probability primary/(primary+inserted).
type ShuffleInto struct {
	primary  Segment
	inserted Segment
	n        int
}

func (s *ShuffleInto) Len() int { return s.n }

func (s *ShuffleInto) draw(r *rng.RNG) Card {
	p, i := s.primary.Len(), s.inserted.Len()
	if p+i == 0 {
		violate("shuffle-into segment count %d with no cards", s.n)
	}
	s.n--
	if r.IntN(p+i) < p {
		return s.primary.draw(r)
	}
	return s.inserted.draw(r)
}

func (s *ShuffleInto) count(pred func(Card) bool) int {
	return s.primary.count(pred) + s.inserted.count(pred)
}

func (s *ShuffleInto) clone() Segment {
	return &ShuffleInto{primary: s.primary.clone(), inserted: s.inserted.clone(), n: s.n}
}

func (s *ShuffleInto) appendCards(dst []Card) []Card {
	return s.inserted.appendCards(s.primary.appendCards(dst))
}

func (s *ShuffleInto) encode(b []byte) []byte {
	b = append(b, 'I')
	b = s.primary.encode(b)
	return s.inserted.encode(b)
}

// --- Deck ---

// Deck is a draw pile. The zero value is an empty deck.
type Deck struct {
	root Segment
}

// NewDeck returns a deck holding cards in no particular order.
func NewDeck(cards []Card) Deck {
	if len(cards) == 0 {
		return Deck{}
	}
	return Deck{root: NewShuffled(cards)}
}

// Len returns the number of cards in the deck.
func (d *Deck) Len() int {
	if d.root == nil {
		return 0
	}
	return d.root.Len()
}

// Draw removes and returns one card. Callers must reshuffle the discard pile
// into an empty deck before drawing; drawing from an empty deck panics.
func (d *Deck) Draw(r *rng.RNG) Card {
	if d.Len() == 0 {
		violate("draw from empty deck")
	}
	c := d.root.draw(r)
	if d.root.Len() == 0 {
		d.root = nil
	}
	return c
}

// PutOnTop places cards on top of the deck so that cards[0] is drawn first.
// The remainder keeps its structure.
func (d *Deck) PutOnTop(cards ...Card) {
	if len(cards) == 0 {
		return
	}
	top := NewKnown(cards)
	switch root := d.root.(type) {
	case nil:
		d.root = top
	case *Composite:
		root.parts = append(root.parts, top)
		root.n += top.Len()
	default:
		d.root = &Composite{parts: []Segment{root, top}, n: root.Len() + top.Len()}
	}
}

// ShuffleIn inserts cards at random positions without reordering the cards
// already in the deck.
func (d *Deck) ShuffleIn(cards ...Card) {
	if len(cards) == 0 {
		return
	}
	in := NewShuffled(cards)
	if d.root == nil {
		d.root = in
		return
	}
	if sh, ok := d.root.(*Shuffled); ok {
		merged := append(sh.appendCards(nil), cards...)
		d.root = NewShuffled(merged)
		return
	}
	d.root = &ShuffleInto{primary: d.root, inserted: in, n: d.root.Len() + in.Len()}
}

// Count returns how many cards satisfy pred without touching the deck.
func (d *Deck) Count(pred func(Card) bool) int {
	if d.root == nil {
		return 0
	}
	return d.root.count(pred)
}

// Cards lists the deck's contents in canonical order. The listing says
// nothing about draw order.
func (d *Deck) Cards() []Card {
	if d.root == nil {
		return nil
	}
	cs := d.root.appendCards(nil)
	slices.SortFunc(cs, compareCards)
	return cs
}

// Clone returns an independent copy of the deck.
func (d *Deck) Clone() Deck {
	if d.root == nil {
		return Deck{}
	}
	return Deck{root: d.root.clone()}
}

func (d *Deck) encode(b []byte) []byte {
	if d.root == nil {
		return append(b, 'E')
	}
	return d.root.encode(b)
}
