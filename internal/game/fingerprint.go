package game

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint hashes a canonical encoding of the session. Equal states have
// equal fingerprints; the logger and the RNG are not part of the state.
func (s *State) Fingerprint() uint64 {
	return xxhash.Sum64(s.encode(make([]byte, 0, 1024)))
}

func (s *State) encode(b []byte) []byte {
	b = appendInt(b, int(s.Choice.Kind))
	b = appendInt(b, s.Choice.HandIndex)
	if sel := s.Choice.Select; sel != nil {
		b = appendInt(b, int(sel.Kind))
		b = appendInt(b, sel.Count)
		b = appendInts(b, sel.Options)
		b = encodeContext(b, &sel.Context)
	}
	b = encodeCards(b, s.Choice.Rewards)

	b = appendInt(b, s.Player.HP)
	b = appendInt(b, s.Player.MaxHP)
	b = appendInt(b, s.Player.BaseEnergy)
	b = encodeCards(b, s.Player.Deck)
	b = appendInt(b, s.Floor)
	if s.err != nil {
		b = append(b, s.err.Error()...)
	}

	f := s.Fight
	if f == nil {
		return append(b, 0)
	}
	b = append(b, 1)
	b = appendInts(b, []int{f.Turn, f.Energy, f.Block, f.HPLosses, f.CardsPlayed, f.Introduced, f.Vanished})
	b = appendInts(b, f.Statuses[:])
	b = encodeCards(b, f.Hand)
	b = encodeCards(b, f.Discard)
	b = encodeCards(b, f.Exhaust)
	b = f.Deck.encode(b)
	for _, e := range f.Enemies {
		if e == nil {
			b = append(b, 0)
			continue
		}
		b = append(b, 1)
		b = appendInt(b, len(e.Species))
		b = append(b, e.Species...)
		b = appendInts(b, []int{e.HP, e.MaxHP, e.Block, int(e.AIState), e.Bite})
		b = appendInts(b, e.Statuses[:])
		b = appendBools(b, e.Fresh)
	}
	b = appendInt(b, f.Queue.Len())
	for _, it := range f.Queue.items {
		b = appendInts(b, []int{int(it.Kind), it.Target, it.Amount})
		b = encodeCards(b, []Card{it.Card})
		b = appendBools(b, it.Exhausts, it.Purge)
	}
	if f.Active != nil {
		b = encodeContext(b, f.Active)
	}
	if f.Over {
		b = append(b, 1)
	}
	return b
}

func encodeContext(b []byte, ctx *PlayCardContext) []byte {
	b = encodeCards(b, []Card{ctx.Card})
	b = appendInts(b, []int{ctx.Target, ctx.Cursor, ctx.X})
	return appendBools(b, ctx.Exhausts, ctx.Free, ctx.Purge)
}

func encodeCards(b []byte, cards []Card) []byte {
	b = appendInt(b, len(cards))
	for _, c := range cards {
		b = appendInts(b, []int{int(c.ID), c.Upgrades, c.Bonus, c.TempCost})
		b = appendBools(b, c.HasTempCost)
	}
	return b
}

func appendInt(b []byte, v int) []byte {
	return binary.AppendVarint(b, int64(v))
}

func appendInts(b []byte, vs []int) []byte {
	b = appendInt(b, len(vs))
	for _, v := range vs {
		b = appendInt(b, v)
	}
	return b
}

func appendBools(b []byte, vs ...bool) []byte {
	for _, v := range vs {
		if v {
			b = append(b, 1)
		} else {
			b = append(b, 0)
		}
	}
	return b
}
