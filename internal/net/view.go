package net

import (
	"github.com/peterkuimelis/deckcrawl/internal/game"
	"github.com/peterkuimelis/deckcrawl/internal/log"
)

// BuildStateView snapshots the visible parts of s.
func BuildStateView(s *game.State) *StateView {
	cat := s.Catalog()
	sv := &StateView{
		Choice:     s.Choice.Kind.String(),
		Floor:      s.Floor,
		Encounters: len(s.Encounters),
		Player: PlayerView{
			HP:       s.Player.HP,
			MaxHP:    s.Player.MaxHP,
			DeckSize: len(s.Player.Deck),
		},
	}
	if err := s.Err(); err != nil {
		sv.Error = err.Error()
	}
	if sel := s.Choice.Select; s.Choice.Kind == game.ChoiceSelectCard && sel != nil {
		sv.Prompt = sel.Kind.String()
	}
	for _, c := range s.Choice.Rewards {
		sv.Rewards = append(sv.Rewards, cat.Name(c))
	}

	f := s.Fight
	if f == nil {
		return sv
	}
	sv.Turn = f.Turn
	sv.Player.Block = f.Block
	sv.Player.Energy = f.Energy
	sv.Player.Statuses = statusMap(&f.Statuses)
	sv.Player.DrawCount = f.Deck.Len()
	sv.Player.DiscardCount = len(f.Discard)
	sv.Player.ExhaustCount = len(f.Exhaust)
	for _, c := range f.Hand {
		sv.Player.Hand = append(sv.Player.Hand, cat.Name(c))
	}
	for slot, e := range f.Enemies {
		if !e.Alive() {
			continue
		}
		sv.Enemies = append(sv.Enemies, EnemyView{
			Slot:     slot,
			Name:     e.Name(),
			HP:       e.HP,
			MaxHP:    e.MaxHP,
			Block:    e.Block,
			Statuses: statusMap(&e.Statuses),
			Intent:   e.IntentString(),
		})
	}
	return sv
}

func statusMap(st *game.Statuses) map[string]int {
	active := st.Active()
	if len(active) == 0 {
		return nil
	}
	m := make(map[string]int, len(active))
	for _, a := range active {
		m[a.Status.String()] = a.Amount
	}
	return m
}

// BuildActionViews lists the legal actions of s with their labels.
func BuildActionViews(s *game.State) []ActionView {
	acts := s.Actions()
	views := make([]ActionView, len(acts))
	for i, a := range acts {
		views[i] = ActionView{Index: i, Desc: s.Describe(a)}
	}
	return views
}

// NewEventView converts a logged event for the wire.
func NewEventView(e log.GameEvent) EventView {
	return EventView{
		Seq:     e.Seq,
		Turn:    e.Turn,
		Phase:   e.Phase,
		Actor:   e.Actor,
		Type:    e.Type.String(),
		Card:    e.Card,
		Amount:  e.Amount,
		Details: e.Details,
	}
}

// ResultText summarizes a finished session.
func ResultText(s *game.State) string {
	switch {
	case s.Err() != nil:
		return "Run aborted: " + s.Err().Error()
	case s.Won():
		return "Victory! All encounters cleared."
	case s.Choice.Kind == game.ChoiceLoss:
		return "Defeat."
	default:
		return "Run abandoned."
	}
}
