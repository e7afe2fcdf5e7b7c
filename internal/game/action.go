package game

import (
	"fmt"

	"github.com/peterkuimelis/deckcrawl/internal/rng"
)

// Actions returns the legal actions of the current choice, in a stable order.
// Terminal states have none.
func (s *State) Actions() []Action {
	if s.IsTerminal() {
		return nil
	}
	f := s.Fight
	var acts []Action
	switch s.Choice.Kind {
	case ChoicePlayCard:
		for i, c := range f.Hand {
			if s.canPlay(c) {
				acts = append(acts, Action{Kind: ActionPlay, Index: i})
			}
		}
		acts = append(acts, Action{Kind: ActionEndTurn})
	case ChoiceChooseEnemy:
		for _, slot := range f.LivingSlots() {
			acts = append(acts, Action{Kind: ActionTarget, Index: slot})
		}
	case ChoiceSelectCard:
		for _, i := range s.Choice.Select.Options {
			acts = append(acts, Action{Kind: ActionSelect, Index: i})
		}
	case ChoiceReward:
		for i := range s.Choice.Rewards {
			acts = append(acts, Action{Kind: ActionTake, Index: i})
		}
		acts = append(acts, Action{Kind: ActionSkip})
	}
	return acts
}

// LegalActionCount returns the number of legal actions.
func (s *State) LegalActionCount() int {
	return len(s.Actions())
}

// DescribeAction returns a human-readable label for action i.
func (s *State) DescribeAction(i int) (string, error) {
	acts := s.Actions()
	if i < 0 || i >= len(acts) {
		return "", fmt.Errorf("describe action %d of %d: %w", i, len(acts), ErrActionOutOfRange)
	}
	return s.Describe(acts[i]), nil
}

// Describe labels an action of the current choice.
func (s *State) Describe(a Action) string {
	f := s.Fight
	switch a.Kind {
	case ActionPlay:
		c := f.Hand[a.Index]
		return fmt.Sprintf("Play %s (%d energy)", s.cardName(c), s.energyCost(c))
	case ActionEndTurn:
		return "End turn"
	case ActionTarget:
		e := f.Enemies[a.Index]
		c := f.Hand[s.Choice.HandIndex]
		return fmt.Sprintf("Target %s [%d] with %s (%d/%d HP)", e.Name(), a.Index, s.cardName(c), e.HP, e.MaxHP)
	case ActionSelect:
		sel := s.Choice.Select
		c := s.selectionPile(sel.Kind)[a.Index]
		return fmt.Sprintf("%s: %s", sel.Kind, s.cardName(c))
	case ActionTake:
		return "Take " + s.cardName(s.Choice.Rewards[a.Index])
	case ActionSkip:
		return "Skip reward"
	default:
		return a.Kind.String()
	}
}

// Apply performs action i of the current choice. It fails with ErrTerminal
// on a terminal state and ErrActionOutOfRange on a bad index. A session that
// hits unsupported content returns that error and becomes terminal.
func (s *State) Apply(r *rng.RNG, i int) error {
	if s.IsTerminal() {
		if s.err != nil {
			return fmt.Errorf("apply action %d: %w: %w", i, ErrTerminal, s.err)
		}
		return fmt.Errorf("apply action %d: %w", i, ErrTerminal)
	}
	acts := s.Actions()
	if i < 0 || i >= len(acts) {
		return fmt.Errorf("apply action %d of %d: %w", i, len(acts), ErrActionOutOfRange)
	}
	s.apply(r, acts[i])
	return s.err
}

func (s *State) apply(r *rng.RNG, a Action) {
	switch a.Kind {
	case ActionPlay:
		if s.catalog.RequiresTarget(s.Fight.Hand[a.Index]) {
			s.Choice = Choice{Kind: ChoiceChooseEnemy, HandIndex: a.Index}
			return
		}
		s.playFromHand(r, a.Index, -1)
	case ActionEndTurn:
		s.endTurn(r)
	case ActionTarget:
		s.playFromHand(r, s.Choice.HandIndex, a.Index)
	case ActionSelect:
		s.resumeSelection(r, a.Index)
	case ActionTake:
		s.takeReward(r, a.Index)
	case ActionSkip:
		s.takeReward(r, -1)
	}
}
