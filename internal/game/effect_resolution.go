package game

import (
	"fmt"

	"github.com/peterkuimelis/deckcrawl/internal/log"
	"github.com/peterkuimelis/deckcrawl/internal/rng"
)

const (
	pileHand    = "hand"
	pileDiscard = "discard"
	pileDraw    = "draw pile"
)

// playFromHand pays for and starts resolving the hand card at index hi.
func (s *State) playFromHand(r *rng.RNG, hi, target int) {
	f := s.Fight
	c := f.Hand[hi]
	cost := s.energyCost(c)
	ctx := PlayCardContext{Card: c, Target: target}
	if s.catalog.Cost(c).Kind == CostX && !c.HasTempCost {
		ctx.X = f.Energy
	}
	f.removeHand(hi)
	f.Energy -= cost

	targetName := ""
	if e := f.Enemy(target); e != nil {
		targetName = e.Name()
	}
	s.emit(log.NewPlayCardEvent(f.Turn, s.cardName(c), targetName))

	s.onCardPlayed(&ctx)
	f.Active = &ctx
	s.resolve(r)
}

// onCardPlayed fires the triggers that react to any card being played.
func (s *State) onCardPlayed(ctx *PlayCardContext) {
	f := s.Fight
	f.CardsPlayed++
	switch s.catalog.Type(ctx.Card) {
	case CardTypeAttack:
		if !ctx.Purge && f.Statuses[StatusDoubleTap] > 0 {
			f.Statuses[StatusDoubleTap]--
			f.Queue.Push(QueueItem{Kind: QueuePlayCard, Card: ctx.Card, Target: ctx.Target, Purge: true, Amount: ctx.X})
		}
		if rage := f.Statuses[StatusRage]; rage > 0 {
			f.Queue.Push(QueueItem{Kind: QueueBlock, Amount: rage})
		}
	case CardTypeSkill:
		for _, e := range f.Enemies {
			if enrage := e.statusIfAlive(StatusEnrage); enrage > 0 {
				s.buffEnemy(e, StatusStrength, enrage)
			}
		}
	}
}

// resolve runs the active card and then drains the queue until the player
// has a decision to make, a selection suspends resolution, or the fight ends.
func (s *State) resolve(r *rng.RNG) {
	f := s.Fight
	for !f.Over && s.err == nil {
		if f.Active != nil {
			if s.runActive(r) {
				return
			}
			if f.Over || s.err != nil {
				return
			}
			s.finishCard()
			continue
		}
		it, ok := f.Queue.Pop()
		if !ok {
			break
		}
		s.runQueueItem(r, it)
	}
	if !f.Over && s.err == nil {
		s.Choice = Choice{Kind: ChoicePlayCard}
	}
}

// runActive executes the active card from its cursor. It returns true when
// a selection suspended the card.
func (s *State) runActive(r *rng.RNG) bool {
	f := s.Fight
	ctx := f.Active
	effects, err := s.catalog.Effects(ctx.Card)
	if err != nil {
		s.poison(err)
		return false
	}
	for ctx.Cursor < len(effects) {
		e := effects[ctx.Cursor]
		ctx.Cursor++
		if e.Kind == EffectSelect {
			if s.suspend(ctx, e) {
				return true
			}
			continue
		}
		s.applyEffect(r, ctx, e)
		if f.Over || s.err != nil {
			return false
		}
	}
	return false
}

// finishCard moves the fully resolved active card to its destination.
func (s *State) finishCard() {
	f := s.Fight
	ctx := f.Active
	f.Active = nil
	switch {
	case ctx.Purge:
	case s.catalog.Type(ctx.Card) == CardTypePower:
		f.Vanished++
	case ctx.Exhausts:
		s.exhaustCard(ctx.Card)
	default:
		f.discard(ctx.Card)
	}
}

func (s *State) applyEffect(r *rng.RNG, ctx *PlayCardContext, e Effect) {
	f := s.Fight
	switch e.Kind {
	case EffectAttack:
		s.attackTarget(r, ctx.Target, e.Amount, 1, e.hits())
	case EffectAttackAll:
		s.attackAll(r, e.Amount, e.hits())
	case EffectAttackRandom:
		for range e.hits() {
			slots := f.LivingSlots()
			if len(slots) == 0 {
				return
			}
			s.playerAttack(r, slots[r.IntN(len(slots))], e.Amount, 1)
			if f.Over {
				return
			}
		}
	case EffectAttackX:
		s.attackAll(r, e.Amount, ctx.X)
	case EffectBodySlam:
		s.attackTarget(r, ctx.Target, f.Block, 1, 1)
	case EffectHeavyBlade:
		s.attackTarget(r, ctx.Target, e.Amount, e.Scale, 1)
	case EffectAttackBonus:
		s.attackTarget(r, ctx.Target, e.Amount+ctx.Card.Bonus, 1, 1)
	case EffectGrowBonus:
		ctx.Card.Bonus += e.Amount
	case EffectBlock:
		s.gainBlock(e.Amount)
	case EffectDoubleBlock:
		s.addBlock(f.Block)
	case EffectDraw:
		s.drawCards(r, e.Amount)
	case EffectEnergy:
		f.Energy += e.Amount
	case EffectLoseHP:
		s.loseHP(r, e.Amount)
	case EffectBuff:
		s.buffPlayer(e.Status, e.Amount)
	case EffectDebuff:
		if en := f.Enemy(ctx.Target); en != nil {
			s.buffEnemy(en, e.Status, e.Amount)
		}
	case EffectDebuffAll:
		for _, en := range f.Enemies {
			if en.Alive() {
				s.buffEnemy(en, e.Status, e.Amount)
			}
		}
	case EffectDoubleStrength:
		if str := f.Statuses[StatusStrength]; str > 0 {
			s.buffPlayer(StatusStrength, str)
		}
	case EffectCopyToDiscard:
		s.addCards(ctx.Card, pileDiscard, 1)
	case EffectAddToDiscard:
		s.addCards(NewCard(e.Card), pileDiscard, max(e.Count, 1))
	case EffectAddToHand:
		s.addCards(NewCard(e.Card), pileHand, max(e.Count, 1))
	case EffectShuffleIntoDraw:
		s.addCards(NewCard(e.Card), pileDraw, max(e.Count, 1))
	case EffectPlayTopCard:
		if f.Deck.Len() == 0 {
			if len(f.Discard) == 0 {
				return
			}
			s.reshuffle()
		}
		c := f.Deck.Draw(r)
		f.Queue.Push(QueueItem{Kind: QueuePlayCard, Card: c, Target: -1, Exhausts: true})
	case EffectExhaustRandom:
		if len(f.Hand) > 0 {
			s.exhaustCard(f.removeHand(r.IntN(len(f.Hand))))
		}
	case EffectUpgradeAll:
		for i, c := range f.Hand {
			if s.catalog.CanUpgrade(c) {
				f.Hand[i] = c.Upgrade()
			}
		}
	case EffectMarkExhaust:
		ctx.Exhausts = true
	case EffectSetHandCost:
		for i, c := range f.Hand {
			switch s.catalog.Cost(c).Kind {
			case CostFixed, CostHPLoss:
				if s.energyCost(c) > e.Amount {
					c.TempCost, c.HasTempCost = e.Amount, true
					f.Hand[i] = c
				}
			}
		}
	default:
		s.poison(unsupported("effect", e.Kind.String()))
	}
}

// --- Selection ---

// suspend parks ctx in a SelectCard choice if the selection has any option.
func (s *State) suspend(ctx *PlayCardContext, e Effect) bool {
	opts := s.selectOptions(e.Select)
	if len(opts) == 0 {
		return false
	}
	s.Choice = Choice{
		Kind: ChoiceSelectCard,
		Select: &Selection{
			Kind:    e.Select,
			Count:   max(e.Count, 1),
			Options: opts,
			Context: *ctx,
		},
	}
	s.Fight.Active = nil
	return true
}

// selectionPile returns the pile a selection of kind k picks from.
func (s *State) selectionPile(k SelectKind) []Card {
	f := s.Fight
	switch k {
	case SelectDiscardToTop:
		return f.Discard
	case SelectExhume:
		return f.Exhaust
	default:
		return f.Hand
	}
}

func (s *State) selectOptions(k SelectKind) []int {
	var opts []int
	for i, c := range s.selectionPile(k) {
		ok := true
		switch k {
		case SelectUpgrade:
			ok = s.catalog.CanUpgrade(c)
		case SelectDualWield:
			t := s.catalog.Type(c)
			ok = t == CardTypeAttack || t == CardTypePower
		case SelectExhume:
			ok = !s.exhumes(c)
		}
		if ok {
			opts = append(opts, i)
		}
	}
	return opts
}

// exhumes reports whether c itself returns exhausted cards.
func (s *State) exhumes(c Card) bool {
	effects, err := s.catalog.Effects(c)
	if err != nil {
		return false
	}
	for _, e := range effects {
		if e.Kind == EffectSelect && e.Select == SelectExhume {
			return true
		}
	}
	return false
}

// resumeSelection applies the chosen option exactly once and continues the
// parked card from its saved cursor.
func (s *State) resumeSelection(r *rng.RNG, idx int) {
	f := s.Fight
	sel := s.Choice.Select
	ctx := sel.Context
	s.Choice = Choice{Kind: ChoicePlayCard}

	pile := s.selectionPile(sel.Kind)
	s.emit(log.NewSelectEvent(f.Turn, sel.Kind.String(), s.cardName(pile[idx])))

	switch sel.Kind {
	case SelectUpgrade:
		f.Hand[idx] = f.Hand[idx].Upgrade()
	case SelectExhaust:
		s.exhaustCard(f.removeHand(idx))
	case SelectDiscardToTop:
		c := f.Discard[idx]
		f.Discard = append(f.Discard[:idx:idx], f.Discard[idx+1:]...)
		f.Deck.PutOnTop(c)
	case SelectHandToTop:
		c := f.removeHand(idx)
		c.HasTempCost, c.TempCost = false, 0
		f.Deck.PutOnTop(c)
	case SelectDualWield:
		s.addCards(f.Hand[idx], pileHand, sel.Count)
	case SelectExhume:
		c := f.Exhaust[idx]
		f.Exhaust = append(f.Exhaust[:idx:idx], f.Exhaust[idx+1:]...)
		f.addToHand(c)
	}

	f.Active = &ctx
	s.resolve(r)
}

// --- Queue ---

func (s *State) runQueueItem(r *rng.RNG, it QueueItem) {
	f := s.Fight
	s.emit(log.NewQueueEvent(f.Turn, s.phase(), s.describeQueueItem(it)))
	switch it.Kind {
	case QueuePlayCard:
		c := it.Card
		cost := s.catalog.Cost(c)
		if cost.Kind == CostUnplayable {
			if !it.Purge {
				s.exhaustCard(c)
			}
			return
		}
		ctx := PlayCardContext{Card: c, Target: it.Target, Exhausts: it.Exhausts, Free: true, Purge: it.Purge}
		if s.catalog.RequiresTarget(c) && f.Enemy(ctx.Target) == nil {
			slots := f.LivingSlots()
			ctx.Target = slots[r.IntN(len(slots))]
		}
		if cost.Kind == CostX {
			if it.Purge {
				ctx.X = it.Amount
			} else {
				ctx.X = f.Energy
			}
		}
		s.onCardPlayed(&ctx)
		f.Active = &ctx
	case QueueBlock:
		s.addBlock(it.Amount)
	case QueueDraw:
		s.drawCards(r, it.Amount)
	case QueueDamageAll:
		for _, slot := range f.LivingSlots() {
			s.damageEnemy(r, slot, it.Amount, false)
			if f.Over {
				return
			}
		}
	}
}

func (s *State) describeQueueItem(it QueueItem) string {
	if it.Kind == QueuePlayCard {
		return "play " + s.cardName(it.Card)
	}
	return it.String()
}

// --- Piles ---

// drawCards draws up to n cards, stopping early when the hand is full or
// both the draw and discard piles are empty.
func (s *State) drawCards(r *rng.RNG, n int) {
	for range n {
		if !s.drawOne(r) {
			return
		}
	}
}

func (s *State) drawOne(r *rng.RNG) bool {
	f := s.Fight
	if len(f.Hand) >= MaxHandSize {
		return false
	}
	if f.Deck.Len() == 0 {
		if len(f.Discard) == 0 {
			return false
		}
		s.reshuffle()
	}
	c := f.Deck.Draw(r)
	f.Hand = append(f.Hand, c)
	s.emit(log.NewDrawEvent(f.Turn, s.phase(), s.cardName(c)))
	if fb := f.Statuses[StatusFireBreathing]; fb > 0 {
		if t := s.catalog.Type(c); t == CardTypeStatus || t == CardTypeCurse {
			f.Queue.Push(QueueItem{Kind: QueueDamageAll, Amount: fb})
		}
	}
	return true
}

// reshuffle turns the discard pile into the draw pile.
func (s *State) reshuffle() {
	f := s.Fight
	s.emit(log.NewShuffleEvent(f.Turn, s.phase(), len(f.Discard)))
	f.Deck.ShuffleIn(f.Discard...)
	f.Discard = nil
}

func (s *State) exhaustCard(c Card) {
	f := s.Fight
	c.HasTempCost, c.TempCost = false, 0
	f.Exhaust = append(f.Exhaust, c)
	s.emit(log.NewExhaustEvent(f.Turn, s.phase(), s.cardName(c)))
	if fnp := f.Statuses[StatusFeelNoPain]; fnp > 0 {
		f.Queue.Push(QueueItem{Kind: QueueBlock, Amount: fnp})
	}
	if de := f.Statuses[StatusDarkEmbrace]; de > 0 {
		f.Queue.Push(QueueItem{Kind: QueueDraw, Amount: de})
	}
}

// addCards introduces n new copies of c into pile.
func (s *State) addCards(c Card, pile string, n int) {
	f := s.Fight
	c.HasTempCost, c.TempCost = false, 0
	switch pile {
	case pileHand:
		for range n {
			f.addToHand(c)
		}
	case pileDiscard:
		for range n {
			f.Discard = append(f.Discard, c)
		}
	case pileDraw:
		copies := make([]Card, n)
		for i := range copies {
			copies[i] = c
		}
		f.Deck.ShuffleIn(copies...)
	default:
		panic(fmt.Sprintf("unknown pile %q", pile))
	}
	f.Introduced += n
	s.emit(log.NewAddCardEvent(f.Turn, s.phase(), s.cardName(c), pile, n))
}

// energyCost is what playing c from hand costs right now.
func (s *State) energyCost(c Card) int {
	if c.HasTempCost {
		return c.TempCost
	}
	cost := s.catalog.Cost(c)
	switch cost.Kind {
	case CostX:
		return s.Fight.Energy
	case CostHPLoss:
		return max(0, cost.Amount-s.Fight.HPLosses)
	default:
		return cost.Amount
	}
}

// canPlay reports whether the hand card c can be played now.
func (s *State) canPlay(c Card) bool {
	f := s.Fight
	if s.catalog.Cost(c).Kind == CostUnplayable && !c.HasTempCost {
		return false
	}
	if f.Statuses[StatusEntangled] > 0 && s.catalog.Type(c) == CardTypeAttack {
		return false
	}
	if !s.catalog.Playable(c, f) {
		return false
	}
	return s.energyCost(c) <= f.Energy
}
