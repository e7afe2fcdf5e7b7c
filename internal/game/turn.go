package game

import (
	"slices"

	"github.com/peterkuimelis/deckcrawl/internal/log"
	"github.com/peterkuimelis/deckcrawl/internal/rng"
)

// endTurn runs the end of the player's turn, the enemy phase, the
// wind-down and the start of the next player turn.
func (s *State) endTurn(r *rng.RNG) {
	f := s.Fight

	if m := f.Statuses[StatusMetallicize]; m > 0 {
		s.addBlock(m)
	}
	for _, c := range slices.Clone(f.Hand) {
		if dmg := s.catalog.EndTurnDamage(c); dmg > 0 {
			s.damagePlayer(r, s.cardName(c), dmg)
			if f.Over {
				return
			}
		}
	}

	var kept, ethereal []Card
	for _, c := range f.Hand {
		if s.catalog.Ethereal(c) {
			ethereal = append(ethereal, c)
		} else {
			kept = append(kept, c)
		}
	}
	f.Hand = kept
	for _, c := range ethereal {
		s.exhaustCard(c)
	}
	s.resolve(r)
	if f.Over || s.err != nil {
		return
	}

	if len(f.Hand) > 0 {
		s.emit(log.NewDiscardEvent(f.Turn, s.phase(), len(f.Hand)))
	}
	for _, c := range f.Hand {
		f.discard(c)
	}
	f.Hand = nil

	if ls := f.Statuses[StatusLoseStrength]; ls > 0 {
		f.Statuses[StatusLoseStrength] = 0
		s.buffPlayer(StatusStrength, -ls)
	}
	f.Statuses[StatusDoubleTap] = 0
	f.Statuses[StatusRage] = 0
	f.Statuses[StatusEntangled] = 0

	s.enemyTurn(r)
	if f.Over || s.err != nil {
		return
	}

	f.Statuses.windDown()
	for _, e := range f.Enemies {
		if e.Alive() {
			e.Statuses.windDown()
		}
	}
	s.startTurn(r)
}

// view is the read-only snapshot handed to enemy deciders.
func (s *State) view() FightView {
	f := s.Fight
	return FightView{
		Turn:        f.Turn,
		PlayerHP:    s.Player.HP,
		PlayerMaxHP: s.Player.MaxHP,
		PlayerBlock: f.Block,
		Living:      f.Living(),
	}
}

// enemyTurn lets every living enemy act once, in slot order. Enemies
// spawned during this phase wait for the next one.
func (s *State) enemyTurn(r *rng.RNG) {
	f := s.Fight
	f.enemyPhase = true
	defer func() { f.enemyPhase = false }()

	for slot := range MaxEnemies {
		e := f.Enemy(slot)
		if e == nil || e.Fresh {
			continue
		}
		if e.Decide == nil {
			s.poison(unsupported("species", e.Species))
			return
		}
		e.Block = 0
		ritual := e.Statuses[StatusRitual]

		next, actions := e.Decide(r, s.view(), *e, e.AIState)
		e.AIState = next
		for _, a := range actions {
			if !s.enemyAct(r, slot, a) {
				break
			}
		}
		if f.Over || s.err != nil {
			return
		}
		if ritual > 0 && f.Enemies[slot] == e && e.Alive() {
			s.buffEnemy(e, StatusStrength, ritual)
		}
	}
	for _, e := range f.Enemies {
		if e != nil {
			e.Fresh = false
		}
	}
}

// enemyAct applies one enemy action. It returns false when the enemy's
// remaining actions must be skipped.
func (s *State) enemyAct(r *rng.RNG, slot int, a EnemyAction) bool {
	f := s.Fight
	e := f.Enemies[slot]
	switch a.Kind {
	case ActAttack:
		return s.enemyAttack(r, slot, a.Amount, a.hits())
	case ActBite:
		return s.enemyAttack(r, slot, e.Bite, 1)
	case ActBlock:
		e.Block += a.Amount
		s.emit(log.NewBlockEvent(f.Turn, s.phase(), e.Name(), a.Amount, e.Block))
	case ActBuff:
		s.buffEnemy(e, a.Status, a.Amount)
	case ActDebuff:
		s.debuffPlayer(a.Status, a.Amount)
	case ActAddToDiscard, ActShuffleIntoDraw:
		id, ok := s.catalog.Lookup(a.Card)
		if !ok {
			s.poison(unsupported("card", a.Card))
			return false
		}
		pile := pileDiscard
		if a.Kind == ActShuffleIntoDraw {
			pile = pileDraw
		}
		s.addCards(NewCard(id), pile, max(a.Count, 1))
	case ActSplit:
		s.split(r, slot)
		return false
	default:
		s.poison(unsupported("enemy action", a.Kind.String()))
		return false
	}
	return !f.Over
}

// split replaces the enemy in slot with two copies of its split species at
// its current HP, in its own slot and the next free one.
func (s *State) split(r *rng.RNG, slot int) {
	f := s.Fight
	e := f.Enemies[slot]
	sp, ok := s.bestiary.Lookup(e.Species)
	if !ok {
		s.poison(unsupported("species", e.Species))
		return
	}
	into, ok := s.bestiary.Lookup(sp.SplitInto)
	if !ok {
		s.poison(unsupported("species", sp.SplitInto))
		return
	}
	hp := e.HP
	f.Enemies[slot] = nil
	at := slot
	for range 2 {
		if at < 0 {
			break
		}
		child := s.bestiary.spawn(r, into, hp)
		child.Fresh = true
		f.Enemies[at] = child
		at = f.freeSlot(slot + 1)
	}
	s.emit(log.NewSplitEvent(f.Turn, e.Name(), into.Name, hp))
}

// startTurn begins a player turn: start-of-turn powers, block and energy
// reset, and the opening draw.
func (s *State) startTurn(r *rng.RNG) {
	f := s.Fight
	f.Turn++
	s.emit(log.NewTurnEvent(f.Turn))

	if df := f.Statuses[StatusDemonForm]; df > 0 {
		s.buffPlayer(StatusStrength, df)
	}
	if f.Statuses[StatusBarricade] == 0 {
		f.Block = 0
	}
	f.Energy = s.Player.BaseEnergy
	s.drawCards(r, DrawPerTurn)
	for _, e := range f.Enemies {
		if e.Alive() {
			s.emit(log.NewEnemyIntentEvent(f.Turn, e.Name(), e.IntentString()))
		}
	}
	s.resolve(r)
}
