package game

import (
	"slices"

	"github.com/peterkuimelis/deckcrawl/internal/log"
	"github.com/peterkuimelis/deckcrawl/internal/rng"
)

const playerName = "Player"

// attackDamage applies Weak and Vulnerable to base and truncates. The result
// is never negative.
func attackDamage(base int, weak, vulnerable bool) int {
	d := float64(base)
	if weak {
		d *= 0.75
	}
	if vulnerable {
		d *= 1.5
	}
	return max(0, int(d))
}

// blockAmount applies Dexterity and Frail to base.
func blockAmount(base, dexterity int, frail bool) int {
	b := float64(base + dexterity)
	if frail {
		b *= 0.75
	}
	return max(0, int(b))
}

// --- Player attacks ---

// attackTarget hits the enemy in slot hits times. Hits stop once the enemy
// is gone or the fight is over.
func (s *State) attackTarget(r *rng.RNG, slot, base, strengthScale, hits int) {
	f := s.Fight
	for range hits {
		if f.Enemy(slot) == nil || f.Over {
			return
		}
		s.playerAttack(r, slot, base, strengthScale)
	}
}

// attackAll hits every living enemy, in slot order, hits times.
func (s *State) attackAll(r *rng.RNG, base, hits int) {
	f := s.Fight
	for range hits {
		for _, slot := range f.LivingSlots() {
			s.playerAttack(r, slot, base, 1)
			if f.Over {
				return
			}
		}
	}
}

func (s *State) playerAttack(r *rng.RNG, slot, base, strengthScale int) {
	f := s.Fight
	e := f.Enemies[slot]
	dmg := attackDamage(base+strengthScale*f.Statuses[StatusStrength],
		f.Statuses[StatusWeak] > 0, e.Statuses[StatusVulnerable] > 0)
	s.damageEnemy(r, slot, dmg, true)
}

// damageEnemy deals amount damage to the enemy in slot. Block absorbs
// first; attack damage that reaches HP triggers Curl Up.
func (s *State) damageEnemy(r *rng.RNG, slot, amount int, attack bool) {
	f := s.Fight
	e := f.Enemies[slot]
	blocked := min(e.Block, amount)
	e.Block -= blocked
	loss := amount - blocked
	src := playerName
	if !attack {
		src = "Effect"
	}
	s.emit(log.NewDamageEvent(f.Turn, s.phase(), src, e.Name(), amount, blocked))
	if loss > 0 {
		old := e.HP
		e.HP -= loss
		s.emit(log.NewHPChangeEvent(f.Turn, s.phase(), e.Name(), old, e.HP))
		if curl := e.Statuses[StatusCurlUp]; attack && curl > 0 && e.HP > 0 {
			e.Statuses[StatusCurlUp] = 0
			e.Block += curl
			s.emit(log.NewBlockEvent(f.Turn, s.phase(), e.Name(), curl, e.Block))
		}
	}
	if e.HP <= 0 {
		s.killEnemy(r, slot)
	}
}

func (s *State) killEnemy(r *rng.RNG, slot int) {
	f := s.Fight
	e := f.Enemies[slot]
	f.Enemies[slot] = nil
	s.emit(log.NewEnemyDeathEvent(f.Turn, s.phase(), e.Name()))
	if spores := e.Statuses[StatusSporeCloud]; spores > 0 {
		s.debuffPlayer(StatusVulnerable, spores)
	}
	s.checkEnd(r)
}

// --- Player defense ---

func (s *State) gainBlock(base int) {
	f := s.Fight
	s.addBlock(blockAmount(base, f.Statuses[StatusDexterity], f.Statuses[StatusFrail] > 0))
}

func (s *State) addBlock(n int) {
	if n <= 0 {
		return
	}
	f := s.Fight
	f.Block += n
	s.emit(log.NewBlockEvent(f.Turn, s.phase(), playerName, n, f.Block))
}

// enemyAttack resolves an enemy's multi-hit attack against the player. It
// returns false once the enemy died or the fight ended, so the rest of that
// enemy's actions are skipped.
func (s *State) enemyAttack(r *rng.RNG, slot, base, hits int) bool {
	f := s.Fight
	for range hits {
		e := f.Enemy(slot)
		if e == nil {
			return false
		}
		dmg := attackDamage(base+e.Statuses[StatusStrength],
			e.Statuses[StatusWeak] > 0, f.Statuses[StatusVulnerable] > 0)
		s.damagePlayer(r, e.Name(), dmg)
		if f.Over {
			return false
		}
		if thorns := f.Statuses[StatusThorns]; thorns > 0 {
			s.damageEnemy(r, slot, thorns, false)
			if f.Over || f.Enemy(slot) == nil {
				return false
			}
		}
	}
	return true
}

// damagePlayer deals blockable damage to the player.
func (s *State) damagePlayer(r *rng.RNG, source string, amount int) {
	f := s.Fight
	blocked := min(f.Block, amount)
	f.Block -= blocked
	s.emit(log.NewDamageEvent(f.Turn, s.phase(), source, playerName, amount, blocked))
	s.loseHP(r, amount-blocked)
}

// loseHP removes HP directly and counts an HP-loss event.
func (s *State) loseHP(r *rng.RNG, n int) {
	if n <= 0 {
		return
	}
	f := s.Fight
	old := s.Player.HP
	s.Player.HP -= n
	f.HPLosses++
	s.emit(log.NewHPChangeEvent(f.Turn, s.phase(), playerName, old, s.Player.HP))
	s.checkEnd(r)
}

// --- Statuses ---

func (s *State) buffPlayer(st Status, n int) {
	f := s.Fight
	total := f.Statuses.Add(st, n)
	s.emit(log.NewStatusEvent(f.Turn, s.phase(), playerName, st.String(), n, total))
}

// debuffPlayer applies a debuff from an enemy. Turn-scoped debuffs applied
// during the enemy phase while at zero are seeded one higher so they
// survive the wind-down that immediately follows.
func (s *State) debuffPlayer(st Status, n int) {
	f := s.Fight
	if f.enemyPhase && st.turnScoped() && f.Statuses[st] == 0 {
		f.Statuses[st] = 1
	}
	total := f.Statuses.Add(st, n)
	s.emit(log.NewStatusEvent(f.Turn, s.phase(), playerName, st.String(), n, total))
}

func (s *State) buffEnemy(e *Enemy, st Status, n int) {
	total := e.Statuses.Add(st, n)
	s.emit(log.NewStatusEvent(s.turn(), s.phase(), e.Name(), st.String(), n, total))
}

// --- Fight end ---

// checkEnd ends the fight if the player is dead or no enemies remain. It
// reports whether the fight is over.
func (s *State) checkEnd(r *rng.RNG) bool {
	f := s.Fight
	if f.Over {
		return true
	}
	if s.Player.HP <= 0 {
		s.endFight()
		s.Choice = Choice{Kind: ChoiceLoss}
		s.emit(log.NewLossEvent(f.Turn, s.phase(), "player HP reached 0"))
		return true
	}
	if f.Living() == 0 {
		s.endFight()
		s.Choice = Choice{Kind: ChoiceReward, Rewards: s.rollRewards(r)}
		s.emit(log.NewWinEvent(f.Turn, "encounter cleared"))
		return true
	}
	return false
}

// endFight stops resolution. The card in flight and queued plays go to the
// discard pile; purged copies disappear.
func (s *State) endFight() {
	f := s.Fight
	f.Over = true
	if f.Active != nil {
		if !f.Active.Purge {
			f.discard(f.Active.Card)
		}
		f.Active = nil
	}
	for _, it := range f.Queue.items {
		if it.Kind == QueuePlayCard && !it.Purge {
			f.discard(it.Card)
		}
	}
	f.Queue.Clear()
}

// rollRewards draws up to RewardChoice distinct cards from the reward pool.
func (s *State) rollRewards(r *rng.RNG) []Card {
	pool := slices.Clone(s.catalog.RewardPool())
	n := min(RewardChoice, len(pool))
	out := make([]Card, n)
	for i := range n {
		j := i + r.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
		out[i] = NewCard(pool[i])
	}
	return out
}

// takeReward adds the chosen reward (idx < 0 skips) and moves on to the
// next encounter, or wins the run after the last one.
func (s *State) takeReward(r *rng.RNG, idx int) {
	if idx >= 0 {
		c := s.Choice.Rewards[idx]
		s.Player.Deck = append(s.Player.Deck, c)
		s.emit(log.NewRewardEvent(s.cardName(c)))
	} else {
		s.emit(log.NewRewardEvent(""))
	}
	s.Floor++
	if s.Floor < len(s.Encounters) {
		if err := s.StartFight(r, s.Encounters[s.Floor]...); err != nil {
			s.poison(err)
		}
		return
	}
	s.Choice = Choice{Kind: ChoiceWin}
	s.emit(log.NewWinEvent(s.turn(), "run complete"))
}
