package game

import (
	"errors"
	"testing"

	"github.com/peterkuimelis/deckcrawl/internal/log"
)

func TestEndTurnRunsEnemyPhaseAndStartsNextTurn(t *testing.T) {
	s, r, logger := newFight(t, []string{"Defend", "Strike"}, repeat("Strike", 10), dummyEnemy("Dummy", 50, 10))

	play(t, s, r, "Defend", 0)
	endTurn(t, s, r)

	f := s.Fight
	if s.Player.HP != 75 {
		t.Errorf("player HP = %d, want 75 after 5 block", s.Player.HP)
	}
	if f.Turn != 2 || f.Block != 0 || f.Energy != BaseEnergy {
		t.Errorf("turn %d block %d energy %d", f.Turn, f.Block, f.Energy)
	}
	if len(f.Hand) != DrawPerTurn {
		t.Errorf("hand = %d cards, want %d", len(f.Hand), DrawPerTurn)
	}
	if countNamed(s, f.Discard, "Strike") != 1 || countNamed(s, f.Discard, "Defend") != 1 {
		t.Errorf("discard = %v", pileNames(s, f.Discard))
	}
	if len(logger.EventsOfType(log.EventDiscard)) != 1 {
		t.Error("expected a discard event for the held Strike")
	}
	if s.Choice.Kind != ChoicePlayCard {
		t.Errorf("choice = %s", s.Choice.Kind)
	}
}

func TestThornsCanKillMidMultiHit(t *testing.T) {
	e := scriptedEnemy("Spiker", 3,
		EnemyAction{Kind: ActAttack, Amount: 2, Hits: 3},
		EnemyAction{Kind: ActBuff, Status: StatusStrength, Amount: 5})
	s, r, _ := newFight(t, nil, repeat("Strike", 10), e)
	s.Fight.Statuses[StatusThorns] = 3

	endTurn(t, s, r)

	if s.Player.HP != 78 {
		t.Errorf("player HP = %d, only one hit should land", s.Player.HP)
	}
	if e.Statuses[StatusStrength] != 0 {
		t.Error("dead enemy should skip its remaining actions")
	}
	if s.Choice.Kind != ChoiceReward {
		t.Errorf("choice = %s, want Reward", s.Choice.Kind)
	}
}

func TestEnemyDebuffSurvivesWindDown(t *testing.T) {
	e := scriptedEnemy("Licker", 50, EnemyAction{Kind: ActDebuff, Status: StatusWeak, Amount: 2})
	s, r, _ := newFight(t, nil, repeat("Strike", 20), e)

	endTurn(t, s, r)
	if got := s.Fight.Statuses[StatusWeak]; got != 2 {
		t.Fatalf("weak = %d after the first enemy phase, want 2", got)
	}
	endTurn(t, s, r)
	if got := s.Fight.Statuses[StatusWeak]; got != 3 {
		t.Errorf("weak = %d after stacking, want 2+2-1", got)
	}
}

func TestPlayerDebuffsTickDown(t *testing.T) {
	s, r, _ := newFight(t, []string{"Bash"}, repeat("Strike", 10), dummyEnemy("Dummy", 50, 1))
	play(t, s, r, "Bash", 0)
	e := s.Fight.Enemies[0]
	if e.Statuses[StatusVulnerable] != 2 {
		t.Fatalf("vulnerable = %d, want 2", e.Statuses[StatusVulnerable])
	}
	endTurn(t, s, r)
	if e.Statuses[StatusVulnerable] != 1 {
		t.Errorf("vulnerable = %d after wind-down, want 1", e.Statuses[StatusVulnerable])
	}
}

func TestCultistRitualStartsAfterIncantation(t *testing.T) {
	s, r, _ := newFight(t, nil, repeat("Defend", 20))
	cultist, err := DefaultBestiary().Spawn(r, "Cultist")
	if err != nil {
		t.Fatal(err)
	}
	s.Fight.Enemies[0] = cultist

	endTurn(t, s, r)
	if cultist.Statuses[StatusRitual] != 3 || cultist.Statuses[StatusStrength] != 0 {
		t.Fatalf("after incantation: ritual %d strength %d", cultist.Statuses[StatusRitual], cultist.Statuses[StatusStrength])
	}
	endTurn(t, s, r)
	if s.Player.HP != 74 {
		t.Errorf("player HP = %d, want 80 - 6", s.Player.HP)
	}
	if cultist.Statuses[StatusStrength] != 3 {
		t.Errorf("strength = %d after the first attack, want 3", cultist.Statuses[StatusStrength])
	}
}

func TestLargeSlimeSplits(t *testing.T) {
	s, r, logger := newFight(t, nil, repeat("Defend", 20))
	slime, err := DefaultBestiary().Spawn(r, "Acid Slime (L)")
	if err != nil {
		t.Fatal(err)
	}
	slime.HP = 30
	s.Fight.Enemies[0] = slime

	endTurn(t, s, r)

	f := s.Fight
	for _, slot := range []int{0, 1} {
		e := f.Enemies[slot]
		if e == nil || e.Species != "Acid Slime (M)" || e.HP != 30 || e.MaxHP != 30 {
			t.Fatalf("slot %d = %+v", slot, e)
		}
		if e.Fresh {
			t.Errorf("slot %d still marked fresh", slot)
		}
	}
	if s.Player.HP != 80 {
		t.Errorf("split children should not act on the phase they appear, HP = %d", s.Player.HP)
	}
	if len(logger.EventsOfType(log.EventSplit)) != 1 {
		t.Error("expected a split event")
	}
}

func TestEndOfTurnCardEffects(t *testing.T) {
	s, r, logger := newFight(t, []string{"Burn", "Dazed", "Strike"}, repeat("Defend", 10), dummyEnemy("Dummy", 50, 0))

	endTurn(t, s, r)

	f := s.Fight
	if s.Player.HP != 78 {
		t.Errorf("player HP = %d, Burn should deal 2", s.Player.HP)
	}
	if countNamed(s, f.Exhaust, "Dazed") != 1 {
		t.Errorf("ethereal Dazed should be exhausted: %v", pileNames(s, f.Exhaust))
	}
	if countNamed(s, f.Discard, "Burn") != 1 || countNamed(s, f.Discard, "Strike") != 1 {
		t.Errorf("discard = %v", pileNames(s, f.Discard))
	}
	if len(logger.EventsOfType(log.EventExhaust)) != 1 {
		t.Error("expected one exhaust event")
	}
}

func TestTurnScopedPowers(t *testing.T) {
	s, r, _ := newFight(t, []string{"Flex", "Metallicize", "Barricade"}, repeat("Defend", 10), dummyEnemy("Dummy", 50, 0))
	s.Fight.Energy = 10
	play(t, s, r, "Flex", 0)
	play(t, s, r, "Metallicize", 0)
	play(t, s, r, "Barricade", 0)
	s.Fight.Statuses[StatusDemonForm] = 2

	endTurn(t, s, r)

	f := s.Fight
	if got := f.Statuses[StatusStrength]; got != 2 {
		t.Errorf("strength = %d, want Flex removed and Demon Form added", got)
	}
	if f.Block != 3 {
		t.Errorf("block = %d, Barricade should keep Metallicize block", f.Block)
	}
}

func TestPlayerDeathEndsInLoss(t *testing.T) {
	s, r, logger := newFight(t, nil, repeat("Defend", 10), dummyEnemy("Dummy", 50, 100))

	endTurn(t, s, r)

	if s.Choice.Kind != ChoiceLoss || !s.IsTerminal() {
		t.Fatalf("choice = %s, want Loss", s.Choice.Kind)
	}
	if s.LegalActionCount() != 0 {
		t.Error("terminal states have no actions")
	}
	if err := s.Apply(r, 0); !errors.Is(err, ErrTerminal) {
		t.Errorf("Apply on a terminal state = %v, want ErrTerminal", err)
	}
	if len(logger.EventsOfType(log.EventLoss)) != 1 {
		t.Error("expected a loss event")
	}
}
