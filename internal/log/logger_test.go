package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestMemoryLoggerSequencesEvents(t *testing.T) {
	l := NewMemoryLogger()
	l.Log(NewTurnEvent(1))
	l.Log(NewDrawEvent(1, PhasePlayer, "Strike"))
	l.Log(NewDrawEvent(1, PhasePlayer, "Defend"))

	events := l.Events()
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}
	for i, e := range events {
		if e.Seq != i+1 {
			t.Errorf("event %d: seq %d, want %d", i, e.Seq, i+1)
		}
	}
	if draws := l.EventsOfType(EventDraw); len(draws) != 2 {
		t.Errorf("got %d draw events, want 2", len(draws))
	}
	if last := l.LastEvent(); last.Card != "Defend" {
		t.Errorf("last event card %q, want Defend", last.Card)
	}
}

func TestMemoryLoggerDrain(t *testing.T) {
	l := NewMemoryLogger()
	l.Log(NewTurnEvent(1))
	if got := len(l.Drain()); got != 1 {
		t.Fatalf("drained %d events, want 1", got)
	}
	if got := len(l.Events()); got != 0 {
		t.Fatalf("%d events left after drain", got)
	}
	l.Log(NewTurnEvent(2))
	if seq := l.LastEvent().Seq; seq != 2 {
		t.Errorf("seq after drain %d, want 2", seq)
	}
}

func TestTextLoggerWritesLines(t *testing.T) {
	var buf bytes.Buffer
	l := NewTextLogger(&buf)
	l.Log(NewDamageEvent(3, PhaseEnemy, "Cultist", "Player", 6, 2))

	out := buf.String()
	if !strings.HasPrefix(out, "T3 ") {
		t.Errorf("line %q should start with the turn", out)
	}
	if !strings.Contains(out, "Cultist deals 6 damage to Player (2 blocked)") {
		t.Errorf("unexpected line %q", out)
	}
	if len(l.Events()) != 1 {
		t.Errorf("text logger should also keep events")
	}
}

func TestFormatAll(t *testing.T) {
	out := FormatAll([]GameEvent{NewTurnEvent(1), NewRewardEvent("")})
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if !strings.Contains(lines[1], "Reward skipped") {
		t.Errorf("line %q", lines[1])
	}
}

func TestRunEndDetails(t *testing.T) {
	if got := NewWinEvent(4, "all encounters cleared").Details; got != "Player wins: all encounters cleared" {
		t.Errorf("win details %q", got)
	}
	if got := NewLossEvent(2, PhaseEnemy, "HP reached 0").Details; got != "Player loses: HP reached 0" {
		t.Errorf("loss details %q", got)
	}
}
