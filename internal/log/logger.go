package log

import (
	"fmt"
	"io"
	"strings"
)

// EventLogger is the interface for logging combat events.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	events []GameEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event GameEvent) {
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []GameEvent {
	return l.events
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	var result []GameEvent
	for _, e := range l.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	if len(l.events) == 0 {
		return GameEvent{}
	}
	return l.events[len(l.events)-1]
}

// Drain returns the accumulated events and clears the buffer.
func (l *MemoryLogger) Drain() []GameEvent {
	events := l.events
	l.events = nil
	return events
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	fmt.Fprintln(l.w, FormatEvent(event))
}

// --- Formatting ---

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e GameEvent) string {
	phase := e.Phase
	// Pad phase to 12 chars for alignment
	for len(phase) < 12 {
		phase += " "
	}
	return fmt.Sprintf("T%-2d %s| %s", e.Turn, phase, e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []GameEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- Helper constructors for common events ---

const (
	PhasePlayer = "Player Turn"
	PhaseEnemy  = "Enemy Turn"
	PhaseReward = "Reward"
)

func NewFightStartEvent(enemies []string) GameEvent {
	return GameEvent{
		Turn:    1,
		Phase:   PhasePlayer,
		Type:    EventFightStart,
		Details: fmt.Sprintf("=== Fight: %s ===", strings.Join(enemies, ", ")),
	}
}

func NewTurnEvent(turn int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   PhasePlayer,
		Actor:   "Player",
		Type:    EventNewTurn,
		Details: fmt.Sprintf("--- Turn %d ---", turn),
	}
}

func NewPlayCardEvent(turn int, cardName, target string) GameEvent {
	details := fmt.Sprintf("Player plays %s", cardName)
	if target != "" {
		details += " targeting " + target
	}
	return GameEvent{
		Turn:    turn,
		Phase:   PhasePlayer,
		Actor:   "Player",
		Type:    EventPlayCard,
		Card:    cardName,
		Details: details,
	}
}

func NewDrawEvent(turn int, phase, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Actor:   "Player",
		Type:    EventDraw,
		Card:    cardName,
		Details: fmt.Sprintf("Player draws %s", cardName),
	}
}

func NewShuffleEvent(turn int, phase string, count int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Actor:   "Player",
		Type:    EventShuffle,
		Amount:  count,
		Details: fmt.Sprintf("Discard pile (%d cards) shuffled into draw pile", count),
	}
}

func NewDamageEvent(turn int, phase, source, target string, amount, blocked int) GameEvent {
	details := fmt.Sprintf("%s deals %d damage to %s", source, amount, target)
	if blocked > 0 {
		details += fmt.Sprintf(" (%d blocked)", blocked)
	}
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Actor:   source,
		Type:    EventDamage,
		Amount:  amount,
		Details: details,
	}
}

func NewHPChangeEvent(turn int, phase, who string, oldHP, newHP int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Actor:   who,
		Type:    EventHPChange,
		Amount:  newHP - oldHP,
		Details: fmt.Sprintf("%s HP: %d → %d", who, oldHP, newHP),
	}
}

func NewBlockEvent(turn int, phase, who string, gained, total int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Actor:   who,
		Type:    EventBlock,
		Amount:  gained,
		Details: fmt.Sprintf("%s gains %d block (now %d)", who, gained, total),
	}
}

func NewStatusEvent(turn int, phase, who, status string, amount, total int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Actor:   who,
		Type:    EventStatus,
		Amount:  amount,
		Details: fmt.Sprintf("%s %s %+d (now %d)", who, status, amount, total),
	}
}

func NewExhaustEvent(turn int, phase, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Actor:   "Player",
		Type:    EventExhaust,
		Card:    cardName,
		Details: fmt.Sprintf("%s is exhausted", cardName),
	}
}

func NewDiscardEvent(turn int, phase string, count int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Actor:   "Player",
		Type:    EventDiscard,
		Amount:  count,
		Details: fmt.Sprintf("Player discards %d cards", count),
	}
}

func NewAddCardEvent(turn int, phase, cardName, pile string, count int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Type:    EventAddCard,
		Card:    cardName,
		Amount:  count,
		Details: fmt.Sprintf("%d× %s added to %s", count, cardName, pile),
	}
}

func NewSelectEvent(turn int, prompt, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   PhasePlayer,
		Actor:   "Player",
		Type:    EventSelect,
		Card:    cardName,
		Details: fmt.Sprintf("%s: %s", prompt, cardName),
	}
}

func NewQueueEvent(turn int, phase, details string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Type:    EventQueue,
		Details: details,
	}
}

func NewEnemyIntentEvent(turn int, enemy, intent string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   PhaseEnemy,
		Actor:   enemy,
		Type:    EventEnemyIntent,
		Details: fmt.Sprintf("%s uses %s", enemy, intent),
	}
}

func NewEnemyDeathEvent(turn int, phase, enemy string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Actor:   enemy,
		Type:    EventEnemyDeath,
		Details: fmt.Sprintf("%s dies", enemy),
	}
}

func NewSplitEvent(turn int, enemy, into string, hp int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   PhaseEnemy,
		Actor:   enemy,
		Type:    EventSplit,
		Amount:  hp,
		Details: fmt.Sprintf("%s splits into two %s (%d HP each)", enemy, into, hp),
	}
}

func NewRewardEvent(cardName string) GameEvent {
	details := "Reward skipped"
	if cardName != "" {
		details = fmt.Sprintf("%s added to deck", cardName)
	}
	return GameEvent{
		Phase:   PhaseReward,
		Actor:   "Player",
		Type:    EventReward,
		Card:    cardName,
		Details: details,
	}
}

func NewWinEvent(turn int, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   PhaseReward,
		Actor:   "Player",
		Type:    EventWin,
		Details: fmt.Sprintf("Player wins: %s", reason),
	}
}

func NewLossEvent(turn int, phase, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Actor:   "Player",
		Type:    EventLoss,
		Details: fmt.Sprintf("Player loses: %s", reason),
	}
}
