package log

// EventType enumerates all observable combat events.
type EventType int

const (
	EventFightStart EventType = iota
	EventNewTurn
	EventPlayCard
	EventDraw
	EventShuffle
	EventDamage
	EventHPChange
	EventBlock
	EventStatus
	EventExhaust
	EventDiscard
	EventAddCard
	EventSelect
	EventQueue
	EventEnemyIntent
	EventEnemyDeath
	EventSplit
	EventReward
	EventWin
	EventLoss
)

func (e EventType) String() string {
	switch e {
	case EventFightStart:
		return "FightStart"
	case EventNewTurn:
		return "NewTurn"
	case EventPlayCard:
		return "PlayCard"
	case EventDraw:
		return "Draw"
	case EventShuffle:
		return "Shuffle"
	case EventDamage:
		return "Damage"
	case EventHPChange:
		return "HPChange"
	case EventBlock:
		return "Block"
	case EventStatus:
		return "Status"
	case EventExhaust:
		return "Exhaust"
	case EventDiscard:
		return "Discard"
	case EventAddCard:
		return "AddCard"
	case EventSelect:
		return "Select"
	case EventQueue:
		return "Queue"
	case EventEnemyIntent:
		return "EnemyIntent"
	case EventEnemyDeath:
		return "EnemyDeath"
	case EventSplit:
		return "Split"
	case EventReward:
		return "Reward"
	case EventWin:
		return "Win"
	case EventLoss:
		return "Loss"
	default:
		return "Unknown"
	}
}

// GameEvent represents a single observable event in a fight.
type GameEvent struct {
	Seq     int       // monotonic sequence number
	Turn    int       // fight turn (1-based)
	Phase   string    // "Player Turn", "Enemy Turn", "Reward"
	Actor   string    // "Player" or the enemy's name
	Type    EventType // event type
	Card    string    // card name (if applicable)
	Amount  int       // damage, block, stacks, ... (if applicable)
	Details string    // human-readable detail string
}
