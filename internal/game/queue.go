package game

import "fmt"

// QueueKind identifies a deferred action.
type QueueKind int

const (
	QueuePlayCard QueueKind = iota
	QueueBlock
	QueueDraw
	QueueDamageAll
)

// QueueItem is an action deferred until the active card finishes resolving.
type QueueItem struct {
	Kind     QueueKind
	Card     Card // QueuePlayCard
	Target   int  // QueuePlayCard; -1 picks a random enemy when needed
	Exhausts bool // QueuePlayCard
	Purge    bool // QueuePlayCard
	Amount   int  // block, cards or damage
}

func (it QueueItem) String() string {
	switch it.Kind {
	case QueuePlayCard:
		return "play card"
	case QueueBlock:
		return fmt.Sprintf("gain %d block", it.Amount)
	case QueueDraw:
		return fmt.Sprintf("draw %d", it.Amount)
	case QueueDamageAll:
		return fmt.Sprintf("deal %d damage to all enemies", it.Amount)
	default:
		return "unknown"
	}
}

// Queue is a FIFO of deferred actions.
type Queue struct {
	items []QueueItem
}

// Push appends an item to the back of the queue.
func (q *Queue) Push(it QueueItem) {
	q.items = append(q.items, it)
}

// Pop removes and returns the front item.
func (q *Queue) Pop() (QueueItem, bool) {
	if len(q.items) == 0 {
		return QueueItem{}, false
	}
	it := q.items[0]
	q.items = q.items[1:]
	if len(q.items) == 0 {
		q.items = nil
	}
	return it, true
}

func (q *Queue) Len() int { return len(q.items) }

// Items returns a copy of the pending items, front first.
func (q *Queue) Items() []QueueItem {
	return append([]QueueItem(nil), q.items...)
}

func (q *Queue) Clear() { q.items = nil }

func (q *Queue) clone() Queue {
	return Queue{items: q.Items()}
}
