package game

import "slices"

// ChoiceKind identifies the externally visible state of a session.
type ChoiceKind int

const (
	ChoicePlayCard    ChoiceKind = iota // play a card from hand or end the turn
	ChoiceChooseEnemy                   // pick a target for a hand card
	ChoiceSelectCard                    // pick a card for a suspended effect
	ChoiceReward                        // take a reward card or skip
	ChoiceWin
	ChoiceLoss
)

func (k ChoiceKind) String() string {
	switch k {
	case ChoicePlayCard:
		return "PlayCard"
	case ChoiceChooseEnemy:
		return "ChooseEnemy"
	case ChoiceSelectCard:
		return "SelectCard"
	case ChoiceReward:
		return "Reward"
	case ChoiceWin:
		return "Win"
	case ChoiceLoss:
		return "Loss"
	default:
		return "Unknown"
	}
}

// Selection is a suspended sub-choice. It carries the paused card so that
// resolution continues from the saved cursor once a card is picked.
type Selection struct {
	Kind    SelectKind
	Count   int   // copies made by SelectDualWield
	Options []int // indices into the source pile
	Context PlayCardContext
}

// Choice is what the session is waiting for.
type Choice struct {
	Kind      ChoiceKind
	HandIndex int        // ChoiceChooseEnemy: the card awaiting a target
	Select    *Selection // ChoiceSelectCard
	Rewards   []Card     // ChoiceReward
}

func (c Choice) clone() Choice {
	out := c
	if c.Select != nil {
		sel := *c.Select
		sel.Options = slices.Clone(c.Select.Options)
		out.Select = &sel
	}
	out.Rewards = slices.Clone(c.Rewards)
	return out
}

// ActionKind identifies what applying an action does.
type ActionKind int

const (
	ActionPlay    ActionKind = iota // Index: hand position
	ActionEndTurn
	ActionTarget                    // Index: enemy slot
	ActionSelect                    // Index: position in the selection source pile
	ActionTake                      // Index: position in the reward list
	ActionSkip
)

func (k ActionKind) String() string {
	switch k {
	case ActionPlay:
		return "Play"
	case ActionEndTurn:
		return "EndTurn"
	case ActionTarget:
		return "Target"
	case ActionSelect:
		return "Select"
	case ActionTake:
		return "Take"
	case ActionSkip:
		return "Skip"
	default:
		return "Unknown"
	}
}

// Action is one legal move from the current Choice.
type Action struct {
	Kind  ActionKind
	Index int
}
