package game

import "fmt"

// EffectKind identifies one elementary effect a card can perform.
type EffectKind int

const (
	EffectAttack          EffectKind = iota // Amount damage to the target, Hits times
	EffectAttackAll                         // Amount damage to every enemy, Hits times
	EffectAttackRandom                      // each hit picks a random living enemy
	EffectAttackX                           // AttackAll repeated X times
	EffectBodySlam                          // damage equal to current block
	EffectHeavyBlade                        // Strength counts Scale times
	EffectAttackBonus                       // Amount plus the card's stored bonus
	EffectGrowBonus                         // raise the card's stored bonus by Amount
	EffectBlock                             // gain Amount block
	EffectDoubleBlock                       // double current block
	EffectDraw                              // draw Amount cards
	EffectEnergy                            // gain Amount energy
	EffectLoseHP                            // lose Amount HP, ignoring block
	EffectBuff                              // add Amount of Status to the player
	EffectDebuff                            // add Amount of Status to the target
	EffectDebuffAll                         // add Amount of Status to every enemy
	EffectDoubleStrength                    // double the player's Strength
	EffectCopyToDiscard                     // put a copy of the played card in the discard pile
	EffectAddToDiscard                      // put Count copies of Card in the discard pile
	EffectAddToHand                         // put Count copies of Card in hand
	EffectShuffleIntoDraw                   // shuffle Count copies of Card into the draw pile
	EffectPlayTopCard                       // play the top card of the draw pile and exhaust it
	EffectExhaustRandom                     // exhaust a random card in hand
	EffectUpgradeAll                        // upgrade every card in hand
	EffectSelect                            // ask the player to pick a card (Select, Count)
	EffectMarkExhaust                       // the played card is exhausted instead of discarded
	EffectSetHandCost                       // cards in hand cost at most Amount this turn
	numEffectKinds
)

var effectKindNames = [numEffectKinds]string{
	"Attack", "AttackAll", "AttackRandom", "AttackX", "BodySlam", "HeavyBlade",
	"AttackBonus", "GrowBonus", "Block", "DoubleBlock", "Draw", "Energy", "LoseHP",
	"Buff", "Debuff", "DebuffAll", "DoubleStrength", "CopyToDiscard", "AddToDiscard",
	"AddToHand", "ShuffleIntoDraw", "PlayTopCard", "ExhaustRandom", "UpgradeAll",
	"Select", "MarkExhaust", "SetHandCost",
}

func (k EffectKind) String() string {
	if k < 0 || k >= numEffectKinds {
		return fmt.Sprintf("EffectKind(%d)", int(k))
	}
	return effectKindNames[k]
}

// SelectKind is the sub-choice an EffectSelect asks for.
type SelectKind int

const (
	SelectUpgrade      SelectKind = iota // upgrade a card in hand
	SelectExhaust                        // exhaust a card in hand
	SelectDiscardToTop                   // move a discard pile card to the top of the draw pile
	SelectHandToTop                      // move a hand card to the top of the draw pile
	SelectDualWield                      // copy an Attack or Power in hand Count times
	SelectExhume                         // return an exhausted card to hand
)

func (k SelectKind) String() string {
	switch k {
	case SelectUpgrade:
		return "Upgrade"
	case SelectExhaust:
		return "Exhaust"
	case SelectDiscardToTop:
		return "Put on top of draw pile"
	case SelectHandToTop:
		return "Put on top of draw pile"
	case SelectDualWield:
		return "Copy"
	case SelectExhume:
		return "Return to hand"
	default:
		return "Select"
	}
}

// Effect is one elementary step of a card's effect list. Which fields are
// meaningful depends on Kind.
type Effect struct {
	Kind   EffectKind
	Amount int
	Hits   int
	Status Status
	Card   CardID
	Count  int
	Scale  int
	Select SelectKind
}

// hits returns the repeat count of an attack, at least one.
func (e Effect) hits() int {
	if e.Hits < 1 {
		return 1
	}
	return e.Hits
}

// PlayCardContext is a card in the middle of resolving. It is either the
// fight's active context or parked inside a SelectCard choice.
type PlayCardContext struct {
	Card     Card
	Target   int  // enemy slot, -1 when untargeted
	Cursor   int  // index of the next effect to run
	Exhausts bool // exhaust instead of discard once resolved
	X        int  // energy bound to X for X-cost cards
	Free     bool // played from the queue without paying
	Purge    bool // a copy that vanishes once resolved
}
