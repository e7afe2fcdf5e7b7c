package game

// Card identifiers of the default library, in definition order.
const (
	CardStrike CardID = iota
	CardDefend
	CardBash

	CardAnger
	CardArmaments
	CardBodySlam
	CardClash
	CardCleave
	CardClothesline
	CardFlex
	CardHavoc
	CardHeadbutt
	CardHeavyBlade
	CardIronWave
	CardPommelStrike
	CardShrugItOff
	CardSwordBoomerang
	CardThunderclap
	CardTrueGrit
	CardTwinStrike
	CardWarcry
	CardWildStrike

	CardBattleTrance
	CardBloodForBlood
	CardBloodletting
	CardBurningPact
	CardCarnage
	CardDarkEmbrace
	CardDisarm
	CardDualWield
	CardEntrench
	CardFeelNoPain
	CardFireBreathing
	CardGhostlyArmor
	CardHemokinesis
	CardInflame
	CardIntimidate
	CardMetallicize
	CardPowerThrough
	CardPummel
	CardRage
	CardRampage
	CardSearingBlow
	CardSeeingRed
	CardShockwave
	CardUppercut
	CardWhirlwind
	CardEnlightenment

	CardBarricade
	CardBludgeon
	CardDemonForm
	CardDoubleTap
	CardExhume
	CardImmolate
	CardImpervious
	CardLimitBreak
	CardOffering

	CardWound
	CardDazed
	CardSlimed
	CardBurn
	CardInjury
	CardDecay
)

// --- Effect helpers ---

func fixed(n int) Cost { return Cost{Kind: CostFixed, Amount: n} }

func costs(base, upgraded int) [2]Cost { return [2]Cost{fixed(base), fixed(upgraded)} }

var (
	unplayable = [2]Cost{{Kind: CostUnplayable}, {Kind: CostUnplayable}}
	costX      = [2]Cost{{Kind: CostX}, {Kind: CostX}}
)

// up picks the upgraded value once a card has been upgraded.
func up(upgrades, base, upgraded int) int {
	if upgrades > 0 {
		return upgraded
	}
	return base
}

func attack(n int) Effect { return Effect{Kind: EffectAttack, Amount: n, Hits: 1} }
func multiAttack(n, hits int) Effect { return Effect{Kind: EffectAttack, Amount: n, Hits: hits} }
func attackAll(n int) Effect { return Effect{Kind: EffectAttackAll, Amount: n, Hits: 1} }
func block(n int) Effect { return Effect{Kind: EffectBlock, Amount: n} }
func draw(n int) Effect { return Effect{Kind: EffectDraw, Amount: n} }
func energy(n int) Effect { return Effect{Kind: EffectEnergy, Amount: n} }
func loseHP(n int) Effect { return Effect{Kind: EffectLoseHP, Amount: n} }
func buff(s Status, n int) Effect { return Effect{Kind: EffectBuff, Status: s, Amount: n} }
func debuff(s Status, n int) Effect { return Effect{Kind: EffectDebuff, Status: s, Amount: n} }
func debuffAll(s Status, n int) Effect { return Effect{Kind: EffectDebuffAll, Status: s, Amount: n} }
func selectCard(k SelectKind) Effect { return Effect{Kind: EffectSelect, Select: k, Count: 1} }
func markExhaust() Effect { return Effect{Kind: EffectMarkExhaust} }

func effects(es ...Effect) []Effect { return es }

// --- Default library ---

var defaultDefs = []cardDef{
	CardStrike: {name: "Strike", typ: CardTypeAttack, rarity: RarityStarter, cost: costs(1, 1), target: true,
		effects: func(n int) []Effect { return effects(attack(up(n, 6, 9))) }},
	CardDefend: {name: "Defend", typ: CardTypeSkill, rarity: RarityStarter, cost: costs(1, 1),
		effects: func(n int) []Effect { return effects(block(up(n, 5, 8))) }},
	CardBash: {name: "Bash", typ: CardTypeAttack, rarity: RarityStarter, cost: costs(2, 2), target: true,
		effects: func(n int) []Effect {
			return effects(attack(up(n, 8, 10)), debuff(StatusVulnerable, up(n, 2, 3)))
		}},

	// Commons.
	CardAnger: {name: "Anger", typ: CardTypeAttack, rarity: RarityCommon, cost: costs(0, 0), target: true,
		effects: func(n int) []Effect {
			return effects(attack(up(n, 6, 8)), Effect{Kind: EffectCopyToDiscard})
		}},
	CardArmaments: {name: "Armaments", typ: CardTypeSkill, rarity: RarityCommon, cost: costs(1, 1),
		effects: func(n int) []Effect {
			if n > 0 {
				return effects(Effect{Kind: EffectUpgradeAll}, block(5))
			}
			return effects(selectCard(SelectUpgrade), block(5))
		}},
	CardBodySlam: {name: "Body Slam", typ: CardTypeAttack, rarity: RarityCommon, cost: costs(1, 0), target: true,
		effects: func(int) []Effect { return effects(Effect{Kind: EffectBodySlam}) }},
	CardClash: {name: "Clash", typ: CardTypeAttack, rarity: RarityCommon, cost: costs(0, 0), target: true, clash: true,
		effects: func(n int) []Effect { return effects(attack(up(n, 14, 18))) }},
	CardCleave: {name: "Cleave", typ: CardTypeAttack, rarity: RarityCommon, cost: costs(1, 1),
		effects: func(n int) []Effect { return effects(attackAll(up(n, 8, 11))) }},
	CardClothesline: {name: "Clothesline", typ: CardTypeAttack, rarity: RarityCommon, cost: costs(2, 2), target: true,
		effects: func(n int) []Effect {
			return effects(attack(up(n, 12, 14)), debuff(StatusWeak, up(n, 2, 3)))
		}},
	CardFlex: {name: "Flex", typ: CardTypeSkill, rarity: RarityCommon, cost: costs(0, 0),
		effects: func(n int) []Effect {
			return effects(buff(StatusStrength, up(n, 2, 4)), buff(StatusLoseStrength, up(n, 2, 4)))
		}},
	CardHavoc: {name: "Havoc", typ: CardTypeSkill, rarity: RarityCommon, cost: costs(1, 0),
		effects: func(int) []Effect { return effects(Effect{Kind: EffectPlayTopCard}) }},
	CardHeadbutt: {name: "Headbutt", typ: CardTypeAttack, rarity: RarityCommon, cost: costs(1, 1), target: true,
		effects: func(n int) []Effect {
			return effects(attack(up(n, 9, 12)), selectCard(SelectDiscardToTop))
		}},
	CardHeavyBlade: {name: "Heavy Blade", typ: CardTypeAttack, rarity: RarityCommon, cost: costs(2, 2), target: true,
		effects: func(n int) []Effect {
			return effects(Effect{Kind: EffectHeavyBlade, Amount: 14, Scale: up(n, 3, 5)})
		}},
	CardIronWave: {name: "Iron Wave", typ: CardTypeAttack, rarity: RarityCommon, cost: costs(1, 1), target: true,
		effects: func(n int) []Effect { return effects(block(up(n, 5, 7)), attack(up(n, 5, 7))) }},
	CardPommelStrike: {name: "Pommel Strike", typ: CardTypeAttack, rarity: RarityCommon, cost: costs(1, 1), target: true,
		effects: func(n int) []Effect { return effects(attack(up(n, 9, 10)), draw(up(n, 1, 2))) }},
	CardShrugItOff: {name: "Shrug It Off", typ: CardTypeSkill, rarity: RarityCommon, cost: costs(1, 1),
		effects: func(n int) []Effect { return effects(block(up(n, 8, 11)), draw(1)) }},
	CardSwordBoomerang: {name: "Sword Boomerang", typ: CardTypeAttack, rarity: RarityCommon, cost: costs(1, 1),
		effects: func(n int) []Effect {
			return effects(Effect{Kind: EffectAttackRandom, Amount: 3, Hits: up(n, 3, 4)})
		}},
	CardThunderclap: {name: "Thunderclap", typ: CardTypeAttack, rarity: RarityCommon, cost: costs(1, 1),
		effects: func(n int) []Effect {
			return effects(attackAll(up(n, 4, 7)), debuffAll(StatusVulnerable, 1))
		}},
	CardTrueGrit: {name: "True Grit", typ: CardTypeSkill, rarity: RarityCommon, cost: costs(1, 1),
		effects: func(n int) []Effect {
			if n > 0 {
				return effects(block(9), selectCard(SelectExhaust))
			}
			return effects(block(7), Effect{Kind: EffectExhaustRandom})
		}},
	CardTwinStrike: {name: "Twin Strike", typ: CardTypeAttack, rarity: RarityCommon, cost: costs(1, 1), target: true,
		effects: func(n int) []Effect { return effects(multiAttack(up(n, 5, 7), 2)) }},
	CardWarcry: {name: "Warcry", typ: CardTypeSkill, rarity: RarityCommon, cost: costs(0, 0),
		effects: func(n int) []Effect {
			return effects(draw(up(n, 1, 2)), selectCard(SelectHandToTop), markExhaust())
		}},
	CardWildStrike: {name: "Wild Strike", typ: CardTypeAttack, rarity: RarityCommon, cost: costs(1, 1), target: true,
		effects: func(n int) []Effect {
			return effects(attack(up(n, 12, 17)), Effect{Kind: EffectShuffleIntoDraw, Card: CardWound, Count: 1})
		}},

	// Uncommons.
	CardBattleTrance: {name: "Battle Trance", typ: CardTypeSkill, rarity: RarityUncommon, cost: costs(0, 0),
		effects: func(n int) []Effect { return effects(draw(up(n, 3, 4))) }},
	CardBloodForBlood: {name: "Blood for Blood", typ: CardTypeAttack, rarity: RarityUncommon, target: true,
		cost:    [2]Cost{{Kind: CostHPLoss, Amount: 4}, {Kind: CostHPLoss, Amount: 3}},
		effects: func(n int) []Effect { return effects(attack(up(n, 18, 22))) }},
	CardBloodletting: {name: "Bloodletting", typ: CardTypeSkill, rarity: RarityUncommon, cost: costs(0, 0),
		effects: func(n int) []Effect { return effects(loseHP(3), energy(up(n, 2, 3))) }},
	CardBurningPact: {name: "Burning Pact", typ: CardTypeSkill, rarity: RarityUncommon, cost: costs(1, 1),
		effects: func(n int) []Effect { return effects(selectCard(SelectExhaust), draw(up(n, 2, 3))) }},
	CardCarnage: {name: "Carnage", typ: CardTypeAttack, rarity: RarityUncommon, cost: costs(2, 2), target: true, ethereal: true,
		effects: func(n int) []Effect { return effects(attack(up(n, 20, 28))) }},
	CardDarkEmbrace: {name: "Dark Embrace", typ: CardTypePower, rarity: RarityUncommon, cost: costs(2, 1),
		effects: func(int) []Effect { return effects(buff(StatusDarkEmbrace, 1)) }},
	CardDisarm: {name: "Disarm", typ: CardTypeSkill, rarity: RarityUncommon, cost: costs(1, 1), target: true,
		effects: func(n int) []Effect { return effects(debuff(StatusStrength, -up(n, 2, 3)), markExhaust()) }},
	CardDualWield: {name: "Dual Wield", typ: CardTypeSkill, rarity: RarityUncommon, cost: costs(1, 1),
		effects: func(n int) []Effect {
			return effects(Effect{Kind: EffectSelect, Select: SelectDualWield, Count: up(n, 1, 2)})
		}},
	CardEntrench: {name: "Entrench", typ: CardTypeSkill, rarity: RarityUncommon, cost: costs(2, 1),
		effects: func(int) []Effect { return effects(Effect{Kind: EffectDoubleBlock}) }},
	CardFeelNoPain: {name: "Feel No Pain", typ: CardTypePower, rarity: RarityUncommon, cost: costs(1, 1),
		effects: func(n int) []Effect { return effects(buff(StatusFeelNoPain, up(n, 3, 4))) }},
	CardFireBreathing: {name: "Fire Breathing", typ: CardTypePower, rarity: RarityUncommon, cost: costs(1, 1),
		effects: func(n int) []Effect { return effects(buff(StatusFireBreathing, up(n, 6, 10))) }},
	CardGhostlyArmor: {name: "Ghostly Armor", typ: CardTypeSkill, rarity: RarityUncommon, cost: costs(1, 1), ethereal: true,
		effects: func(n int) []Effect { return effects(block(up(n, 10, 13))) }},
	CardHemokinesis: {name: "Hemokinesis", typ: CardTypeAttack, rarity: RarityUncommon, cost: costs(1, 1), target: true,
		effects: func(n int) []Effect { return effects(loseHP(2), attack(up(n, 15, 20))) }},
	CardInflame: {name: "Inflame", typ: CardTypePower, rarity: RarityUncommon, cost: costs(1, 1),
		effects: func(n int) []Effect { return effects(buff(StatusStrength, up(n, 2, 3))) }},
	CardIntimidate: {name: "Intimidate", typ: CardTypeSkill, rarity: RarityUncommon, cost: costs(0, 0),
		effects: func(n int) []Effect { return effects(debuffAll(StatusWeak, up(n, 1, 2)), markExhaust()) }},
	CardMetallicize: {name: "Metallicize", typ: CardTypePower, rarity: RarityUncommon, cost: costs(1, 1),
		effects: func(n int) []Effect { return effects(buff(StatusMetallicize, up(n, 3, 4))) }},
	CardPowerThrough: {name: "Power Through", typ: CardTypeSkill, rarity: RarityUncommon, cost: costs(1, 1),
		effects: func(n int) []Effect {
			return effects(Effect{Kind: EffectAddToHand, Card: CardWound, Count: 2}, block(up(n, 15, 20)))
		}},
	CardPummel: {name: "Pummel", typ: CardTypeAttack, rarity: RarityUncommon, cost: costs(1, 1), target: true,
		effects: func(n int) []Effect { return effects(multiAttack(2, up(n, 4, 5)), markExhaust()) }},
	CardRage: {name: "Rage", typ: CardTypeSkill, rarity: RarityUncommon, cost: costs(0, 0),
		effects: func(n int) []Effect { return effects(buff(StatusRage, up(n, 3, 5))) }},
	CardRampage: {name: "Rampage", typ: CardTypeAttack, rarity: RarityUncommon, cost: costs(1, 1), target: true,
		effects: func(n int) []Effect {
			return effects(Effect{Kind: EffectAttackBonus, Amount: 8}, Effect{Kind: EffectGrowBonus, Amount: up(n, 5, 8)})
		}},
	CardSearingBlow: {name: "Searing Blow", typ: CardTypeAttack, rarity: RarityUncommon, cost: costs(2, 2), target: true, unlimited: true,
		effects: func(n int) []Effect { return effects(attack(12 + n*(n+7)/2)) }},
	CardSeeingRed: {name: "Seeing Red", typ: CardTypeSkill, rarity: RarityUncommon, cost: costs(1, 0),
		effects: func(int) []Effect { return effects(energy(2), markExhaust()) }},
	CardShockwave: {name: "Shockwave", typ: CardTypeSkill, rarity: RarityUncommon, cost: costs(2, 2),
		effects: func(n int) []Effect {
			return effects(debuffAll(StatusWeak, up(n, 3, 5)), debuffAll(StatusVulnerable, up(n, 3, 5)), markExhaust())
		}},
	CardUppercut: {name: "Uppercut", typ: CardTypeAttack, rarity: RarityUncommon, cost: costs(2, 2), target: true,
		effects: func(n int) []Effect {
			return effects(attack(13), debuff(StatusWeak, up(n, 1, 2)), debuff(StatusVulnerable, up(n, 1, 2)))
		}},
	CardEnlightenment: {name: "Enlightenment", typ: CardTypeSkill, rarity: RarityUncommon, cost: costs(0, 0),
		effects: func(n int) []Effect {
			if n > 0 {
				return effects(Effect{Kind: EffectSetHandCost, Amount: 1}, draw(1))
			}
			return effects(Effect{Kind: EffectSetHandCost, Amount: 1})
		}},
	CardWhirlwind: {name: "Whirlwind", typ: CardTypeAttack, rarity: RarityUncommon, cost: costX,
		effects: func(n int) []Effect { return effects(Effect{Kind: EffectAttackX, Amount: up(n, 5, 8)}) }},

	// Rares.
	CardBarricade: {name: "Barricade", typ: CardTypePower, rarity: RarityRare, cost: costs(3, 2),
		effects: func(int) []Effect { return effects(buff(StatusBarricade, 1)) }},
	CardBludgeon: {name: "Bludgeon", typ: CardTypeAttack, rarity: RarityRare, cost: costs(3, 3), target: true,
		effects: func(n int) []Effect { return effects(attack(up(n, 32, 42))) }},
	CardDemonForm: {name: "Demon Form", typ: CardTypePower, rarity: RarityRare, cost: costs(3, 3),
		effects: func(n int) []Effect { return effects(buff(StatusDemonForm, up(n, 2, 3))) }},
	CardDoubleTap: {name: "Double Tap", typ: CardTypeSkill, rarity: RarityRare, cost: costs(1, 1),
		effects: func(n int) []Effect { return effects(buff(StatusDoubleTap, up(n, 1, 2))) }},
	CardExhume: {name: "Exhume", typ: CardTypeSkill, rarity: RarityRare, cost: costs(1, 0),
		effects: func(int) []Effect { return effects(selectCard(SelectExhume), markExhaust()) }},
	CardImmolate: {name: "Immolate", typ: CardTypeAttack, rarity: RarityRare, cost: costs(2, 2),
		effects: func(n int) []Effect {
			return effects(attackAll(up(n, 21, 28)), Effect{Kind: EffectAddToDiscard, Card: CardBurn, Count: 1})
		}},
	CardImpervious: {name: "Impervious", typ: CardTypeSkill, rarity: RarityRare, cost: costs(2, 2),
		effects: func(n int) []Effect { return effects(block(up(n, 30, 40)), markExhaust()) }},
	CardLimitBreak: {name: "Limit Break", typ: CardTypeSkill, rarity: RarityRare, cost: costs(1, 1),
		effects: func(n int) []Effect {
			if n > 0 {
				return effects(Effect{Kind: EffectDoubleStrength})
			}
			return effects(Effect{Kind: EffectDoubleStrength}, markExhaust())
		}},
	CardOffering: {name: "Offering", typ: CardTypeSkill, rarity: RarityRare, cost: costs(0, 0),
		effects: func(n int) []Effect { return effects(loseHP(6), energy(2), draw(up(n, 3, 5)), markExhaust()) }},

	// Statuses and curses.
	CardWound: {name: "Wound", typ: CardTypeStatus, rarity: RaritySpecial, cost: unplayable,
		effects: func(int) []Effect { return nil }},
	CardDazed: {name: "Dazed", typ: CardTypeStatus, rarity: RaritySpecial, cost: unplayable, ethereal: true,
		effects: func(int) []Effect { return nil }},
	CardSlimed: {name: "Slimed", typ: CardTypeStatus, rarity: RaritySpecial, cost: costs(1, 1),
		effects: func(int) []Effect { return effects(markExhaust()) }},
	CardBurn: {name: "Burn", typ: CardTypeStatus, rarity: RaritySpecial, cost: unplayable, burn: [2]int{2, 4},
		effects: func(int) []Effect { return nil }},
	CardInjury: {name: "Injury", typ: CardTypeCurse, rarity: RaritySpecial, cost: unplayable,
		effects: func(int) []Effect { return nil }},
	CardDecay: {name: "Decay", typ: CardTypeCurse, rarity: RaritySpecial, cost: unplayable, burn: [2]int{2, 2},
		effects: func(int) []Effect { return nil }},
}
