package game

type Rarity uint8

const (
	RarityCommon Rarity = iota
	RarityUncommon
	RarityRare
)

func (r Rarity) String() string {
	switch r {
	case RarityCommon:
		return "common"
	case RarityUncommon:
		return "uncommon"
	case RarityRare:
		return "rare"
	}
	return "unknown"
}

type JokerKind uint8

const (
	JokerPlain JokerKind = iota
	JokerGreedy
	JokerLusty
	JokerWrathful
	JokerGluttonous
	JokerJolly
	JokerSly
	JokerCrazy
	JokerCrafty
	JokerBanner
	JokerMysticSummit
	JokerGreen
	JokerRideTheBus
	JokerFourFingers
	JokerShortcut
	JokerSmeared
	JokerSplash
	JokerPareidolia
	JokerHack
	JokerSockAndBuskin
	JokerDusk
	JokerSeltzer
	JokerGolden
	JokerCreditCard
	JokerTurtleBean
	JokerTheDuo
	JokerCavendish
	JokerAbstract
	JokerSupernova
	JokerMisprint
	JokerIceCream
	JokerToDoList
	JokerTheIdol
	JokerAncient
	JokerMailRebate
	JokerHitTheRoad
	JokerFaceless
	JokerDietCola
	JokerMarble
	JokerSpareTrousers
)

type jokerInfo struct {
	name   string
	desc   string
	cost   int
	rarity Rarity
}

var jokerCatalog = map[JokerKind]jokerInfo{
	JokerPlain:         {"Joker", "+4 Mult", 2, RarityCommon},
	JokerGreedy:        {"Greedy Joker", "+3 Mult per scored Diamond", 5, RarityCommon},
	JokerLusty:         {"Lusty Joker", "+3 Mult per scored Heart", 5, RarityCommon},
	JokerWrathful:      {"Wrathful Joker", "+3 Mult per scored Spade", 5, RarityCommon},
	JokerGluttonous:    {"Gluttonous Joker", "+3 Mult per scored Club", 5, RarityCommon},
	JokerJolly:         {"Jolly Joker", "+8 Mult if the hand contains a Pair", 3, RarityCommon},
	JokerSly:           {"Sly Joker", "+50 Chips if the hand contains a Pair", 3, RarityCommon},
	JokerCrazy:         {"Crazy Joker", "+12 Mult if the hand contains a Straight", 4, RarityCommon},
	JokerCrafty:        {"Crafty Joker", "+80 Chips if the hand contains a Flush", 4, RarityCommon},
	JokerBanner:        {"Banner", "+30 Chips per remaining discard", 5, RarityCommon},
	JokerMysticSummit:  {"Mystic Summit", "+15 Mult when no discards remain", 5, RarityCommon},
	JokerGreen:         {"Green Joker", "+1 Mult per hand played, -1 per discard", 4, RarityCommon},
	JokerRideTheBus:    {"Ride the Bus", "+1 Mult per consecutive hand without a face card", 6, RarityCommon},
	JokerFourFingers:   {"Four Fingers", "Flushes and Straights need only 4 cards", 7, RarityUncommon},
	JokerShortcut:      {"Shortcut", "Straights may skip one rank", 7, RarityUncommon},
	JokerSmeared:       {"Smeared Joker", "Hearts and Diamonds count as one suit, Spades and Clubs as another", 7, RarityUncommon},
	JokerSplash:        {"Splash", "Every played card counts in scoring", 3, RarityCommon},
	JokerPareidolia:    {"Pareidolia", "Every card counts as a face card", 5, RarityUncommon},
	JokerHack:          {"Hack", "Retrigger each scored 2, 3, 4 or 5", 6, RarityUncommon},
	JokerSockAndBuskin: {"Sock and Buskin", "Retrigger every scored face card", 6, RarityUncommon},
	JokerDusk:          {"Dusk", "Retrigger every scored card on the final hand of the blind", 5, RarityUncommon},
	JokerSeltzer:       {"Seltzer", "Retrigger every scored card for the next 10 hands", 6, RarityUncommon},
	JokerGolden:        {"Golden Joker", "Earn $4 at the end of every round", 6, RarityCommon},
	JokerCreditCard:    {"Credit Card", "Go up to $20 in debt", 1, RarityCommon},
	JokerTurtleBean:    {"Turtle Bean", "+5 hand size, shrinking by 1 every round", 6, RarityUncommon},
	JokerTheDuo:        {"The Duo", "x2 Mult if the hand contains a Pair", 8, RarityRare},
	JokerCavendish:     {"Cavendish", "x3 Mult", 4, RarityCommon},
	JokerAbstract:      {"Abstract Joker", "+3 Mult per Joker owned", 4, RarityCommon},
	JokerSupernova:     {"Supernova", "Adds the times this hand type has been played this run to Mult", 5, RarityCommon},
	JokerMisprint:      {"Misprint", "+0 to +23 Mult", 4, RarityCommon},
	JokerIceCream:      {"Ice Cream", "+100 Chips, melting by 5 every hand played", 5, RarityCommon},
	JokerToDoList:      {"To Do List", "Earn $4 when the listed hand type is played", 4, RarityCommon},
	JokerTheIdol:       {"The Idol", "x2 Mult per scored card matching the idol card", 6, RarityUncommon},
	JokerAncient:       {"Ancient Joker", "x1.5 Mult per scored card of the ancient suit", 8, RarityRare},
	JokerMailRebate:    {"Mail-In Rebate", "Earn $5 per discarded card of the rebate rank", 4, RarityCommon},
	JokerHitTheRoad:    {"Hit the Road", "x0.5 extra Mult per Jack discarded this round", 8, RarityRare},
	JokerFaceless:      {"Faceless Joker", "Earn $5 when 3 or more face cards are discarded together", 4, RarityCommon},
	JokerDietCola:      {"Diet Cola", "Sell to gain a Double tag", 6, RarityUncommon},
	JokerMarble:        {"Marble Joker", "Adds a Stone card to the deck when a blind is selected", 6, RarityUncommon},
	JokerSpareTrousers: {"Spare Trousers", "+2 Mult permanently when the hand contains Two Pair", 6, RarityUncommon},
}

// Joker is one owned instance of a catalog variant. Kind-specific mutable
// state is plain data on the struct (counter, remaining rounds); effect
// closures read it through the instance, mutation happens through the
// lifecycle hooks the state machine calls directly.
type Joker struct {
	ID         uint64    `json:"id"`
	Kind       JokerKind `json:"kind"`
	Counter    int       `json:"counter,omitempty"`
	RoundsLeft int       `json:"roundsLeft,omitempty"`
}

func NewJoker(kind JokerKind, id uint64) *Joker {
	j := &Joker{ID: id, Kind: kind}
	switch kind {
	case JokerIceCream:
		j.Counter = 100
	case JokerTurtleBean:
		j.Counter = 5
	case JokerSeltzer:
		j.RoundsLeft = 10
	}
	return j
}

func AllJokerKinds() []JokerKind {
	kinds := make([]JokerKind, 0, len(jokerCatalog))
	for k := JokerPlain; int(k) < len(jokerCatalog); k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

func (j *Joker) Name() string        { return jokerCatalog[j.Kind].name }
func (j *Joker) Description() string { return jokerCatalog[j.Kind].desc }
func (j *Joker) Cost() int           { return jokerCatalog[j.Kind].cost }
func (j *Joker) Rarity() Rarity      { return jokerCatalog[j.Kind].rarity }

func (j *Joker) SellValue() int {
	v := j.Cost() / 2
	if v < 1 {
		v = 1
	}
	return v
}

// applyModifiers contributes this joker's rule changes to the aggregate
// snapshot. Keep these pure: the snapshot must stay reconstructable from the
// joker list alone.
func (j *Joker) applyModifiers(mods *GameModifiers) {
	switch j.Kind {
	case JokerFourFingers:
		mods.FourCardHands = true
	case JokerShortcut:
		mods.GapStraights = true
	case JokerSmeared:
		mods.SmearedSuits = true
	case JokerSplash:
		mods.AllScore = true
	case JokerPareidolia:
		mods.AllFaces = true
	case JokerCreditCard:
		mods.DebtCeiling += 20
	case JokerTurtleBean:
		mods.HandSizeDelta += j.Counter
	}
}

// effects returns the (trigger, callback) pairs this joker contributes.
// Callbacks close over the joker instance and otherwise read live game state;
// nothing volatile is captured at registration time.
func (j *Joker) effects(g *Game) []Effect {
	switch j.Kind {
	case JokerPlain:
		return []Effect{onScore(func(g *Game, _ *MadeHand) { g.Mult += 4 })}
	case JokerGreedy:
		return []Effect{perScoredSuit(Diamonds, 3)}
	case JokerLusty:
		return []Effect{perScoredSuit(Hearts, 3)}
	case JokerWrathful:
		return []Effect{perScoredSuit(Spades, 3)}
	case JokerGluttonous:
		return []Effect{perScoredSuit(Clubs, 3)}
	case JokerJolly:
		return []Effect{onScore(func(g *Game, hand *MadeHand) {
			if rankContainsPair(hand.Rank) {
				g.Mult += 8
			}
		})}
	case JokerSly:
		return []Effect{onScore(func(g *Game, hand *MadeHand) {
			if rankContainsPair(hand.Rank) {
				g.Chips += 50
			}
		})}
	case JokerCrazy:
		return []Effect{onScore(func(g *Game, hand *MadeHand) {
			if rankContainsStraight(hand.Rank) {
				g.Mult += 12
			}
		})}
	case JokerCrafty:
		return []Effect{onScore(func(g *Game, hand *MadeHand) {
			if rankContainsFlush(hand.Rank) {
				g.Chips += 80
			}
		})}
	case JokerBanner:
		return []Effect{onScore(func(g *Game, _ *MadeHand) {
			g.Chips += 30 * g.Discards
		})}
	case JokerMysticSummit:
		return []Effect{onScore(func(g *Game, _ *MadeHand) {
			if g.Discards == 0 {
				g.Mult += 15
			}
		})}
	case JokerGreen:
		return []Effect{onScore(func(g *Game, _ *MadeHand) {
			if j.Counter > 0 {
				g.Mult += j.Counter
			}
		})}
	case JokerRideTheBus:
		return []Effect{onScore(func(g *Game, _ *MadeHand) {
			g.Mult += j.Counter
		})}
	case JokerTheDuo:
		return []Effect{onScore(func(g *Game, hand *MadeHand) {
			if rankContainsPair(hand.Rank) {
				g.scoreMultiplier *= 2.0
			}
		})}
	case JokerCavendish:
		return []Effect{onScore(func(g *Game, _ *MadeHand) {
			g.scoreMultiplier *= 3.0
		})}
	case JokerAbstract:
		return []Effect{onScore(func(g *Game, _ *MadeHand) {
			g.Mult += 3 * len(g.Jokers)
		})}
	case JokerSupernova:
		return []Effect{onScore(func(g *Game, hand *MadeHand) {
			g.Mult += g.HandPlayCounts[hand.Rank]
		})}
	case JokerMisprint:
		return []Effect{onScore(func(g *Game, _ *MadeHand) {
			g.Mult += g.rng.Intn(24)
		})}
	case JokerIceCream:
		return []Effect{onScore(func(g *Game, _ *MadeHand) {
			if j.Counter > 0 {
				g.Chips += j.Counter
			}
		})}
	case JokerToDoList:
		return []Effect{onScore(func(g *Game, hand *MadeHand) {
			if hand.Rank == g.Round.ToDoHand {
				g.addMoney(4)
			}
		})}
	case JokerTheIdol:
		return []Effect{onScore(func(g *Game, hand *MadeHand) {
			for _, c := range hand.Scoring {
				if c.Rank == g.Round.IdolRank && c.HasSuit(g.Round.IdolSuit) {
					g.scoreMultiplier *= 2.0
				}
			}
		})}
	case JokerAncient:
		return []Effect{onScore(func(g *Game, hand *MadeHand) {
			for _, c := range hand.Scoring {
				if c.HasSuit(g.Round.AncientSuit) {
					g.scoreMultiplier *= 1.5
				}
			}
		})}
	case JokerHitTheRoad:
		return []Effect{onScore(func(g *Game, _ *MadeHand) {
			if g.Round.JacksDiscarded > 0 {
				g.scoreMultiplier *= 1.0 + 0.5*float64(g.Round.JacksDiscarded)
			}
		})}
	case JokerSpareTrousers:
		return []Effect{
			{Trigger: OnPlay, Fn: func(g *Game, hand *MadeHand) {
				if hand != nil && rankContainsTwoPair(hand.Rank) {
					j.Counter += 2
				}
			}},
			onScore(func(g *Game, _ *MadeHand) { g.Mult += j.Counter }),
		}
	case JokerMailRebate:
		return []Effect{{Trigger: OnDiscard, Fn: func(g *Game, _ *MadeHand) {
			for _, c := range g.LastDiscarded {
				if c.Rank == g.Round.MailRank {
					g.addMoney(5)
				}
			}
		}}}
	case JokerFaceless:
		return []Effect{{Trigger: OnDiscard, Fn: func(g *Game, _ *MadeHand) {
			faces := 0
			for _, c := range g.LastDiscarded {
				if c.IsFace(g.Modifiers) {
					faces++
				}
			}
			if faces >= 3 {
				g.addMoney(5)
			}
		}}}
	case JokerGolden:
		return []Effect{{Trigger: OnRoundEnd, Fn: func(g *Game, _ *MadeHand) {
			g.addMoney(4)
		}}}
	case JokerDietCola:
		return []Effect{{Trigger: OnSell, Fn: func(g *Game, _ *MadeHand) {
			g.AddTag(TagDouble)
		}}}
	case JokerMarble:
		return []Effect{{Trigger: OnBlindSelect, Fn: func(g *Game, _ *MadeHand) {
			g.createCard(Card{
				Rank:        allRanks[g.rng.Intn(len(allRanks))],
				Suit:        allSuits[g.rng.Intn(len(allSuits))],
				Enhancement: EnhanceStone,
			})
		}}}
	}
	return nil
}

func onScore(fn EffectFn) Effect {
	return Effect{Trigger: OnScore, Fn: fn}
}

func perScoredSuit(suit Suit, mult int) Effect {
	return onScore(func(g *Game, hand *MadeHand) {
		for _, c := range hand.Scoring {
			if g.debuffed(c) {
				continue
			}
			if c.HasSuit(suit) {
				g.Mult += mult
			}
		}
	})
}

// retriggersFor is the joker's extra trigger grant for a scored card.
// Summed across jokers by the scoring pipeline.
func (j *Joker) retriggersFor(c Card, g *Game) int {
	switch j.Kind {
	case JokerHack:
		if c.Rank >= Two && c.Rank <= Five {
			return 1
		}
	case JokerSockAndBuskin:
		if c.IsFace(g.Modifiers) {
			return 1
		}
	case JokerDusk:
		if g.Plays == 0 {
			return 1
		}
	case JokerSeltzer:
		if j.RoundsLeft > 0 {
			return 1
		}
	}
	return 0
}

// onHandPlayed advances kind-specific counters after a hand is scored.
// Called directly by the state machine, never through the effect registry,
// so the mutation is not subject to registration staleness.
func (j *Joker) onHandPlayed(g *Game, hand *MadeHand) {
	switch j.Kind {
	case JokerGreen:
		j.Counter++
	case JokerIceCream:
		j.Counter -= 5
		if j.Counter < 0 {
			j.Counter = 0
		}
	case JokerSeltzer:
		if j.RoundsLeft > 0 {
			j.RoundsLeft--
		}
	case JokerRideTheBus:
		hasFace := false
		for _, c := range hand.Scoring {
			if c.IsFace(g.Modifiers) {
				hasFace = true
				break
			}
		}
		if hasFace {
			j.Counter = 0
		} else {
			j.Counter++
		}
	}
}

// onDiscardUsed advances kind-specific counters after a discard action.
func (j *Joker) onDiscardUsed(g *Game, discarded []Card) {
	switch j.Kind {
	case JokerGreen:
		if j.Counter > 0 {
			j.Counter--
		}
	}
}

// onRoundEnded decays per-round joker state.
func (j *Joker) onRoundEnded() {
	switch j.Kind {
	case JokerTurtleBean:
		if j.Counter > 0 {
			j.Counter--
		}
	}
}

func rankContainsPair(r HandRank) bool {
	switch r {
	case OnePair, TwoPair, ThreeOfAKind, FullHouse, FourOfAKind,
		FiveOfAKind, FlushHouse, FlushFive:
		return true
	}
	return false
}

func rankContainsTwoPair(r HandRank) bool {
	switch r {
	case TwoPair, FullHouse, FourOfAKind, FiveOfAKind, FlushHouse, FlushFive:
		return true
	}
	return false
}

func rankContainsFlush(r HandRank) bool {
	switch r {
	case Flush, StraightFlush, RoyalFlush, FlushHouse, FlushFive:
		return true
	}
	return false
}

func rankContainsStraight(r HandRank) bool {
	switch r {
	case Straight, StraightFlush, RoyalFlush:
		return true
	}
	return false
}
