package game

import "testing"

func withJokers(t *testing.T, kinds ...JokerKind) *Game {
	t.Helper()
	g := newBlindGame(t)
	for _, kind := range kinds {
		g.addJoker(NewJoker(kind, g.nextID()))
	}
	return g
}

func TestPlainJoker(t *testing.T) {
	g := withJokers(t, JokerPlain)
	// Pair (10+10+10) * (2+4).
	if got := scoreCodes(t, g, "Kd", "Kh", "Ah"); got != 180 {
		t.Fatalf("expected 180, got %d", got)
	}
}

func TestSuitJokers(t *testing.T) {
	g := withJokers(t, JokerGreedy)
	// Two diamonds score: (10+10+10) * (2+3+3).
	if got := scoreCodes(t, g, "Kd", "Kd", "Ah"); got != 240 {
		t.Fatalf("greedy with two diamonds: expected 240, got %d", got)
	}

	g = withJokers(t, JokerWrathful)
	// No spades score in a diamond pair.
	if got := scoreCodes(t, g, "Kd", "Kd", "Ah"); got != 60 {
		t.Fatalf("wrathful without spades: expected 60, got %d", got)
	}
}

func TestConditionalJokers(t *testing.T) {
	g := withJokers(t, JokerJolly, JokerSly)
	// Pair: chips 10+20+30+50, mult 2+8.
	if got := scoreCodes(t, g, "Kd", "Kh", "Ah"); got != 800 {
		t.Fatalf("jolly+sly pair: expected 800, got %d", got)
	}
	// High card trips neither bonus: (5+11) * 1.
	if got := scoreCodes(t, g, "Ah", "Kd", "Jc"); got != 16 {
		t.Fatalf("jolly+sly high card: expected 16, got %d", got)
	}
}

func TestCrazyJokerStraight(t *testing.T) {
	g := withJokers(t, JokerCrazy)
	// Straight: (30+5+6+7+8+9) * (4+12).
	if got := scoreCodes(t, g, "5c", "6d", "7h", "8s", "9c"); got != 1040 {
		t.Fatalf("crazy joker straight: expected 1040, got %d", got)
	}
	// No bonus without a straight.
	if got := scoreCodes(t, g, "Ah", "Kd", "Jc"); got != 16 {
		t.Fatalf("crazy joker high card: expected 16, got %d", got)
	}
}

func TestBannerAndMysticSummit(t *testing.T) {
	g := withJokers(t, JokerBanner)
	g.Discards = 2
	// Pair: (10+20+60) * 2.
	if got := scoreCodes(t, g, "Kd", "Kh", "Ah"); got != 180 {
		t.Fatalf("banner with 2 discards: expected 180, got %d", got)
	}

	g = withJokers(t, JokerMysticSummit)
	g.Discards = 0
	// Pair: 30 * (2+15).
	if got := scoreCodes(t, g, "Kd", "Kh", "Ah"); got != 510 {
		t.Fatalf("mystic summit with 0 discards: expected 510, got %d", got)
	}
}

func TestTheDuoMultiplies(t *testing.T) {
	g := withJokers(t, JokerTheDuo)
	// Pair: 60 x2.
	if got := scoreCodes(t, g, "Kd", "Kh", "Ah"); got != 120 {
		t.Fatalf("the duo pair: expected 120, got %d", got)
	}
	if got := scoreCodes(t, g, "Ah", "Kd", "Jc"); got != 16 {
		t.Fatalf("the duo high card: expected 16, got %d", got)
	}
}

func TestAbstractScalesWithJokers(t *testing.T) {
	g := withJokers(t, JokerAbstract, JokerPlain, JokerPlain)
	// Pair: 30 * (2+9+4+4).
	if got := scoreCodes(t, g, "Kd", "Kh", "Ah"); got != 570 {
		t.Fatalf("abstract with 3 jokers: expected 570, got %d", got)
	}
}

func TestSupernovaCountsHandType(t *testing.T) {
	g := withJokers(t, JokerSupernova)
	g.HandPlayCounts[OnePair] = 3
	// Pair: 30 * (2+3).
	if got := scoreCodes(t, g, "Kd", "Kh", "Ah"); got != 150 {
		t.Fatalf("supernova: expected 150, got %d", got)
	}
}

func TestGreenJokerCounter(t *testing.T) {
	g := withJokers(t, JokerGreen)
	j := g.Jokers[0]

	j.onHandPlayed(g, nil)
	j.onHandPlayed(g, nil)
	if j.Counter != 2 {
		t.Fatalf("green joker should count hands, got %d", j.Counter)
	}
	j.onDiscardUsed(g, nil)
	if j.Counter != 1 {
		t.Fatalf("discard should decrement, got %d", j.Counter)
	}
	// Pair: 30 * (2+1).
	if got := scoreCodes(t, g, "Kd", "Kh", "Ah"); got != 90 {
		t.Fatalf("green joker at +1: expected 90, got %d", got)
	}
}

func TestIceCreamMelts(t *testing.T) {
	g := withJokers(t, JokerIceCream)
	j := g.Jokers[0]
	// Pair: (30+100) * 2.
	if got := scoreCodes(t, g, "Kd", "Kh", "Ah"); got != 260 {
		t.Fatalf("fresh ice cream: expected 260, got %d", got)
	}
	for i := 0; i < 25; i++ {
		j.onHandPlayed(g, &MadeHand{})
	}
	if j.Counter != 0 {
		t.Fatalf("melted ice cream should floor at 0, got %d", j.Counter)
	}
	if got := scoreCodes(t, g, "Kd", "Kh", "Ah"); got != 60 {
		t.Fatalf("melted ice cream adds nothing: expected 60, got %d", got)
	}
}

func TestRideTheBusResetsOnFace(t *testing.T) {
	g := withJokers(t, JokerRideTheBus)
	j := g.Jokers[0]

	noFace := MadeHand{Rank: HighCard, Scoring: cards(t, "9d")}
	j.onHandPlayed(g, &noFace)
	j.onHandPlayed(g, &noFace)
	if j.Counter != 2 {
		t.Fatalf("expected counter 2, got %d", j.Counter)
	}

	face := MadeHand{Rank: HighCard, Scoring: cards(t, "Kd")}
	j.onHandPlayed(g, &face)
	if j.Counter != 0 {
		t.Fatalf("face card should reset the counter, got %d", j.Counter)
	}
}

func TestHackRetriggersLowCards(t *testing.T) {
	g := withJokers(t, JokerHack)
	// Pair of threes scores twice each: (10 + 3+3 + 3+3) * 2.
	if got := scoreCodes(t, g, "3d", "3h", "Ah"); got != 44 {
		t.Fatalf("hack pair of threes: expected 44, got %d", got)
	}
}

func TestSockAndBuskinRetriggersFaces(t *testing.T) {
	g := withJokers(t, JokerSockAndBuskin)
	// Pair of kings scores twice each: (10+40) * 2.
	if got := scoreCodes(t, g, "Kd", "Kh", "Ah"); got != 100 {
		t.Fatalf("sock and buskin kings: expected 100, got %d", got)
	}
}

func TestPareidoliaMakesFaces(t *testing.T) {
	g := withJokers(t, JokerPareidolia, JokerSockAndBuskin)
	// Pair of threes all faces, retriggered: (10+12) * 2.
	if got := scoreCodes(t, g, "3d", "3h", "Ah"); got != 44 {
		t.Fatalf("pareidolia+sock: expected 44, got %d", got)
	}
}

func TestDuskRetriggersFinalHand(t *testing.T) {
	g := withJokers(t, JokerDusk)
	g.Plays = 0
	if got := scoreCodes(t, g, "Kd", "Kh", "Ah"); got != 100 {
		t.Fatalf("dusk on final hand: expected 100, got %d", got)
	}
	g.Plays = 2
	if got := scoreCodes(t, g, "Kd", "Kh", "Ah"); got != 60 {
		t.Fatalf("dusk with plays left: expected 60, got %d", got)
	}
}

func TestHitTheRoadScalesWithJacks(t *testing.T) {
	g := withJokers(t, JokerHitTheRoad)
	g.Round.JacksDiscarded = 2
	// Pair: 60 x2.
	if got := scoreCodes(t, g, "Kd", "Kh", "Ah"); got != 120 {
		t.Fatalf("hit the road with 2 jacks: expected 120, got %d", got)
	}
}

func TestTheIdolDoublesMatches(t *testing.T) {
	g := withJokers(t, JokerTheIdol)
	g.Round.IdolRank = King
	g.Round.IdolSuit = Diamonds
	// One matching card: 60 x2.
	if got := scoreCodes(t, g, "Kd", "Kh", "Ah"); got != 120 {
		t.Fatalf("the idol: expected 120, got %d", got)
	}
}

func TestToDoListPays(t *testing.T) {
	g := withJokers(t, JokerToDoList)
	g.Round.ToDoHand = OnePair
	before := g.Money
	scoreCodes(t, g, "Kd", "Kh", "Ah")
	if g.Money != before+4 {
		t.Fatalf("to do list should pay $4, got $%d -> $%d", before, g.Money)
	}
}

func TestGoldenJokerRoundEnd(t *testing.T) {
	g := withJokers(t, JokerGolden)
	before := g.Money
	g.endRound()
	if g.Money != before+4 {
		t.Fatalf("golden joker pays $4 per round, got $%d -> $%d", before, g.Money)
	}
}

func TestDietColaGrantsDoubleOnSell(t *testing.T) {
	g := withJokers(t, JokerDietCola)
	if err := g.sellJoker(g.Jokers[0].ID); err != nil {
		t.Fatalf("sell failed: %v", err)
	}
	if len(g.Tags) != 1 || g.Tags[0] != TagDouble {
		t.Fatalf("diet cola should leave a double tag, got %v", g.Tags)
	}
}

func TestMarbleAddsStoneCard(t *testing.T) {
	g := NewGame(DefaultConfig(), 11, DeckStandard)
	g.addJoker(NewJoker(JokerMarble, g.nextID()))

	blind := BlindSmall
	if err := g.HandleAction(Action{Kind: ActionSelectBlind, Blind: &blind}); err != nil {
		t.Fatalf("select blind failed: %v", err)
	}
	if g.CardsCreated != 1 {
		t.Fatalf("marble should add one card, got %d", g.CardsCreated)
	}
	stones := 0
	for _, pool := range [][]Card{g.Deck, g.Available} {
		for _, c := range pool {
			if c.Enhancement == EnhanceStone {
				stones++
			}
		}
	}
	if stones != 1 {
		t.Fatalf("expected one stone card in play, got %d", stones)
	}
}

func TestTurtleBeanShrinks(t *testing.T) {
	g := withJokers(t, JokerTurtleBean)
	if g.handSize() != 13 {
		t.Fatalf("turtle bean should grant +5 hand size, got %d", g.handSize())
	}
	g.Jokers[0].onRoundEnded()
	g.recomputeModifiers()
	if g.handSize() != 12 {
		t.Fatalf("turtle bean should shrink each round, got %d", g.handSize())
	}
}

func TestSpareTrousersGrows(t *testing.T) {
	g := withJokers(t, JokerSpareTrousers)
	hand := MadeHand{Rank: TwoPair}
	g.effects.fire(OnPlay, g, &hand)
	g.effects.fire(OnPlay, g, &hand)
	if g.Jokers[0].Counter != 4 {
		t.Fatalf("two pair twice should bank +4 mult, got %d", g.Jokers[0].Counter)
	}
	// Pair: 30 * (2+4).
	if got := scoreCodes(t, g, "Kd", "Kh", "Ah"); got != 180 {
		t.Fatalf("spare trousers at +4: expected 180, got %d", got)
	}
}

func TestMailRebatePaysOnDiscard(t *testing.T) {
	g := withJokers(t, JokerMailRebate)
	g.Round.MailRank = King
	g.LastDiscarded = cards(t, "Kd", "Kh", "2c")
	before := g.Money
	g.effects.fire(OnDiscard, g, nil)
	if g.Money != before+10 {
		t.Fatalf("two kings should pay $10, got $%d -> $%d", before, g.Money)
	}
}

func TestModifierSnapshotRebuilds(t *testing.T) {
	g := withJokers(t, JokerFourFingers, JokerSmeared)
	if !g.Modifiers.FourCardHands || !g.Modifiers.SmearedSuits {
		t.Fatalf("modifiers not applied: %+v", g.Modifiers)
	}

	if err := g.sellJoker(g.Jokers[0].ID); err != nil {
		t.Fatalf("sell failed: %v", err)
	}
	if g.Modifiers.FourCardHands {
		t.Fatalf("selling four fingers should clear the modifier")
	}
	if !g.Modifiers.SmearedSuits {
		t.Fatalf("smeared must survive the rebuild")
	}
}
