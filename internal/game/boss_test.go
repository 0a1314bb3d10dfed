package game

import (
	"errors"
	"testing"

	appErr "jokerdeck/pkg/errors"
)

// startBossBlind enters a boss blind with a pinned modifier instead of a
// random one, mirroring what selectBlind does for the chosen boss.
func startBossBlind(t *testing.T, g *Game, boss BossModifier) {
	t.Helper()
	g.Stage = Stage{Kind: StageBlind, Blind: BlindBoss, Boss: boss}
	g.Score = 0
	g.HandsPlayedThisBlind = 0
	g.BlindHandTypes = make(map[HandRank]bool)
	g.Plays = g.Config().Plays
	if cap, ok := boss.MaxPlays(); ok && g.Plays > cap {
		g.Plays = cap
	}
	g.Discards = g.Config().Discards
	if override, ok := boss.DiscardOverride(); ok {
		g.Discards = override
	}
	g.RequiredScore = g.requiredScoreFor(BlindBoss, boss)
	g.initRoundState()
	g.deal()
}

func TestManacleShrinksHand(t *testing.T) {
	g := NewGame(DefaultConfig(), 3, DeckStandard)
	startBossBlind(t, g, BossTheManacle)
	if g.handSize() != 7 {
		t.Fatalf("the manacle should shrink the hand to 7, got %d", g.handSize())
	}
}

func TestWaterRemovesDiscards(t *testing.T) {
	g := NewGame(DefaultConfig(), 3, DeckStandard)
	g.NextBlind = BlindBoss
	blind := BlindBoss
	if err := g.HandleAction(Action{Kind: ActionSelectBlind, Blind: &blind}); err != nil {
		t.Fatalf("select boss blind failed: %v", err)
	}
	if g.Stage.Boss == BossTheWater && g.Discards != 0 {
		t.Fatalf("the water should zero discards, got %d", g.Discards)
	}
	if g.Stage.Boss == BossTheNeedle && g.Plays != 1 {
		t.Fatalf("the needle should allow one play, got %d", g.Plays)
	}
}

func TestNeedleCapsPlays(t *testing.T) {
	if plays, ok := BossTheNeedle.MaxPlays(); !ok || plays != 1 {
		t.Fatalf("the needle should cap plays at 1, got %d/%v", plays, ok)
	}
	if _, ok := BossTheHook.MaxPlays(); ok {
		t.Fatalf("the hook must not cap plays")
	}
}

func TestMouthRestrictsHandType(t *testing.T) {
	g := NewGame(DefaultConfig(), 3, DeckStandard)
	startBossBlind(t, g, BossTheMouth)
	allowed := OnePair
	g.AllowedHandType = &allowed

	// Select a spread that classifies as high card.
	var picked []uint64
	for _, c := range g.Available {
		if len(picked) == 1 {
			break
		}
		picked = append(picked, c.ID)
	}
	for _, id := range picked {
		mustAction(t, g, Action{Kind: ActionSelectCard, CardID: id})
	}
	err := g.HandleAction(Action{Kind: ActionPlay})
	if !errors.Is(err, appErr.ErrInvalidAction) {
		t.Fatalf("the mouth should reject other hand types, got %v", err)
	}
	if g.Plays != 4 {
		t.Fatalf("rejected play must not consume a play, got %d", g.Plays)
	}
	if len(g.Selected) != 1 {
		t.Fatalf("rejected play must keep the selection, got %v", g.Selected)
	}
}

func TestEyeForbidsRepeats(t *testing.T) {
	g := NewGame(DefaultConfig(), 3, DeckStandard)
	startBossBlind(t, g, BossTheEye)
	g.RequiredScore = 1 << 30
	g.BlindHandTypes[HighCard] = true

	mustAction(t, g, Action{Kind: ActionSelectCard, CardID: g.Available[0].ID})
	err := g.HandleAction(Action{Kind: ActionPlay})
	if !errors.Is(err, appErr.ErrInvalidAction) {
		t.Fatalf("the eye should reject a repeated hand type, got %v", err)
	}
}

func TestSerpentRerollsSelection(t *testing.T) {
	g := NewGame(DefaultConfig(), 3, DeckStandard)
	startBossBlind(t, g, BossTheSerpent)
	g.RequiredScore = 1 << 30

	mustAction(t, g, Action{Kind: ActionSelectCard, CardID: g.Available[0].ID})
	mustAction(t, g, Action{Kind: ActionSelectCard, CardID: g.Available[1].ID})
	mustAction(t, g, Action{Kind: ActionPlay})

	if g.Plays != 3 {
		t.Fatalf("serpent play should still consume a play, got %d", g.Plays)
	}
	if g.TotalHandsPlayed != 1 {
		t.Fatalf("serpent play should score, got %d hands", g.TotalHandsPlayed)
	}
}

func TestHookForcesDiscards(t *testing.T) {
	g := NewGame(DefaultConfig(), 3, DeckStandard)
	startBossBlind(t, g, BossTheHook)
	g.RequiredScore = 1 << 30
	discards := g.Discards

	mustAction(t, g, Action{Kind: ActionSelectCard, CardID: g.Available[0].ID})
	mustAction(t, g, Action{Kind: ActionPlay})

	// One played card plus two forced discards leave the hand.
	if len(g.Discarded) != 3 {
		t.Fatalf("expected 3 cards out of play, got %d", len(g.Discarded))
	}
	if g.Discards != discards {
		t.Fatalf("forced discards must not consume a player discard")
	}
}

func TestTrapShrinksOpeningHand(t *testing.T) {
	g := NewGame(DefaultConfig(), 3, DeckStandard)
	g.NextBlind = BlindBoss
	blind := BlindBoss
	if err := g.HandleAction(Action{Kind: ActionSelectBlind, Blind: &blind}); err != nil {
		t.Fatalf("select boss blind failed: %v", err)
	}
	if g.Stage.Boss == BossTheTrap && len(g.Available) != 5 {
		t.Fatalf("the trap should deal 5 cards, got %d", len(g.Available))
	}
}

func TestHouseFirstCardFaceDown(t *testing.T) {
	if !BossTheHouse.DrawLeftmostFaceDown() {
		t.Fatalf("the house should flip the leftmost draw")
	}
	if size, ok := BossTheTrap.FirstHandSize(); !ok || size != 5 {
		t.Fatalf("the trap first hand should be 5, got %d/%v", size, ok)
	}
}

func TestToothChargesPerScoringCard(t *testing.T) {
	g := NewGame(DefaultConfig(), 3, DeckStandard)
	startBossBlind(t, g, BossTheTooth)
	g.RequiredScore = 1 << 30
	before := g.Money

	// Two off-rank cards classify as a high card: one card scores, so one
	// dollar is charged even though two cards were played.
	first := g.Available[0]
	var second Card
	for _, c := range g.Available[1:] {
		if c.Rank != first.Rank {
			second = c
			break
		}
	}
	if second.ID == 0 {
		t.Fatalf("no off-rank card in the opening hand")
	}

	mustAction(t, g, Action{Kind: ActionSelectCard, CardID: first.ID})
	mustAction(t, g, Action{Kind: ActionSelectCard, CardID: second.ID})
	mustAction(t, g, Action{Kind: ActionPlay})

	if g.Money != before-1 {
		t.Fatalf("the tooth charges $1 per scoring card, got $%d -> $%d", before, g.Money)
	}
}

func TestArmLowersHandLevel(t *testing.T) {
	g := NewGame(DefaultConfig(), 3, DeckStandard)
	startBossBlind(t, g, BossTheArm)
	g.RequiredScore = 1 << 30
	g.Levels[HighCard] = upgradeLevel(g.Levels[HighCard], HighCard)

	mustAction(t, g, Action{Kind: ActionSelectCard, CardID: g.Available[0].ID})
	mustAction(t, g, Action{Kind: ActionPlay})

	if g.Levels[HighCard].Level != 1 {
		t.Fatalf("the arm should lower the played hand level, got %d", g.Levels[HighCard].Level)
	}
}

func TestDebuffQueries(t *testing.T) {
	club := Card{Rank: King, Suit: Clubs}
	if !BossTheClub.Debuffs(club) {
		t.Fatalf("the club should debuff clubs")
	}
	if BossTheGoad.Debuffs(club) {
		t.Fatalf("the goad only debuffs spades")
	}
	face := Card{Rank: Queen, Suit: Hearts}
	if !BossThePlant.Debuffs(face) {
		t.Fatalf("the plant should debuff face cards")
	}
	hidden := Card{Rank: Two, Suit: Hearts, FaceDown: true}
	if !BossNone.Debuffs(hidden) {
		t.Fatalf("face-down cards are always debuffed")
	}
}
