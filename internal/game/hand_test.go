package game

import (
	"errors"
	"testing"

	appErr "jokerdeck/pkg/errors"
)

func cards(t *testing.T, codes ...string) []Card {
	t.Helper()
	out := make([]Card, 0, len(codes))
	for i, code := range codes {
		c, err := ParseCard(code)
		if err != nil {
			t.Fatalf("bad card code %q: %v", code, err)
		}
		c.ID = uint64(i + 1)
		out = append(out, c)
	}
	return out
}

func classify(t *testing.T, mods GameModifiers, codes ...string) MadeHand {
	t.Helper()
	made, err := BestHand(NewSelectHand(cards(t, codes...)), mods)
	if err != nil {
		t.Fatalf("classification failed for %v: %v", codes, err)
	}
	return made
}

func TestBestHandCategories(t *testing.T) {
	cases := []struct {
		name    string
		codes   []string
		rank    HandRank
		scoring int
	}{
		{"high card", []string{"Ah", "Kd", "Jc"}, HighCard, 1},
		{"pair", []string{"Kd", "Kh", "Ah"}, OnePair, 2},
		{"two pair", []string{"Kd", "Kh", "4c", "4s", "Ah"}, TwoPair, 4},
		{"three of a kind", []string{"7c", "7d", "7h", "2s"}, ThreeOfAKind, 3},
		{"straight", []string{"5c", "6d", "7h", "8s", "9c"}, Straight, 5},
		{"ace low straight", []string{"Ac", "2d", "3h", "4s", "5c"}, Straight, 5},
		{"ace high straight", []string{"Tc", "Jd", "Qh", "Ks", "Ac"}, Straight, 5},
		{"flush", []string{"2h", "5h", "9h", "Jh", "Kh"}, Flush, 5},
		{"full house", []string{"9c", "9d", "9h", "2s", "2c"}, FullHouse, 5},
		{"four of a kind", []string{"5c", "5d", "5h", "5s", "Kc"}, FourOfAKind, 4},
		{"straight flush", []string{"5h", "6h", "7h", "8h", "9h"}, StraightFlush, 5},
		{"royal flush", []string{"Th", "Jh", "Qh", "Kh", "Ah"}, RoyalFlush, 5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			made := classify(t, GameModifiers{}, tc.codes...)
			if made.Rank != tc.rank {
				t.Fatalf("expected %s, got %s", tc.rank, made.Rank)
			}
			if len(made.Scoring) != tc.scoring {
				t.Fatalf("expected %d scoring cards, got %d", tc.scoring, len(made.Scoring))
			}
		})
	}
}

func TestBestHandDuplicateVariants(t *testing.T) {
	five := classify(t, GameModifiers{}, "Jc", "Jd", "Jh", "Js", "Jc")
	if five.Rank != FiveOfAKind {
		t.Fatalf("expected five of a kind, got %s", five.Rank)
	}

	flushFive := classify(t, GameModifiers{}, "Jc", "Jc", "Jc", "Jc", "Jc")
	if flushFive.Rank != FlushFive {
		t.Fatalf("expected flush five, got %s", flushFive.Rank)
	}

	flushHouse := classify(t, GameModifiers{}, "9h", "9h", "9h", "2h", "2h")
	if flushHouse.Rank != FlushHouse {
		t.Fatalf("expected flush house, got %s", flushHouse.Rank)
	}
}

func TestBestHandEdgeCounts(t *testing.T) {
	if _, err := BestHand(NewSelectHand(nil), GameModifiers{}); !errors.Is(err, appErr.ErrNoCards) {
		t.Fatalf("expected ErrNoCards, got %v", err)
	}

	codes := []string{"2c", "3d", "4h", "5s", "6c", "7d"}
	if _, err := BestHand(NewSelectHand(cards(t, codes...)), GameModifiers{}); !errors.Is(err, appErr.ErrTooManyCards) {
		t.Fatalf("expected ErrTooManyCards, got %v", err)
	}

	single := classify(t, GameModifiers{}, "9d")
	if single.Rank != HighCard || len(single.Scoring) != 1 {
		t.Fatalf("single card should be high card, got %s with %d scoring", single.Rank, len(single.Scoring))
	}
}

func TestBestHandFaceDownExcluded(t *testing.T) {
	pool := cards(t, "Kd", "Kh", "Ah")
	pool[1].FaceDown = true
	made, err := BestHand(NewSelectHand(pool), GameModifiers{})
	if err != nil {
		t.Fatalf("classification failed: %v", err)
	}
	if made.Rank != HighCard {
		t.Fatalf("face-down card must not score, got %s", made.Rank)
	}
}

func TestFourCardHands(t *testing.T) {
	mods := GameModifiers{FourCardHands: true}

	flush := classify(t, mods, "2h", "5h", "9h", "Jh", "Kc")
	if flush.Rank != Flush {
		t.Fatalf("expected four-card flush, got %s", flush.Rank)
	}
	if len(flush.Scoring) != 4 {
		t.Fatalf("expected 4 scoring cards, got %d", len(flush.Scoring))
	}

	straight := classify(t, mods, "5c", "6d", "7h", "8s", "Kc")
	if straight.Rank != Straight {
		t.Fatalf("expected four-card straight, got %s", straight.Rank)
	}

	// A five-card match still wins over the four-card subset.
	full := classify(t, mods, "2h", "5h", "9h", "Jh", "Kh")
	if full.Rank != Flush || len(full.Scoring) != 5 {
		t.Fatalf("expected five-card flush, got %s with %d cards", full.Rank, len(full.Scoring))
	}
	found := false
	for _, c := range full.Scoring {
		if c.Rank == Two {
			found = true
		}
	}
	if !found {
		t.Fatalf("lowest suited card dropped from scoring set: %v", full.Scoring)
	}
}

func TestGapStraights(t *testing.T) {
	mods := GameModifiers{GapStraights: true}

	gap := classify(t, mods, "5c", "6d", "8h", "9s", "Tc")
	if gap.Rank != Straight {
		t.Fatalf("expected one-gap straight, got %s", gap.Rank)
	}

	// Two gaps never qualify.
	twoGap := classify(t, mods, "2c", "4d", "6h", "8s", "Tc")
	if twoGap.Rank == Straight {
		t.Fatalf("two gaps must not form a straight")
	}

	lowGap := classify(t, mods, "Ac", "2d", "3h", "5s", "6c")
	if lowGap.Rank != Straight {
		t.Fatalf("expected ace-low gap straight, got %s", lowGap.Rank)
	}
}

func TestSmearedSuits(t *testing.T) {
	mods := GameModifiers{SmearedSuits: true}

	// Hearts and diamonds pool into one red suit.
	red := classify(t, mods, "2h", "5d", "9h", "Jd", "Kh")
	if red.Rank != Flush {
		t.Fatalf("expected smeared red flush, got %s", red.Rank)
	}

	mixed := classify(t, mods, "2h", "5d", "9c", "Jd", "Kh")
	if mixed.Rank == Flush {
		t.Fatalf("black card must break a red smeared flush")
	}
}

func TestWildAndStoneSuits(t *testing.T) {
	pool := cards(t, "2h", "5h", "9h", "Jh", "Kc")
	pool[4].Enhancement = EnhanceWild
	made, err := BestHand(NewSelectHand(pool), GameModifiers{})
	if err != nil {
		t.Fatalf("classification failed: %v", err)
	}
	if made.Rank != Flush {
		t.Fatalf("wild card should count as any suit, got %s", made.Rank)
	}

	stone := cards(t, "2h", "5h", "9h", "Jh", "Kh")
	stone[4].Enhancement = EnhanceStone
	made, err = BestHand(NewSelectHand(stone), GameModifiers{})
	if err != nil {
		t.Fatalf("classification failed: %v", err)
	}
	if made.Rank == Flush {
		t.Fatalf("stone card has no suit and must break the flush")
	}
}

func TestAllScoreModifier(t *testing.T) {
	made := classify(t, GameModifiers{AllScore: true}, "Kd", "Kh", "Ah", "2c", "3d")
	if made.Rank != OnePair {
		t.Fatalf("expected pair, got %s", made.Rank)
	}
	if len(made.Scoring) != 5 {
		t.Fatalf("all played cards should score, got %d", len(made.Scoring))
	}
}

func TestLevelAdjustments(t *testing.T) {
	levels := defaultLevels()
	up := upgradeLevel(levels[OnePair], OnePair)
	if up.Level != 2 || up.Chips != 25 || up.Mult != 3 {
		t.Fatalf("unexpected upgraded pair level: %+v", up)
	}

	down := downgradeLevel(up, OnePair)
	if down != levels[OnePair] {
		t.Fatalf("downgrade should restore the base level, got %+v", down)
	}

	floor := downgradeLevel(levels[OnePair], OnePair)
	if floor.Level != 1 {
		t.Fatalf("level must not drop below 1, got %d", floor.Level)
	}
}
