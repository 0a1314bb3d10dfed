package game

import (
	"sort"

	appErr "jokerdeck/pkg/errors"
)

type HandRank uint8

const (
	HighCard HandRank = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
	FiveOfAKind
	FlushHouse
	FlushFive
)

// handRanksByStrength is the structural precedence used by BestHand: the
// first matching category wins regardless of configured level values.
var handRanksByStrength = []HandRank{
	FlushFive,
	FlushHouse,
	FiveOfAKind,
	RoyalFlush,
	StraightFlush,
	FourOfAKind,
	FullHouse,
	Flush,
	Straight,
	ThreeOfAKind,
	TwoPair,
	OnePair,
	HighCard,
}

// AllHandRanks lists every hand type from weakest to strongest.
func AllHandRanks() []HandRank {
	ranks := make([]HandRank, 0, len(handRanksByStrength))
	for i := len(handRanksByStrength) - 1; i >= 0; i-- {
		ranks = append(ranks, handRanksByStrength[i])
	}
	return ranks
}

func (h HandRank) String() string {
	switch h {
	case HighCard:
		return "High Card"
	case OnePair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	case RoyalFlush:
		return "Royal Flush"
	case FiveOfAKind:
		return "Five of a Kind"
	case FlushHouse:
		return "Flush House"
	case FlushFive:
		return "Flush Five"
	}
	return "Unknown"
}

// Level is the per-run upgradeable base value of a hand category.
type Level struct {
	Level int `json:"level"`
	Chips int `json:"chips"`
	Mult  int `json:"mult"`
}

type levelStep struct {
	chips int
	mult  int
}

var baseLevels = map[HandRank]Level{
	HighCard:      {Level: 1, Chips: 5, Mult: 1},
	OnePair:       {Level: 1, Chips: 10, Mult: 2},
	TwoPair:       {Level: 1, Chips: 20, Mult: 2},
	ThreeOfAKind:  {Level: 1, Chips: 30, Mult: 3},
	Straight:      {Level: 1, Chips: 30, Mult: 4},
	Flush:         {Level: 1, Chips: 35, Mult: 4},
	FullHouse:     {Level: 1, Chips: 40, Mult: 4},
	FourOfAKind:   {Level: 1, Chips: 60, Mult: 7},
	StraightFlush: {Level: 1, Chips: 100, Mult: 8},
	RoyalFlush:    {Level: 1, Chips: 100, Mult: 8},
	FiveOfAKind:   {Level: 1, Chips: 120, Mult: 12},
	FlushHouse:    {Level: 1, Chips: 140, Mult: 14},
	FlushFive:     {Level: 1, Chips: 160, Mult: 16},
}

var levelSteps = map[HandRank]levelStep{
	HighCard:      {chips: 10, mult: 1},
	OnePair:       {chips: 15, mult: 1},
	TwoPair:       {chips: 20, mult: 1},
	ThreeOfAKind:  {chips: 20, mult: 2},
	Straight:      {chips: 30, mult: 3},
	Flush:         {chips: 15, mult: 2},
	FullHouse:     {chips: 25, mult: 2},
	FourOfAKind:   {chips: 30, mult: 3},
	StraightFlush: {chips: 40, mult: 4},
	RoyalFlush:    {chips: 40, mult: 4},
	FiveOfAKind:   {chips: 35, mult: 3},
	FlushHouse:    {chips: 40, mult: 4},
	FlushFive:     {chips: 50, mult: 3},
}

func defaultLevels() map[HandRank]Level {
	levels := make(map[HandRank]Level, len(baseLevels))
	for rank, lvl := range baseLevels {
		levels[rank] = lvl
	}
	return levels
}

func upgradeLevel(lvl Level, rank HandRank) Level {
	step := levelSteps[rank]
	lvl.Level++
	lvl.Chips += step.chips
	lvl.Mult += step.mult
	return lvl
}

// downgradeLevel steps a level back by one, never below level 1.
func downgradeLevel(lvl Level, rank HandRank) Level {
	if lvl.Level <= 1 {
		return lvl
	}
	step := levelSteps[rank]
	lvl.Level--
	lvl.Chips -= step.chips
	lvl.Mult -= step.mult
	return lvl
}

// SelectHand is a player-chosen subset of at most 5 visible cards. Face-down
// cards are filtered out at construction; that filtering is an invariant the
// rest of the engine relies on.
type SelectHand struct {
	cards []Card
}

func NewSelectHand(cards []Card) SelectHand {
	visible := make([]Card, 0, len(cards))
	for _, c := range cards {
		if c.FaceDown {
			continue
		}
		visible = append(visible, c)
	}
	return SelectHand{cards: visible}
}

func (h SelectHand) Cards() []Card {
	return h.cards
}

func (h SelectHand) Len() int {
	return len(h.cards)
}

// MadeHand is the immutable result of classification: the best-matching
// category, the minimal subset realizing it, and the full set eligible
// for scoring (wider than the realizing subset only under Splash).
type MadeHand struct {
	Rank    HandRank `json:"rank"`
	Cards   []Card   `json:"cards"`
	Scoring []Card   `json:"scoring"`
}

// BestHand classifies 1-5 visible cards under the active rule modifiers.
// Categories are tried strongest first; the first match wins. Never fails
// for 1-5 cards since High Card always matches.
func BestHand(hand SelectHand, mods GameModifiers) (MadeHand, error) {
	cards := hand.Cards()
	if len(cards) == 0 {
		return MadeHand{}, appErr.ErrNoCards
	}
	if len(cards) > 5 {
		return MadeHand{}, appErr.ErrTooManyCards
	}

	sorted := make([]Card, len(cards))
	copy(sorted, cards)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Rank > sorted[j].Rank
	})

	for _, rank := range handRanksByStrength {
		subset, ok := matchCategory(rank, sorted, mods)
		if !ok {
			continue
		}
		made := MadeHand{Rank: rank, Cards: subset, Scoring: subset}
		if mods.AllScore {
			made.Scoring = cards
		}
		return made, nil
	}
	return MadeHand{}, appErr.ErrUnknownHand
}

func matchCategory(rank HandRank, sorted []Card, mods GameModifiers) ([]Card, bool) {
	switch rank {
	case FlushFive:
		return matchFlushFive(sorted, mods)
	case FlushHouse:
		return matchFlushHouse(sorted, mods)
	case FiveOfAKind:
		return matchOfAKind(sorted, 5)
	case RoyalFlush:
		return matchStraightFlush(sorted, mods, true)
	case StraightFlush:
		return matchStraightFlush(sorted, mods, false)
	case FourOfAKind:
		return matchOfAKind(sorted, 4)
	case FullHouse:
		return matchFullHouse(sorted)
	case Flush:
		cards, _, ok := matchFlush(sorted, mods)
		return cards, ok
	case Straight:
		return matchStraight(sorted, mods)
	case ThreeOfAKind:
		return matchOfAKind(sorted, 3)
	case TwoPair:
		return matchTwoPair(sorted)
	case OnePair:
		return matchOfAKind(sorted, 2)
	case HighCard:
		return sorted[:1], true
	}
	return nil, false
}

// rankGroups buckets cards by rank. Keys come back in descending rank order;
// the direction only pins down which physical cards end up in the realized
// subset when group sizes tie, not the category outcome.
func rankGroups(sorted []Card) ([]Rank, map[Rank][]Card) {
	groups := make(map[Rank][]Card)
	order := make([]Rank, 0, len(sorted))
	for _, c := range sorted {
		if _, seen := groups[c.Rank]; !seen {
			order = append(order, c.Rank)
		}
		groups[c.Rank] = append(groups[c.Rank], c)
	}
	return order, groups
}

func matchOfAKind(sorted []Card, size int) ([]Card, bool) {
	order, groups := rankGroups(sorted)
	for _, r := range order {
		if len(groups[r]) >= size {
			return groups[r][:size], true
		}
	}
	return nil, false
}

func matchTwoPair(sorted []Card) ([]Card, bool) {
	order, groups := rankGroups(sorted)
	pairs := make([]Card, 0, 4)
	found := 0
	for _, r := range order {
		if len(groups[r]) >= 2 {
			pairs = append(pairs, groups[r][:2]...)
			found++
			if found == 2 {
				return pairs, true
			}
		}
	}
	return nil, false
}

func matchFullHouse(sorted []Card) ([]Card, bool) {
	order, groups := rankGroups(sorted)
	var tripleRank Rank
	triple := []Card(nil)
	for _, r := range order {
		if len(groups[r]) >= 3 {
			tripleRank = r
			triple = groups[r][:3]
			break
		}
	}
	if triple == nil {
		return nil, false
	}
	for _, r := range order {
		if r == tripleRank {
			continue
		}
		if len(groups[r]) >= 2 {
			return append(append([]Card(nil), triple...), groups[r][:2]...), true
		}
	}
	return nil, false
}

// matchFlush returns the realizing subset and the full suited pool. The
// subset is the whole pool capped at five cards: a four-card threshold only
// lowers the entry bar, it never trims a larger suited run. The plain
// per-suit check runs first; the smeared red/black pooling only applies
// when it fails.
func matchFlush(sorted []Card, mods GameModifiers) ([]Card, []Card, bool) {
	min := 5
	if mods.FourCardHands {
		min = 4
	}
	if len(sorted) < min {
		return nil, nil, false
	}

	for _, s := range []Suit{Spades, Hearts, Diamonds, Clubs} {
		pool := make([]Card, 0, len(sorted))
		for _, c := range sorted {
			if c.HasSuit(s) {
				pool = append(pool, c)
			}
		}
		if len(pool) >= min {
			return flushSubset(pool), pool, true
		}
	}

	if mods.SmearedSuits {
		for _, red := range []bool{true, false} {
			pool := make([]Card, 0, len(sorted))
			for _, c := range sorted {
				if c.Enhancement == EnhanceStone {
					continue
				}
				if c.Enhancement == EnhanceWild || c.Suit.Red() == red {
					pool = append(pool, c)
				}
			}
			if len(pool) >= min {
				return flushSubset(pool), pool, true
			}
		}
	}
	return nil, nil, false
}

func flushSubset(pool []Card) []Card {
	if len(pool) > 5 {
		return pool[:5]
	}
	return pool
}

// straightWindows enumerates the candidate rank sequences for a window of
// the given size, strongest top card first. Exact runs come before gap runs
// so a plain straight is always preferred.
func exactWindows(size int) [][]Rank {
	windows := make([][]Rank, 0, 16)
	for top := Ace; int(top) >= int(Two)+size-1; top-- {
		win := make([]Rank, 0, size)
		for i := 0; i < size; i++ {
			win = append(win, top-Rank(i))
		}
		windows = append(windows, win)
	}
	// Low-ace run: A,2,3,4[,5].
	low := []Rank{Ace}
	for r := Two; int(r) < int(Two)+size-1; r++ {
		low = append(low, r)
	}
	windows = append(windows, low)
	return windows
}

// gapWindows enumerates runs of the given size spanning size+1 ranks with
// exactly one internal rank skipped. The low-ace variants are a fixed finite
// set and are listed explicitly.
var lowAceGapWindows = map[int][][]Rank{
	5: {
		{Ace, Two, Three, Four, Six},
		{Ace, Two, Three, Five, Six},
		{Ace, Two, Four, Five, Six},
		{Ace, Three, Four, Five, Six},
	},
	4: {
		{Ace, Two, Three, Five},
		{Ace, Two, Four, Five},
		{Ace, Three, Four, Five},
	},
}

func gapWindows(size int) [][]Rank {
	windows := make([][]Rank, 0, 48)
	for top := Ace; int(top) >= int(Two)+size; top-- {
		bottom := top - Rank(size)
		for skipped := top - 1; skipped > bottom; skipped-- {
			win := make([]Rank, 0, size)
			for r := top; r >= bottom; r-- {
				if r == skipped {
					continue
				}
				win = append(win, r)
			}
			windows = append(windows, win)
		}
	}
	windows = append(windows, lowAceGapWindows[size]...)
	return windows
}

// matchStraight searches windows of decreasing size from 5 down to the
// modifier minimum so the longest run wins. Duplicate ranks collapse:
// a run needs distinct consecutive values, not just five cards.
func matchStraight(sorted []Card, mods GameModifiers) ([]Card, bool) {
	min := 5
	if mods.FourCardHands {
		min = 4
	}

	byRank := make(map[Rank]Card, len(sorted))
	for _, c := range sorted {
		if _, ok := byRank[c.Rank]; !ok {
			byRank[c.Rank] = c
		}
	}
	if len(byRank) < min {
		return nil, false
	}

	pick := func(win []Rank) ([]Card, bool) {
		cards := make([]Card, 0, len(win))
		for _, r := range win {
			c, ok := byRank[r]
			if !ok {
				return nil, false
			}
			cards = append(cards, c)
		}
		return cards, true
	}

	for size := 5; size >= min; size-- {
		for _, win := range exactWindows(size) {
			if cards, ok := pick(win); ok {
				return cards, true
			}
		}
	}
	if mods.GapStraights {
		for size := 5; size >= min; size-- {
			for _, win := range gapWindows(size) {
				if cards, ok := pick(win); ok {
					return cards, true
				}
			}
		}
	}
	return nil, false
}

// matchStraightFlush requires the straight and the flush on the same card
// set: the straight is searched within the suited pool, not independently.
func matchStraightFlush(sorted []Card, mods GameModifiers, royal bool) ([]Card, bool) {
	_, pool, ok := matchFlush(sorted, mods)
	if !ok {
		return nil, false
	}
	run, ok := matchStraight(pool, mods)
	if !ok {
		return nil, false
	}
	if royal && !isRoyalRun(run) {
		return nil, false
	}
	return run, true
}

func isRoyalRun(run []Card) bool {
	if len(run) != 5 {
		return false
	}
	want := map[Rank]bool{Ten: true, Jack: true, Queen: true, King: true, Ace: true}
	for _, c := range run {
		if !want[c.Rank] {
			return false
		}
		delete(want, c.Rank)
	}
	return len(want) == 0
}

func matchFlushHouse(sorted []Card, mods GameModifiers) ([]Card, bool) {
	house, ok := matchFullHouse(sorted)
	if !ok {
		return nil, false
	}
	_, pool, ok := matchFlush(sorted, mods)
	if !ok || len(pool) < 5 {
		return nil, false
	}
	// The full house must itself be suited, not a different five cards.
	if !subsetOf(house, pool) {
		return nil, false
	}
	return house, true
}

func matchFlushFive(sorted []Card, mods GameModifiers) ([]Card, bool) {
	kind, ok := matchOfAKind(sorted, 5)
	if !ok {
		return nil, false
	}
	_, pool, ok := matchFlush(sorted, mods)
	if !ok || len(pool) < 5 {
		return nil, false
	}
	if !subsetOf(kind, pool) {
		return nil, false
	}
	return kind, true
}

func subsetOf(sub, pool []Card) bool {
	type key struct {
		id   uint64
		rank Rank
		suit Suit
	}
	counts := make(map[key]int, len(pool))
	for _, c := range pool {
		counts[key{c.ID, c.Rank, c.Suit}]++
	}
	for _, c := range sub {
		k := key{c.ID, c.Rank, c.Suit}
		if counts[k] == 0 {
			return false
		}
		counts[k]--
	}
	return true
}
