package game

// GameModifiers is a derived snapshot of active rule changes, aggregated from
// the joker list. It is recomputed every time the joker list changes and is
// never mutated incrementally, so it can always be rebuilt from the list.
type GameModifiers struct {
	FourCardHands bool `json:"fourCardHands"` // 4-card straights and flushes
	GapStraights  bool `json:"gapStraights"`  // one skipped rank still counts
	SmearedSuits  bool `json:"smearedSuits"`  // hearts+diamonds / spades+clubs pooled
	AllFaces      bool `json:"allFaces"`      // every card counts as a face card
	AllScore      bool `json:"allScore"`      // every played card scores

	HandSizeDelta  int `json:"handSizeDelta"`
	JokerSlotDelta int `json:"jokerSlotDelta"`
	DebtCeiling    int `json:"debtCeiling"` // how far money may go negative
}

// recomputeModifiers rebuilds the modifier snapshot from the current joker
// list. Called after every joker purchase, sale, and consumable mutation.
func (g *Game) recomputeModifiers() {
	mods := GameModifiers{}
	for _, j := range g.Jokers {
		j.applyModifiers(&mods)
	}
	g.Modifiers = mods
}
