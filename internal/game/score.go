package game

// calcScore runs the scoring pipeline for a classified hand. Chips and mult
// are scratch accumulators seeded from the hand's current level and reset to
// the config base values before returning; the persistent total lives in
// Score, maintained by handleScore.
func (g *Game) calcScore(hand *MadeHand) int {
	boss := g.activeBoss()

	// Early exit, not a zero multiplier: no accumulation, no callbacks.
	if boss.FirstHandScoresZero() && g.HandsPlayedThisBlind == 0 {
		g.HandsPlayedThisBlind++
		return 0
	}
	g.HandsPlayedThisBlind++

	lvl := g.Levels[hand.Rank]
	g.Chips = lvl.Chips
	g.Mult = lvl.Mult
	g.scoreMultiplier = 1.0

	sealMoney := 0
	var destroyQueue []uint64

	for _, c := range hand.Scoring {
		if boss.Debuffs(c) {
			continue
		}
		triggers := 1 + c.Retriggers()
		for _, j := range g.Jokers {
			triggers += j.retriggersFor(c, g)
		}
		for t := 0; t < triggers; t++ {
			g.Chips += c.Chips()
			g.Mult += c.Mult()
			if c.Enhancement == EnhanceLucky {
				if g.rng.Intn(5) == 0 {
					g.Mult += 20
				}
				if g.rng.Intn(15) == 0 {
					sealMoney += 20
				}
			}
			if c.Seal == SealGold {
				sealMoney += 3
			}
		}
		if c.Seal == SealBlue && len(g.Consumables) < g.consumableSlots() {
			if planet, ok := planetForHand(hand.Rank); ok {
				g.Consumables = append(g.Consumables, g.newConsumable(planet))
			}
		}
		if c.DestroyOnScore() {
			destroyQueue = append(destroyQueue, c.ID)
		}
	}

	// Per-card x-mult factors compose into one multiplier applied at the end.
	for _, c := range hand.Scoring {
		if boss.Debuffs(c) {
			continue
		}
		g.scoreMultiplier *= c.MultMultiplier()
	}

	g.effects.fire(OnScore, g, hand)

	score := int(float64(g.Chips) * float64(g.Mult) * g.scoreMultiplier)
	if boss.HalvesScore() {
		score /= 2
	}

	g.addMoney(sealMoney)

	if charge := boss.MoneyPerCardPlayed(); charge > 0 {
		cost := charge * len(hand.Scoring)
		// This deduction alone never pushes money negative.
		if cost > g.Money {
			cost = g.Money
		}
		if cost > 0 {
			g.Money -= cost
		}
	}

	if boss.DecreasesHandLevel() {
		g.Levels[hand.Rank] = downgradeLevel(g.Levels[hand.Rank], hand.Rank)
	}

	for _, id := range destroyQueue {
		g.destroyCard(id)
	}

	g.Chips = g.cfg.BaseChips
	g.Mult = g.cfg.BaseMult
	return score
}

func planetForHand(rank HandRank) (ConsumableKind, bool) {
	for kind, hand := range planetHands {
		if hand == rank {
			return kind, true
		}
	}
	return 0, false
}
