package game

// TagTrigger classifies when a queued tag fires.
type TagTrigger uint8

const (
	TagImmediate TagTrigger = iota
	TagOnShopEnter
	TagOnRoundStart
	TagOnBossDefeated
	TagOnBossEncounter
)

type TagKind uint8

const (
	TagUncommon TagKind = iota
	TagVoucher
	TagDouble
	TagEconomy
	TagHandy
	TagGarbage
	TagJuggle
	TagBossReroll
	TagInvestment
	TagCharm
	TagMeteor
	TagBuffoon
)

type tagInfo struct {
	name    string
	trigger TagTrigger
}

var tagCatalog = map[TagKind]tagInfo{
	TagUncommon:   {"Uncommon Tag", TagOnShopEnter},
	TagVoucher:    {"Voucher Tag", TagOnShopEnter},
	TagDouble:     {"Double Tag", TagImmediate},
	TagEconomy:    {"Economy Tag", TagImmediate},
	TagHandy:      {"Handy Tag", TagImmediate},
	TagGarbage:    {"Garbage Tag", TagImmediate},
	TagJuggle:     {"Juggle Tag", TagOnRoundStart},
	TagBossReroll: {"Boss Tag", TagOnBossEncounter},
	TagInvestment: {"Investment Tag", TagOnBossDefeated},
	TagCharm:      {"Charm Tag", TagImmediate},
	TagMeteor:     {"Meteor Tag", TagImmediate},
	TagBuffoon:    {"Buffoon Tag", TagImmediate},
}

func (t TagKind) Name() string        { return tagCatalog[t].name }
func (t TagKind) Trigger() TagTrigger { return tagCatalog[t].trigger }

func allTagKinds() []TagKind {
	kinds := make([]TagKind, 0, len(tagCatalog))
	for k := TagUncommon; int(k) < len(tagCatalog); k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// TagPack is a pending selection opened by a pack-granting tag. The player
// must make Picks selections before any other action clears it.
type TagPack struct {
	Source      TagKind          `json:"source"`
	Consumables []ConsumableKind `json:"consumables,omitempty"`
	Jokers      []JokerKind      `json:"jokers,omitempty"`
	Picks       int              `json:"picks"`
}

// AddTag earns a tag. Queued Double tags are consumed first: each one turns
// into an extra copy of the incoming non-Double tag. Immediate tags execute
// on the spot; the rest join the FIFO queue for their trigger point.
func (g *Game) AddTag(kind TagKind) {
	copies := 1
	if kind != TagDouble {
		remaining := g.Tags[:0]
		for _, queued := range g.Tags {
			if queued == TagDouble {
				copies++
				continue
			}
			remaining = append(remaining, queued)
		}
		g.Tags = remaining
	}

	for i := 0; i < copies; i++ {
		if kind.Trigger() == TagImmediate && kind != TagDouble {
			g.applyImmediateTag(kind)
			continue
		}
		g.Tags = append(g.Tags, kind)
	}
}

func (g *Game) applyImmediateTag(kind TagKind) {
	switch kind {
	case TagEconomy:
		// Doubles money, capped at +$40.
		bonus := g.Money
		if bonus > 40 {
			bonus = 40
		}
		if bonus > 0 {
			g.addMoney(bonus)
		}
	case TagHandy:
		g.addMoney(g.TotalHandsPlayed)
	case TagGarbage:
		g.addMoney(g.TotalDiscardsUsed)
	case TagCharm:
		g.PendingTagPack = &TagPack{
			Source:      TagCharm,
			Consumables: g.randomConsumables(CategoryTarot, 4),
			Picks:       1,
		}
	case TagMeteor:
		g.PendingTagPack = &TagPack{
			Source:      TagMeteor,
			Consumables: g.randomConsumables(CategoryPlanet, 4),
			Picks:       1,
		}
	case TagBuffoon:
		g.PendingTagPack = &TagPack{
			Source: TagBuffoon,
			Jokers: g.randomJokerKinds(2),
			Picks:  1,
		}
	}
}

// drainTags removes and returns every queued tag matching the trigger,
// preserving queue order.
func (g *Game) drainTags(trigger TagTrigger) []TagKind {
	fired := make([]TagKind, 0, len(g.Tags))
	remaining := g.Tags[:0]
	for _, kind := range g.Tags {
		if kind.Trigger() == trigger {
			fired = append(fired, kind)
			continue
		}
		remaining = append(remaining, kind)
	}
	g.Tags = remaining
	return fired
}

func (g *Game) processShopEnterTags() {
	for _, kind := range g.drainTags(TagOnShopEnter) {
		switch kind {
		case TagUncommon:
			g.Shop.addFreeJoker(g, RarityUncommon)
		case TagVoucher:
			g.Shop.offerVoucher(g)
		}
	}
}

func (g *Game) processRoundStartTags() {
	for _, kind := range g.drainTags(TagOnRoundStart) {
		if kind == TagJuggle {
			g.Round.HandSizeBonus += 3
		}
	}
}

func (g *Game) processBossDefeatedTags() {
	for _, kind := range g.drainTags(TagOnBossDefeated) {
		if kind == TagInvestment {
			g.addMoney(25)
		}
	}
}

func (g *Game) processBossEncounterTags(boss BossModifier) BossModifier {
	for _, kind := range g.drainTags(TagOnBossEncounter) {
		if kind == TagBossReroll {
			boss = g.randomBoss()
		}
	}
	return boss
}

// SelectFromTagPack resolves one pick from the pending pack.
func (g *Game) selectFromTagPack(index int) error {
	pack := g.PendingTagPack
	if pack == nil || pack.Picks <= 0 {
		return errInvalidAction("no pending tag pack")
	}

	switch {
	case len(pack.Consumables) > 0:
		if index < 0 || index >= len(pack.Consumables) {
			return errInvalidAction("tag pack index out of range")
		}
		if len(g.Consumables) >= g.consumableSlots() {
			return errNoSlot("consumable slots full")
		}
		g.Consumables = append(g.Consumables, g.newConsumable(pack.Consumables[index]))
	case len(pack.Jokers) > 0:
		if index < 0 || index >= len(pack.Jokers) {
			return errInvalidAction("tag pack index out of range")
		}
		if len(g.Jokers) >= g.jokerSlots() {
			return errNoSlot("joker slots full")
		}
		g.addJoker(NewJoker(pack.Jokers[index], g.nextID()))
	default:
		return errInvalidAction("empty tag pack")
	}

	pack.Picks--
	if pack.Picks <= 0 {
		g.PendingTagPack = nil
	}
	return nil
}

// randomEligibleTag picks a skip reward. Pack of every kind except Double,
// which only enters play via specific sources.
func (g *Game) randomEligibleTag() TagKind {
	kinds := make([]TagKind, 0, len(tagCatalog))
	for _, k := range allTagKinds() {
		if k == TagDouble {
			continue
		}
		kinds = append(kinds, k)
	}
	return kinds[g.rng.Intn(len(kinds))]
}
