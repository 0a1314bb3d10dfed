package game

type ConsumableCategory uint8

const (
	CategoryTarot ConsumableCategory = iota
	CategoryPlanet
	CategorySpectral
)

func (c ConsumableCategory) String() string {
	switch c {
	case CategoryTarot:
		return "tarot"
	case CategoryPlanet:
		return "planet"
	case CategorySpectral:
		return "spectral"
	}
	return "unknown"
}

type ConsumableKind uint8

const (
	// Planets: one per upgradeable hand category.
	PlanetPluto ConsumableKind = iota
	PlanetMercury
	PlanetUranus
	PlanetVenus
	PlanetSaturn
	PlanetJupiter
	PlanetEarth
	PlanetMars
	PlanetNeptune
	PlanetX
	PlanetCeres
	PlanetEris

	// Tarots.
	TarotHermit
	TarotTemperance
	TarotStrength
	TarotTower
	TarotDevil
	TarotChariot
	TarotJustice
	TarotMagician
	TarotEmpress
	TarotHierophant
	TarotLovers

	// Spectrals.
	SpectralCryptid
	SpectralTalisman
	SpectralDejaVu
	SpectralTrance
	SpectralMedium
)

type consumableInfo struct {
	name     string
	desc     string
	category ConsumableCategory
	cost     int
	targets  int // required selected-card targets; 0 = none
}

var planetHands = map[ConsumableKind]HandRank{
	PlanetPluto:   HighCard,
	PlanetMercury: OnePair,
	PlanetUranus:  TwoPair,
	PlanetVenus:   ThreeOfAKind,
	PlanetSaturn:  Straight,
	PlanetJupiter: Flush,
	PlanetEarth:   FullHouse,
	PlanetMars:    FourOfAKind,
	PlanetNeptune: StraightFlush,
	PlanetX:       FiveOfAKind,
	PlanetCeres:   FlushHouse,
	PlanetEris:    FlushFive,
}

var consumableCatalog = map[ConsumableKind]consumableInfo{
	PlanetPluto:   {"Pluto", "Level up High Card", CategoryPlanet, 3, 0},
	PlanetMercury: {"Mercury", "Level up Pair", CategoryPlanet, 3, 0},
	PlanetUranus:  {"Uranus", "Level up Two Pair", CategoryPlanet, 3, 0},
	PlanetVenus:   {"Venus", "Level up Three of a Kind", CategoryPlanet, 3, 0},
	PlanetSaturn:  {"Saturn", "Level up Straight", CategoryPlanet, 3, 0},
	PlanetJupiter: {"Jupiter", "Level up Flush", CategoryPlanet, 3, 0},
	PlanetEarth:   {"Earth", "Level up Full House", CategoryPlanet, 3, 0},
	PlanetMars:    {"Mars", "Level up Four of a Kind", CategoryPlanet, 3, 0},
	PlanetNeptune: {"Neptune", "Level up Straight Flush", CategoryPlanet, 3, 0},
	PlanetX:       {"Planet X", "Level up Five of a Kind", CategoryPlanet, 3, 0},
	PlanetCeres:   {"Ceres", "Level up Flush House", CategoryPlanet, 3, 0},
	PlanetEris:    {"Eris", "Level up Flush Five", CategoryPlanet, 3, 0},

	TarotHermit:     {"The Hermit", "Doubles money, up to +$20", CategoryTarot, 3, 0},
	TarotTemperance: {"Temperance", "Gain the total sell value of owned Jokers, up to $50", CategoryTarot, 3, 0},
	TarotStrength:   {"Strength", "Raise the rank of up to 2 selected cards", CategoryTarot, 3, 2},
	TarotTower:      {"The Tower", "Turn 1 selected card into a Stone card", CategoryTarot, 3, 1},
	TarotDevil:      {"The Devil", "Turn 1 selected card into a Gold card", CategoryTarot, 3, 1},
	TarotChariot:    {"The Chariot", "Turn 1 selected card into a Steel card", CategoryTarot, 3, 1},
	TarotJustice:    {"Justice", "Turn 1 selected card into a Glass card", CategoryTarot, 3, 1},
	TarotMagician:   {"The Magician", "Turn 1 selected card into a Lucky card", CategoryTarot, 3, 1},
	TarotEmpress:    {"The Empress", "Turn 1 selected card into a Mult card", CategoryTarot, 3, 1},
	TarotHierophant: {"The Hierophant", "Turn 1 selected card into a Bonus card", CategoryTarot, 3, 1},
	TarotLovers:     {"The Lovers", "Turn 1 selected card into a Wild card", CategoryTarot, 3, 1},

	SpectralCryptid:  {"Cryptid", "Create 2 copies of 1 selected card", CategorySpectral, 4, 1},
	SpectralTalisman: {"Talisman", "Add a Gold seal to 1 selected card", CategorySpectral, 4, 1},
	SpectralDejaVu:   {"Deja Vu", "Add a Red seal to 1 selected card", CategorySpectral, 4, 1},
	SpectralTrance:   {"Trance", "Add a Blue seal to 1 selected card", CategorySpectral, 4, 1},
	SpectralMedium:   {"Medium", "Add a Purple seal to 1 selected card", CategorySpectral, 4, 1},
}

// Consumable is a one-shot item occupying a consumable slot until used.
type Consumable struct {
	ID   uint64         `json:"id"`
	Kind ConsumableKind `json:"kind"`
}

func (k ConsumableKind) Category() ConsumableCategory { return consumableCatalog[k].category }

func (c *Consumable) Name() string                 { return consumableCatalog[c.Kind].name }
func (c *Consumable) Description() string          { return consumableCatalog[c.Kind].desc }
func (c *Consumable) Category() ConsumableCategory { return consumableCatalog[c.Kind].category }
func (c *Consumable) Cost() int                    { return consumableCatalog[c.Kind].cost }

func (g *Game) newConsumable(kind ConsumableKind) *Consumable {
	return &Consumable{ID: g.nextID(), Kind: kind}
}

func (g *Game) randomConsumables(category ConsumableCategory, n int) []ConsumableKind {
	pool := make([]ConsumableKind, 0, len(consumableCatalog))
	for kind, info := range consumableCatalog {
		if info.category == category {
			pool = append(pool, kind)
		}
	}
	g.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	if n > len(pool) {
		n = len(pool)
	}
	picked := make([]ConsumableKind, n)
	copy(picked, pool[:n])
	return picked
}

// useEffect applies the consumable. Validation happens fully before any
// mutation so a returned error leaves the game untouched.
func (c *Consumable) useEffect(g *Game, targets []uint64) error {
	info := consumableCatalog[c.Kind]
	if info.targets > 0 {
		if len(targets) == 0 || len(targets) > info.targets {
			return errInvalidAction("wrong number of target cards")
		}
		for _, id := range targets {
			if g.findAvailable(id) == nil {
				return errInvalidAction("target card not in hand")
			}
		}
	}

	if rank, ok := planetHands[c.Kind]; ok {
		g.Levels[rank] = upgradeLevel(g.Levels[rank], rank)
		return nil
	}

	switch c.Kind {
	case TarotHermit:
		bonus := g.Money
		if bonus > 20 {
			bonus = 20
		}
		if bonus > 0 {
			g.addMoney(bonus)
		}
	case TarotTemperance:
		total := 0
		for _, j := range g.Jokers {
			total += j.SellValue()
		}
		if total > 50 {
			total = 50
		}
		g.addMoney(total)
	case TarotStrength:
		for _, id := range targets {
			card := g.findAvailable(id)
			if card.Rank == Ace {
				card.Rank = Two
			} else {
				card.Rank++
			}
		}
	case TarotTower:
		g.findAvailable(targets[0]).Enhancement = EnhanceStone
	case TarotDevil:
		g.findAvailable(targets[0]).Enhancement = EnhanceGold
	case TarotChariot:
		g.findAvailable(targets[0]).Enhancement = EnhanceSteel
	case TarotJustice:
		g.findAvailable(targets[0]).Enhancement = EnhanceGlass
	case TarotMagician:
		g.findAvailable(targets[0]).Enhancement = EnhanceLucky
	case TarotEmpress:
		g.findAvailable(targets[0]).Enhancement = EnhanceMult
	case TarotHierophant:
		g.findAvailable(targets[0]).Enhancement = EnhanceBonus
	case TarotLovers:
		g.findAvailable(targets[0]).Enhancement = EnhanceWild
	case SpectralCryptid:
		orig := *g.findAvailable(targets[0])
		for i := 0; i < 2; i++ {
			copyCard := orig
			copyCard.ID = g.nextID()
			g.Available = append(g.Available, copyCard)
			g.CardsCreated++
		}
	case SpectralTalisman:
		g.findAvailable(targets[0]).Seal = SealGold
	case SpectralDejaVu:
		g.findAvailable(targets[0]).Seal = SealRed
	case SpectralTrance:
		g.findAvailable(targets[0]).Seal = SealBlue
	case SpectralMedium:
		g.findAvailable(targets[0]).Seal = SealPurple
	default:
		return errInvalidAction("unknown consumable")
	}
	return nil
}
