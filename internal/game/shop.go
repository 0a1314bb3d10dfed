package game

// ShopJoker is one purchasable joker offer. Free offers come from tags.
type ShopJoker struct {
	Joker *Joker `json:"joker"`
	Price int    `json:"price"`
	Free  bool   `json:"free,omitempty"`
}

type ShopConsumable struct {
	Consumable *Consumable `json:"consumable"`
	Price      int         `json:"price"`
}

// Shop holds the current inventory. The game never computes prices itself;
// it asks the shop's price queries when processing purchase actions.
type Shop struct {
	Jokers      []ShopJoker      `json:"jokers"`
	Consumables []ShopConsumable `json:"consumables"`
	Voucher     *VoucherKind     `json:"voucher,omitempty"`
}

const (
	shopJokerSlots      = 2
	shopConsumableSlots = 2
)

var rarityPrices = map[Rarity]int{
	RarityCommon:   4,
	RarityUncommon: 6,
	RarityRare:     8,
}

// refresh rebuilds the inventory for a shop visit. Owned vouchers never
// reappear; a fresh voucher is offered once per ante.
func (s *Shop) refresh(g *Game) {
	s.Jokers = s.Jokers[:0]
	s.Consumables = s.Consumables[:0]

	kinds := AllJokerKinds()
	for i := 0; i < shopJokerSlots; i++ {
		j := NewJoker(kinds[g.rng.Intn(len(kinds))], g.nextID())
		s.Jokers = append(s.Jokers, ShopJoker{Joker: j, Price: s.JokerPrice(j)})
	}

	categories := []ConsumableCategory{CategoryTarot, CategoryPlanet, CategorySpectral}
	for i := 0; i < shopConsumableSlots; i++ {
		picked := g.randomConsumables(categories[g.rng.Intn(len(categories))], 1)
		if len(picked) == 0 {
			continue
		}
		c := g.newConsumable(picked[0])
		s.Consumables = append(s.Consumables, ShopConsumable{Consumable: c, Price: s.ConsumablePrice(c)})
	}

	if s.Voucher == nil && g.AnteVoucherOffered != g.Ante {
		s.offerVoucher(g)
		g.AnteVoucherOffered = g.Ante
	}
}

func (s *Shop) offerVoucher(g *Game) {
	candidates := make([]VoucherKind, 0, len(voucherCatalog))
	for _, v := range allVoucherKinds() {
		if !g.ownsVoucher(v) {
			candidates = append(candidates, v)
		}
	}
	if len(candidates) == 0 {
		return
	}
	v := candidates[g.rng.Intn(len(candidates))]
	s.Voucher = &v
}

func (s *Shop) addFreeJoker(g *Game, rarity Rarity) {
	pool := make([]JokerKind, 0, len(jokerCatalog))
	for _, kind := range AllJokerKinds() {
		if jokerCatalog[kind].rarity == rarity {
			pool = append(pool, kind)
		}
	}
	if len(pool) == 0 {
		return
	}
	j := NewJoker(pool[g.rng.Intn(len(pool))], g.nextID())
	s.Jokers = append(s.Jokers, ShopJoker{Joker: j, Price: 0, Free: true})
}

func (s *Shop) JokerPrice(j *Joker) int {
	if price, ok := rarityPrices[j.Rarity()]; ok {
		return price
	}
	return j.Cost()
}

func (s *Shop) ConsumablePrice(c *Consumable) int {
	return c.Cost()
}

func (s *Shop) VoucherPrice(v VoucherKind) int {
	return v.Cost()
}

func (s *Shop) PackPrice() int {
	return 4
}

func (s *Shop) findJoker(id uint64) (int, *ShopJoker) {
	for i := range s.Jokers {
		if s.Jokers[i].Joker.ID == id {
			return i, &s.Jokers[i]
		}
	}
	return -1, nil
}

func (s *Shop) findConsumable(id uint64) (int, *ShopConsumable) {
	for i := range s.Consumables {
		if s.Consumables[i].Consumable.ID == id {
			return i, &s.Consumables[i]
		}
	}
	return -1, nil
}
