package game

// Vouchers are permanent run upgrades bought in the shop. Their effect is a
// static contribution consulted by the game's derived getters; owning the
// voucher is the whole state.
type VoucherKind uint8

const (
	VoucherBlank VoucherKind = iota
	VoucherGrabber
	VoucherWasteful
	VoucherPaintBrush
	VoucherSeedMoney
	VoucherCrystalBall
	VoucherAntimatter
)

type voucherInfo struct {
	name string
	desc string
	cost int
}

var voucherCatalog = map[VoucherKind]voucherInfo{
	VoucherBlank:       {"Blank", "Does nothing?", 10},
	VoucherGrabber:     {"Grabber", "+1 hand per round", 10},
	VoucherWasteful:    {"Wasteful", "+1 discard per round", 10},
	VoucherPaintBrush:  {"Paint Brush", "+1 hand size", 10},
	VoucherSeedMoney:   {"Seed Money", "Raises the interest cap to $10", 10},
	VoucherCrystalBall: {"Crystal Ball", "+1 consumable slot", 10},
	VoucherAntimatter:  {"Antimatter", "+1 Joker slot", 10},
}

func (v VoucherKind) Name() string        { return voucherCatalog[v].name }
func (v VoucherKind) Description() string { return voucherCatalog[v].desc }
func (v VoucherKind) Cost() int           { return voucherCatalog[v].cost }

func allVoucherKinds() []VoucherKind {
	kinds := make([]VoucherKind, 0, len(voucherCatalog))
	for k := VoucherBlank; int(k) < len(voucherCatalog); k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

func (g *Game) ownsVoucher(kind VoucherKind) bool {
	for _, v := range g.Vouchers {
		if v == kind {
			return true
		}
	}
	return false
}

func (g *Game) voucherPlayBonus() int {
	if g.ownsVoucher(VoucherGrabber) {
		return 1
	}
	return 0
}

func (g *Game) voucherDiscardBonus() int {
	if g.ownsVoucher(VoucherWasteful) {
		return 1
	}
	return 0
}

func (g *Game) voucherHandSizeBonus() int {
	if g.ownsVoucher(VoucherPaintBrush) {
		return 1
	}
	return 0
}

func (g *Game) interestCap() int {
	if g.ownsVoucher(VoucherSeedMoney) {
		return 10
	}
	return g.cfg.InterestCap
}
