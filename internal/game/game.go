package game

import (
	"fmt"
	"math/rand"

	appErr "jokerdeck/pkg/errors"
)

// Config carries the run-level defaults. Loaded once at game construction;
// vouchers, jokers and boss modifiers adjust the derived getters, never the
// config itself.
type Config struct {
	BaseChips       int     `json:"baseChips"`
	BaseMult        int     `json:"baseMult"`
	HandSize        int     `json:"handSize"`
	Plays           int     `json:"plays"`
	Discards        int     `json:"discards"`
	StartingMoney   int     `json:"startingMoney"`
	JokerSlots      int     `json:"jokerSlots"`
	ConsumableSlots int     `json:"consumableSlots"`
	MaxSelected     int     `json:"maxSelected"`
	InterestRate    float64 `json:"interestRate"`
	InterestCap     int     `json:"interestCap"`
	MoneyPerHand    int     `json:"moneyPerHand"`
	AnteStart       int     `json:"anteStart"`
	AnteEnd         int     `json:"anteEnd"`
}

func DefaultConfig() Config {
	return Config{
		BaseChips:       0,
		BaseMult:        0,
		HandSize:        8,
		Plays:           4,
		Discards:        3,
		StartingMoney:   4,
		JokerSlots:      5,
		ConsumableSlots: 2,
		MaxSelected:     5,
		InterestRate:    0.2,
		InterestCap:     5,
		MoneyPerHand:    1,
		AnteStart:       1,
		AnteEnd:         8,
	}
}

// anteBase is the score requirement baseline per ante, before the blind's
// multiplier.
var anteBase = map[int]int{
	1: 300,
	2: 800,
	3: 2000,
	4: 5000,
	5: 11000,
	6: 20000,
	7: 35000,
	8: 50000,
}

// RoundState is per-blind ephemeral state: created blank at construction,
// fully re-randomized when a blind is selected, semantically discarded when
// the blind ends.
type RoundState struct {
	IdolRank       Rank     `json:"idolRank"`
	IdolSuit       Suit     `json:"idolSuit"`
	AncientSuit    Suit     `json:"ancientSuit"`
	ToDoHand       HandRank `json:"toDoHand"`
	MailRank       Rank     `json:"mailRank"`
	JacksDiscarded int      `json:"jacksDiscarded"`
	HandSizeBonus  int      `json:"handSizeBonus"`
}

// Game is the aggregate root owning all run state. A single instance is
// accessed from one logical thread of control; independent instances share
// nothing. Card pool transfers are moves: an id lives in exactly one of
// Deck, Available, Discarded, Destroyed at any time.
type Game struct {
	cfg Config
	rng *rand.Rand

	Seed     int64    `json:"seed"`
	DeckKind DeckKind `json:"deckKind"`

	Stage     Stage `json:"stage"`
	Ante      int   `json:"ante"`
	RoundNum  int   `json:"round"`
	NextBlind Blind `json:"nextBlind"`

	Deck      []Card   `json:"deck"`
	Available []Card   `json:"available"`
	Discarded []Card   `json:"discarded"`
	Destroyed []Card   `json:"destroyed"`
	Selected  []uint64 `json:"selected"`

	Jokers      []*Joker      `json:"jokers"`
	Consumables []*Consumable `json:"consumables"`
	Vouchers    []VoucherKind `json:"vouchers"`
	Tags        []TagKind     `json:"tags"`

	PendingTagPack *TagPack `json:"pendingTagPack,omitempty"`
	PendingTag     *TagKind `json:"pendingTag,omitempty"`

	Shop   *Shop              `json:"shop"`
	Levels map[HandRank]Level `json:"levels"`

	Modifiers GameModifiers `json:"modifiers"`
	Round     RoundState    `json:"roundState"`

	Plays    int `json:"plays"`
	Discards int `json:"discards"`
	Money    int `json:"money"`
	Reward   int `json:"reward"`

	// Chips and Mult are scratch accumulators for a single scoring event;
	// Score is the per-blind persistent total.
	Chips         int `json:"chips"`
	Mult          int `json:"mult"`
	Score         int `json:"score"`
	RequiredScore int `json:"requiredScore"`

	HandPlayCounts       map[HandRank]int  `json:"handPlayCounts"`
	BlindHandTypes       map[HandRank]bool `json:"-"`
	AllowedHandType      *HandRank         `json:"allowedHandType,omitempty"`
	HandsPlayedThisBlind int               `json:"handsPlayedThisBlind"`
	TotalHandsPlayed     int               `json:"totalHandsPlayed"`
	TotalDiscardsUsed    int               `json:"totalDiscardsUsed"`
	Skips                int               `json:"skips"`
	AnteVoucherOffered   int               `json:"-"`

	CardsCreated   int `json:"cardsCreated"`
	CardsDestroyed int `json:"cardsDestroyed"`

	LastDiscarded []Card   `json:"-"`
	History       []Action `json:"-"`

	effects         *effectRegistry
	scoreMultiplier float64
	idCounter       uint64
}

// NewGame builds a fresh run. The seed fully determines shuffles, boss
// picks and probabilistic joker draws, so a (seed, action history) pair
// replays to an identical run.
func NewGame(cfg Config, seed int64, deckKind DeckKind) *Game {
	g := &Game{
		cfg:            cfg,
		rng:            rand.New(rand.NewSource(seed)),
		Seed:           seed,
		DeckKind:       deckKind,
		Ante:           cfg.AnteStart,
		RoundNum:       1,
		NextBlind:      BlindSmall,
		Money:          cfg.StartingMoney,
		Chips:          cfg.BaseChips,
		Mult:           cfg.BaseMult,
		Levels:         defaultLevels(),
		HandPlayCounts: make(map[HandRank]int),
		BlindHandTypes: make(map[HandRank]bool),
		Shop:           &Shop{},
		Stage:          Stage{Kind: StagePreBlind},
		effects:        newEffectRegistry(),
	}
	g.Deck = buildDeck(deckKind, g.nextID)
	return g
}

func (g *Game) Config() Config { return g.cfg }

func (g *Game) nextID() uint64 {
	g.idCounter++
	return g.idCounter
}

// HandleAction validates the action against the current stage, dispatches,
// and appends it to the history log on success. A returned error guarantees
// no state change, except for the documented classification side effects of
// play (see playSelected).
func (g *Game) HandleAction(action Action) error {
	if g.Stage.Kind == StageEnd {
		return fmt.Errorf("%w: run is over", appErr.ErrInvalidStage)
	}
	if !action.legalInStage(g.Stage.Kind) {
		return fmt.Errorf("%w: %s not allowed in %s", appErr.ErrInvalidStage, action.Kind, g.Stage.Kind)
	}

	var err error
	switch action.Kind {
	case ActionSelectCard:
		err = g.selectCard(action.CardID)
	case ActionMoveCard:
		err = g.moveCard(action.Direction, action.CardID)
	case ActionPlay:
		err = g.playSelected()
	case ActionDiscard:
		err = g.discardSelected()
	case ActionCashOut:
		err = g.cashout()
	case ActionBuyJoker:
		err = g.buyJoker(action.JokerID)
	case ActionSellJoker:
		err = g.sellJoker(action.JokerID)
	case ActionBuyConsumable:
		err = g.buyConsumable(action.ConsumableID)
	case ActionUseConsumable:
		err = g.useConsumable(action.ConsumableID, action.Targets)
	case ActionBuyVoucher:
		err = g.buyVoucher()
	case ActionNextRound:
		err = g.nextRound()
	case ActionSelectBlind:
		if action.Blind == nil {
			err = errInvalidAction("missing blind")
		} else {
			err = g.selectBlind(*action.Blind)
		}
	case ActionSkipBlind:
		err = g.skipBlind()
	case ActionSelectFromTagPack:
		err = g.selectFromTagPack(action.PackIndex)
	default:
		err = errInvalidAction("unsupported action kind")
	}
	if err != nil {
		return err
	}

	g.History = append(g.History, action)
	return nil
}

func errInvalidAction(msg string) error {
	return fmt.Errorf("%w: %s", appErr.ErrInvalidAction, msg)
}

func errNoSlot(msg string) error {
	return fmt.Errorf("%w: %s", appErr.ErrNoAvailableSlot, msg)
}

// --- derived getters ---

func (g *Game) activeBoss() BossModifier {
	if g.Stage.Kind == StageBlind && g.Stage.Blind == BlindBoss {
		return g.Stage.Boss
	}
	return BossNone
}

func (g *Game) handSize() int {
	size := g.cfg.HandSize + g.Modifiers.HandSizeDelta + g.voucherHandSizeBonus() + g.Round.HandSizeBonus
	size += g.activeBoss().HandSizeDelta()
	if size < 1 {
		size = 1
	}
	return size
}

func (g *Game) jokerSlots() int {
	slots := g.cfg.JokerSlots + g.Modifiers.JokerSlotDelta
	if g.ownsVoucher(VoucherAntimatter) {
		slots++
	}
	return slots
}

func (g *Game) consumableSlots() int {
	slots := g.cfg.ConsumableSlots
	if g.ownsVoucher(VoucherCrystalBall) {
		slots++
	}
	return slots
}

func (g *Game) moneyFloor() int {
	return -g.Modifiers.DebtCeiling
}

func (g *Game) addMoney(n int) {
	g.Money += n
	if g.Money < g.moneyFloor() {
		g.Money = g.moneyFloor()
	}
}

func (g *Game) spendMoney(n int) error {
	if g.Money-n < g.moneyFloor() {
		return fmt.Errorf("%w: need $%d", appErr.ErrInvalidBalance, n)
	}
	g.Money -= n
	return nil
}

// requiredScoreFor computes the blind's threshold: ante base, x1.5 for Big,
// and the boss multiplier (default 2.0) for Boss, truncated to an integer.
func (g *Game) requiredScoreFor(blind Blind, boss BossModifier) int {
	base, ok := anteBase[g.Ante]
	if !ok {
		base = anteBase[8] * (g.Ante - 7)
	}
	factor := blind.scoreFactor()
	if blind == BlindBoss {
		factor = boss.ScoreMultiplier()
	}
	return int(float64(base) * factor)
}

func (g *Game) debuffed(c Card) bool {
	return g.activeBoss().Debuffs(c)
}

// --- card pool plumbing ---

func (g *Game) findAvailable(id uint64) *Card {
	for i := range g.Available {
		if g.Available[i].ID == id {
			return &g.Available[i]
		}
	}
	return nil
}

func (g *Game) createCard(c Card) {
	c.ID = g.nextID()
	g.Deck = append(g.Deck, c)
	g.CardsCreated++
}

// destroyCard moves a card from whichever pool holds it to the destroyed
// list. The id is the join key; the card exists in exactly one pool.
func (g *Game) destroyCard(id uint64) {
	pools := []*[]Card{&g.Available, &g.Deck, &g.Discarded}
	for _, pool := range pools {
		for i := range *pool {
			if (*pool)[i].ID == id {
				card := (*pool)[i]
				*pool = append((*pool)[:i], (*pool)[i+1:]...)
				g.Destroyed = append(g.Destroyed, card)
				g.CardsDestroyed++
				g.unselect(id)
				return
			}
		}
	}
}

func (g *Game) unselect(id uint64) {
	for i, sel := range g.Selected {
		if sel == id {
			g.Selected = append(g.Selected[:i], g.Selected[i+1:]...)
			return
		}
	}
}

func removeByIDs(pool []Card, ids map[uint64]bool) (kept, removed []Card) {
	kept = pool[:0]
	for _, c := range pool {
		if ids[c.ID] {
			removed = append(removed, c)
			continue
		}
		kept = append(kept, c)
	}
	return kept, removed
}

// deal reclaims discarded and available cards into the deck, shuffles, and
// draws the opening hand, honoring the boss first-hand-size override and
// post-draw visibility effects.
func (g *Game) deal() {
	for i := range g.Available {
		g.Available[i].FaceDown = false
	}
	for i := range g.Discarded {
		g.Discarded[i].FaceDown = false
	}
	g.Deck = append(g.Deck, g.Available...)
	g.Deck = append(g.Deck, g.Discarded...)
	g.Available = g.Available[:0]
	g.Discarded = g.Discarded[:0]
	g.Selected = g.Selected[:0]

	g.rng.Shuffle(len(g.Deck), func(i, j int) {
		g.Deck[i], g.Deck[j] = g.Deck[j], g.Deck[i]
	})

	boss := g.activeBoss()
	target := g.handSize()
	if override, ok := boss.FirstHandSize(); ok {
		target = override
	}
	g.drawTo(target)

	if boss.DrawLeftmostFaceDown() && len(g.Available) > 0 {
		g.Available[0].FaceDown = true
	}
}

// drawTo tops the available hand up to n cards, applying probabilistic
// face-down effects to each drawn card.
func (g *Game) drawTo(n int) {
	boss := g.activeBoss()
	odds, hasOdds := boss.FaceDownChance()
	for len(g.Available) < n && len(g.Deck) > 0 {
		card := g.Deck[0]
		g.Deck = g.Deck[1:]
		if hasOdds && g.rng.Intn(odds) == 0 {
			card.FaceDown = true
		}
		g.Available = append(g.Available, card)
	}
}

// --- selection ---

func (g *Game) selectCard(id uint64) error {
	card := g.findAvailable(id)
	if card == nil {
		return fmt.Errorf("%w: card %d not in hand", appErr.ErrNoCardMatch, id)
	}
	for i, sel := range g.Selected {
		if sel == id {
			g.Selected = append(g.Selected[:i], g.Selected[i+1:]...)
			return nil
		}
	}
	if len(g.Selected) >= g.cfg.MaxSelected {
		return fmt.Errorf("%w: at most %d cards", appErr.ErrInvalidSelectCard, g.cfg.MaxSelected)
	}
	g.Selected = append(g.Selected, id)
	return nil
}

func (g *Game) moveCard(dir MoveDirection, id uint64) error {
	idx := -1
	for i := range g.Available {
		if g.Available[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return fmt.Errorf("%w: card %d not in hand", appErr.ErrNoCardMatch, id)
	}
	switch dir {
	case MoveLeft:
		if idx > 0 {
			g.Available[idx-1], g.Available[idx] = g.Available[idx], g.Available[idx-1]
		}
	case MoveRight:
		if idx < len(g.Available)-1 {
			g.Available[idx+1], g.Available[idx] = g.Available[idx], g.Available[idx+1]
		}
	default:
		return errInvalidAction("unknown move direction")
	}
	return nil
}

func (g *Game) selectedCards() []Card {
	cards := make([]Card, 0, len(g.Selected))
	for _, id := range g.Selected {
		if c := g.findAvailable(id); c != nil {
			cards = append(cards, *c)
		}
	}
	return cards
}

// --- play / discard ---

func (g *Game) playSelected() error {
	if g.Plays <= 0 {
		return appErr.ErrNoRemainingPlays
	}

	made, err := BestHand(NewSelectHand(g.selectedCards()), g.Modifiers)
	if err != nil {
		return fmt.Errorf("%w: %v", appErr.ErrInvalidAction, err)
	}

	boss := g.activeBoss()
	if boss.SingleHandType() && g.AllowedHandType != nil && made.Rank != *g.AllowedHandType {
		return errInvalidAction("blind only allows " + g.AllowedHandType.String())
	}
	if boss.ForbidsRepeatHandTypes() && g.BlindHandTypes[made.Rank] {
		return errInvalidAction("hand type already played this blind")
	}

	// Forced random selection happens only after the legality checks pass,
	// so a rejected play never silently rewrites the player's selection.
	if boss.ForcesRandomSelection() {
		g.randomizeSelection(len(g.Selected))
		made, err = BestHand(NewSelectHand(g.selectedCards()), g.Modifiers)
		if err != nil {
			return fmt.Errorf("%w: %v", appErr.ErrInvalidAction, err)
		}
	}

	g.Plays--
	g.HandPlayCounts[made.Rank]++
	g.TotalHandsPlayed++
	g.BlindHandTypes[made.Rank] = true

	g.effects.fire(OnPlay, g, &made)

	score := g.calcScore(&made)

	for _, j := range g.Jokers {
		j.onHandPlayed(g, &made)
	}

	played := make(map[uint64]bool, len(g.Selected))
	for _, id := range g.Selected {
		played[id] = true
	}
	var moved []Card
	g.Available, moved = removeByIDs(g.Available, played)
	// Destroyed-on-score cards already left the pool; don't resurrect them.
	for _, c := range moved {
		if g.inDestroyed(c.ID) {
			continue
		}
		g.Discarded = append(g.Discarded, c)
	}
	g.Selected = g.Selected[:0]

	if forced := boss.ForcedDiscardAfterPlay(); forced > 0 {
		g.forceDiscard(forced)
	}

	g.handleScore(score)

	if g.Stage.Kind == StageBlind {
		g.drawTo(g.handSize())
	}
	return nil
}

func (g *Game) inDestroyed(id uint64) bool {
	for _, c := range g.Destroyed {
		if c.ID == id {
			return true
		}
	}
	return false
}

func (g *Game) randomizeSelection(n int) {
	g.Selected = g.Selected[:0]
	idx := g.rng.Perm(len(g.Available))
	if n > len(idx) {
		n = len(idx)
	}
	for _, i := range idx[:n] {
		g.Selected = append(g.Selected, g.Available[i].ID)
	}
}

// forceDiscard moves n random available cards to the discard pile without
// consuming a discard or firing discard effects.
func (g *Game) forceDiscard(n int) {
	for i := 0; i < n && len(g.Available) > 0; i++ {
		idx := g.rng.Intn(len(g.Available))
		card := g.Available[idx]
		g.Available = append(g.Available[:idx], g.Available[idx+1:]...)
		g.Discarded = append(g.Discarded, card)
		g.unselect(card.ID)
	}
}

func (g *Game) discardSelected() error {
	if g.Discards <= 0 {
		return appErr.ErrNoRemainingDiscards
	}
	if len(g.Selected) == 0 {
		return errInvalidAction("no cards selected")
	}

	g.Discards--
	g.TotalDiscardsUsed++

	selected := make(map[uint64]bool, len(g.Selected))
	for _, id := range g.Selected {
		selected[id] = true
	}
	var moved []Card
	g.Available, moved = removeByIDs(g.Available, selected)
	g.Discarded = append(g.Discarded, moved...)
	g.Selected = g.Selected[:0]
	g.LastDiscarded = moved

	for _, c := range moved {
		if c.Rank == Jack {
			g.Round.JacksDiscarded++
		}
	}

	g.effects.fire(OnDiscard, g, nil)
	for _, j := range g.Jokers {
		j.onDiscardUsed(g, moved)
	}

	g.drawTo(g.handSize())
	return nil
}

// handleScore folds a scoring result into the blind total and resolves the
// win/lose/advance conditions.
func (g *Game) handleScore(score int) {
	g.Score += score

	if g.Score >= g.RequiredScore {
		g.Reward = g.blindReward()
		clearedBoss := g.Stage.Blind == BlindBoss
		g.endRound()
		if clearedBoss {
			g.processBossDefeatedTags()
			if g.Ante >= g.cfg.AnteEnd {
				g.Stage = Stage{Kind: StageEnd, End: EndWin}
				return
			}
			g.Ante++
			g.NextBlind = BlindSmall
		} else {
			g.NextBlind, _ = g.Stage.Blind.successor()
		}
		g.Stage = Stage{Kind: StagePostBlind}
		return
	}

	if g.Plays <= 0 {
		g.Stage = Stage{Kind: StageEnd, End: EndLose}
	}
}

// blindReward: base reward + interest on held money + leftover plays bonus.
func (g *Game) blindReward() int {
	reward := g.Stage.Blind.baseReward()
	if g.Money > 0 {
		interest := int(float64(g.Money) * g.cfg.InterestRate)
		if cap := g.interestCap(); interest > cap {
			interest = cap
		}
		reward += interest
	}
	reward += g.Plays * g.cfg.MoneyPerHand
	return reward
}

// endRound fires the round-end lifecycle: effects, gold card income, joker
// decay, and a registry rebuild so captured snapshots stay fresh.
func (g *Game) endRound() {
	g.effects.fire(OnRoundEnd, g, nil)
	for _, c := range g.Available {
		if c.Enhancement == EnhanceGold {
			g.addMoney(3)
		}
	}
	for _, j := range g.Jokers {
		j.onRoundEnded()
	}
	g.RoundNum++
	g.recomputeModifiers()
	g.effects.registerJokers(g)
}

// --- blind lifecycle ---

func (g *Game) selectBlind(blind Blind) error {
	if blind != g.NextBlind {
		return fmt.Errorf("%w: expected %s", appErr.ErrInvalidBlind, g.NextBlind)
	}

	boss := BossNone
	if blind == BlindBoss {
		boss = g.randomBoss()
		boss = g.processBossEncounterTags(boss)
	}

	g.Stage = Stage{Kind: StageBlind, Blind: blind, Boss: boss}
	g.Score = 0
	g.HandsPlayedThisBlind = 0
	g.BlindHandTypes = make(map[HandRank]bool)
	g.AllowedHandType = nil

	g.Plays = g.cfg.Plays + g.voucherPlayBonus()
	if cap, ok := boss.MaxPlays(); ok && g.Plays > cap {
		g.Plays = cap
	}
	g.Discards = g.cfg.Discards + g.voucherDiscardBonus()
	if override, ok := boss.DiscardOverride(); ok {
		g.Discards = override
	}

	if boss.SingleHandType() {
		allowed := handRanksByStrength[g.rng.Intn(len(handRanksByStrength))]
		g.AllowedHandType = &allowed
	}

	g.RequiredScore = g.requiredScoreFor(blind, boss)

	g.initRoundState()
	g.processRoundStartTags()
	g.effects.fire(OnBlindSelect, g, nil)
	g.deal()
	g.effects.fire(OnRoundBegin, g, nil)
	return nil
}

func (g *Game) initRoundState() {
	g.Round = RoundState{
		IdolRank:    allRanks[g.rng.Intn(len(allRanks))],
		IdolSuit:    allSuits[g.rng.Intn(len(allSuits))],
		AncientSuit: allSuits[g.rng.Intn(len(allSuits))],
		ToDoHand:    handRanksByStrength[g.rng.Intn(len(handRanksByStrength))],
		MailRank:    allRanks[g.rng.Intn(len(allRanks))],
	}
}

func (g *Game) randomBoss() BossModifier {
	bosses := allBossModifiers()
	return bosses[g.rng.Intn(len(bosses))]
}

func (g *Game) skipBlind() error {
	if g.NextBlind == BlindBoss {
		return errInvalidAction("boss blind cannot be skipped")
	}

	if g.PendingTag != nil {
		g.AddTag(*g.PendingTag)
		g.PendingTag = nil
	} else {
		g.AddTag(g.randomEligibleTag())
	}
	g.Skips++
	g.NextBlind, _ = g.NextBlind.successor()
	return nil
}

func (g *Game) cashout() error {
	g.addMoney(g.Reward)
	g.Reward = 0
	g.Stage = Stage{Kind: StageShop}
	g.Shop.refresh(g)
	g.processShopEnterTags()
	return nil
}

func (g *Game) nextRound() error {
	g.Stage = Stage{Kind: StagePreBlind}
	g.Shop.Voucher = nil
	return nil
}

// --- shop actions ---

func (g *Game) buyJoker(id uint64) error {
	idx, offer := g.Shop.findJoker(id)
	if offer == nil {
		return fmt.Errorf("%w: not in shop", appErr.ErrNoJokerMatch)
	}
	if len(g.Jokers) >= g.jokerSlots() {
		return errNoSlot("joker slots full")
	}
	price := offer.Price
	if offer.Free {
		price = 0
	}
	if err := g.spendMoney(price); err != nil {
		return err
	}
	joker := offer.Joker
	g.Shop.Jokers = append(g.Shop.Jokers[:idx], g.Shop.Jokers[idx+1:]...)
	g.addJoker(joker)
	return nil
}

// addJoker appends and refreshes everything derived from the joker list.
func (g *Game) addJoker(j *Joker) {
	g.Jokers = append(g.Jokers, j)
	g.recomputeModifiers()
	g.effects.registerJokers(g)
}

func (g *Game) sellJoker(id uint64) error {
	idx := -1
	for i, j := range g.Jokers {
		if j.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return appErr.ErrNoJokerMatch
	}

	joker := g.Jokers[idx]
	// Sell effects fire before the money is credited.
	g.effects.fireJoker(OnSell, joker.ID, g)
	g.addMoney(joker.SellValue())
	g.Jokers = append(g.Jokers[:idx], g.Jokers[idx+1:]...)
	g.recomputeModifiers()
	g.effects.registerJokers(g)
	return nil
}

func (g *Game) buyConsumable(id uint64) error {
	idx, offer := g.Shop.findConsumable(id)
	if offer == nil {
		return errInvalidAction("consumable not in shop")
	}
	if len(g.Consumables) >= g.consumableSlots() {
		return errNoSlot("consumable slots full")
	}
	if err := g.spendMoney(offer.Price); err != nil {
		return err
	}
	g.Consumables = append(g.Consumables, offer.Consumable)
	g.Shop.Consumables = append(g.Shop.Consumables[:idx], g.Shop.Consumables[idx+1:]...)
	return nil
}

func (g *Game) useConsumable(id uint64, targets []uint64) error {
	idx := -1
	for i, c := range g.Consumables {
		if c.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return errInvalidAction("consumable not owned")
	}

	if err := g.Consumables[idx].useEffect(g, targets); err != nil {
		return err
	}
	g.Consumables = append(g.Consumables[:idx], g.Consumables[idx+1:]...)
	return nil
}

func (g *Game) buyVoucher() error {
	if g.Shop.Voucher == nil {
		return errInvalidAction("no voucher offered")
	}
	v := *g.Shop.Voucher
	if err := g.spendMoney(g.Shop.VoucherPrice(v)); err != nil {
		return err
	}
	g.Vouchers = append(g.Vouchers, v)
	g.Shop.Voucher = nil
	return nil
}

func (g *Game) randomJokerKinds(n int) []JokerKind {
	kinds := AllJokerKinds()
	g.rng.Shuffle(len(kinds), func(i, j int) { kinds[i], kinds[j] = kinds[j], kinds[i] })
	if n > len(kinds) {
		n = len(kinds)
	}
	picked := make([]JokerKind, n)
	copy(picked, kinds[:n])
	return picked
}
