package run

import (
	"sync"

	"jokerdeck/internal/game"
	"jokerdeck/pkg/logger"

	"go.uber.org/zap"
)

// CardView is a card as shown to the player. Face-down cards keep their id
// and position but hide everything else.
type CardView struct {
	ID          uint64 `json:"id"`
	Rank        string `json:"rank,omitempty"`
	Suit        string `json:"suit,omitempty"`
	Enhancement int    `json:"enhancement,omitempty"`
	Edition     int    `json:"edition,omitempty"`
	Seal        int    `json:"seal,omitempty"`
	FaceDown    bool   `json:"faceDown,omitempty"`
	Chips       int    `json:"chips"`
}

type JokerView struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Rarity      string `json:"rarity"`
	SellValue   int    `json:"sellValue"`
	Counter     int    `json:"counter,omitempty"`
	RoundsLeft  int    `json:"roundsLeft,omitempty"`
}

type ConsumableView struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

type ShopJokerView struct {
	JokerView
	Price int  `json:"price"`
	Free  bool `json:"free,omitempty"`
}

type ShopConsumableView struct {
	ConsumableView
	Price int `json:"price"`
}

type ShopView struct {
	Jokers      []ShopJokerView      `json:"jokers"`
	Consumables []ShopConsumableView `json:"consumables"`
	Voucher     *VoucherView         `json:"voucher,omitempty"`
}

type VoucherView struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int    `json:"price"`
}

type LevelView struct {
	Hand  string `json:"hand"`
	Level int    `json:"level"`
	Chips int    `json:"chips"`
	Mult  int    `json:"mult"`
}

// RunState is the full client-facing snapshot of a run.
type RunState struct {
	RunID         int64            `json:"runId,string"`
	Stage         string           `json:"stage"`
	Boss          string           `json:"boss,omitempty"`
	Ante          int              `json:"ante"`
	Round         int              `json:"round"`
	NextBlind     string           `json:"nextBlind"`
	Plays         int              `json:"plays"`
	Discards      int              `json:"discards"`
	Money         int              `json:"money"`
	Reward        int              `json:"reward,omitempty"`
	Score         int              `json:"score"`
	RequiredScore int              `json:"requiredScore"`
	DeckLeft      int              `json:"deckLeft"`
	Hand          []CardView       `json:"hand"`
	Selected      []uint64         `json:"selected"`
	Jokers        []JokerView      `json:"jokers"`
	Consumables   []ConsumableView `json:"consumables"`
	Vouchers      []string         `json:"vouchers,omitempty"`
	Tags          []string         `json:"tags,omitempty"`
	TagPack       *game.TagPack    `json:"tagPack,omitempty"`
	Shop          *ShopView        `json:"shop,omitempty"`
	Levels        []LevelView      `json:"levels"`
	LegalActions  []game.ActionKind `json:"legalActions"`
	Result        string           `json:"result,omitempty"`
}

type OutgoingMessage struct {
	Type string      `json:"type"`
	Seq  int64       `json:"seq"`
	Data interface{} `json:"data"`
}

// Runtime is the in-memory authority for one active run: a single engine
// instance behind a mutex, plus the websocket fanout. Persistence hangs off
// the onChange callback so the runtime never touches storage itself.
type Runtime struct {
	runID    int64
	playerID int64
	g        *game.Game
	seq      int64

	subscribers map[int64]chan OutgoingMessage
	nextSubID   int64

	mu sync.Mutex

	onChange func(rt *Runtime, action game.Action, state *RunState)
}

func newRuntime(runID, playerID int64, g *game.Game, onChange func(*Runtime, game.Action, *RunState)) *Runtime {
	return &Runtime{
		runID:       runID,
		playerID:    playerID,
		g:           g,
		subscribers: make(map[int64]chan OutgoingMessage),
		onChange:    onChange,
	}
}

func (rt *Runtime) PlayerID() int64 { return rt.playerID }

// HandleAction applies one player action. On success subscribers get the new
// state and the change callback fires with the action and the fresh snapshot.
func (rt *Runtime) HandleAction(action game.Action) (*RunState, error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	if err := rt.g.HandleAction(action); err != nil {
		return nil, err
	}

	state := rt.exportStateLocked()
	rt.broadcastStateLocked(state)
	if rt.onChange != nil {
		rt.onChange(rt, action, state)
	}
	return state, nil
}

func (rt *Runtime) State() *RunState {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.exportStateLocked()
}

func (rt *Runtime) LegalActions() []game.ActionKind {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.g.LegalActions()
}

func (rt *Runtime) Subscribe() (int64, chan OutgoingMessage) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	rt.nextSubID++
	id := rt.nextSubID
	ch := make(chan OutgoingMessage, 8)
	rt.subscribers[id] = ch

	state := rt.exportStateLocked()
	rt.pushMessageLocked(id, OutgoingMessage{Type: "state", Seq: rt.nextSeqLocked(), Data: state})
	return id, ch
}

func (rt *Runtime) Unsubscribe(id int64) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	if ch, ok := rt.subscribers[id]; ok {
		delete(rt.subscribers, id)
		close(ch)
	}
}

func (rt *Runtime) nextSeqLocked() int64 {
	rt.seq++
	return rt.seq
}

func (rt *Runtime) pushMessageLocked(id int64, msg OutgoingMessage) {
	ch, ok := rt.subscribers[id]
	if !ok {
		return
	}
	select {
	case ch <- msg:
	default:
		logger.Log.Warn("ws subscriber channel full", zap.Int64("runID", rt.runID), zap.Int64("subID", id))
	}
}

func (rt *Runtime) broadcastStateLocked(state *RunState) {
	seq := rt.nextSeqLocked()
	for id := range rt.subscribers {
		rt.pushMessageLocked(id, OutgoingMessage{Type: "state", Seq: seq, Data: state})
	}
}

func (rt *Runtime) exportStateLocked() *RunState {
	g := rt.g

	state := &RunState{
		RunID:         rt.runID,
		Stage:         g.Stage.String(),
		Ante:          g.Ante,
		Round:         g.RoundNum,
		NextBlind:     g.NextBlind.String(),
		Plays:         g.Plays,
		Discards:      g.Discards,
		Money:         g.Money,
		Reward:        g.Reward,
		Score:         g.Score,
		RequiredScore: g.RequiredScore,
		DeckLeft:      len(g.Deck),
		Selected:      append([]uint64(nil), g.Selected...),
		TagPack:       g.PendingTagPack,
		LegalActions:  g.LegalActions(),
	}
	if g.Stage.Kind == game.StageBlind && g.Stage.Blind == game.BlindBoss {
		state.Boss = g.Stage.Boss.String()
	}
	if g.Stage.Kind == game.StageEnd {
		state.Result = g.Stage.End.String()
	}

	state.Hand = make([]CardView, 0, len(g.Available))
	for _, c := range g.Available {
		state.Hand = append(state.Hand, cardView(c))
	}
	state.Jokers = make([]JokerView, 0, len(g.Jokers))
	for _, j := range g.Jokers {
		state.Jokers = append(state.Jokers, jokerView(j))
	}
	state.Consumables = make([]ConsumableView, 0, len(g.Consumables))
	for _, c := range g.Consumables {
		state.Consumables = append(state.Consumables, consumableView(c))
	}
	for _, v := range g.Vouchers {
		state.Vouchers = append(state.Vouchers, v.Name())
	}
	for _, tag := range g.Tags {
		state.Tags = append(state.Tags, tag.Name())
	}
	if g.Stage.Kind == game.StageShop {
		state.Shop = shopView(g)
	}
	for _, rank := range game.AllHandRanks() {
		lvl := g.Levels[rank]
		state.Levels = append(state.Levels, LevelView{
			Hand:  rank.String(),
			Level: lvl.Level,
			Chips: lvl.Chips,
			Mult:  lvl.Mult,
		})
	}
	return state
}

func cardView(c game.Card) CardView {
	if c.FaceDown {
		return CardView{ID: c.ID, FaceDown: true}
	}
	return CardView{
		ID:          c.ID,
		Rank:        c.Rank.String(),
		Suit:        c.Suit.String(),
		Enhancement: int(c.Enhancement),
		Edition:     int(c.Edition),
		Seal:        int(c.Seal),
		Chips:       c.Chips(),
	}
}

func jokerView(j *game.Joker) JokerView {
	return JokerView{
		ID:          j.ID,
		Name:        j.Name(),
		Description: j.Description(),
		Rarity:      j.Rarity().String(),
		SellValue:   j.SellValue(),
		Counter:     j.Counter,
		RoundsLeft:  j.RoundsLeft,
	}
}

func consumableView(c *game.Consumable) ConsumableView {
	return ConsumableView{
		ID:          c.ID,
		Name:        c.Name(),
		Category:    c.Category().String(),
		Description: c.Description(),
	}
}

func shopView(g *game.Game) *ShopView {
	view := &ShopView{
		Jokers:      make([]ShopJokerView, 0, len(g.Shop.Jokers)),
		Consumables: make([]ShopConsumableView, 0, len(g.Shop.Consumables)),
	}
	for _, offer := range g.Shop.Jokers {
		view.Jokers = append(view.Jokers, ShopJokerView{
			JokerView: jokerView(offer.Joker),
			Price:     offer.Price,
			Free:      offer.Free,
		})
	}
	for _, offer := range g.Shop.Consumables {
		view.Consumables = append(view.Consumables, ShopConsumableView{
			ConsumableView: consumableView(offer.Consumable),
			Price:          offer.Price,
		})
	}
	if g.Shop.Voucher != nil {
		v := *g.Shop.Voucher
		view.Voucher = &VoucherView{
			Name:        v.Name(),
			Description: v.Description(),
			Price:       g.Shop.VoucherPrice(v),
		}
	}
	return view
}
