package game

type ActionKind string

const (
	ActionSelectCard        ActionKind = "select_card"
	ActionMoveCard          ActionKind = "move_card"
	ActionPlay              ActionKind = "play"
	ActionDiscard           ActionKind = "discard"
	ActionCashOut           ActionKind = "cash_out"
	ActionBuyJoker          ActionKind = "buy_joker"
	ActionSellJoker         ActionKind = "sell_joker"
	ActionBuyConsumable     ActionKind = "buy_consumable"
	ActionUseConsumable     ActionKind = "use_consumable"
	ActionBuyVoucher        ActionKind = "buy_voucher"
	ActionNextRound         ActionKind = "next_round"
	ActionSelectBlind       ActionKind = "select_blind"
	ActionSkipBlind         ActionKind = "skip_blind"
	ActionSelectFromTagPack ActionKind = "select_from_tag_pack"
)

type MoveDirection string

const (
	MoveLeft  MoveDirection = "left"
	MoveRight MoveDirection = "right"
)

// Action is the external command surface. One struct covers every kind;
// only the fields the kind reads are meaningful.
type Action struct {
	Kind         ActionKind    `json:"kind"`
	CardID       uint64        `json:"cardId,omitempty"`
	Direction    MoveDirection `json:"direction,omitempty"`
	Blind        *Blind        `json:"blind,omitempty"`
	JokerID      uint64        `json:"jokerId,omitempty"`
	ConsumableID uint64        `json:"consumableId,omitempty"`
	Targets      []uint64      `json:"targets,omitempty"`
	PackIndex    int           `json:"packIndex,omitempty"`
}

// stageFor maps each action to the stages permitting it. Validation happens
// before any mutation; an action issued elsewhere fails with ErrInvalidStage
// and leaves the game untouched.
var actionStages = map[ActionKind][]StageKind{
	ActionSelectCard:        {StageBlind},
	ActionMoveCard:          {StageBlind},
	ActionPlay:              {StageBlind},
	ActionDiscard:           {StageBlind},
	ActionCashOut:           {StagePostBlind},
	ActionBuyJoker:          {StageShop},
	ActionSellJoker:         {StageShop, StagePreBlind},
	ActionBuyConsumable:     {StageShop},
	ActionUseConsumable:     {StageBlind, StageShop},
	ActionBuyVoucher:        {StageShop},
	ActionNextRound:         {StageShop},
	ActionSelectBlind:       {StagePreBlind},
	ActionSkipBlind:         {StagePreBlind},
	ActionSelectFromTagPack: {StagePreBlind, StageBlind, StagePostBlind, StageShop},
}

func (a Action) legalInStage(kind StageKind) bool {
	for _, s := range actionStages[a.Kind] {
		if s == kind {
			return true
		}
	}
	return false
}

// LegalActions enumerates the action kinds currently permitted by stage and
// coarse state. Consumed by external harnesses building masked policies; the
// engine itself never reads it.
func (g *Game) LegalActions() []ActionKind {
	legal := make([]ActionKind, 0, 8)
	for _, kind := range []ActionKind{
		ActionSelectCard, ActionMoveCard, ActionPlay, ActionDiscard,
		ActionCashOut, ActionBuyJoker, ActionSellJoker, ActionBuyConsumable,
		ActionUseConsumable, ActionBuyVoucher, ActionNextRound,
		ActionSelectBlind, ActionSkipBlind, ActionSelectFromTagPack,
	} {
		if !(Action{Kind: kind}).legalInStage(g.Stage.Kind) {
			continue
		}
		switch kind {
		case ActionPlay:
			if g.Plays == 0 || len(g.Selected) == 0 {
				continue
			}
		case ActionDiscard:
			if g.Discards == 0 || len(g.Selected) == 0 {
				continue
			}
		case ActionSkipBlind:
			if g.NextBlind == BlindBoss {
				continue
			}
		case ActionSellJoker:
			if len(g.Jokers) == 0 {
				continue
			}
		case ActionUseConsumable:
			if len(g.Consumables) == 0 {
				continue
			}
		case ActionSelectFromTagPack:
			if g.PendingTagPack == nil {
				continue
			}
		}
		legal = append(legal, kind)
	}
	return legal
}
