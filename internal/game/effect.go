package game

// Trigger identifies the lifecycle point an effect callback fires at.
type Trigger uint8

const (
	OnScore Trigger = iota
	OnPlay
	OnDiscard
	OnRoundBegin
	OnRoundEnd
	OnBlindSelect
	OnSell
)

func (t Trigger) String() string {
	switch t {
	case OnScore:
		return "on_score"
	case OnPlay:
		return "on_play"
	case OnDiscard:
		return "on_discard"
	case OnRoundBegin:
		return "on_round_begin"
	case OnRoundEnd:
		return "on_round_end"
	case OnBlindSelect:
		return "on_blind_select"
	case OnSell:
		return "on_sell"
	}
	return "unknown"
}

// EffectFn mutates the game directly; OnScore callbacks additionally receive
// the classified hand. A callback must read live game state via g rather than
// values captured at registration whenever those values can change between
// registration and firing.
type EffectFn func(g *Game, hand *MadeHand)

type Effect struct {
	Trigger Trigger
	JokerID uint64
	Fn      EffectFn
}

// effectRegistry keeps one ordered callback list per trigger. Order is the
// joker list order at last registration time.
type effectRegistry struct {
	byTrigger map[Trigger][]Effect
}

func newEffectRegistry() *effectRegistry {
	return &effectRegistry{byTrigger: make(map[Trigger][]Effect)}
}

// registerJokers clears every list and rebuilds by walking the joker list in
// order, asking each joker for its effect contributions. Re-run after joker
// purchase, joker sale, and round end so captured snapshots stay fresh.
func (r *effectRegistry) registerJokers(g *Game) {
	r.byTrigger = make(map[Trigger][]Effect)
	for _, j := range g.Jokers {
		for _, eff := range j.effects(g) {
			eff.JokerID = j.ID
			r.byTrigger[eff.Trigger] = append(r.byTrigger[eff.Trigger], eff)
		}
	}
}

// fire invokes every callback registered for the trigger, in registration
// order, with no short-circuiting: a callback's mutations are visible to the
// callbacks after it.
func (r *effectRegistry) fire(trigger Trigger, g *Game, hand *MadeHand) {
	for _, eff := range r.byTrigger[trigger] {
		eff.Fn(g, hand)
	}
}

// fireJoker invokes only the callbacks a specific joker registered for the
// trigger. Used for OnSell, which concerns the sold joker alone.
func (r *effectRegistry) fireJoker(trigger Trigger, jokerID uint64, g *Game) {
	for _, eff := range r.byTrigger[trigger] {
		if eff.JokerID == jokerID {
			eff.Fn(g, nil)
		}
	}
}

func (r *effectRegistry) count(trigger Trigger) int {
	return len(r.byTrigger[trigger])
}
