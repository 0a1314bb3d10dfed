package game

type StageKind uint8

const (
	StagePreBlind StageKind = iota
	StageBlind
	StagePostBlind
	StageShop
	StageEnd
)

func (s StageKind) String() string {
	switch s {
	case StagePreBlind:
		return "pre_blind"
	case StageBlind:
		return "blind"
	case StagePostBlind:
		return "post_blind"
	case StageShop:
		return "shop"
	case StageEnd:
		return "end"
	}
	return "unknown"
}

type Blind uint8

const (
	BlindSmall Blind = iota
	BlindBig
	BlindBoss
)

func (b Blind) String() string {
	switch b {
	case BlindSmall:
		return "small"
	case BlindBig:
		return "big"
	case BlindBoss:
		return "boss"
	}
	return "unknown"
}

// ParseBlind is the inverse of String.
func ParseBlind(s string) (Blind, bool) {
	switch s {
	case "small":
		return BlindSmall, true
	case "big":
		return BlindBig, true
	case "boss":
		return BlindBoss, true
	}
	return BlindSmall, false
}

// successor returns the blind that follows this one within a round.
func (b Blind) successor() (Blind, bool) {
	switch b {
	case BlindSmall:
		return BlindBig, true
	case BlindBig:
		return BlindBoss, true
	}
	return BlindSmall, false
}

// baseReward is the cash reward for clearing the blind, before interest
// and per-hand bonuses.
func (b Blind) baseReward() int {
	switch b {
	case BlindSmall:
		return 3
	case BlindBig:
		return 4
	case BlindBoss:
		return 5
	}
	return 0
}

// scoreFactor scales the ante base score for non-boss blinds. Boss blinds
// use the boss modifier's multiplier instead.
func (b Blind) scoreFactor() float64 {
	if b == BlindBig {
		return 1.5
	}
	return 1.0
}

type EndResult uint8

const (
	EndNone EndResult = iota
	EndWin
	EndLose
)

func (e EndResult) String() string {
	switch e {
	case EndWin:
		return "win"
	case EndLose:
		return "lose"
	}
	return "none"
}

// Stage is the state-machine discriminant. Exactly one stage is active at a
// time; the boss modifier is an immutable snapshot chosen when a Boss blind
// stage is entered and discarded when it ends.
type Stage struct {
	Kind  StageKind    `json:"kind"`
	Blind Blind        `json:"blind,omitempty"`
	Boss  BossModifier `json:"boss,omitempty"`
	End   EndResult    `json:"end,omitempty"`
}

func (s Stage) String() string {
	switch s.Kind {
	case StageBlind:
		if s.Blind == BlindBoss {
			return "blind(" + s.Blind.String() + ", " + s.Boss.String() + ")"
		}
		return "blind(" + s.Blind.String() + ")"
	case StageEnd:
		return "end(" + s.End.String() + ")"
	}
	return s.Kind.String()
}
