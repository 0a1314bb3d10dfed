package game

// BossModifier is the rule variant active for a single Boss blind. It is
// purely advisory: every method is a const query, and the game orchestrates
// all mutations the answers imply. One modifier is chosen when the Boss
// stage is entered and discarded when the stage ends.
type BossModifier uint8

const (
	BossNone BossModifier = iota
	BossTheWall
	BossTheHook
	BossTheClub
	BossTheGoad
	BossTheWindow
	BossTheHead
	BossThePlant
	BossTheArm
	BossTheEye
	BossTheMouth
	BossTheVeil
	BossTheHouse
	BossTheWheel
	BossTheTooth
	BossTheFlint
	BossTheManacle
	BossTheWater
	BossTheNeedle
	BossTheSerpent
	BossTheTrap
)

var bossNames = map[BossModifier]string{
	BossTheWall:    "The Wall",
	BossTheHook:    "The Hook",
	BossTheClub:    "The Club",
	BossTheGoad:    "The Goad",
	BossTheWindow:  "The Window",
	BossTheHead:    "The Head",
	BossThePlant:   "The Plant",
	BossTheArm:     "The Arm",
	BossTheEye:     "The Eye",
	BossTheMouth:   "The Mouth",
	BossTheVeil:    "The Veil",
	BossTheHouse:   "The House",
	BossTheWheel:   "The Wheel",
	BossTheTooth:   "The Tooth",
	BossTheFlint:   "The Flint",
	BossTheManacle: "The Manacle",
	BossTheWater:   "The Water",
	BossTheNeedle:  "The Needle",
	BossTheSerpent: "The Serpent",
	BossTheTrap:    "The Trap",
}

func (b BossModifier) String() string {
	if name, ok := bossNames[b]; ok {
		return name
	}
	return "none"
}

func allBossModifiers() []BossModifier {
	bosses := make([]BossModifier, 0, len(bossNames))
	for b := BossTheWall; b <= BossTheTrap; b++ {
		bosses = append(bosses, b)
	}
	return bosses
}

// ScoreMultiplier scales the blind's required score. Default 2.0 for a boss.
func (b BossModifier) ScoreMultiplier() float64 {
	if b == BossTheWall {
		return 2.5
	}
	return 2.0
}

// Debuffs reports whether a card's chip/mult contribution is nullified.
// The card stays in the hand; only its scoring is suppressed.
func (b BossModifier) Debuffs(c Card) bool {
	if c.FaceDown {
		return true
	}
	switch b {
	case BossTheClub:
		return c.HasSuit(Clubs)
	case BossTheGoad:
		return c.HasSuit(Spades)
	case BossTheWindow:
		return c.HasSuit(Diamonds)
	case BossTheHead:
		return c.HasSuit(Hearts)
	case BossThePlant:
		return c.Rank == Jack || c.Rank == Queen || c.Rank == King
	}
	return false
}

// HandSizeDelta is the static hand-size change while the blind is active.
func (b BossModifier) HandSizeDelta() int {
	if b == BossTheManacle {
		return -1
	}
	return 0
}

// DiscardOverride forces the blind's discard count when ok.
func (b BossModifier) DiscardOverride() (int, bool) {
	if b == BossTheWater {
		return 0, true
	}
	return 0, false
}

// MaxPlays caps the plays available for the blind when ok.
func (b BossModifier) MaxPlays() (int, bool) {
	if b == BossTheNeedle {
		return 1, true
	}
	return 0, false
}

// FirstHandSize overrides the size of the opening deal when ok.
func (b BossModifier) FirstHandSize() (int, bool) {
	if b == BossTheTrap {
		return 5, true
	}
	return 0, false
}

// FirstHandScoresZero reports whether the first played hand scores nothing.
func (b BossModifier) FirstHandScoresZero() bool {
	return b == BossTheVeil
}

// ForbidsRepeatHandTypes rejects playing a hand type already played this blind.
func (b BossModifier) ForbidsRepeatHandTypes() bool {
	return b == BossTheEye
}

// SingleHandType restricts the blind to one randomly chosen hand type.
func (b BossModifier) SingleHandType() bool {
	return b == BossTheMouth
}

// DrawLeftmostFaceDown marks the leftmost drawn card face down after each deal.
func (b BossModifier) DrawLeftmostFaceDown() bool {
	return b == BossTheHouse
}

// FaceDownChance returns the 1-in-n odds a drawn card is turned face down.
func (b BossModifier) FaceDownChance() (int, bool) {
	if b == BossTheWheel {
		return 7, true
	}
	return 0, false
}

// ForcesRandomSelection replaces the player's selection with a random one.
func (b BossModifier) ForcesRandomSelection() bool {
	return b == BossTheSerpent
}

// ForcedDiscardAfterPlay is how many random cards are discarded after a play.
func (b BossModifier) ForcedDiscardAfterPlay() int {
	if b == BossTheHook {
		return 2
	}
	return 0
}

// MoneyPerCardPlayed is the dollar charge per card played.
func (b BossModifier) MoneyPerCardPlayed() int {
	if b == BossTheTooth {
		return 1
	}
	return 0
}

// DecreasesHandLevel reports whether the played hand type loses a level.
func (b BossModifier) DecreasesHandLevel() bool {
	return b == BossTheArm
}

// HalvesScore reports whether the final score is integer-halved.
func (b BossModifier) HalvesScore() bool {
	return b == BossTheFlint
}
