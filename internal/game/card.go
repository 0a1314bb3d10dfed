package game

import "fmt"

// Card codes follow the usual short form: rank then suit ("As", "Td", "2c").
// Ranks: 2-9, T, J, Q, K, A. Suits: s, h, d, c.

type Suit uint8

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

func (s Suit) String() string {
	switch s {
	case Clubs:
		return "c"
	case Diamonds:
		return "d"
	case Hearts:
		return "h"
	case Spades:
		return "s"
	}
	return "?"
}

// Red reports whether the suit is Hearts or Diamonds. Smeared-suit pooling
// treats the two red suits as one suit and the two black suits as another.
func (s Suit) Red() bool {
	return s == Hearts || s == Diamonds
}

type Rank uint8

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

func (r Rank) String() string {
	switch {
	case r >= Two && r <= Nine:
		return string(rune('0' + uint8(r)))
	case r == Ten:
		return "T"
	case r == Jack:
		return "J"
	case r == Queen:
		return "Q"
	case r == King:
		return "K"
	case r == Ace:
		return "A"
	}
	return "?"
}

// BaseChips is the chip value a plain card of this rank contributes when scored.
func (r Rank) BaseChips() int {
	switch {
	case r == Ace:
		return 11
	case r >= Jack:
		return 10
	default:
		return int(r)
	}
}

type Enhancement uint8

const (
	EnhanceNone Enhancement = iota
	EnhanceBonus
	EnhanceMult
	EnhanceWild
	EnhanceGlass
	EnhanceSteel
	EnhanceStone
	EnhanceGold
	EnhanceLucky
)

type Edition uint8

const (
	EditionNone Edition = iota
	EditionFoil
	EditionHolographic
	EditionPolychrome
	EditionNegative
)

type Seal uint8

const (
	SealNone Seal = iota
	SealRed
	SealBlue
	SealGold
	SealPurple
)

// Card is an immutable identity owned by exactly one pool at a time
// (deck, available, discarded, destroyed). ID is the join key used to locate
// a card regardless of which pool currently holds it.
type Card struct {
	ID          uint64      `json:"id"`
	Rank        Rank        `json:"rank"`
	Suit        Suit        `json:"suit"`
	Enhancement Enhancement `json:"enhancement,omitempty"`
	Edition     Edition     `json:"edition,omitempty"`
	Seal        Seal        `json:"seal,omitempty"`
	FaceDown    bool        `json:"faceDown,omitempty"`
}

func (c Card) Code() string {
	return c.Rank.String() + c.Suit.String()
}

func (c Card) String() string {
	return c.Code()
}

// Chips returns the card's chip contribution per trigger, inclusive of
// enhancement and edition bonuses. Stone cards score a flat 50 regardless
// of printed rank.
func (c Card) Chips() int {
	chips := c.Rank.BaseChips()
	switch c.Enhancement {
	case EnhanceStone:
		chips = 50
	case EnhanceBonus:
		chips += 30
	}
	if c.Edition == EditionFoil {
		chips += 50
	}
	return chips
}

// Mult returns the card's additive mult contribution per trigger.
func (c Card) Mult() int {
	mult := 0
	if c.Enhancement == EnhanceMult {
		mult += 4
	}
	if c.Edition == EditionHolographic {
		mult += 10
	}
	return mult
}

// MultMultiplier returns the card's multiplicative mult factor, applied once
// per scoring event (not per trigger).
func (c Card) MultMultiplier() float64 {
	m := 1.0
	if c.Edition == EditionPolychrome {
		m *= 1.5
	}
	switch c.Enhancement {
	case EnhanceGlass:
		m *= 2.0
	case EnhanceSteel:
		m *= 1.5
	}
	return m
}

// HasSuit reports whether the card counts as the given suit. Wild cards match
// every suit; stone cards match none.
func (c Card) HasSuit(s Suit) bool {
	switch c.Enhancement {
	case EnhanceWild:
		return true
	case EnhanceStone:
		return false
	}
	return c.Suit == s
}

// IsFace reports whether the card counts as a face card under the active
// modifiers (Pareidolia makes every card a face).
func (c Card) IsFace(mods GameModifiers) bool {
	if mods.AllFaces {
		return true
	}
	return c.Rank == Jack || c.Rank == Queen || c.Rank == King
}

// DestroyOnScore reports whether scoring the card queues it for destruction.
func (c Card) DestroyOnScore() bool {
	return c.Enhancement == EnhanceGlass
}

// Retriggers returns the extra trigger count granted by the card itself.
func (c Card) Retriggers() int {
	if c.Seal == SealRed {
		return 1
	}
	return 0
}

// DeckKind selects the starting deck a run is built from.
type DeckKind uint8

const (
	DeckStandard DeckKind = iota
	DeckAbandoned
	DeckCheckered
)

func (d DeckKind) String() string {
	switch d {
	case DeckStandard:
		return "standard"
	case DeckAbandoned:
		return "abandoned"
	case DeckCheckered:
		return "checkered"
	}
	return "unknown"
}

// ParseDeckKind is the inverse of String. Empty input means the standard deck.
func ParseDeckKind(s string) (DeckKind, bool) {
	switch s {
	case "", "standard":
		return DeckStandard, true
	case "abandoned":
		return DeckAbandoned, true
	case "checkered":
		return DeckCheckered, true
	}
	return DeckStandard, false
}

var allSuits = []Suit{Clubs, Diamonds, Hearts, Spades}

var allRanks = []Rank{
	Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace,
}

// buildDeck materializes the starting pool for a deck kind. Card IDs are
// assigned from the game's id counter so identities stay unique per run.
func buildDeck(kind DeckKind, nextID func() uint64) []Card {
	var deck []Card
	switch kind {
	case DeckAbandoned:
		// 40 cards, no face cards, all four suits.
		deck = make([]Card, 0, 40)
		for _, s := range allSuits {
			for _, r := range allRanks {
				if r == Jack || r == Queen || r == King {
					continue
				}
				deck = append(deck, Card{ID: nextID(), Rank: r, Suit: s})
			}
		}
	case DeckCheckered:
		// 26 spades and 26 hearts.
		deck = make([]Card, 0, 52)
		for _, s := range []Suit{Spades, Hearts} {
			for i := 0; i < 2; i++ {
				for _, r := range allRanks {
					deck = append(deck, Card{ID: nextID(), Rank: r, Suit: s})
				}
			}
		}
	default:
		deck = make([]Card, 0, 52)
		for _, s := range allSuits {
			for _, r := range allRanks {
				deck = append(deck, Card{ID: nextID(), Rank: r, Suit: s})
			}
		}
	}
	return deck
}

// ParseCard converts a short code like "Ah" or "Td" into a card with zero ID.
// Used by tests and fixtures; engine cards always come from buildDeck.
func ParseCard(code string) (Card, error) {
	if len(code) != 2 {
		return Card{}, fmt.Errorf("invalid card code %q", code)
	}
	var rank Rank
	switch code[0] {
	case '2', '3', '4', '5', '6', '7', '8', '9':
		rank = Rank(code[0] - '0')
	case 'T':
		rank = Ten
	case 'J':
		rank = Jack
	case 'Q':
		rank = Queen
	case 'K':
		rank = King
	case 'A':
		rank = Ace
	default:
		return Card{}, fmt.Errorf("invalid rank in card code %q", code)
	}
	var suit Suit
	switch code[1] {
	case 'c':
		suit = Clubs
	case 'd':
		suit = Diamonds
	case 'h':
		suit = Hearts
	case 's':
		suit = Spades
	default:
		return Card{}, fmt.Errorf("invalid suit in card code %q", code)
	}
	return Card{Rank: rank, Suit: suit}, nil
}
