package errors

import "errors"

// Run engine errors. These surface from internal/game and are mapped to HTTP
// statuses at the API boundary; none of them is fatal to the process.
var (
	ErrInvalidStage        = errors.New("action not allowed in current stage")
	ErrInvalidAction       = errors.New("invalid action")
	ErrInvalidBlind        = errors.New("requested blind is not the valid successor")
	ErrInvalidSelectCard   = errors.New("selection exceeds max selected cards")
	ErrNoRemainingPlays    = errors.New("no remaining plays")
	ErrNoRemainingDiscards = errors.New("no remaining discards")
	ErrNoAvailableSlot     = errors.New("no available slot")
	ErrInvalidBalance      = errors.New("insufficient balance")
	ErrNoJokerMatch        = errors.New("joker not found")
	ErrNoCardMatch         = errors.New("card not found")
)

// Hand classification errors. Converted to ErrInvalidAction at the game
// boundary when a play fails to classify.
var (
	ErrNoCards      = errors.New("no cards to classify")
	ErrTooManyCards = errors.New("too many cards to classify")
	ErrUnknownHand  = errors.New("unknown hand")
)

// Service errors.
var (
	ErrUnauthorized    = errors.New("unauthorized")
	ErrPlayerNotFound  = errors.New("player not found")
	ErrRunNotFound     = errors.New("run not found")
	ErrRunAccessDenied = errors.New("run access denied")
)
