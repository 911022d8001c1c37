package engine

import "errors"

// Rule violations. The messages are shown to players as-is.
var (
	ErrEmptySource        = errors.New("That space is empty.")
	ErrCellOccupied       = errors.New("A card is already present on that cell.")
	ErrFoundationRejected = errors.New("That card is not valid on that foundation.")
	ErrCascadeRejected    = errors.New("That card cannot go on that cascade.")
	ErrRunRejected        = errors.New("Those cards cannot go on that cascade.")
	ErrInvalidSource      = errors.New("You cannot take a card from a foundation.")
	ErrAlreadyAtFirstMove = errors.New("Already at first move.")
)

// Command parse failures
var (
	ErrInvalidInput   = errors.New("Invalid input.")
	ErrSameCoordinate = errors.New("The source and destination are the same.")
	ErrInvalidCount   = errors.New("Invalid count.")
)

// Precondition failures. Reaching one of these means the caller has a bug.
var (
	ErrRankBoundary      = errors.New("rank out of range")
	ErrNotEnoughCards    = errors.New("not enough cards in cascade")
	ErrInvalidCoordinate = errors.New("coordinate out of range")
)

// ErrorKind groups errors for callers that map them onto responses
type ErrorKind string

const (
	KindNone               ErrorKind = ""
	KindParse              ErrorKind = "parse"
	KindEmptySource        ErrorKind = "empty_source"
	KindIllegalDestination ErrorKind = "illegal_destination"
	KindInvalidSource      ErrorKind = "invalid_source"
	KindAlreadyAtFirstMove ErrorKind = "already_at_first_move"
	KindInternal           ErrorKind = "internal"
)

// KindOf classifies err. Unknown errors are KindInternal.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrSameCoordinate), errors.Is(err, ErrInvalidCount):
		return KindParse
	case errors.Is(err, ErrEmptySource):
		return KindEmptySource
	case errors.Is(err, ErrCellOccupied), errors.Is(err, ErrFoundationRejected),
		errors.Is(err, ErrCascadeRejected), errors.Is(err, ErrRunRejected):
		return KindIllegalDestination
	case errors.Is(err, ErrInvalidSource):
		return KindInvalidSource
	case errors.Is(err, ErrAlreadyAtFirstMove):
		return KindAlreadyAtFirstMove
	}
	return KindInternal
}

// IsRuleError reports whether err is a player-facing rejection rather than a bug
func IsRuleError(err error) bool {
	kind := KindOf(err)
	return kind != KindNone && kind != KindInternal
}
