package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// PileKind identifies the kind of pile a coordinate points at
type PileKind uint8

const (
	CascadePile PileKind = iota
	CellPile
	FoundationPile
)

func (k PileKind) String() string {
	switch k {
	case CascadePile:
		return "cascade"
	case CellPile:
		return "cell"
	case FoundationPile:
		return "foundation"
	}
	return fmt.Sprintf("PileKind(%d)", uint8(k))
}

// Coordinate addresses one pile on the board. Index is zero-based.
type Coordinate struct {
	Kind  PileKind `json:"kind"`
	Index int      `json:"index"`
}

// CascadeAt addresses cascade n (0-7)
func CascadeAt(n int) Coordinate { return Coordinate{Kind: CascadePile, Index: n} }

// CellAt addresses cell n (0-3)
func CellAt(n int) Coordinate { return Coordinate{Kind: CellPile, Index: n} }

// FoundationAt addresses foundation n (0-3)
func FoundationAt(n int) Coordinate { return Coordinate{Kind: FoundationPile, Index: n} }

// Valid reports whether the index is in range for the pile kind
func (c Coordinate) Valid() bool {
	switch c.Kind {
	case CascadePile:
		return c.Index >= 0 && c.Index < NumCascades
	case CellPile:
		return c.Index >= 0 && c.Index < NumCells
	case FoundationPile:
		return c.Index >= 0 && c.Index < NumFoundations
	}
	return false
}

// String returns the command character for the coordinate
func (c Coordinate) String() string {
	if !c.Valid() {
		return "?"
	}
	switch c.Kind {
	case CascadePile:
		return string(rune('1' + c.Index))
	case CellPile:
		return string(rune('a' + c.Index))
	default:
		return string(rune('w' + c.Index))
	}
}

// ParseCoordinate parses a single coordinate character
func ParseCoordinate(s string) (Coordinate, error) {
	if len(s) != 1 {
		return Coordinate{}, ErrInvalidInput
	}
	switch c := s[0]; {
	case c >= '1' && c <= '8':
		return CascadeAt(int(c - '1')), nil
	case c >= 'a' && c <= 'd':
		return CellAt(int(c - 'a')), nil
	case c >= 'A' && c <= 'D':
		return CellAt(int(c - 'A')), nil
	case c >= 'w' && c <= 'z':
		return FoundationAt(int(c - 'w')), nil
	case c >= 'W' && c <= 'Z':
		return FoundationAt(int(c - 'W')), nil
	}
	if i := strings.IndexByte("!@#$%^&*", s[0]); i >= 0 {
		return CascadeAt(i), nil
	}
	return Coordinate{}, ErrInvalidInput
}

// ParseSource parses a coordinate that cards may be taken from
func ParseSource(s string) (Coordinate, error) {
	c, err := ParseCoordinate(s)
	if err != nil {
		return Coordinate{}, err
	}
	if c.Kind == FoundationPile {
		return Coordinate{}, ErrInvalidSource
	}
	return c, nil
}

// Action is a request to change the game: Move or Undo
type Action interface {
	isAction()
	String() string
}

// Move relocates the top card of From onto To. For cascade to cascade moves
// the engine may carry a whole run; Count, when non-zero, caps the run length
// and selects the length when the destination cascade is empty.
type Move struct {
	From  Coordinate `json:"from"`
	To    Coordinate `json:"to"`
	Count int        `json:"count,omitempty"`
}

// Undo reverts the most recent accepted move
type Undo struct{}

func (Move) isAction() {}
func (Undo) isAction() {}

// String renders the move in command notation, e.g. "3a" or "15+78"
func (m Move) String() string {
	coords := m.From.String() + m.To.String()
	if m.Count > 0 {
		return strconv.Itoa(m.Count) + "+" + coords
	}
	return coords
}

func (Undo) String() string { return "undo" }

// ParseAction parses a player command.
//
//	3a      cascade 3 to cell a
//	15+78   up to 15 cards from cascade 7 to cascade 8
//	+78     as many cards as allowed
//	u, undo revert the previous move
func ParseAction(input string) (Action, error) {
	input = strings.TrimSpace(input)
	if lower := strings.ToLower(input); lower == "u" || lower == "undo" {
		return Undo{}, nil
	}

	var count int
	coords := input
	if prefix, rest, found := strings.Cut(input, "+"); found {
		coords = rest
		if prefix == "" {
			count = MaxCount
		} else {
			n, err := strconv.ParseUint(prefix, 10, 8)
			if err != nil || n == 0 {
				return nil, ErrInvalidCount
			}
			count = int(n)
		}
	}

	if len(coords) != 2 {
		return nil, ErrInvalidInput
	}
	from, err := ParseSource(coords[0:1])
	if err != nil {
		return nil, err
	}
	to, err := ParseCoordinate(coords[1:2])
	if err != nil {
		return nil, err
	}
	if from == to {
		return nil, ErrSameCoordinate
	}

	return Move{From: from, To: to, Count: count}, nil
}
