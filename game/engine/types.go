package engine

import (
	"fmt"
	"strings"
)

// Board dimensions for classic FreeCell
const (
	NumCells       = 4
	NumFoundations = 4
	NumCascades    = 8
	DeckSize       = 52

	// MaxCount is the run length requested by a bare "+" prefix
	MaxCount = 255
)

// Suit is one of the four French suits
type Suit uint8

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

// Suits lists every suit in declaration order
var Suits = [4]Suit{Clubs, Diamonds, Hearts, Spades}

// IsRed reports whether the suit is Hearts or Diamonds
func (s Suit) IsRed() bool {
	return s == Diamonds || s == Hearts
}

// Letter returns the single-letter code used in card notation
func (s Suit) Letter() byte {
	switch s {
	case Clubs:
		return 'C'
	case Diamonds:
		return 'D'
	case Hearts:
		return 'H'
	case Spades:
		return 'S'
	}
	return '?'
}

// Symbol returns the unicode suit symbol
func (s Suit) Symbol() string {
	switch s {
	case Clubs:
		return "♣"
	case Diamonds:
		return "♦"
	case Hearts:
		return "♥"
	case Spades:
		return "♠"
	}
	return "?"
}

func (s Suit) String() string {
	switch s {
	case Clubs:
		return "clubs"
	case Diamonds:
		return "diamonds"
	case Hearts:
		return "hearts"
	case Spades:
		return "spades"
	}
	return fmt.Sprintf("Suit(%d)", uint8(s))
}

// MarshalText encodes the suit by name
func (s Suit) MarshalText() ([]byte, error) {
	if s > Spades {
		return nil, fmt.Errorf("invalid suit %d", uint8(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText accepts a suit name or its letter code
func (s *Suit) UnmarshalText(text []byte) error {
	parsed, err := parseSuit(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func parseSuit(raw string) (Suit, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "c", "clubs", "♣":
		return Clubs, nil
	case "d", "diamonds", "♦":
		return Diamonds, nil
	case "h", "hearts", "♥":
		return Hearts, nil
	case "s", "spades", "♠":
		return Spades, nil
	}
	return 0, fmt.Errorf("unknown suit %q", raw)
}

// Rank is a card rank from Ace (1) to King (13)
type Rank uint8

const (
	Ace Rank = iota + 1
	Two
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
)

// Valid reports whether r lies in Ace..King
func (r Rank) Valid() bool {
	return r >= Ace && r <= King
}

// TryIncrement returns the next rank up, failing at King
func (r Rank) TryIncrement() (Rank, error) {
	if !r.Valid() || r == King {
		return 0, ErrRankBoundary
	}
	return r + 1, nil
}

// TryDecrement returns the next rank down, failing at Ace
func (r Rank) TryDecrement() (Rank, error) {
	if !r.Valid() || r == Ace {
		return 0, ErrRankBoundary
	}
	return r - 1, nil
}

const rankLetters = "A23456789TJQK"

// Letter returns the single-character rank code (T for ten)
func (r Rank) Letter() byte {
	if !r.Valid() {
		return '?'
	}
	return rankLetters[r-1]
}

func (r Rank) String() string {
	switch r {
	case Ace:
		return "A"
	case Ten:
		return "10"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	}
	if r.Valid() {
		return string(r.Letter())
	}
	return fmt.Sprintf("Rank(%d)", uint8(r))
}

func parseRank(raw string) (Rank, error) {
	switch strings.ToUpper(raw) {
	case "A", "1":
		return Ace, nil
	case "T", "10":
		return Ten, nil
	case "J", "11":
		return Jack, nil
	case "Q", "12":
		return Queen, nil
	case "K", "13":
		return King, nil
	}
	if len(raw) == 1 && raw[0] >= '2' && raw[0] <= '9' {
		return Rank(raw[0] - '0'), nil
	}
	return 0, fmt.Errorf("unknown rank %q", raw)
}

// Card is an immutable playing card
type Card struct {
	Rank Rank `json:"rank" yaml:"rank"`
	Suit Suit `json:"suit" yaml:"suit"`
}

// NewCard builds a card, rejecting ranks outside Ace..King
func NewCard(rank Rank, suit Suit) (Card, error) {
	if !rank.Valid() {
		return Card{}, fmt.Errorf("%w: %d", ErrRankBoundary, uint8(rank))
	}
	if suit > Spades {
		return Card{}, fmt.Errorf("invalid suit %d", uint8(suit))
	}
	return Card{Rank: rank, Suit: suit}, nil
}

// IsRed reports the card's colour
func (c Card) IsRed() bool {
	return c.Suit.IsRed()
}

// CanStackOn reports whether c may be placed directly on top of below in a
// cascade: alternate colours and exactly one rank lower. Nothing goes on an Ace.
func (c Card) CanStackOn(below Card) bool {
	if c.IsRed() == below.IsRed() {
		return false
	}
	expected, err := below.Rank.TryDecrement()
	if err != nil {
		return false
	}
	return c.Rank == expected
}

// String returns the two-character code, e.g. "TH" or "AS"
func (c Card) String() string {
	return string([]byte{c.Rank.Letter(), c.Suit.Letter()})
}

// Label returns a display label such as "10♥"
func (c Card) Label() string {
	return c.Rank.String() + c.Suit.Symbol()
}

// ParseCard parses notation like "AS", "TH", "10h" or "Q♣"
func ParseCard(raw string) (Card, error) {
	raw = strings.TrimSpace(raw)
	runes := []rune(raw)
	if len(runes) < 2 {
		return Card{}, fmt.Errorf("invalid card %q", raw)
	}

	suit, err := parseSuit(string(runes[len(runes)-1]))
	if err != nil {
		return Card{}, fmt.Errorf("invalid card %q: %w", raw, err)
	}
	rank, err := parseRank(string(runes[:len(runes)-1]))
	if err != nil {
		return Card{}, fmt.Errorf("invalid card %q: %w", raw, err)
	}

	return Card{Rank: rank, Suit: suit}, nil
}
