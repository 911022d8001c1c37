package engine

import (
	"encoding/json"
	"fmt"
)

// Foundation is an ascending same-suit pile starting at Ace. Its suit is
// whatever the first card placed on it was.
type Foundation struct {
	cards []Card
}

// Suit returns the suit of the pile, if any card has been placed
func (f *Foundation) Suit() (Suit, bool) {
	card, ok := f.Peek()
	return card.Suit, ok
}

// Rank returns the rank of the top card, or 0 when empty
func (f *Foundation) Rank() Rank {
	card, ok := f.Peek()
	if !ok {
		return 0
	}
	return card.Rank
}

// Peek returns the top card
func (f *Foundation) Peek() (Card, bool) {
	if len(f.cards) == 0 {
		return Card{}, false
	}
	return f.cards[len(f.cards)-1], true
}

// IsEmpty reports whether no card has been placed
func (f *Foundation) IsEmpty() bool {
	return len(f.cards) == 0
}

// Len returns the number of cards on the pile
func (f *Foundation) Len() int {
	return len(f.cards)
}

// IsComplete reports whether the pile runs Ace through King
func (f *Foundation) IsComplete() bool {
	return f.Rank() == King
}

// Cards returns a copy of the pile, Ace first
func (f *Foundation) Cards() []Card {
	return append([]Card(nil), f.cards...)
}

// IsLegal reports whether card can be placed on the pile
func (f *Foundation) IsLegal(card Card) bool {
	top, ok := f.Peek()
	if !ok {
		return card.Rank == Ace
	}
	next, err := top.Rank.TryIncrement()
	return err == nil && card.Suit == top.Suit && card.Rank == next
}

// TryPush places card on the pile, leaving it untouched on failure
func (f *Foundation) TryPush(card Card) error {
	if !f.IsLegal(card) {
		return ErrFoundationRejected
	}
	f.cards = append(f.cards, card)
	return nil
}

func (f Foundation) clone() Foundation {
	return Foundation{cards: append([]Card(nil), f.cards...)}
}

// MarshalJSON encodes the pile as a list of cards
func (f Foundation) MarshalJSON() ([]byte, error) {
	if f.cards == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(f.cards)
}

// UnmarshalJSON rebuilds the pile, rejecting sequences that break the
// ascending same-suit invariant
func (f *Foundation) UnmarshalJSON(data []byte) error {
	var cards []Card
	if err := json.Unmarshal(data, &cards); err != nil {
		return err
	}
	var rebuilt Foundation
	for i, card := range cards {
		if err := rebuilt.TryPush(card); err != nil {
			return fmt.Errorf("foundation card %d (%s): %w", i, card, err)
		}
	}
	*f = rebuilt
	return nil
}
