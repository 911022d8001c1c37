package engine

import (
	"fmt"
)

// Tableau is the complete board at one point in time
type Tableau struct {
	Cells       [NumCells]Cell             `json:"cells"`
	Foundations [NumFoundations]Foundation `json:"foundations"`
	Cascades    [NumCascades]Cascade       `json:"cascades"`
}

// EmptyTableau returns a board with no cards on it
func EmptyTableau() Tableau {
	return Tableau{}
}

// Deal empties deck onto the cascades round-robin, starting at cascade 0.
// A full deck leaves 7 cards on cascades 0-3 and 6 on cascades 4-7.
func Deal(deck *Deck) Tableau {
	var t Tableau
	for i := 0; ; i = (i + 1) % NumCascades {
		card, ok := deck.Pop()
		if !ok {
			break
		}
		t.Cascades[i].Push(card)
	}
	return t
}

// Clone returns a deep copy that shares no storage with t
func (t *Tableau) Clone() Tableau {
	out := Tableau{Cells: t.Cells}
	for i := range t.Foundations {
		out.Foundations[i] = t.Foundations[i].clone()
	}
	for i := range t.Cascades {
		out.Cascades[i] = t.Cascades[i].clone()
	}
	return out
}

// IsWon reports whether every cascade is rank-descending. An empty board is won.
func (t *Tableau) IsWon() bool {
	for i := range t.Cascades {
		if !t.Cascades[i].IsSequential() {
			return false
		}
	}
	return true
}

// EmptyCells counts free cells
func (t *Tableau) EmptyCells() int {
	n := 0
	for i := range t.Cells {
		if t.Cells[i].IsEmpty() {
			n++
		}
	}
	return n
}

// EmptyCascades counts empty cascades, ignoring the indices in except
func (t *Tableau) EmptyCascades(except ...int) int {
	n := 0
outer:
	for i := range t.Cascades {
		for _, skip := range except {
			if i == skip {
				continue outer
			}
		}
		if t.Cascades[i].IsEmpty() {
			n++
		}
	}
	return n
}

// MaxRun returns how many cards a single move may carry from one cascade to
// another: (free cells + 1) x (other empty cascades + 1), capped by the
// source length.
func (t *Tableau) MaxRun(from, to int) int {
	if from < 0 || from >= NumCascades {
		return 0
	}
	limit := (t.EmptyCells() + 1) * (t.EmptyCascades(from, to) + 1)
	return min(limit, t.Cascades[from].Len())
}

// FoundationCount returns the number of cards on the foundations
func (t *Tableau) FoundationCount() int {
	n := 0
	for i := range t.Foundations {
		n += t.Foundations[i].Len()
	}
	return n
}

// AllCards returns every card on the board
func (t *Tableau) AllCards() []Card {
	cards := make([]Card, 0, DeckSize)
	for i := range t.Cells {
		if card, ok := t.Cells[i].Peek(); ok {
			cards = append(cards, card)
		}
	}
	for i := range t.Foundations {
		cards = append(cards, t.Foundations[i].cards...)
	}
	for i := range t.Cascades {
		cards = append(cards, t.Cascades[i].cards...)
	}
	return cards
}

// CardCount returns the number of cards on the board
func (t *Tableau) CardCount() int {
	return len(t.AllCards())
}

// Validate checks that the board holds exactly one standard deck
func (t *Tableau) Validate() error {
	return checkFullDeck(t.AllCards())
}

func checkFullDeck(cards []Card) error {
	if len(cards) != DeckSize {
		return fmt.Errorf("expected %d cards, found %d", DeckSize, len(cards))
	}
	seen := make(map[Card]bool, DeckSize)
	for _, card := range cards {
		if !card.Rank.Valid() || card.Suit > Spades {
			return fmt.Errorf("invalid card %v", card)
		}
		if seen[card] {
			return fmt.Errorf("duplicate card %s", card)
		}
		seen[card] = true
	}
	return nil
}
