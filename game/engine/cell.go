package engine

import "encoding/json"

// Cell is a free cell holding at most one card
type Cell struct {
	card     Card
	occupied bool
}

// IsEmpty reports whether the cell holds no card
func (c *Cell) IsEmpty() bool {
	return !c.occupied
}

// Peek returns the held card without removing it
func (c *Cell) Peek() (Card, bool) {
	return c.card, c.occupied
}

// TryPush places card in the cell if it is empty. On failure the cell is
// unchanged and the caller still owns card.
func (c *Cell) TryPush(card Card) error {
	if c.occupied {
		return ErrCellOccupied
	}
	c.card, c.occupied = card, true
	return nil
}

// Take removes and returns the held card
func (c *Cell) Take() (Card, bool) {
	if !c.occupied {
		return Card{}, false
	}
	card := c.card
	c.card, c.occupied = Card{}, false
	return card, true
}

// MarshalJSON encodes the cell as its card or null
func (c Cell) MarshalJSON() ([]byte, error) {
	if !c.occupied {
		return []byte("null"), nil
	}
	return json.Marshal(c.card)
}

// UnmarshalJSON decodes a card or null
func (c *Cell) UnmarshalJSON(data []byte) error {
	var card *Card
	if err := json.Unmarshal(data, &card); err != nil {
		return err
	}
	*c = Cell{}
	if card != nil {
		c.card, c.occupied = *card, true
	}
	return nil
}
