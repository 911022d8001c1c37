package engine

import "encoding/json"

// Cascade is one of the eight tableau columns. Any layout is valid; only
// placement onto the pile is constrained.
type Cascade struct {
	cards []Card
}

// NewCascade builds a cascade from cards, bottom first. The slice is copied.
func NewCascade(cards ...Card) Cascade {
	return Cascade{cards: append([]Card(nil), cards...)}
}

// Len returns the number of cards in the cascade
func (c *Cascade) Len() int {
	return len(c.cards)
}

// IsEmpty reports whether the cascade has no cards
func (c *Cascade) IsEmpty() bool {
	return len(c.cards) == 0
}

// Cards returns a copy of the pile, bottom first
func (c *Cascade) Cards() []Card {
	return append([]Card(nil), c.cards...)
}

// Peek returns the top card
func (c *Cascade) Peek() (Card, bool) {
	if len(c.cards) == 0 {
		return Card{}, false
	}
	return c.cards[len(c.cards)-1], true
}

// At returns the card depth positions from the top (depth 1 is the top card)
func (c *Cascade) At(depth int) (Card, bool) {
	if depth < 1 || depth > len(c.cards) {
		return Card{}, false
	}
	return c.cards[len(c.cards)-depth], true
}

// IsLegal reports whether card may be placed on the cascade
func (c *Cascade) IsLegal(card Card) bool {
	top, ok := c.Peek()
	if !ok {
		return true
	}
	return card.CanStackOn(top)
}

// IsRunLegal reports whether run may be placed on the cascade. Only the seam
// between the current top and the run's bottom card is checked.
func (c *Cascade) IsRunLegal(run []Card) bool {
	if len(run) == 0 {
		return true
	}
	return c.IsLegal(run[0])
}

// TryPush places card if legal; on failure the cascade is unchanged
func (c *Cascade) TryPush(card Card) error {
	if !c.IsLegal(card) {
		return ErrCascadeRejected
	}
	c.Push(card)
	return nil
}

// Push places card without checking legality. Used when dealing and when
// restoring a card after a rejected move.
func (c *Cascade) Push(card Card) {
	c.cards = append(c.cards, card)
}

// Pop removes and returns the top card
func (c *Cascade) Pop() (Card, bool) {
	card, ok := c.Peek()
	if ok {
		c.cards = c.cards[:len(c.cards)-1]
	}
	return card, ok
}

// IsSequential reports whether ranks never increase from bottom to top.
// Colour is deliberately not considered; this is the win check.
func (c *Cascade) IsSequential() bool {
	prev := King
	for _, card := range c.cards {
		if card.Rank > prev {
			return false
		}
		prev = card.Rank
	}
	return true
}

// isRun reports whether every card in cards stacks legally on the one below
func isRun(cards []Card) bool {
	for i := 1; i < len(cards); i++ {
		if !cards[i].CanStackOn(cards[i-1]) {
			return false
		}
	}
	return true
}

// TryPopStack removes the top count cards if they form a run (alternating
// colours, descending by one). Returns false and leaves the cascade alone
// when they do not, or when count exceeds the pile.
func (c *Cascade) TryPopStack(count int) ([]Card, bool) {
	if count < 0 || count > len(c.cards) {
		return nil, false
	}
	if count == 0 {
		return []Card{}, true
	}
	if !isRun(c.cards[len(c.cards)-count:]) {
		return nil, false
	}
	run, _ := c.PopStack(count)
	return run, true
}

// PopStack removes the top count cards without checking that they form a run
func (c *Cascade) PopStack(count int) ([]Card, error) {
	if count < 0 || count > len(c.cards) {
		return nil, ErrNotEnoughCards
	}
	split := len(c.cards) - count
	run := append([]Card(nil), c.cards[split:]...)
	c.cards = c.cards[:split]
	return run, nil
}

// TryPushStack places run if its bottom card is legal on the current top.
// On failure the cascade is unchanged and run is intact.
func (c *Cascade) TryPushStack(run []Card) error {
	if !c.IsRunLegal(run) {
		return ErrRunRejected
	}
	c.PushStack(run)
	return nil
}

// PushStack places run without checking legality
func (c *Cascade) PushStack(run []Card) {
	c.cards = append(c.cards, run...)
}

func (c Cascade) clone() Cascade {
	return Cascade{cards: append([]Card(nil), c.cards...)}
}

// MarshalJSON encodes the cascade bottom first
func (c Cascade) MarshalJSON() ([]byte, error) {
	if c.cards == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c.cards)
}

// UnmarshalJSON decodes a list of cards, bottom first
func (c *Cascade) UnmarshalJSON(data []byte) error {
	var cards []Card
	if err := json.Unmarshal(data, &cards); err != nil {
		return err
	}
	c.cards = cards
	return nil
}
