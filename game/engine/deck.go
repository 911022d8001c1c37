package engine

import (
	"math/rand/v2"
)

// Deck is an ordered pile of cards dealt from the top (the end of the slice)
type Deck struct {
	cards []Card
}

// NewDeck wraps cards bottom-first. The slice is copied.
func NewDeck(cards []Card) *Deck {
	return &Deck{cards: append([]Card(nil), cards...)}
}

// FreshDeck returns the 52 cards in new-box order: Spades and Diamonds
// ascending, then Clubs and Hearts descending, bottom to top.
func FreshDeck() *Deck {
	cards := make([]Card, 0, DeckSize)
	for r := Ace; r <= King; r++ {
		cards = append(cards, Card{Rank: r, Suit: Spades})
	}
	for r := Ace; r <= King; r++ {
		cards = append(cards, Card{Rank: r, Suit: Diamonds})
	}
	for r := King; r >= Ace; r-- {
		cards = append(cards, Card{Rank: r, Suit: Clubs})
	}
	for r := King; r >= Ace; r-- {
		cards = append(cards, Card{Rank: r, Suit: Hearts})
	}
	return &Deck{cards: cards}
}

// ShuffledDeck returns a fresh deck permuted with a randomly seeded source
func ShuffledDeck() *Deck {
	d := FreshDeck()
	d.Shuffle(rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
	return d
}

// SeededDeck returns a fresh deck permuted deterministically from seed
func SeededDeck(seed uint64) *Deck {
	d := FreshDeck()
	d.Shuffle(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
	return d
}

// Shuffle permutes the deck in place (Fisher-Yates)
func (d *Deck) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Pop removes and returns the top card
func (d *Deck) Pop() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	card := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return card, true
}

// Len returns the number of cards left
func (d *Deck) Len() int {
	return len(d.cards)
}

// Cards returns a copy of the remaining cards, bottom first
func (d *Deck) Cards() []Card {
	return append([]Card(nil), d.cards...)
}

// Validate checks that the deck is exactly one standard deck
func (d *Deck) Validate() error {
	return checkFullDeck(d.cards)
}
