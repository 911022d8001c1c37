package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFreshDeckPopOrder(t *testing.T) {
	deck := FreshDeck()
	require.Equal(t, DeckSize, deck.Len())
	require.NoError(t, deck.Validate())

	var popped []Card
	for {
		card, ok := deck.Pop()
		if !ok {
			break
		}
		popped = append(popped, card)
	}
	require.Len(t, popped, DeckSize)

	// Hearts A..K, Clubs A..K, Diamonds K..A, Spades K..A
	assert.Equal(t, Card{Rank: Ace, Suit: Hearts}, popped[0])
	assert.Equal(t, Card{Rank: King, Suit: Hearts}, popped[12])
	assert.Equal(t, Card{Rank: Ace, Suit: Clubs}, popped[13])
	assert.Equal(t, Card{Rank: King, Suit: Clubs}, popped[25])
	assert.Equal(t, Card{Rank: King, Suit: Diamonds}, popped[26])
	assert.Equal(t, Card{Rank: Ace, Suit: Diamonds}, popped[38])
	assert.Equal(t, Card{Rank: King, Suit: Spades}, popped[39])
	assert.Equal(t, Card{Rank: Ace, Suit: Spades}, popped[51])

	_, ok := deck.Pop()
	assert.False(t, ok, "empty deck should not pop")
}

func TestShuffledDeckIsPermutation(t *testing.T) {
	deck := ShuffledDeck()
	assert.Equal(t, DeckSize, deck.Len())
	assert.NoError(t, deck.Validate())
	assert.ElementsMatch(t, FreshDeck().Cards(), deck.Cards())
}

func TestShuffledDecksDiffer(t *testing.T) {
	// 52! orderings make a repeat practically impossible
	assert.NotEqual(t, ShuffledDeck().Cards(), ShuffledDeck().Cards())
}

func TestSeededDeckIsReproducible(t *testing.T) {
	a := SeededDeck(42)
	b := SeededDeck(42)
	c := SeededDeck(43)

	assert.Equal(t, a.Cards(), b.Cards())
	assert.NotEqual(t, a.Cards(), c.Cards())
	assert.NotEqual(t, FreshDeck().Cards(), a.Cards())
	assert.NoError(t, a.Validate())
}

func TestNewDeckCopiesInput(t *testing.T) {
	cards := mustCards(t, "AS 2S 3S")
	deck := NewDeck(cards)
	cards[2] = mustCard(t, "KH")

	top, ok := deck.Pop()
	require.True(t, ok)
	assert.Equal(t, mustCard(t, "3S"), top)
	assert.Equal(t, 2, deck.Len())
}

func TestDeckValidate(t *testing.T) {
	short := NewDeck(FreshDeck().Cards()[:51])
	assert.Error(t, short.Validate())

	cards := FreshDeck().Cards()
	cards[0] = cards[1]
	assert.Error(t, NewDeck(cards).Validate(), "duplicate card should fail")
}
