package engine

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rankSortedDeck returns a deck that deals every cascade in descending rank
// order. Each cascade ends up holding a single suit.
func rankSortedDeck() *Deck {
	cards := make([]Card, 0, DeckSize)
	for r := Ace; r <= King; r++ {
		for _, s := range Suits {
			cards = append(cards, Card{Rank: r, Suit: s})
		}
	}
	return NewDeck(cards)
}

func TestEmptyTableau(t *testing.T) {
	tab := EmptyTableau()
	assert.Equal(t, NumCells, tab.EmptyCells())
	assert.Equal(t, NumCascades, tab.EmptyCascades())
	assert.Equal(t, 0, tab.CardCount())
	assert.True(t, tab.IsWon(), "empty board is won")
}

func TestDealShape(t *testing.T) {
	tab := Deal(FreshDeck())

	for i := 0; i < 4; i++ {
		assert.Equal(t, 7, tab.Cascades[i].Len(), "cascade %d", i)
	}
	for i := 4; i < NumCascades; i++ {
		assert.Equal(t, 6, tab.Cascades[i].Len(), "cascade %d", i)
	}
	assert.Equal(t, NumCells, tab.EmptyCells())
	assert.Equal(t, 0, tab.FoundationCount())
	assert.Equal(t, DeckSize, tab.CardCount())
	assert.NoError(t, tab.Validate())

	// The first card dealt sits at the bottom of cascade 0 and the last
	// card dealt to each cascade sits on top.
	bottom, _ := tab.Cascades[0].At(7)
	assert.Equal(t, mustCard(t, "AH"), bottom)
	top, _ := tab.Cascades[0].Peek()
	assert.Equal(t, mustCard(t, "4S"), top)
	top, _ = tab.Cascades[7].Peek()
	assert.Equal(t, mustCard(t, "5S"), top)

	assert.False(t, tab.IsWon())
}

func TestDealShortDeck(t *testing.T) {
	tab := Deal(NewDeck(mustCards(t, "AS 2S 3S")))
	assert.Equal(t, 1, tab.Cascades[0].Len())
	assert.Equal(t, 1, tab.Cascades[2].Len())
	assert.Equal(t, 0, tab.Cascades[3].Len())
	assert.Error(t, tab.Validate())
}

func TestWinIgnoresColour(t *testing.T) {
	tab := Deal(rankSortedDeck())
	require.NoError(t, tab.Validate())

	assert.True(t, tab.IsWon())

	// Cascade 0 is all spades: descending but not a playable run
	cards := tab.Cascades[0].Cards()
	for _, card := range cards {
		assert.Equal(t, Spades, card.Suit)
	}
	_, ok := tab.Cascades[0].TryPopStack(2)
	assert.False(t, ok)
}

func TestMaxRun(t *testing.T) {
	tab := EmptyTableau()
	// Two cells occupied, two free
	require.NoError(t, tab.Cells[0].TryPush(mustCard(t, "AS")))
	require.NoError(t, tab.Cells[1].TryPush(mustCard(t, "AH")))
	// Source 0 holds ten cards, destination 1 one card, cascade 2 empty,
	// cascades 3..7 one card each
	tab.Cascades[0] = NewCascade(mustCards(t, "KC QC JC TC 9C 8C 7C 6C 5C 4C")...)
	tab.Cascades[1] = NewCascade(mustCards(t, "KD")...)
	for i := 3; i < NumCascades; i++ {
		tab.Cascades[i] = NewCascade(Card{Rank: Rank(i), Suit: Spades})
	}

	assert.Equal(t, 1, tab.EmptyCascades(0, 1))
	assert.Equal(t, 6, tab.MaxRun(0, 1), "(2+1) x (1+1)")

	t.Run("capped by source length", func(t *testing.T) {
		short := tab.Clone()
		short.Cascades[0] = NewCascade(mustCards(t, "KC QC JC")...)
		assert.Equal(t, 3, short.MaxRun(0, 1))
	})

	t.Run("empty destination is not counted", func(t *testing.T) {
		other := tab.Clone()
		other.Cascades[1] = Cascade{}
		assert.Equal(t, 6, other.MaxRun(0, 1))
		assert.Equal(t, 2, other.EmptyCascades())
	})

	t.Run("bad index", func(t *testing.T) {
		assert.Equal(t, 0, tab.MaxRun(-1, 1))
		assert.Equal(t, 0, tab.MaxRun(NumCascades, 1))
	})
}

func TestTableauClone(t *testing.T) {
	tab := Deal(FreshDeck())
	clone := tab.Clone()

	_, ok := clone.Cascades[0].Pop()
	require.True(t, ok)
	require.NoError(t, clone.Cells[0].TryPush(mustCard(t, "4S")))

	assert.Equal(t, 7, tab.Cascades[0].Len())
	assert.True(t, tab.Cells[0].IsEmpty())
}

func TestTableauJSON(t *testing.T) {
	tab := Deal(SeededDeck(7))
	require.NoError(t, tab.Apply(Move{From: CascadeAt(0), To: CellAt(0)}))

	data, err := json.Marshal(tab)
	require.NoError(t, err)

	var decoded Tableau
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.NoError(t, decoded.Validate())
	assert.Equal(t, tab.AllCards(), decoded.AllCards())
	for i := range tab.Cascades {
		assert.Equal(t, tab.Cascades[i].Cards(), decoded.Cascades[i].Cards())
	}
	assert.Equal(t, tab.Cells, decoded.Cells)
}
