package render

import (
	"strings"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/freecell/game/engine"
)

func TestBoardFreshDeal(t *testing.T) {
	tab := engine.Deal(engine.FreshDeck())
	lines := strings.Split(Board(&tab, Plain), "\n")

	require.GreaterOrEqual(t, len(lines), 11)
	assert.Equal(t, "  a   b   c   d     w   x   y   z", lines[0])
	assert.Equal(t, " --  --  --  --    --  --  --  --", lines[1])
	assert.Equal(t, "", lines[2])
	assert.Equal(t, "  1   2   3   4   5   6   7   8", lines[3])
	assert.Equal(t, " AH  2H  3H  4H  5H  6H  7H  8H", lines[4])
	// Seventh row only has cards on the first four cascades
	assert.Equal(t, " 4S  3S  2S  AS", lines[10])
}

func TestBoardShowsCellsAndFoundations(t *testing.T) {
	tab := engine.EmptyTableau()
	require.NoError(t, tab.Cells[2].TryPush(engine.Card{Rank: engine.Ten, Suit: engine.Hearts}))
	require.NoError(t, tab.Foundations[0].TryPush(engine.Card{Rank: engine.Ace, Suit: engine.Clubs}))

	out := Board(&tab, Plain)
	lines := strings.Split(out, "\n")
	assert.Equal(t, " --  -- 10H  --    AC  --  --  --", lines[1])
}

func TestCard(t *testing.T) {
	tenHearts := engine.Card{Rank: engine.Ten, Suit: engine.Hearts}
	aceSpades := engine.Card{Rank: engine.Ace, Suit: engine.Spades}

	assert.Equal(t, "10H", Card(tenHearts, Plain))
	assert.Equal(t, " AS", Card(aceSpades, Plain))
	assert.Equal(t, " A♠", Card(aceSpades, Options{Symbols: true}))
	assert.Equal(t, pterm.LightRed("10♥"), Card(tenHearts, Terminal))
	assert.Equal(t, " A♠", Card(aceSpades, Terminal), "black cards are not coloured")
}

func TestTerminalWithoutColor(t *testing.T) {
	pterm.DisableColor()
	defer pterm.EnableColor()

	tenHearts := engine.Card{Rank: engine.Ten, Suit: engine.Hearts}
	assert.Equal(t, "10♥", Card(tenHearts, Terminal))

	tab := engine.EmptyTableau()
	lines := strings.Split(Board(&tab, Terminal), "\n")
	assert.Equal(t, " --  --  --  --    --  --  --  --", lines[1])
}

func TestSummary(t *testing.T) {
	tab := engine.Deal(engine.FreshDeck())
	assert.Equal(t, "foundations 0/52, free cells 4, empty cascades 0", Summary(&tab))

	empty := engine.EmptyTableau()
	assert.True(t, strings.HasSuffix(Summary(&empty), ", won"))
}
