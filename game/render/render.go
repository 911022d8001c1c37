package render

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"github.com/wricardo/freecell/game/engine"
)

const emptySlot = " --"

// Options controls how cards are drawn
type Options struct {
	// Color paints red cards red and greys out empty slots
	Color bool
	// Symbols draws suits as ♣♦♥♠ instead of letters
	Symbols bool
}

// Plain is the style used for logs, tests and MCP output
var Plain = Options{}

// Terminal is the style used by the interactive player
var Terminal = Options{Color: true, Symbols: true}

// Board renders the tableau as text. Cells and foundations come first,
// labelled with their command letters, then the cascades top to bottom
// labelled 1-8. Every slot is four columns wide.
func Board(t *engine.Tableau, opts Options) string {
	var b strings.Builder

	writeHeader(&b, "abcd")
	b.WriteString("   ")
	writeHeader(&b, "wxyz")
	b.WriteByte('\n')

	var row []string
	for i := range t.Cells {
		card, ok := t.Cells[i].Peek()
		row = append(row, slot(card, ok, opts))
	}
	row = append(row, " ")
	for i := range t.Foundations {
		card, ok := t.Foundations[i].Peek()
		row = append(row, slot(card, ok, opts))
	}
	writeRow(&b, row)
	b.WriteByte('\n')

	writeHeader(&b, "12345678")
	b.WriteByte('\n')

	longest := 0
	for i := range t.Cascades {
		longest = max(longest, t.Cascades[i].Len())
	}
	for depth := 0; depth < longest; depth++ {
		row = row[:0]
		for i := range t.Cascades {
			cards := t.Cascades[i].Cards()
			if depth < len(cards) {
				row = append(row, Card(cards[depth], opts))
			} else {
				row = append(row, "   ")
			}
		}
		writeRow(&b, row)
	}

	return b.String()
}

// Card renders one card in three columns, e.g. " TH" or "10♥"
func Card(card engine.Card, opts Options) string {
	suit := string(card.Suit.Letter())
	if opts.Symbols {
		suit = card.Suit.Symbol()
	}
	text := fmt.Sprintf("%2s%s", card.Rank.String(), suit)
	if opts.Color && card.IsRed() {
		return pterm.LightRed(text)
	}
	return text
}

// Summary returns a one-line status for the tableau
func Summary(t *engine.Tableau) string {
	status := fmt.Sprintf("foundations %d/%d, free cells %d, empty cascades %d",
		t.FoundationCount(), engine.DeckSize, t.EmptyCells(), t.EmptyCascades())
	if t.IsWon() {
		status += ", won"
	}
	return status
}

func slot(card engine.Card, ok bool, opts Options) string {
	if ok {
		return Card(card, opts)
	}
	if opts.Color {
		return pterm.Gray(emptySlot)
	}
	return emptySlot
}

func writeHeader(b *strings.Builder, labels string) {
	for i, label := range labels {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString("  ")
		b.WriteRune(label)
	}
}

// writeRow joins slots with single spaces and trims trailing blanks
func writeRow(b *strings.Builder, slots []string) {
	b.WriteString(strings.TrimRight(strings.Join(slots, " "), " "))
	b.WriteByte('\n')
}
