package engine

import (
	"fmt"
	"time"
)

// Engine provides the main interface for game operations
type Engine interface {
	// Actions
	Apply(action Action) error
	Move(m Move) error
	Undo() error
	Restart()

	// Board state
	Current() Tableau
	Initial() Tableau
	IsWon() bool

	// History
	CanUndo() bool
	Len() int
	History() []MoveRecord
	LastMove() *MoveRecord
}

// MoveRecord is one accepted move in the log
type MoveRecord struct {
	Number    int       `json:"number"`
	Move      Move      `json:"move"`
	Command   string    `json:"command"`
	Timestamp time.Time `json:"timestamp"`
}

// Game owns the snapshot history of one deal. The first snapshot is the deal
// and is never removed. Game is not safe for concurrent use.
type Game struct {
	history []Tableau
	moves   []MoveRecord
	now     func() time.Time
}

// NewGame starts a game from tableau. The tableau is copied.
func NewGame(tableau Tableau) *Game {
	return &Game{
		history: []Tableau{tableau.Clone()},
		now:     time.Now,
	}
}

// DealGame deals deck and starts a game from the result
func DealGame(deck *Deck) *Game {
	return NewGame(Deal(deck))
}

// Apply performs action. A rejected action leaves the game unchanged.
func (g *Game) Apply(action Action) error {
	switch a := action.(type) {
	case Move:
		return g.Move(a)
	case *Move:
		if a == nil {
			return fmt.Errorf("apply: nil action")
		}
		return g.Move(*a)
	case *Undo:
		if a == nil {
			return fmt.Errorf("apply: nil action")
		}
		return g.Undo()
	case Undo:
		return g.Undo()
	case nil:
		return fmt.Errorf("apply: nil action")
	}
	return fmt.Errorf("apply: unsupported action %T", action)
}

// Move applies m to a scratch copy of the current board and commits it on success
func (g *Game) Move(m Move) error {
	scratch := g.current().Clone()
	if err := scratch.Apply(m); err != nil {
		return err
	}
	g.history = append(g.history, scratch)
	g.moves = append(g.moves, MoveRecord{
		Number:    len(g.moves) + 1,
		Move:      m,
		Command:   m.String(),
		Timestamp: g.now(),
	})
	return nil
}

// Undo drops the latest snapshot
func (g *Game) Undo() error {
	if len(g.history) <= 1 {
		return ErrAlreadyAtFirstMove
	}
	g.history = g.history[:len(g.history)-1]
	g.moves = g.moves[:len(g.moves)-1]
	return nil
}

// Restart discards every move and returns to the deal
func (g *Game) Restart() {
	g.history = g.history[:1]
	g.moves = g.moves[:0]
}

func (g *Game) current() *Tableau {
	return &g.history[len(g.history)-1]
}

// Current returns a copy of the current board
func (g *Game) Current() Tableau {
	return g.current().Clone()
}

// Initial returns a copy of the dealt board
func (g *Game) Initial() Tableau {
	return g.history[0].Clone()
}

// IsWon reports whether the current board is won
func (g *Game) IsWon() bool {
	return g.current().IsWon()
}

// CanUndo reports whether a move can be undone
func (g *Game) CanUndo() bool {
	return len(g.history) > 1
}

// Len returns the number of snapshots, including the deal
func (g *Game) Len() int {
	return len(g.history)
}

// History returns the accepted moves, oldest first
func (g *Game) History() []MoveRecord {
	return append([]MoveRecord(nil), g.moves...)
}

// LastMove returns the most recent move, or nil if no moves
func (g *Game) LastMove() *MoveRecord {
	if len(g.moves) == 0 {
		return nil
	}
	last := g.moves[len(g.moves)-1]
	return &last
}

var _ Engine = (*Game)(nil)
