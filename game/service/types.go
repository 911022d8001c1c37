package service

import (
	"time"

	"github.com/wricardo/freecell/game/engine"
)

// MaxBulkMoves caps the number of commands accepted by one bulk move call
const MaxBulkMoves = 50

// Event types reported in GameEvent.Type
const (
	EventMove    = "move"
	EventUndo    = "undo"
	EventRestart = "restart"
	EventVictory = "victory"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string             `json:"id"`
	DealName       string             `json:"deal_name"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	GameState      *GameState         `json:"game_state"`
	Deal           *engine.DealConfig `json:"deal"`
}

// GameState is the client view of one session's board
type GameState struct {
	SessionID       string             `json:"session_id"`
	DealName        string             `json:"deal_name"`
	Tableau         engine.Tableau     `json:"tableau"`
	Board           string             `json:"board"`
	Won             bool               `json:"won"`
	MoveCount       int                `json:"move_count"`
	CanUndo         bool               `json:"can_undo"`
	FoundationCount int                `json:"foundation_count"`
	EmptyCells      int                `json:"empty_cells"`
	EmptyCascades   int                `json:"empty_cascades"`
	LastMove        *engine.MoveRecord `json:"last_move,omitempty"`
}

// MoveResult contains the result of a move or undo. Rule violations are
// reported with Success false, never as a Go error.
type MoveResult struct {
	Success   bool             `json:"success"`
	Command   string           `json:"command"`
	Message   string           `json:"message"`
	ErrorKind engine.ErrorKind `json:"error_kind,omitempty"`
	GameState *GameState       `json:"game_state"`
	Events    []GameEvent      `json:"events,omitempty"`
}

// BulkMoveResult contains the result of several commands applied in order
type BulkMoveResult struct {
	MovesExecuted  int              `json:"moves_executed"`
	RequestedMoves int              `json:"requested_moves"`
	Success        bool             `json:"success"`
	GameState      *GameState       `json:"game_state"`
	Events         []GameEvent      `json:"events"`
	Steps          []StepInfo       `json:"steps,omitempty"`
	StoppedReason  string           `json:"stopped_reason,omitempty"`
	StoppedOnMove  int              `json:"stopped_on_move,omitempty"` // 1-based index of the command that failed
	ErrorKind      engine.ErrorKind `json:"error_kind,omitempty"`
	Truncated      bool             `json:"truncated,omitempty"`
	Limit          int              `json:"limit,omitempty"`
	Won            bool             `json:"won"`
}

// StepInfo is a compact record for each command in a bulk call
type StepInfo struct {
	Idx             int    `json:"idx"`
	Command         string `json:"command"`
	Success         bool   `json:"success"`
	Message         string `json:"message,omitempty"`
	FoundationCount int    `json:"foundation_count"`
}

// GameEvent represents an event that occurred during gameplay
type GameEvent struct {
	Type      string    `json:"type"` // "move", "undo", "restart", "victory"
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// HistoryOptions configures move history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated move history
type HistoryResponse struct {
	Moves       []engine.MoveRecord `json:"moves"`
	TotalMoves  int                 `json:"total_moves"`
	Page        int                 `json:"page"`
	PageSize    int                 `json:"page_size"`
	TotalPages  int                 `json:"total_pages"`
	HasNext     bool                `json:"has_next"`
	HasPrevious bool                `json:"has_previous"`
}

// DealInfo provides information about a deal preset
type DealInfo struct {
	Filename    string `json:"filename,omitempty"`
	DealID      string `json:"deal_id"` // The identifier to use for session creation
	Name        string `json:"name"`    // Display name
	Description string `json:"description"`
	Order       string `json:"order"`
	Seeded      bool   `json:"seeded"`
	Builtin     bool   `json:"builtin"`
}
