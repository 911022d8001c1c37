package service

import (
	"context"
	"time"

	"github.com/wricardo/freecell/game/engine"
)

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, dealName string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Game Operations
	Move(ctx context.Context, sessionID, command string) (*MoveResult, error)
	BulkMove(ctx context.Context, sessionID string, commands []string) (*BulkMoveResult, error)
	Undo(ctx context.Context, sessionID string) (*MoveResult, error)
	Restart(ctx context.Context, sessionID string) (*MoveResult, error)

	// Game State
	GetGameState(ctx context.Context, sessionID string) (*GameState, error)
	GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error)

	// Deal presets
	ListDeals(ctx context.Context) ([]*DealInfo, error)
	LoadDeal(ctx context.Context, dealName string) (*engine.DealConfig, error)
	SaveDeal(ctx context.Context, dealName string, deal *engine.DealConfig) error
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id, dealID string, deal *engine.DealConfig) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
}

// DealManager handles deal preset loading
type DealManager interface {
	LoadDeal(name string) (*engine.DealConfig, error)
	ListDeals() ([]*DealInfo, error)
	GetDefault() *engine.DealConfig
	SaveDeal(name string, deal *engine.DealConfig) error
}

// Session represents an active game session
type Session struct {
	ID             string
	DealID         string
	Deal           *engine.DealConfig
	Game           *engine.Game
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
