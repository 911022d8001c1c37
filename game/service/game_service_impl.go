package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/wricardo/freecell/game/engine"
	"github.com/wricardo/freecell/game/render"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrDealNotFound    = errors.New("deal not found")
)

// gameServiceImpl implements the GameService interface. Every action on any
// session runs under mu, so a move is a single critical section no matter
// which transport delivered it.
type gameServiceImpl struct {
	sessions SessionManager
	deals    DealManager
	log      logrus.FieldLogger
	now      func() time.Time
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, deals DealManager, logger logrus.FieldLogger) GameService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &gameServiceImpl{
		sessions: sessions,
		deals:    deals,
		log:      logger.WithField("component", "service"),
		now:      time.Now,
	}
}

// CreateSession deals a new game from the named preset, or the default one
func (s *gameServiceImpl) CreateSession(ctx context.Context, dealName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deal *engine.DealConfig
	dealID := dealName
	if dealName != "" {
		var err error
		deal, err = s.deals.LoadDeal(dealName)
		if err != nil {
			if errors.Is(err, ErrDealNotFound) {
				return nil, fmt.Errorf("%w: '%s'. Available deals: %v", ErrDealNotFound, dealName, s.dealIDs())
			}
			return nil, fmt.Errorf("failed to load deal %s: %w", dealName, err)
		}
	} else {
		deal = s.deals.GetDefault()
		dealID = deal.Name
	}

	session, err := s.sessions.Create("", dealID, deal)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"session": session.ID,
		"deal":    dealID,
	}).Info("session created")

	return s.sessionInfo(session), nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	return s.sessionInfo(session), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.sessionInfo(sess))
	}

	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.Delete(sessionID); err != nil {
		return fmt.Errorf("failed to delete session %s: %w", sessionID, err)
	}
	s.log.WithField("session", sessionID).Info("session deleted")
	return nil
}

// Move parses command and applies it to the session's game. The command
// may also be an undo keyword.
func (s *gameServiceImpl) Move(ctx context.Context, sessionID, command string) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	result := s.apply(sess, command)
	s.logResult(sess.ID, result)
	return result, nil
}

// BulkMove applies commands in order, stopping at the first rejected one
func (s *gameServiceImpl) BulkMove(ctx context.Context, sessionID string, commands []string) (*BulkMoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	result := &BulkMoveResult{
		RequestedMoves: len(commands),
		Success:        true,
		Events:         make([]GameEvent, 0),
	}

	// Limit moves to prevent abuse
	if len(commands) > MaxBulkMoves {
		result.Truncated = true
		result.Limit = MaxBulkMoves
		commands = commands[:MaxBulkMoves]
	}

	for i, command := range commands {
		if sess.Game.IsWon() {
			result.StoppedReason = "game already won"
			result.StoppedOnMove = i + 1
			break
		}

		step := s.apply(sess, command)
		result.Events = append(result.Events, step.Events...)
		result.Steps = append(result.Steps, StepInfo{
			Idx:             i + 1,
			Command:         step.Command,
			Success:         step.Success,
			Message:         step.Message,
			FoundationCount: step.GameState.FoundationCount,
		})

		if !step.Success {
			result.Success = false
			result.StoppedReason = fmt.Sprintf("move %d (%s): %s", i+1, command, step.Message)
			result.StoppedOnMove = i + 1
			result.ErrorKind = step.ErrorKind
			break
		}
		result.MovesExecuted++
	}

	result.GameState = s.gameState(sess)
	result.Won = result.GameState.Won

	s.log.WithFields(logrus.Fields{
		"session":  sess.ID,
		"executed": result.MovesExecuted,
		"stopped":  result.StoppedOnMove,
	}).Info("bulk move")

	return result, nil
}

// Undo reverts the most recent move in the session
func (s *gameServiceImpl) Undo(ctx context.Context, sessionID string) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	result := s.applyAction(sess, engine.Undo{})
	s.logResult(sess.ID, result)
	return result, nil
}

// Restart returns the session to its deal and reports a restart event
func (s *gameServiceImpl) Restart(ctx context.Context, sessionID string) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	sess.Game.Restart()
	s.log.WithField("session", sess.ID).Info("game restarted")

	result := &MoveResult{
		Success:   true,
		Command:   EventRestart,
		Message:   "Game restarted",
		GameState: s.gameState(sess),
	}
	result.Events = append(result.Events, GameEvent{Type: EventRestart, Message: result.Message, Timestamp: s.now()})
	return result, nil
}

// GetGameState retrieves the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	return s.gameState(sess), nil
}

// GetMoveHistory returns paginated move history
func (s *gameServiceImpl) GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	history := sess.Game.History()
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := min(start+opts.Limit, total)

	moves := []engine.MoveRecord{}
	if opts.Order == "desc" {
		// Most recent first
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			moves = append(moves, history[i])
		}
	} else if start < total {
		moves = append(moves, history[start:end]...)
	}

	return &HistoryResponse{
		Moves:       moves,
		TotalMoves:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// ListDeals returns available deal presets
func (s *gameServiceImpl) ListDeals(ctx context.Context) ([]*DealInfo, error) {
	return s.deals.ListDeals()
}

// LoadDeal loads a specific deal preset
func (s *gameServiceImpl) LoadDeal(ctx context.Context, dealName string) (*engine.DealConfig, error) {
	return s.deals.LoadDeal(dealName)
}

// SaveDeal saves a deal preset to disk
func (s *gameServiceImpl) SaveDeal(ctx context.Context, dealName string, deal *engine.DealConfig) error {
	if err := s.deals.SaveDeal(dealName, deal); err != nil {
		return err
	}
	s.log.WithField("deal", dealName).Info("deal saved")
	return nil
}

// apply parses command and applies it. Parse failures are reported the same
// way as rule violations.
func (s *gameServiceImpl) apply(sess *Session, command string) *MoveResult {
	action, err := engine.ParseAction(command)
	if err != nil {
		return &MoveResult{
			Success:   false,
			Command:   command,
			Message:   err.Error(),
			ErrorKind: engine.KindOf(err),
			GameState: s.gameState(sess),
		}
	}
	return s.applyAction(sess, action)
}

func (s *gameServiceImpl) applyAction(sess *Session, action engine.Action) *MoveResult {
	// Undo reports the move it reverted
	var undone *engine.MoveRecord
	if _, ok := action.(engine.Undo); ok {
		undone = sess.Game.LastMove()
	}

	result := &MoveResult{Command: action.String()}
	if err := sess.Game.Apply(action); err != nil {
		if !engine.IsRuleError(err) {
			s.log.WithError(err).WithField("session", sess.ID).Error("engine failed to apply action")
		}
		result.Message = err.Error()
		result.ErrorKind = engine.KindOf(err)
		result.GameState = s.gameState(sess)
		return result
	}

	now := s.now()
	result.Success = true
	if undone != nil {
		result.Message = fmt.Sprintf("Undid %s.", undone.Command)
		result.Events = append(result.Events, GameEvent{Type: EventUndo, Message: result.Message, Timestamp: now})
	} else {
		result.Message = fmt.Sprintf("Moved %s.", result.Command)
		result.Events = append(result.Events, GameEvent{Type: EventMove, Message: result.Message, Timestamp: now})
	}

	result.GameState = s.gameState(sess)
	if result.GameState.Won {
		result.Message = "You win!"
		result.Events = append(result.Events, GameEvent{Type: EventVictory, Message: result.Message, Timestamp: now})
	}
	return result
}

func (s *gameServiceImpl) logResult(sessionID string, result *MoveResult) {
	entry := s.log.WithFields(logrus.Fields{
		"session": sessionID,
		"command": result.Command,
	})
	if result.Success {
		entry.WithField("foundations", result.GameState.FoundationCount).Info("move accepted")
		return
	}
	entry.WithFields(logrus.Fields{
		"kind":   result.ErrorKind,
		"reason": result.Message,
	}).Debug("move rejected")
}

// getSession looks up a session and touches its access time. Callers must
// hold the write lock.
func (s *gameServiceImpl) getSession(sessionID string) (*Session, error) {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}
	if err := s.sessions.UpdateLastAccessed(session.ID); err != nil {
		s.log.WithError(err).WithField("session", session.ID).Debug("failed to touch session")
	}
	return session, nil
}

func (s *gameServiceImpl) sessionInfo(session *Session) *SessionInfo {
	return &SessionInfo{
		ID:             session.ID,
		DealName:       session.DealID,
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		GameState:      s.gameState(session),
		Deal:           session.Deal,
	}
}

func (s *gameServiceImpl) gameState(session *Session) *GameState {
	return NewGameState(session.ID, session.DealID, session.Game)
}

func (s *gameServiceImpl) dealIDs() []string {
	deals, err := s.deals.ListDeals()
	if err != nil {
		return nil
	}
	ids := make([]string, 0, len(deals))
	for _, deal := range deals {
		ids = append(ids, deal.DealID)
	}
	return ids
}

// NewGameState builds the client view of game
func NewGameState(sessionID, dealName string, game *engine.Game) *GameState {
	tableau := game.Current()
	return &GameState{
		SessionID:       sessionID,
		DealName:        dealName,
		Tableau:         tableau,
		Board:           render.Board(&tableau, render.Plain),
		Won:             tableau.IsWon(),
		MoveCount:       game.Len() - 1,
		CanUndo:         game.CanUndo(),
		FoundationCount: tableau.FoundationCount(),
		EmptyCells:      tableau.EmptyCells(),
		EmptyCascades:   tableau.EmptyCascades(),
		LastMove:        game.LastMove(),
	}
}
