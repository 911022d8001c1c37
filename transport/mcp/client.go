package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/wricardo/freecell/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"FreeCell",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`FreeCell - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Arrange the deal so that every cascade runs downward in rank, usually by
moving all 52 cards to the foundations w-z.

AVAILABLE TOOLS:
- create_session: Deal a new game, optionally from a named deal preset
- list_sessions / get_session: Inspect sessions
- game_state: Current board
- move: One command such as "3a", "1w" or "15+78"
- bulk_move: Several commands in order, stopping at the first rejected one
- undo: Revert the previous move
- restart: Return to the deal
- move_history: Accepted moves, newest first
- list_deals: Available deal presets
- game_instructions: Full rules and command notation

NOTE: The 'intent' parameter on move/bulk_move is for explaining your reasoning; the server ignores it.`),
	)

	c.registerTools()
}

func sessionIDProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session ID",
	}
}

func intentProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Brief explanation of the intent behind this move",
	}
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Deal a new game session, optionally from a named deal preset",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"deal_name": map[string]interface{}{
					"type":        "string",
					"description": "Deal preset to use (optional, see list_deals)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current board of a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleGameState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move",
		Description: "Apply one command: two coordinates with an optional count prefix, e.g. \"3a\", \"1w\", \"+78\", \"4+15\"",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"command": map[string]interface{}{
					"type":        "string",
					"description": "Move command: source then destination. 1-8 cascades, a-d cells, w-z foundations.",
				},
				"intent": intentProperty(),
			},
			Required: []string{"session_id", "command"},
		},
	}, c.handleMove)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "bulk_move",
		Description: fmt.Sprintf("Apply up to %d commands in sequence, stopping at the first rejected one", service.MaxBulkMoves),
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"commands": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "string",
					},
					"description": "Commands in the same notation as move",
				},
				"intent": intentProperty(),
			},
			Required: []string{"session_id", "commands"},
		},
	}, c.handleBulkMove)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "undo",
		Description: "Revert the most recent move",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleUndo)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "restart",
		Description: "Discard every move and return to the deal",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleRestart)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move_history",
		Description: "Get move history for a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Items per page",
				},
				"order": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"asc", "desc"},
					"description": "Oldest first (asc) or newest first (desc, default)",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleMoveHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_deals",
		Description: "List available deal presets",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListDeals)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get the rules of FreeCell and the command notation",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// arguments returns the tool call arguments, or an empty map
func arguments(request mcp.CallToolRequest) map[string]interface{} {
	if args, ok := request.Params.Arguments.(map[string]interface{}); ok {
		return args
	}
	return map[string]interface{}{}
}

func sessionPath(sessionID, suffix string) string {
	return "/api/sessions/" + url.PathEscape(sessionID) + suffix
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dealName, _ := arguments(request)["deal_name"].(string)

	body := map[string]string{}
	if dealName != "" {
		body["deal_id"] = dealName
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, http.MethodPost, "/api/sessions", body, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Created session: %s\n\n%s", session.ID, formatSessionInfo(&session))), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	if err := c.apiCall(ctx, http.MethodGet, "/api/sessions", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result strings.Builder
	fmt.Fprintf(&result, "Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		moves, foundations := 0, 0
		if s.GameState != nil {
			moves, foundations = s.GameState.MoveCount, s.GameState.FoundationCount
		}
		fmt.Fprintf(&result, "- %s (Deal: %s, Moves: %d, Foundations: %d/52, Created: %s)\n",
			s.ID, s.DealName, moves, foundations, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result.String()), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var session service.SessionInfo
	if err := c.apiCall(ctx, http.MethodGet, sessionPath(sessionID, ""), nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var state service.GameState
	if err := c.apiCall(ctx, http.MethodGet, sessionPath(sessionID, "/state"), nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatGameState(&state)), nil
}

func (c *Client) handleMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	command, _ := args["command"].(string)

	var result service.MoveResult
	err := c.apiCall(ctx, http.MethodPost, sessionPath(sessionID, "/move"), map[string]string{"command": command}, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatMoveResult(&result)), nil
}

func (c *Client) handleBulkMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)

	var commands []string
	switch raw := args["commands"].(type) {
	case []interface{}:
		for _, m := range raw {
			if command, ok := m.(string); ok {
				commands = append(commands, command)
			}
		}
	case []string:
		commands = raw
	case string:
		// Some agents send a space separated string
		commands = strings.Fields(raw)
	}

	var result service.BulkMoveResult
	err := c.apiCall(ctx, http.MethodPost, sessionPath(sessionID, "/bulk-move"), map[string]interface{}{"commands": commands}, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatBulkMoveResult(&result)), nil
}

func (c *Client) handleUndo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var result service.MoveResult
	if err := c.apiCall(ctx, http.MethodPost, sessionPath(sessionID, "/undo"), nil, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatMoveResult(&result)), nil
}

func (c *Client) handleRestart(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var response struct {
		Message string             `json:"message"`
		State   *service.GameState `json:"state"`
	}
	if err := c.apiCall(ctx, http.MethodPost, sessionPath(sessionID, "/reset"), nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("%s\n\n%s", response.Message, formatGameState(response.State))), nil
}

func (c *Client) handleMoveHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)

	params := url.Values{}
	if page, ok := args["page"].(float64); ok {
		params.Set("page", fmt.Sprintf("%d", int(page)))
	}
	if limit, ok := args["limit"].(float64); ok {
		params.Set("limit", fmt.Sprintf("%d", int(limit)))
	}
	if order, ok := args["order"].(string); ok && order != "" {
		params.Set("order", order)
	}

	path := sessionPath(sessionID, "/history")
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var history service.HistoryResponse
	if err := c.apiCall(ctx, http.MethodGet, path, nil, &history); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatHistory(&history)), nil
}

func (c *Client) handleListDeals(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var deals []service.DealInfo
	if err := c.apiCall(ctx, http.MethodGet, "/api/deals", nil, &deals); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result strings.Builder
	result.WriteString("Available Deals:\n\n")
	for _, deal := range deals {
		source := "file"
		if deal.Builtin {
			source = "built-in"
		}
		fmt.Fprintf(&result, "• %s (%s, %s)\n  %s\n\n", deal.DealID, deal.Order, source, deal.Description)
	}

	return mcp.NewToolResultText(result.String()), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(instructions), nil
}

const instructions = `FreeCell - Complete Instructions

THE BOARD:
  a b c d    four free cells, each holding at most one card
  w x y z    four foundations, built up by suit from Ace to King
  1 .. 8     eight cascades dealt from a 52 card deck (7,7,7,7,6,6,6,6)

RULES:
• Only the top card of a cascade or the card in a cell can be moved.
• Any card may go into an empty cell.
• A foundation takes an Ace when empty, then the next rank of the same suit.
• A cascade takes a card one rank lower and of the opposite colour than its
  top card. Any card may go onto an empty cascade. Nothing goes on an Ace.
• Cards can never leave a foundation.
• Cascade to cascade moves carry a whole run of up to
  (empty cells + 1) x (empty cascades + 1) cards, not counting the source
  or destination cascade.
• You win when every cascade runs downward in rank; clearing the board to the
  foundations always does this.

COMMANDS:
  3a      top card of cascade 3 to cell a
  a4      card in cell a onto cascade 4
  1w      top card of cascade 1 to foundation w
  78      as long a run as allowed from cascade 7 onto cascade 8
  4+78    at most 4 cards; onto an empty cascade, exactly 4
  +78     as many cards as allowed
  u, undo revert the previous move
  Shifted digits (! @ # $ % ^ & *) also name cascades 1-8.

STRATEGY:
• Free Aces and twos early; they block everything above them.
• Keep cells empty. Each free cell doubles as supermove capacity.
• An empty cascade is worth more than a free cell.
• Use move_history and undo to back out of dead ends instead of restarting.`

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nDeal: %s\nCreated: %s\n\n%s",
		session.ID, session.DealName,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatGameState(session.GameState))
}

func formatGameState(state *service.GameState) string {
	if state == nil {
		return "No game state available"
	}

	var result strings.Builder
	fmt.Fprintf(&result, "Moves: %d | Foundations: %d/52 | Free cells: %d | Empty cascades: %d\n\n",
		state.MoveCount, state.FoundationCount, state.EmptyCells, state.EmptyCascades)
	result.WriteString(state.Board)

	if state.LastMove != nil {
		fmt.Fprintf(&result, "\nLast move: %s", state.LastMove.Command)
	}
	if state.Won {
		result.WriteString("\n🎉 VICTORY!")
	}

	return result.String()
}

func formatMoveResult(result *service.MoveResult) string {
	var response strings.Builder
	if result.Success {
		fmt.Fprintf(&response, "✓ %s\n", result.Message)
	} else {
		fmt.Fprintf(&response, "✗ %s (%s)\n", result.Message, result.ErrorKind)
	}
	response.WriteString("\n")
	response.WriteString(formatGameState(result.GameState))
	return response.String()
}

func formatBulkMoveResult(result *service.BulkMoveResult) string {
	var response strings.Builder

	status := "✓"
	if !result.Success {
		status = "✗"
	}
	fmt.Fprintf(&response, "%s Executed %d/%d commands\n", status, result.MovesExecuted, result.RequestedMoves)
	if result.Truncated {
		fmt.Fprintf(&response, "Only the first %d commands were run\n", result.Limit)
	}
	if result.StoppedReason != "" {
		fmt.Fprintf(&response, "Stopped: %s\n", result.StoppedReason)
	}

	if len(result.Steps) > 0 {
		response.WriteString("\nSteps:\n")
		for _, step := range result.Steps {
			mark := "✓"
			if !step.Success {
				mark = "✗"
			}
			fmt.Fprintf(&response, "%2d. %s %s foundations=%d", step.Idx, mark, step.Command, step.FoundationCount)
			if !step.Success {
				fmt.Fprintf(&response, " (%s)", step.Message)
			}
			response.WriteString("\n")
		}
	}

	response.WriteString("\n")
	response.WriteString(formatGameState(result.GameState))
	return response.String()
}

func formatHistory(history *service.HistoryResponse) string {
	var result strings.Builder
	fmt.Fprintf(&result, "Move History (Page %d/%d, Total: %d moves)\n\n",
		history.Page, history.TotalPages, history.TotalMoves)

	for _, move := range history.Moves {
		fmt.Fprintf(&result, "#%d %s at %s\n",
			move.Number, move.Command, move.Timestamp.Format("15:04:05"))
	}

	if history.HasNext {
		result.WriteString("\nMore moves on the next page")
	}
	return result.String()
}
