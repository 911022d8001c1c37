// Package mcp exposes FreeCell to AI agents over the Model Context Protocol.
//
// Client is a thin proxy: every tool call becomes a request to the REST API
// of a running server, and the JSON answer is turned into plain text with
// the rendered board. No game rules live here.
//
// MCP Tools:
//   - create_session, list_sessions, get_session
//   - game_state
//   - move, bulk_move, undo, restart
//   - move_history
//   - list_deals
//   - game_instructions
//
// Rejected moves are ordinary results that start with a cross mark.
// Transport and HTTP failures become tool error results.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	if err := server.ServeStdio(client.GetMCPServer()); err != nil {
//		log.Fatal(err)
//	}
package mcp
