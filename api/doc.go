// Package api provides the HTTP REST API for FreeCell sessions.
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create a session, body {"deal_id": "fresh"} (optional)
//   - GET /api/sessions - List sessions (?sort=created|accessed&order=asc|desc&limit=N)
//   - GET /api/sessions/{id} - Get one session
//   - DELETE /api/sessions/{id} - Delete a session
//
// Game Operations:
//   - GET /api/sessions/{id}/state - Current board
//   - POST /api/sessions/{id}/move - Apply one command, body {"command": "4w"}
//   - POST /api/sessions/{id}/bulk-move - Apply commands in order, body {"commands": ["4w", "3w"]}
//   - POST /api/sessions/{id}/undo - Revert the last move
//   - POST /api/sessions/{id}/reset - Back to the dealt board
//   - GET /api/sessions/{id}/history - Paged move history (?page&limit&order)
//
// Deal presets:
//   - GET /api/deals - List presets
//   - GET /api/deals/{name} - Get one preset
//   - POST /api/deals - Save a preset
//
// Other:
//   - GET /health
//   - GET /ws?session={id} - WebSocket board updates
//
// A rejected move is not an HTTP error. It returns 200 with success false
// and an error_kind such as "illegal_destination". HTTP errors are reserved
// for bad request bodies (400), unknown sessions or deals (404) and
// failures (500), always as {"error": "message"}.
//
// Usage:
//
//	server := api.NewServer(gameService, hub, logger)
//	http.ListenAndServe(":8080", server)
package api
