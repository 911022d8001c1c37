// Package websocket pushes board updates to browsers watching a FreeCell
// session.
//
// A central Hub owns every connection. Clients join a session with
// /ws?session=<id> and receive a JSON Message with event "state_update"
// after each accepted move, undo or restart on that session. Clients never
// send actions over the socket; moves go through the REST API or MCP.
//
// Usage:
//
//	hub := websocket.NewHub(logger)
//	go hub.Run(ctx)
//
//	hub.BroadcastToSession(sessionID, state)
//
// Concurrency:
//
// Registration, removal and delivery all happen on the Run goroutine.
// Broadcasts are queued and dropped with a warning when the queue is full,
// so a caller holding the service lock never blocks on a slow browser.
package websocket
