// Package session provides in-memory session storage for the FreeCell server.
//
// Manager implements service.SessionManager. Each session owns one
// engine.Game dealt from a deal preset, plus creation and last access times.
//
// Session Identifiers:
//
// Generated IDs are the first eight characters of a random UUID. Callers may
// also choose their own ID. Lookups ignore case.
//
// Concurrency:
//
// The manager's map is guarded by a RWMutex. It does not lock the games it
// holds; the service layer serialises actions on them.
//
// Usage:
//
//	manager := session.NewManager(logger)
//	sess, err := manager.Create("", "fresh", deal)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Drop sessions idle for an hour, checking every ten minutes
//	manager.StartCleanup(ctx, 10*time.Minute, time.Hour)
//
// Sessions live only as long as the process.
package session
