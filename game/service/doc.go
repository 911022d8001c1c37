// Package service provides the business logic layer for the FreeCell server.
//
// The service package implements:
//   - Multi-session game management
//   - Deal preset lookup and saving
//   - Command parsing and move processing
//   - Move history pagination
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager stores sessions and their games.
// DealManager loads, lists and saves deal presets.
//
// Architecture:
//
// The service layer sits between the transports (HTTP, WebSocket, MCP) and
// the game engine. Each session owns one engine.Game. All actions run under
// a single service lock, so moves from different transports never interleave.
//
// Rule violations and unparseable commands are not Go errors. They come back
// as a MoveResult with Success false and an ErrorKind; errors are reserved for
// missing sessions and infrastructure failures.
//
// Usage:
//
//	sessionMgr := session.NewManager(logger)
//	dealMgr, _ := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, dealMgr, logger)
//
//	info, err := gameService.CreateSession(ctx, "fresh")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := gameService.Move(ctx, info.ID, "4w")
package service
