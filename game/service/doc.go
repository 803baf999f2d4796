// Package service provides the business logic layer for the 2048 game server.
//
// The service package implements:
//   - Multi-session game management
//   - Move parsing, application, and result reporting
//   - Session lifecycle management
//   - Paginated move history
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and lifecycle.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP) and
// the game engine. Each session owns one engine and therefore one board. The
// service serializes every mutation, so concurrent requests against the same
// board never interleave, and it hands out snapshots rather than live state.
//
// Usage:
//
//	sessionMgr := session.NewManager(session.SeededRandFactory(0))
//	gameService := service.NewGameService(sessionMgr)
//
//	// The default session is "the current game" served at /game
//	if _, err := gameService.EnsureSession(ctx, service.DefaultSessionID); err != nil {
//		log.Fatal(err)
//	}
//
//	// Execute moves
//	result, err := gameService.Move(ctx, service.DefaultSessionID, "l")
//
// Errors:
//
// Unknown sessions wrap ErrSessionNotFound. Unknown directions wrap
// engine.ErrInvalidDirection. A move that changes nothing is not an error;
// it reports Changed=false.
package service
