// Package session provides session management for the 2048 game server.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Unique session ID generation
//   - Session lifecycle management
//   - Session cleanup and expiration
//
// Core Types:
//
// Manager is the main session manager that handles all session operations.
// Each service.Session owns one engine.GameEngine, which is the single
// mutable board for that game.
//
// Session Identifiers:
//
// Generated IDs are 4 hex characters for easy typing. Lookups are
// case-insensitive.
//
// Concurrency:
//
// The manager guards its map with a RWMutex. It does not serialize moves on
// a single board; the service layer does that.
//
// Usage:
//
//	manager := session.NewManager(session.SeededRandFactory(cfg.Game.Seed))
//
//	sess, err := manager.Create("")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	removed := manager.CleanupExpiredSessions(24*time.Hour, service.DefaultSessionID)
//
// Sessions live in memory only and are gone after a restart.
package session
