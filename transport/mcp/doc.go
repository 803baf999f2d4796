// Package mcp exposes the game to AI agents over the Model Context Protocol.
//
// The Client is a thin proxy: every tool calls the REST API of a running
// server, so agents and browsers share the same sessions.
//
// MCP Tools:
//   - create_session: Create a session with a fresh board
//   - list_sessions: List all active sessions
//   - get_session: Session details with the board
//   - game_state: Board, counters and the moves that would change it
//   - move: Slide up, down, left or right
//   - reset_game: Deal a new board
//   - move_history: Paged move history
//   - game_instructions: The rules
//
// Tools that take session_id default to the "game" session served at /game.
// Boards are shown as a 4x4 grid of face values with "." for empty cells.
//
// Transport Modes:
//   - HTTP: the server mounts GetMCPServer().HandleMessage at POST /mcp
//   - Stdio: server.ServeStdio(client.GetMCPServer())
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
