// Package api provides the HTTP surface of the 2048 server.
//
// The browser page is static: index.html loads 2048.js, which fetches
// GET /game (optionally with ?move=u|d|l|r) and drops the returned tile
// markup into its board container.
//
// Endpoints:
//
// Game page:
//   - GET /game - Tile markup for the default session
//   - GET /game?move=X - Apply X (u, d, l, r) first; unknown X is a 400
//
// Session Management:
//   - POST /api/sessions - Create a session ({"id": "..."} optional)
//   - GET /api/sessions - List sessions (?sort=created|accessed&order=asc|desc&limit=N)
//   - GET /api/sessions/{id} - Get a session
//   - DELETE /api/sessions/{id} - Delete a session
//
// Game Operations:
//   - GET /api/sessions/{id}/state - Board and counters as JSON
//   - GET /api/sessions/{id}/board - Tile markup
//   - POST /api/sessions/{id}/move - {"direction": "left"}
//   - POST /api/sessions/{id}/reset - Deal a new board
//   - GET /api/sessions/{id}/history - ?page=&limit=&order=asc|desc
//
// Other:
//   - GET /ws?session=ID - WebSocket live updates
//   - GET /healthz - Liveness
//   - Everything else is served read-only from the static directory
//
// Usage:
//
//	server := api.NewServer(gameService, hub, "./static")
//	http.ListenAndServe(":8080", server)
//
// Error Handling:
//
// JSON endpoints report errors as {"error": "message"} with 400 for a bad
// direction or body, 404 for an unknown session, 409 for a duplicate
// session ID and 500 otherwise. /game reports errors as plain text.
package api
