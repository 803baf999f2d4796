// Package websocket pushes live board updates to browsers watching a game.
//
// A central Hub tracks clients per session. Each connection runs a read pump
// (which only services pings and detects disconnects) and a write pump.
// Clients pick a session with ?session=ID when connecting.
//
// After every move or reset the HTTP layer calls BroadcastToSession, which
// queues one message per session:
//
//	{
//	  "session_id": "game",
//	  "event": "state_update",
//	  "game_state": {...},
//	  "html": "<div class=\"tile tile-1\">2</div>\n..."
//	}
//
// The html field carries the same tile markup that GET /game returns, so a
// viewer can replace the contents of its board container directly.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run(ctx)
//	router.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
//		hub.ServeWS(w, r, r.URL.Query().Get("session"))
//	})
//
// Broadcasts never block the caller: when the queue is full the update is
// dropped and logged.
package websocket
