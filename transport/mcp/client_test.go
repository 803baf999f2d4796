package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/wricardo/mcp-training/game2048/api"
	"github.com/wricardo/mcp-training/game2048/game/engine"
	"github.com/wricardo/mcp-training/game2048/game/service"
	"github.com/wricardo/mcp-training/game2048/game/session"
)

func newToolRequest(name string, args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil {
		t.Fatal("Expected result, got nil")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}
	return text.Text
}

// newGameAPI starts the real HTTP API over an in-memory service.
func newGameAPI(t *testing.T) (*httptest.Server, service.GameService) {
	t.Helper()
	svc := service.NewGameService(session.NewManager(session.SeededRandFactory(21)))
	if _, err := svc.EnsureSession(context.Background(), service.DefaultSessionID); err != nil {
		t.Fatalf("EnsureSession failed: %v", err)
	}
	server := httptest.NewServer(api.NewServer(svc, nil, t.TempDir()))
	t.Cleanup(server.Close)
	return server, svc
}

func TestNewClient(t *testing.T) {
	baseURL := "http://localhost:8080/"
	client := NewClient(baseURL)

	if client.baseURL != "http://localhost:8080" {
		t.Errorf("Expected trailing slash trimmed, got %s", client.baseURL)
	}
	if client.httpClient == nil {
		t.Error("Expected HTTP client to be initialized")
	}
	if client.GetMCPServer() == nil {
		t.Error("Expected MCP server to be initialized")
	}
}

func TestClient_apiCall(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"id": "test-session"})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	var response map[string]interface{}
	if err := client.apiCall(context.Background(), "GET", "/api", nil, &response); err != nil {
		t.Fatalf("apiCall failed: %v", err)
	}
	if response["id"] != "test-session" {
		t.Errorf("Expected id test-session, got %v", response["id"])
	}
}

func TestClient_apiCall_Error(t *testing.T) {
	client := NewClient("http://127.0.0.1:1")

	if err := client.apiCall(context.Background(), "GET", "/api", nil, nil); err == nil {
		t.Error("Expected error for unreachable server")
	}
}

func TestClient_apiCall_HTTPError(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"plain body", "Internal Server Error", "API error: 500"},
		{"json error", `{"error":"boom"}`, "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			err := NewClient(server.URL).apiCall(context.Background(), "GET", "/api", nil, nil)
			if err == nil || err.Error() != tt.wantErr {
				t.Errorf("Expected error %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestClient_createSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/sessions" {
			t.Errorf("Expected POST /api/sessions, got %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)

		resp := service.SessionInfo{
			ID:        body["id"],
			GameState: &engine.GameState{Board: engine.Board{1, 0, 0, 0, 0, 1}},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	result, err := client.handleCreateSession(context.Background(), newToolRequest("create_session", map[string]interface{}{
		"session_id": "test-session-123",
	}))
	if err != nil {
		t.Fatalf("createSession failed: %v", err)
	}

	text := resultText(t, result)
	if !strings.Contains(text, "test-session-123") {
		t.Errorf("Expected session ID in result, got: %s", text)
	}
}

func TestClient_PlayThroughAPI(t *testing.T) {
	server, svc := newGameAPI(t)
	client := NewClient(server.URL)
	ctx := context.Background()

	state, _ := svc.GetGameState(ctx, service.DefaultSessionID)
	var dir engine.Direction
	for _, d := range engine.Directions {
		if engine.CanSlide(state.Board, d) {
			dir = d
			break
		}
	}

	// session_id omitted: the default session is used
	result, err := client.handleMove(ctx, newToolRequest("move", map[string]interface{}{
		"direction": string(dir),
	}))
	if err != nil {
		t.Fatalf("handleMove failed: %v", err)
	}
	if result.IsError {
		t.Fatalf("Unexpected tool error: %s", resultText(t, result))
	}
	if text := resultText(t, result); !strings.Contains(text, "✓ Moved "+string(dir)) || !strings.Contains(text, "New tile:") {
		t.Errorf("Unexpected move output: %s", text)
	}

	result, _ = client.handleMoveHistory(ctx, newToolRequest("move_history", map[string]interface{}{
		"session_id": service.DefaultSessionID,
		"order":      "asc",
	}))
	if text := resultText(t, result); !strings.Contains(text, "1. "+string(dir)+" ✓") {
		t.Errorf("Expected the move in history, got: %s", text)
	}

	result, _ = client.handleGameState(ctx, newToolRequest("game_state", nil))
	if text := resultText(t, result); !strings.Contains(text, "Moves: 1") {
		t.Errorf("Expected one recorded move, got: %s", text)
	}

	result, _ = client.handleReset(ctx, newToolRequest("reset_game", map[string]interface{}{}))
	if text := resultText(t, result); !strings.Contains(text, "Game reset successfully") {
		t.Errorf("Unexpected reset output: %s", text)
	}

	result, _ = client.handleListSessions(ctx, newToolRequest("list_sessions", nil))
	if text := resultText(t, result); !strings.Contains(text, "Active Sessions (1)") || !strings.Contains(text, "- game") {
		t.Errorf("Unexpected session list: %s", text)
	}
}

func TestClient_ToolErrors(t *testing.T) {
	server, _ := newGameAPI(t)
	client := NewClient(server.URL)
	ctx := context.Background()

	result, err := client.handleMove(ctx, newToolRequest("move", map[string]interface{}{
		"direction": "diagonal",
	}))
	if err != nil {
		t.Fatalf("handleMove returned a protocol error: %v", err)
	}
	if !result.IsError {
		t.Error("Expected a tool error for an invalid direction")
	}

	result, _ = client.handleGetSession(ctx, newToolRequest("get_session", map[string]interface{}{
		"session_id": "nope",
	}))
	if !result.IsError || !strings.Contains(resultText(t, result), "session not found") {
		t.Errorf("Expected session not found, got: %s", resultText(t, result))
	}
}

func TestFormatBoard(t *testing.T) {
	board := engine.Board{
		1, 0, 0, 0,
		0, 11, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 17,
	}

	lines := strings.Split(strings.TrimSuffix(formatBoard(board), "\n"), "\n")
	if len(lines) != engine.BoardSide {
		t.Fatalf("Expected %d rows, got %d", engine.BoardSide, len(lines))
	}

	want := []string{
		"     2      .      .      .",
		"     .   2048      .      .",
		"     .      .      .      .",
		"     .      .      . 131072",
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("row %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestFormatGameState(t *testing.T) {
	state := &engine.GameState{
		Board:             engine.Board{1, 2, 0, 0},
		TotalMoves:        7,
		CurrentMovesCount: 3,
	}

	result := formatGameState(state)

	for _, field := range []string{
		"Max tile: 4",
		"Tiles: 2",
		"Moves: 7 (since reset: 3)",
		"Possible moves: down, right",
	} {
		if !strings.Contains(result, field) {
			t.Errorf("Expected %q in formatted output, got: %s", field, result)
		}
	}

	if formatGameState(nil) != "No game state available" {
		t.Error("Expected placeholder for a nil state")
	}
}

func TestFormatMoveResult(t *testing.T) {
	moved := formatMoveResult(&service.MoveResult{
		Direction: engine.Left,
		Changed:   true,
		Spawned:   &engine.Spawn{Index: 6, Value: 2},
		GameState: &engine.GameState{Board: engine.Board{1}},
	})
	if !strings.Contains(moved, "✓ Moved left") || !strings.Contains(moved, "New tile: 4 at row 1, column 2") {
		t.Errorf("Unexpected output: %s", moved)
	}

	stuck := formatMoveResult(&service.MoveResult{
		Direction: engine.Up,
		GameState: &engine.GameState{Board: engine.Board{1}},
	})
	if !strings.Contains(stuck, "✗ Nothing moved up") {
		t.Errorf("Unexpected output: %s", stuck)
	}
}

func TestClient_handleGameInstructions(t *testing.T) {
	client := NewClient("http://localhost:8080")

	result, err := client.handleGameInstructions(context.Background(), newToolRequest("game_instructions", nil))
	if err != nil {
		t.Fatalf("handleGameInstructions failed: %v", err)
	}

	text := resultText(t, result)
	for _, content := range []string{
		"2048 - Complete Instructions",
		"GAME OBJECTIVE:",
		"MOVES:",
		"a 2 nine times out of ten, otherwise a 4",
		"SESSIONS:",
	} {
		if !strings.Contains(text, content) {
			t.Errorf("Expected %q in instructions", content)
		}
	}
}
