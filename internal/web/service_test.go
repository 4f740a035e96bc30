package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmccall/shallowblue/internal/config"
)

func newTestRouter(t *testing.T) (*Service, http.Handler) {
	t.Helper()

	cfg := &config.Config{
		Engine: config.EngineConfig{AutoOpponent: true},
		Render: config.RenderConfig{SquareSize: 16},
	}
	hub := NewHub()
	go hub.Run()

	s := NewService(NewRegistry(), hub, cfg)
	return s, NewRouter(s, hub)
}

func createGame(t *testing.T, router http.Handler, autoOpponent bool) *GameState {
	t.Helper()

	body := fmt.Sprintf(`{"auto_opponent": %t}`, autoOpponent)
	req := httptest.NewRequest("POST", "/api/games", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var state GameState
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&state))
	return &state
}

func postMove(t *testing.T, router http.Handler, gameID, from, to string) (*httptest.ResponseRecorder, *MoveResult) {
	t.Helper()

	body := fmt.Sprintf(`{"from": %q, "to": %q}`, from, to)
	req := httptest.NewRequest("POST", "/api/games/"+gameID+"/moves", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var result MoveResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	return rec, &result
}

func TestHealthEndpoint(t *testing.T) {
	_, router := newTestRouter(t)

	req := httptest.NewRequest("GET", "/api/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestCreateAndFetchGame(t *testing.T) {
	_, router := newTestRouter(t)

	state := createGame(t, router, false)
	require.NotEmpty(t, state.ID)
	assert.Equal(t, "white", state.Turn)
	assert.Equal(t, "in_progress", state.Phase)
	assert.False(t, state.AutoOpponent)
	assert.Equal(t, 0, state.MoveCount)
	require.Len(t, state.Board, 8)
	require.NotNil(t, state.Board[0][4])
	assert.Equal(t, "king", state.Board[0][4].Type)
	assert.Equal(t, "white", state.Board[0][4].Color)
	assert.Nil(t, state.Board[4][4])

	req := httptest.NewRequest("GET", "/api/games/"+state.ID, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var fetched GameState
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&fetched))
	assert.Equal(t, state.ID, fetched.ID)
}

func TestCreateGameUsesConfiguredDefault(t *testing.T) {
	_, router := newTestRouter(t)

	req := httptest.NewRequest("POST", "/api/games", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var state GameState
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&state))
	assert.True(t, state.AutoOpponent, "config default should enable the automated opponent")
}

func TestGameNotFound(t *testing.T) {
	_, router := newTestRouter(t)

	req := httptest.NewRequest("GET", "/api/games/no-such-game", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMakeMoveAccepted(t *testing.T) {
	_, router := newTestRouter(t)
	state := createGame(t, router, false)

	rec, result := postMove(t, router, state.ID, "e2", "e4")
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, result.Accepted)
	assert.Nil(t, result.Reply)
	require.NotNil(t, result.Game)
	assert.Equal(t, 1, result.Game.MoveCount)
	assert.Equal(t, "black", result.Game.Turn)
	require.NotNil(t, result.Game.Board[3][4])
	assert.Equal(t, "pawn", result.Game.Board[3][4].Type)
	assert.Nil(t, result.Game.Board[1][4])
}

func TestMakeMoveRejected(t *testing.T) {
	_, router := newTestRouter(t)
	state := createGame(t, router, false)

	tests := []struct {
		name     string
		from, to string
	}{
		{"illegal pawn move", "e2", "e5"},
		{"empty origin square", "e4", "e5"},
		{"opposing piece", "e7", "e5"},
		{"malformed square", "z9", "e5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, result := postMove(t, router, state.ID, tt.from, tt.to)
			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			assert.False(t, result.Accepted)
			assert.Equal(t, "invalid move", result.Error)
		})
	}

	// Rejections leave the game untouched.
	req := httptest.NewRequest("GET", "/api/games/"+state.ID, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	var after GameState
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&after))
	assert.Equal(t, 0, after.MoveCount)
	assert.Equal(t, "white", after.Turn)
}

func TestAutomatedReply(t *testing.T) {
	_, router := newTestRouter(t)
	state := createGame(t, router, true)

	rec, result := postMove(t, router, state.ID, "e2", "e4")
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, result.Accepted)
	require.NotNil(t, result.Reply, "automated opponent should answer")
	assert.Equal(t, 2, result.Game.MoveCount)
	assert.Equal(t, "white", result.Game.Turn)
}

func TestUndo(t *testing.T) {
	_, router := newTestRouter(t)
	state := createGame(t, router, false)

	req := httptest.NewRequest("POST", "/api/games/"+state.ID+"/undo", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusConflict, rec.Code)

	_, result := postMove(t, router, state.ID, "e2", "e4")
	require.True(t, result.Accepted)

	req = httptest.NewRequest("POST", "/api/games/"+state.ID+"/undo", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var after GameState
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&after))
	assert.Equal(t, 0, after.MoveCount)
	assert.Equal(t, "white", after.Turn)
	require.NotNil(t, after.Board[1][4])
	assert.Equal(t, "pawn", after.Board[1][4].Type)
}

func TestAutoOpponentToggleAnswersImmediately(t *testing.T) {
	_, router := newTestRouter(t)
	state := createGame(t, router, false)

	_, result := postMove(t, router, state.ID, "e2", "e4")
	require.True(t, result.Accepted)
	require.Nil(t, result.Reply)

	req := httptest.NewRequest("PUT", "/api/games/"+state.ID+"/auto-opponent", strings.NewReader(`{"enabled": true}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var toggled MoveResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&toggled))
	require.NotNil(t, toggled.Reply, "enabling mid-game on the automated side's turn should answer at once")
	assert.Equal(t, 2, toggled.Game.MoveCount)
	assert.Equal(t, "white", toggled.Game.Turn)
	assert.True(t, toggled.Game.AutoOpponent)
}

func TestBoardImage(t *testing.T) {
	_, router := newTestRouter(t)
	state := createGame(t, router, false)

	req := httptest.NewRequest("GET", "/api/games/"+state.ID+"/board.png", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	_, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
}

func TestWebSocketReceivesMoveUpdates(t *testing.T) {
	_, router := newTestRouter(t)
	server := httptest.NewServer(router)
	defer server.Close()

	resp, err := http.Post(server.URL+"/api/games", "application/json", strings.NewReader(`{"auto_opponent": false}`))
	require.NoError(t, err)
	var state GameState
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&state))
	resp.Body.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws?gameId=" + state.ID
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	resp, err = http.Post(
		server.URL+"/api/games/"+state.ID+"/moves",
		"application/json",
		strings.NewReader(`{"from": "e2", "to": "e4"}`),
	)
	require.NoError(t, err)
	resp.Body.Close()

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, message, err := conn.ReadMessage()
	require.NoError(t, err)

	var update GameUpdate
	require.NoError(t, json.Unmarshal(message, &update))
	assert.Equal(t, state.ID, update.GameID)
	assert.Equal(t, "move", update.Type)
}

func TestWebSocketRejectsUnknownGame(t *testing.T) {
	_, router := newTestRouter(t)
	server := httptest.NewServer(router)
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws?gameId=missing"
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
