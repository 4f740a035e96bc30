package web

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/tmccall/shallowblue/internal/chess"
	"github.com/tmccall/shallowblue/internal/config"
	"github.com/tmccall/shallowblue/internal/render"
)

// Service wires the game-session registry, the websocket hub and the board
// renderer behind the HTTP API.
type Service struct {
	games    *Registry
	hub      *Hub
	config   *config.Config
	renderer *render.BoardRenderer
}

func NewService(games *Registry, hub *Hub, cfg *config.Config) *Service {
	return &Service{
		games:    games,
		hub:      hub,
		config:   cfg,
		renderer: render.NewBoardRenderer(cfg.Render.SquareSize),
	}
}

// PieceState is one occupied board cell in a snapshot.
type PieceState struct {
	Type  string `json:"type"`
	Color string `json:"color"`
}

// GameState is the full read model of a session: everything the presentation
// layer polls after a mutating call.
type GameState struct {
	ID              string          `json:"id"`
	Turn            string          `json:"turn"`
	Phase           string          `json:"phase"`
	Loser           string          `json:"loser,omitempty"`
	Board           [][]*PieceState `json:"board"` // [rank][file], rank 0 first
	CapturedByWhite []string        `json:"capturedByWhite"`
	CapturedByBlack []string        `json:"capturedByBlack"`
	MoveCount       int             `json:"moveCount"`
	AutoOpponent    bool            `json:"autoOpponent"`
	CreatedAt       string          `json:"createdAt"`
}

// MoveState is a move in wire form, algebraic squares.
type MoveState struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// MoveResult reports the outcome of a move submission. Reply is the
// automated opponent's answer when one was played.
type MoveResult struct {
	Accepted bool       `json:"accepted"`
	Move     *MoveState `json:"move,omitempty"`
	Reply    *MoveState `json:"reply,omitempty"`
	Game     *GameState `json:"game,omitempty"`
	Error    string     `json:"error,omitempty"`
}

// snapshotLocked builds a GameState. Callers must hold the session lock.
func snapshotLocked(s *Session, e *chess.Engine) *GameState {
	board := make([][]*PieceState, 8)
	for r := 0; r < 8; r++ {
		board[r] = make([]*PieceState, 8)
		for f := 0; f < 8; f++ {
			p := e.PieceAt(chess.Square{File: f, Rank: r})
			if p.IsEmpty() {
				continue
			}
			board[r][f] = &PieceState{Type: p.Type.String(), Color: p.Color.String()}
		}
	}

	phase, loser := e.Phase()
	state := &GameState{
		ID:              s.ID,
		Turn:            e.Turn().String(),
		Phase:           phase.String(),
		Board:           board,
		CapturedByWhite: pieceNames(e.Captured(chess.White)),
		CapturedByBlack: pieceNames(e.Captured(chess.Black)),
		MoveCount:       e.MoveCount(),
		AutoOpponent:    e.AutomatedOpponent(),
		CreatedAt:       s.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if phase == chess.Checkmate {
		state.Loser = loser.String()
	}
	return state
}

func pieceNames(types []chess.PieceType) []string {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = t.String()
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Service) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"games":  s.games.Len(),
	})
}

type CreateGameRequest struct {
	AutoOpponent *bool `json:"auto_opponent,omitempty"`
}

func (s *Service) CreateGameHandler(w http.ResponseWriter, r *http.Request) {
	auto := s.config.Engine.AutoOpponent
	if r.Body != nil {
		var req CreateGameRequest
		// An empty body means defaults; a malformed one is still an error.
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil && req.AutoOpponent != nil {
			auto = *req.AutoOpponent
		}
	}

	session := s.games.Create(auto)
	log.Info().Str("gameID", session.ID).Bool("autoOpponent", auto).Msg("Game created")

	var state *GameState
	session.Do(func(e *chess.Engine) {
		state = snapshotLocked(session, e)
	})
	writeJSON(w, http.StatusCreated, state)
}

func (s *Service) GetGameHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := s.games.Get(mux.Vars(r)["id"])
	if !ok {
		http.Error(w, "Game not found", http.StatusNotFound)
		return
	}

	var state *GameState
	session.Do(func(e *chess.Engine) {
		state = snapshotLocked(session, e)
	})
	writeJSON(w, http.StatusOK, state)
}

type MakeMoveRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func (s *Service) MakeMoveHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := s.games.Get(mux.Vars(r)["id"])
	if !ok {
		http.Error(w, "Game not found", http.StatusNotFound)
		return
	}

	var req MakeMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	from, okFrom := chess.ParseSquare(req.From)
	to, okTo := chess.ParseSquare(req.To)
	if !okFrom || !okTo {
		writeJSON(w, http.StatusUnprocessableEntity, &MoveResult{
			Accepted: false,
			Error:    "invalid move",
		})
		return
	}

	var result *MoveResult
	session.Do(func(e *chess.Engine) {
		if !e.AttemptMove(from, to) {
			result = &MoveResult{Accepted: false, Error: "invalid move"}
			return
		}

		move := &MoveState{From: req.From, To: req.To}
		log.Info().Str("gameID", session.ID).Str("from", req.From).Str("to", req.To).Msg("Move applied")
		s.broadcastLocked(session, e, "move", move)

		// The automated reply goes out as a separate update after the human
		// move has been broadcast, so watchers can repaint in between.
		reply := s.playAutomatedReplyLocked(session, e)

		result = &MoveResult{
			Accepted: true,
			Move:     move,
			Reply:    reply,
			Game:     snapshotLocked(session, e),
		}
	})

	if !result.Accepted {
		writeJSON(w, http.StatusUnprocessableEntity, result)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// playAutomatedReplyLocked lets the built-in opponent answer when it is its
// turn. Callers must hold the session lock.
func (s *Service) playAutomatedReplyLocked(session *Session, e *chess.Engine) *MoveState {
	if !e.AutomatedTurn() {
		return nil
	}

	m, ok := e.SearchMove()
	if !ok {
		return nil
	}
	if !e.AttemptMove(m.From, m.To) {
		log.Error().Str("gameID", session.ID).Str("move", m.String()).Msg("Search produced an illegal move")
		return nil
	}

	reply := &MoveState{From: m.From.String(), To: m.To.String()}
	log.Info().Str("gameID", session.ID).Str("from", reply.From).Str("to", reply.To).Msg("Automated reply applied")
	s.broadcastLocked(session, e, "move", reply)
	return reply
}

// broadcastLocked pushes a game update plus, when the position is dead, a
// game_end notice. Callers must hold the session lock.
func (s *Service) broadcastLocked(session *Session, e *chess.Engine, kind string, data interface{}) {
	s.hub.BroadcastGameUpdate(GameUpdate{GameID: session.ID, Type: kind, Data: data})

	if phase, loser := e.Phase(); phase != chess.InProgress {
		end := map[string]string{"phase": phase.String()}
		if phase == chess.Checkmate {
			end["loser"] = loser.String()
		}
		s.hub.BroadcastGameUpdate(GameUpdate{GameID: session.ID, Type: "game_end", Data: end})
	}
}

func (s *Service) UndoHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := s.games.Get(mux.Vars(r)["id"])
	if !ok {
		http.Error(w, "Game not found", http.StatusNotFound)
		return
	}

	var state *GameState
	undone := false
	session.Do(func(e *chess.Engine) {
		undone = e.Undo()
		if undone {
			state = snapshotLocked(session, e)
			s.hub.BroadcastGameUpdate(GameUpdate{GameID: session.ID, Type: "undo", Data: state})
		}
	})

	if !undone {
		http.Error(w, "Nothing to undo", http.StatusConflict)
		return
	}
	log.Info().Str("gameID", session.ID).Msg("Move undone")
	writeJSON(w, http.StatusOK, state)
}

type AutoOpponentRequest struct {
	Enabled bool `json:"enabled"`
}

func (s *Service) SetAutoOpponentHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := s.games.Get(mux.Vars(r)["id"])
	if !ok {
		http.Error(w, "Game not found", http.StatusNotFound)
		return
	}

	var req AutoOpponentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var result *MoveResult
	session.Do(func(e *chess.Engine) {
		e.SetAutomatedOpponent(req.Enabled)
		s.hub.BroadcastGameUpdate(GameUpdate{
			GameID: session.ID,
			Type:   "auto_opponent",
			Data:   map[string]bool{"enabled": req.Enabled},
		})

		// Enabling on the automated side's turn answers immediately so the
		// game cannot stall waiting for input nobody will provide.
		reply := s.playAutomatedReplyLocked(session, e)
		result = &MoveResult{Accepted: true, Reply: reply, Game: snapshotLocked(session, e)}
	})

	log.Info().Str("gameID", session.ID).Bool("enabled", req.Enabled).Msg("Automated opponent toggled")
	writeJSON(w, http.StatusOK, result)
}

func (s *Service) BoardImageHandler(w http.ResponseWriter, r *http.Request) {
	session, ok := s.games.Get(mux.Vars(r)["id"])
	if !ok {
		http.Error(w, "Game not found", http.StatusNotFound)
		return
	}

	var board chess.Board
	var last *chess.Move
	session.Do(func(e *chess.Engine) {
		board = e.Snapshot()
		if m, ok := e.LastMove(); ok {
			last = &m
		}
	})

	png, err := s.renderer.RenderPNG(board, last)
	if err != nil {
		log.Error().Err(err).Str("gameID", session.ID).Msg("Failed to render board")
		http.Error(w, "Failed to render board", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

// NewRouter builds the full API router, shared by main and the tests.
func NewRouter(s *Service, hub *Hub) *mux.Router {
	router := mux.NewRouter()

	// Add CORS middleware
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	})

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", s.HealthHandler).Methods("GET")
	api.HandleFunc("/games", s.CreateGameHandler).Methods("POST")
	api.HandleFunc("/games/{id}", s.GetGameHandler).Methods("GET")
	api.HandleFunc("/games/{id}/moves", s.MakeMoveHandler).Methods("POST")
	api.HandleFunc("/games/{id}/undo", s.UndoHandler).Methods("POST")
	api.HandleFunc("/games/{id}/auto-opponent", s.SetAutoOpponentHandler).Methods("PUT")
	api.HandleFunc("/games/{id}/board.png", s.BoardImageHandler).Methods("GET")

	router.HandleFunc("/ws", s.WebSocketHandler(hub)).Methods("GET")

	return router
}
