package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/vkoval/numrace/game/pool"
	"github.com/vkoval/numrace/game/service"
	"github.com/vkoval/numrace/game/session"
	"github.com/vkoval/numrace/oracle"
	"github.com/vkoval/numrace/transport/websocket"
)

// Server represents the REST API server.
type Server struct {
	service service.GameService
	hub     *websocket.Hub
	router  *mux.Router
	logger  zerolog.Logger
}

// NewServer creates a new API server.
func NewServer(gameService service.GameService, hub *websocket.Hub, logger zerolog.Logger) *Server {
	s := &Server{
		service: gameService,
		hub:     hub,
		router:  mux.NewRouter(),
		logger:  logger,
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes.
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	// Multiplayer games
	api.HandleFunc("/games", s.handleCreateGame).Methods("POST")
	api.HandleFunc("/games/{id}", s.handleGameInfo).Methods("GET")
	api.HandleFunc("/games/{id}/join", s.handleJoin).Methods("POST")
	api.HandleFunc("/games/{id}/move", s.handleMove).Methods("POST")
	api.HandleFunc("/games/{id}/giveup", s.handleGiveUp).Methods("POST")

	// Single-player practice
	api.HandleFunc("/random", s.handleRandom).Methods("GET")
	api.HandleFunc("/check", s.handleCheck).Methods("POST")
	api.HandleFunc("/solution", s.handleSolution).Methods("POST")

	// WebSocket
	s.router.HandleFunc("/ws", s.handleWebSocket)

	// Static files (if needed)
	s.router.PathPrefix("/").Handler(http.FileServer(http.Dir("./static/")))
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response helpers

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError translates state-machine errors into HTTP responses.
func (s *Server) respondServiceError(w http.ResponseWriter, err error) {
	var finished *service.FinishedError
	var oracleErr *oracle.Error

	switch {
	case errors.Is(err, session.ErrNotFound):
		respondError(w, http.StatusNotFound, "Game not found")
	case errors.Is(err, pool.ErrEmpty):
		respondError(w, http.StatusNotFound, "No numbers in DB")
	case errors.Is(err, service.ErrInvalidInput):
		respondError(w, http.StatusBadRequest, "Missing required field")
	case errors.As(err, &finished):
		respondJSON(w, http.StatusBadRequest, map[string]string{
			"error":  "Game finished",
			"winner": finished.Winner,
		})
	case errors.As(err, &oracleErr):
		s.logger.Error().Err(err).Msg("oracle failure")
		if oracleErr.Op == "solve" {
			respondJSON(w, http.StatusInternalServerError, map[string]string{
				"error":   "Solution failed",
				"details": oracleErr.Detail,
			})
		} else {
			respondJSON(w, http.StatusInternalServerError, map[string]string{
				"error":   "Checker failed",
				"details": oracleErr.Detail,
			})
		}
	default:
		s.logger.Error().Err(err).Msg("unhandled service error")
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}

// Game Handlers

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	result, err := s.service.CreateGame(r.Context())
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Game created",
		"gameId":  result.GameID,
		"target":  result.Target,
	})
}

func (s *Server) handleGameInfo(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	snap, err := s.service.GameInfo(r.Context(), id)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"target":   snap.Target,
		"players":  snap.Players,
		"finished": snap.Finished,
		"winner":   snap.Winner,
		"moves":    snap.Moves,
	})
}

func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req struct {
		PlayerName string `json:"playerName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := s.service.Join(r.Context(), id, req.PlayerName)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req struct {
		PlayerName string `json:"playerName"`
		Solution   string `json:"solution"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := s.service.SubmitMove(r.Context(), id, req.PlayerName, req.Solution)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleGiveUp(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req struct {
		PlayerName string `json:"playerName"`
	}
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}

	result, err := s.service.GiveUp(r.Context(), id, req.PlayerName)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Single-player Handlers

func (s *Server) handleRandom(w http.ResponseWriter, r *http.Request) {
	target, err := s.service.RandomTarget(r.Context())
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"target": target})
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Target   string `json:"target"`
		Solution string `json:"solution"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	verdict, err := s.service.CheckSolution(r.Context(), req.Target, req.Solution)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"verdict": verdict})
}

func (s *Server) handleSolution(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Target string `json:"target"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	solution, err := s.service.RevealSolution(r.Context(), req.Target)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"solution": solution})
}

// handleWebSocket upgrades the connection into the game's room.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("game")
	if gameID == "" {
		respondError(w, http.StatusBadRequest, "Missing game parameter")
		return
	}

	s.hub.ServeWS(w, r, gameID)
}
