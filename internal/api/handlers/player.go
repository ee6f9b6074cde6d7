package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/xylexgaming/xgi-website/internal/domain"
	"github.com/xylexgaming/xgi-website/internal/service"
)

type PlayerHandler struct {
	playerService *service.PlayerService
}

func NewPlayerHandler(playerService *service.PlayerService) *PlayerHandler {
	return &PlayerHandler{playerService: playerService}
}

type RegisterPlayerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type RegisterPlayerResponse struct {
	OK bool   `json:"ok"`
	ID string `json:"id"`
}

type SubscribeRequest struct {
	Email string `json:"email"`
}

type SubscribeResponse struct {
	Message string `json:"message"`
}

// Register handles POST /api/player
func (h *PlayerHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterPlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	player, err := h.playerService.Register(r.Context(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
	})
	if err != nil {
		writeServiceError(w, "player.Register", err, "Email already exists")
		return
	}

	writeJSON(w, http.StatusCreated, RegisterPlayerResponse{OK: true, ID: player.ID})
}

// List handles GET /api/players?limit=
func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	players, err := h.playerService.ListPlayers(r.Context(), limit)
	if err != nil {
		writeServiceError(w, "player.List", err, "")
		return
	}

	writeJSON(w, http.StatusOK, players)
}

// Subscribe handles POST /api/newsletter
func (h *PlayerHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req SubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if _, err := h.playerService.Subscribe(r.Context(), req.Email); err != nil {
		writeServiceError(w, "player.Subscribe", err, "Email already subscribed")
		return
	}

	writeJSON(w, http.StatusCreated, SubscribeResponse{Message: "Subscribed!"})
}

func writeServiceError(w http.ResponseWriter, op string, err error, conflictMsg string) {
	var validation *domain.ValidationError
	switch {
	case errors.As(err, &validation):
		writeError(w, http.StatusBadRequest, validation.Message)
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, conflictMsg)
	case errors.Is(err, domain.ErrStoreUnavailable):
		logrus.WithError(err).Errorf("[%s] store unavailable", op)
		writeError(w, http.StatusServiceUnavailable, "Database not available")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "Not found")
	default:
		logrus.WithError(err).Errorf("[%s] unexpected error", op)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
