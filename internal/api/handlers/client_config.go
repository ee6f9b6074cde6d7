package handlers

import (
	"net/http"
	"time"
)

// ClientConfigResponse carries the settings the browser renderer reads at
// startup.
type ClientConfigResponse struct {
	SearchDebounceMs int64 `json:"searchDebounceMs"`
}

type ClientConfigHandler struct {
	searchDebounce time.Duration
}

func NewClientConfigHandler(searchDebounce time.Duration) *ClientConfigHandler {
	return &ClientConfigHandler{searchDebounce: searchDebounce}
}

// Get handles GET /api/config
func (h *ClientConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ClientConfigResponse{
		SearchDebounceMs: h.searchDebounce.Milliseconds(),
	})
}
