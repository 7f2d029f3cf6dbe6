package handlers

import (
	"net/http"

	"go.uber.org/zap"
)

// ProfileCounter reports how many identities are registered.
type ProfileCounter interface {
	Count() (int, error)
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status   string `json:"status"`
	Profiles int    `json:"profiles"`
}

// HealthHandler reports liveness and the registered profile count.
type HealthHandler struct {
	profiles ProfileCounter
	logger   *zap.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(profiles ProfileCounter, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{profiles: profiles, logger: logger}
}

// Get handles GET /health. A failed count is logged and reported as zero.
func (h *HealthHandler) Get(w http.ResponseWriter, r *http.Request) {
	count, err := h.profiles.Count()
	if err != nil {
		h.logger.Warn("counting profiles", zap.Error(err))
		count = 0
	}
	respondJSON(w, http.StatusOK, HealthResponse{Status: "online", Profiles: count})
}
