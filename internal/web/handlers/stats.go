package handlers

import (
	"net/http"
	"time"

	"github.com/kozaktomas/face-attendance/internal/attendance"
)

// CooldownCounter reports how many identities the cooldown map holds.
type CooldownCounter interface {
	Len() int
}

// SyncReporter exposes remote sync counters.
type SyncReporter interface {
	Stats() attendance.SyncStats
	SinkNames() []string
}

// StatsResponse represents the stats response
type StatsResponse struct {
	CooldownEntries   int        `json:"cooldown_entries"`
	SyncAttempts      int64      `json:"sync_attempts"`
	SyncFailures      int64      `json:"sync_failures"`
	LastSyncError     string     `json:"last_sync_error,omitempty"`
	LastSyncFailureAt *time.Time `json:"last_sync_failure_at,omitempty"`
	RemoteSinks       []string   `json:"remote_sinks"`
}

// StatsHandler handles statistics endpoints
type StatsHandler struct {
	cooldown CooldownCounter
	sync     SyncReporter
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(cooldown CooldownCounter, sync SyncReporter) *StatsHandler {
	return &StatsHandler{cooldown: cooldown, sync: sync}
}

// Get returns cooldown and remote sync statistics
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	stats := h.sync.Stats()
	resp := StatsResponse{
		CooldownEntries: h.cooldown.Len(),
		SyncAttempts:    stats.Attempts,
		SyncFailures:    stats.Failures,
		LastSyncError:   stats.LastError,
		RemoteSinks:     h.sync.SinkNames(),
	}
	if !stats.LastFailureAt.IsZero() {
		at := stats.LastFailureAt
		resp.LastSyncFailureAt = &at
	}
	respondJSON(w, http.StatusOK, resp)
}
