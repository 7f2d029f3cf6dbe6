package handlers

import (
	"context"
	"net/http"

	"github.com/kozaktomas/face-attendance/internal/attendance"
	"github.com/kozaktomas/face-attendance/internal/constants"
	"github.com/kozaktomas/face-attendance/internal/profiles"
	"go.uber.org/zap"
)

// AttendanceRecorder records attendance events.
type AttendanceRecorder interface {
	Record(ctx context.Context, name, status string) (attendance.Entry, error)
}

// AttendanceRequest is the body of POST /attendance. Type is the mode label
// (for example "Check-in") stored as the Status column.
type AttendanceRequest struct {
	Name string `json:"name" validate:"required"`
	Type string `json:"type"`
}

// AttendanceHandler handles attendance recording.
type AttendanceHandler struct {
	recorder AttendanceRecorder
	logger   *zap.Logger
}

// NewAttendanceHandler creates a new attendance handler
func NewAttendanceHandler(recorder AttendanceRecorder, logger *zap.Logger) *AttendanceHandler {
	return &AttendanceHandler{recorder: recorder, logger: logger}
}

// Record handles POST /attendance. Remote sync failures are not reported to
// the caller.
func (h *AttendanceHandler) Record(w http.ResponseWriter, r *http.Request) {
	var req AttendanceRequest
	if err := decodeBody(w, r, &req); err != nil {
		handleDecodeError(w, err, constants.MsgMissingName)
		return
	}

	// Names are cleaned the same way /register and /recognize see them, so
	// the cooldown and the log key on one spelling.
	name := profiles.CleanName(req.Name)
	if name == "" {
		respondFailure(w, http.StatusBadRequest, constants.MsgMissingName)
		return
	}

	if _, err := h.recorder.Record(r.Context(), name, req.Type); err != nil {
		h.logger.Error("recording attendance",
			zap.String("name", sanitizeForLog(name)),
			zap.Error(err),
		)
		respondFailure(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true})
}
