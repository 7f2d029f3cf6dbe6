package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/kozaktomas/face-attendance/internal/constants"
	"github.com/kozaktomas/face-attendance/internal/fingerprint"
	"github.com/kozaktomas/face-attendance/internal/profiles"
	"go.uber.org/zap"
)

// ProfileSaver stores reference photos.
type ProfileSaver interface {
	Save(name string, data []byte) (profiles.Profile, error)
}

// RegisterRequest is the body of POST /register.
type RegisterRequest struct {
	Name  string `json:"name" validate:"required"`
	Photo string `json:"photo" validate:"required"`
}

// RegisterHandler handles identity registration.
type RegisterHandler struct {
	store  ProfileSaver
	logger *zap.Logger
}

// NewRegisterHandler creates a new register handler
func NewRegisterHandler(store ProfileSaver, logger *zap.Logger) *RegisterHandler {
	return &RegisterHandler{store: store, logger: logger}
}

// Register handles POST /register. Re-registering a name replaces its photo.
func (h *RegisterHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeBody(w, r, &req); err != nil {
		handleDecodeError(w, err, constants.MsgMissingNamePhoto)
		return
	}

	data, err := fingerprint.DecodePhoto(req.Photo)
	if err != nil {
		respondFailure(w, http.StatusBadRequest, err.Error())
		return
	}

	profile, err := h.store.Save(req.Name, data)
	if err != nil {
		if errors.Is(err, profiles.ErrInvalidName) {
			respondFailure(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("saving profile", zap.String("name", sanitizeForLog(req.Name)), zap.Error(err))
		respondFailure(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.logger.Info("profile registered", zap.String("name", profile.Identity), zap.String("file", profile.Filename))
	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: fmt.Sprintf("%s added to database.", profile.Identity),
	})
}
