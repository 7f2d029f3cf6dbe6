package handlers

import (
	"context"
	"net/http"

	"github.com/kozaktomas/face-attendance/internal/constants"
	"github.com/kozaktomas/face-attendance/internal/facematch"
	"github.com/kozaktomas/face-attendance/internal/fingerprint"
	"go.uber.org/zap"
)

// Recognizer identifies the person in a captured photo.
type Recognizer interface {
	Recognize(ctx context.Context, photo []byte) (facematch.Result, error)
}

// RecognizeRequest is the body of POST /recognize. A missing photo is not a
// validation error; it simply matches nobody.
type RecognizeRequest struct {
	Photo string `json:"photo"`
}

// RecognizeHandler handles photo recognition.
type RecognizeHandler struct {
	engine Recognizer
	logger *zap.Logger
}

// NewRecognizeHandler creates a new recognize handler
func NewRecognizeHandler(engine Recognizer, logger *zap.Logger) *RecognizeHandler {
	return &RecognizeHandler{engine: engine, logger: logger}
}

// Recognize handles POST /recognize. It never records attendance; the client
// calls /attendance after a successful match.
func (h *RecognizeHandler) Recognize(w http.ResponseWriter, r *http.Request) {
	var req RecognizeRequest
	if err := decodeBody(w, r, &req); err != nil {
		handleDecodeError(w, err, constants.MsgUnknown)
		return
	}

	// An absent photo or one that is not valid base64 cannot match anything.
	data, err := fingerprint.DecodePhoto(req.Photo)
	if err != nil {
		h.logger.Info("captured photo is missing or not valid base64", zap.Error(err))
		respondFailure(w, http.StatusNotFound, constants.MsgUnknown)
		return
	}

	result, err := h.engine.Recognize(r.Context(), data)
	if err != nil {
		h.logger.Error("recognition failed", zap.Error(err))
		respondFailure(w, http.StatusInternalServerError, err.Error())
		return
	}

	switch result.Outcome {
	case facematch.OutcomeMatched:
		h.logger.Info("recognized", zap.String("name", result.Identity), zap.Float64("score", result.Score))
		respondJSON(w, http.StatusOK, Response{Success: true, Name: result.Identity})
	case facematch.OutcomeSuppressed:
		h.logger.Info("recognized within cooldown", zap.String("name", result.Identity), zap.Float64("score", result.Score))
		respondFailure(w, http.StatusTooManyRequests, constants.MsgAlreadyLogged)
	default:
		h.logger.Info("not recognized",
			zap.String("outcome", string(result.Outcome)),
			zap.Float64("best_score", result.Score),
			zap.Int("compared", result.Compared),
		)
		respondFailure(w, http.StatusNotFound, constants.MsgUnknown)
	}
}
