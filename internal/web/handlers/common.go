package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kozaktomas/face-attendance/internal/constants"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// errValidation marks a body that decoded but is missing required fields.
var errValidation = errors.New("validation failed")

// Response is the JSON shape shared by the attendance endpoints.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Name    string `json:"name,omitempty"`
}

// sanitizeForLog removes newlines and carriage returns to prevent log injection.
func sanitizeForLog(s string) string {
	return strings.NewReplacer("\n", "", "\r", "").Replace(s)
}

// respondJSON sends a JSON response.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// respondFailure sends {success:false, message}.
func respondFailure(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, Response{Success: false, Message: message})
}

// decodeBody reads a size-capped JSON body into dst and validates it.
// Missing required fields are reported as errValidation.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, constants.MaxRequestBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return err
	}
	var validationErrs validator.ValidationErrors
	if err := validate.Struct(dst); err != nil {
		if errors.As(err, &validationErrs) {
			return errValidation
		}
		return err
	}
	return nil
}

// handleDecodeError responds to a decodeBody failure. missing is the message
// for absent required fields.
func handleDecodeError(w http.ResponseWriter, err error, missing string) {
	var maxErr *http.MaxBytesError
	switch {
	case errors.Is(err, errValidation):
		respondFailure(w, http.StatusBadRequest, missing)
	case errors.As(err, &maxErr):
		respondFailure(w, http.StatusRequestEntityTooLarge, constants.MsgInvalidBody)
	default:
		respondFailure(w, http.StatusBadRequest, constants.MsgInvalidBody)
	}
}
