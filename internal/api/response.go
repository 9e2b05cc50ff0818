package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"cueclub/internal/apperr"
	"cueclub/internal/service"
)

// M is a shorthand for ad-hoc JSON payloads.
type M map[string]interface{}

// RespondWithJSON sends a JSON response with the given status code.
func RespondWithJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// RespondWithError sends a JSON error body with the given status code.
func RespondWithError(w http.ResponseWriter, code int, msg string) {
	RespondWithJSON(w, code, map[string]string{"error": msg})
}

// respondServiceError maps service errors onto HTTP status codes.
// Booking conflicts carry the conflicting slot in the body so clients
// can show what blocked them.
func respondServiceError(w http.ResponseWriter, err error) {
	var conflictErr *apperr.ConflictError
	switch {
	case errors.As(err, &conflictErr):
		RespondWithJSON(w, http.StatusConflict, M{
			"error":    conflictErr.Error(),
			"conflict": conflictErr.Conflict,
		})
	case apperr.IsValidation(err):
		RespondWithError(w, http.StatusBadRequest, err.Error())
	case apperr.IsNotFound(err):
		RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		RespondWithError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrInsufficientBalance), errors.Is(err, service.ErrInvalidAmount):
		RespondWithError(w, http.StatusBadRequest, err.Error())
	default:
		log.Error().Err(err).Msg("internal error")
		RespondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}

// decodeBody parses a JSON request body into dst.
func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
