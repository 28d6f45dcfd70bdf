package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/hlog"
)

const (
	msgInternalError   = "Internal server error"
	msgInvalidBody     = "invalid request body"
	msgBodyTooLarge    = "request body too large"
	msgUserExists      = "User already exists"
	msgInvalidCreds    = "Invalid credentials"
	msgUserNotFound    = "User not found"
	msgDocumentMissing = "Document not found"
	msgRouteNotFound   = "Not found"
	msgMethodNotAllow  = "Method not allowed"

	msgFingerprintMissing = "fingerprint_id is required"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// respondJSON sends v as a JSON response
func respondJSON(w http.ResponseWriter, r *http.Request, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		hlog.FromRequest(r).Warn().Err(err).Msg("failed to encode response")
	}
}

// respondWithError sends a JSON error response
func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	response := map[string]string{"error": message}
	_ = json.NewEncoder(w).Encode(response)
}

// respondInternalError logs err under label and sends the generic 500 body.
func respondInternalError(w http.ResponseWriter, r *http.Request, label string, err error) {
	hlog.FromRequest(r).Error().Err(err).Msg(label)
	respondWithError(w, http.StatusInternalServerError, msgInternalError)
}

// decodeJSON reads the request body into dst. An empty body leaves dst
// zero-valued. On failure the error response has already been written.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}

	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		respondWithError(w, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
		return false
	}
	respondWithError(w, http.StatusBadRequest, msgInvalidBody)
	return false
}

// parseID validates a path id. Malformed ids cannot name an existing row.
func parseID(raw string) (uuid.UUID, bool) {
	if err := validate.Var(raw, "required,uuid"); err != nil {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// NotFound answers requests for unknown routes
func NotFound(w http.ResponseWriter, _ *http.Request) {
	respondWithError(w, http.StatusNotFound, msgRouteNotFound)
}

// MethodNotAllowed answers known routes hit with an unsupported method
func MethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	respondWithError(w, http.StatusMethodNotAllowed, msgMethodNotAllow)
}
