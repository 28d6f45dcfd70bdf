package handlers

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/hlog"
	"github.com/saveone/server/internal/auth"
	"github.com/saveone/server/internal/model"
	"github.com/saveone/server/internal/scan"
)

// FingerprintHandler handles fingerprint login, registration and the scan hand-off
type FingerprintHandler struct {
	authService *auth.AuthService
	scans       scan.Store
}

// NewFingerprintHandler creates a new fingerprint handler
func NewFingerprintHandler(authService *auth.AuthService, scans scan.Store) *FingerprintHandler {
	return &FingerprintHandler{
		authService: authService,
		scans:       scans,
	}
}

// fingerprintCheckRequest is the request body for POST /api/fingerprint/check
type fingerprintCheckRequest struct {
	FingerprintID model.FingerprintID `json:"fingerprint_id"`
}

// fingerprintCheckResponse is the JSON response for POST /api/fingerprint/check
type fingerprintCheckResponse struct {
	Exists bool          `json:"exists"`
	User   *userResponse `json:"user,omitempty"`
}

// fingerprintRegisterRequest is the request body for POST /api/fingerprint/register
type fingerprintRegisterRequest struct {
	FingerprintID model.FingerprintID `json:"fingerprint_id" validate:"required"`
	Name          string              `json:"name"`
	Email         string              `json:"email"`
	PhoneNumber   string              `json:"phone_number"`
	Password      string              `json:"password"`
	NomineeNumber string              `json:"nominee_number"`
}

// scanRequest is the request body for POST /api/fingerprint/scan
type scanRequest struct {
	FingerprintID model.FingerprintID `json:"fingerprint_id"`
	Type          string              `json:"type"`
}

// scanAcceptedResponse is the JSON response for POST /api/fingerprint/scan
type scanAcceptedResponse struct {
	Message       string `json:"message"`
	FingerprintID string `json:"fingerprintId"`
}

// latestScanResponse is the JSON response for GET /api/fingerprint/latest
type latestScanResponse struct {
	FingerprintID string `json:"fingerprintId"`
	Timestamp     int64  `json:"timestamp"`
	Type          string `json:"type"`
}

// HandleCheck handles POST /api/fingerprint/check
func (h *FingerprintHandler) HandleCheck(w http.ResponseWriter, r *http.Request) {
	var req fingerprintCheckRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, exists, err := h.authService.CheckFingerprint(r.Context(), string(req.FingerprintID))
	if err != nil {
		respondInternalError(w, r, "Fingerprint check error", err)
		return
	}
	if !exists {
		respondJSON(w, r, http.StatusOK, fingerprintCheckResponse{Exists: false})
		return
	}

	resp := newUserResponse(user)
	respondJSON(w, r, http.StatusOK, fingerprintCheckResponse{Exists: true, User: &resp})
}

// HandleRegister handles POST /api/fingerprint/register
func (h *FingerprintHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req fingerprintRegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validate.Struct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, msgFingerprintMissing)
		return
	}

	id, err := h.authService.RegisterFingerprint(r.Context(), model.NewUser{
		Name:          req.Name,
		Email:         req.Email,
		PhoneNumber:   req.PhoneNumber,
		Password:      req.Password,
		NomineeNumber: req.NomineeNumber,
		FingerprintID: req.FingerprintID.Ptr(),
	})
	if err != nil {
		if errors.Is(err, auth.ErrUserExists) {
			respondWithError(w, http.StatusBadRequest, msgUserExists)
			return
		}
		respondInternalError(w, r, "Fingerprint register error", err)
		return
	}

	respondJSON(w, r, http.StatusCreated, createdResponse{
		ID:      id.String(),
		Message: "Fingerprint registered successfully",
	})
}

// HandleScan handles POST /api/fingerprint/scan
func (h *FingerprintHandler) HandleScan(w http.ResponseWriter, r *http.Request) {
	var req scanRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	rec, err := h.scans.Submit(r.Context(), string(req.FingerprintID), req.Type)
	if err != nil {
		respondInternalError(w, r, "Fingerprint scan error", err)
		return
	}

	hlog.FromRequest(r).Debug().Str("type", rec.Type).Msg("fingerprint scan staged")
	respondJSON(w, r, http.StatusOK, scanAcceptedResponse{
		Message:       "Fingerprint scan received",
		FingerprintID: rec.FingerprintID,
	})
}

// HandleLatest handles GET /api/fingerprint/latest
func (h *FingerprintHandler) HandleLatest(w http.ResponseWriter, r *http.Request) {
	rec, err := h.scans.Latest(r.Context())
	switch {
	case errors.Is(err, scan.ErrNoScan):
		respondWithError(w, http.StatusNotFound, "No fingerprint scan available")
		return
	case errors.Is(err, scan.ErrScanExpired):
		respondWithError(w, http.StatusNotFound, "Scan expired")
		return
	case err != nil:
		respondInternalError(w, r, "Latest fingerprint scan error", err)
		return
	}

	respondJSON(w, r, http.StatusOK, latestScanResponse{
		FingerprintID: rec.FingerprintID,
		Timestamp:     rec.Timestamp.UnixMilli(),
		Type:          rec.Type,
	})
}

// HandleClearLatest handles DELETE /api/fingerprint/latest
func (h *FingerprintHandler) HandleClearLatest(w http.ResponseWriter, r *http.Request) {
	if err := h.scans.Clear(r.Context()); err != nil {
		respondInternalError(w, r, "Clear fingerprint scan error", err)
		return
	}
	respondJSON(w, r, http.StatusOK, messageResponse{Message: "Latest scan cleared"})
}
