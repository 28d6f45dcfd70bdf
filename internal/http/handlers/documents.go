package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/saveone/server/internal/documents"
	"github.com/saveone/server/internal/model"
)

// DocumentHandler handles document metadata endpoints
type DocumentHandler struct {
	docs *documents.Service
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(docs *documents.Service) *DocumentHandler {
	return &DocumentHandler{docs: docs}
}

// uploadRequest is the request body for POST /api/documents/upload
type uploadRequest struct {
	UserID       string  `json:"user_id"`
	FileName     string  `json:"file_name"`
	FirebaseURL  string  `json:"firebase_url"`
	FirebasePath string  `json:"firebase_path"`
	FileSize     int64   `json:"file_size"`
	FileType     *string `json:"file_type"`
}

// countResponse is the JSON response for GET /api/documents/{id}/count
type countResponse struct {
	Count int `json:"count"`
}

// HandleList handles GET /api/documents/{id}
func (h *DocumentHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseID(chi.URLParam(r, "id"))
	if !ok {
		respondJSON(w, r, http.StatusOK, []model.Document{})
		return
	}

	docs, err := h.docs.List(r.Context(), userID)
	if err != nil {
		respondInternalError(w, r, "Get documents error", err)
		return
	}
	respondJSON(w, r, http.StatusOK, docs)
}

// HandleCount handles GET /api/documents/{id}/count
func (h *DocumentHandler) HandleCount(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseID(chi.URLParam(r, "id"))
	if !ok {
		respondJSON(w, r, http.StatusOK, countResponse{Count: 0})
		return
	}

	n, err := h.docs.Count(r.Context(), userID)
	if err != nil {
		respondInternalError(w, r, "Get document count error", err)
		return
	}
	respondJSON(w, r, http.StatusOK, countResponse{Count: n})
}

// HandleUpload handles POST /api/documents/upload
func (h *DocumentHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	var req uploadRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	id, err := h.docs.Upload(r.Context(), model.NewDocument{
		UserID:       req.UserID,
		FileName:     req.FileName,
		FirebaseURL:  req.FirebaseURL,
		FirebasePath: req.FirebasePath,
		FileSize:     req.FileSize,
		FileType:     req.FileType,
	})
	if err != nil {
		respondInternalError(w, r, "Upload document error", err)
		return
	}
	respondJSON(w, r, http.StatusCreated, createdResponse{ID: id.String()})
}

// HandleDelete handles DELETE /api/documents/{id}
func (h *DocumentHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(chi.URLParam(r, "id"))
	if !ok {
		respondWithError(w, http.StatusNotFound, msgDocumentMissing)
		return
	}

	if err := h.docs.Delete(r.Context(), id); err != nil {
		if errors.Is(err, documents.ErrDocumentNotFound) {
			respondWithError(w, http.StatusNotFound, msgDocumentMissing)
			return
		}
		respondInternalError(w, r, "Delete document error", err)
		return
	}
	respondJSON(w, r, http.StatusOK, messageResponse{Message: "Document deleted successfully"})
}
