package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"
	"github.com/saveone/server/internal/auth"
	"github.com/saveone/server/internal/logging"
	"github.com/saveone/server/internal/model"
)

// UserHandler handles signup, signin and profile endpoints
type UserHandler struct {
	authService *auth.AuthService
}

// NewUserHandler creates a new user handler
func NewUserHandler(authService *auth.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

// signupRequest is the request body for POST /api/users/signup
type signupRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	PhoneNumber   string `json:"phone_number"`
	Password      string `json:"password"`
	NomineeNumber string `json:"nominee_number"`
}

// signinRequest is the request body for POST /api/users/signin
type signinRequest struct {
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password"`
}

// profilePictureRequest is the request body for PUT /api/users/{id}/profile-picture
type profilePictureRequest struct {
	ProfilePictureURL string `json:"profile_picture_url"`
}

// createdResponse is the JSON response for inserts
type createdResponse struct {
	ID      string `json:"id"`
	Message string `json:"message,omitempty"`
}

// messageResponse is the JSON response for updates and deletes
type messageResponse struct {
	Message string `json:"message"`
}

// userResponse is the user object in API responses; it never carries the password
type userResponse struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Email             string  `json:"email"`
	PhoneNumber       string  `json:"phone_number"`
	NomineeNumber     string  `json:"nominee_number"`
	ProfilePictureURL *string `json:"profile_picture_url"`
}

func newUserResponse(u *model.User) userResponse {
	return userResponse{
		ID:                u.ID.String(),
		Name:              u.Name,
		Email:             u.Email,
		PhoneNumber:       u.PhoneNumber,
		NomineeNumber:     u.NomineeNumber,
		ProfilePictureURL: u.ProfilePictureURL,
	}
}

// HandleSignup handles POST /api/users/signup
func (h *UserHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	id, err := h.authService.Signup(r.Context(), model.NewUser{
		Name:          req.Name,
		Email:         req.Email,
		PhoneNumber:   req.PhoneNumber,
		Password:      req.Password,
		NomineeNumber: req.NomineeNumber,
	})
	if err != nil {
		if errors.Is(err, auth.ErrUserExists) {
			hlog.FromRequest(r).Info().
				Str("phone", logging.MaskPhone(req.PhoneNumber)).
				Str("email", logging.MaskEmail(req.Email)).
				Msg("signup rejected: user exists")
			respondWithError(w, http.StatusBadRequest, msgUserExists)
			return
		}
		respondInternalError(w, r, "Signup error", err)
		return
	}

	respondJSON(w, r, http.StatusCreated, createdResponse{ID: id.String()})
}

// HandleSignin handles POST /api/users/signin
func (h *UserHandler) HandleSignin(w http.ResponseWriter, r *http.Request) {
	var req signinRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.authService.Signin(r.Context(), req.PhoneNumber, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			hlog.FromRequest(r).Info().Str("phone", logging.MaskPhone(req.PhoneNumber)).Msg("signin rejected")
			respondWithError(w, http.StatusUnauthorized, msgInvalidCreds)
			return
		}
		respondInternalError(w, r, "Signin error", err)
		return
	}

	respondJSON(w, r, http.StatusOK, newUserResponse(user))
}

// HandleUpdateProfilePicture handles PUT /api/users/{id}/profile-picture
func (h *UserHandler) HandleUpdateProfilePicture(w http.ResponseWriter, r *http.Request) {
	var req profilePictureRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	userID, ok := parseID(chi.URLParam(r, "id"))
	if !ok {
		respondWithError(w, http.StatusNotFound, msgUserNotFound)
		return
	}

	if err := h.authService.UpdateProfilePicture(r.Context(), userID, req.ProfilePictureURL); err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			respondWithError(w, http.StatusNotFound, msgUserNotFound)
			return
		}
		respondInternalError(w, r, "Update profile picture error", err)
		return
	}

	respondJSON(w, r, http.StatusOK, messageResponse{Message: "Profile picture updated successfully"})
}
