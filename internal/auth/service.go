package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/saveone/server/internal/model"
	"github.com/saveone/server/internal/repo"
)

var (
	// ErrUserExists is returned when email, phone number or fingerprint id is taken
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidCredentials is returned when phone number and password do not match a user
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserNotFound is returned when the addressed user does not exist
	ErrUserNotFound = errors.New("user not found")
)

// AuthService orchestrates user identity operations
type AuthService struct {
	userRepo repo.UserRepo
	verifier CredentialVerifier
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repo.UserRepo, verifier CredentialVerifier) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		verifier: verifier,
	}
}

// Signup creates a user identified by email and phone number.
func (s *AuthService) Signup(ctx context.Context, u model.NewUser) (uuid.UUID, error) {
	u.FingerprintID = nil
	return s.create(ctx, u)
}

// RegisterFingerprint creates a user that can later sign in with the given
// fingerprint id. The fingerprint id must be unused as well.
func (s *AuthService) RegisterFingerprint(ctx context.Context, u model.NewUser) (uuid.UUID, error) {
	return s.create(ctx, u)
}

func (s *AuthService) create(ctx context.Context, u model.NewUser) (uuid.UUID, error) {
	id, err := s.userRepo.Create(ctx, u)
	if err != nil {
		if errors.Is(err, repo.ErrAlreadyExists) {
			return uuid.Nil, ErrUserExists
		}
		return uuid.Nil, fmt.Errorf("failed to create user: %w", err)
	}
	return id, nil
}

// Signin returns the user whose phone number and password both match.
func (s *AuthService) Signin(ctx context.Context, phone, password string) (*model.User, error) {
	user, err := s.userRepo.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if !s.verifier.Verify(user.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// CheckFingerprint looks a user up by fingerprint id. A missing user is not an
// error: the boolean result is false.
func (s *AuthService) CheckFingerprint(ctx context.Context, fingerprintID string) (*model.User, bool, error) {
	user, err := s.userRepo.GetByFingerprint(ctx, fingerprintID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to look up fingerprint: %w", err)
	}
	return &user, true, nil
}

// UpdateProfilePicture stores a new profile picture URL for the user.
func (s *AuthService) UpdateProfilePicture(ctx context.Context, userID uuid.UUID, url string) error {
	if err := s.userRepo.UpdateProfilePicture(ctx, userID, url); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to update profile picture: %w", err)
	}
	return nil
}
