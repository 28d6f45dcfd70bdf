package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/saveone/server/internal/model"
)

// UserRepo defines the interface for user repository operations
type UserRepo interface {
	Create(ctx context.Context, u model.NewUser) (uuid.UUID, error)
	GetByPhone(ctx context.Context, phone string) (model.User, error)
	GetByFingerprint(ctx context.Context, fingerprintID string) (model.User, error)
	UpdateProfilePicture(ctx context.Context, id uuid.UUID, url string) error
}

type userRepo struct {
	db *sql.DB
}

// NewUserRepo creates a new UserRepo instance
func NewUserRepo(db *sql.DB) UserRepo {
	return &userRepo{db: db}
}

const userColumns = `id, name, email, phone_number, password, nominee_number, fingerprint_id, profile_picture_url, created_at`

// Create inserts the user unless another row already holds its email,
// phone number or (when given) fingerprint id. The existence check and the
// insert are one statement; the UNIQUE constraints cover concurrent inserts.
func (r *userRepo) Create(ctx context.Context, u model.NewUser) (uuid.UUID, error) {
	query := `
		INSERT INTO users (name, email, phone_number, password, nominee_number, fingerprint_id)
		SELECT $1::text, $2::text, $3::text, $4::text, $5::text, $6::text
		WHERE NOT EXISTS (
			SELECT 1 FROM users
			WHERE email = $2::text
			   OR phone_number = $3::text
			   OR ($6::text IS NOT NULL AND fingerprint_id = $6::text)
		)
		RETURNING id
	`

	var id uuid.UUID
	err := r.db.QueryRowContext(ctx, query,
		u.Name,
		u.Email,
		u.PhoneNumber,
		u.Password,
		u.NomineeNumber,
		u.FingerprintID,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isUniqueViolation(err) {
			return uuid.Nil, ErrAlreadyExists
		}
		return uuid.Nil, fmt.Errorf("failed to insert user: %w", err)
	}

	return id, nil
}

// GetByPhone retrieves a user by phone number
func (r *userRepo) GetByPhone(ctx context.Context, phone string) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE phone_number = $1`
	return r.getOne(ctx, query, phone)
}

// GetByFingerprint retrieves a user by registered fingerprint id
func (r *userRepo) GetByFingerprint(ctx context.Context, fingerprintID string) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE fingerprint_id = $1`
	return r.getOne(ctx, query, fingerprintID)
}

func (r *userRepo) getOne(ctx context.Context, query string, arg any) (model.User, error) {
	var user model.User
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PhoneNumber,
		&user.Password,
		&user.NomineeNumber,
		&user.FingerprintID,
		&user.ProfilePictureURL,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to query user: %w", err)
	}
	return user, nil
}

// UpdateProfilePicture sets profile_picture_url for the user with the given id
func (r *userRepo) UpdateProfilePicture(ctx context.Context, id uuid.UUID, url string) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE users SET profile_picture_url = $1 WHERE id = $2
	`, url, id)
	if err != nil {
		return fmt.Errorf("update profile picture: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update profile picture: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
