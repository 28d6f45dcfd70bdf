package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/saveone/server/internal/model"
)

// DocumentRepo defines the interface for document repository operations
type DocumentRepo interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Document, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)
	Create(ctx context.Context, d model.NewDocument) (uuid.UUID, error)
	Delete(ctx context.Context, id uuid.UUID) (storagePath string, err error)
}

type documentRepo struct {
	db *sql.DB
}

// NewDocumentRepo creates a new DocumentRepo instance
func NewDocumentRepo(db *sql.DB) DocumentRepo {
	return &documentRepo{db: db}
}

// ListByUser returns every document of the user, most recent upload first.
func (r *documentRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Document, error) {
	query := `
		SELECT id, user_id, file_name, firebase_url, firebase_path, file_size, file_type, uploaded_at
		FROM documents
		WHERE user_id = $1
		ORDER BY uploaded_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	defer rows.Close()

	docs := make([]model.Document, 0)
	for rows.Next() {
		var d model.Document
		if err := rows.Scan(
			&d.ID,
			&d.UserID,
			&d.FileName,
			&d.FirebaseURL,
			&d.FirebasePath,
			&d.FileSize,
			&d.FileType,
			&d.UploadedAt,
		); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}
	return docs, nil
}

// CountByUser returns the number of documents the user owns.
func (r *documentRepo) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM documents WHERE user_id = $1
	`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count documents: %w", err)
	}
	return count, nil
}

// Create inserts one document row; uploaded_at is assigned by the database.
func (r *documentRepo) Create(ctx context.Context, d model.NewDocument) (uuid.UUID, error) {
	query := `
		INSERT INTO documents (user_id, file_name, firebase_url, firebase_path, file_size, file_type)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	var id uuid.UUID
	err := r.db.QueryRowContext(ctx, query,
		d.UserID,
		d.FileName,
		d.FirebaseURL,
		d.FirebasePath,
		d.FileSize,
		d.FileType,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert document: %w", err)
	}
	return id, nil
}

// Delete removes the document and returns the object-store path it pointed at.
func (r *documentRepo) Delete(ctx context.Context, id uuid.UUID) (string, error) {
	var storagePath string
	err := r.db.QueryRowContext(ctx, `
		DELETE FROM documents WHERE id = $1 RETURNING firebase_path
	`, id).Scan(&storagePath)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("delete document: %w", err)
	}
	return storagePath, nil
}
