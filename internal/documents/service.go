package documents

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/saveone/server/internal/model"
	"github.com/saveone/server/internal/repo"
	"github.com/saveone/server/internal/storage"
)

// ErrDocumentNotFound is returned when the addressed document does not exist
var ErrDocumentNotFound = errors.New("document not found")

// Service manages document metadata and the objects it points at
type Service struct {
	docs    repo.DocumentRepo
	objects storage.ObjectStore
	logger  zerolog.Logger
}

// NewService creates a new document service
func NewService(docs repo.DocumentRepo, objects storage.ObjectStore, logger zerolog.Logger) *Service {
	if objects == nil {
		objects = storage.NoopStore{}
	}
	return &Service{
		docs:    docs,
		objects: objects,
		logger:  logger.With().Str("component", "documents").Logger(),
	}
}

// List returns the user's documents, most recent first.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]model.Document, error) {
	docs, err := s.docs.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return docs, nil
}

// Count returns how many documents the user owns.
func (s *Service) Count(ctx context.Context, userID uuid.UUID) (int, error) {
	n, err := s.docs.CountByUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count documents: %w", err)
	}
	return n, nil
}

// Upload records the metadata of an object the client already stored.
func (s *Service) Upload(ctx context.Context, d model.NewDocument) (uuid.UUID, error) {
	id, err := s.docs.Create(ctx, d)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create document: %w", err)
	}
	return id, nil
}

// Delete removes the document row, then asks the object store to drop the
// object. Object removal failures are logged only.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	path, err := s.docs.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrDocumentNotFound
		}
		return fmt.Errorf("failed to delete document: %w", err)
	}

	if err := s.objects.Delete(ctx, path); err != nil {
		s.logger.Warn().Err(err).Str("document_id", id.String()).Msg("failed to remove stored object")
	}
	return nil
}
