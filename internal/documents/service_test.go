package documents

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saveone/server/internal/model"
	"github.com/saveone/server/internal/repo"
)

type memDocumentRepo struct {
	docs  []model.Document
	clock time.Time
	err   error
}

func (m *memDocumentRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]model.Document, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]model.Document, 0)
	for i := len(m.docs) - 1; i >= 0; i-- {
		if m.docs[i].UserID == userID {
			out = append(out, m.docs[i])
		}
	}
	return out, nil
}

func (m *memDocumentRepo) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	docs, err := m.ListByUser(ctx, userID)
	return len(docs), err
}

func (m *memDocumentRepo) Create(_ context.Context, d model.NewDocument) (uuid.UUID, error) {
	if m.err != nil {
		return uuid.Nil, m.err
	}
	userID, err := uuid.Parse(d.UserID)
	if err != nil {
		return uuid.Nil, err
	}
	m.clock = m.clock.Add(time.Millisecond)
	doc := model.Document{
		ID:           uuid.New(),
		UserID:       userID,
		FileName:     d.FileName,
		FirebaseURL:  d.FirebaseURL,
		FirebasePath: d.FirebasePath,
		FileSize:     d.FileSize,
		FileType:     d.FileType,
		UploadedAt:   m.clock,
	}
	m.docs = append(m.docs, doc)
	return doc.ID, nil
}

func (m *memDocumentRepo) Delete(_ context.Context, id uuid.UUID) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	for i, d := range m.docs {
		if d.ID == id {
			m.docs = append(m.docs[:i], m.docs[i+1:]...)
			return d.FirebasePath, nil
		}
	}
	return "", repo.ErrNotFound
}

type recordingStore struct {
	keys []string
	err  error
}

func (r *recordingStore) Delete(_ context.Context, key string) error {
	r.keys = append(r.keys, key)
	return r.err
}

func TestService_UploadListCount(t *testing.T) {
	ctx := context.Background()
	svc := NewService(&memDocumentRepo{}, nil, zerolog.Nop())
	user := uuid.New()

	var ids []uuid.UUID
	for _, name := range []string{"a.pdf", "b.pdf", "c.pdf"} {
		id, err := svc.Upload(ctx, model.NewDocument{UserID: user.String(), FileName: name, FirebasePath: "docs/" + name})
		require.NoError(t, err)
		ids = append(ids, id)
	}
	_, err := svc.Upload(ctx, model.NewDocument{UserID: uuid.NewString(), FileName: "other.pdf"})
	require.NoError(t, err)

	docs, err := svc.List(ctx, user)
	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, []uuid.UUID{ids[2], ids[1], ids[0]}, []uuid.UUID{docs[0].ID, docs[1].ID, docs[2].ID})

	n, err := svc.Count(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestService_Delete_RemovesObject(t *testing.T) {
	ctx := context.Background()
	store := &recordingStore{}
	svc := NewService(&memDocumentRepo{}, store, zerolog.Nop())

	id, err := svc.Upload(ctx, model.NewDocument{UserID: uuid.NewString(), FirebasePath: "users/1/scan.pdf"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, id))
	assert.Equal(t, []string{"users/1/scan.pdf"}, store.keys)

	assert.ErrorIs(t, svc.Delete(ctx, id), ErrDocumentNotFound)
	assert.Len(t, store.keys, 1, "object store must not be called for missing rows")
}

func TestService_Delete_ObjectFailureIsLoggedOnly(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	store := &recordingStore{err: errors.New("bucket unreachable")}
	svc := NewService(&memDocumentRepo{}, store, zerolog.New(&buf))

	id, err := svc.Upload(ctx, model.NewDocument{UserID: uuid.NewString(), FirebasePath: "users/1/scan.pdf"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, id))
	assert.Contains(t, buf.String(), "bucket unreachable")
	assert.Contains(t, buf.String(), id.String())
}

func TestService_RepoFailures(t *testing.T) {
	ctx := context.Background()
	svc := NewService(&memDocumentRepo{err: errors.New("db down")}, nil, zerolog.Nop())

	_, err := svc.List(ctx, uuid.New())
	assert.Error(t, err)
	_, err = svc.Count(ctx, uuid.New())
	assert.Error(t, err)
	_, err = svc.Upload(ctx, model.NewDocument{UserID: uuid.NewString()})
	assert.Error(t, err)

	err = svc.Delete(ctx, uuid.New())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDocumentNotFound)
}
