package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saveone/server/internal/model"
)

var documentRowColumns = []string{
	"id", "user_id", "file_name", "firebase_url", "firebase_path", "file_size", "file_type", "uploaded_at",
}

func TestDocumentRepo_ListByUser_KeepsQueryOrder(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewDocumentRepo(db)

	userID := uuid.New()
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	pdf := "application/pdf"

	mock.ExpectQuery(`(?s)SELECT .+ FROM documents\s+WHERE user_id = \$1\s+ORDER BY uploaded_at DESC`).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows(documentRowColumns).
			AddRow(c.String(), userID.String(), "c.pdf", "https://store/c", "docs/c", int64(3), pdf, base.Add(2*time.Second)).
			AddRow(b.String(), userID.String(), "b.pdf", "https://store/b", "docs/b", int64(2), nil, base.Add(time.Second)).
			AddRow(a.String(), userID.String(), "a.pdf", "https://store/a", "docs/a", int64(1), pdf, base))

	docs, err := r.ListByUser(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, []uuid.UUID{c, b, a}, []uuid.UUID{docs[0].ID, docs[1].ID, docs[2].ID})
	assert.Nil(t, docs[1].FileType)
	require.NotNil(t, docs[0].FileType)
	assert.Equal(t, pdf, *docs[0].FileType)
	assert.Equal(t, "docs/c", docs[0].FirebasePath)
}

func TestDocumentRepo_ListByUser_EmptyIsNotNil(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewDocumentRepo(db)

	mock.ExpectQuery(`SELECT .+ FROM documents`).
		WillReturnRows(sqlmock.NewRows(documentRowColumns))

	docs, err := r.ListByUser(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.NotNil(t, docs)
	assert.Empty(t, docs)
}

func TestDocumentRepo_ListByUser_DBError(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewDocumentRepo(db)

	mock.ExpectQuery(`SELECT .+ FROM documents`).WillReturnError(errors.New("boom"))

	_, err := r.ListByUser(context.Background(), uuid.New())
	assert.Error(t, err)
}

func TestDocumentRepo_CountByUser(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewDocumentRepo(db)

	userID := uuid.New()
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM documents WHERE user_id = \$1`).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(4)))

	n, err := r.CountByUser(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestDocumentRepo_Create(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewDocumentRepo(db)

	userID := uuid.New()
	id := uuid.New()
	mock.ExpectQuery(`(?s)INSERT INTO documents \(user_id, file_name, firebase_url, firebase_path, file_size, file_type\).*RETURNING id`).
		WithArgs(userID.String(), "scan.pdf", "https://store/scan.pdf", "users/1/scan.pdf", int64(2048), nil).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(id.String()))

	got, err := r.Create(context.Background(), model.NewDocument{
		UserID:       userID.String(),
		FileName:     "scan.pdf",
		FirebaseURL:  "https://store/scan.pdf",
		FirebasePath: "users/1/scan.pdf",
		FileSize:     2048,
	})
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestDocumentRepo_Delete(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewDocumentRepo(db)

	id := uuid.New()
	mock.ExpectQuery(`DELETE FROM documents WHERE id = \$1 RETURNING firebase_path`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"firebase_path"}).AddRow("users/1/scan.pdf"))

	path, err := r.Delete(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "users/1/scan.pdf", path)
}

func TestDocumentRepo_Delete_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewDocumentRepo(db)

	mock.ExpectQuery(`DELETE FROM documents`).
		WillReturnRows(sqlmock.NewRows([]string{"firebase_path"}))

	_, err := r.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}
