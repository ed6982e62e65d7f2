package documentrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"signdesk/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, *repository) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "postgres")
	repo := NewRepository(sqlxDB)
	return sqlxDB, mock, repo
}

func documentRows(docID string, status string, createdAt time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "client_id", "name", "file_path", "file_size", "mime", "status",
		"share_token", "share_token_expires_at", "signed_file_path",
		"signer_name", "signer_email", "uploaded_by", "created_at",
		"shared_at", "viewed_at", "signed_at",
	}).AddRow(
		docID, "client1", "contract.pdf", "client1/"+docID+"/contract.pdf", int64(2048),
		"application/pdf", status, nil, nil, nil, nil, nil, "admin1", createdAt,
		nil, nil, nil,
	)
}

func TestCreateDocument_Success(t *testing.T) {
	t.Parallel()

	db, mock, repo := setup(t)
	defer db.Close()

	doc := &models.Document{
		ID:         "doc123",
		ClientID:   "client1",
		Name:       "contract.pdf",
		FilePath:   "client1/doc123/contract.pdf",
		FileSize:   2048,
		Mime:       "application/pdf",
		Status:     models.StatusDraft,
		UploadedBy: "admin1",
		CreatedAt:  time.Now(),
	}

	mock.ExpectExec(regexp.QuoteMeta(`
		INSERT INTO documents (id, client_id, name, file_path, file_size, mime, status, uploaded_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`)).
		WithArgs(doc.ID, doc.ClientID, doc.Name, doc.FilePath, doc.FileSize, doc.Mime, doc.Status, doc.UploadedBy, doc.CreatedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.CreateDocument(context.Background(), doc)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentByToken_Success(t *testing.T) {
	t.Parallel()

	db, mock, repo := setup(t)
	defer db.Close()

	createdAt := time.Now()

	mock.ExpectQuery(`SELECT(.|\s)+FROM documents d\s+WHERE d\.share_token = \$1`).
		WithArgs("tok-1").
		WillReturnRows(documentRows("doc123", "sent", createdAt))

	doc, err := repo.DocumentByToken(context.Background(), "tok-1")
	require.NoError(t, err)

	assert.Equal(t, "doc123", doc.ID)
	assert.Equal(t, models.StatusSent, doc.Status)
	assert.Nil(t, doc.ShareTokenExpiresAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentByToken_NotFound(t *testing.T) {
	t.Parallel()

	db, mock, repo := setup(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT(.|\s)+FROM documents d\s+WHERE d\.share_token = \$1`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.DocumentByToken(context.Background(), "missing")
	assert.ErrorIs(t, err, models.ErrDocumentNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetShared_KeepsNonDraftStatus(t *testing.T) {
	t.Parallel()

	db, mock, repo := setup(t)
	defer db.Close()

	expiresAt := time.Now().Add(30 * 24 * time.Hour)
	sharedAt := time.Now()

	mock.ExpectExec(regexp.QuoteMeta(`
		UPDATE documents
		SET share_token = $2,
			share_token_expires_at = $3,
			signer_email = $4,
			shared_at = $5,
			status = CASE WHEN status = 'draft' THEN 'sent' ELSE status END
		WHERE id = $1`)).
		WithArgs("doc123", "tok-1", expiresAt, "alice@example.com", sharedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SetShared(context.Background(), "doc123", "tok-1", expiresAt, "alice@example.com", sharedAt)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkViewed_WinnerAndLoser(t *testing.T) {
	t.Parallel()

	db, mock, repo := setup(t)
	defer db.Close()

	at := time.Now()

	query := regexp.QuoteMeta(`
		UPDATE documents
		SET status = 'viewed', viewed_at = $2
		WHERE id = $1 AND status = 'sent'`)

	mock.ExpectExec(query).
		WithArgs("doc123", at).
		WillReturnResult(sqlmock.NewResult(0, 1))

	won, err := repo.MarkViewed(context.Background(), "doc123", at)
	require.NoError(t, err)
	assert.True(t, won)

	// Second attempt finds no row in 'sent' anymore.
	mock.ExpectExec(query).
		WithArgs("doc123", at).
		WillReturnResult(sqlmock.NewResult(0, 0))

	won, err = repo.MarkViewed(context.Background(), "doc123", at)
	require.NoError(t, err)
	assert.False(t, won)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkSigned_WinnerAndLoser(t *testing.T) {
	t.Parallel()

	db, mock, repo := setup(t)
	defer db.Close()

	params := MarkSignedParams{
		SignedFilePath: "client1/doc123/signed_contract.pdf",
		SignerName:     "Alice",
		SignerEmail:    "alice@example.com",
		SignedAt:       time.Now(),
	}

	query := regexp.QuoteMeta(`
		UPDATE documents
		SET status = 'signed',
			signed_file_path = $2,
			signer_name = $3,
			signer_email = $4,
			signed_at = $5
		WHERE id = $1 AND status IN ('sent', 'viewed')`)

	mock.ExpectExec(query).
		WithArgs("doc123", params.SignedFilePath, params.SignerName, params.SignerEmail, params.SignedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	won, err := repo.MarkSigned(context.Background(), "doc123", params)
	require.NoError(t, err)
	assert.True(t, won)

	mock.ExpectExec(query).
		WithArgs("doc123", params.SignedFilePath, params.SignerName, params.SignerEmail, params.SignedAt).
		WillReturnResult(sqlmock.NewResult(0, 0))

	won, err = repo.MarkSigned(context.Background(), "doc123", params)
	require.NoError(t, err)
	assert.False(t, won, "a losing concurrent writer must not be reported as success")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkSigned_QueryError(t *testing.T) {
	t.Parallel()

	db, mock, repo := setup(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE documents`).
		WillReturnError(errors.New("db failure"))

	_, err := repo.MarkSigned(context.Background(), "doc123", MarkSignedParams{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "MarkSigned")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_Success(t *testing.T) {
	t.Parallel()

	db, mock, repo := setup(t)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM documents WHERE id = $1`)).
		WithArgs("doc123").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Delete(context.Background(), "doc123")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
