package documentrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"signdesk/internal/entities"
	"signdesk/internal/models"

	"github.com/jmoiron/sqlx"
)

const pkg = "documentRepo/"

const documentColumns = `
			d.id AS id,
			d.client_id AS client_id,
			d.name AS name,
			d.file_path AS file_path,
			d.file_size AS file_size,
			d.mime AS mime,
			d.status AS status,
			d.share_token AS share_token,
			d.share_token_expires_at AS share_token_expires_at,
			d.signed_file_path AS signed_file_path,
			d.signer_name AS signer_name,
			d.signer_email AS signer_email,
			d.uploaded_by AS uploaded_by,
			d.created_at AS created_at,
			d.shared_at AS shared_at,
			d.viewed_at AS viewed_at,
			d.signed_at AS signed_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *repository {
	return &repository{db: db}
}

func (r *repository) CreateDocument(ctx context.Context, doc *models.Document) error {
	op := pkg + "CreateDocument"

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO documents (id, client_id, name, file_path, file_size, mime, status, uploaded_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		doc.ID, doc.ClientID, doc.Name, doc.FilePath, doc.FileSize, doc.Mime, doc.Status, doc.UploadedBy, doc.CreatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *repository) DocumentByID(ctx context.Context, id string) (*models.Document, error) {
	op := pkg + "DocumentByID"

	rawDoc := entities.Document{}

	err := r.db.GetContext(ctx, &rawDoc,
		`SELECT`+documentColumns+`
			FROM documents d
			WHERE d.id = $1`,
		id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrDocumentNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return toModel(&rawDoc), nil
}

func (r *repository) DocumentByToken(ctx context.Context, token string) (*models.Document, error) {
	op := pkg + "DocumentByToken"

	rawDoc := entities.Document{}

	err := r.db.GetContext(ctx, &rawDoc,
		`SELECT`+documentColumns+`
			FROM documents d
			WHERE d.share_token = $1`,
		token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrDocumentNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return toModel(&rawDoc), nil
}

func (r *repository) ListByClient(ctx context.Context, clientID string) ([]*models.Document, error) {
	op := pkg + "ListByClient"

	rawDocs := make([]entities.Document, 0)

	err := r.db.SelectContext(ctx, &rawDocs,
		`SELECT`+documentColumns+`
			FROM documents d
			WHERE ($1 = '' OR d.client_id = $1)
			ORDER BY d.created_at DESC`,
		clientID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	docs := make([]*models.Document, 0, len(rawDocs))

	for i := range rawDocs {
		docs = append(docs, toModel(&rawDocs[i]))
	}

	return docs, nil
}

// SetShared stores the share credential and the recipient. The status moves
// draft->sent only; a resend of an already sent or viewed document keeps its
// current status.
func (r *repository) SetShared(ctx context.Context, id string, token string, expiresAt time.Time, recipientEmail string, sharedAt time.Time) error {
	op := pkg + "SetShared"

	_, err := r.db.ExecContext(ctx,
		`UPDATE documents
		SET share_token = $2,
			share_token_expires_at = $3,
			signer_email = $4,
			shared_at = $5,
			status = CASE WHEN status = 'draft' THEN 'sent' ELSE status END
		WHERE id = $1`,
		id, token, expiresAt, recipientEmail, sharedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// MarkViewed transitions sent->viewed. The WHERE clause is the concurrency
// guard: of any number of racing resolves exactly one sees a row count of 1
// and owns the viewed event.
func (r *repository) MarkViewed(ctx context.Context, id string, at time.Time) (bool, error) {
	op := pkg + "MarkViewed"

	res, err := r.db.ExecContext(ctx,
		`UPDATE documents
		SET status = 'viewed', viewed_at = $2
		WHERE id = $1 AND status = 'sent'`,
		id, at)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return rows == 1, nil
}

type MarkSignedParams struct {
	SignedFilePath string
	SignerName     string
	SignerEmail    string
	SignedAt       time.Time
}

// MarkSigned claims the one allowed signing of a document. A caller seeing
// false lost the race (or the document was signed long ago) and must report
// a conflict.
func (r *repository) MarkSigned(ctx context.Context, id string, p MarkSignedParams) (bool, error) {
	op := pkg + "MarkSigned"

	res, err := r.db.ExecContext(ctx,
		`UPDATE documents
		SET status = 'signed',
			signed_file_path = $2,
			signer_name = $3,
			signer_email = $4,
			signed_at = $5
		WHERE id = $1 AND status IN ('sent', 'viewed')`,
		id, p.SignedFilePath, p.SignerName, p.SignerEmail, p.SignedAt)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return rows == 1, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	op := pkg + "Delete"

	_, err := r.db.ExecContext(ctx,
		`DELETE FROM documents WHERE id = $1`,
		id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func toModel(raw *entities.Document) *models.Document {
	return &models.Document{
		ID:                  raw.ID,
		ClientID:            raw.ClientID,
		Name:                raw.Name,
		FilePath:            raw.FilePath,
		FileSize:            raw.FileSize,
		Mime:                raw.Mime,
		Status:              models.DocumentStatus(raw.Status),
		ShareToken:          raw.ShareToken,
		ShareTokenExpiresAt: raw.ShareTokenExpiresAt,
		SignedFilePath:      raw.SignedFilePath,
		SignerName:          raw.SignerName,
		SignerEmail:         raw.SignerEmail,
		UploadedBy:          raw.UploadedBy,
		CreatedAt:           raw.CreatedAt,
		SharedAt:            raw.SharedAt,
		ViewedAt:            raw.ViewedAt,
		SignedAt:            raw.SignedAt,
	}
}
