package documentservice

import (
	"context"
	"time"

	"signdesk/internal/models"
	"signdesk/internal/pdf"
	documentrepo "signdesk/internal/repositories/db/document"
)

type DocumentRepository interface {
	CreateDocument(ctx context.Context, doc *models.Document) error
	DocumentByID(ctx context.Context, id string) (*models.Document, error)
	DocumentByToken(ctx context.Context, token string) (*models.Document, error)
	ListByClient(ctx context.Context, clientID string) ([]*models.Document, error)
	SetShared(ctx context.Context, id string, token string, expiresAt time.Time, recipientEmail string, sharedAt time.Time) error
	MarkViewed(ctx context.Context, id string, at time.Time) (bool, error)
	MarkSigned(ctx context.Context, id string, p documentrepo.MarkSignedParams) (bool, error)
	Delete(ctx context.Context, id string) error
}

type EventRepository interface {
	Append(ctx context.Context, event *models.DocumentEvent) error
	ListByDocument(ctx context.Context, documentID string, limit int) ([]*models.DocumentEvent, error)
}

type ClientRepository interface {
	CreateClient(ctx context.Context, client *models.Client) error
	ClientByID(ctx context.Context, id string) (*models.Client, error)
	ListClients(ctx context.Context) ([]*models.Client, error)
}

type ObjectStorage interface {
	Download(ctx context.Context, bucket, key string) ([]byte, error)
	Upload(ctx context.Context, bucket, key string, data []byte, contentType string) error
	SignedURL(ctx context.Context, bucket, key string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, bucket, key string) error
}

type PDFEngine interface {
	PageSize(pdfBytes []byte, page int) (w, h float64, err error)
	EmbedSignature(pdfBytes, signature []byte, pos models.SignaturePosition, meta pdf.SignerMeta) ([]byte, error)
}

type EmailSender interface {
	Enabled() bool
	SendSigningRequest(ctx context.Context, to, documentName, shareURL string) error
}

// Cache stores terminal share views keyed by token.
type Cache interface {
	Get(ctx context.Context, token string) (string, error)
	Set(ctx context.Context, token string, view interface{}) error
	Del(ctx context.Context, tokens ...string) error
}
