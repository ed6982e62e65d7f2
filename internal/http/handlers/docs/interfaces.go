package docs

import (
	"context"

	"signdesk/internal/models"
)

const pkg = "docsHandler/"

type DocumentUploader interface {
	UploadDocument(ctx context.Context, requester *models.User, doc *models.Document, content []byte) (*models.Document, error)
}

type DocumentProvider interface {
	ListDocuments(ctx context.Context, requester *models.User, clientID string) ([]*models.Document, error)
	DocumentByID(ctx context.Context, requester *models.User, docID string) (*models.Document, error)
}

type DocumentSharer interface {
	ShareDocument(ctx context.Context, requester *models.User, docID string, recipientEmail string, rotate bool) (*models.ShareLink, error)
}

type DocumentDeleter interface {
	DeleteDocument(ctx context.Context, requester *models.User, docID string) error
}

type EventLister interface {
	DocumentEvents(ctx context.Context, requester *models.User, docID string, limit int) ([]*models.DocumentEvent, error)
}

type DocumentDownloader interface {
	DownloadDocument(ctx context.Context, requester *models.User, docID string, signed bool) (*models.Document, []byte, error)
}
