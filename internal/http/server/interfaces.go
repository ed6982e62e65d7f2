package server

import (
	"context"

	"signdesk/internal/models"
)

type AuthService interface {
	Register(ctx context.Context, email string, name string, password string) (string, error)
	Login(ctx context.Context, email string, password string) (string, error)
	UserByToken(ctx context.Context, token string) (*models.User, error)
	Logout(ctx context.Context, token string) error
}

type DocumentService interface {
	UploadDocument(ctx context.Context, requester *models.User, doc *models.Document, content []byte) (*models.Document, error)
	ShareDocument(ctx context.Context, requester *models.User, docID string, recipientEmail string, rotate bool) (*models.ShareLink, error)
	DocumentByToken(ctx context.Context, token string) (*models.DocumentView, error)
	SignDocument(ctx context.Context, req *models.SignRequest) (*models.DocumentView, error)
	DownloadDocument(ctx context.Context, requester *models.User, docID string, signed bool) (*models.Document, []byte, error)
	DeleteDocument(ctx context.Context, requester *models.User, docID string) error
	DocumentByID(ctx context.Context, requester *models.User, docID string) (*models.Document, error)
	ListDocuments(ctx context.Context, requester *models.User, clientID string) ([]*models.Document, error)
	DocumentEvents(ctx context.Context, requester *models.User, docID string, limit int) ([]*models.DocumentEvent, error)
	CreateClient(ctx context.Context, requester *models.User, client *models.Client) (*models.Client, error)
	ListClients(ctx context.Context, requester *models.User) ([]*models.Client, error)
	ClientByID(ctx context.Context, requester *models.User, clientID string) (*models.Client, error)
}
