package sign

import (
	"context"

	"signdesk/internal/models"
)

const pkg = "signHandler/"

type TokenResolver interface {
	DocumentByToken(ctx context.Context, token string) (*models.DocumentView, error)
}

type DocumentSigner interface {
	SignDocument(ctx context.Context, req *models.SignRequest) (*models.DocumentView, error)
}
