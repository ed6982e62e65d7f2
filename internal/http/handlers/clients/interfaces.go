package clients

import (
	"context"

	"signdesk/internal/models"
)

const pkg = "clientsHandler/"

type ClientManager interface {
	CreateClient(ctx context.Context, requester *models.User, client *models.Client) (*models.Client, error)
	ListClients(ctx context.Context, requester *models.User) ([]*models.Client, error)
	ClientByID(ctx context.Context, requester *models.User, clientID string) (*models.Client, error)
}
