package clientrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"signdesk/internal/entities"
	"signdesk/internal/models"

	"github.com/jmoiron/sqlx"
)

const pkg = "clientRepo/"

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *repository {
	return &repository{db: db}
}

func (r *repository) CreateClient(ctx context.Context, client *models.Client) error {
	op := pkg + "CreateClient"

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO clients (id, name, email, company, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		client.ID, client.Name, client.Email, client.Company, client.CreatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *repository) ClientByID(ctx context.Context, id string) (*models.Client, error) {
	op := pkg + "ClientByID"

	rawClient := entities.Client{}

	err := r.db.GetContext(ctx, &rawClient,
		`SELECT
			c.id AS id,
			c.name AS name,
			c.email AS email,
			c.company AS company,
			c.created_at AS created_at
		FROM clients c
		WHERE c.id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrClientNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return toModel(&rawClient), nil
}

func (r *repository) ListClients(ctx context.Context) ([]*models.Client, error) {
	op := pkg + "ListClients"

	rawClients := make([]entities.Client, 0)

	err := r.db.SelectContext(ctx, &rawClients,
		`SELECT
			c.id AS id,
			c.name AS name,
			c.email AS email,
			c.company AS company,
			c.created_at AS created_at
		FROM clients c
		ORDER BY c.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	clients := make([]*models.Client, 0, len(rawClients))

	for i := range rawClients {
		clients = append(clients, toModel(&rawClients[i]))
	}

	return clients, nil
}

func toModel(raw *entities.Client) *models.Client {
	return &models.Client{
		ID:        raw.ID,
		Name:      raw.Name,
		Email:     raw.Email,
		Company:   raw.Company,
		CreatedAt: raw.CreatedAt,
	}
}
