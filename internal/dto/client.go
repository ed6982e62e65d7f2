package dto

import (
	"time"

	"signdesk/internal/models"
)

type CreateClientRequest struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Company *string `json:"company,omitempty"`
}

type ClientResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Company   *string   `json:"company,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func ToClientResponse(client *models.Client) ClientResponse {
	return ClientResponse{
		ID:        client.ID,
		Name:      client.Name,
		Email:     client.Email,
		Company:   client.Company,
		CreatedAt: client.CreatedAt,
	}
}
