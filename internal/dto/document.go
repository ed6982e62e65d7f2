package dto

import (
	"encoding/json"
	"time"

	"signdesk/internal/models"
)

// UploadMeta is the json part of the multipart upload form.
type UploadMeta struct {
	ClientID string `json:"client_id"`
	Name     string `json:"name"`
	Mime     string `json:"mime"`
}

type DocumentResponse struct {
	ID                  string                `json:"id"`
	ClientID            string                `json:"client_id"`
	Name                string                `json:"name"`
	FileSize            int64                 `json:"file_size"`
	Mime                string                `json:"mime"`
	Status              models.DocumentStatus `json:"status"`
	ShareTokenExpiresAt *time.Time            `json:"share_token_expires_at,omitempty"`
	SignerName          *string               `json:"signer_name,omitempty"`
	SignerEmail         *string               `json:"signer_email,omitempty"`
	CreatedAt           time.Time             `json:"created_at"`
	SharedAt            *time.Time            `json:"shared_at,omitempty"`
	ViewedAt            *time.Time            `json:"viewed_at,omitempty"`
	SignedAt            *time.Time            `json:"signed_at,omitempty"`
}

func ToDocumentResponse(doc *models.Document) DocumentResponse {
	return DocumentResponse{
		ID:                  doc.ID,
		ClientID:            doc.ClientID,
		Name:                doc.Name,
		FileSize:            doc.FileSize,
		Mime:                doc.Mime,
		Status:              doc.Status,
		ShareTokenExpiresAt: doc.ShareTokenExpiresAt,
		SignerName:          doc.SignerName,
		SignerEmail:         doc.SignerEmail,
		CreatedAt:           doc.CreatedAt,
		SharedAt:            doc.SharedAt,
		ViewedAt:            doc.ViewedAt,
		SignedAt:            doc.SignedAt,
	}
}

type ShareRequest struct {
	Email  string `json:"email"`
	Rotate bool   `json:"rotate,omitempty"`
}

type ShareResponse struct {
	Token     string    `json:"token"`
	ShareURL  string    `json:"share_url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SignRequest is the public signing submission. Signature carries the drawn
// PNG base64-encoded; the coordinates are viewer-space as measured in the
// recipient's browser.
type SignRequest struct {
	Token       string  `json:"token"`
	SignerName  string  `json:"signer_name"`
	SignerEmail string  `json:"signer_email"`
	Signature   string  `json:"signature"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Page        int     `json:"page"`
	PageWidth   float64 `json:"page_width,omitempty"`
	PageHeight  float64 `json:"page_height,omitempty"`
	Width       float64 `json:"width,omitempty"`
	Height      float64 `json:"height,omitempty"`
}

type EventResponse struct {
	ID         string           `json:"id"`
	EventType  models.EventType `json:"event_type"`
	ActorEmail *string          `json:"actor_email,omitempty"`
	Payload    json.RawMessage  `json:"payload,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
}
