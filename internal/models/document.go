package models

import "time"

type DocumentStatus string

const (
	StatusDraft  DocumentStatus = "draft"
	StatusSent   DocumentStatus = "sent"
	StatusViewed DocumentStatus = "viewed"
	StatusSigned DocumentStatus = "signed"
)

type Document struct {
	ID                  string         `json:"id"`
	ClientID            string         `json:"client_id"`
	Name                string         `json:"name"`
	FilePath            string         `json:"file_path"`
	FileSize            int64          `json:"file_size"`
	Mime                string         `json:"mime"`
	Status              DocumentStatus `json:"status"`
	ShareToken          *string        `json:"share_token,omitempty"`
	ShareTokenExpiresAt *time.Time     `json:"share_token_expires_at,omitempty"`
	SignedFilePath      *string        `json:"signed_file_path,omitempty"`
	SignerName          *string        `json:"signer_name,omitempty"`
	SignerEmail         *string        `json:"signer_email,omitempty"`
	UploadedBy          string         `json:"uploaded_by"`
	CreatedAt           time.Time      `json:"created_at"`
	SharedAt            *time.Time     `json:"shared_at,omitempty"`
	ViewedAt            *time.Time     `json:"viewed_at,omitempty"`
	SignedAt            *time.Time     `json:"signed_at,omitempty"`
}

// ShareLink is what an admin gets back from sharing a document.
type ShareLink struct {
	Token     string    `json:"token"`
	URL       string    `json:"share_url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// DocumentView is the recipient-facing projection of a shared document.
// File URLs are time-limited presigned links, never raw storage keys.
type DocumentView struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Status        DocumentStatus `json:"status"`
	SignerName    *string        `json:"signer_name,omitempty"`
	SignerEmail   *string        `json:"signer_email,omitempty"`
	SignedAt      *time.Time     `json:"signed_at,omitempty"`
	FileURL       string         `json:"file_url,omitempty"`
	SignedFileURL string         `json:"signed_file_url,omitempty"`
}

// ClickPosition is a signature placement in viewer coordinates:
// origin top-left, pixels, Y growing downward. PageWidth/PageHeight are the
// rendered page dimensions the click was measured against.
type ClickPosition struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Page       int     `json:"page"`
	PageWidth  float64 `json:"page_width"`
	PageHeight float64 `json:"page_height"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
}

// SignaturePosition is a signature placement in PDF page coordinates:
// origin bottom-left, points, Y growing upward. Page is 0-based.
type SignaturePosition struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
	Page   int
}

// SignRequest carries everything a recipient submits to sign a document.
type SignRequest struct {
	Token       string
	SignerName  string
	SignerEmail string
	Signature   []byte
	Click       ClickPosition
}
