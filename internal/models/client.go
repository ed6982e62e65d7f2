package models

import "time"

// Client is the single ownership root for documents: every document belongs
// to exactly one client engagement.
type Client struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Company   *string   `json:"company,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
