package models

import "time"

type EventType string

const (
	EventUploaded   EventType = "uploaded"
	EventShared     EventType = "document_shared"
	EventResent     EventType = "document_resent"
	EventViewed     EventType = "document_viewed"
	EventSigned     EventType = "document_signed"
	EventDownloaded EventType = "document_downloaded"
)

// DocumentEvent is one immutable audit record. Events are append-only:
// nothing in the codebase updates or deletes them.
type DocumentEvent struct {
	ID         string    `json:"id"`
	DocumentID string    `json:"document_id"`
	EventType  EventType `json:"event_type"`
	ActorEmail *string   `json:"actor_email,omitempty"`
	Payload    []byte    `json:"payload,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
