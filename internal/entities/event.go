package entities

import "time"

type DocumentEvent struct {
	ID         string    `db:"id"`
	DocumentID string    `db:"document_id"`
	EventType  string    `db:"event_type"`
	ActorEmail *string   `db:"actor_email"`
	Payload    []byte    `db:"payload"`
	CreatedAt  time.Time `db:"created_at"`
}
