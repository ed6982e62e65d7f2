package eventrepo

import (
	"context"
	"fmt"

	"signdesk/internal/entities"
	"signdesk/internal/models"

	"github.com/jmoiron/sqlx"
)

const pkg = "eventRepo/"

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *repository {
	return &repository{db: db}
}

// Append inserts one audit record. There is deliberately no update or
// delete here: document_events is append-only.
func (r *repository) Append(ctx context.Context, event *models.DocumentEvent) error {
	op := pkg + "Append"

	var payload any

	if len(event.Payload) > 0 {
		payload = event.Payload
	} else {
		payload = nil
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO document_events (id, document_id, event_type, actor_email, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		event.ID, event.DocumentID, event.EventType, event.ActorEmail, payload, event.CreatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *repository) ListByDocument(ctx context.Context, documentID string, limit int) ([]*models.DocumentEvent, error) {
	op := pkg + "ListByDocument"

	rawEvents := make([]entities.DocumentEvent, 0)

	baseQuery := `SELECT
			e.id AS id,
			e.document_id AS document_id,
			e.event_type AS event_type,
			e.actor_email AS actor_email,
			e.payload AS payload,
			e.created_at AS created_at
		FROM document_events e
		WHERE e.document_id = $1
		ORDER BY e.created_at ASC`

	args := []any{documentID}

	if limit > 0 {
		args = append(args, limit)

		baseQuery += ` LIMIT $2`
	}

	err := r.db.SelectContext(ctx, &rawEvents, baseQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	events := make([]*models.DocumentEvent, 0, len(rawEvents))

	for _, raw := range rawEvents {
		events = append(events, &models.DocumentEvent{
			ID:         raw.ID,
			DocumentID: raw.DocumentID,
			EventType:  models.EventType(raw.EventType),
			ActorEmail: raw.ActorEmail,
			Payload:    raw.Payload,
			CreatedAt:  raw.CreatedAt,
		})
	}

	return events, nil
}
