package docs

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"signdesk/internal/dto"
	parseutil "signdesk/internal/utils/parseLimit"
)

func Events(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, docID string, el EventLister) {
	op := pkg + "Events"

	log = log.With(slog.String("op", op))

	requester, ok := requesterFromContext(log, w, r)
	if !ok {
		return
	}

	limit := parseutil.ParseLimit(r.URL.Query().Get("limit"))

	rawEvents, err := el.DocumentEvents(ctx, requester, docID, limit)
	if err != nil {
		log.Warn("failed to list document events", slog.String("error", err.Error()))
		writeServiceError(log, w, err)
		return
	}

	dtoEvents := make([]dto.EventResponse, 0, len(rawEvents))

	for _, event := range rawEvents {
		dtoEvents = append(dtoEvents, dto.EventResponse{
			ID:         event.ID,
			EventType:  event.EventType,
			ActorEmail: event.ActorEmail,
			Payload:    json.RawMessage(event.Payload),
			CreatedAt:  event.CreatedAt,
		})
	}

	response := map[string]any{
		"data": map[string]any{
			"events": dtoEvents,
		},
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Error("failed to write response", slog.String("error", err.Error()))
	}
}
