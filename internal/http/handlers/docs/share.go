package docs

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"signdesk/internal/dto"
	errutils "signdesk/internal/utils/http_errors"
)

func Share(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, docID string, sharer DocumentSharer) {
	op := pkg + "Share"

	log = log.With(slog.String("op", op))

	requester, ok := requesterFromContext(log, w, r)
	if !ok {
		return
	}

	var req dto.ShareRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to decode share request", slog.String("error", err.Error()))
		errutils.WriteJSONError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	link, err := sharer.ShareDocument(ctx, requester, docID, req.Email, req.Rotate)
	if err != nil {
		log.Warn("failed to share document", slog.String("error", err.Error()))
		writeServiceError(log, w, err)
		return
	}

	response := map[string]any{
		"data": dto.ShareResponse{
			Token:     link.Token,
			ShareURL:  link.URL,
			ExpiresAt: link.ExpiresAt,
		},
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Error("failed to write response", slog.String("error", err.Error()))
	}
}
