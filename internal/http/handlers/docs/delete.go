package docs

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
)

func Delete(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, docID string, dd DocumentDeleter) {
	op := pkg + "Delete"

	log = log.With(slog.String("op", op))

	requester, ok := requesterFromContext(log, w, r)
	if !ok {
		return
	}

	if err := dd.DeleteDocument(ctx, requester, docID); err != nil {
		log.Warn("failed to delete document", slog.String("error", err.Error()))
		writeServiceError(log, w, err)
		return
	}

	response := map[string]any{
		"data": map[string]string{
			"deleted": docID,
		},
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Error("failed to write response", slog.String("error", err.Error()))
	}
}
