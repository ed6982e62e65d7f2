package docs

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"signdesk/internal/dto"
)

func Get(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, dp DocumentProvider) {
	op := pkg + "Get"

	log = log.With(slog.String("op", op))

	requester, ok := requesterFromContext(log, w, r)
	if !ok {
		return
	}

	clientID := r.URL.Query().Get("client_id")

	rawDocs, err := dp.ListDocuments(ctx, requester, clientID)
	if err != nil {
		log.Warn("failed to list documents", slog.String("error", err.Error()))
		writeServiceError(log, w, err)
		return
	}

	dtoDocs := make([]dto.DocumentResponse, 0, len(rawDocs))

	for _, doc := range rawDocs {
		dtoDocs = append(dtoDocs, dto.ToDocumentResponse(doc))
	}

	response := map[string]any{
		"data": map[string]any{
			"docs": dtoDocs,
		},
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Error("failed to write response", slog.String("error", err.Error()))
	}
}

func GetByID(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, docID string, dp DocumentProvider) {
	op := pkg + "GetByID"

	log = log.With(slog.String("op", op))

	requester, ok := requesterFromContext(log, w, r)
	if !ok {
		return
	}

	doc, err := dp.DocumentByID(ctx, requester, docID)
	if err != nil {
		log.Warn("failed to get document by id", slog.String("error", err.Error()))
		writeServiceError(log, w, err)
		return
	}

	response := map[string]any{
		"data": dto.ToDocumentResponse(doc),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Error("failed to write response", slog.String("error", err.Error()))
	}
}
