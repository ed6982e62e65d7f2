package docs

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"signdesk/internal/dto"
	"signdesk/internal/models"
	errutils "signdesk/internal/utils/http_errors"
)

const maxUploadBytes = 25 << 20

func Upload(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, du DocumentUploader) {
	op := pkg + "Upload"

	log = log.With(slog.String("op", op))

	requester, ok := requesterFromContext(log, w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		log.Warn("failed to parse multipart form", slog.String("error", err.Error()))
		errutils.WriteJSONError(w, http.StatusBadRequest, "failed to parse multipart form")
		return
	}

	var meta dto.UploadMeta

	if err := json.Unmarshal([]byte(r.FormValue("meta")), &meta); err != nil {
		log.Warn("failed to unmarshal meta", slog.String("error", err.Error()))
		errutils.WriteJSONError(w, http.StatusBadRequest, "invalid meta json")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		errutils.WriteJSONError(w, http.StatusBadRequest, "missing file part")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		log.Error("failed to read file part", slog.String("error", err.Error()))
		errutils.WriteJSONError(w, http.StatusBadRequest, "failed to read file")
		return
	}

	name := meta.Name
	if name == "" {
		name = header.Filename
	}

	mime := meta.Mime
	if mime == "" {
		mime = header.Header.Get("Content-Type")
	}

	doc := models.Document{
		ClientID: meta.ClientID,
		Name:     name,
		Mime:     mime,
	}

	created, err := du.UploadDocument(ctx, requester, &doc, content)
	if err != nil {
		log.Warn("failed to upload document", slog.String("error", err.Error()))
		writeServiceError(log, w, err)
		return
	}

	response := map[string]any{
		"data": dto.ToDocumentResponse(created),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Error("failed to write response", slog.String("error", err.Error()))
	}
}
