package docs

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
)

func Download(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, docID string, dd DocumentDownloader) {
	op := pkg + "Download"

	log = log.With(slog.String("op", op))

	requester, ok := requesterFromContext(log, w, r)
	if !ok {
		return
	}

	signed := r.URL.Query().Get("signed") == "true"

	doc, content, err := dd.DownloadDocument(ctx, requester, docID, signed)
	if err != nil {
		log.Warn("failed to download document", slog.String("error", err.Error()))
		writeServiceError(log, w, err)
		return
	}

	name := doc.Name
	if signed {
		name = "signed_" + name
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Type", doc.Mime)
	if _, err := w.Write(content); err != nil {
		log.Error("failed to write file response", slog.String("error", err.Error()))
	}
}
