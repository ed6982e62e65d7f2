package sign

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"signdesk/internal/models"
	errutils "signdesk/internal/utils/http_errors"
)

// Get resolves a share token for the recipient. This route is public: the
// token is the only credential.
func Get(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, resolver TokenResolver) {
	op := pkg + "Get"

	log = log.With(slog.String("op", op))

	token := r.URL.Query().Get("token")
	if token == "" {
		errutils.WriteJSONError(w, http.StatusBadRequest, "missing token")
		return
	}

	view, err := resolver.DocumentByToken(ctx, token)
	if err != nil {
		log.Warn("failed to resolve share token", slog.String("error", err.Error()))
		writeSignError(log, w, err)
		return
	}

	response := map[string]any{
		"data": view,
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Error("failed to write response", slog.String("error", err.Error()))
	}
}

func writeSignError(log *slog.Logger, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidParams), errors.Is(err, models.ErrBadSignatureImage), errors.Is(err, models.ErrInvalidPage):
		errutils.WriteJSONError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrDocumentNotFound):
		errutils.WriteJSONError(w, http.StatusNotFound, models.ErrDocumentNotFound.Error())
	case errors.Is(err, models.ErrAlreadySigned):
		errutils.WriteJSONError(w, http.StatusConflict, models.ErrAlreadySigned.Error())
	case errors.Is(err, models.ErrLinkExpired):
		errutils.WriteJSONError(w, http.StatusGone, models.ErrLinkExpired.Error())
	default:
		log.Error("unexpected service error", slog.String("error", err.Error()))
		errutils.WriteJSONError(w, http.StatusInternalServerError, models.ErrInternal.Error())
	}
}
