package docs

import (
	"errors"
	"log/slog"
	"net/http"

	"signdesk/internal/models"
	errutils "signdesk/internal/utils/http_errors"
)

func requesterFromContext(log *slog.Logger, w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	requester, ok := r.Context().Value(models.UserContextKey).(*models.User)
	if !ok {
		log.Error("failed to get user from context")
		errutils.WriteJSONError(w, http.StatusUnauthorized, models.ErrUnauthorized.Error())
		return nil, false
	}

	return requester, true
}

// writeServiceError maps service sentinels onto HTTP statuses. Everything
// unrecognized collapses to 500 without leaking internals.
func writeServiceError(log *slog.Logger, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidParams), errors.Is(err, models.ErrBadSignatureImage), errors.Is(err, models.ErrInvalidPage):
		errutils.WriteJSONError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrUnauthorized), errors.Is(err, models.ErrInvalidCredentials):
		errutils.WriteJSONError(w, http.StatusUnauthorized, models.ErrUnauthorized.Error())
	case errors.Is(err, models.ErrForbidden):
		errutils.WriteJSONError(w, http.StatusForbidden, models.ErrForbidden.Error())
	case errors.Is(err, models.ErrDocumentNotFound), errors.Is(err, models.ErrClientNotFound):
		errutils.WriteJSONError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrAlreadySigned):
		errutils.WriteJSONError(w, http.StatusConflict, models.ErrAlreadySigned.Error())
	case errors.Is(err, models.ErrLinkExpired):
		errutils.WriteJSONError(w, http.StatusGone, models.ErrLinkExpired.Error())
	default:
		log.Error("unexpected service error", slog.String("error", err.Error()))
		errutils.WriteJSONError(w, http.StatusInternalServerError, models.ErrInternal.Error())
	}
}
