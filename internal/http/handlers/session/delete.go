package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"signdesk/internal/models"
	errutils "signdesk/internal/utils/http_errors"
)

func Delete(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, token string, sm SessionManager) {
	op := pkg + "Delete"

	log = log.With(slog.String("op", op))

	if err := sm.Logout(ctx, token); err != nil {
		if errors.Is(err, models.ErrSessionNotFound) {
			log.Warn("session not found")
			errutils.WriteJSONError(w, http.StatusNotFound, models.ErrSessionNotFound.Error())
			return
		}

		log.Error("failed to logout user", slog.String("error", err.Error()))
		errutils.WriteJSONError(w, http.StatusInternalServerError, models.ErrInternal.Error())
		return
	}

	response := map[string]any{
		"data": map[string]bool{
			"logged_out": true,
		},
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Error("failed to write response", slog.String("error", err.Error()))
	}
}
