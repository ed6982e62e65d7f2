package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"signdesk/internal/dto"
	"signdesk/internal/models"
	errutils "signdesk/internal/utils/http_errors"
)

func Add(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, sm SessionManager) {
	op := pkg + "Add"

	log = log.With(slog.String("op", op))

	var req dto.LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to decode login request", slog.String("error", err.Error()))
		errutils.WriteJSONError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	token, err := sm.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			log.Info("invalid credentials")
			errutils.WriteJSONError(w, http.StatusUnauthorized, models.ErrInvalidCredentials.Error())
			return
		}

		log.Error("failed to login user", slog.String("error", err.Error()))
		errutils.WriteJSONError(w, http.StatusInternalServerError, models.ErrInternal.Error())
		return
	}

	response := map[string]any{
		"data": map[string]string{
			"token": token,
		},
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Error("failed to write response", slog.String("error", err.Error()))
	}
}
