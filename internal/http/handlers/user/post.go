package user

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

func Add(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, registrar Registrar) {
	op := pkg + "Add"

	log = log.With(slog.String("op", op))

	var req dto.RegisterRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to decode register request", slog.String("error", err.Error()))
		errutils.WriteJSONError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	email, err := registrar.Register(ctx, req.Email, req.Name, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidParams):
			errutils.WriteJSONError(w, http.StatusBadRequest, models.ErrInvalidParams.Error())
		case errors.Is(err, models.ErrUserExists):
			errutils.WriteJSONError(w, http.StatusConflict, models.ErrUserExists.Error())
		default:
			log.Error("failed to register user", slog.String("error", err.Error()))
			errutils.WriteJSONError(w, http.StatusInternalServerError, models.ErrInternal.Error())
		}
		return
	}

	response := map[string]any{
		"data": map[string]string{
			"email": email,
		},
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Error("failed to write response", slog.String("error", err.Error()))
	}
}
