package clients

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

func Add(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, cm ClientManager) {
	op := pkg + "Add"

	log = log.With(slog.String("op", op))

	requester, ok := requesterFromContext(log, w, r)
	if !ok {
		return
	}

	var req dto.CreateClientRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to decode client request", slog.String("error", err.Error()))
		errutils.WriteJSONError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	client, err := cm.CreateClient(ctx, requester, &models.Client{
		Name:    req.Name,
		Email:   req.Email,
		Company: req.Company,
	})
	if err != nil {
		log.Warn("failed to create client", slog.String("error", err.Error()))
		writeClientError(log, w, err)
		return
	}

	response := map[string]any{
		"data": dto.ToClientResponse(client),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Error("failed to write response", slog.String("error", err.Error()))
	}
}

func Get(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, cm ClientManager) {
	op := pkg + "Get"

	log = log.With(slog.String("op", op))

	requester, ok := requesterFromContext(log, w, r)
	if !ok {
		return
	}

	rawClients, err := cm.ListClients(ctx, requester)
	if err != nil {
		log.Warn("failed to list clients", slog.String("error", err.Error()))
		writeClientError(log, w, err)
		return
	}

	dtoClients := make([]dto.ClientResponse, 0, len(rawClients))

	for _, client := range rawClients {
		dtoClients = append(dtoClients, dto.ToClientResponse(client))
	}

	response := map[string]any{
		"data": map[string]any{
			"clients": dtoClients,
		},
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Error("failed to write response", slog.String("error", err.Error()))
	}
}

func GetByID(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, clientID string, cm ClientManager) {
	op := pkg + "GetByID"

	log = log.With(slog.String("op", op))

	requester, ok := requesterFromContext(log, w, r)
	if !ok {
		return
	}

	client, err := cm.ClientByID(ctx, requester, clientID)
	if err != nil {
		log.Warn("failed to get client", slog.String("error", err.Error()))
		writeClientError(log, w, err)
		return
	}

	response := map[string]any{
		"data": dto.ToClientResponse(client),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Error("failed to write response", slog.String("error", err.Error()))
	}
}

func requesterFromContext(log *slog.Logger, w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	requester, ok := r.Context().Value(models.UserContextKey).(*models.User)
	if !ok {
		log.Error("failed to get user from context")
		errutils.WriteJSONError(w, http.StatusUnauthorized, models.ErrUnauthorized.Error())
		return nil, false
	}

	return requester, true
}

func writeClientError(log *slog.Logger, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidParams):
		errutils.WriteJSONError(w, http.StatusBadRequest, models.ErrInvalidParams.Error())
	case errors.Is(err, models.ErrForbidden):
		errutils.WriteJSONError(w, http.StatusForbidden, models.ErrForbidden.Error())
	case errors.Is(err, models.ErrClientNotFound):
		errutils.WriteJSONError(w, http.StatusNotFound, models.ErrClientNotFound.Error())
	default:
		log.Error("unexpected service error", slog.String("error", err.Error()))
		errutils.WriteJSONError(w, http.StatusInternalServerError, models.ErrInternal.Error())
	}
}
