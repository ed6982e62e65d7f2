package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"signdesk/internal/models"
	utils "signdesk/internal/utils/http_errors"
)

// Auth resolves the session token into a user and stores it on the request
// context. The token travels in the Authorization header (Bearer) with a
// query-param fallback.
func Auth(log *slog.Logger, storer SessionStorer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			op := pkg + "Auth"

			reqLog := log.With(slog.String("op", op))

			token := bearerToken(r)
			if token == "" {
				utils.WriteJSONError(w, http.StatusUnauthorized, "missing session token")
				return
			}

			requester, err := storer.UserByToken(r.Context(), token)
			if err != nil {
				reqLog.Warn("failed get user by token", slog.String("error", err.Error()))
				utils.WriteJSONError(w, http.StatusUnauthorized, "token is invalid")
				return
			}

			ctx := context.WithValue(r.Context(), models.UserContextKey, requester)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}

	return r.URL.Query().Get("token")
}
