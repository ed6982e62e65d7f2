package cachesessionrepo

import (
	"context"
	"time"

	"signdesk/internal/models"
	cacherepo "signdesk/internal/repositories/cache"
)

// repository stores admin sessions as serialized users keyed by the session
// token. Expiry is handled entirely by redis: a vanished key is a logout.
type repository struct {
	cache      cacherepo.Cache
	sessionTTL time.Duration
}

func New(cache cacherepo.Cache, sessionTTL time.Duration) *repository {
	return &repository{
		cache:      cache,
		sessionTTL: sessionTTL,
	}
}

func sessionKey(token string) string {
	return "session:" + token
}

func (r *repository) SaveSession(ctx context.Context, token string, userJSON string) error {
	return r.cache.Set(ctx, sessionKey(token), userJSON, r.sessionTTL).Err()
}

func (r *repository) DeleteSession(ctx context.Context, token string) error {
	return r.cache.Del(ctx, sessionKey(token)).Err()
}

func (r *repository) GetUserByToken(ctx context.Context, token string) (string, error) {
	userJSON, err := r.cache.Get(ctx, sessionKey(token)).Result()
	if err != nil {
		return "", err
	}

	if userJSON == "" {
		return "", models.ErrSessionNotFound
	}

	return userJSON, nil
}
