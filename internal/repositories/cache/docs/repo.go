package cachedocsrepo

import (
	"context"
	"time"

	cacherepo "signdesk/internal/repositories/cache"
)

// repository caches rendered share views keyed by share token. Only terminal
// (signed) views land here: they can never change again, so a stale entry is
// impossible as long as Del runs on token rotation and document deletion.
type repository struct {
	cache   cacherepo.Cache
	viewTTL time.Duration
}

func New(cache cacherepo.Cache, viewTTL time.Duration) *repository {
	return &repository{
		cache:   cache,
		viewTTL: viewTTL,
	}
}

func viewKey(token string) string {
	return "share:" + token
}

func (r *repository) Get(ctx context.Context, token string) (string, error) {
	viewJSON, err := r.cache.Get(ctx, viewKey(token)).Result()
	if err != nil {
		return "", err
	}

	return viewJSON, nil
}

func (r *repository) Set(ctx context.Context, token string, view interface{}) error {
	return r.cache.Set(ctx, viewKey(token), view, r.viewTTL).Err()
}

func (r *repository) Del(ctx context.Context, tokens ...string) error {
	keys := make([]string, 0, len(tokens))

	for _, token := range tokens {
		keys = append(keys, viewKey(token))
	}

	return r.cache.Del(ctx, keys...).Err()
}
