package cachedocsrepo

import (
	"context"
	"errors"
	"testing"
	"time"

	cacherepo "signdesk/internal/repositories/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockCache struct {
	mock.Mock
}

type mockResponse[T any] struct {
	val T
	err error
}

func (m *mockCache) Get(ctx context.Context, key string) cacherepo.CacheResponse[string] {
	args := m.Called(ctx, key)
	return args.Get(0).(cacherepo.CacheResponse[string])
}

func (m *mockCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) cacherepo.CacheResponse[string] {
	args := m.Called(ctx, key, value, expiration)
	return args.Get(0).(cacherepo.CacheResponse[string])
}

func (m *mockCache) Del(ctx context.Context, keys ...string) cacherepo.CacheResponse[int64] {
	args := m.Called(ctx, keys)
	return args.Get(0).(cacherepo.CacheResponse[int64])
}

func (r *mockResponse[T]) Err() error {
	return r.err
}

func (r *mockResponse[T]) Result() (T, error) {
	return r.val, r.err
}

func TestViewCache_SetPrefixesToken(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cache := new(mockCache)
	repo := New(cache, time.Hour)

	cache.On("Set", ctx, "share:tok-1", `{"id":"doc123"}`, time.Hour).
		Return(&mockResponse[string]{})

	err := repo.Set(ctx, "tok-1", `{"id":"doc123"}`)
	assert.NoError(t, err)
	cache.AssertExpectations(t)
}

func TestViewCache_GetHit(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cache := new(mockCache)
	repo := New(cache, time.Hour)

	cache.On("Get", ctx, "share:tok-1").
		Return(&mockResponse[string]{val: `{"id":"doc123"}`})

	viewJSON, err := repo.Get(ctx, "tok-1")
	assert.NoError(t, err)
	assert.Equal(t, `{"id":"doc123"}`, viewJSON)
	cache.AssertExpectations(t)
}

func TestViewCache_GetMissIsEmpty(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cache := new(mockCache)
	repo := New(cache, time.Hour)

	cache.On("Get", ctx, "share:unknown").
		Return(&mockResponse[string]{})

	viewJSON, err := repo.Get(ctx, "unknown")
	assert.NoError(t, err)
	assert.Equal(t, "", viewJSON)
	cache.AssertExpectations(t)
}

func TestViewCache_GetError(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cache := new(mockCache)
	repo := New(cache, time.Hour)

	cache.On("Get", ctx, "share:tok-1").
		Return(&mockResponse[string]{err: errors.New("cache down")})

	_, err := repo.Get(ctx, "tok-1")
	assert.EqualError(t, err, "cache down")
	cache.AssertExpectations(t)
}

func TestViewCache_DelPrefixesAllTokens(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cache := new(mockCache)
	repo := New(cache, time.Hour)

	cache.On("Del", ctx, []string{"share:tok-1", "share:tok-2"}).
		Return(&mockResponse[int64]{})

	err := repo.Del(ctx, "tok-1", "tok-2")
	assert.NoError(t, err)
	cache.AssertExpectations(t)
}

func TestViewCache_DelError(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cache := new(mockCache)
	repo := New(cache, time.Hour)

	cache.On("Del", ctx, []string{"share:tok-1"}).
		Return(&mockResponse[int64]{err: errors.New("del error")})

	err := repo.Del(ctx, "tok-1")
	assert.EqualError(t, err, "del error")
	cache.AssertExpectations(t)
}
