package token

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Format(t *testing.T) {
	t.Parallel()

	tok, err := Generate()
	require.NoError(t, err)

	assert.Len(t, tok, tokenBytes*2)
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]+$`), tok)
}

func TestGenerate_NoCollisions(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{}, 10000)

	for i := 0; i < 10000; i++ {
		tok, err := Generate()
		require.NoError(t, err)

		_, dup := seen[tok]
		require.False(t, dup, "duplicate token after %d trials", i)
		seen[tok] = struct{}{}
	}
}

func TestExpiry_DefaultWindow(t *testing.T) {
	t.Parallel()

	got := Expiry(0)
	want := time.Now().UTC().AddDate(0, 0, DefaultTTLDays)

	assert.WithinDuration(t, want, got, 5*time.Second)
	assert.Equal(t, time.UTC, got.Location())
}

func TestExpiry_CustomWindow(t *testing.T) {
	t.Parallel()

	got := Expiry(7)
	want := time.Now().UTC().AddDate(0, 0, 7)

	assert.WithinDuration(t, want, got, 5*time.Second)
}

func TestIsExpired_FutureAndPast(t *testing.T) {
	t.Parallel()

	future := time.Now().UTC().Add(1 * time.Second)
	assert.False(t, IsExpired(&future))

	past := time.Now().UTC().Add(-1 * time.Second)
	assert.True(t, IsExpired(&past))
}

func TestIsExpired_NilMeansNoExpiry(t *testing.T) {
	t.Parallel()

	assert.False(t, IsExpired(nil))
}

func TestIsExpired_NonUTCInput(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC+5", 5*3600)
	past := time.Now().In(loc).Add(-1 * time.Second)

	assert.True(t, IsExpired(&past))
}
