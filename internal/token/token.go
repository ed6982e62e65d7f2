package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

const pkg = "token/"

// tokenBytes is the entropy of a share token. 32 bytes keeps tokens
// unguessable as bearer credentials.
const tokenBytes = 32

// DefaultTTLDays is how long a share link stays valid unless configured
// otherwise.
const DefaultTTLDays = 30

// Generate returns a new opaque share token: 32 random bytes, hex encoded.
func Generate() (string, error) {
	op := pkg + "Generate"

	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return hex.EncodeToString(b), nil
}

// Expiry returns the absolute UTC expiry for a token issued now.
func Expiry(days int) time.Time {
	if days <= 0 {
		days = DefaultTTLDays
	}

	return time.Now().UTC().AddDate(0, 0, days)
}

// IsExpired reports whether an expiry timestamp has passed. A nil expiry is
// treated as "does not expire"; the lifecycle keeps expiry set whenever a
// token exists, so nil only occurs for documents that were never shared.
func IsExpired(expiry *time.Time) bool {
	if expiry == nil {
		return false
	}

	return time.Now().UTC().After(expiry.UTC())
}
