// Package slug allocates collection-unique, URL-safe identifiers for new
// catalog records. Allocation probes a caller-supplied existence predicate
// and retries with fresh random candidates on collision; it never writes, so
// the caller must persist the returned value together with the record. Under
// truly concurrent writers two requests can probe the same free candidate
// before either commits; the database unique index is the final arbiter.
package slug

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	mathrand "math/rand/v2"
	"regexp"
	"strings"
)

// maxAttempts bounds collision probing before falling back to a suffix that
// is unique for any practical purpose.
const maxAttempts = 8

const (
	suffixLow  = 1_000_000
	suffixHigh = 9_999_999
)

// ExistsFunc reports whether a candidate is already taken.
type ExistsFunc func(ctx context.Context, candidate string) (bool, error)

// NumericExistsFunc reports whether a numeric candidate is already taken.
type NumericExistsFunc func(ctx context.Context, candidate int64) (bool, error)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Make normalizes a title to a lowercase, hyphenated, ASCII-safe slug.
func Make(title string) string {
	s := strings.ToLower(title)
	s = nonSlugChars.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Unique returns the base slug for title when free, otherwise probes
// candidates with a fresh random suffix per attempt. Each retry draws
// independently rather than incrementing.
func Unique(ctx context.Context, title string, exists ExistsFunc) (string, error) {
	base := Make(title)

	taken, err := exists(ctx, base)
	if err != nil {
		return "", err
	}
	if !taken {
		return base, nil
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		candidate := fmt.Sprintf("%s-%d", base, randomSuffix())
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}

	// Collision probing exhausted: fall back to 64 bits of entropy.
	return base + "-" + randomToken(), nil
}

// NumericID draws uniform random integers in [low, high] until one passes
// the existence predicate.
func NumericID(ctx context.Context, low, high int64, exists NumericExistsFunc) (int64, error) {
	if low > high {
		return 0, fmt.Errorf("invalid id range [%d, %d]", low, high)
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		candidate := low + mathrand.Int64N(high-low+1)
		taken, err := exists(ctx, candidate)
		if err != nil {
			return 0, err
		}
		if !taken {
			return candidate, nil
		}
	}
	return 0, fmt.Errorf("no free id in [%d, %d] after %d attempts", low, high, maxAttempts)
}

func randomSuffix() int64 {
	return suffixLow + mathrand.Int64N(suffixHigh-suffixLow+1)
}

func randomToken() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		panic("crypto/rand failed: " + err.Error())
	}
	return hex.EncodeToString(b)
}
