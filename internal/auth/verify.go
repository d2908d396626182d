package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/spec-kit/marketplace-service/internal/config"
	"github.com/spec-kit/marketplace-service/internal/domain"
)

const verifyKeySalt = "auth.VerifyTokenGenerator"

// digestBytes is the truncated length of the HMAC digest folded into a token.
const digestBytes = 16

// VerifyTokenGenerator issues and checks stateless, time-boxed tokens for
// email verification, email change and password reset links.
//
// Tokens are never stored. The signed payload folds in the user's email,
// active flag and password hash, so completing any of those transitions
// invalidates every token issued before it.
type VerifyTokenGenerator struct {
	secret    string
	fallbacks []string
	maxAge    time.Duration
	now       func() time.Time
}

// NewVerifyTokenGenerator builds a generator from config.
func NewVerifyTokenGenerator(cfg config.VerifyConfig) *VerifyTokenGenerator {
	return &VerifyTokenGenerator{
		secret:    cfg.Secret,
		fallbacks: cfg.SecretFallbacks,
		maxAge:    cfg.TokenTTL(),
		now:       time.Now,
	}
}

// MakeToken returns a token of the form <base36 timestamp>-<base36 digest>
// bound to the user's current state.
func (g *VerifyTokenGenerator) MakeToken(user *domain.User) string {
	return g.tokenWithTimestamp(user, g.timestamp(), g.secret)
}

// CheckToken reports whether token was issued for user under a currently
// accepted secret and is still within the max age window. It fails closed:
// malformed input yields false, never an error.
func (g *VerifyTokenGenerator) CheckToken(user *domain.User, token string) bool {
	if user == nil || token == "" {
		return false
	}

	parts := strings.Split(token, "-")
	if len(parts) != 2 {
		return false
	}

	ts, err := strconv.ParseInt(parts[0], 36, 64)
	if err != nil || ts < 0 {
		return false
	}

	// Primary secret first, then rotation fallbacks.
	matched := false
	for _, secret := range append([]string{g.secret}, g.fallbacks...) {
		expected := g.tokenWithTimestamp(user, ts, secret)
		if subtle.ConstantTimeCompare([]byte(expected), []byte(token)) == 1 {
			matched = true
			break
		}
	}
	if !matched {
		return false
	}

	// Expiry is enforced after authenticity, as its own check.
	if g.timestamp()-ts > int64(g.maxAge/time.Second) {
		return false
	}

	return true
}

func (g *VerifyTokenGenerator) tokenWithTimestamp(user *domain.User, ts int64, secret string) string {
	payload := fmt.Sprintf("%s|%s|%t|%s|%d", user.ID, user.Email, user.Active, user.PasswordHash, ts)

	mac := hmac.New(sha256.New, []byte(verifyKeySalt+secret))
	mac.Write([]byte(payload))
	sum := mac.Sum(nil)[:digestBytes]

	digest := new(big.Int).SetBytes(sum).Text(36)
	return strconv.FormatInt(ts, 36) + "-" + digest
}

// timestamp returns whole seconds since the Unix epoch per the injected clock.
func (g *VerifyTokenGenerator) timestamp() int64 {
	return g.now().Unix()
}
