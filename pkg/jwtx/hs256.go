package jwtx

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Signer is our interface for anything that can sign session tokens.
type Signer interface {
	Sign(Claims) (string, error)
}

// Verifier validates a session token and gives you back the claims if it's
// legit. Any failure mode (bad signature, malformed structure, expired)
// surfaces as ErrInvalidToken so callers can't distinguish why.
type Verifier interface {
	Verify(token string) (Claims, error)
}

var (
	// ErrInvalidToken is the uniform outcome for any verification failure.
	ErrInvalidToken = errors.New("jwtx: invalid token")

	ErrInvalidClaim = errors.New("jwtx: invalid claims")
)

// HS256 signs and verifies session tokens with a single process-wide
// symmetric secret. Rotating the secret invalidates all issued tokens.
type HS256 struct {
	secret []byte
}

// NewHS256 returns a signer/verifier backed by the given secret.
func NewHS256(secret []byte) (*HS256, error) {
	if len(secret) == 0 {
		return nil, errors.New("jwtx: empty signing secret")
	}
	return &HS256{secret: secret}, nil
}

// Sign produces a compact JWT for the claims.
func (h *HS256) Sign(claims Claims) (string, error) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(h.secret)
}

// Verify parses the token, checks the signature and expiry, and returns the
// embedded claims. All failures collapse into ErrInvalidToken; the detailed
// cause is wrapped for internal logging only.
func (h *HS256) Verify(raw string) (Claims, error) {
	var claims Claims

	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return h.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return Claims{}, errors.Join(ErrInvalidToken, err)
	}

	return claims, nil
}

// Issue is a convenience wrapper that stamps claims at the current time.
func (h *HS256) Issue(userID int64, email string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return h.Sign(NewSessionClaims(userID, email, ttl, time.Now().UTC()))
}
