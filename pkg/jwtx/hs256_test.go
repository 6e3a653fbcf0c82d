package jwtx

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestHS256(t *testing.T) *HS256 {
	t.Helper()
	h, err := NewHS256([]byte("test-secret-do-not-use-in-prod"))
	require.NoError(t, err)
	return h
}

func TestNewHS256_EmptySecret(t *testing.T) {
	_, err := NewHS256(nil)
	require.Error(t, err)
}

func TestHS256_RoundTrip(t *testing.T) {
	h := newTestHS256(t)

	token, err := h.Issue(42, "user@example.com", DefaultSessionTTL)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := h.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user@example.com", claims.Email)

	id, err := claims.UserID()
	require.NoError(t, err)
	require.Equal(t, int64(42), id)

	require.NotNil(t, claims.IssuedAt)
	require.NotNil(t, claims.ExpiresAt)
	require.WithinDuration(t,
		claims.IssuedAt.Add(DefaultSessionTTL), claims.ExpiresAt.Time, time.Second)
}

func TestHS256_Expired(t *testing.T) {
	h := newTestHS256(t)

	claims := NewSessionClaims(7, "old@example.com", time.Minute,
		time.Now().UTC().Add(-time.Hour))
	token, err := h.Sign(claims)
	require.NoError(t, err)

	_, err = h.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestHS256_TamperedSignature(t *testing.T) {
	h := newTestHS256(t)

	token, err := h.Issue(42, "user@example.com", DefaultSessionTTL)
	require.NoError(t, err)

	// Flip a character in the signature segment.
	i := strings.LastIndex(token, ".") + 1
	sig := []byte(token[i:])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := token[:i] + string(sig)

	_, err = h.Verify(tampered)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestHS256_TamperedClaims(t *testing.T) {
	h := newTestHS256(t)

	token, err := h.Issue(42, "user@example.com", DefaultSessionTTL)
	require.NoError(t, err)

	// Swap the payload for one from a token signed with a different secret.
	other, err := NewHS256([]byte("a-different-secret"))
	require.NoError(t, err)
	forged, err := other.Issue(99, "attacker@example.com", DefaultSessionTTL)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	forgedParts := strings.Split(forged, ".")
	require.Len(t, parts, 3)
	require.Len(t, forgedParts, 3)

	spliced := parts[0] + "." + forgedParts[1] + "." + parts[2]
	_, err = h.Verify(spliced)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestHS256_WrongSecret(t *testing.T) {
	h := newTestHS256(t)
	other, err := NewHS256([]byte("rotated-secret"))
	require.NoError(t, err)

	token, err := h.Issue(42, "user@example.com", DefaultSessionTTL)
	require.NoError(t, err)

	_, err = other.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestHS256_Malformed(t *testing.T) {
	h := newTestHS256(t)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-jwt"},
		{"two segments", "abc.def"},
		{"alg none", "eyJhbGciOiJub25lIn0.eyJzdWIiOiI0MiJ9."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.Verify(tt.token)
			require.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
