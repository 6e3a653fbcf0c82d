package service

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aussiebroadwan/pastel/internal/store"
	"github.com/aussiebroadwan/pastel/internal/store/drivers/sqlite"
	"github.com/aussiebroadwan/pastel/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "test.db")
	st, err := sqlite.NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func newAuthService(t *testing.T, st store.Store) *AuthService {
	t.Helper()

	signer, err := jwtx.NewHS256([]byte("service-test-secret"))
	require.NoError(t, err)

	return &AuthService{Store: st, Signer: signer}
}

func TestAuthService_SignUp(t *testing.T) {
	st := newTestStore(t)
	svc := newAuthService(t, st)
	ctx := context.Background()

	user, err := svc.SignUp(ctx, SignUpParams{
		Email:    "a@x.com",
		Username: "alice",
		Name:     "Alice",
		Password: "secret123",
	})
	require.NoError(t, err)
	require.Positive(t, user.ID)
	require.Equal(t, "a@x.com", user.Email)
	require.Equal(t, "alice", user.Username)

	// The stored record holds a hash, never the plaintext.
	stored, err := st.Users().GetUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.NotEqual(t, "secret123", stored.PasswordHash)
	require.Contains(t, stored.PasswordHash, ".")

	// The public shape must not carry credential material.
	raw, err := json.Marshal(user)
	require.NoError(t, err)
	require.NotContains(t, strings.ToLower(string(raw)), "password")
	require.NotContains(t, string(raw), stored.PasswordHash)
}

func TestAuthService_SignUp_DuplicateEmail(t *testing.T) {
	st := newTestStore(t)
	svc := newAuthService(t, st)
	ctx := context.Background()

	_, err := svc.SignUp(ctx, SignUpParams{Email: "a@x.com", Username: "alice", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.SignUp(ctx, SignUpParams{Email: "a@x.com", Username: "impostor", Password: "other"})
	require.ErrorIs(t, err, ErrDuplicateEmail)

	// No write happened: only the original account exists.
	users, err := st.Users().ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	require.Equal(t, "alice", users[0].Username)
}

func TestAuthService_SignIn(t *testing.T) {
	st := newTestStore(t)
	svc := newAuthService(t, st)
	ctx := context.Background()

	created, err := svc.SignUp(ctx, SignUpParams{Email: "a@x.com", Username: "alice", Password: "secret123"})
	require.NoError(t, err)

	token, user, err := svc.SignIn(ctx, "a@x.com", "secret123")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Equal(t, created.ID, user.ID)
	require.Equal(t, "a@x.com", user.Email)

	// The token round-trips through the verifier with the same identity.
	verifier, err := jwtx.NewHS256([]byte("service-test-secret"))
	require.NoError(t, err)
	claims, err := verifier.Verify(token)
	require.NoError(t, err)
	id, err := claims.UserID()
	require.NoError(t, err)
	require.Equal(t, created.ID, id)
	require.Equal(t, "a@x.com", claims.Email)
}

func TestAuthService_SignIn_UnifiedError(t *testing.T) {
	st := newTestStore(t)
	svc := newAuthService(t, st)
	ctx := context.Background()

	_, err := svc.SignUp(ctx, SignUpParams{Email: "a@x.com", Username: "alice", Password: "secret123"})
	require.NoError(t, err)

	// Wrong password and unknown email must be indistinguishable.
	_, _, errWrongPass := svc.SignIn(ctx, "a@x.com", "wrongpassword")
	_, _, errNoUser := svc.SignIn(ctx, "nobody@x.com", "secret123")

	require.ErrorIs(t, errWrongPass, ErrInvalidCredentials)
	require.ErrorIs(t, errNoUser, ErrInvalidCredentials)
	require.Equal(t, errWrongPass.Error(), errNoUser.Error())
}
