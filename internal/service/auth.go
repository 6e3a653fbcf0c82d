package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/pastel/internal/domain"
	"github.com/aussiebroadwan/pastel/internal/store"
	"github.com/aussiebroadwan/pastel/pkg/cryptox"
	"github.com/aussiebroadwan/pastel/pkg/jwtx"
	"github.com/aussiebroadwan/pastel/pkg/slogx"
)

// AuthService handles sign-up and sign-in. It produces session tokens; it
// never consumes them (that is the session middleware's job).
type AuthService struct {
	Store    store.Store
	Signer   jwtx.Signer
	TokenTTL time.Duration
}

// SignUpParams are the fields accepted at registration.
type SignUpParams struct {
	Email    string
	Username string
	Name     string
	Password string
}

// SignUp registers a new user. The email pre-check keeps the common case
// friendly; the store's UNIQUE constraint is the authoritative backstop for
// concurrent sign-ups, so a constraint violation surfaces the same way.
// The returned user carries public fields only.
func (s *AuthService) SignUp(ctx context.Context, p SignUpParams) (domain.PublicUser, error) {
	_, err := s.Store.Users().GetUserByEmail(ctx, p.Email)
	if err == nil {
		return domain.PublicUser{}, ErrDuplicateEmail
	}
	if !errors.Is(err, store.ErrNotFound) {
		return domain.PublicUser{}, fmt.Errorf("signup: lookup email: %w", err)
	}

	hash, err := cryptox.HashPassword(p.Password)
	if err != nil {
		return domain.PublicUser{}, fmt.Errorf("signup: hash password: %w", err)
	}

	user, err := s.Store.Users().CreateUser(ctx, domain.User{
		Email:        p.Email,
		Username:     p.Username,
		Name:         p.Name,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.PublicUser{}, ErrDuplicateEmail
		}
		return domain.PublicUser{}, fmt.Errorf("signup: create user: %w", err)
	}

	return user.Public(), nil
}

// SignIn verifies the credentials and issues a session token. Unknown email
// and wrong password collapse into ErrInvalidCredentials; the distinction
// is logged at debug level only.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (string, domain.PublicUser, error) {
	log := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Debug("signin failed", "reason", "unknown email")
			return "", domain.PublicUser{}, ErrInvalidCredentials
		}
		return "", domain.PublicUser{}, fmt.Errorf("signin: lookup email: %w", err)
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			log.Debug("signin failed", "reason", "password mismatch", "user_id", user.ID)
			return "", domain.PublicUser{}, ErrInvalidCredentials
		}
		return "", domain.PublicUser{}, fmt.Errorf("signin: verify password: %w", err)
	}

	ttl := s.TokenTTL
	if ttl <= 0 {
		ttl = jwtx.DefaultSessionTTL
	}
	token, err := s.Signer.Sign(jwtx.NewSessionClaims(user.ID, user.Email, ttl, time.Now().UTC()))
	if err != nil {
		return "", domain.PublicUser{}, fmt.Errorf("signin: sign token: %w", err)
	}

	return token, user.Public(), nil
}
