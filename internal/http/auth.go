package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/aussiebroadwan/pastel/internal/domain"
	"github.com/aussiebroadwan/pastel/internal/service"
	"github.com/aussiebroadwan/pastel/pkg/httpx"
)

// AuthHandler serves sign-up, sign-in, sign-out and the current-session
// query. Sign-up and sign-in produce tokens rather than consume them, so
// they sit outside the session middleware.
type AuthHandler struct {
	AuthService   *service.AuthService
	TokenTTL      time.Duration
	SecureCookies bool
}

type signUpRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (h *AuthHandler) HandleSignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}
	if req.Email == "" || req.Password == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "email and password are required")
		return
	}

	user, err := h.AuthService.SignUp(r.Context(), service.SignUpParams{
		Email:    req.Email,
		Username: req.Username,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, user)
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signInResponse struct {
	User    domain.PublicUser `json:"user"`
	Message string            `json:"message"`
}

func (h *AuthHandler) HandleSignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	token, user, err := h.AuthService.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	// The cookie's lifetime matches the token's own expiry.
	httpx.SetSessionCookie(w, token, h.TokenTTL, h.SecureCookies)
	httpx.WriteJSON(w, http.StatusOK, signInResponse{
		User: domain.PublicUser{
			ID:    user.ID,
			Email: user.Email,
		},
		Message: "Signed in",
	})
}

func (h *AuthHandler) HandleSignOut(w http.ResponseWriter, r *http.Request) {
	// Stateless: tokens are not revoked server-side, the client just
	// discards the cookie.
	httpx.ClearSessionCookie(w, h.SecureCookies)
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "Signed out"})
}

type meResponse struct {
	LoggedIn bool   `json:"loggedIn"`
	User     meUser `json:"user"`
}

type meUser struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// HandleMe reports the current session's identity. It runs behind the
// session middleware, so an identity is always attached here.
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.IdentityFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthenticated", "Authentication required")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, meResponse{
		LoggedIn: true,
		User:     meUser{ID: id.Subject, Email: id.Email},
	})
}
