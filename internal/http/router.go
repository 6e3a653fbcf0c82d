package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/pastel/internal/service"
	"github.com/aussiebroadwan/pastel/internal/store"
	"github.com/aussiebroadwan/pastel/pkg/httpx"
	"github.com/aussiebroadwan/pastel/pkg/jwtx"
	"github.com/aussiebroadwan/pastel/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier      jwtx.Verifier
	tokenTTL      time.Duration
	secureCookies bool
	logger        *slog.Logger
	startTime     time.Time

	AuthService *service.AuthService
	UserService *service.UserService
	PostService *service.PostService

	// Store and Version back the health probes.
	Store   store.Store
	Version string
}

func NewRouter(verifier jwtx.Verifier, tokenTTL time.Duration, secureCookies bool, logger *slog.Logger) *Router {
	r := &Router{
		Mux:           http.NewServeMux(),
		verifier:      verifier,
		tokenTTL:      tokenTTL,
		secureCookies: secureCookies,
		logger:        logger,
		startTime:     time.Now(),
	}

	// Global middleware chain.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

// ServeHTTP implements http.Handler and applies the global middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerUsers()
	r.registerPosts()
	r.registerSystem()
}

// session gates a handler behind cookie authentication and a per-identity
// rate limit.
func (r *Router) session(h http.Handler) http.Handler {
	return httpx.Chain(h,
		httpx.SessionMiddleware(r.verifier),
		httpx.RateLimitByIdentity(httpx.LenientLimit),
	)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{
		AuthService:   r.AuthService,
		TokenTTL:      r.tokenTTL,
		SecureCookies: r.secureCookies,
	}

	// Credential endpoints get the strict limit to slow brute forcing.
	r.Mux.Handle("POST /auth/signup",
		httpx.Chain(http.HandlerFunc(h.HandleSignUp),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /auth/signin",
		httpx.Chain(http.HandlerFunc(h.HandleSignIn),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("POST /auth/signout",
		httpx.Chain(http.HandlerFunc(h.HandleSignOut),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	r.Mux.Handle("GET /auth/me", r.session(http.HandlerFunc(h.HandleMe)))
}

func (r *Router) registerUsers() {
	h := &UsersHandler{UserService: r.UserService}

	r.Mux.Handle("GET /users",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /users/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)

	r.Mux.Handle("GET /users/me/profile", r.session(http.HandlerFunc(h.HandleMyProfile)))
	r.Mux.Handle("PATCH /users/{id}", r.session(http.HandlerFunc(h.HandleUpdate)))
	r.Mux.Handle("DELETE /users/{id}", r.session(http.HandlerFunc(h.HandleDelete)))
	r.Mux.Handle("POST /users/{id}/follow", r.session(http.HandlerFunc(h.HandleFollow)))
	r.Mux.Handle("DELETE /users/{id}/follow", r.session(http.HandlerFunc(h.HandleUnfollow)))
}

func (r *Router) registerPosts() {
	h := &PostsHandler{PostService: r.PostService}

	r.Mux.Handle("POST /posts", r.session(http.HandlerFunc(h.HandleCreate)))
	r.Mux.Handle("GET /posts/feed", r.session(http.HandlerFunc(h.HandleFeed)))
	r.Mux.Handle("GET /posts/user/{userId}", r.session(http.HandlerFunc(h.HandleListByUser)))

	// Single-post reads are public.
	r.Mux.Handle("GET /posts/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)

	r.Mux.Handle("PATCH /posts/{id}", r.session(http.HandlerFunc(h.HandleUpdate)))
	r.Mux.Handle("DELETE /posts/{id}", r.session(http.HandlerFunc(h.HandleDelete)))
}

func (r *Router) registerSystem() {
	// Health probes get the lenient limit; monitors poll them frequently.
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.Version),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.Version, r.Store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
