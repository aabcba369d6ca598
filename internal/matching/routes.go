// internal/matching/routes.go

package matching

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/hellonanny/hellonanny-backend/internal/auth"
)

// RegisterRoutes mounts the matching endpoints. rateLimit guards the
// public token-driven proceed-pass endpoint; pass nil to disable.
func RegisterRoutes(router *mux.Router, handlers *Handlers, mw *auth.Middleware, rateLimit mux.MiddlewareFunc) {
	// Public, token-authorized
	public := router.PathPrefix("/api/v1/matches").Subrouter()
	if rateLimit != nil {
		public.Use(rateLimit)
	}
	public.HandleFunc("/proceed-pass", handlers.ProceedPass).Methods(http.MethodPost)

	review := router.PathPrefix("/api/v1/shortlists").Subrouter()
	if rateLimit != nil {
		review.Use(rateLimit)
	}
	review.HandleFunc("/review", handlers.ReviewShortlist).Methods(http.MethodGet)

	// Session-authenticated
	matches := router.PathPrefix("/api/v1/matches").Subrouter()
	matches.Use(mw.Authenticate)
	matches.HandleFunc("/{id}", handlers.GetMatch).Methods(http.MethodGet)

	shortlists := router.PathPrefix("/api/v1/shortlists").Subrouter()
	shortlists.Use(mw.Authenticate, mw.RequireRole(auth.RoleHost, auth.RoleMatchmaker))
	shortlists.HandleFunc("/generate", handlers.GenerateShortlist).Methods(http.MethodPost)

	// Matchmaker tooling
	matchmaker := router.PathPrefix("/api/v1/matchmaker").Subrouter()
	matchmaker.Use(mw.Authenticate, mw.RequireRole(auth.RoleMatchmaker))
	matchmaker.HandleFunc("/hosts/{id}/candidates", handlers.ListCandidates).Methods(http.MethodGet)
	matchmaker.HandleFunc("/matches", handlers.CreateManualMatch).Methods(http.MethodPost)
	matchmaker.HandleFunc("/matches/{id}/score", handlers.OverrideScore).Methods(http.MethodPatch)
}
