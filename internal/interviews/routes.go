// internal/interviews/routes.go

package interviews

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/hellonanny/hellonanny-backend/internal/auth"
)

// RegisterRoutes mounts the interview endpoints. The nanny-facing
// respond/select/decline endpoints sit outside the auth middleware
// because they authorize in-band, by link token or nanny session.
func RegisterRoutes(router *mux.Router, handlers *Handlers, mw *auth.Middleware, rateLimit mux.MiddlewareFunc) {
	public := router.PathPrefix("/api/v1/interviews").Subrouter()
	if rateLimit != nil {
		public.Use(rateLimit)
	}
	public.HandleFunc("/respond", handlers.Respond).Methods(http.MethodGet)
	public.HandleFunc("/select", handlers.SelectSlot).Methods(http.MethodPost)
	public.HandleFunc("/decline", handlers.Decline).Methods(http.MethodPost)

	private := router.PathPrefix("/api/v1/interviews").Subrouter()
	private.Use(mw.Authenticate, mw.RequireRole(auth.RoleHost))
	private.HandleFunc("", handlers.Create).Methods(http.MethodPost)
}
