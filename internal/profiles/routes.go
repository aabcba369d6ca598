// internal/profiles/routes.go

package profiles

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/hellonanny/hellonanny-backend/internal/auth"
)

// RegisterRoutes mounts the profile endpoints. Creation is public (it
// precedes account signup); everything else requires a session.
func RegisterRoutes(router *mux.Router, handlers *Handlers, mw *auth.Middleware, rateLimit mux.MiddlewareFunc) {
	public := router.PathPrefix("/api/v1/profiles").Subrouter()
	if rateLimit != nil {
		public.Use(rateLimit)
	}
	public.HandleFunc("/hosts", handlers.CreateHost).Methods(http.MethodPost)
	public.HandleFunc("/nannies", handlers.CreateNanny).Methods(http.MethodPost)

	private := router.PathPrefix("/api/v1/profiles").Subrouter()
	private.Use(mw.Authenticate)
	private.HandleFunc("/me", handlers.Me).Methods(http.MethodGet)
	private.HandleFunc("/hosts/{id}/segments/{segment}", handlers.SaveHostSegment).Methods(http.MethodPut)
	private.HandleFunc("/nannies/{id}/segments/{segment}", handlers.SaveNannySegment).Methods(http.MethodPut)
	private.HandleFunc("/nannies/{id}/cv", handlers.UploadCV).Methods(http.MethodPost)
}
