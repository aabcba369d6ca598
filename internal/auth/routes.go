// internal/auth/routes.go

package auth

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterRoutes mounts the auth endpoints under /api/v1/auth.
func RegisterRoutes(router *mux.Router, handlers *Handlers, mw *Middleware) {
	sub := router.PathPrefix("/api/v1/auth").Subrouter()

	sub.HandleFunc("/signup", handlers.Signup).Methods(http.MethodPost)
	sub.HandleFunc("/login", handlers.Login).Methods(http.MethodPost)

	me := sub.PathPrefix("/me").Subrouter()
	me.Use(mw.Authenticate)
	me.HandleFunc("", handlers.Me).Methods(http.MethodGet)
}
