// internal/messaging/routes.go

package messaging

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterRoutes mounts the chat endpoints. Authorization is resolved
// per-request (chat link token or session), so no auth middleware is
// applied here.
func RegisterRoutes(router *mux.Router, handlers *Handlers, rateLimit mux.MiddlewareFunc) {
	sub := router.PathPrefix("/api/v1/conversations").Subrouter()
	if rateLimit != nil {
		sub.Use(rateLimit)
	}

	sub.HandleFunc("/{id}", handlers.GetConversation).Methods(http.MethodGet)
	sub.HandleFunc("/{id}/messages", handlers.ListMessages).Methods(http.MethodGet)
	sub.HandleFunc("/{id}/messages", handlers.SendMessage).Methods(http.MethodPost)
}
