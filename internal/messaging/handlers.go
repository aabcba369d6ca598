// internal/messaging/handlers.go
// Chat over plain polling: clients GET new messages with a since cursor
// and POST to send. Access comes from either a chat link token (the
// ?token= query parameter) or a logged-in session.

package messaging

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/hellonanny/hellonanny-backend/internal/auth"
	"github.com/hellonanny/hellonanny-backend/internal/common/utils"
	"github.com/hellonanny/hellonanny-backend/internal/tokens"
)

type Handlers struct {
	service Service
	auth    auth.Service
}

func NewHandlers(service Service, authService auth.Service) *Handlers {
	return &Handlers{service: service, auth: authService}
}

// SendMessageRequest posts one chat message.
type SendMessageRequest struct {
	Body string `json:"body" validate:"required,max=2000"`
}

// ListMessagesResponse is the polling payload: messages after the
// cursor, plus the cursor for the next poll.
type ListMessagesResponse struct {
	Messages []*Message `json:"messages"`
	Cursor   string     `json:"cursor"`
}

// ListMessages handles GET /api/v1/conversations/{id}/messages.
func (h *Handlers) ListMessages(w http.ResponseWriter, r *http.Request) {
	access, ok := h.resolveAccess(w, r)
	if !ok {
		return
	}

	var since time.Time
	if raw := r.URL.Query().Get("since"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "since must be an RFC 3339 timestamp")
			return
		}
		since = parsed
	}

	messages, err := h.service.ListMessages(r.Context(), access, since)
	if err != nil {
		log.Printf("Message listing failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load messages")
		return
	}

	cursor := since
	if len(messages) > 0 {
		cursor = messages[len(messages)-1].CreatedAt
	}

	resp := ListMessagesResponse{Messages: messages}
	if !cursor.IsZero() {
		resp.Cursor = cursor.UTC().Format(time.RFC3339)
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// SendMessage handles POST /api/v1/conversations/{id}/messages.
func (h *Handlers) SendMessage(w http.ResponseWriter, r *http.Request) {
	access, ok := h.resolveAccess(w, r)
	if !ok {
		return
	}

	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	message, err := h.service.SendMessage(r.Context(), access, req.Body)
	if err != nil {
		if errors.Is(err, ErrInvalidBody) {
			utils.RespondWithError(w, http.StatusBadRequest, "Message body must be between 1 and 2000 characters")
			return
		}
		log.Printf("Message send failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to send message")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, message)
}

// GetConversation handles GET /api/v1/conversations/{id}.
func (h *Handlers) GetConversation(w http.ResponseWriter, r *http.Request) {
	access, ok := h.resolveAccess(w, r)
	if !ok {
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, access.Conversation)
}

// resolveAccess authorizes the request via chat token or session, in
// that order. It writes the error response itself on failure.
func (h *Handlers) resolveAccess(w http.ResponseWriter, r *http.Request) (*Access, bool) {
	conversationID := mux.Vars(r)["id"]

	if token := r.URL.Query().Get("token"); token != "" {
		access, err := h.service.AccessFromToken(r.Context(), token)
		if err != nil {
			h.respondAccessError(w, err)
			return nil, false
		}
		if access.Conversation.ID != conversationID {
			utils.RespondWithError(w, http.StatusForbidden, "Link does not grant access to this conversation")
			return nil, false
		}
		return access, true
	}

	header := r.Header.Get("Authorization")
	if header == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "A chat link token or login is required")
		return nil, false
	}

	parts := splitBearer(header)
	if parts == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid authorization header format")
		return nil, false
	}

	principal, err := h.auth.ParseAccessToken(parts)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid or expired token")
		return nil, false
	}

	access, err := h.service.AccessFromPrincipal(r.Context(), principal, conversationID)
	if err != nil {
		h.respondAccessError(w, err)
		return nil, false
	}
	return access, true
}

func (h *Handlers) respondAccessError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, tokens.ErrInvalidToken):
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid or expired link")
	case errors.Is(err, ErrConversationNotFound):
		utils.RespondWithError(w, http.StatusNotFound, "Conversation not found")
	case errors.Is(err, ErrNotParticipant):
		utils.RespondWithError(w, http.StatusForbidden, "Not a participant in this conversation")
	default:
		log.Printf("Conversation access failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to authorize conversation access")
	}
}

func splitBearer(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && (header[:len(prefix)] == prefix || header[:len(prefix)] == "bearer ") {
		return header[len(prefix):]
	}
	return ""
}
