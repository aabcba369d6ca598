// internal/interviews/handlers.go
// The nanny-facing respond/select/decline endpoints accept either the
// interview link token or a logged-in nanny session, mirroring chat
// conversation access.

package interviews

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/hellonanny/hellonanny-backend/internal/auth"
	"github.com/hellonanny/hellonanny-backend/internal/common/utils"
	"github.com/hellonanny/hellonanny-backend/internal/matching"
	"github.com/hellonanny/hellonanny-backend/internal/tokens"
)

type Handlers struct {
	service Service
	auth    auth.Service
}

func NewHandlers(service Service, authService auth.Service) *Handlers {
	return &Handlers{service: service, auth: authService}
}

// Create handles POST /api/v1/interviews (session, host only).
func (h *Handlers) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CreateInterviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	request, err := h.service.CreateRequest(r.Context(), principal.ProfileID, req.MatchID, req.Slots)
	if err != nil {
		switch {
		case errors.Is(err, matching.ErrMatchNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "Match not found")
		case errors.Is(err, ErrNotMatchHost):
			utils.RespondWithError(w, http.StatusForbidden, "Match belongs to a different host")
		case errors.Is(err, ErrMatchNotProceeded):
			utils.RespondWithError(w, http.StatusConflict, "Both parties must proceed before requesting an interview")
		case errors.Is(err, ErrInterviewExists):
			utils.RespondWithError(w, http.StatusConflict, "An open interview request already exists for this match")
		case errors.Is(err, ErrInvalidSlots):
			utils.RespondWithError(w, http.StatusBadRequest, "Exactly five valid slots are required")
		default:
			log.Printf("Interview creation failed: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create interview request")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, request)
}

// Respond handles GET /api/v1/interviews/respond. Identified by
// ?token=... or a nanny session plus ?match_id=...
func (h *Handlers) Respond(w http.ResponseWriter, r *http.Request) {
	request, ok := h.resolveRequest(w, r, r.URL.Query().Get("token"), r.URL.Query().Get("match_id"))
	if !ok {
		return
	}

	view, err := h.service.SlotsForNanny(r.Context(), request)
	if err != nil {
		h.respondError(w, err, "Failed to load interview slots")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, view)
}

// SelectSlot handles POST /api/v1/interviews/select (token or session).
func (h *Handlers) SelectSlot(w http.ResponseWriter, r *http.Request) {
	var req SelectSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	request, ok := h.resolveRequest(w, r, req.Token, req.MatchID)
	if !ok {
		return
	}

	request, err := h.service.SelectSlot(r.Context(), request, req.Slot)
	if err != nil {
		if errors.Is(err, ErrSlotNotAvailable) {
			utils.RespondWithError(w, http.StatusBadRequest, "Selected slot is not available")
			return
		}
		h.respondError(w, err, "Failed to select slot")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, request)
}

// Decline handles POST /api/v1/interviews/decline (token or session).
func (h *Handlers) Decline(w http.ResponseWriter, r *http.Request) {
	var req DeclineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	request, ok := h.resolveRequest(w, r, req.Token, req.MatchID)
	if !ok {
		return
	}

	request, err := h.service.DeclineAll(r.Context(), request)
	if err != nil {
		h.respondError(w, err, "Failed to record response")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, request)
}

// resolveRequest authorizes via interview token or nanny session, in
// that order. It writes the error response itself on failure.
func (h *Handlers) resolveRequest(w http.ResponseWriter, r *http.Request, token, matchID string) (*InterviewRequest, bool) {
	if token != "" {
		request, err := h.service.RequestFromToken(r.Context(), token)
		if err != nil {
			h.respondError(w, err, "Failed to authorize interview access")
			return nil, false
		}
		return request, true
	}

	header := r.Header.Get("Authorization")
	if header == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "An interview link token or login is required")
		return nil, false
	}

	bearer := bearerToken(header)
	if bearer == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid authorization header format")
		return nil, false
	}

	principal, err := h.auth.ParseAccessToken(bearer)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid or expired token")
		return nil, false
	}
	if principal.Role != auth.RoleNanny {
		utils.RespondWithError(w, http.StatusForbidden, "Only the invited nanny can respond to an interview request")
		return nil, false
	}
	if matchID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "match_id is required when responding with a login")
		return nil, false
	}

	request, err := h.service.RequestForNanny(r.Context(), principal.ProfileID, matchID)
	if err != nil {
		h.respondError(w, err, "Failed to authorize interview access")
		return nil, false
	}
	return request, true
}

func (h *Handlers) respondError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, tokens.ErrInvalidToken):
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid or expired link")
	case errors.Is(err, ErrInterviewNotFound):
		utils.RespondWithError(w, http.StatusNotFound, "Interview request not found")
	case errors.Is(err, ErrNotInterviewNanny):
		utils.RespondWithError(w, http.StatusForbidden, "Interview request belongs to a different nanny")
	case errors.Is(err, ErrInterviewResolved):
		utils.RespondWithError(w, http.StatusConflict, "Interview request has already been answered")
	default:
		log.Printf("%s: %v", fallback, err)
		utils.RespondWithError(w, http.StatusInternalServerError, fallback)
	}
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && (header[:len(prefix)] == prefix || header[:len(prefix)] == "bearer ") {
		return header[len(prefix):]
	}
	return ""
}
