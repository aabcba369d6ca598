// internal/matching/handlers.go

package matching

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/hellonanny/hellonanny-backend/internal/auth"
	"github.com/hellonanny/hellonanny-backend/internal/common/utils"
	"github.com/hellonanny/hellonanny-backend/internal/tokens"
)

type Handlers struct {
	service Service
}

func NewHandlers(service Service) *Handlers {
	return &Handlers{service: service}
}

// GenerateShortlist handles POST /api/v1/shortlists/generate.
// Hosts generate for their own profile; matchmakers name any host.
func (h *Handlers) GenerateShortlist(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req GenerateShortlistRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	hostID := req.HostID
	switch principal.Role {
	case auth.RoleHost:
		// A host can only generate for itself, whatever the body says.
		hostID = principal.ProfileID
	case auth.RoleMatchmaker:
		if hostID == "" {
			utils.RespondWithError(w, http.StatusBadRequest, "host_id is required")
			return
		}
	default:
		utils.RespondWithError(w, http.StatusForbidden, "Insufficient permissions")
		return
	}

	result, err := h.service.CreateShortlistForHost(r.Context(), hostID)
	if err != nil {
		if errors.Is(err, ErrHostNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Host not found")
			return
		}
		log.Printf("Shortlist generation failed for host %s: %v", hostID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate shortlist")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, result)
}

// ReviewShortlist handles GET /api/v1/shortlists/review?token=...
// Public; the CV review link token is the authorization.
func (h *Handlers) ReviewShortlist(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "token is required")
		return
	}

	review, err := h.service.ReviewShortlist(r.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, tokens.ErrInvalidToken):
			utils.RespondWithError(w, http.StatusUnauthorized, "Invalid or expired link")
		case errors.Is(err, ErrMatchNotFound), errors.Is(err, ErrNannyNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "Shortlist is no longer available")
		default:
			log.Printf("Shortlist review failed: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load shortlist")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, review)
}

// ProceedPass handles POST /api/v1/matches/proceed-pass. The endpoint is
// public; the link token is the authorization.
func (h *Handlers) ProceedPass(w http.ResponseWriter, r *http.Request) {
	var req ProceedPassRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	match, err := h.service.ProceedPass(r.Context(), req.Token, Decision(req.Choice))
	if err != nil {
		switch {
		case errors.Is(err, tokens.ErrInvalidToken):
			utils.RespondWithError(w, http.StatusUnauthorized, "Invalid or expired link")
		case errors.Is(err, ErrMatchNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "Match not found")
		case errors.Is(err, ErrMatchResolved):
			utils.RespondWithError(w, http.StatusConflict, "Match has already been resolved")
		case errors.Is(err, ErrInvalidChoice):
			utils.RespondWithError(w, http.StatusBadRequest, "Choice must be proceed or pass")
		default:
			log.Printf("Proceed/pass failed: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to record decision")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, match)
}

// GetMatch handles GET /api/v1/matches/{id}.
func (h *Handlers) GetMatch(w http.ResponseWriter, r *http.Request) {
	matchID := mux.Vars(r)["id"]

	match, err := h.service.GetMatch(r.Context(), matchID)
	if err != nil {
		if errors.Is(err, ErrMatchNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Match not found")
			return
		}
		log.Printf("Failed to fetch match %s: %v", matchID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch match")
		return
	}

	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	if !canViewMatch(principal, match) {
		utils.RespondWithError(w, http.StatusForbidden, "Insufficient permissions")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, match)
}

// ListCandidates handles GET /api/v1/matchmaker/hosts/{id}/candidates.
// Returns the full ranked eligibility run for inspection, without
// persisting anything.
func (h *Handlers) ListCandidates(w http.ResponseWriter, r *http.Request) {
	hostID := mux.Vars(r)["id"]

	ranked, err := h.service.EligibleNannies(r.Context(), hostID, EngineOptions{})
	if err != nil {
		if errors.Is(err, ErrHostNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Host not found")
			return
		}
		log.Printf("Candidate listing failed for host %s: %v", hostID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to list candidates")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"host_id":    hostID,
		"candidates": ranked,
	})
}

// CreateManualMatch handles POST /api/v1/matchmaker/matches.
func (h *Handlers) CreateManualMatch(w http.ResponseWriter, r *http.Request) {
	var req ManualMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	match, err := h.service.CreateManualMatch(r.Context(), req.HostID, req.NannyID)
	if err != nil {
		switch {
		case errors.Is(err, ErrHostNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "Host not found")
		case errors.Is(err, ErrNannyNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "Nanny not found")
		default:
			log.Printf("Manual match failed: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create match")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, match)
}

// OverrideScore handles PATCH /api/v1/matchmaker/matches/{id}/score.
func (h *Handlers) OverrideScore(w http.ResponseWriter, r *http.Request) {
	matchID := mux.Vars(r)["id"]

	var req OverrideScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	match, err := h.service.OverrideMatchScore(r.Context(), matchID, req.Score)
	if err != nil {
		if errors.Is(err, ErrMatchNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Match not found")
			return
		}
		log.Printf("Score override failed for match %s: %v", matchID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to override score")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, match)
}

func canViewMatch(p *auth.Principal, m *Match) bool {
	switch p.Role {
	case auth.RoleMatchmaker:
		return true
	case auth.RoleHost:
		return p.ProfileID == m.HostID
	case auth.RoleNanny:
		return p.ProfileID == m.NannyID
	}
	return false
}
