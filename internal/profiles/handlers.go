// internal/profiles/handlers.go

package profiles

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/hellonanny/hellonanny-backend/internal/auth"
	"github.com/hellonanny/hellonanny-backend/internal/common/utils"
)

type Handlers struct {
	service Service
}

func NewHandlers(service Service) *Handlers {
	return &Handlers{service: service}
}

// CreateHost handles POST /api/v1/profiles/hosts. Public: profile
// creation is the first onboarding step, before an account exists.
func (h *Handlers) CreateHost(w http.ResponseWriter, r *http.Request) {
	var req HostBasicInfo
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	host, err := h.service.CreateHost(r.Context(), req)
	if err != nil {
		log.Printf("Host profile creation failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create profile")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, host)
}

// CreateNanny handles POST /api/v1/profiles/nannies.
func (h *Handlers) CreateNanny(w http.ResponseWriter, r *http.Request) {
	var req NannyBasicInfo
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	nanny, err := h.service.CreateNanny(r.Context(), req)
	if err != nil {
		log.Printf("Nanny profile creation failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create profile")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, nanny)
}

// Me handles GET /api/v1/profiles/me.
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	switch principal.Role {
	case auth.RoleHost:
		host, err := h.service.GetHost(r.Context(), principal.ProfileID)
		if err != nil {
			h.respondProfileError(w, err)
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, host)
	case auth.RoleNanny:
		nanny, err := h.service.GetNanny(r.Context(), principal.ProfileID)
		if err != nil {
			h.respondProfileError(w, err)
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, nanny)
	default:
		utils.RespondWithError(w, http.StatusNotFound, "No profile for this account")
	}
}

// SaveHostSegment handles PUT /api/v1/profiles/hosts/{id}/segments/{segment}.
func (h *Handlers) SaveHostSegment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	hostID, segment := vars["id"], vars["segment"]

	if !h.authorizeProfileWrite(w, r, auth.RoleHost, hostID) {
		return
	}

	fields, ok := h.decodeHostSegment(w, r, segment)
	if !ok {
		return
	}

	host, err := h.service.SaveHostSegment(r.Context(), hostID, segment, fields)
	if err != nil {
		h.respondProfileError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, host)
}

// SaveNannySegment handles PUT /api/v1/profiles/nannies/{id}/segments/{segment}.
func (h *Handlers) SaveNannySegment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	nannyID, segment := vars["id"], vars["segment"]

	if !h.authorizeProfileWrite(w, r, auth.RoleNanny, nannyID) {
		return
	}

	fields, ok := h.decodeNannySegment(w, r, segment)
	if !ok {
		return
	}

	nanny, err := h.service.SaveNannySegment(r.Context(), nannyID, segment, fields)
	if err != nil {
		h.respondProfileError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, nanny)
}

// UploadCV handles POST /api/v1/profiles/nannies/{id}/cv with a
// multipart "cv" file field.
func (h *Handlers) UploadCV(w http.ResponseWriter, r *http.Request) {
	nannyID := mux.Vars(r)["id"]

	if !h.authorizeProfileWrite(w, r, auth.RoleNanny, nannyID) {
		return
	}

	if err := r.ParseMultipartForm(MaxCVSize); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid upload: file must be under 10 MB")
		return
	}

	file, header, err := r.FormFile("cv")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "cv file field is required")
		return
	}
	defer file.Close()

	nanny, err := h.service.UploadCV(r.Context(), nannyID, header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		if errors.Is(err, ErrNannyNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Nanny profile not found")
			return
		}
		log.Printf("CV upload failed for nanny %s: %v", nannyID, err)
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to store CV")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, nanny)
}

// authorizeProfileWrite allows the profile owner or a matchmaker.
func (h *Handlers) authorizeProfileWrite(w http.ResponseWriter, r *http.Request, ownerRole auth.Role, profileID string) bool {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return false
	}
	if principal.Role == auth.RoleMatchmaker {
		return true
	}
	if principal.Role == ownerRole && principal.ProfileID == profileID {
		return true
	}
	utils.RespondWithError(w, http.StatusForbidden, "Insufficient permissions")
	return false
}

func (h *Handlers) decodeHostSegment(w http.ResponseWriter, r *http.Request, segment string) (map[string]interface{}, bool) {
	switch segment {
	case SegmentCare:
		var req HostCareNeeds
		return decodeSegment(w, r, &req, func() map[string]interface{} { return req.Fields() })
	case SegmentSkills:
		var req HostSkillNeeds
		return decodeSegment(w, r, &req, func() map[string]interface{} { return req.Fields() })
	case SegmentValues:
		var req HostValues
		return decodeSegment(w, r, &req, func() map[string]interface{} { return req.Fields() })
	}
	utils.RespondWithError(w, http.StatusNotFound, "Unknown onboarding segment")
	return nil, false
}

func (h *Handlers) decodeNannySegment(w http.ResponseWriter, r *http.Request, segment string) (map[string]interface{}, bool) {
	switch segment {
	case SegmentAvailability:
		var req NannyAvailability
		return decodeSegment(w, r, &req, func() map[string]interface{} { return req.Fields() })
	case SegmentExperience:
		var req NannyExperience
		return decodeSegment(w, r, &req, func() map[string]interface{} { return req.Fields() })
	case SegmentValues:
		var req NannyValues
		return decodeSegment(w, r, &req, func() map[string]interface{} { return req.Fields() })
	}
	utils.RespondWithError(w, http.StatusNotFound, "Unknown onboarding segment")
	return nil, false
}

func decodeSegment(w http.ResponseWriter, r *http.Request, dst interface{}, fields func() map[string]interface{}) (map[string]interface{}, bool) {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}
	if err := utils.ValidateStruct(dst); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return fields(), true
}

func (h *Handlers) respondProfileError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrHostNotFound):
		utils.RespondWithError(w, http.StatusNotFound, "Host profile not found")
	case errors.Is(err, ErrNannyNotFound):
		utils.RespondWithError(w, http.StatusNotFound, "Nanny profile not found")
	case errors.Is(err, ErrUnknownSegment):
		utils.RespondWithError(w, http.StatusNotFound, "Unknown onboarding segment")
	default:
		log.Printf("Profile operation failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save profile")
	}
}
