package handler

import (
	"encoding/json"
	"net/http"

	"bazaar-be/internal/domain"
	"bazaar-be/internal/middleware"
	"bazaar-be/internal/service"
	apperrors "bazaar-be/pkg/errors"
	"bazaar-be/pkg/logger"
)

type RegistrationHandler struct {
	registrationService *service.RegistrationService
	logger              *logger.Logger
}

func NewRegistrationHandler(registrationService *service.RegistrationService, logger *logger.Logger) *RegistrationHandler {
	return &RegistrationHandler{
		registrationService: registrationService,
		logger:              logger,
	}
}

// Register handles POST /api/v1/registration
func (h *RegistrationHandler) Register(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		respondError(w, apperrors.NewAuthenticationError("Authentication required"))
		return
	}

	var req domain.RegisterTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondInvalidBody(w)
		return
	}

	team, err := h.registrationService.Register(r.Context(), identity, &req)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, team)
}

// GetMyTeam handles GET /api/v1/registration/me
func (h *RegistrationHandler) GetMyTeam(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		respondError(w, apperrors.NewAuthenticationError("Authentication required"))
		return
	}

	team, err := h.registrationService.GetMyTeam(r.Context(), identity)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, team)
}

// Cancel handles DELETE /api/v1/registration
func (h *RegistrationHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		respondError(w, apperrors.NewAuthenticationError("Authentication required"))
		return
	}

	if err := h.registrationService.Cancel(r.Context(), identity); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Registration cancelled"})
}

// ListIngredients handles GET /api/v1/catalog/ingredients
func (h *RegistrationHandler) ListIngredients(w http.ResponseWriter, r *http.Request) {
	items, err := h.registrationService.ListIngredients(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"ingredients": items})
}

// ListBooths handles GET /api/v1/catalog/booths
func (h *RegistrationHandler) ListBooths(w http.ResponseWriter, r *http.Request) {
	items, err := h.registrationService.ListBooths(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"booths": items})
}
