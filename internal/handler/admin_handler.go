package handler

import (
	"encoding/json"
	"net/http"

	"bazaar-be/internal/middleware"
	"bazaar-be/internal/service"
	apperrors "bazaar-be/pkg/errors"
	"bazaar-be/pkg/logger"
)

type AdminHandler struct {
	registrationService *service.RegistrationService
	paymentService      *service.PaymentService
	logger              *logger.Logger
}

func NewAdminHandler(registrationService *service.RegistrationService, paymentService *service.PaymentService, logger *logger.Logger) *AdminHandler {
	return &AdminHandler{
		registrationService: registrationService,
		paymentService:      paymentService,
		logger:              logger,
	}
}

// ListTeams handles GET /api/v1/admin/teams
func (h *AdminHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		respondError(w, apperrors.NewAuthenticationError("Authentication required"))
		return
	}

	teams, err := h.registrationService.ListTeams(r.Context(), identity)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"teams": teams})
}

// VerifyPayment handles POST /api/v1/admin/teams/{teamId}/verify
func (h *AdminHandler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		respondError(w, apperrors.NewAuthenticationError("Authentication required"))
		return
	}

	teamID, err := teamIDParam(r)
	if err != nil {
		respondError(w, err)
		return
	}

	team, err := h.paymentService.Verify(r.Context(), identity, teamID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, team)
}

type createCatalogRequest struct {
	Name string `json:"name"`
}

// CreateIngredient handles POST /api/v1/admin/ingredients
func (h *AdminHandler) CreateIngredient(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		respondError(w, apperrors.NewAuthenticationError("Authentication required"))
		return
	}

	var req createCatalogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondInvalidBody(w)
		return
	}

	ingredient, err := h.registrationService.CreateIngredient(r.Context(), identity, req.Name)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, ingredient)
}

// CreateBooth handles POST /api/v1/admin/booths
func (h *AdminHandler) CreateBooth(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		respondError(w, apperrors.NewAuthenticationError("Authentication required"))
		return
	}

	var req createCatalogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondInvalidBody(w)
		return
	}

	booth, err := h.registrationService.CreateBooth(r.Context(), identity, req.Name)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, booth)
}
