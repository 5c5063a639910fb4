package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"bazaar-be/internal/domain"
	"bazaar-be/internal/middleware"
	"bazaar-be/internal/service"
	apperrors "bazaar-be/pkg/errors"
	"bazaar-be/pkg/logger"

	"github.com/go-chi/chi/v5"
)

type PayoutHandler struct {
	payoutService *service.PayoutService
	logger        *logger.Logger
}

func NewPayoutHandler(payoutService *service.PayoutService, logger *logger.Logger) *PayoutHandler {
	return &PayoutHandler{
		payoutService: payoutService,
		logger:        logger,
	}
}

// GetMine handles GET /api/v1/payout/me
func (h *PayoutHandler) GetMine(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		respondError(w, apperrors.NewAuthenticationError("Authentication required"))
		return
	}

	payout, err := h.payoutService.GetMine(r.Context(), identity)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, payout)
}

// SubmitBankInfo handles POST /api/v1/payout/bank-info
func (h *PayoutHandler) SubmitBankInfo(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		respondError(w, apperrors.NewAuthenticationError("Authentication required"))
		return
	}

	var req domain.BankInfoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondInvalidBody(w)
		return
	}

	payout, err := h.payoutService.SubmitBankInfo(r.Context(), identity, &req)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, payout)
}

// GetForTeam handles GET /api/v1/admin/teams/{teamId}/payout
func (h *PayoutHandler) GetForTeam(w http.ResponseWriter, r *http.Request) {
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

	payout, err := h.payoutService.GetForTeam(r.Context(), identity, teamID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, payout)
}

// Update handles PUT /api/v1/admin/teams/{teamId}/payout
func (h *PayoutHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	var req domain.UpdatePayoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondInvalidBody(w)
		return
	}

	payout, err := h.payoutService.AdminUpdate(r.Context(), identity, teamID, &req)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, payout)
}

func teamIDParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "teamId")
	teamID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || teamID <= 0 {
		return 0, apperrors.NewInvalidInputError("Invalid team ID", nil)
	}
	return teamID, nil
}
