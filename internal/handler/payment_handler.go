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

type PaymentHandler struct {
	paymentService *service.PaymentService
	logger         *logger.Logger
}

func NewPaymentHandler(paymentService *service.PaymentService, logger *logger.Logger) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		logger:         logger,
	}
}

// SelectPlan handles POST /api/v1/payment/plan
func (h *PaymentHandler) SelectPlan(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		respondError(w, apperrors.NewAuthenticationError("Authentication required"))
		return
	}

	var req domain.SelectPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondInvalidBody(w)
		return
	}

	team, err := h.paymentService.SelectPlan(r.Context(), identity, &req)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, team)
}

// SelectMethod handles POST /api/v1/payment/method
func (h *PaymentHandler) SelectMethod(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		respondError(w, apperrors.NewAuthenticationError("Authentication required"))
		return
	}

	var req domain.SelectMethodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondInvalidBody(w)
		return
	}

	team, err := h.paymentService.SelectMethod(r.Context(), identity, &req)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, team)
}

// CheckStatus handles GET /api/v1/payment/status
func (h *PaymentHandler) CheckStatus(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		respondError(w, apperrors.NewAuthenticationError("Authentication required"))
		return
	}

	status, err := h.paymentService.CheckStatus(r.Context(), identity)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, status)
}

// SubmitProof handles POST /api/v1/payment/proof
func (h *PaymentHandler) SubmitProof(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		respondError(w, apperrors.NewAuthenticationError("Authentication required"))
		return
	}

	var req domain.ManualProofRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondInvalidBody(w)
		return
	}

	team, err := h.paymentService.SubmitManualProof(r.Context(), identity, &req)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, team)
}
