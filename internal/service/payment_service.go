package service

import (
	"context"
	"time"

	"bazaar-be/internal/domain"
	"bazaar-be/internal/repository"
	apperrors "bazaar-be/pkg/errors"
	"bazaar-be/pkg/redis"

	"go.uber.org/zap"
)

// PaymentService governs the team payment lifecycle: plan and method
// selection, gateway polling, manual-proof submission and admin
// verification. Gateway calls never run inside a database transaction.
type PaymentService struct {
	teamRepo repository.TeamStore
	gateway  PaymentGateway
	settings *SettingsService
	redis    *redis.Client
	logger   *zap.Logger
}

func NewPaymentService(
	teamRepo repository.TeamStore,
	gateway PaymentGateway,
	settings *SettingsService,
	redisClient *redis.Client,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		teamRepo: teamRepo,
		gateway:  gateway,
		settings: settings,
		redis:    redisClient,
		logger:   logger,
	}
}

func (s *PaymentService) ownTeam(ctx context.Context, identity domain.Identity) (*domain.Team, error) {
	team, err := s.teamRepo.GetByLeader(ctx, identity.UserID)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to load team", err)
	}
	if team == nil {
		return nil, apperrors.NewUnauthorizedError("You have no registered team")
	}
	return team, nil
}

// SelectPlan chooses FULL or DOWN_PAYMENT. FULL is accepted immediately;
// DOWN_PAYMENT stamps acceptance only when the terms flag is set, otherwise
// the plan is stored with a nil acceptance time, which blocks method
// selection until the terms are accepted.
func (s *PaymentService) SelectPlan(ctx context.Context, identity domain.Identity, req *domain.SelectPlanRequest) (*domain.Team, error) {
	team, err := s.ownTeam(ctx, identity)
	if err != nil {
		return nil, err
	}
	if team.PaymentCompleted() {
		return nil, apperrors.NewAlreadyCompletedError("Payment has already been completed")
	}

	var acceptedAt *time.Time
	switch req.Plan {
	case domain.PaymentPlanFull:
		now := time.Now()
		acceptedAt = &now
	case domain.PaymentPlanDownPayment:
		if req.AcceptTerms {
			now := time.Now()
			acceptedAt = &now
		}
	default:
		return nil, apperrors.NewInvalidInputError("Unknown payment plan", nil)
	}

	if err := s.teamRepo.UpdatePlan(ctx, team.ID, req.Plan, acceptedAt); err != nil {
		return nil, apperrors.NewInternalError("Failed to update payment plan", err)
	}

	team.PaymentPlan = &req.Plan
	team.PlanAcceptedAt = acceptedAt
	return team, nil
}

// SelectMethod switches between the gateway and manual transfer while the
// payment is still pending. The gateway path creates a session before any
// write; a gateway failure aborts with no state change.
func (s *PaymentService) SelectMethod(ctx context.Context, identity domain.Identity, req *domain.SelectMethodRequest) (*domain.Team, error) {
	team, err := s.ownTeam(ctx, identity)
	if err != nil {
		return nil, err
	}
	if team.PaymentCompleted() {
		return nil, apperrors.NewAlreadyCompletedError("Payment has already been completed")
	}
	if team.PaymentPlan == nil {
		return nil, apperrors.NewInvalidInputError("Select a payment plan first", nil)
	}
	if *team.PaymentPlan == domain.PaymentPlanDownPayment && team.PlanAcceptedAt == nil {
		return nil, apperrors.NewInvalidInputError("Down payment requires accepting the terms first", nil)
	}

	switch req.Method {
	case domain.PaymentMethodGateway:
		return s.switchToGateway(ctx, team)
	case domain.PaymentMethodManualTransfer:
		if err := s.teamRepo.SetManualMethod(ctx, team.ID); err != nil {
			return nil, apperrors.NewInternalError("Failed to switch payment method", err)
		}
		team.PaymentMethod = domain.PaymentMethodManualTransfer
		team.GatewayTrxID = nil
		team.GatewayPaymentURL = nil
		team.PaymentDeadline = nil
		return team, nil
	default:
		return nil, apperrors.NewInvalidInputError("Unknown payment method", nil)
	}
}

func (s *PaymentService) switchToGateway(ctx context.Context, team *domain.Team) (*domain.Team, error) {
	settings, err := s.settings.GetRegistrationSettings(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to load registration settings", err)
	}
	if settings.Fee < domain.MinGatewayFee {
		return nil, apperrors.NewInvalidInputError("Configured registration fee is below the gateway minimum", nil)
	}

	session, err := s.gateway.CreateSession(ctx, settings.Fee, team.Code)
	if err != nil {
		s.logger.Error("Gateway session creation failed",
			zap.Int64("team_id", team.ID),
			zap.Error(err))
		return nil, apperrors.NewGatewayFailureError("Failed to create payment session", err)
	}

	deadline := time.Now().Add(domain.RegistrationHold)
	if session.ExpiredAt != nil {
		deadline = *session.ExpiredAt
	}

	if err := s.teamRepo.SetGatewaySession(ctx, team.ID, session.TrxID, session.PaymentURL, deadline); err != nil {
		return nil, apperrors.NewInternalError("Failed to store gateway session", err)
	}

	team.PaymentMethod = domain.PaymentMethodGateway
	team.GatewayTrxID = &session.TrxID
	team.GatewayPaymentURL = &session.PaymentURL
	team.PaymentDeadline = &deadline
	team.TransferAmount = nil
	team.TransferNote = nil
	team.TransferProofRef = nil
	team.TransferSubmittedAt = nil

	s.logger.Info("Gateway session created",
		zap.Int64("team_id", team.ID),
		zap.String("trx_id", session.TrxID))
	return team, nil
}

// CheckStatus polls the gateway for the team's transaction. SUCCESS
// transitions to PAID, EXPIRED surfaces a non-retryable failure without
// mutating state, anything else is still pending. Adapter errors are also
// reported as still pending.
func (s *PaymentService) CheckStatus(ctx context.Context, identity domain.Identity) (*domain.PaymentStatusResponse, error) {
	team, err := s.ownTeam(ctx, identity)
	if err != nil {
		return nil, err
	}
	if team.PaymentMethod != domain.PaymentMethodGateway {
		return nil, apperrors.NewInvalidInputError("Manual transfers require admin verification", nil)
	}
	if team.GatewayTrxID == nil {
		return nil, apperrors.NewInvalidInputError("No payment session has been created", nil)
	}

	if team.PaymentCompleted() {
		return s.statusResponse(team, "", "Payment already completed"), nil
	}

	trxID := *team.GatewayTrxID

	// Short-lived poll cache bounds pressure on the gateway; a cache hit
	// repeats the last non-terminal answer without mutation
	if s.redis != nil {
		cached, err := s.redis.Get(ctx, s.redis.KeyBuilder.KeyGatewayStatus(trxID))
		if err == nil && cached != "" {
			return s.statusResponse(team, cached, "Payment is still pending"), nil
		}
	}

	status, err := s.gateway.CheckStatus(ctx, trxID)
	if err != nil {
		s.logger.Warn("Gateway status check failed",
			zap.Int64("team_id", team.ID),
			zap.Error(err))
		return s.statusResponse(team, "", "Payment status could not be confirmed yet"), nil
	}

	switch status {
	case GatewayStatusSuccess:
		paidAt := time.Now()
		if err := s.teamRepo.MarkPaid(ctx, team.ID, paidAt); err != nil {
			return nil, apperrors.NewInternalError("Failed to record payment", err)
		}
		team.PaymentStatus = domain.PaymentStatusPaid
		team.PaidAt = &paidAt
		s.logger.Info("Payment confirmed", zap.Int64("team_id", team.ID))
		return s.statusResponse(team, status, "Payment confirmed"), nil

	case GatewayStatusExpired:
		return nil, apperrors.NewGatewayFailureError(
			"Payment session expired, please restart registration or contact the organizer", nil)

	default:
		if s.redis != nil {
			if err := s.redis.Set(ctx, s.redis.KeyBuilder.KeyGatewayStatus(trxID), status, redis.TTLGatewayStatus); err != nil {
				s.logger.Warn("Failed to cache gateway status", zap.Error(err))
			}
		}
		return s.statusResponse(team, status, "Payment is still pending"), nil
	}
}

func (s *PaymentService) statusResponse(team *domain.Team, gatewayStatus, message string) *domain.PaymentStatusResponse {
	resp := &domain.PaymentStatusResponse{
		Status:        team.PaymentStatus,
		GatewayStatus: gatewayStatus,
		Deadline:      team.PaymentDeadline,
		PaidAt:        team.PaidAt,
		Message:       message,
	}
	if team.GatewayPaymentURL != nil {
		resp.PaymentURL = *team.GatewayPaymentURL
	}
	return resp
}

// SubmitManualProof stores a bank-transfer proof and forces the team back to
// PENDING with the deadline cleared; manual transfers are not time-boxed
func (s *PaymentService) SubmitManualProof(ctx context.Context, identity domain.Identity, req *domain.ManualProofRequest) (*domain.Team, error) {
	team, err := s.ownTeam(ctx, identity)
	if err != nil {
		return nil, err
	}
	if team.PaymentStatus == domain.PaymentStatusVerified {
		return nil, apperrors.NewAlreadyCompletedError("Payment has already been verified")
	}
	if team.PaymentMethod != domain.PaymentMethodManualTransfer {
		return nil, apperrors.NewInvalidInputError("Proof submission is only available for manual transfers", nil)
	}
	if req.Amount <= 0 {
		return nil, apperrors.NewInvalidInputError("Transfer amount must be a positive number", nil)
	}
	if req.ProofRef == "" {
		return nil, apperrors.NewInvalidInputError("Payment proof is required", nil)
	}

	if s.redis != nil {
		acquired, err := s.redis.SetNX(ctx, s.redis.KeyBuilder.KeyProofLock(team.ID), "1", redis.TTLProofLock)
		if err == nil && !acquired {
			return nil, apperrors.NewInvalidInputError("Proof already submitted, please wait a moment", nil)
		}
	}

	submittedAt := time.Now()
	if err := s.teamRepo.SaveManualProof(ctx, team.ID, req.Amount, req.Note, req.ProofRef, submittedAt); err != nil {
		return nil, apperrors.NewInternalError("Failed to save payment proof", err)
	}

	team.PaymentStatus = domain.PaymentStatusPending
	team.PaymentDeadline = nil
	team.TransferAmount = &req.Amount
	team.TransferNote = &req.Note
	team.TransferProofRef = &req.ProofRef
	team.TransferSubmittedAt = &submittedAt

	s.logger.Info("Manual payment proof submitted",
		zap.Int64("team_id", team.ID),
		zap.Int64("amount", req.Amount))
	return team, nil
}

// Verify is the admin override: it sets VERIFIED unconditionally, bypassing
// every other state-machine precondition
func (s *PaymentService) Verify(ctx context.Context, identity domain.Identity, teamID int64) (*domain.Team, error) {
	if !identity.IsAdmin() {
		return nil, apperrors.NewUnauthorizedError("Admin role required")
	}

	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to load team", err)
	}
	if team == nil {
		return nil, apperrors.NewNotFoundError("Team not found")
	}

	verifiedAt := time.Now()
	if err := s.teamRepo.MarkVerified(ctx, teamID, verifiedAt); err != nil {
		return nil, apperrors.NewInternalError("Failed to verify payment", err)
	}

	team.PaymentStatus = domain.PaymentStatusVerified
	team.VerifiedAt = &verifiedAt

	s.logger.Info("Payment verified by admin",
		zap.Int64("team_id", teamID),
		zap.String("admin_id", identity.UserID))
	return team, nil
}
