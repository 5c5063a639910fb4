package service

import (
	"context"
	"strings"

	"bazaar-be/internal/domain"
	"bazaar-be/internal/repository"
	apperrors "bazaar-be/pkg/errors"

	"go.uber.org/zap"
)

// PayoutService exposes the payout record and its computed breakdown to the
// admin and participant surfaces. The breakdown is a pure function of the
// admin-recorded settled amount; the status field is admin-driven only.
type PayoutService struct {
	teamRepo   repository.TeamStore
	payoutRepo repository.PayoutStore
	logger     *zap.Logger
}

func NewPayoutService(teamRepo repository.TeamStore, payoutRepo repository.PayoutStore, logger *zap.Logger) *PayoutService {
	return &PayoutService{
		teamRepo:   teamRepo,
		payoutRepo: payoutRepo,
		logger:     logger,
	}
}

// view builds the payout view, attaching the breakdown when an amount has
// been recorded
func view(payout *domain.TeamPayout) *domain.PayoutView {
	v := &domain.PayoutView{Payout: payout}
	if payout != nil && payout.RecordedAmount != nil {
		breakdown := domain.CalculatePayout(*payout.RecordedAmount)
		v.Breakdown = &breakdown
	}
	return v
}

func defaultPayout(teamID int64) *domain.TeamPayout {
	return &domain.TeamPayout{
		TeamID: teamID,
		Status: domain.PayoutStatusWaitingVerification,
	}
}

// GetForTeam returns the payout view for a team, admin only
func (s *PayoutService) GetForTeam(ctx context.Context, identity domain.Identity, teamID int64) (*domain.PayoutView, error) {
	if !identity.IsAdmin() {
		return nil, apperrors.NewUnauthorizedError("Admin role required")
	}
	if team, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
		return nil, apperrors.NewInternalError("Failed to load team", err)
	} else if team == nil {
		return nil, apperrors.NewNotFoundError("Team not found")
	}

	payout, err := s.payoutRepo.GetByTeamID(ctx, teamID)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to load payout", err)
	}
	return view(payout), nil
}

// GetMine returns the payout view for the caller's own team
func (s *PayoutService) GetMine(ctx context.Context, identity domain.Identity) (*domain.PayoutView, error) {
	team, err := s.teamRepo.GetByLeader(ctx, identity.UserID)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to load team", err)
	}
	if team == nil {
		return nil, apperrors.NewUnauthorizedError("You have no registered team")
	}

	payout, err := s.payoutRepo.GetByTeamID(ctx, team.ID)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to load payout", err)
	}
	return view(payout), nil
}

// AdminUpdate records settlement figures for a team, creating the payout row
// on first edit
func (s *PayoutService) AdminUpdate(ctx context.Context, identity domain.Identity, teamID int64, req *domain.UpdatePayoutRequest) (*domain.PayoutView, error) {
	if !identity.IsAdmin() {
		return nil, apperrors.NewUnauthorizedError("Admin role required")
	}
	if team, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
		return nil, apperrors.NewInternalError("Failed to load team", err)
	} else if team == nil {
		return nil, apperrors.NewNotFoundError("Team not found")
	}

	if req.RecordedAmount != nil && *req.RecordedAmount < 0 {
		return nil, apperrors.NewInvalidInputError("Recorded amount must not be negative", nil)
	}
	if req.Status != "" && !req.Status.Valid() {
		return nil, apperrors.NewInvalidInputError("Unknown payout status", nil)
	}

	payout, err := s.payoutRepo.GetByTeamID(ctx, teamID)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to load payout", err)
	}
	if payout == nil {
		payout = defaultPayout(teamID)
	}

	if req.RecordedAmount != nil {
		payout.RecordedAmount = req.RecordedAmount
	}
	if req.Status != "" {
		payout.Status = req.Status
	}
	if req.AdminNotes != nil {
		payout.AdminNotes = *req.AdminNotes
	}
	payout.UpdatedBy = identity.UserID

	if err := s.payoutRepo.Upsert(ctx, payout); err != nil {
		return nil, apperrors.NewInternalError("Failed to save payout", err)
	}

	s.logger.Info("Payout updated",
		zap.Int64("team_id", teamID),
		zap.String("admin_id", identity.UserID))
	return view(payout), nil
}

// SubmitBankInfo records the participant's payout delivery details, creating
// the payout row on first submission
func (s *PayoutService) SubmitBankInfo(ctx context.Context, identity domain.Identity, req *domain.BankInfoRequest) (*domain.PayoutView, error) {
	team, err := s.teamRepo.GetByLeader(ctx, identity.UserID)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to load team", err)
	}
	if team == nil {
		return nil, apperrors.NewUnauthorizedError("You have no registered team")
	}

	if strings.TrimSpace(req.BankAccountName) == "" || strings.TrimSpace(req.BankAccountNumber) == "" {
		return nil, apperrors.NewInvalidInputError("Bank account name and number are required", nil)
	}

	payout, err := s.payoutRepo.GetByTeamID(ctx, team.ID)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to load payout", err)
	}
	if payout == nil {
		payout = defaultPayout(team.ID)
	}

	payout.BankAccountName = strings.TrimSpace(req.BankAccountName)
	payout.BankAccountNumber = strings.TrimSpace(req.BankAccountNumber)
	payout.ParticipantNotes = req.ParticipantNotes
	payout.UpdatedBy = identity.UserID

	if err := s.payoutRepo.Upsert(ctx, payout); err != nil {
		return nil, apperrors.NewInternalError("Failed to save bank info", err)
	}

	return view(payout), nil
}
