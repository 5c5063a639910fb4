package service

import (
	"context"
	"testing"

	"bazaar-be/internal/domain"
	apperrors "bazaar-be/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newPayoutService(teams *MockTeamStore, payouts *MockPayoutStore) *PayoutService {
	return NewPayoutService(teams, payouts, zap.NewNop())
}

func TestGetForTeam(t *testing.T) {
	teams := new(MockTeamStore)
	payouts := new(MockPayoutStore)
	svc := newPayoutService(teams, payouts)

	amount := int64(100000)
	teams.On("GetByID", mock.Anything, int64(3)).Return(&domain.Team{ID: 3}, nil)
	payouts.On("GetByTeamID", mock.Anything, int64(3)).Return(&domain.TeamPayout{
		TeamID:         3,
		RecordedAmount: &amount,
		Status:         domain.PayoutStatusProcessing,
	}, nil)

	result, err := svc.GetForTeam(context.Background(), admin("admin-1"), 3)
	require.NoError(t, err)
	require.NotNil(t, result.Breakdown)
	assert.Equal(t, int64(10000), result.Breakdown.OrganizerFee)
	assert.Equal(t, int64(90000), result.Breakdown.TakeHome)
}

func TestGetForTeam_RequiresAdmin(t *testing.T) {
	svc := newPayoutService(new(MockTeamStore), new(MockPayoutStore))

	_, err := svc.GetForTeam(context.Background(), participant("user-1"), 3)
	assertErrorType(t, err, apperrors.ErrorTypeUnauthorized)
}

func TestGetMine_NoRecordYet(t *testing.T) {
	teams := new(MockTeamStore)
	payouts := new(MockPayoutStore)
	svc := newPayoutService(teams, payouts)

	teams.On("GetByLeader", mock.Anything, "user-1").Return(&domain.Team{ID: 3}, nil)
	payouts.On("GetByTeamID", mock.Anything, int64(3)).Return(nil, nil)

	result, err := svc.GetMine(context.Background(), participant("user-1"))
	require.NoError(t, err)
	assert.Nil(t, result.Payout)
	assert.Nil(t, result.Breakdown)
}

func TestAdminUpdate_CreatesRowOnFirstEdit(t *testing.T) {
	teams := new(MockTeamStore)
	payouts := new(MockPayoutStore)
	svc := newPayoutService(teams, payouts)

	amount := int64(250000)
	teams.On("GetByID", mock.Anything, int64(3)).Return(&domain.Team{ID: 3}, nil)
	payouts.On("GetByTeamID", mock.Anything, int64(3)).Return(nil, nil)
	payouts.On("Upsert", mock.Anything, mock.MatchedBy(func(p *domain.TeamPayout) bool {
		return p.TeamID == 3 &&
			p.RecordedAmount != nil && *p.RecordedAmount == amount &&
			p.Status == domain.PayoutStatusProcessing &&
			p.UpdatedBy == "admin-1"
	})).Return(nil)

	result, err := svc.AdminUpdate(context.Background(), admin("admin-1"), 3, &domain.UpdatePayoutRequest{
		RecordedAmount: &amount,
		Status:         domain.PayoutStatusProcessing,
	})
	require.NoError(t, err)
	require.NotNil(t, result.Breakdown)
	assert.Equal(t, amount, result.Breakdown.OrganizerFee+result.Breakdown.TakeHome)
	payouts.AssertExpectations(t)
}

func TestAdminUpdate_Validation(t *testing.T) {
	teams := new(MockTeamStore)
	payouts := new(MockPayoutStore)
	svc := newPayoutService(teams, payouts)

	teams.On("GetByID", mock.Anything, int64(3)).Return(&domain.Team{ID: 3}, nil)

	negative := int64(-1)
	_, err := svc.AdminUpdate(context.Background(), admin("admin-1"), 3,
		&domain.UpdatePayoutRequest{RecordedAmount: &negative})
	assertErrorType(t, err, apperrors.ErrorTypeInvalidInput)

	_, err = svc.AdminUpdate(context.Background(), admin("admin-1"), 3,
		&domain.UpdatePayoutRequest{Status: "PAID"})
	assertErrorType(t, err, apperrors.ErrorTypeInvalidInput)

	payouts.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestAdminUpdate_TeamNotFound(t *testing.T) {
	teams := new(MockTeamStore)
	svc := newPayoutService(teams, new(MockPayoutStore))

	teams.On("GetByID", mock.Anything, int64(99)).Return(nil, nil)

	_, err := svc.AdminUpdate(context.Background(), admin("admin-1"), 99, &domain.UpdatePayoutRequest{})
	assertErrorType(t, err, apperrors.ErrorTypeNotFound)
}

func TestSubmitBankInfo(t *testing.T) {
	teams := new(MockTeamStore)
	payouts := new(MockPayoutStore)
	svc := newPayoutService(teams, payouts)

	teams.On("GetByLeader", mock.Anything, "user-1").Return(&domain.Team{ID: 3}, nil)
	payouts.On("GetByTeamID", mock.Anything, int64(3)).Return(nil, nil)
	payouts.On("Upsert", mock.Anything, mock.MatchedBy(func(p *domain.TeamPayout) bool {
		// First submission before any admin edit: the amount must stay
		// unrecorded (nil), never coerced to zero
		return p.TeamID == 3 &&
			p.RecordedAmount == nil &&
			p.BankAccountName == "Ploy J" &&
			p.BankAccountNumber == "123-456-789" &&
			p.Status == domain.PayoutStatusWaitingVerification
	})).Return(nil)

	result, err := svc.SubmitBankInfo(context.Background(), participant("user-1"), &domain.BankInfoRequest{
		BankAccountName:   "  Ploy J ",
		BankAccountNumber: " 123-456-789 ",
	})
	require.NoError(t, err)
	assert.Nil(t, result.Breakdown, "no breakdown until an amount is recorded")
	payouts.AssertExpectations(t)
}

func TestAdminUpdate_StatusOnlyKeepsAmountUnrecorded(t *testing.T) {
	teams := new(MockTeamStore)
	payouts := new(MockPayoutStore)
	svc := newPayoutService(teams, payouts)

	teams.On("GetByID", mock.Anything, int64(3)).Return(&domain.Team{ID: 3}, nil)
	payouts.On("GetByTeamID", mock.Anything, int64(3)).Return(nil, nil)
	payouts.On("Upsert", mock.Anything, mock.MatchedBy(func(p *domain.TeamPayout) bool {
		return p.TeamID == 3 &&
			p.RecordedAmount == nil &&
			p.Status == domain.PayoutStatusProcessing
	})).Return(nil)

	result, err := svc.AdminUpdate(context.Background(), admin("admin-1"), 3,
		&domain.UpdatePayoutRequest{Status: domain.PayoutStatusProcessing})
	require.NoError(t, err)
	assert.Nil(t, result.Breakdown)
	payouts.AssertExpectations(t)
}

func TestSubmitBankInfo_MissingFields(t *testing.T) {
	teams := new(MockTeamStore)
	svc := newPayoutService(teams, new(MockPayoutStore))

	teams.On("GetByLeader", mock.Anything, "user-1").Return(&domain.Team{ID: 3}, nil)

	_, err := svc.SubmitBankInfo(context.Background(), participant("user-1"),
		&domain.BankInfoRequest{BankAccountName: "Ploy"})
	assertErrorType(t, err, apperrors.ErrorTypeInvalidInput)
}
