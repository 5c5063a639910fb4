package service

import (
	"context"
	"time"

	"bazaar-be/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockTeamStore is a testify mock for the team repository
type MockTeamStore struct {
	mock.Mock
}

func (m *MockTeamStore) Register(ctx context.Context, team *domain.Team, ingredientName string) (*domain.Team, error) {
	args := m.Called(ctx, team, ingredientName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Team), args.Error(1)
}

func (m *MockTeamStore) GetByID(ctx context.Context, id int64) (*domain.Team, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Team), args.Error(1)
}

func (m *MockTeamStore) GetByLeader(ctx context.Context, userID string) (*domain.Team, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Team), args.Error(1)
}

func (m *MockTeamStore) List(ctx context.Context) ([]domain.Team, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Team), args.Error(1)
}

func (m *MockTeamStore) UpdatePlan(ctx context.Context, teamID int64, plan domain.PaymentPlan, acceptedAt *time.Time) error {
	args := m.Called(ctx, teamID, plan, acceptedAt)
	return args.Error(0)
}

func (m *MockTeamStore) SetGatewaySession(ctx context.Context, teamID int64, trxID, paymentURL string, deadline time.Time) error {
	args := m.Called(ctx, teamID, trxID, paymentURL, deadline)
	return args.Error(0)
}

func (m *MockTeamStore) SetManualMethod(ctx context.Context, teamID int64) error {
	args := m.Called(ctx, teamID)
	return args.Error(0)
}

func (m *MockTeamStore) MarkPaid(ctx context.Context, teamID int64, paidAt time.Time) error {
	args := m.Called(ctx, teamID, paidAt)
	return args.Error(0)
}

func (m *MockTeamStore) SaveManualProof(ctx context.Context, teamID int64, amount int64, note, proofRef string, submittedAt time.Time) error {
	args := m.Called(ctx, teamID, amount, note, proofRef, submittedAt)
	return args.Error(0)
}

func (m *MockTeamStore) MarkVerified(ctx context.Context, teamID int64, verifiedAt time.Time) error {
	args := m.Called(ctx, teamID, verifiedAt)
	return args.Error(0)
}

func (m *MockTeamStore) Delete(ctx context.Context, teamID int64) error {
	args := m.Called(ctx, teamID)
	return args.Error(0)
}

// MockIngredientStore is a testify mock for the ingredient catalog
type MockIngredientStore struct {
	mock.Mock
}

func (m *MockIngredientStore) GetByID(ctx context.Context, id int64) (*domain.Ingredient, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ingredient), args.Error(1)
}

func (m *MockIngredientStore) Create(ctx context.Context, name string) (*domain.Ingredient, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ingredient), args.Error(1)
}

func (m *MockIngredientStore) ListWithAvailability(ctx context.Context) ([]domain.IngredientAvailability, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.IngredientAvailability), args.Error(1)
}

// MockBoothStore is a testify mock for the booth catalog
type MockBoothStore struct {
	mock.Mock
}

func (m *MockBoothStore) GetByID(ctx context.Context, id int64) (*domain.BoothLocation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BoothLocation), args.Error(1)
}

func (m *MockBoothStore) Create(ctx context.Context, name string) (*domain.BoothLocation, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BoothLocation), args.Error(1)
}

func (m *MockBoothStore) ListWithAvailability(ctx context.Context) ([]domain.BoothAvailability, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BoothAvailability), args.Error(1)
}

// MockPayoutStore is a testify mock for the payout repository
type MockPayoutStore struct {
	mock.Mock
}

func (m *MockPayoutStore) GetByTeamID(ctx context.Context, teamID int64) (*domain.TeamPayout, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TeamPayout), args.Error(1)
}

func (m *MockPayoutStore) Upsert(ctx context.Context, payout *domain.TeamPayout) error {
	args := m.Called(ctx, payout)
	return args.Error(0)
}

// MockSettingsStore is a testify mock for the global settings store
type MockSettingsStore struct {
	mock.Mock
}

func (m *MockSettingsStore) Get(ctx context.Context, key string) (*string, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*string), args.Error(1)
}

func (m *MockSettingsStore) GetMany(ctx context.Context, keys []string) (map[string]string, error) {
	args := m.Called(ctx, keys)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

// MockPaymentGateway is a testify mock for the payment provider adapter
type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) CreateSession(ctx context.Context, amount int64, merchantRef string) (*GatewaySession, error) {
	args := m.Called(ctx, amount, merchantRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*GatewaySession), args.Error(1)
}

func (m *MockPaymentGateway) CheckStatus(ctx context.Context, trxID string) (string, error) {
	args := m.Called(ctx, trxID)
	return args.String(0), args.Error(1)
}
