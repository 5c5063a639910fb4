package repository

import (
	"context"
	"time"

	"bazaar-be/internal/domain"
)

// TeamStore defines the interface for team data operations
type TeamStore interface {
	// Register atomically creates a team together with its resource claims.
	// Capacity checks and the insert run inside one database transaction.
	Register(ctx context.Context, team *domain.Team, ingredientName string) (*domain.Team, error)

	// GetByID retrieves a team by ID, nil when absent
	GetByID(ctx context.Context, id int64) (*domain.Team, error)

	// GetByLeader retrieves the team owned by a user, nil when absent
	GetByLeader(ctx context.Context, userID string) (*domain.Team, error)

	// List retrieves all teams ordered by creation time
	List(ctx context.Context) ([]domain.Team, error)

	// UpdatePlan stores the chosen payment plan and its acceptance time
	UpdatePlan(ctx context.Context, teamID int64, plan domain.PaymentPlan, acceptedAt *time.Time) error

	// SetGatewaySession switches the team to the gateway method and stores
	// the session fields, clearing any manual-transfer fields
	SetGatewaySession(ctx context.Context, teamID int64, trxID, paymentURL string, deadline time.Time) error

	// SetManualMethod switches the team to manual transfer, clearing the
	// gateway session fields and the deadline
	SetManualMethod(ctx context.Context, teamID int64) error

	// MarkPaid transitions the team to PAID
	MarkPaid(ctx context.Context, teamID int64, paidAt time.Time) error

	// SaveManualProof stores the proof fields and resets the team to PENDING
	SaveManualProof(ctx context.Context, teamID int64, amount int64, note, proofRef string, submittedAt time.Time) error

	// MarkVerified transitions the team to VERIFIED regardless of prior status
	MarkVerified(ctx context.Context, teamID int64, verifiedAt time.Time) error

	// Delete removes the team row, releasing all resource claims
	Delete(ctx context.Context, teamID int64) error
}

// IngredientStore defines the interface for ingredient catalog operations
type IngredientStore interface {
	// GetByID retrieves an ingredient by ID, nil when absent
	GetByID(ctx context.Context, id int64) (*domain.Ingredient, error)

	// Create creates an ingredient record
	Create(ctx context.Context, name string) (*domain.Ingredient, error)

	// ListWithAvailability retrieves all ingredients with live claim counts
	ListWithAvailability(ctx context.Context) ([]domain.IngredientAvailability, error)
}

// BoothStore defines the interface for booth location catalog operations
type BoothStore interface {
	// GetByID retrieves a booth location by ID, nil when absent
	GetByID(ctx context.Context, id int64) (*domain.BoothLocation, error)

	// Create creates a booth location record
	Create(ctx context.Context, name string) (*domain.BoothLocation, error)

	// ListWithAvailability retrieves all booths with live occupancy
	ListWithAvailability(ctx context.Context) ([]domain.BoothAvailability, error)
}

// PayoutStore defines the interface for team payout records
type PayoutStore interface {
	// GetByTeamID retrieves the payout record for a team, nil when absent
	GetByTeamID(ctx context.Context, teamID int64) (*domain.TeamPayout, error)

	// Upsert creates or updates the single payout row for a team
	Upsert(ctx context.Context, payout *domain.TeamPayout) error
}

// SettingsStore reads the externally-owned global key/value settings
type SettingsStore interface {
	// Get returns the value for a key, nil when the key is absent
	Get(ctx context.Context, key string) (*string, error)

	// GetMany returns the values for the given keys; absent keys are omitted
	GetMany(ctx context.Context, keys []string) (map[string]string, error)
}

// Repositories aggregates all repository interfaces
type Repositories struct {
	Teams       TeamStore
	Ingredients IngredientStore
	Booths      BoothStore
	Payouts     PayoutStore
	Settings    SettingsStore
}
