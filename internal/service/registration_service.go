package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"bazaar-be/internal/domain"
	"bazaar-be/internal/repository"
	apperrors "bazaar-be/pkg/errors"
	"bazaar-be/pkg/redis"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RegistrationService owns the registration transaction and cancellation,
// plus the catalog read surfaces participants browse before registering.
type RegistrationService struct {
	teamRepo       repository.TeamStore
	ingredientRepo repository.IngredientStore
	boothRepo      repository.BoothStore
	settings       *SettingsService
	redis          *redis.Client
	logger         *zap.Logger
}

func NewRegistrationService(
	teamRepo repository.TeamStore,
	ingredientRepo repository.IngredientStore,
	boothRepo repository.BoothStore,
	settings *SettingsService,
	redisClient *redis.Client,
	logger *zap.Logger,
) *RegistrationService {
	return &RegistrationService{
		teamRepo:       teamRepo,
		ingredientRepo: ingredientRepo,
		boothRepo:      boothRepo,
		settings:       settings,
		redis:          redisClient,
		logger:         logger,
	}
}

// Register creates exactly one team for the caller or fails with no partial
// state. Preconditions run in order: ownership, open window, size bounds;
// ingredient and booth admissibility are re-checked inside the repository
// transaction so capacity holds under concurrent registrants.
func (s *RegistrationService) Register(ctx context.Context, identity domain.Identity, req *domain.RegisterTeamRequest) (*domain.Team, error) {
	existing, err := s.teamRepo.GetByLeader(ctx, identity.UserID)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to check existing registration", err)
	}
	if existing != nil {
		return nil, apperrors.NewAlreadyRegisteredError("You have already registered a team")
	}

	settings, err := s.settings.GetRegistrationSettings(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to load registration settings", err)
	}
	if !settings.Open {
		return nil, apperrors.NewRegistrationClosedError("Registration is currently closed")
	}

	size := req.TeamSize()
	if size < settings.MinMembers || size > settings.MaxMembers {
		return nil, apperrors.NewSizeOutOfRangeError(
			fmt.Sprintf("Team size must be between %d and %d", settings.MinMembers, settings.MaxMembers),
			map[string]interface{}{"min": settings.MinMembers, "max": settings.MaxMembers, "size": size},
		)
	}

	if err := validateRegisterRequest(req); err != nil {
		return nil, err
	}

	members, err := json.Marshal(req.Members)
	if err != nil {
		return nil, apperrors.NewInvalidInputError("Invalid member list", nil)
	}

	now := time.Now()
	deadline := now.Add(domain.RegistrationHold)
	team := &domain.Team{
		Code:             uuid.NewString(),
		Name:             strings.TrimSpace(req.Name),
		LeaderUserID:     identity.UserID,
		LeaderName:       strings.TrimSpace(req.LeaderName),
		LeaderClass:      strings.TrimSpace(req.LeaderClass),
		LeaderExternalID: strings.TrimSpace(req.LeaderExternalID),
		Members:          members,
		Contact:          strings.TrimSpace(req.Contact),
		Category:         req.Category,
		IngredientID:     req.IngredientID,
		BoothLocationID:  req.BoothLocationID,
		PaymentStatus:    domain.PaymentStatusPending,
		PaymentMethod:    domain.PaymentMethodManualTransfer,
		PaymentDeadline:  &deadline,
	}

	created, err := s.teamRepo.Register(ctx, team, req.IngredientName)
	if err != nil {
		return nil, apperrors.FromError(err)
	}

	s.invalidateCatalogCaches(ctx)

	s.logger.Info("Team registered",
		zap.Int64("team_id", created.ID),
		zap.String("category", string(created.Category)))
	return created, nil
}

func validateRegisterRequest(req *domain.RegisterTeamRequest) *apperrors.AppError {
	if strings.TrimSpace(req.Name) == "" {
		return apperrors.NewInvalidInputError("Team name is required", nil)
	}
	if strings.TrimSpace(req.LeaderName) == "" {
		return apperrors.NewInvalidInputError("Leader name is required", nil)
	}
	if !req.Category.Valid() {
		return apperrors.NewInvalidInputError("Unknown team category", nil)
	}
	if req.Category == domain.CategoryFoodBeverage &&
		req.IngredientID == nil && strings.TrimSpace(req.IngredientName) == "" {
		return apperrors.NewInvalidInputError("Food teams must provide a main ingredient", nil)
	}
	return nil
}

// GetMyTeam returns the caller's registration
func (s *RegistrationService) GetMyTeam(ctx context.Context, identity domain.Identity) (*domain.Team, error) {
	team, err := s.teamRepo.GetByLeader(ctx, identity.UserID)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to load team", err)
	}
	if team == nil {
		return nil, apperrors.NewNotFoundError("You have no registered team")
	}
	return team, nil
}

// Cancel deletes the caller's team, releasing all resource claims immediately
func (s *RegistrationService) Cancel(ctx context.Context, identity domain.Identity) error {
	team, err := s.teamRepo.GetByLeader(ctx, identity.UserID)
	if err != nil {
		return apperrors.NewInternalError("Failed to load team", err)
	}
	if team == nil {
		return apperrors.NewNotFoundError("You have no registered team")
	}

	if err := s.teamRepo.Delete(ctx, team.ID); err != nil {
		return apperrors.NewInternalError("Failed to cancel registration", err)
	}

	s.invalidateCatalogCaches(ctx)

	s.logger.Info("Registration cancelled", zap.Int64("team_id", team.ID))
	return nil
}

// ListTeams returns every registration, admin only
func (s *RegistrationService) ListTeams(ctx context.Context, identity domain.Identity) ([]domain.Team, error) {
	if !identity.IsAdmin() {
		return nil, apperrors.NewUnauthorizedError("Admin role required")
	}
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to list teams", err)
	}
	return teams, nil
}

// ListIngredients returns the ingredient catalog with live availability.
// The list is cached briefly: registrations and cancellations invalidate it,
// and the short TTL bounds staleness from holds expiring by clock.
func (s *RegistrationService) ListIngredients(ctx context.Context) ([]domain.IngredientAvailability, error) {
	if s.redis != nil {
		cached, err := s.redis.Get(ctx, s.redis.KeyBuilder.KeyIngredientCatalog())
		if err == nil && cached != "" {
			var items []domain.IngredientAvailability
			if err := json.Unmarshal([]byte(cached), &items); err == nil {
				return items, nil
			}
		}
	}

	items, err := s.ingredientRepo.ListWithAvailability(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to list ingredients", err)
	}

	if s.redis != nil {
		s.cacheCatalog(ctx, s.redis.KeyBuilder.KeyIngredientCatalog(), items)
	}
	return items, nil
}

// ListBooths returns the booth catalog with live occupancy, cached the same
// way as the ingredient list
func (s *RegistrationService) ListBooths(ctx context.Context) ([]domain.BoothAvailability, error) {
	if s.redis != nil {
		cached, err := s.redis.Get(ctx, s.redis.KeyBuilder.KeyBoothCatalog())
		if err == nil && cached != "" {
			var items []domain.BoothAvailability
			if err := json.Unmarshal([]byte(cached), &items); err == nil {
				return items, nil
			}
		}
	}

	items, err := s.boothRepo.ListWithAvailability(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to list booth locations", err)
	}

	if s.redis != nil {
		s.cacheCatalog(ctx, s.redis.KeyBuilder.KeyBoothCatalog(), items)
	}
	return items, nil
}

// CreateIngredient adds a catalog ingredient, admin only
func (s *RegistrationService) CreateIngredient(ctx context.Context, identity domain.Identity, name string) (*domain.Ingredient, error) {
	if !identity.IsAdmin() {
		return nil, apperrors.NewUnauthorizedError("Admin role required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.NewInvalidInputError("Ingredient name is required", nil)
	}
	ing, err := s.ingredientRepo.Create(ctx, strings.TrimSpace(name))
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to create ingredient", err)
	}
	return ing, nil
}

// CreateBooth adds a catalog booth location, admin only
func (s *RegistrationService) CreateBooth(ctx context.Context, identity domain.Identity, name string) (*domain.BoothLocation, error) {
	if !identity.IsAdmin() {
		return nil, apperrors.NewUnauthorizedError("Admin role required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.NewInvalidInputError("Booth name is required", nil)
	}
	booth, err := s.boothRepo.Create(ctx, strings.TrimSpace(name))
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to create booth location", err)
	}
	return booth, nil
}

func (s *RegistrationService) cacheCatalog(ctx context.Context, key string, items interface{}) {
	data, err := json.Marshal(items)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, key, string(data), redis.TTLCatalog); err != nil {
		s.logger.Warn("Failed to cache catalog", zap.Error(err))
	}
}

// invalidateCatalogCaches drops both availability lists after a write that
// changes claim counts
func (s *RegistrationService) invalidateCatalogCaches(ctx context.Context) {
	if s.redis == nil {
		return
	}
	keys := []string{
		s.redis.KeyBuilder.KeyIngredientCatalog(),
		s.redis.KeyBuilder.KeyBoothCatalog(),
	}
	if err := s.redis.Delete(ctx, keys...); err != nil {
		s.logger.Warn("Failed to invalidate catalog caches", zap.Error(err))
	}
}
