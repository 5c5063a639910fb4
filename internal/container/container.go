package container

import (
	"context"
	"time"

	"bazaar-be/internal/config"
	"bazaar-be/internal/repository"
	"bazaar-be/internal/service"
	"bazaar-be/internal/service/paygate"
	"bazaar-be/pkg/database"
	"bazaar-be/pkg/logger"
	"bazaar-be/pkg/redis"
)

// Container holds all application dependencies
type Container struct {
	Config       *config.Config
	Logger       *logger.Logger
	DB           *database.PostgresDB
	RedisClient  *redis.Client
	Repositories *repository.Repositories
	Services     *service.Services
}

// New creates a new dependency injection container
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Container, error) {
	// Initialize database connection
	db, err := database.NewPostgresDB(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	// Initialize Redis client if Redis URL is configured
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		client, err := redis.NewClient(cfg.RedisURL, cfg.Environment, log.Logger)
		if err != nil {
			log.WithError(err).Warn("Failed to initialize Redis client, proceeding without caching")
		} else {
			redisClient = client
			log.Info("Redis client initialized successfully")
		}
	} else {
		log.Info("Redis URL not configured, proceeding without caching")
	}

	// Initialize repositories
	teamRepo := repository.NewTeamRepository(db)
	ingredientRepo := repository.NewIngredientRepository(db)
	boothRepo := repository.NewBoothRepository(db)
	payoutRepo := repository.NewPayoutRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	repos := &repository.Repositories{
		Teams:       teamRepo,
		Ingredients: ingredientRepo,
		Booths:      boothRepo,
		Payouts:     payoutRepo,
		Settings:    settingsRepo,
	}

	// Initialize services
	gateway := paygate.NewService(cfg.PaygateBaseURL, cfg.PaygateAPIKey,
		time.Duration(cfg.PaygateTimeout)*time.Second, log)
	settingsService := service.NewSettingsService(settingsRepo, redisClient, log.Logger)
	registrationService := service.NewRegistrationService(teamRepo, ingredientRepo, boothRepo,
		settingsService, redisClient, log.Logger)
	paymentService := service.NewPaymentService(teamRepo, gateway, settingsService,
		redisClient, log.Logger)
	payoutService := service.NewPayoutService(teamRepo, payoutRepo, log.Logger)

	services := &service.Services{
		Settings:     settingsService,
		Registration: registrationService,
		Payment:      paymentService,
		Payout:       payoutService,
	}

	return &Container{
		Config:       cfg,
		Logger:       log,
		DB:           db,
		RedisClient:  redisClient,
		Repositories: repos,
		Services:     services,
	}, nil
}

// GetConfig returns the configuration
func (c *Container) GetConfig() *config.Config {
	return c.Config
}

// GetLogger returns the logger
func (c *Container) GetLogger() *logger.Logger {
	return c.Logger
}

// GetRedisClient returns the Redis client (may be nil if not configured)
func (c *Container) GetRedisClient() *redis.Client {
	return c.RedisClient
}

// HasRedis returns true if Redis client is available
func (c *Container) HasRedis() bool {
	return c.RedisClient != nil
}

// GetServices returns the application services
func (c *Container) GetServices() *service.Services {
	return c.Services
}
