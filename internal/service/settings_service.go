package service

import (
	"context"
	"encoding/json"
	"strconv"

	"bazaar-be/internal/domain"
	"bazaar-be/internal/repository"
	"bazaar-be/pkg/redis"

	"go.uber.org/zap"
)

// SettingsService resolves the flat global settings store into a typed
// snapshot so the core receives explicit configuration instead of querying
// keys inline.
type SettingsService struct {
	settingsRepo repository.SettingsStore
	redis        *redis.Client
	logger       *zap.Logger
}

func NewSettingsService(settingsRepo repository.SettingsStore, redisClient *redis.Client, logger *zap.Logger) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
		redis:        redisClient,
		logger:       logger,
	}
}

// GetRegistrationSettings returns the current typed registration settings.
// Missing keys fall back to closed registration and permissive bounds; the
// snapshot is cached briefly since admins flip these at event time.
func (s *SettingsService) GetRegistrationSettings(ctx context.Context) (*domain.RegistrationSettings, error) {
	if s.redis != nil {
		cached, err := s.redis.Get(ctx, s.redis.KeyBuilder.KeySettings())
		if err == nil && cached != "" {
			var settings domain.RegistrationSettings
			if err := json.Unmarshal([]byte(cached), &settings); err == nil {
				return &settings, nil
			}
		}
	}

	values, err := s.settingsRepo.GetMany(ctx, []string{
		domain.SettingRegistrationOpen,
		domain.SettingMinTeamMembers,
		domain.SettingMaxTeamMembers,
		domain.SettingRegistrationFee,
	})
	if err != nil {
		return nil, err
	}

	settings := &domain.RegistrationSettings{
		Open:       values[domain.SettingRegistrationOpen] == "true",
		MinMembers: parseIntSetting(values, domain.SettingMinTeamMembers, 1),
		MaxMembers: parseIntSetting(values, domain.SettingMaxTeamMembers, 10),
		Fee:        int64(parseIntSetting(values, domain.SettingRegistrationFee, 0)),
	}

	if s.redis != nil {
		if data, err := json.Marshal(settings); err == nil {
			if err := s.redis.Set(ctx, s.redis.KeyBuilder.KeySettings(), string(data), redis.TTLSettings); err != nil {
				s.logger.Warn("Failed to cache registration settings", zap.Error(err))
			}
		}
	}

	return settings, nil
}

func parseIntSetting(values map[string]string, key string, fallback int) int {
	if raw, ok := values[key]; ok {
		if parsed, err := strconv.Atoi(raw); err == nil {
			return parsed
		}
	}
	return fallback
}
