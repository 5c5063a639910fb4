package service

import (
	"context"
	"testing"

	"bazaar-be/internal/domain"
	"bazaar-be/pkg/redis"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGetRegistrationSettings_Defaults(t *testing.T) {
	store := new(MockSettingsStore)
	svc := NewSettingsService(store, nil, zap.NewNop())

	// An empty settings store means registration stays closed
	store.On("GetMany", mock.Anything, settingsKeys).Return(map[string]string{}, nil)

	settings, err := svc.GetRegistrationSettings(context.Background())
	require.NoError(t, err)
	assert.False(t, settings.Open)
	assert.Equal(t, 1, settings.MinMembers)
	assert.Equal(t, 10, settings.MaxMembers)
	assert.Equal(t, int64(0), settings.Fee)
}

func TestGetRegistrationSettings_UnparsableValuesFallBack(t *testing.T) {
	store := new(MockSettingsStore)
	svc := NewSettingsService(store, nil, zap.NewNop())

	store.On("GetMany", mock.Anything, settingsKeys).Return(map[string]string{
		domain.SettingRegistrationOpen: "true",
		domain.SettingMinTeamMembers:   "two",
		domain.SettingMaxTeamMembers:   "4",
		domain.SettingRegistrationFee:  "100000",
	}, nil)

	settings, err := svc.GetRegistrationSettings(context.Background())
	require.NoError(t, err)
	assert.True(t, settings.Open)
	assert.Equal(t, 1, settings.MinMembers)
	assert.Equal(t, 4, settings.MaxMembers)
	assert.Equal(t, int64(100000), settings.Fee)
}

func TestGetRegistrationSettings_CachedSnapshot(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client, err := redis.NewClient("redis://"+mr.Addr(), "test", zap.NewNop())
	require.NoError(t, err)
	defer client.Close()

	store := new(MockSettingsStore)
	svc := NewSettingsService(store, client, zap.NewNop())

	store.On("GetMany", mock.Anything, settingsKeys).Return(openSettings(), nil).Once()

	first, err := svc.GetRegistrationSettings(context.Background())
	require.NoError(t, err)
	assert.True(t, first.Open)

	// Second read comes from the cache, not the store
	second, err := svc.GetRegistrationSettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	store.AssertNumberOfCalls(t, "GetMany", 1)

	// Cache expiry forces a fresh store read
	mr.FastForward(redis.TTLSettings)
	store.On("GetMany", mock.Anything, settingsKeys).Return(openSettings(), nil).Once()
	_, err = svc.GetRegistrationSettings(context.Background())
	require.NoError(t, err)
	store.AssertNumberOfCalls(t, "GetMany", 2)
}
