package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *Client) {
	// Create a miniredis server
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	// Create client with test redis
	client, err := NewClient("redis://"+mr.Addr(), "test", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return mr, client
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name        string
		url         string
		expectError bool
	}{
		{
			name:        "Invalid URL",
			url:         "invalid://url",
			expectError: true,
		},
		{
			name:        "Empty URL",
			url:         "",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.url, "test", zap.NewNop())
			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, client)
			}
		})
	}
}

func TestClient_SetAndGet(t *testing.T) {
	_, client := setupTestRedis(t)
	ctx := context.Background()

	key := client.KeyBuilder.KeyGatewayStatus("TRX-1")
	err := client.Set(ctx, key, "PENDING", TTLGatewayStatus)
	require.NoError(t, err)

	val, err := client.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "PENDING", val)
}

func TestClient_GetMissing(t *testing.T) {
	_, client := setupTestRedis(t)

	_, err := client.Get(context.Background(), client.KeyBuilder.KeySettings())
	assert.True(t, IsNil(err))
}

func TestClient_SetNX(t *testing.T) {
	_, client := setupTestRedis(t)
	ctx := context.Background()

	key := client.KeyBuilder.KeyProofLock(9)

	ok, err := client.SetNX(ctx, key, "1", TTLProofLock)
	require.NoError(t, err)
	assert.True(t, ok, "first acquisition should succeed")

	ok, err = client.SetNX(ctx, key, "1", TTLProofLock)
	require.NoError(t, err)
	assert.False(t, ok, "second acquisition within TTL should fail")
}

func TestClient_SetNXExpiry(t *testing.T) {
	mr, client := setupTestRedis(t)
	ctx := context.Background()

	key := client.KeyBuilder.KeyProofLock(9)

	ok, err := client.SetNX(ctx, key, "1", TTLProofLock)
	require.NoError(t, err)
	assert.True(t, ok)

	// Lock frees after the idempotency window
	mr.FastForward(TTLProofLock + time.Second)

	ok, err = client.SetNX(ctx, key, "1", TTLProofLock)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestClient_DeleteAndExists(t *testing.T) {
	_, client := setupTestRedis(t)
	ctx := context.Background()

	key := client.KeyBuilder.KeyIngredientCatalog()
	require.NoError(t, client.Set(ctx, key, "[]", TTLCatalog))

	n, err := client.Exists(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	require.NoError(t, client.Delete(ctx, key))

	n, err = client.Exists(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestPrefixForLog(t *testing.T) {
	assert.Equal(t, "prod:payment", prefixForLog("prod:payment:trx:TRX-1:status"))
	assert.Equal(t, "short", prefixForLog("short"))
	assert.Equal(t, "a:b", prefixForLog("a:b"))
}
