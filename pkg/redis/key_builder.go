package redis

import "fmt"

// KeyBuilder provides environment-aware Redis key building functionality
type KeyBuilder struct {
	prefix string // Environment prefix (staging/prod)
}

// NewKeyBuilder creates a new key builder with environment-based prefix
func NewKeyBuilder(environment string) *KeyBuilder {
	// Set key prefix based on environment
	prefix := "prod"
	if environment == "development" || environment == "staging" {
		prefix = "staging"
	}

	return &KeyBuilder{
		prefix: prefix,
	}
}

// BuildKey constructs a Redis key with the environment prefix
func (kb *KeyBuilder) BuildKey(key string) string {
	return fmt.Sprintf("%s:%s", kb.prefix, key)
}

// GetPrefix returns the current environment prefix
func (kb *KeyBuilder) GetPrefix() string {
	return kb.prefix
}

// Registration key builders

func (kb *KeyBuilder) KeySettings() string {
	return kb.BuildKey(KeySettings)
}

func (kb *KeyBuilder) KeyIngredientCatalog() string {
	return kb.BuildKey(KeyIngredientCatalog)
}

func (kb *KeyBuilder) KeyBoothCatalog() string {
	return kb.BuildKey(KeyBoothCatalog)
}

// Payment key builders

func (kb *KeyBuilder) KeyGatewayStatus(trxID string) string {
	return kb.BuildKey(fmt.Sprintf(KeyGatewayStatus, trxID))
}

func (kb *KeyBuilder) KeyProofLock(teamID int64) string {
	return kb.BuildKey(fmt.Sprintf(KeyProofLock, teamID))
}

// KeyCustom builds an arbitrary formatted key under the environment prefix
func (kb *KeyBuilder) KeyCustom(format string, args ...interface{}) string {
	return kb.BuildKey(fmt.Sprintf(format, args...))
}
