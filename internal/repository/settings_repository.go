package repository

import (
	"context"
	"fmt"

	"bazaar-be/pkg/database"

	"github.com/jackc/pgx/v5"
)

// SettingsRepository reads the flat key/value global settings table. The
// table is owned and mutated entirely outside this service.
type SettingsRepository struct {
	db *database.PostgresDB
}

func NewSettingsRepository(db *database.PostgresDB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get returns the value for a key, nil when the key is absent
func (r *SettingsRepository) Get(ctx context.Context, key string) (*string, error) {
	var value string
	err := r.db.Pool.QueryRow(ctx, `SELECT value FROM global_settings WHERE key = $1`, key).Scan(&value)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get setting %s: %w", key, err)
	}
	return &value, nil
}

// GetMany returns the values for the given keys; absent keys are omitted
func (r *SettingsRepository) GetMany(ctx context.Context, keys []string) (map[string]string, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT key, value FROM global_settings WHERE key = ANY($1)`, keys)
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	defer rows.Close()

	result := make(map[string]string, len(keys))
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan setting: %w", err)
		}
		result[key] = value
	}
	return result, rows.Err()
}
