package repository

import (
	"context"
	"fmt"

	"bazaar-be/internal/domain"
	"bazaar-be/pkg/database"

	"github.com/jackc/pgx/v5"
)

type BoothRepository struct {
	db *database.PostgresDB
}

func NewBoothRepository(db *database.PostgresDB) *BoothRepository {
	return &BoothRepository{db: db}
}

// GetByID gets a booth location by ID
func (r *BoothRepository) GetByID(ctx context.Context, id int64) (*domain.BoothLocation, error) {
	var booth domain.BoothLocation
	query := `SELECT id, name, created_at FROM booth_locations WHERE id = $1`

	err := r.db.Pool.QueryRow(ctx, query, id).Scan(&booth.ID, &booth.Name, &booth.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booth location: %w", err)
	}
	return &booth, nil
}

// Create creates a booth location record (admin catalog path)
func (r *BoothRepository) Create(ctx context.Context, name string) (*domain.BoothLocation, error) {
	var booth domain.BoothLocation
	query := `
		INSERT INTO booth_locations (name)
		VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = booth_locations.name
		RETURNING id, name, created_at
	`

	err := r.db.Pool.QueryRow(ctx, query, name).Scan(&booth.ID, &booth.Name, &booth.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create booth location: %w", err)
	}
	return &booth, nil
}

// ListWithAvailability gets all booth locations with live occupancy
func (r *BoothRepository) ListWithAvailability(ctx context.Context) ([]domain.BoothAvailability, error) {
	query := `
		SELECT b.id, b.name, b.created_at,
		       COUNT(t.id) FILTER (WHERE ` + validClaim + `) > 0 AS occupied
		FROM booth_locations b
		LEFT JOIN teams t ON t.booth_location_id = b.id
		GROUP BY b.id, b.name, b.created_at
		ORDER BY b.name ASC
	`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list booth locations: %w", err)
	}
	defer rows.Close()

	var result []domain.BoothAvailability
	for rows.Next() {
		var ba domain.BoothAvailability
		if err := rows.Scan(&ba.ID, &ba.Name, &ba.CreatedAt, &ba.Occupied); err != nil {
			return nil, fmt.Errorf("failed to scan booth location: %w", err)
		}
		result = append(result, ba)
	}
	return result, rows.Err()
}
