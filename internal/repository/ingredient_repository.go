package repository

import (
	"context"
	"fmt"

	"bazaar-be/internal/domain"
	"bazaar-be/pkg/database"

	"github.com/jackc/pgx/v5"
)

type IngredientRepository struct {
	db *database.PostgresDB
}

func NewIngredientRepository(db *database.PostgresDB) *IngredientRepository {
	return &IngredientRepository{db: db}
}

// GetByID gets an ingredient by ID
func (r *IngredientRepository) GetByID(ctx context.Context, id int64) (*domain.Ingredient, error) {
	var ing domain.Ingredient
	query := `SELECT id, name, created_at FROM ingredients WHERE id = $1`

	err := r.db.Pool.QueryRow(ctx, query, id).Scan(&ing.ID, &ing.Name, &ing.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ingredient: %w", err)
	}
	return &ing, nil
}

// Create creates an ingredient record (admin catalog path)
func (r *IngredientRepository) Create(ctx context.Context, name string) (*domain.Ingredient, error) {
	var ing domain.Ingredient
	query := `
		INSERT INTO ingredients (name)
		VALUES ($1)
		ON CONFLICT ((lower(name))) DO UPDATE SET name = ingredients.name
		RETURNING id, name, created_at
	`

	err := r.db.Pool.QueryRow(ctx, query, name).Scan(&ing.ID, &ing.Name, &ing.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create ingredient: %w", err)
	}
	return &ing, nil
}

// ListWithAvailability gets all ingredients with their live valid-claim counts
func (r *IngredientRepository) ListWithAvailability(ctx context.Context) ([]domain.IngredientAvailability, error) {
	query := `
		SELECT i.id, i.name, i.created_at,
		       COUNT(t.id) FILTER (WHERE ` + validClaim + `) AS claim_count
		FROM ingredients i
		LEFT JOIN teams t ON t.ingredient_id = i.id
		GROUP BY i.id, i.name, i.created_at
		ORDER BY i.name ASC
	`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list ingredients: %w", err)
	}
	defer rows.Close()

	var result []domain.IngredientAvailability
	for rows.Next() {
		var ia domain.IngredientAvailability
		if err := rows.Scan(&ia.ID, &ia.Name, &ia.CreatedAt, &ia.ClaimCount); err != nil {
			return nil, fmt.Errorf("failed to scan ingredient: %w", err)
		}
		ia.SlotsLeft = domain.IngredientCapacity - ia.ClaimCount
		if ia.SlotsLeft < 0 {
			ia.SlotsLeft = 0
		}
		result = append(result, ia)
	}
	return result, rows.Err()
}
