package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bazaar-be/internal/domain"
	"bazaar-be/pkg/database"
	apperrors "bazaar-be/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type TeamRepository struct {
	db *database.PostgresDB
}

func NewTeamRepository(db *database.PostgresDB) *TeamRepository {
	return &TeamRepository{db: db}
}

const teamColumns = `
	id, code, name, leader_user_id, leader_name, leader_class, leader_external_id,
	members, contact, category, ingredient_id, booth_location_id,
	payment_status, payment_method, payment_plan, plan_accepted_at, payment_deadline,
	gateway_trx_id, gateway_payment_url, paid_at, verified_at,
	transfer_amount, transfer_note, transfer_proof_ref, transfer_submitted_at,
	created_at, updated_at`

// validClaim is the ledger predicate: a claim counts against capacity while
// payment is settled or the PENDING hold has not yet expired
const validClaim = `(payment_status IN ('PAID', 'VERIFIED') OR (payment_status = 'PENDING' AND payment_deadline > now()))`

func scanTeam(row pgx.Row) (*domain.Team, error) {
	var t domain.Team
	err := row.Scan(
		&t.ID,
		&t.Code,
		&t.Name,
		&t.LeaderUserID,
		&t.LeaderName,
		&t.LeaderClass,
		&t.LeaderExternalID,
		&t.Members,
		&t.Contact,
		&t.Category,
		&t.IngredientID,
		&t.BoothLocationID,
		&t.PaymentStatus,
		&t.PaymentMethod,
		&t.PaymentPlan,
		&t.PlanAcceptedAt,
		&t.PaymentDeadline,
		&t.GatewayTrxID,
		&t.GatewayPaymentURL,
		&t.PaidAt,
		&t.VerifiedAt,
		&t.TransferAmount,
		&t.TransferNote,
		&t.TransferProofRef,
		&t.TransferSubmittedAt,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Register atomically creates a team together with its resource claims.
// Ingredient resolution, both capacity checks and the insert run inside one
// transaction; the claimed resource rows are locked with FOR UPDATE so
// concurrent registrants targeting the same resource serialize on the
// capacity recount.
func (r *TeamRepository) Register(ctx context.Context, team *domain.Team, ingredientName string) (*domain.Team, error) {
	err := r.db.WithTx(ctx, func(tx pgx.Tx) error {
		if team.Category == domain.CategoryFoodBeverage {
			ingredientID, err := r.resolveIngredient(ctx, tx, team.IngredientID, ingredientName)
			if err != nil {
				return err
			}
			team.IngredientID = &ingredientID

			if err := r.checkIngredientCapacity(ctx, tx, ingredientID); err != nil {
				return err
			}
		}

		if team.BoothLocationID != nil {
			if err := r.claimBooth(ctx, tx, *team.BoothLocationID); err != nil {
				return err
			}
		}

		return r.insertTeam(ctx, tx, team)
	})
	if err != nil {
		return nil, err
	}
	return team, nil
}

// resolveIngredient locks an existing ingredient row by id or
// case-insensitive name, creating the record when no match exists
func (r *TeamRepository) resolveIngredient(ctx context.Context, tx pgx.Tx, id *int64, name string) (int64, error) {
	if id != nil {
		var ingredientID int64
		err := tx.QueryRow(ctx, `SELECT id FROM ingredients WHERE id = $1 FOR UPDATE`, *id).Scan(&ingredientID)
		if err == pgx.ErrNoRows {
			return 0, apperrors.NewNotFoundError("Ingredient not found")
		}
		if err != nil {
			return 0, fmt.Errorf("failed to lock ingredient: %w", err)
		}
		return ingredientID, nil
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return 0, apperrors.NewInvalidInputError("Food teams must provide a main ingredient", nil)
	}

	// Upsert on the case-insensitive unique index so two teams inventing the
	// same ingredient concurrently converge on one row, then lock it
	var ingredientID int64
	err := tx.QueryRow(ctx, `
		INSERT INTO ingredients (name)
		VALUES ($1)
		ON CONFLICT ((lower(name))) DO UPDATE SET name = ingredients.name
		RETURNING id
	`, name).Scan(&ingredientID)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve ingredient: %w", err)
	}

	err = tx.QueryRow(ctx, `SELECT id FROM ingredients WHERE id = $1 FOR UPDATE`, ingredientID).Scan(&ingredientID)
	if err != nil {
		return 0, fmt.Errorf("failed to lock ingredient: %w", err)
	}
	return ingredientID, nil
}

// checkIngredientCapacity admits a new claim iff fewer than
// domain.IngredientCapacity teams hold a valid claim on the ingredient
func (r *TeamRepository) checkIngredientCapacity(ctx context.Context, tx pgx.Tx, ingredientID int64) error {
	var count int
	query := `SELECT COUNT(*) FROM teams WHERE ingredient_id = $1 AND ` + validClaim
	if err := tx.QueryRow(ctx, query, ingredientID).Scan(&count); err != nil {
		return fmt.Errorf("failed to count ingredient claims: %w", err)
	}
	if count >= domain.IngredientCapacity {
		return apperrors.NewResourceUnavailableError("This ingredient is fully booked")
	}
	return nil
}

// claimBooth admits a new claim iff the booth has no valid occupant. A stale
// occupant (expired PENDING hold) loses its claim inside the same
// transaction, first come first served.
func (r *TeamRepository) claimBooth(ctx context.Context, tx pgx.Tx, boothID int64) error {
	var id int64
	err := tx.QueryRow(ctx, `SELECT id FROM booth_locations WHERE id = $1 FOR UPDATE`, boothID).Scan(&id)
	if err == pgx.ErrNoRows {
		return apperrors.NewNotFoundError("Booth location not found")
	}
	if err != nil {
		return fmt.Errorf("failed to lock booth location: %w", err)
	}

	var occupantID int64
	var occupantValid bool
	err = tx.QueryRow(ctx,
		`SELECT id, `+validClaim+` FROM teams WHERE booth_location_id = $1`, boothID,
	).Scan(&occupantID, &occupantValid)
	if err == pgx.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to check booth occupancy: %w", err)
	}

	if occupantValid {
		return apperrors.NewResourceUnavailableError("This booth location is already taken")
	}

	// Stale claim: the occupant's hold expired without payment
	if _, err := tx.Exec(ctx, `UPDATE teams SET booth_location_id = NULL, updated_at = now() WHERE id = $1`, occupantID); err != nil {
		return fmt.Errorf("failed to release stale booth claim: %w", err)
	}
	return nil
}

func (r *TeamRepository) insertTeam(ctx context.Context, tx pgx.Tx, team *domain.Team) error {
	query := `
		INSERT INTO teams (
			code, name, leader_user_id, leader_name, leader_class, leader_external_id,
			members, contact, category, ingredient_id, booth_location_id,
			payment_status, payment_method, payment_deadline
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at, updated_at
	`

	err := tx.QueryRow(ctx, query,
		team.Code,
		team.Name,
		team.LeaderUserID,
		team.LeaderName,
		team.LeaderClass,
		team.LeaderExternalID,
		team.Members,
		team.Contact,
		team.Category,
		team.IngredientID,
		team.BoothLocationID,
		team.PaymentStatus,
		team.PaymentMethod,
		team.PaymentDeadline,
	).Scan(&team.ID, &team.CreatedAt, &team.UpdatedAt)

	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23505" {
			if strings.Contains(pgErr.ConstraintName, "leader_user_id") {
				return apperrors.NewAlreadyRegisteredError("You have already registered a team")
			}
			if strings.Contains(pgErr.ConstraintName, "booth_location") {
				return apperrors.NewResourceUnavailableError("This booth location is already taken")
			}
		}
		return fmt.Errorf("failed to create team: %w", err)
	}
	return nil
}

// GetByID gets a team by ID
func (r *TeamRepository) GetByID(ctx context.Context, id int64) (*domain.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams WHERE id = $1`

	team, err := scanTeam(r.db.Pool.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	return team, nil
}

// GetByLeader gets the team owned by a user
func (r *TeamRepository) GetByLeader(ctx context.Context, userID string) (*domain.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams WHERE leader_user_id = $1`

	team, err := scanTeam(r.db.Pool.QueryRow(ctx, query, userID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get team by leader: %w", err)
	}
	return team, nil
}

// List gets all teams ordered by creation time
func (r *TeamRepository) List(ctx context.Context) ([]domain.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams ORDER BY created_at ASC`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer rows.Close()

	var teams []domain.Team
	for rows.Next() {
		team, err := scanTeam(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, *team)
	}
	return teams, rows.Err()
}

// UpdatePlan stores the chosen payment plan and its acceptance time
func (r *TeamRepository) UpdatePlan(ctx context.Context, teamID int64, plan domain.PaymentPlan, acceptedAt *time.Time) error {
	_, err := r.db.Pool.Exec(ctx, `
		UPDATE teams
		SET payment_plan = $2, plan_accepted_at = $3, updated_at = now()
		WHERE id = $1
	`, teamID, plan, acceptedAt)
	if err != nil {
		return fmt.Errorf("failed to update payment plan: %w", err)
	}
	return nil
}

// SetGatewaySession switches to the gateway method, storing the session and
// clearing any previously submitted manual-transfer fields
func (r *TeamRepository) SetGatewaySession(ctx context.Context, teamID int64, trxID, paymentURL string, deadline time.Time) error {
	_, err := r.db.Pool.Exec(ctx, `
		UPDATE teams
		SET payment_method = 'GATEWAY',
		    gateway_trx_id = $2,
		    gateway_payment_url = $3,
		    payment_deadline = $4,
		    transfer_amount = NULL,
		    transfer_note = NULL,
		    transfer_proof_ref = NULL,
		    transfer_submitted_at = NULL,
		    updated_at = now()
		WHERE id = $1
	`, teamID, trxID, paymentURL, deadline)
	if err != nil {
		return fmt.Errorf("failed to store gateway session: %w", err)
	}
	return nil
}

// SetManualMethod switches to manual transfer. Manual transfers are not
// time-boxed, so the gateway session fields and the deadline are cleared.
func (r *TeamRepository) SetManualMethod(ctx context.Context, teamID int64) error {
	_, err := r.db.Pool.Exec(ctx, `
		UPDATE teams
		SET payment_method = 'MANUAL_TRANSFER',
		    gateway_trx_id = NULL,
		    gateway_payment_url = NULL,
		    payment_deadline = NULL,
		    updated_at = now()
		WHERE id = $1
	`, teamID)
	if err != nil {
		return fmt.Errorf("failed to set manual method: %w", err)
	}
	return nil
}

// MarkPaid transitions the team to PAID
func (r *TeamRepository) MarkPaid(ctx context.Context, teamID int64, paidAt time.Time) error {
	_, err := r.db.Pool.Exec(ctx, `
		UPDATE teams
		SET payment_status = 'PAID', paid_at = $2, updated_at = now()
		WHERE id = $1
	`, teamID, paidAt)
	if err != nil {
		return fmt.Errorf("failed to mark team paid: %w", err)
	}
	return nil
}

// SaveManualProof stores the proof fields and resets the team to PENDING
// with the deadline cleared; a resubmission restarts the pending window
func (r *TeamRepository) SaveManualProof(ctx context.Context, teamID int64, amount int64, note, proofRef string, submittedAt time.Time) error {
	_, err := r.db.Pool.Exec(ctx, `
		UPDATE teams
		SET payment_status = 'PENDING',
		    payment_deadline = NULL,
		    transfer_amount = $2,
		    transfer_note = $3,
		    transfer_proof_ref = $4,
		    transfer_submitted_at = $5,
		    updated_at = now()
		WHERE id = $1
	`, teamID, amount, note, proofRef, submittedAt)
	if err != nil {
		return fmt.Errorf("failed to save manual proof: %w", err)
	}
	return nil
}

// MarkVerified transitions the team to VERIFIED regardless of prior status
func (r *TeamRepository) MarkVerified(ctx context.Context, teamID int64, verifiedAt time.Time) error {
	_, err := r.db.Pool.Exec(ctx, `
		UPDATE teams
		SET payment_status = 'VERIFIED', verified_at = $2, updated_at = now()
		WHERE id = $1
	`, teamID, verifiedAt)
	if err != nil {
		return fmt.Errorf("failed to mark team verified: %w", err)
	}
	return nil
}

// Delete removes the team row; admissibility is computed from the live team
// table, so deletion releases the ingredient and booth claims immediately
func (r *TeamRepository) Delete(ctx context.Context, teamID int64) error {
	_, err := r.db.Pool.Exec(ctx, `DELETE FROM teams WHERE id = $1`, teamID)
	if err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}
	return nil
}
