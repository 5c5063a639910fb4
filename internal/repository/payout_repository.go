package repository

import (
	"context"
	"fmt"

	"bazaar-be/internal/domain"
	"bazaar-be/pkg/database"

	"github.com/jackc/pgx/v5"
)

type PayoutRepository struct {
	db *database.PostgresDB
}

func NewPayoutRepository(db *database.PostgresDB) *PayoutRepository {
	return &PayoutRepository{db: db}
}

// GetByTeamID gets the payout record for a team
func (r *PayoutRepository) GetByTeamID(ctx context.Context, teamID int64) (*domain.TeamPayout, error) {
	var p domain.TeamPayout
	query := `
		SELECT id, team_id, recorded_amount, status, admin_notes, participant_notes,
		       bank_account_name, bank_account_number, updated_by, created_at, updated_at
		FROM team_payouts
		WHERE team_id = $1
	`

	err := r.db.Pool.QueryRow(ctx, query, teamID).Scan(
		&p.ID,
		&p.TeamID,
		&p.RecordedAmount,
		&p.Status,
		&p.AdminNotes,
		&p.ParticipantNotes,
		&p.BankAccountName,
		&p.BankAccountNumber,
		&p.UpdatedBy,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get payout: %w", err)
	}
	return &p, nil
}

// Upsert creates or updates the single payout row for a team
func (r *PayoutRepository) Upsert(ctx context.Context, payout *domain.TeamPayout) error {
	query := `
		INSERT INTO team_payouts (
			team_id, recorded_amount, status, admin_notes, participant_notes,
			bank_account_name, bank_account_number, updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (team_id) DO UPDATE SET
			recorded_amount = EXCLUDED.recorded_amount,
			status = EXCLUDED.status,
			admin_notes = EXCLUDED.admin_notes,
			participant_notes = EXCLUDED.participant_notes,
			bank_account_name = EXCLUDED.bank_account_name,
			bank_account_number = EXCLUDED.bank_account_number,
			updated_by = EXCLUDED.updated_by,
			updated_at = now()
		RETURNING id, created_at, updated_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		payout.TeamID,
		payout.RecordedAmount,
		payout.Status,
		payout.AdminNotes,
		payout.ParticipantNotes,
		payout.BankAccountName,
		payout.BankAccountNumber,
		payout.UpdatedBy,
	).Scan(&payout.ID, &payout.CreatedAt, &payout.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to upsert payout: %w", err)
	}
	return nil
}
