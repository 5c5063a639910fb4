package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// Get database URL
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	// Get command
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run main.go [drop|up|seed]")
		os.Exit(1)
	}

	command := os.Args[1]

	// Connect to database
	ctx := context.Background()
	conn, err := pgx.Connect(ctx, dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer conn.Close(ctx)

	switch command {
	case "drop":
		if err := dropTables(ctx, conn); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		fmt.Println("✅ All tables dropped successfully")

	case "up":
		if err := createTables(ctx, conn); err != nil {
			log.Fatalf("Failed to create tables: %v", err)
		}
		fmt.Println("✅ All tables created successfully")

	case "seed":
		if err := seedData(ctx, conn); err != nil {
			log.Fatalf("Failed to seed data: %v", err)
		}
		fmt.Println("✅ Data seeded successfully")

	default:
		fmt.Printf("Unknown command: %s\n", command)
		fmt.Println("Usage: go run main.go [drop|up|seed]")
		os.Exit(1)
	}
}

func dropTables(ctx context.Context, conn *pgx.Conn) error {
	queries := []string{
		`DROP TABLE IF EXISTS team_payouts CASCADE`,
		`DROP TABLE IF EXISTS teams CASCADE`,
		`DROP TABLE IF EXISTS ingredients CASCADE`,
		`DROP TABLE IF EXISTS booth_locations CASCADE`,
		`DROP TABLE IF EXISTS global_settings CASCADE`,
	}

	for _, query := range queries {
		if _, err := conn.Exec(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
		fmt.Printf("  Dropped: %s\n", query)
	}

	return nil
}

func createTables(ctx context.Context, conn *pgx.Conn) error {
	queries := []string{
		// Flat key/value settings consumed by the registration service
		`CREATE TABLE IF NOT EXISTS global_settings (
			key VARCHAR(100) PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TIMESTAMP DEFAULT NOW()
		)`,

		// Shared ingredient catalog, case-insensitive names
		`CREATE TABLE IF NOT EXISTS ingredients (
			id BIGSERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			created_at TIMESTAMP DEFAULT NOW()
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_ingredients_name_lower ON ingredients ((lower(name)))`,

		// Physical booth locations
		`CREATE TABLE IF NOT EXISTS booth_locations (
			id BIGSERIAL PRIMARY KEY,
			name VARCHAR(255) UNIQUE NOT NULL,
			created_at TIMESTAMP DEFAULT NOW()
		)`,

		// One registration per leader; booth claim exclusivity is enforced
		// at insert time under row locks, the partial index is the backstop
		`CREATE TABLE IF NOT EXISTS teams (
			id BIGSERIAL PRIMARY KEY,
			code VARCHAR(50) UNIQUE NOT NULL,
			name VARCHAR(255) NOT NULL,
			leader_user_id VARCHAR(255) UNIQUE NOT NULL,
			leader_name VARCHAR(255) NOT NULL,
			leader_class VARCHAR(100) NOT NULL DEFAULT '',
			leader_external_id VARCHAR(100) NOT NULL DEFAULT '',
			members JSONB NOT NULL DEFAULT '[]',
			contact VARCHAR(255) NOT NULL DEFAULT '',
			category VARCHAR(30) NOT NULL,
			ingredient_id BIGINT REFERENCES ingredients(id),
			booth_location_id BIGINT REFERENCES booth_locations(id),
			payment_status VARCHAR(20) NOT NULL DEFAULT 'PENDING',
			payment_method VARCHAR(20) NOT NULL DEFAULT 'MANUAL_TRANSFER',
			payment_plan VARCHAR(20),
			plan_accepted_at TIMESTAMP,
			payment_deadline TIMESTAMP,
			gateway_trx_id VARCHAR(100),
			gateway_payment_url TEXT,
			paid_at TIMESTAMP,
			verified_at TIMESTAMP,
			transfer_amount BIGINT,
			transfer_note TEXT,
			transfer_proof_ref VARCHAR(255),
			transfer_submitted_at TIMESTAMP,
			created_at TIMESTAMP DEFAULT NOW(),
			updated_at TIMESTAMP DEFAULT NOW()
		)`,

		// One payout record per team; recorded_amount stays NULL until an
		// admin records the settled figure, so a bank-info-only row carries
		// no breakdown
		`CREATE TABLE IF NOT EXISTS team_payouts (
			id BIGSERIAL PRIMARY KEY,
			team_id BIGINT UNIQUE NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
			recorded_amount BIGINT,
			status VARCHAR(30) NOT NULL DEFAULT 'WAITING_VERIFICATION',
			admin_notes TEXT,
			participant_notes TEXT,
			bank_account_name VARCHAR(255),
			bank_account_number VARCHAR(50),
			updated_by VARCHAR(255),
			created_at TIMESTAMP DEFAULT NOW(),
			updated_at TIMESTAMP DEFAULT NOW()
		)`,

		// Create indexes
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_teams_booth_location ON teams(booth_location_id) WHERE booth_location_id IS NOT NULL`,
		`CREATE INDEX IF NOT EXISTS idx_teams_ingredient ON teams(ingredient_id)`,
		`CREATE INDEX IF NOT EXISTS idx_teams_payment_status ON teams(payment_status)`,
		`CREATE INDEX IF NOT EXISTS idx_teams_created_at ON teams(created_at DESC)`,
	}

	for _, query := range queries {
		if _, err := conn.Exec(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %w\nQuery: %s", err, query)
		}
		fmt.Printf("  Created: %s\n", getTableName(query))
	}

	return nil
}

func seedData(ctx context.Context, conn *pgx.Conn) error {
	// Default registration settings
	settingsQuery := `
		INSERT INTO global_settings (key, value) VALUES
		('registration_open', 'true'),
		('min_team_members', '1'),
		('max_team_members', '4'),
		('registration_fee', '100000')
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = NOW()
	`
	if _, err := conn.Exec(ctx, settingsQuery); err != nil {
		return fmt.Errorf("failed to seed settings: %w", err)
	}
	fmt.Println("  Seeded 4 settings")

	// Starter ingredient catalog
	ingredientsQuery := `
		INSERT INTO ingredients (name) VALUES
		('Chicken'), ('Pork'), ('Shrimp'), ('Tofu'), ('Rice Noodles'), ('Coconut Milk')
		ON CONFLICT ((lower(name))) DO NOTHING
	`
	if _, err := conn.Exec(ctx, ingredientsQuery); err != nil {
		return fmt.Errorf("failed to seed ingredients: %w", err)
	}
	fmt.Println("  Seeded 6 ingredients")

	// Booth grid
	boothsQuery := `
		INSERT INTO booth_locations (name) VALUES
		('A1'), ('A2'), ('A3'), ('A4'), ('A5'),
		('B1'), ('B2'), ('B3'), ('B4'), ('B5'),
		('C1'), ('C2'), ('C3'), ('C4'), ('C5')
		ON CONFLICT (name) DO NOTHING
	`
	if _, err := conn.Exec(ctx, boothsQuery); err != nil {
		return fmt.Errorf("failed to seed booth locations: %w", err)
	}
	fmt.Println("  Seeded 15 booth locations")

	return nil
}

func getTableName(query string) string {
	if len(query) > 50 {
		return query[:50] + "..."
	}
	return query
}
