package config

import (
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver
)

// SetupDatabase initializes the database connection
func SetupDatabase(cfg *Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	// Create tables if they don't exist
	if err := createTables(db); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return db, nil
}

// createTables creates the necessary tables in the database
func createTables(db *sqlx.DB) error {
	// Create users table
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id VARCHAR(36) PRIMARY KEY,
			email VARCHAR(255) UNIQUE NOT NULL,
			name VARCHAR(255) NOT NULL,
			password VARCHAR(255) NOT NULL,
			department VARCHAR(100) NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	// Create productions table
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS productions (
			id VARCHAR(36) PRIMARY KEY,
			title VARCHAR(255) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			created_by VARCHAR(36) NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	// Create production_crew table (for crew membership and permissions)
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS production_crew (
			production_id VARCHAR(36) NOT NULL REFERENCES productions(id) ON DELETE CASCADE,
			user_id VARCHAR(36) NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			permissions VARCHAR(10) NOT NULL,
			created_at TIMESTAMP NOT NULL,
			PRIMARY KEY (production_id, user_id)
		)
	`)
	if err != nil {
		return err
	}

	// Create rate_cards table; one card per crew member per production
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS rate_cards (
			id VARCHAR(36) PRIMARY KEY,
			production_id VARCHAR(36) NOT NULL REFERENCES productions(id) ON DELETE CASCADE,
			user_id VARCHAR(36) NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			daily_rate DOUBLE PRECISION NOT NULL,
			base_contract VARCHAR(4) NOT NULL,
			day_type VARCHAR(4) NOT NULL,
			pre_call_multiplier DOUBLE PRECISION NOT NULL,
			ot_multiplier DOUBLE PRECISION NOT NULL,
			late_night_multiplier DOUBLE PRECISION NOT NULL,
			sixth_day_multiplier DOUBLE PRECISION NOT NULL,
			seventh_day_multiplier DOUBLE PRECISION NOT NULL,
			kit_rental DOUBLE PRECISION NOT NULL,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL,
			UNIQUE (production_id, user_id)
		)
	`)
	if err != nil {
		return err
	}

	// Create timesheet_entries table; one entry per crew member per date.
	// Clock times are wall-clock "HH:MM" strings, empty when not recorded.
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS timesheet_entries (
			id VARCHAR(36) PRIMARY KEY,
			production_id VARCHAR(36) NOT NULL REFERENCES productions(id) ON DELETE CASCADE,
			user_id VARCHAR(36) NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			date VARCHAR(10) NOT NULL,
			day_type VARCHAR(4) NOT NULL,
			pre_call VARCHAR(5) NOT NULL DEFAULT '',
			unit_call VARCHAR(5) NOT NULL DEFAULT '',
			lunch_start VARCHAR(5) NOT NULL DEFAULT '',
			out_of_chair VARCHAR(5) NOT NULL DEFAULT '',
			wrap_out VARCHAR(5) NOT NULL DEFAULT '',
			lunch_taken_minutes INTEGER NOT NULL DEFAULT 0,
			is_sixth_day BOOLEAN NOT NULL DEFAULT FALSE,
			is_seventh_day BOOLEAN NOT NULL DEFAULT FALSE,
			notes TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL,
			UNIQUE (production_id, user_id, date)
		)
	`)
	if err != nil {
		return err
	}

	// Create indexes for better performance
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_production_crew_user_id ON production_crew(user_id)",
		"CREATE INDEX IF NOT EXISTS idx_timesheet_entries_prod_user ON timesheet_entries(production_id, user_id)",
	}

	for _, idx := range indexes {
		_, err = db.Exec(idx)
		if err != nil {
			log.Printf("Warning: Failed to create index: %v", err)
			// Don't return error here, indexes are not critical
		}
	}

	return nil
}
