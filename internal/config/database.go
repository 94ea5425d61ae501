package config

import (
	"fmt"
	"log/slog"

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
	// Create family_accounts table
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS family_accounts (
			family_account_id VARCHAR(36) PRIMARY KEY,
			account_name VARCHAR(255) UNIQUE NOT NULL,
			created_by_user_id VARCHAR(36),
			created_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	// Create users table
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			user_id VARCHAR(36) PRIMARY KEY,
			email VARCHAR(255) UNIQUE NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			full_name VARCHAR(255) NOT NULL,
			profile_picture TEXT,
			family_account_id VARCHAR(36) NOT NULL REFERENCES family_accounts(family_account_id) ON DELETE CASCADE,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			last_login TIMESTAMP,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	// Create categories table
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS categories (
			category_id VARCHAR(36) PRIMARY KEY,
			family_account_id VARCHAR(36) NOT NULL REFERENCES family_accounts(family_account_id) ON DELETE CASCADE,
			category_name VARCHAR(255) NOT NULL,
			category_type VARCHAR(10) NOT NULL CHECK (category_type IN ('income', 'expense')),
			color_code VARCHAR(7) NOT NULL,
			icon VARCHAR(16) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			is_default BOOLEAN NOT NULL DEFAULT FALSE,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_by_user_id VARCHAR(36),
			created_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	// Create transactions table
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS transactions (
			transaction_id VARCHAR(36) PRIMARY KEY,
			family_account_id VARCHAR(36) NOT NULL REFERENCES family_accounts(family_account_id) ON DELETE CASCADE,
			user_id VARCHAR(36) NOT NULL REFERENCES users(user_id),
			category_id VARCHAR(36) NOT NULL REFERENCES categories(category_id),
			amount NUMERIC(14,2) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			transaction_date DATE NOT NULL,
			is_recurring BOOLEAN NOT NULL DEFAULT FALSE,
			recurrence_pattern VARCHAR(32),
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	// Create budget_limits table. The unique constraint backs the single-statement
	// upsert so concurrent sets for the same (family, category) can't duplicate.
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS budget_limits (
			budget_id VARCHAR(36) PRIMARY KEY,
			family_account_id VARCHAR(36) NOT NULL REFERENCES family_accounts(family_account_id) ON DELETE CASCADE,
			category_id VARCHAR(36) NOT NULL REFERENCES categories(category_id),
			limit_amount NUMERIC(14,2),
			limit_percentage NUMERIC(5,2),
			period_type VARCHAR(16) NOT NULL,
			start_date DATE,
			end_date DATE,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL,
			UNIQUE (family_account_id, category_id)
		)
	`)
	if err != nil {
		return err
	}

	// Create indexes for better performance
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_users_family ON users(family_account_id)",
		"CREATE INDEX IF NOT EXISTS idx_categories_family ON categories(family_account_id)",
		"CREATE INDEX IF NOT EXISTS idx_transactions_family ON transactions(family_account_id)",
		"CREATE INDEX IF NOT EXISTS idx_transactions_family_date ON transactions(family_account_id, transaction_date)",
		"CREATE INDEX IF NOT EXISTS idx_transactions_category ON transactions(category_id)",
		"CREATE INDEX IF NOT EXISTS idx_budget_limits_family ON budget_limits(family_account_id)",
	}

	for _, idx := range indexes {
		_, err = db.Exec(idx)
		if err != nil {
			slog.Warn("failed to create index", "error", err)
			// Don't return error here, indexes are not critical
		}
	}

	return nil
}
