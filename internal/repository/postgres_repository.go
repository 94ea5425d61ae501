package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/whuang/family-budget-server/internal/models"
)

// PostgresRepository implements the Repository interface using PostgreSQL
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{
		db: db,
	}
}

// GetDB returns the underlying database connection
func (r *PostgresRepository) GetDB() *sqlx.DB {
	return r.db
}

// Family account repository methods

// CreateFamilyWithOwner creates a family account, its first user and the
// seeded default categories in one transaction, then links the creator back
// onto the account.
func (r *PostgresRepository) CreateFamilyWithOwner(
	ctx context.Context,
	family *models.FamilyAccount,
	owner *models.User,
	defaults []models.Category,
) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			tx.Rollback()
			return
		}
	}()

	now := time.Now().UTC()

	if family.ID == "" {
		family.ID = uuid.New().String()
	}
	family.CreatedAt = now

	_, err = tx.ExecContext(ctx,
		`INSERT INTO family_accounts (family_account_id, account_name, created_at) VALUES ($1, $2, $3)`,
		family.ID, family.AccountName, family.CreatedAt)
	if err != nil {
		return err
	}

	if owner.ID == "" {
		owner.ID = uuid.New().String()
	}
	owner.FamilyAccountID = family.ID
	owner.IsActive = true
	owner.CreatedAt = now
	owner.UpdatedAt = now

	_, err = tx.ExecContext(ctx,
		`INSERT INTO users (user_id, email, password_hash, full_name, family_account_id, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		owner.ID, owner.Email, owner.PasswordHash, owner.FullName,
		owner.FamilyAccountID, owner.IsActive, owner.CreatedAt, owner.UpdatedAt)
	if err != nil {
		return err
	}

	// Link the creator back onto the account
	_, err = tx.ExecContext(ctx,
		`UPDATE family_accounts SET created_by_user_id = $1 WHERE family_account_id = $2`,
		owner.ID, family.ID)
	if err != nil {
		return err
	}
	family.CreatedByUserID = &owner.ID

	for i := range defaults {
		c := &defaults[i]
		if c.ID == "" {
			c.ID = uuid.New().String()
		}
		c.FamilyAccountID = family.ID
		c.IsDefault = true
		c.IsActive = true
		c.CreatedAt = now

		_, err = tx.ExecContext(ctx,
			`INSERT INTO categories (category_id, family_account_id, category_name, category_type, color_code, icon, description, is_default, is_active, created_by_user_id, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			c.ID, c.FamilyAccountID, c.Name, c.Type, c.ColorCode, c.Icon,
			c.Description, c.IsDefault, c.IsActive, owner.ID, c.CreatedAt)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *PostgresRepository) GetFamilyAccountByName(ctx context.Context, name string) (*models.FamilyAccount, error) {
	query := `SELECT * FROM family_accounts WHERE account_name = $1`

	var family models.FamilyAccount
	err := r.db.GetContext(ctx, &family, query, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Family account not found
		}
		return nil, err
	}

	return &family, nil
}

func (r *PostgresRepository) GetFamilyAccountByID(ctx context.Context, id string) (*models.FamilyAccount, error) {
	query := `SELECT * FROM family_accounts WHERE family_account_id = $1`

	var family models.FamilyAccount
	err := r.db.GetContext(ctx, &family, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &family, nil
}

// User repository methods
func (r *PostgresRepository) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (user_id, email, password_hash, full_name, family_account_id, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	// Generate a new UUID if not provided
	if user.ID == "" {
		user.ID = uuid.New().String()
	}

	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.FullName,
		user.FamilyAccountID, user.IsActive, user.CreatedAt, user.UpdatedAt)

	return err
}

func (r *PostgresRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT * FROM users WHERE email = $1`

	var user models.User
	err := r.db.GetContext(ctx, &user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // User not found
		}
		return nil, err
	}

	return &user, nil
}

func (r *PostgresRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT * FROM users WHERE user_id = $1`

	var user models.User
	err := r.db.GetContext(ctx, &user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // User not found
		}
		return nil, err
	}

	return &user, nil
}

func (r *PostgresRepository) GetFamilyMembers(ctx context.Context, familyAccountID string) ([]models.User, error) {
	query := `
		SELECT * FROM users
		WHERE family_account_id = $1 AND is_active = TRUE
		ORDER BY created_at ASC
	`

	var users []models.User
	err := r.db.SelectContext(ctx, &users, query, familyAccountID)
	if err != nil {
		return nil, err
	}

	return users, nil
}

// DeactivateUser soft-deletes a family member. Returns false when the user is
// not an active member of the caller's family.
func (r *PostgresRepository) DeactivateUser(ctx context.Context, familyAccountID, userID string) (bool, error) {
	query := `
		UPDATE users SET is_active = FALSE, updated_at = $3
		WHERE user_id = $1 AND family_account_id = $2 AND is_active = TRUE
	`

	result, err := r.db.ExecContext(ctx, query, userID, familyAccountID, time.Now().UTC())
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows > 0, nil
}

func (r *PostgresRepository) UpdateUserProfile(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users SET full_name = $2, profile_picture = $3, updated_at = $4
		WHERE user_id = $1
	`

	user.UpdatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.FullName, user.ProfilePicture, user.UpdatedAt)

	return err
}

func (r *PostgresRepository) TouchLastLogin(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET last_login = $2 WHERE user_id = $1`,
		userID, time.Now().UTC())

	return err
}
