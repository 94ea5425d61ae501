package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/whuang/family-budget-server/internal/models"
)

// Category repository methods
func (r *PostgresRepository) CreateCategory(ctx context.Context, category *models.Category) error {
	query := `
		INSERT INTO categories (category_id, family_account_id, category_name, category_type, color_code, icon, description, is_default, is_active, created_by_user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	category.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx, query,
		category.ID, category.FamilyAccountID, category.Name, category.Type,
		category.ColorCode, category.Icon, category.Description,
		category.IsDefault, category.IsActive, category.CreatedByUserID, category.CreatedAt)

	return err
}

func (r *PostgresRepository) GetCategories(ctx context.Context, familyAccountID string) ([]models.Category, error) {
	query := `
		SELECT * FROM categories
		WHERE family_account_id = $1
		ORDER BY is_default DESC, category_name ASC
	`

	var categories []models.Category
	err := r.db.SelectContext(ctx, &categories, query, familyAccountID)
	if err != nil {
		return nil, err
	}

	return categories, nil
}

func (r *PostgresRepository) GetCategory(ctx context.Context, familyAccountID, categoryID string) (*models.Category, error) {
	query := `SELECT * FROM categories WHERE category_id = $1 AND family_account_id = $2`

	var category models.Category
	err := r.db.GetContext(ctx, &category, query, categoryID, familyAccountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Category not found
		}
		return nil, err
	}

	return &category, nil
}

// GetCategoriesWithMonthTotals returns every category with its transaction
// total for the given month, most active first. Used by the dashboard.
func (r *PostgresRepository) GetCategoriesWithMonthTotals(
	ctx context.Context,
	familyAccountID string,
	year, month int,
) ([]models.CategoryWithTotal, error) {
	query := `
		SELECT
			c.category_id,
			c.category_name,
			c.category_type,
			c.color_code,
			c.icon,
			COALESCE(SUM(t.amount), 0) AS total_amount
		FROM categories c
		LEFT JOIN transactions t ON c.category_id = t.category_id
			AND t.family_account_id = $1
			AND EXTRACT(YEAR FROM t.transaction_date) = $2
			AND EXTRACT(MONTH FROM t.transaction_date) = $3
		WHERE c.family_account_id = $1
		GROUP BY c.category_id, c.category_name, c.category_type, c.color_code, c.icon
		ORDER BY ABS(COALESCE(SUM(t.amount), 0)) DESC
	`

	var rows []models.CategoryWithTotal
	err := r.db.SelectContext(ctx, &rows, query, familyAccountID, year, month)
	if err != nil {
		return nil, err
	}

	return rows, nil
}

func (r *PostgresRepository) UpdateCategory(ctx context.Context, category *models.Category) error {
	query := `
		UPDATE categories
		SET category_name = $3, category_type = $4, color_code = $5, icon = $6, description = $7, is_active = $8
		WHERE category_id = $1 AND family_account_id = $2
	`

	_, err := r.db.ExecContext(ctx, query,
		category.ID, category.FamilyAccountID, category.Name, category.Type,
		category.ColorCode, category.Icon, category.Description, category.IsActive)

	return err
}

func (r *PostgresRepository) DeleteCategory(ctx context.Context, familyAccountID, categoryID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM categories WHERE category_id = $1 AND family_account_id = $2`,
		categoryID, familyAccountID)

	return err
}

func (r *PostgresRepository) CountTransactionsForCategory(ctx context.Context, familyAccountID, categoryID string) (int, error) {
	query := `
		SELECT COUNT(*) FROM transactions
		WHERE category_id = $1 AND family_account_id = $2
	`

	var count int
	err := r.db.GetContext(ctx, &count, query, categoryID, familyAccountID)
	if err != nil {
		return 0, err
	}

	return count, nil
}
