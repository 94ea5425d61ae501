package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/whuang/family-budget-server/internal/models"
)

// Aggregation repository methods

// GetPeriodTotals sums transactions for one month, split by the joined
// category type. Expenses come back as an absolute value. A period with no
// transactions yields zeros.
func (r *PostgresRepository) GetPeriodTotals(
	ctx context.Context,
	familyAccountID string,
	year, month int,
) (*PeriodTotals, error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN c.category_type = 'income' THEN t.amount ELSE 0 END), 0) AS total_income,
			COALESCE(SUM(CASE WHEN c.category_type = 'expense' THEN ABS(t.amount) ELSE 0 END), 0) AS total_expenses
		FROM transactions t
		JOIN categories c ON t.category_id = c.category_id
		WHERE t.family_account_id = $1
		AND EXTRACT(YEAR FROM t.transaction_date) = $2
		AND EXTRACT(MONTH FROM t.transaction_date) = $3
	`

	var totals PeriodTotals
	err := r.db.GetContext(ctx, &totals, query, familyAccountID, year, month)
	if err != nil {
		return nil, err
	}

	return &totals, nil
}

// GetMonthlyTotalsForYear returns per-month sums for the months that have
// transactions, ordered by month ascending.
func (r *PostgresRepository) GetMonthlyTotalsForYear(
	ctx context.Context,
	familyAccountID string,
	year int,
) ([]MonthTotalsRow, error) {
	query := `
		SELECT
			EXTRACT(MONTH FROM t.transaction_date)::int AS month,
			COALESCE(SUM(CASE WHEN c.category_type = 'income' THEN t.amount ELSE 0 END), 0) AS total_income,
			COALESCE(SUM(CASE WHEN c.category_type = 'expense' THEN ABS(t.amount) ELSE 0 END), 0) AS total_expenses
		FROM transactions t
		JOIN categories c ON t.category_id = c.category_id
		WHERE t.family_account_id = $1
		AND EXTRACT(YEAR FROM t.transaction_date) = $2
		GROUP BY EXTRACT(MONTH FROM t.transaction_date)
		ORDER BY month
	`

	var rows []MonthTotalsRow
	err := r.db.SelectContext(ctx, &rows, query, familyAccountID, year)
	if err != nil {
		return nil, err
	}

	return rows, nil
}

// GetCategoryBreakdown sums absolute amounts and counts per category, largest
// total first. Empty date strings mean all-time.
func (r *PostgresRepository) GetCategoryBreakdown(
	ctx context.Context,
	familyAccountID, startDate, endDate string,
) ([]models.CategoryTotal, error) {
	query := `
		SELECT
			c.category_name,
			c.category_type,
			c.color_code,
			COALESCE(SUM(ABS(t.amount)), 0) AS total_amount,
			COUNT(t.transaction_id) AS transaction_count
		FROM transactions t
		JOIN categories c ON t.category_id = c.category_id
		WHERE t.family_account_id = $1
	`

	args := []interface{}{familyAccountID}

	if startDate != "" && endDate != "" {
		query += ` AND t.transaction_date BETWEEN $2 AND $3`
		args = append(args, startDate, endDate)
	}

	query += `
		GROUP BY c.category_id, c.category_name, c.category_type, c.color_code
		ORDER BY total_amount DESC
	`

	var totals []models.CategoryTotal
	err := r.db.SelectContext(ctx, &totals, query, args...)
	if err != nil {
		return nil, err
	}

	return totals, nil
}

// GetMonthlyCategorySpending returns absolute expense totals per category for
// one month, keyed by category id.
func (r *PostgresRepository) GetMonthlyCategorySpending(
	ctx context.Context,
	familyAccountID string,
	year, month int,
) (CategorySpending, error) {
	query := `
		SELECT
			t.category_id,
			COALESCE(SUM(ABS(t.amount)), 0) AS total_amount
		FROM transactions t
		JOIN categories c ON t.category_id = c.category_id
		WHERE t.family_account_id = $1
		AND c.category_type = 'expense'
		AND EXTRACT(YEAR FROM t.transaction_date) = $2
		AND EXTRACT(MONTH FROM t.transaction_date) = $3
		GROUP BY t.category_id
	`

	rows, err := r.db.QueryxContext(ctx, query, familyAccountID, year, month)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	spending := make(CategorySpending)
	for rows.Next() {
		var categoryID string
		var total decimal.Decimal
		if err := rows.Scan(&categoryID, &total); err != nil {
			return nil, err
		}
		spending[categoryID] = total
	}

	return spending, rows.Err()
}

func (r *PostgresRepository) GetQuickStats(ctx context.Context, familyAccountID string) (*models.QuickStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM transactions WHERE family_account_id = $1) AS total_transactions,
			(SELECT COUNT(*) FROM categories WHERE family_account_id = $1 AND is_active = TRUE) AS active_categories,
			(SELECT COUNT(*) FROM budget_limits WHERE family_account_id = $1) AS budget_limits_set
	`

	var stats models.QuickStats
	err := r.db.GetContext(ctx, &stats, query, familyAccountID)
	if err != nil {
		return nil, err
	}

	return &stats, nil
}

// Budget limit repository methods
func (r *PostgresRepository) GetBudgetLimits(ctx context.Context, familyAccountID string) ([]models.BudgetLimitDetail, error) {
	query := `
		SELECT
			b.*,
			c.category_name,
			c.category_type,
			c.color_code
		FROM budget_limits b
		JOIN categories c ON b.category_id = c.category_id
		WHERE b.family_account_id = $1
		ORDER BY c.category_name
	`

	var limits []models.BudgetLimitDetail
	err := r.db.SelectContext(ctx, &limits, query, familyAccountID)
	if err != nil {
		return nil, err
	}

	return limits, nil
}

// UpsertBudgetLimit inserts or replaces the limit for (family, category) in a
// single statement. The unique constraint makes concurrent sets converge on
// one row instead of racing check-then-insert.
func (r *PostgresRepository) UpsertBudgetLimit(ctx context.Context, limit *models.BudgetLimit) error {
	query := `
		INSERT INTO budget_limits (budget_id, family_account_id, category_id, limit_amount, limit_percentage, period_type, start_date, end_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		ON CONFLICT (family_account_id, category_id) DO UPDATE
		SET limit_amount = EXCLUDED.limit_amount,
			limit_percentage = EXCLUDED.limit_percentage,
			period_type = EXCLUDED.period_type,
			start_date = EXCLUDED.start_date,
			end_date = EXCLUDED.end_date,
			updated_at = EXCLUDED.updated_at
		RETURNING budget_id, created_at
	`

	if limit.ID == "" {
		limit.ID = uuid.New().String()
	}

	now := time.Now().UTC()
	limit.UpdatedAt = now

	err := r.db.QueryRowxContext(ctx, query,
		limit.ID, limit.FamilyAccountID, limit.CategoryID,
		limit.LimitAmount, limit.LimitPercentage, limit.PeriodType,
		limit.StartDate, limit.EndDate, now).
		Scan(&limit.ID, &limit.CreatedAt)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	return nil
}

func (r *PostgresRepository) DeleteBudgetLimit(ctx context.Context, familyAccountID, budgetID string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM budget_limits WHERE budget_id = $1 AND family_account_id = $2`,
		budgetID, familyAccountID)
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows > 0, nil
}
