package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/whuang/family-budget-server/internal/models"
)

const transactionDetailColumns = `
	t.transaction_id,
	t.description,
	t.amount,
	t.transaction_date,
	t.created_at,
	c.category_id,
	c.category_name,
	c.category_type,
	c.color_code,
	u.full_name AS added_by_user_name
`

// Transaction repository methods
func (r *PostgresRepository) CreateTransaction(ctx context.Context, txn *models.Transaction) error {
	query := `
		INSERT INTO transactions (transaction_id, family_account_id, user_id, category_id, amount, description, transaction_date, is_recurring, recurrence_pattern, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	if txn.ID == "" {
		txn.ID = uuid.New().String()
	}

	now := time.Now().UTC()
	txn.CreatedAt = now
	txn.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		txn.ID, txn.FamilyAccountID, txn.UserID, txn.CategoryID, txn.Amount,
		txn.Description, txn.TransactionDate, txn.IsRecurring, txn.RecurrencePattern,
		txn.CreatedAt, txn.UpdatedAt)

	return err
}

func (r *PostgresRepository) GetTransactions(
	ctx context.Context,
	familyAccountID string,
	filter models.TransactionFilter,
) ([]models.TransactionDetail, error) {
	query := `
		SELECT ` + transactionDetailColumns + `
		FROM transactions t
		JOIN categories c ON t.category_id = c.category_id
		JOIN users u ON t.user_id = u.user_id
		WHERE t.family_account_id = $1
	`

	args := []interface{}{familyAccountID}

	if filter.StartDate != "" {
		args = append(args, filter.StartDate)
		query += fmt.Sprintf(" AND t.transaction_date >= $%d", len(args))
	}

	if filter.EndDate != "" {
		args = append(args, filter.EndDate)
		query += fmt.Sprintf(" AND t.transaction_date <= $%d", len(args))
	}

	if filter.CategoryID != "" {
		args = append(args, filter.CategoryID)
		query += fmt.Sprintf(" AND t.category_id = $%d", len(args))
	}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		query += fmt.Sprintf(" AND (t.description ILIKE $%d OR c.category_name ILIKE $%d)", len(args), len(args))
	}

	query += ` ORDER BY t.transaction_date DESC, t.created_at DESC`

	var details []models.TransactionDetail
	err := r.db.SelectContext(ctx, &details, query, args...)
	if err != nil {
		return nil, err
	}

	return details, nil
}

func (r *PostgresRepository) GetRecentTransactions(
	ctx context.Context,
	familyAccountID string,
	limit int,
) ([]models.TransactionDetail, error) {
	query := `
		SELECT ` + transactionDetailColumns + `
		FROM transactions t
		JOIN categories c ON t.category_id = c.category_id
		JOIN users u ON t.user_id = u.user_id
		WHERE t.family_account_id = $1
		ORDER BY t.transaction_date DESC, t.created_at DESC
		LIMIT $2
	`

	var details []models.TransactionDetail
	err := r.db.SelectContext(ctx, &details, query, familyAccountID, limit)
	if err != nil {
		return nil, err
	}

	return details, nil
}

func (r *PostgresRepository) GetTransaction(ctx context.Context, familyAccountID, transactionID string) (*models.Transaction, error) {
	query := `SELECT * FROM transactions WHERE transaction_id = $1 AND family_account_id = $2`

	var txn models.Transaction
	err := r.db.GetContext(ctx, &txn, query, transactionID, familyAccountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Transaction not found
		}
		return nil, err
	}

	return &txn, nil
}

// UpdateTransaction rewrites the mutable fields of a transaction. Returns
// false when the row does not exist in the caller's family.
func (r *PostgresRepository) UpdateTransaction(ctx context.Context, txn *models.Transaction) (bool, error) {
	query := `
		UPDATE transactions
		SET amount = $3, category_id = $4, description = $5, transaction_date = $6,
			is_recurring = $7, recurrence_pattern = $8, updated_at = $9
		WHERE transaction_id = $1 AND family_account_id = $2
	`

	txn.UpdatedAt = time.Now().UTC()

	result, err := r.db.ExecContext(ctx, query,
		txn.ID, txn.FamilyAccountID, txn.Amount, txn.CategoryID, txn.Description,
		txn.TransactionDate, txn.IsRecurring, txn.RecurrencePattern, txn.UpdatedAt)
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows > 0, nil
}

func (r *PostgresRepository) DeleteTransaction(ctx context.Context, familyAccountID, transactionID string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM transactions WHERE transaction_id = $1 AND family_account_id = $2`,
		transactionID, familyAccountID)
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows > 0, nil
}
