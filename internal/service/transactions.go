package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/whuang/family-budget-server/internal/errs"
	"github.com/whuang/family-budget-server/internal/models"
)

const transactionDateLayout = "2006-01-02"
const recentTransactionLimit = 10

// normalizeAmount applies the storage sign convention: expense rows are
// negative, income rows positive, whatever sign the client submitted.
func normalizeAmount(categoryType string, amount decimal.Decimal) decimal.Decimal {
	if categoryType == models.CategoryTypeExpense {
		return amount.Abs().Neg()
	}
	return amount.Abs()
}

// validateDateFilter checks an optional YYYY-MM-DD query value before it
// reaches SQL, so a malformed date reads as bad input rather than a driver
// error.
func validateDateFilter(value string) error {
	if value == "" {
		return nil
	}
	if _, err := time.Parse(transactionDateLayout, value); err != nil {
		return errs.NewValidationError("Invalid date filter. Expected YYYY-MM-DD.")
	}
	return nil
}

// Transaction methods
func (s *DefaultService) GetTransactions(
	ctx context.Context,
	familyAccountID string,
	filter models.TransactionFilter,
) ([]models.TransactionDetail, error) {
	if err := validateDateFilter(filter.StartDate); err != nil {
		return nil, err
	}
	if err := validateDateFilter(filter.EndDate); err != nil {
		return nil, err
	}

	details, err := s.repo.GetTransactions(ctx, familyAccountID, filter)
	if err != nil {
		return nil, fmt.Errorf("error getting transactions: %w", err)
	}

	return details, nil
}

func (s *DefaultService) GetRecentTransactions(ctx context.Context, familyAccountID string) ([]models.TransactionDetail, error) {
	details, err := s.repo.GetRecentTransactions(ctx, familyAccountID, recentTransactionLimit)
	if err != nil {
		return nil, fmt.Errorf("error getting recent transactions: %w", err)
	}

	return details, nil
}

func (s *DefaultService) CreateTransaction(
	ctx context.Context,
	familyAccountID, userID string,
	req models.CreateTransactionRequest,
) (*models.Transaction, error) {
	category, date, err := s.validateTransactionInput(ctx, familyAccountID, req)
	if err != nil {
		return nil, err
	}

	txn := &models.Transaction{
		ID:              uuid.New().String(),
		FamilyAccountID: familyAccountID,
		UserID:          userID,
		CategoryID:      category.ID,
		Amount:          normalizeAmount(category.Type, req.Amount),
		Description:     req.Description,
		TransactionDate: date,
		IsRecurring:     req.IsRecurring,
	}
	if req.RecurrencePattern != "" {
		txn.RecurrencePattern = &req.RecurrencePattern
	}

	if err := s.repo.CreateTransaction(ctx, txn); err != nil {
		return nil, fmt.Errorf("error creating transaction: %w", err)
	}

	return txn, nil
}

func (s *DefaultService) UpdateTransaction(
	ctx context.Context,
	familyAccountID, transactionID string,
	req models.CreateTransactionRequest,
) (*models.Transaction, error) {
	existing, err := s.repo.GetTransaction(ctx, familyAccountID, transactionID)
	if err != nil {
		return nil, fmt.Errorf("error getting transaction: %w", err)
	}

	if existing == nil {
		return nil, errs.NewNotFoundError("Transaction not found")
	}

	category, date, err := s.validateTransactionInput(ctx, familyAccountID, req)
	if err != nil {
		return nil, err
	}

	existing.CategoryID = category.ID
	existing.Amount = normalizeAmount(category.Type, req.Amount)
	existing.Description = req.Description
	existing.TransactionDate = date
	existing.IsRecurring = req.IsRecurring
	existing.RecurrencePattern = nil
	if req.RecurrencePattern != "" {
		existing.RecurrencePattern = &req.RecurrencePattern
	}

	updated, err := s.repo.UpdateTransaction(ctx, existing)
	if err != nil {
		return nil, fmt.Errorf("error updating transaction: %w", err)
	}

	if !updated {
		return nil, errs.NewNotFoundError("Transaction not found")
	}

	return existing, nil
}

func (s *DefaultService) DeleteTransaction(ctx context.Context, familyAccountID, transactionID string) error {
	deleted, err := s.repo.DeleteTransaction(ctx, familyAccountID, transactionID)
	if err != nil {
		return fmt.Errorf("error deleting transaction: %w", err)
	}

	if !deleted {
		return errs.NewNotFoundError("Transaction not found")
	}

	return nil
}

// validateTransactionInput checks the amount, category reference and date of a
// create/update request and resolves the category within the caller's family.
func (s *DefaultService) validateTransactionInput(
	ctx context.Context,
	familyAccountID string,
	req models.CreateTransactionRequest,
) (*models.Category, time.Time, error) {
	if req.Amount.IsZero() {
		return nil, time.Time{}, errs.NewValidationError("Amount must be non-zero")
	}

	if _, err := uuid.Parse(req.CategoryID); err != nil {
		return nil, time.Time{}, errs.NewValidationError("Invalid category ID format. Expected UUID.")
	}

	date, err := time.Parse(transactionDateLayout, req.TransactionDate)
	if err != nil {
		return nil, time.Time{}, errs.NewValidationError("Invalid transaction date. Expected YYYY-MM-DD.")
	}

	category, err := s.repo.GetCategory(ctx, familyAccountID, req.CategoryID)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("error getting category: %w", err)
	}

	if category == nil {
		return nil, time.Time{}, errs.NewNotFoundError("Category not found")
	}

	return category, date, nil
}
