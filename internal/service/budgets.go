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

// effectiveLimit resolves a limit to an absolute amount. A percentage-of-income
// limit is monthlyIncome × pct / 100; with no income that is zero.
func effectiveLimit(limit *models.BudgetLimitDetail, monthlyIncome decimal.Decimal) decimal.Decimal {
	if limit.LimitAmount != nil {
		return *limit.LimitAmount
	}
	if limit.LimitPercentage != nil {
		return monthlyIncome.Mul(*limit.LimitPercentage).Div(oneHundred)
	}
	return decimal.Zero
}

// evaluateLimit computes utilization of one budget limit against current
// spending. The returned percentage may exceed 100; clamping is a display
// concern.
func evaluateLimit(limit *models.BudgetLimitDetail, spending, monthlyIncome decimal.Decimal) models.BudgetStatus {
	eff := effectiveLimit(limit, monthlyIncome)

	pct := decimal.Zero
	if eff.IsPositive() {
		pct = spending.Div(eff).Mul(oneHundred).Round(2)
	}

	return models.BudgetStatus{
		BudgetID:        limit.ID,
		CategoryID:      limit.CategoryID,
		CategoryName:    limit.CategoryName,
		CategoryType:    limit.CategoryType,
		ColorCode:       limit.ColorCode,
		LimitAmount:     limit.LimitAmount,
		LimitPercentage: limit.LimitPercentage,
		PeriodType:      limit.PeriodType,
		CurrentSpending: spending,
		EffectiveLimit:  eff,
		Percentage:      pct,
		IsOverLimit:     pct.GreaterThanOrEqual(oneHundred),
	}
}

// Budget limit methods

// GetBudgetOverview returns every configured limit evaluated against
// current-month spending. Percentage-of-income limits use the current month's
// income as their base.
func (s *DefaultService) GetBudgetOverview(ctx context.Context, familyAccountID string) ([]models.BudgetStatus, error) {
	limits, err := s.repo.GetBudgetLimits(ctx, familyAccountID)
	if err != nil {
		return nil, fmt.Errorf("error getting budget limits: %w", err)
	}

	now := s.now().UTC()
	year, month := now.Year(), int(now.Month())

	spending, err := s.repo.GetMonthlyCategorySpending(ctx, familyAccountID, year, month)
	if err != nil {
		return nil, fmt.Errorf("error getting category spending: %w", err)
	}

	totals, err := s.repo.GetPeriodTotals(ctx, familyAccountID, year, month)
	if err != nil {
		return nil, fmt.Errorf("error getting period totals: %w", err)
	}

	statuses := make([]models.BudgetStatus, 0, len(limits))
	for i := range limits {
		spent, ok := spending[limits[i].CategoryID]
		if !ok {
			spent = decimal.Zero
		}
		statuses = append(statuses, evaluateLimit(&limits[i], spent, totals.TotalIncome))
	}

	return statuses, nil
}

// SetBudgetLimit upserts the limit for a category. Exactly one of limitAmount
// or limitPercentage must be provided; setting the same category twice updates
// the existing row.
func (s *DefaultService) SetBudgetLimit(
	ctx context.Context,
	familyAccountID string,
	req models.SetBudgetLimitRequest,
) (*models.BudgetLimit, error) {
	if req.LimitAmount == nil && req.LimitPercentage == nil {
		return nil, errs.NewValidationError("Either limit amount or percentage is required")
	}

	if req.LimitAmount != nil && req.LimitPercentage != nil {
		return nil, errs.NewValidationError("Provide either limit amount or percentage, not both")
	}

	if req.LimitAmount != nil && !req.LimitAmount.IsPositive() {
		return nil, errs.NewValidationError("Limit amount must be positive")
	}

	if req.LimitPercentage != nil && !req.LimitPercentage.IsPositive() {
		return nil, errs.NewValidationError("Limit percentage must be positive")
	}

	if _, err := uuid.Parse(req.CategoryID); err != nil {
		return nil, errs.NewValidationError("Invalid category ID format. Expected UUID.")
	}

	category, err := s.repo.GetCategory(ctx, familyAccountID, req.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("error getting category: %w", err)
	}

	if category == nil {
		return nil, errs.NewNotFoundError("Category not found")
	}

	limit := &models.BudgetLimit{
		FamilyAccountID: familyAccountID,
		CategoryID:      req.CategoryID,
		LimitAmount:     req.LimitAmount,
		LimitPercentage: req.LimitPercentage,
		PeriodType:      req.PeriodType,
	}

	if req.StartDate != "" {
		start, err := time.Parse(transactionDateLayout, req.StartDate)
		if err != nil {
			return nil, errs.NewValidationError("Invalid start date. Expected YYYY-MM-DD.")
		}
		limit.StartDate = &start
	}

	if req.EndDate != "" {
		end, err := time.Parse(transactionDateLayout, req.EndDate)
		if err != nil {
			return nil, errs.NewValidationError("Invalid end date. Expected YYYY-MM-DD.")
		}
		limit.EndDate = &end
	}

	if err := s.repo.UpsertBudgetLimit(ctx, limit); err != nil {
		return nil, fmt.Errorf("error saving budget limit: %w", err)
	}

	return limit, nil
}

// DeleteBudgetLimit removes a limit scoped to the caller's family. An id
// belonging to another family reads as not found.
func (s *DefaultService) DeleteBudgetLimit(ctx context.Context, familyAccountID, budgetID string) error {
	deleted, err := s.repo.DeleteBudgetLimit(ctx, familyAccountID, budgetID)
	if err != nil {
		return fmt.Errorf("error deleting budget limit: %w", err)
	}

	if !deleted {
		return errs.NewNotFoundError("Budget limit not found")
	}

	return nil
}
