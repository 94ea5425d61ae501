package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/whuang/family-budget-server/internal/errs"
	"github.com/whuang/family-budget-server/internal/models"
	"github.com/whuang/family-budget-server/internal/repository"
)

var oneHundred = decimal.NewFromInt(100)

const monthsPerYear = 12

// buildMonthlySummary turns raw period totals into the summary payload.
// Savings percentage is 0 when there is no income.
func buildMonthlySummary(totals *repository.PeriodTotals) *models.MonthlySummary {
	savings := totals.TotalIncome.Sub(totals.TotalExpenses)

	savingsPct := decimal.Zero
	if totals.TotalIncome.IsPositive() {
		savingsPct = savings.Div(totals.TotalIncome).Mul(oneHundred).Round(2)
	}

	return &models.MonthlySummary{
		TotalIncome:       totals.TotalIncome,
		TotalExpenses:     totals.TotalExpenses,
		TotalSavings:      savings,
		SavingsPercentage: savingsPct,
	}
}

// Report methods
func (s *DefaultService) MonthlySummary(ctx context.Context, familyAccountID string, year, month int) (*models.MonthlySummary, error) {
	if month < 1 || month > monthsPerYear {
		return nil, errs.NewValidationError("Month must be between 1 and 12")
	}

	totals, err := s.repo.GetPeriodTotals(ctx, familyAccountID, year, month)
	if err != nil {
		return nil, fmt.Errorf("error getting period totals: %w", err)
	}

	return buildMonthlySummary(totals), nil
}

// AnnualReport returns exactly 12 month entries, January through December,
// zero-filled where no transactions exist, plus annual totals.
func (s *DefaultService) AnnualReport(ctx context.Context, familyAccountID string, year int) (*models.AnnualReport, error) {
	rows, err := s.repo.GetMonthlyTotalsForYear(ctx, familyAccountID, year)
	if err != nil {
		return nil, fmt.Errorf("error getting monthly totals: %w", err)
	}

	monthly := make([]models.MonthTotals, monthsPerYear)
	for i := range monthly {
		monthly[i] = models.MonthTotals{
			Month:           i + 1,
			MonthlyIncome:   decimal.Zero,
			MonthlyExpenses: decimal.Zero,
		}
	}

	for _, row := range rows {
		if row.Month < 1 || row.Month > monthsPerYear {
			continue
		}
		monthly[row.Month-1].MonthlyIncome = row.TotalIncome
		monthly[row.Month-1].MonthlyExpenses = row.TotalExpenses
	}

	totalIncome := decimal.Zero
	totalExpenses := decimal.Zero
	for _, m := range monthly {
		totalIncome = totalIncome.Add(m.MonthlyIncome)
		totalExpenses = totalExpenses.Add(m.MonthlyExpenses)
	}

	return &models.AnnualReport{
		Year:                year,
		MonthlyData:         monthly,
		TotalAnnualIncome:   totalIncome,
		TotalAnnualExpenses: totalExpenses,
		TotalAnnualSavings:  totalIncome.Sub(totalExpenses),
	}, nil
}

func (s *DefaultService) CategoryBreakdown(ctx context.Context, familyAccountID, startDate, endDate string) ([]models.CategoryTotal, error) {
	if (startDate == "") != (endDate == "") {
		return nil, errs.NewValidationError("Both startDate and endDate are required for a date range")
	}
	if err := validateDateFilter(startDate); err != nil {
		return nil, err
	}
	if err := validateDateFilter(endDate); err != nil {
		return nil, err
	}

	totals, err := s.repo.GetCategoryBreakdown(ctx, familyAccountID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("error getting category breakdown: %w", err)
	}

	return totals, nil
}

// DashboardOverview is the monthly summary for the current month.
func (s *DefaultService) DashboardOverview(ctx context.Context, familyAccountID string) (*models.MonthlySummary, error) {
	now := s.now().UTC()
	return s.MonthlySummary(ctx, familyAccountID, now.Year(), int(now.Month()))
}

func (s *DefaultService) RecentActivity(ctx context.Context, familyAccountID string) ([]models.TransactionDetail, error) {
	return s.GetRecentTransactions(ctx, familyAccountID)
}

func (s *DefaultService) QuickStats(ctx context.Context, familyAccountID string) (*models.QuickStats, error) {
	stats, err := s.repo.GetQuickStats(ctx, familyAccountID)
	if err != nil {
		return nil, fmt.Errorf("error getting quick stats: %w", err)
	}

	return stats, nil
}
