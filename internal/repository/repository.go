package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/whuang/family-budget-server/internal/models"
)

// PeriodTotals holds the income/expense sums for one period. Expenses are
// reported as an absolute value.
type PeriodTotals struct {
	TotalIncome   decimal.Decimal `db:"total_income"`
	TotalExpenses decimal.Decimal `db:"total_expenses"`
}

// MonthTotalsRow is one month's sums from the annual aggregation query. Only
// months with transactions are returned; the service zero-fills the rest.
type MonthTotalsRow struct {
	Month         int             `db:"month"`
	TotalIncome   decimal.Decimal `db:"total_income"`
	TotalExpenses decimal.Decimal `db:"total_expenses"`
}

// CategorySpending maps category id to absolute spend for a period.
type CategorySpending map[string]decimal.Decimal

// Repository interface defines the methods that any repository implementation
// must satisfy. Every method that reads or writes family data takes the
// caller's familyAccountID and filters by it; this is the single place tenant
// scoping is enforced.
type Repository interface {
	// Family account operations
	CreateFamilyWithOwner(ctx context.Context, family *models.FamilyAccount, owner *models.User, defaults []models.Category) error
	GetFamilyAccountByName(ctx context.Context, name string) (*models.FamilyAccount, error)
	GetFamilyAccountByID(ctx context.Context, id string) (*models.FamilyAccount, error)

	// User operations
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetFamilyMembers(ctx context.Context, familyAccountID string) ([]models.User, error)
	DeactivateUser(ctx context.Context, familyAccountID, userID string) (bool, error)
	UpdateUserProfile(ctx context.Context, user *models.User) error
	TouchLastLogin(ctx context.Context, userID string) error

	// Category operations
	CreateCategory(ctx context.Context, category *models.Category) error
	GetCategories(ctx context.Context, familyAccountID string) ([]models.Category, error)
	GetCategory(ctx context.Context, familyAccountID, categoryID string) (*models.Category, error)
	GetCategoriesWithMonthTotals(ctx context.Context, familyAccountID string, year, month int) ([]models.CategoryWithTotal, error)
	UpdateCategory(ctx context.Context, category *models.Category) error
	DeleteCategory(ctx context.Context, familyAccountID, categoryID string) error
	CountTransactionsForCategory(ctx context.Context, familyAccountID, categoryID string) (int, error)

	// Transaction operations
	CreateTransaction(ctx context.Context, txn *models.Transaction) error
	GetTransactions(ctx context.Context, familyAccountID string, filter models.TransactionFilter) ([]models.TransactionDetail, error)
	GetRecentTransactions(ctx context.Context, familyAccountID string, limit int) ([]models.TransactionDetail, error)
	GetTransaction(ctx context.Context, familyAccountID, transactionID string) (*models.Transaction, error)
	UpdateTransaction(ctx context.Context, txn *models.Transaction) (bool, error)
	DeleteTransaction(ctx context.Context, familyAccountID, transactionID string) (bool, error)

	// Aggregation operations
	GetPeriodTotals(ctx context.Context, familyAccountID string, year, month int) (*PeriodTotals, error)
	GetMonthlyTotalsForYear(ctx context.Context, familyAccountID string, year int) ([]MonthTotalsRow, error)
	GetCategoryBreakdown(ctx context.Context, familyAccountID, startDate, endDate string) ([]models.CategoryTotal, error)
	GetMonthlyCategorySpending(ctx context.Context, familyAccountID string, year, month int) (CategorySpending, error)
	GetQuickStats(ctx context.Context, familyAccountID string) (*models.QuickStats, error)

	// Budget limit operations
	GetBudgetLimits(ctx context.Context, familyAccountID string) ([]models.BudgetLimitDetail, error)
	UpsertBudgetLimit(ctx context.Context, limit *models.BudgetLimit) error
	DeleteBudgetLimit(ctx context.Context, familyAccountID, budgetID string) (bool, error)
}
