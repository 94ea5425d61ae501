package models

import "github.com/shopspring/decimal"

// Request models
type RegisterRequest struct {
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
	FullName        string `json:"fullName" binding:"required"`
	AccountName     string `json:"accountName" binding:"required"`
	IsJoiningFamily bool   `json:"isJoiningFamily"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	FullName       string `json:"fullName"`
	ProfilePicture string `json:"profilePicture"`
}

type AddFamilyMemberRequest struct {
	Email    string `json:"email" binding:"required,email"`
	FullName string `json:"fullName" binding:"required"`
}

type CreateTransactionRequest struct {
	Amount            decimal.Decimal `json:"amount" binding:"required"`
	CategoryID        string          `json:"categoryId" binding:"required"`
	Description       string          `json:"description"`
	TransactionDate   string          `json:"transactionDate" binding:"required"`
	IsRecurring       bool            `json:"isRecurring"`
	RecurrencePattern string          `json:"recurrencePattern"`
}

type CreateCategoryRequest struct {
	CategoryName string `json:"categoryName" binding:"required"`
	CategoryType string `json:"categoryType" binding:"required,oneof=income expense"`
	ColorCode    string `json:"colorCode"`
	Icon         string `json:"icon"`
	Description  string `json:"description"`
}

type UpdateCategoryRequest struct {
	CategoryName string `json:"categoryName"`
	CategoryType string `json:"categoryType" binding:"omitempty,oneof=income expense"`
	ColorCode    string `json:"colorCode"`
	Icon         string `json:"icon"`
	Description  string `json:"description"`
	IsActive     *bool  `json:"isActive"`
}

type SetBudgetLimitRequest struct {
	CategoryID      string           `json:"categoryId" binding:"required"`
	LimitAmount     *decimal.Decimal `json:"limitAmount"`
	LimitPercentage *decimal.Decimal `json:"limitPercentage"`
	PeriodType      string           `json:"periodType" binding:"required"`
	StartDate       string           `json:"startDate"`
	EndDate         string           `json:"endDate"`
}

// TransactionFilter narrows transaction listings. Zero values mean "no filter".
type TransactionFilter struct {
	StartDate  string
	EndDate    string
	CategoryID string
	Search     string
}

// Response models
type AuthResponse struct {
	Message string    `json:"message"`
	Token   string    `json:"token,omitempty"`
	User    *UserInfo `json:"user,omitempty"`
}

type UserInfo struct {
	UserID            string `json:"userId"`
	Email             string `json:"email"`
	FullName          string `json:"fullName"`
	FamilyAccountID   string `json:"familyAccountId"`
	FamilyAccountName string `json:"familyAccountName,omitempty"`
}

type MonthlySummary struct {
	TotalIncome       decimal.Decimal `json:"totalIncome"`
	TotalExpenses     decimal.Decimal `json:"totalExpenses"`
	TotalSavings      decimal.Decimal `json:"totalSavings"`
	SavingsPercentage decimal.Decimal `json:"savingsPercentage"`
}

type MonthTotals struct {
	Month           int             `json:"month"`
	MonthlyIncome   decimal.Decimal `json:"monthlyIncome"`
	MonthlyExpenses decimal.Decimal `json:"monthlyExpenses"`
}

type AnnualReport struct {
	Year                int             `json:"year"`
	MonthlyData         []MonthTotals   `json:"monthlyData"`
	TotalAnnualIncome   decimal.Decimal `json:"totalAnnualIncome"`
	TotalAnnualExpenses decimal.Decimal `json:"totalAnnualExpenses"`
	TotalAnnualSavings  decimal.Decimal `json:"totalAnnualSavings"`
}

type CategoryTotal struct {
	CategoryName     string          `db:"category_name" json:"categoryName"`
	CategoryType     string          `db:"category_type" json:"categoryType"`
	ColorCode        string          `db:"color_code" json:"colorCode"`
	TotalAmount      decimal.Decimal `db:"total_amount" json:"totalAmount"`
	TransactionCount int             `db:"transaction_count" json:"transactionCount"`
}

// CategoryWithTotal is a category plus its current-month transaction total, as
// returned by the default-categories dashboard endpoint.
type CategoryWithTotal struct {
	CategoryID   string          `db:"category_id" json:"categoryId"`
	CategoryName string          `db:"category_name" json:"categoryName"`
	CategoryType string          `db:"category_type" json:"categoryType"`
	ColorCode    string          `db:"color_code" json:"colorCode"`
	Icon         string          `db:"icon" json:"icon"`
	TotalAmount  decimal.Decimal `db:"total_amount" json:"totalAmount"`
}

type QuickStats struct {
	TotalTransactions int `db:"total_transactions" json:"totalTransactions"`
	ActiveCategories  int `db:"active_categories" json:"activeCategories"`
	BudgetLimitsSet   int `db:"budget_limits_set" json:"budgetLimitsSet"`
}

// BudgetStatus is a budget limit evaluated against current-month spending.
type BudgetStatus struct {
	BudgetID        string           `json:"budgetId"`
	CategoryID      string           `json:"categoryId"`
	CategoryName    string           `json:"categoryName"`
	CategoryType    string           `json:"categoryType"`
	ColorCode       string           `json:"colorCode"`
	LimitAmount     *decimal.Decimal `json:"limitAmount,omitempty"`
	LimitPercentage *decimal.Decimal `json:"limitPercentage,omitempty"`
	PeriodType      string           `json:"periodType"`
	CurrentSpending decimal.Decimal  `json:"currentSpending"`
	EffectiveLimit  decimal.Decimal  `json:"effectiveLimit"`
	Percentage      decimal.Decimal  `json:"percentage"`
	IsOverLimit     bool             `json:"isOverLimit"`
}

type ErrorResponse struct {
	Status  string `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}
