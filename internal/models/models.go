package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category types
const (
	CategoryTypeIncome  = "income"
	CategoryTypeExpense = "expense"
)

// FamilyAccount is the tenant boundary: every user, category, transaction and
// budget limit belongs to exactly one family account.
type FamilyAccount struct {
	ID              string    `db:"family_account_id" json:"familyAccountId"`
	AccountName     string    `db:"account_name" json:"accountName"`
	CreatedByUserID *string   `db:"created_by_user_id" json:"createdByUserId,omitempty"`
	CreatedAt       time.Time `db:"created_at" json:"createdAt"`
}

// User represents a member of a family account
type User struct {
	ID              string     `db:"user_id" json:"userId"`
	Email           string     `db:"email" json:"email"`
	PasswordHash    string     `db:"password_hash" json:"-"`
	FullName        string     `db:"full_name" json:"fullName"`
	ProfilePicture  *string    `db:"profile_picture" json:"profilePicture,omitempty"`
	FamilyAccountID string     `db:"family_account_id" json:"familyAccountId"`
	IsActive        bool       `db:"is_active" json:"isActive"`
	LastLogin       *time.Time `db:"last_login" json:"lastLogin,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updatedAt"`
}

// Category classifies transactions as income or expense. Default categories are
// seeded for each family at registration and cannot be modified or deleted.
type Category struct {
	ID              string    `db:"category_id" json:"categoryId"`
	FamilyAccountID string    `db:"family_account_id" json:"-"`
	Name            string    `db:"category_name" json:"categoryName"`
	Type            string    `db:"category_type" json:"categoryType"`
	ColorCode       string    `db:"color_code" json:"colorCode"`
	Icon            string    `db:"icon" json:"icon"`
	Description     string    `db:"description" json:"description"`
	IsDefault       bool      `db:"is_default" json:"isDefault"`
	IsActive        bool      `db:"is_active" json:"isActive"`
	CreatedByUserID *string   `db:"created_by_user_id" json:"-"`
	CreatedAt       time.Time `db:"created_at" json:"createdAt"`
}

// Transaction is a single recorded income or expense. Amounts are stored
// sign-normalized from the category type: expense rows negative, income rows
// positive, whatever sign the client submitted.
type Transaction struct {
	ID                string          `db:"transaction_id" json:"transactionId"`
	FamilyAccountID   string          `db:"family_account_id" json:"-"`
	UserID            string          `db:"user_id" json:"userId"`
	CategoryID        string          `db:"category_id" json:"categoryId"`
	Amount            decimal.Decimal `db:"amount" json:"amount"`
	Description       string          `db:"description" json:"description"`
	TransactionDate   time.Time       `db:"transaction_date" json:"transactionDate"`
	IsRecurring       bool            `db:"is_recurring" json:"isRecurring"`
	RecurrencePattern *string         `db:"recurrence_pattern" json:"recurrencePattern,omitempty"`
	CreatedAt         time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt         time.Time       `db:"updated_at" json:"updatedAt"`
}

// TransactionDetail is a transaction joined with its category and the user who
// recorded it, as returned by list/recent queries.
type TransactionDetail struct {
	ID              string          `db:"transaction_id" json:"transactionId"`
	Description     string          `db:"description" json:"description"`
	Amount          decimal.Decimal `db:"amount" json:"amount"`
	TransactionDate time.Time       `db:"transaction_date" json:"transactionDate"`
	CreatedAt       time.Time       `db:"created_at" json:"createdAt"`
	CategoryID      string          `db:"category_id" json:"categoryId"`
	CategoryName    string          `db:"category_name" json:"categoryName"`
	CategoryType    string          `db:"category_type" json:"categoryType"`
	ColorCode       string          `db:"color_code" json:"colorCode"`
	AddedByUserName string          `db:"added_by_user_name" json:"addedByUserName"`
}

// BudgetLimit is a per-category spending ceiling, either a fixed amount or a
// percentage of monthly income. Exactly one of LimitAmount / LimitPercentage is
// set; at most one limit exists per (family, category) pair.
type BudgetLimit struct {
	ID              string           `db:"budget_id" json:"budgetId"`
	FamilyAccountID string           `db:"family_account_id" json:"-"`
	CategoryID      string           `db:"category_id" json:"categoryId"`
	LimitAmount     *decimal.Decimal `db:"limit_amount" json:"limitAmount,omitempty"`
	LimitPercentage *decimal.Decimal `db:"limit_percentage" json:"limitPercentage,omitempty"`
	PeriodType      string           `db:"period_type" json:"periodType"`
	StartDate       *time.Time       `db:"start_date" json:"startDate,omitempty"`
	EndDate         *time.Time       `db:"end_date" json:"endDate,omitempty"`
	CreatedAt       time.Time        `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time        `db:"updated_at" json:"updatedAt"`
}

// BudgetLimitDetail is a budget limit joined with its category, as loaded for
// evaluation.
type BudgetLimitDetail struct {
	BudgetLimit
	CategoryName string `db:"category_name" json:"categoryName"`
	CategoryType string `db:"category_type" json:"categoryType"`
	ColorCode    string `db:"color_code" json:"colorCode"`
}
