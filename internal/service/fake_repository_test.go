package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/whuang/family-budget-server/internal/models"
	"github.com/whuang/family-budget-server/internal/repository"
)

// fakeRepository is an in-memory Repository for service tests. It applies the
// same tenant scoping rules as the Postgres implementation.
type fakeRepository struct {
	families     map[string]*models.FamilyAccount
	users        map[string]*models.User
	categories   map[string]*models.Category
	transactions map[string]*models.Transaction
	budgets      map[string]*models.BudgetLimit

	forcedErr       error
	familyLookupErr error
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		families:     make(map[string]*models.FamilyAccount),
		users:        make(map[string]*models.User),
		categories:   make(map[string]*models.Category),
		transactions: make(map[string]*models.Transaction),
		budgets:      make(map[string]*models.BudgetLimit),
	}
}

// Family account operations

func (f *fakeRepository) CreateFamilyWithOwner(
	_ context.Context,
	family *models.FamilyAccount,
	owner *models.User,
	defaults []models.Category,
) error {
	if f.forcedErr != nil {
		return f.forcedErr
	}

	now := time.Now().UTC()
	if family.ID == "" {
		family.ID = uuid.New().String()
	}
	family.CreatedAt = now
	f.families[family.ID] = family

	if owner.ID == "" {
		owner.ID = uuid.New().String()
	}
	owner.FamilyAccountID = family.ID
	owner.IsActive = true
	f.users[owner.ID] = owner
	family.CreatedByUserID = &owner.ID

	for i := range defaults {
		c := defaults[i]
		if c.ID == "" {
			c.ID = uuid.New().String()
		}
		c.FamilyAccountID = family.ID
		c.IsDefault = true
		c.IsActive = true
		f.categories[c.ID] = &c
	}

	return nil
}

func (f *fakeRepository) GetFamilyAccountByName(_ context.Context, name string) (*models.FamilyAccount, error) {
	if f.forcedErr != nil {
		return nil, f.forcedErr
	}
	for _, fam := range f.families {
		if fam.AccountName == name {
			return fam, nil
		}
	}
	return nil, nil
}

func (f *fakeRepository) GetFamilyAccountByID(_ context.Context, id string) (*models.FamilyAccount, error) {
	if f.familyLookupErr != nil {
		return nil, f.familyLookupErr
	}
	if f.forcedErr != nil {
		return nil, f.forcedErr
	}
	return f.families[id], nil
}

// User operations

func (f *fakeRepository) CreateUser(_ context.Context, user *models.User) error {
	if f.forcedErr != nil {
		return f.forcedErr
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeRepository) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	if f.forcedErr != nil {
		return nil, f.forcedErr
	}
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeRepository) GetUserByID(_ context.Context, id string) (*models.User, error) {
	if f.forcedErr != nil {
		return nil, f.forcedErr
	}
	return f.users[id], nil
}

func (f *fakeRepository) GetFamilyMembers(_ context.Context, familyAccountID string) ([]models.User, error) {
	var members []models.User
	for _, u := range f.users {
		if u.FamilyAccountID == familyAccountID && u.IsActive {
			members = append(members, *u)
		}
	}
	sort.Slice(members, func(i, j int) bool { return members[i].CreatedAt.Before(members[j].CreatedAt) })
	return members, nil
}

func (f *fakeRepository) DeactivateUser(_ context.Context, familyAccountID, userID string) (bool, error) {
	u, ok := f.users[userID]
	if !ok || u.FamilyAccountID != familyAccountID || !u.IsActive {
		return false, nil
	}
	u.IsActive = false
	return true, nil
}

func (f *fakeRepository) UpdateUserProfile(_ context.Context, user *models.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeRepository) TouchLastLogin(_ context.Context, userID string) error {
	if u, ok := f.users[userID]; ok {
		now := time.Now().UTC()
		u.LastLogin = &now
	}
	return nil
}

// Category operations

func (f *fakeRepository) CreateCategory(_ context.Context, category *models.Category) error {
	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	f.categories[category.ID] = category
	return nil
}

func (f *fakeRepository) GetCategories(_ context.Context, familyAccountID string) ([]models.Category, error) {
	var out []models.Category
	for _, c := range f.categories {
		if c.FamilyAccountID == familyAccountID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeRepository) GetCategory(_ context.Context, familyAccountID, categoryID string) (*models.Category, error) {
	c, ok := f.categories[categoryID]
	if !ok || c.FamilyAccountID != familyAccountID {
		return nil, nil
	}
	return c, nil
}

func (f *fakeRepository) GetCategoriesWithMonthTotals(
	_ context.Context,
	familyAccountID string,
	year, month int,
) ([]models.CategoryWithTotal, error) {
	var out []models.CategoryWithTotal
	for _, c := range f.categories {
		if c.FamilyAccountID != familyAccountID {
			continue
		}
		total := decimal.Zero
		for _, t := range f.transactions {
			if t.FamilyAccountID == familyAccountID && t.CategoryID == c.ID &&
				t.TransactionDate.Year() == year && int(t.TransactionDate.Month()) == month {
				total = total.Add(t.Amount)
			}
		}
		out = append(out, models.CategoryWithTotal{
			CategoryID:   c.ID,
			CategoryName: c.Name,
			CategoryType: c.Type,
			ColorCode:    c.ColorCode,
			Icon:         c.Icon,
			TotalAmount:  total,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].TotalAmount.Abs().GreaterThan(out[j].TotalAmount.Abs())
	})
	return out, nil
}

func (f *fakeRepository) UpdateCategory(_ context.Context, category *models.Category) error {
	f.categories[category.ID] = category
	return nil
}

func (f *fakeRepository) DeleteCategory(_ context.Context, familyAccountID, categoryID string) error {
	if c, ok := f.categories[categoryID]; ok && c.FamilyAccountID == familyAccountID {
		delete(f.categories, categoryID)
	}
	return nil
}

func (f *fakeRepository) CountTransactionsForCategory(_ context.Context, familyAccountID, categoryID string) (int, error) {
	count := 0
	for _, t := range f.transactions {
		if t.FamilyAccountID == familyAccountID && t.CategoryID == categoryID {
			count++
		}
	}
	return count, nil
}

// Transaction operations

func (f *fakeRepository) CreateTransaction(_ context.Context, txn *models.Transaction) error {
	if txn.ID == "" {
		txn.ID = uuid.New().String()
	}
	txn.CreatedAt = time.Now().UTC()
	f.transactions[txn.ID] = txn
	return nil
}

func (f *fakeRepository) detail(t *models.Transaction) models.TransactionDetail {
	d := models.TransactionDetail{
		ID:              t.ID,
		Description:     t.Description,
		Amount:          t.Amount,
		TransactionDate: t.TransactionDate,
		CreatedAt:       t.CreatedAt,
		CategoryID:      t.CategoryID,
	}
	if c, ok := f.categories[t.CategoryID]; ok {
		d.CategoryName = c.Name
		d.CategoryType = c.Type
		d.ColorCode = c.ColorCode
	}
	if u, ok := f.users[t.UserID]; ok {
		d.AddedByUserName = u.FullName
	}
	return d
}

func (f *fakeRepository) GetTransactions(
	_ context.Context,
	familyAccountID string,
	filter models.TransactionFilter,
) ([]models.TransactionDetail, error) {
	var out []models.TransactionDetail
	for _, t := range f.transactions {
		if t.FamilyAccountID != familyAccountID {
			continue
		}
		if filter.CategoryID != "" && t.CategoryID != filter.CategoryID {
			continue
		}
		out = append(out, f.detail(t))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TransactionDate.After(out[j].TransactionDate) })
	return out, nil
}

func (f *fakeRepository) GetRecentTransactions(ctx context.Context, familyAccountID string, limit int) ([]models.TransactionDetail, error) {
	out, err := f.GetTransactions(ctx, familyAccountID, models.TransactionFilter{})
	if err != nil {
		return nil, err
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeRepository) GetTransaction(_ context.Context, familyAccountID, transactionID string) (*models.Transaction, error) {
	t, ok := f.transactions[transactionID]
	if !ok || t.FamilyAccountID != familyAccountID {
		return nil, nil
	}
	return t, nil
}

func (f *fakeRepository) UpdateTransaction(_ context.Context, txn *models.Transaction) (bool, error) {
	existing, ok := f.transactions[txn.ID]
	if !ok || existing.FamilyAccountID != txn.FamilyAccountID {
		return false, nil
	}
	f.transactions[txn.ID] = txn
	return true, nil
}

func (f *fakeRepository) DeleteTransaction(_ context.Context, familyAccountID, transactionID string) (bool, error) {
	t, ok := f.transactions[transactionID]
	if !ok || t.FamilyAccountID != familyAccountID {
		return false, nil
	}
	delete(f.transactions, transactionID)
	return true, nil
}

// Aggregation operations

func (f *fakeRepository) categoryType(categoryID string) string {
	if c, ok := f.categories[categoryID]; ok {
		return c.Type
	}
	return ""
}

func (f *fakeRepository) GetPeriodTotals(_ context.Context, familyAccountID string, year, month int) (*repository.PeriodTotals, error) {
	if f.forcedErr != nil {
		return nil, f.forcedErr
	}
	totals := &repository.PeriodTotals{TotalIncome: decimal.Zero, TotalExpenses: decimal.Zero}
	for _, t := range f.transactions {
		if t.FamilyAccountID != familyAccountID ||
			t.TransactionDate.Year() != year || int(t.TransactionDate.Month()) != month {
			continue
		}
		switch f.categoryType(t.CategoryID) {
		case models.CategoryTypeIncome:
			totals.TotalIncome = totals.TotalIncome.Add(t.Amount)
		case models.CategoryTypeExpense:
			totals.TotalExpenses = totals.TotalExpenses.Add(t.Amount.Abs())
		}
	}
	return totals, nil
}

func (f *fakeRepository) GetMonthlyTotalsForYear(ctx context.Context, familyAccountID string, year int) ([]repository.MonthTotalsRow, error) {
	var rows []repository.MonthTotalsRow
	for month := 1; month <= 12; month++ {
		totals, err := f.GetPeriodTotals(ctx, familyAccountID, year, month)
		if err != nil {
			return nil, err
		}
		if totals.TotalIncome.IsZero() && totals.TotalExpenses.IsZero() {
			continue
		}
		rows = append(rows, repository.MonthTotalsRow{
			Month:         month,
			TotalIncome:   totals.TotalIncome,
			TotalExpenses: totals.TotalExpenses,
		})
	}
	return rows, nil
}

func (f *fakeRepository) GetCategoryBreakdown(_ context.Context, familyAccountID, startDate, endDate string) ([]models.CategoryTotal, error) {
	byCategory := make(map[string]*models.CategoryTotal)
	for _, t := range f.transactions {
		if t.FamilyAccountID != familyAccountID {
			continue
		}
		if startDate != "" && endDate != "" {
			dateStr := t.TransactionDate.Format("2006-01-02")
			if dateStr < startDate || dateStr > endDate {
				continue
			}
		}
		c, ok := f.categories[t.CategoryID]
		if !ok {
			continue
		}
		entry, ok := byCategory[c.ID]
		if !ok {
			entry = &models.CategoryTotal{
				CategoryName: c.Name,
				CategoryType: c.Type,
				ColorCode:    c.ColorCode,
				TotalAmount:  decimal.Zero,
			}
			byCategory[c.ID] = entry
		}
		entry.TotalAmount = entry.TotalAmount.Add(t.Amount.Abs())
		entry.TransactionCount++
	}

	var out []models.CategoryTotal
	for _, entry := range byCategory {
		out = append(out, *entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TotalAmount.GreaterThan(out[j].TotalAmount) })
	return out, nil
}

func (f *fakeRepository) GetMonthlyCategorySpending(
	_ context.Context,
	familyAccountID string,
	year, month int,
) (repository.CategorySpending, error) {
	spending := make(repository.CategorySpending)
	for _, t := range f.transactions {
		if t.FamilyAccountID != familyAccountID ||
			t.TransactionDate.Year() != year || int(t.TransactionDate.Month()) != month {
			continue
		}
		if f.categoryType(t.CategoryID) != models.CategoryTypeExpense {
			continue
		}
		spending[t.CategoryID] = spending[t.CategoryID].Add(t.Amount.Abs())
	}
	return spending, nil
}

func (f *fakeRepository) GetQuickStats(_ context.Context, familyAccountID string) (*models.QuickStats, error) {
	stats := &models.QuickStats{}
	for _, t := range f.transactions {
		if t.FamilyAccountID == familyAccountID {
			stats.TotalTransactions++
		}
	}
	for _, c := range f.categories {
		if c.FamilyAccountID == familyAccountID && c.IsActive {
			stats.ActiveCategories++
		}
	}
	for _, b := range f.budgets {
		if b.FamilyAccountID == familyAccountID {
			stats.BudgetLimitsSet++
		}
	}
	return stats, nil
}

// Budget limit operations

func (f *fakeRepository) GetBudgetLimits(_ context.Context, familyAccountID string) ([]models.BudgetLimitDetail, error) {
	var out []models.BudgetLimitDetail
	for _, b := range f.budgets {
		if b.FamilyAccountID != familyAccountID {
			continue
		}
		detail := models.BudgetLimitDetail{BudgetLimit: *b}
		if c, ok := f.categories[b.CategoryID]; ok {
			detail.CategoryName = c.Name
			detail.CategoryType = c.Type
			detail.ColorCode = c.ColorCode
		}
		out = append(out, detail)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CategoryName < out[j].CategoryName })
	return out, nil
}

func (f *fakeRepository) UpsertBudgetLimit(_ context.Context, limit *models.BudgetLimit) error {
	for _, b := range f.budgets {
		if b.FamilyAccountID == limit.FamilyAccountID && b.CategoryID == limit.CategoryID {
			limit.ID = b.ID
			limit.CreatedAt = b.CreatedAt
			f.budgets[b.ID] = limit
			return nil
		}
	}
	if limit.ID == "" {
		limit.ID = uuid.New().String()
	}
	limit.CreatedAt = time.Now().UTC()
	f.budgets[limit.ID] = limit
	return nil
}

func (f *fakeRepository) DeleteBudgetLimit(_ context.Context, familyAccountID, budgetID string) (bool, error) {
	b, ok := f.budgets[budgetID]
	if !ok || b.FamilyAccountID != familyAccountID {
		return false, nil
	}
	delete(f.budgets, budgetID)
	return true, nil
}
