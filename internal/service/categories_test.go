package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/whuang/family-budget-server/internal/errs"
	"github.com/whuang/family-budget-server/internal/models"
)

func TestCreateCategoryAppliesDefaults(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)
	fx := seedFamily(t, repo, "Smith Family")

	category, err := svc.CreateCategory(context.Background(), fx.familyID, fx.userID, models.CreateCategoryRequest{
		CategoryName: "Pets",
		CategoryType: models.CategoryTypeExpense,
	})
	assert.NoError(t, err)
	assert.Equal(t, "Pets", category.Name)
	assert.Equal(t, "#CCCCCC", category.ColorCode)
	assert.NotEmpty(t, category.Icon)
	assert.False(t, category.IsDefault)
	assert.True(t, category.IsActive)
	assert.Equal(t, fx.userID, *category.CreatedByUserID)
}

func TestUpdateCategory(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)
	fx := seedFamily(t, repo, "Smith Family")

	category, err := svc.CreateCategory(context.Background(), fx.familyID, fx.userID, models.CreateCategoryRequest{
		CategoryName: "Pets",
		CategoryType: models.CategoryTypeExpense,
	})
	assert.NoError(t, err)

	inactive := false
	err = svc.UpdateCategory(context.Background(), fx.familyID, category.ID, models.UpdateCategoryRequest{
		CategoryName: "Pet Care",
		ColorCode:    "#8E24AA",
		IsActive:     &inactive,
	})
	assert.NoError(t, err)

	stored := repo.categories[category.ID]
	assert.Equal(t, "Pet Care", stored.Name)
	assert.Equal(t, "#8E24AA", stored.ColorCode)
	assert.False(t, stored.IsActive)
	// Unset fields are left alone
	assert.Equal(t, models.CategoryTypeExpense, stored.Type)
}

func TestUpdateCategoryRejectsDefaults(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)
	fx := seedFamily(t, repo, "Smith Family")

	repo.categories[fx.expenseCatID].IsDefault = true

	err := svc.UpdateCategory(context.Background(), fx.familyID, fx.expenseCatID, models.UpdateCategoryRequest{
		CategoryName: "Renamed",
	})
	assert.IsType(t, &errs.ValidationError{}, err)
	assert.Equal(t, "Food", repo.categories[fx.expenseCatID].Name)
}

func TestDeleteCategoryRejectsDefaults(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)
	fx := seedFamily(t, repo, "Smith Family")

	repo.categories[fx.expenseCatID].IsDefault = true

	err := svc.DeleteCategory(context.Background(), fx.familyID, fx.expenseCatID)
	assert.IsType(t, &errs.ValidationError{}, err)
	assert.Contains(t, repo.categories, fx.expenseCatID)
}

func TestDeleteCategoryBlockedByTransactions(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)
	fx := seedFamily(t, repo, "Smith Family")

	category, err := svc.CreateCategory(context.Background(), fx.familyID, fx.userID, models.CreateCategoryRequest{
		CategoryName: "Pets",
		CategoryType: models.CategoryTypeExpense,
	})
	assert.NoError(t, err)

	addTransaction(repo, fx, category.ID, "-50", fixedNow)

	err = svc.DeleteCategory(context.Background(), fx.familyID, category.ID)
	assert.IsType(t, &errs.ConflictError{}, err)
	assert.Contains(t, repo.categories, category.ID)
}

func TestDeleteCategoryWithoutTransactions(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)
	fx := seedFamily(t, repo, "Smith Family")

	category, err := svc.CreateCategory(context.Background(), fx.familyID, fx.userID, models.CreateCategoryRequest{
		CategoryName: "Pets",
		CategoryType: models.CategoryTypeExpense,
	})
	assert.NoError(t, err)

	err = svc.DeleteCategory(context.Background(), fx.familyID, category.ID)
	assert.NoError(t, err)
	assert.NotContains(t, repo.categories, category.ID)
}

func TestCategoryTenantIsolation(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)
	smith := seedFamily(t, repo, "Smith Family")
	jones := seedFamily(t, repo, "Jones Family")

	// Reads don't cross family boundaries
	_, err := svc.GetCategory(context.Background(), jones.familyID, smith.expenseCatID)
	assert.IsType(t, &errs.NotFoundError{}, err)

	// Neither do writes
	err = svc.UpdateCategory(context.Background(), jones.familyID, smith.expenseCatID, models.UpdateCategoryRequest{
		CategoryName: "Hijacked",
	})
	assert.IsType(t, &errs.NotFoundError{}, err)

	err = svc.DeleteCategory(context.Background(), jones.familyID, smith.expenseCatID)
	assert.IsType(t, &errs.NotFoundError{}, err)
	assert.Contains(t, repo.categories, smith.expenseCatID)

	// Listings only show the caller's own categories
	categories, err := svc.GetCategories(context.Background(), smith.familyID)
	assert.NoError(t, err)
	for _, c := range categories {
		assert.Equal(t, smith.familyID, c.FamilyAccountID)
	}
}

func TestDefaultCategoryTotalsUseCurrentMonth(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)
	fx := seedFamily(t, repo, "Smith Family")

	addTransaction(repo, fx, fx.expenseCatID, "-300", fixedNow)
	addTransaction(repo, fx, fx.expenseCatID, "-200", fixedNow)
	// Previous month is excluded
	addTransaction(repo, fx, fx.expenseCatID, "-9999", fixedNow.AddDate(0, -1, 0))

	totals, err := svc.GetDefaultCategoryTotals(context.Background(), fx.familyID)
	assert.NoError(t, err)
	assert.Len(t, totals, 2)

	// Most active category first
	assert.Equal(t, "Food", totals[0].CategoryName)
	assertDecimalEqual(t, "-500", totals[0].TotalAmount)
	assert.Equal(t, "Salary", totals[1].CategoryName)
	assertDecimalEqual(t, "0", totals[1].TotalAmount)
}
