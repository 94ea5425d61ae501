package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/whuang/family-budget-server/internal/errs"
	"github.com/whuang/family-budget-server/internal/models"
)

// Category methods
func (s *DefaultService) GetCategories(ctx context.Context, familyAccountID string) ([]models.Category, error) {
	categories, err := s.repo.GetCategories(ctx, familyAccountID)
	if err != nil {
		return nil, fmt.Errorf("error getting categories: %w", err)
	}

	return categories, nil
}

func (s *DefaultService) GetCategory(ctx context.Context, familyAccountID, categoryID string) (*models.Category, error) {
	category, err := s.repo.GetCategory(ctx, familyAccountID, categoryID)
	if err != nil {
		return nil, fmt.Errorf("error getting category: %w", err)
	}

	if category == nil {
		return nil, errs.NewNotFoundError("Category not found")
	}

	return category, nil
}

// GetDefaultCategoryTotals returns every category with its current-month
// transaction total, most active first.
func (s *DefaultService) GetDefaultCategoryTotals(ctx context.Context, familyAccountID string) ([]models.CategoryWithTotal, error) {
	now := s.now().UTC()

	totals, err := s.repo.GetCategoriesWithMonthTotals(ctx, familyAccountID, now.Year(), int(now.Month()))
	if err != nil {
		return nil, fmt.Errorf("error getting category totals: %w", err)
	}

	return totals, nil
}

func (s *DefaultService) CreateCategory(
	ctx context.Context,
	familyAccountID, userID string,
	req models.CreateCategoryRequest,
) (*models.Category, error) {
	category := &models.Category{
		ID:              uuid.New().String(),
		FamilyAccountID: familyAccountID,
		Name:            req.CategoryName,
		Type:            req.CategoryType,
		ColorCode:       req.ColorCode,
		Icon:            req.Icon,
		Description:     req.Description,
		IsDefault:       false,
		IsActive:        true,
		CreatedByUserID: &userID,
	}

	if category.ColorCode == "" {
		category.ColorCode = "#CCCCCC"
	}
	if category.Icon == "" {
		category.Icon = "💰"
	}

	if err := s.repo.CreateCategory(ctx, category); err != nil {
		return nil, fmt.Errorf("error creating category: %w", err)
	}

	return category, nil
}

func (s *DefaultService) UpdateCategory(
	ctx context.Context,
	familyAccountID, categoryID string,
	req models.UpdateCategoryRequest,
) error {
	category, err := s.repo.GetCategory(ctx, familyAccountID, categoryID)
	if err != nil {
		return fmt.Errorf("error getting category: %w", err)
	}

	if category == nil {
		return errs.NewNotFoundError("Category not found")
	}

	if category.IsDefault {
		return errs.NewValidationError("Cannot modify default categories")
	}

	if req.CategoryName != "" {
		category.Name = req.CategoryName
	}
	if req.CategoryType != "" {
		category.Type = req.CategoryType
	}
	if req.ColorCode != "" {
		category.ColorCode = req.ColorCode
	}
	if req.Icon != "" {
		category.Icon = req.Icon
	}
	if req.Description != "" {
		category.Description = req.Description
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	if err := s.repo.UpdateCategory(ctx, category); err != nil {
		return fmt.Errorf("error updating category: %w", err)
	}

	return nil
}

// DeleteCategory removes a custom category. Default categories are immutable
// and categories still referenced by transactions must be deactivated instead.
func (s *DefaultService) DeleteCategory(ctx context.Context, familyAccountID, categoryID string) error {
	category, err := s.repo.GetCategory(ctx, familyAccountID, categoryID)
	if err != nil {
		return fmt.Errorf("error getting category: %w", err)
	}

	if category == nil {
		return errs.NewNotFoundError("Category not found")
	}

	if category.IsDefault {
		return errs.NewValidationError("Cannot delete default categories")
	}

	count, err := s.repo.CountTransactionsForCategory(ctx, familyAccountID, categoryID)
	if err != nil {
		return fmt.Errorf("error counting category transactions: %w", err)
	}

	if count > 0 {
		return errs.NewConflictError("Cannot delete category with existing transactions. Deactivate instead.")
	}

	if err := s.repo.DeleteCategory(ctx, familyAccountID, categoryID); err != nil {
		return fmt.Errorf("error deleting category: %w", err)
	}

	return nil
}
