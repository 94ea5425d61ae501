package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/whuang/family-budget-server/internal/models"
)

// GetCategories handles GET /api/categories
func (h *Handler) GetCategories(c *gin.Context) {
	_, familyID := identity(c)

	categories, err := h.svc.GetCategories(c.Request.Context(), familyID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// GetDefaultCategories handles GET /api/categories/default: every category
// with its current-month total, for the dashboard.
func (h *Handler) GetDefaultCategories(c *gin.Context) {
	_, familyID := identity(c)

	totals, err := h.svc.GetDefaultCategoryTotals(c.Request.Context(), familyID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": totals})
}

// GetCategory handles GET /api/categories/:id
func (h *Handler) GetCategory(c *gin.Context) {
	_, familyID := identity(c)

	category, err := h.svc.GetCategory(c.Request.Context(), familyID, c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": category})
}

// CreateCategory handles POST /api/categories
func (h *Handler) CreateCategory(c *gin.Context) {
	userID, familyID := identity(c)

	var req models.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_INPUT", "Category name and type are required")
		return
	}

	category, err := h.svc.CreateCategory(c.Request.Context(), familyID, userID, req)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Category created successfully",
		"categoryId": category.ID,
	})
}

// UpdateCategory handles PUT /api/categories/:id
func (h *Handler) UpdateCategory(c *gin.Context) {
	_, familyID := identity(c)

	var req models.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_INPUT", "Invalid category update")
		return
	}

	if err := h.svc.UpdateCategory(c.Request.Context(), familyID, c.Param("id"), req); err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category updated successfully"})
}

// DeleteCategory handles DELETE /api/categories/:id
func (h *Handler) DeleteCategory(c *gin.Context) {
	_, familyID := identity(c)

	if err := h.svc.DeleteCategory(c.Request.Context(), familyID, c.Param("id")); err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}
