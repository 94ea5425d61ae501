package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/whuang/family-budget-server/internal/models"
)

// GetBudgets handles GET /api/budgets: every configured limit evaluated
// against current-month spending.
func (h *Handler) GetBudgets(c *gin.Context) {
	_, familyID := identity(c)

	statuses, err := h.svc.GetBudgetOverview(c.Request.Context(), familyID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budgetLimits": statuses})
}

// SetBudgetLimit handles POST /api/budgets (upsert)
func (h *Handler) SetBudgetLimit(c *gin.Context) {
	_, familyID := identity(c)

	var req models.SetBudgetLimitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_INPUT", "Category and period type are required")
		return
	}

	limit, err := h.svc.SetBudgetLimit(c.Request.Context(), familyID, req)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Budget limit saved successfully",
		"budgetLimit": limit,
	})
}

// DeleteBudgetLimit handles DELETE /api/budgets/:id
func (h *Handler) DeleteBudgetLimit(c *gin.Context) {
	_, familyID := identity(c)

	if err := h.svc.DeleteBudgetLimit(c.Request.Context(), familyID, c.Param("id")); err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Budget limit deleted successfully"})
}
