package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/whuang/family-budget-server/internal/models"
)

// GetTransactions handles GET /api/transactions
func (h *Handler) GetTransactions(c *gin.Context) {
	_, familyID := identity(c)

	filter := models.TransactionFilter{
		StartDate:  c.Query("startDate"),
		EndDate:    c.Query("endDate"),
		CategoryID: c.Query("categoryId"),
		Search:     c.Query("search"),
	}

	details, err := h.svc.GetTransactions(c.Request.Context(), familyID, filter)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": details})
}

// GetRecentTransactions handles GET /api/transactions/recent
func (h *Handler) GetRecentTransactions(c *gin.Context) {
	_, familyID := identity(c)

	details, err := h.svc.GetRecentTransactions(c.Request.Context(), familyID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": details})
}

// CreateTransaction handles POST /api/transactions
func (h *Handler) CreateTransaction(c *gin.Context) {
	userID, familyID := identity(c)

	var req models.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_INPUT", "Amount, category, and date are required")
		return
	}

	txn, err := h.svc.CreateTransaction(c.Request.Context(), familyID, userID, req)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Transaction created successfully",
		"transaction": txn,
	})
}

// UpdateTransaction handles PUT /api/transactions/:id
func (h *Handler) UpdateTransaction(c *gin.Context) {
	_, familyID := identity(c)

	var req models.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_INPUT", "Amount, category, and date are required")
		return
	}

	txn, err := h.svc.UpdateTransaction(c.Request.Context(), familyID, c.Param("id"), req)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Transaction updated successfully",
		"transaction": txn,
	})
}

// DeleteTransaction handles DELETE /api/transactions/:id
func (h *Handler) DeleteTransaction(c *gin.Context) {
	_, familyID := identity(c)

	if err := h.svc.DeleteTransaction(c.Request.Context(), familyID, c.Param("id")); err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted successfully"})
}
