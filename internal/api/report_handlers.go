package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetDashboardOverview handles GET /api/reports/dashboard-overview
func (h *Handler) GetDashboardOverview(c *gin.Context) {
	_, familyID := identity(c)

	summary, err := h.svc.DashboardOverview(c.Request.Context(), familyID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetRecentActivity handles GET /api/reports/recent-activity
func (h *Handler) GetRecentActivity(c *gin.Context) {
	_, familyID := identity(c)

	details, err := h.svc.RecentActivity(c.Request.Context(), familyID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": details})
}

// GetCategoryBreakdown handles GET /api/reports/category-breakdown
func (h *Handler) GetCategoryBreakdown(c *gin.Context) {
	_, familyID := identity(c)

	totals, err := h.svc.CategoryBreakdown(c.Request.Context(), familyID,
		c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": totals})
}

// GetQuickStats handles GET /api/reports/quick-stats
func (h *Handler) GetQuickStats(c *gin.Context) {
	_, familyID := identity(c)

	stats, err := h.svc.QuickStats(c.Request.Context(), familyID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetMonthlySummary handles GET /api/reports/monthly/:year/:month
func (h *Handler) GetMonthlySummary(c *gin.Context) {
	_, familyID := identity(c)

	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_INPUT", "Invalid year")
		return
	}

	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_INPUT", "Invalid month")
		return
	}

	summary, err := h.svc.MonthlySummary(c.Request.Context(), familyID, year, month)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetAnnualReport handles GET /api/reports/annual/:year
func (h *Handler) GetAnnualReport(c *gin.Context) {
	_, familyID := identity(c)

	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_INPUT", "Invalid year")
		return
	}

	report, err := h.svc.AnnualReport(c.Request.Context(), familyID, year)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
