package api

import (
	"github.com/gin-gonic/gin"
	"github.com/whuang/family-budget-server/internal/service"
)

// Handler holds the API dependencies
type Handler struct {
	svc service.Service
}

// NewHandler creates a new API handler
func NewHandler(svc service.Service) *Handler {
	return &Handler{svc: svc}
}

// SetupRoutes registers all API routes on the router
func (h *Handler) SetupRoutes(router *gin.Engine) {
	api := router.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.Logout)
		auth.GET("/profile", AuthMiddleware(h.svc), h.GetProfile)
	}

	protected := api.Group("", AuthMiddleware(h.svc))

	transactions := protected.Group("/transactions")
	{
		transactions.GET("", h.GetTransactions)
		transactions.GET("/recent", h.GetRecentTransactions)
		transactions.POST("", h.CreateTransaction)
		transactions.PUT("/:id", h.UpdateTransaction)
		transactions.DELETE("/:id", h.DeleteTransaction)
	}

	categories := protected.Group("/categories")
	{
		categories.GET("", h.GetCategories)
		categories.GET("/default", h.GetDefaultCategories)
		categories.GET("/:id", h.GetCategory)
		categories.POST("", h.CreateCategory)
		categories.PUT("/:id", h.UpdateCategory)
		categories.DELETE("/:id", h.DeleteCategory)
	}

	budgets := protected.Group("/budgets")
	{
		budgets.GET("", h.GetBudgets)
		budgets.POST("", h.SetBudgetLimit)
		budgets.DELETE("/:id", h.DeleteBudgetLimit)
	}

	reports := protected.Group("/reports")
	{
		reports.GET("/dashboard-overview", h.GetDashboardOverview)
		reports.GET("/recent-activity", h.GetRecentActivity)
		reports.GET("/category-breakdown", h.GetCategoryBreakdown)
		reports.GET("/quick-stats", h.GetQuickStats)
		reports.GET("/monthly/:year/:month", h.GetMonthlySummary)
		reports.GET("/annual/:year", h.GetAnnualReport)
	}

	users := protected.Group("/users")
	{
		users.GET("/family-members", h.GetFamilyMembers)
		users.POST("/family-members", h.AddFamilyMember)
		users.DELETE("/family-members/:id", h.RemoveFamilyMember)
		users.PUT("/profile", h.UpdateProfile)
	}
}

// identity returns the authenticated (userID, familyAccountID) pair set by the
// auth middleware.
func identity(c *gin.Context) (string, string) {
	return c.GetString(ContextUserID), c.GetString(ContextFamilyAccountID)
}
