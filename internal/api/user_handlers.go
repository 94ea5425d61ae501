package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/whuang/family-budget-server/internal/models"
)

// GetFamilyMembers handles GET /api/users/family-members
func (h *Handler) GetFamilyMembers(c *gin.Context) {
	_, familyID := identity(c)

	members, err := h.svc.GetFamilyMembers(c.Request.Context(), familyID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"familyMembers": members})
}

// AddFamilyMember handles POST /api/users/family-members
func (h *Handler) AddFamilyMember(c *gin.Context) {
	_, familyID := identity(c)

	var req models.AddFamilyMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_INPUT", "Email and full name are required")
		return
	}

	member, err := h.svc.AddFamilyMember(c.Request.Context(), familyID, req)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "Family member added successfully",
		"familyMember": member,
	})
}

// RemoveFamilyMember handles DELETE /api/users/family-members/:id (soft
// deactivation, not a row delete).
func (h *Handler) RemoveFamilyMember(c *gin.Context) {
	userID, familyID := identity(c)

	if err := h.svc.RemoveFamilyMember(c.Request.Context(), familyID, userID, c.Param("id")); err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Family member removed successfully"})
}

// UpdateProfile handles PUT /api/users/profile
func (h *Handler) UpdateProfile(c *gin.Context) {
	userID, _ := identity(c)

	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_INPUT", "Invalid profile update")
		return
	}

	if err := h.svc.UpdateProfile(c.Request.Context(), userID, req); err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
}
