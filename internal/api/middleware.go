package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/whuang/family-budget-server/internal/errs"
	"github.com/whuang/family-budget-server/internal/models"
	"github.com/whuang/family-budget-server/internal/service"
)

// Context keys set by the auth middleware
const (
	ContextUserID          = "userId"
	ContextFamilyAccountID = "familyAccountId"
)

// AuthMiddleware returns a Gin middleware for authentication. It verifies the
// bearer token's signature and expiry, then resolves the subject to an active
// user and stores the (user, family) identity on the request context.
func AuthMiddleware(svc service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Get the JWT token from the Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			unauthorized(c, "Authentication required")
			return
		}

		// Check if the Authorization header starts with "Bearer "
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			unauthorized(c, "Invalid token format")
			return
		}

		tokenString := parts[1]

		// Parse the JWT token
		jwtSecret := c.MustGet("jwtSecret").([]byte)
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			// Validate the signing method
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("invalid signing method")
			}
			return jwtSecret, nil
		})

		if err != nil || !token.Valid {
			if errors.Is(err, jwt.ErrTokenExpired) {
				unauthorized(c, "Token expired")
				return
			}
			unauthorized(c, "Invalid token")
			return
		}

		// Extract claims from the token
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			unauthorized(c, "Invalid token claims")
			return
		}

		userID, ok := claims["sub"].(string)
		if !ok {
			unauthorized(c, "Invalid user ID in token")
			return
		}

		// The token alone is not enough: the user must still exist and be
		// active, and the family scope comes from the stored row. A lookup
		// failure is a server error, not an auth failure.
		user, err := svc.ResolveActiveUser(c.Request.Context(), userID)
		if err != nil {
			var authErr *errs.AuthError
			if errors.As(err, &authErr) {
				unauthorized(c, "User not found or inactive")
				return
			}
			handleError(c, err)
			c.Abort()
			return
		}

		c.Set(ContextUserID, user.ID)
		c.Set(ContextFamilyAccountID, user.FamilyAccountID)
		c.Next()
	}
}

func unauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, models.ErrorResponse{
		Status:  "error",
		Code:    "UNAUTHORIZED",
		Message: message,
	})
	c.Abort()
}
