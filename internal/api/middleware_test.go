package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/whuang/family-budget-server/internal/errs"
	"github.com/whuang/family-budget-server/internal/models"
	"github.com/whuang/family-budget-server/internal/service"
)

var testSecret = []byte("test-secret-key")

// stubUserResolver satisfies service.Service but only implements
// ResolveActiveUser. Calling anything else panics, which is fine here:
// the middleware must never get past a failed resolution.
type stubUserResolver struct {
	service.Service
	user       *models.User
	resolveErr error
}

func (s *stubUserResolver) ResolveActiveUser(_ context.Context, _ string) (*models.User, error) {
	if s.resolveErr != nil {
		return nil, s.resolveErr
	}
	return s.user, nil
}

func signTestToken(t *testing.T, userID string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString(testSecret)
	assert.NoError(t, err)
	return signed
}

func newMiddlewareRouter(svc service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("jwtSecret", testSecret)
		c.Next()
	})
	router.GET("/protected", AuthMiddleware(svc), func(c *gin.Context) {
		userID, familyID := identity(c)
		c.JSON(http.StatusOK, gin.H{"userId": userID, "familyAccountId": familyID})
	})
	return router
}

func unmarshalResponse(w *httptest.ResponseRecorder, v any) error {
	return json.Unmarshal(w.Body.Bytes(), v)
}

func doProtected(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareSetsIdentity(t *testing.T) {
	svc := &stubUserResolver{user: &models.User{ID: "user-1", FamilyAccountID: "family-1"}}
	router := newMiddlewareRouter(svc)

	w := doProtected(router, "Bearer "+signTestToken(t, "user-1"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "family-1")
}

func TestAuthMiddlewareRejectsMissingAndMalformedTokens(t *testing.T) {
	svc := &stubUserResolver{user: &models.User{ID: "user-1", FamilyAccountID: "family-1"}}
	router := newMiddlewareRouter(svc)

	for _, header := range []string{"", "Bearer", "Token abc", "Bearer not-a-jwt"} {
		w := doProtected(router, header)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
}

func TestAuthMiddlewareInactiveUserIsUnauthorized(t *testing.T) {
	svc := &stubUserResolver{resolveErr: errs.NewAuthError("User not found or inactive")}
	router := newMiddlewareRouter(svc)

	w := doProtected(router, "Bearer "+signTestToken(t, "user-1"))

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var resp models.ErrorResponse
	assert.NoError(t, unmarshalResponse(w, &resp))
	assert.Equal(t, "UNAUTHORIZED", resp.Code)
}

func TestAuthMiddlewareLookupFailureIsServerError(t *testing.T) {
	// A repository failure during user resolution is not a credentials
	// problem and must not read as one.
	svc := &stubUserResolver{resolveErr: fmt.Errorf("error getting user: %w", errors.New("connection refused"))}
	router := newMiddlewareRouter(svc)

	w := doProtected(router, "Bearer "+signTestToken(t, "user-1"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp models.ErrorResponse
	assert.NoError(t, unmarshalResponse(w, &resp))
	assert.Equal(t, "INTERNAL_ERROR", resp.Code)
}
