package testutils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/whuang/family-budget-server/internal/api"
	"github.com/whuang/family-budget-server/internal/config"
	"github.com/whuang/family-budget-server/internal/models"
	"github.com/whuang/family-budget-server/internal/repository"
	"github.com/whuang/family-budget-server/internal/service"
)

// TestContext holds all dependencies for tests
type TestContext struct {
	Router          *gin.Engine
	Repository      repository.Repository
	Service         service.Service
	DB              *sqlx.DB
	FamilyAccountID string
	TestUserID      string
	TestUserJWT     string
}

// SetupTestContext creates a new test context with initialized dependencies.
// Tests are skipped when the test database is unreachable.
func SetupTestContext(t *testing.T) *TestContext {
	cfg := config.LoadConfig()

	// Never run integration tests against the real database
	if cfg.Database.TestDBName != "" {
		cfg.Database.DBName = cfg.Database.TestDBName
	} else {
		cfg.Database.DBName = "familybudget_test"
	}

	cfg.Auth.JWTSecret = "test-secret-key"

	db, err := config.SetupDatabase(cfg)
	if err != nil {
		t.Skipf("test database unavailable: %v", err)
	}

	repo := repository.NewPostgresRepository(db)
	svc := service.NewDefaultService(repo, cfg.Auth.JWTSecret, time.Duration(cfg.Auth.JWTExpiryHours)*time.Hour)
	handler := api.NewHandler(svc)

	gin.SetMode(gin.TestMode)
	router := gin.Default()
	router.Use(func(c *gin.Context) {
		c.Set("jwtSecret", []byte(cfg.Auth.JWTSecret))
		c.Next()
	})
	handler.SetupRoutes(router)

	familyID, userID, token := createTestFamily(t, svc, repo)

	return &TestContext{
		Router:          router,
		Repository:      repo,
		Service:         svc,
		DB:              db,
		FamilyAccountID: familyID,
		TestUserID:      userID,
		TestUserJWT:     token,
	}
}

// CleanupTestContext cleans up test resources
func CleanupTestContext(t *TestContext) {
	if t.DB != nil {
		cleanupTestDatabase(nil, t.Repository)
		t.DB.Close()
	}
}

// cleanupTestDatabase removes any existing test data, children before parents.
func cleanupTestDatabase(t *testing.T, repo repository.Repository) {
	pgRepo, ok := repo.(*repository.PostgresRepository)
	if !ok {
		return
	}
	db := pgRepo.GetDB()

	for _, table := range []string{"budget_limits", "transactions", "categories", "users", "family_accounts"} {
		if _, err := db.Exec("DELETE FROM " + table); err != nil && t != nil {
			t.Logf("Warning: Failed to clean %s: %v", table, err)
		}
	}
}

// createTestFamily registers a fresh family account and returns its owner's
// identifiers along with a valid token.
func createTestFamily(t *testing.T, svc service.Service, repo repository.Repository) (string, string, string) {
	cleanupTestDatabase(t, repo)

	resp, err := svc.Register(context.Background(), models.RegisterRequest{
		Email:           "testuser@example.com",
		Password:        "testpassword",
		ConfirmPassword: "testpassword",
		FullName:        "Test User",
		AccountName:     "Test Family",
	})
	assert.NoError(t, err, "Failed to create test family")

	return resp.User.FamilyAccountID, resp.User.UserID, resp.Token
}

// PerformRequest executes an HTTP request against the router
func PerformRequest(r http.Handler, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer

	if body != nil {
		jsonBody, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBody)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// AuthHeaders returns headers with Authorization token
func AuthHeaders(token string) map[string]string {
	return map[string]string{
		"Authorization": fmt.Sprintf("Bearer %s", token),
	}
}
