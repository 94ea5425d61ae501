package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/whuang/family-budget-server/internal/errs"
	"github.com/whuang/family-budget-server/internal/models"
	"github.com/whuang/family-budget-server/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// Service defines all the business logic operations
type Service interface {
	// Authentication
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	GetProfile(ctx context.Context, userID string) (*models.UserInfo, error)
	ResolveActiveUser(ctx context.Context, userID string) (*models.User, error)

	// Family members
	GetFamilyMembers(ctx context.Context, familyAccountID string) ([]models.User, error)
	AddFamilyMember(ctx context.Context, familyAccountID string, req models.AddFamilyMemberRequest) (*models.User, error)
	RemoveFamilyMember(ctx context.Context, familyAccountID, callerUserID, memberUserID string) error
	UpdateProfile(ctx context.Context, userID string, req models.UpdateProfileRequest) error

	// Categories
	GetCategories(ctx context.Context, familyAccountID string) ([]models.Category, error)
	GetCategory(ctx context.Context, familyAccountID, categoryID string) (*models.Category, error)
	GetDefaultCategoryTotals(ctx context.Context, familyAccountID string) ([]models.CategoryWithTotal, error)
	CreateCategory(ctx context.Context, familyAccountID, userID string, req models.CreateCategoryRequest) (*models.Category, error)
	UpdateCategory(ctx context.Context, familyAccountID, categoryID string, req models.UpdateCategoryRequest) error
	DeleteCategory(ctx context.Context, familyAccountID, categoryID string) error

	// Transactions
	GetTransactions(ctx context.Context, familyAccountID string, filter models.TransactionFilter) ([]models.TransactionDetail, error)
	GetRecentTransactions(ctx context.Context, familyAccountID string) ([]models.TransactionDetail, error)
	CreateTransaction(ctx context.Context, familyAccountID, userID string, req models.CreateTransactionRequest) (*models.Transaction, error)
	UpdateTransaction(ctx context.Context, familyAccountID, transactionID string, req models.CreateTransactionRequest) (*models.Transaction, error)
	DeleteTransaction(ctx context.Context, familyAccountID, transactionID string) error

	// Reports
	MonthlySummary(ctx context.Context, familyAccountID string, year, month int) (*models.MonthlySummary, error)
	AnnualReport(ctx context.Context, familyAccountID string, year int) (*models.AnnualReport, error)
	CategoryBreakdown(ctx context.Context, familyAccountID, startDate, endDate string) ([]models.CategoryTotal, error)
	DashboardOverview(ctx context.Context, familyAccountID string) (*models.MonthlySummary, error)
	RecentActivity(ctx context.Context, familyAccountID string) ([]models.TransactionDetail, error)
	QuickStats(ctx context.Context, familyAccountID string) (*models.QuickStats, error)

	// Budget limits
	GetBudgetOverview(ctx context.Context, familyAccountID string) ([]models.BudgetStatus, error)
	SetBudgetLimit(ctx context.Context, familyAccountID string, req models.SetBudgetLimitRequest) (*models.BudgetLimit, error)
	DeleteBudgetLimit(ctx context.Context, familyAccountID, budgetID string) error
}

// DefaultService implements the Service interface
type DefaultService struct {
	repo          repository.Repository
	jwtSecret     []byte
	tokenDuration time.Duration
	now           func() time.Time
}

// NewDefaultService creates a new DefaultService
func NewDefaultService(repo repository.Repository, jwtSecret string, tokenDuration time.Duration) *DefaultService {
	return &DefaultService{
		repo:          repo,
		jwtSecret:     []byte(jwtSecret),
		tokenDuration: tokenDuration,
		now:           time.Now,
	}
}

// defaultCategories is the seed set every new family account starts with.
// These rows are immutable once created.
func defaultCategories() []models.Category {
	return []models.Category{
		{Name: "Food", Type: models.CategoryTypeExpense, ColorCode: "#FF9800", Icon: "🍔"},
		{Name: "Transportation", Type: models.CategoryTypeExpense, ColorCode: "#2196F3", Icon: "🚗"},
		{Name: "Entertainment", Type: models.CategoryTypeExpense, ColorCode: "#E91E63", Icon: "🎬"},
		{Name: "Utilities", Type: models.CategoryTypeExpense, ColorCode: "#4CAF50", Icon: "💡"},
		{Name: "Shopping", Type: models.CategoryTypeExpense, ColorCode: "#9C27B0", Icon: "🛍️"},
		{Name: "Healthcare", Type: models.CategoryTypeExpense, ColorCode: "#F44336", Icon: "🏥"},
		{Name: "Salary", Type: models.CategoryTypeIncome, ColorCode: "#00897B", Icon: "💼"},
		{Name: "Other Income", Type: models.CategoryTypeIncome, ColorCode: "#607D8B", Icon: "💰"},
	}
}

// Authentication methods

// Register creates a user and either a brand-new family account (with seeded
// default categories) or joins an existing one by account name.
func (s *DefaultService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	if req.Password != req.ConfirmPassword {
		return nil, errs.NewValidationError("Passwords do not match")
	}

	existingUser, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("error checking user existence: %w", err)
	}

	if existingUser != nil {
		return nil, errs.NewConflictError("User already exists with this email")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Email:        req.Email,
		FullName:     req.FullName,
		PasswordHash: string(hashedPassword),
		IsActive:     true,
	}

	var familyName string

	if req.IsJoiningFamily {
		family, err := s.repo.GetFamilyAccountByName(ctx, req.AccountName)
		if err != nil {
			return nil, fmt.Errorf("error looking up family account: %w", err)
		}
		if family == nil {
			return nil, errs.NewNotFoundError("Family account not found")
		}

		user.FamilyAccountID = family.ID
		familyName = family.AccountName

		if err := s.repo.CreateUser(ctx, user); err != nil {
			return nil, fmt.Errorf("error creating user: %w", err)
		}
	} else {
		existing, err := s.repo.GetFamilyAccountByName(ctx, req.AccountName)
		if err != nil {
			return nil, fmt.Errorf("error looking up family account: %w", err)
		}
		if existing != nil {
			return nil, errs.NewConflictError("Family account name already taken")
		}

		family := &models.FamilyAccount{AccountName: req.AccountName}
		if err := s.repo.CreateFamilyWithOwner(ctx, family, user, defaultCategories()); err != nil {
			return nil, fmt.Errorf("error creating family account: %w", err)
		}
		familyName = family.AccountName
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	if err := s.repo.TouchLastLogin(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("error updating last login: %w", err)
	}

	return &models.AuthResponse{
		Message: "User registered successfully",
		Token:   token,
		User: &models.UserInfo{
			UserID:            user.ID,
			Email:             user.Email,
			FullName:          user.FullName,
			FamilyAccountID:   user.FamilyAccountID,
			FamilyAccountName: familyName,
		},
	}, nil
}

func (s *DefaultService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("error getting user: %w", err)
	}

	if user == nil || !user.IsActive {
		return nil, errs.NewAuthError("Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errs.NewAuthError("Invalid credentials")
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	if err := s.repo.TouchLastLogin(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("error updating last login: %w", err)
	}

	info := &models.UserInfo{
		UserID:          user.ID,
		Email:           user.Email,
		FullName:        user.FullName,
		FamilyAccountID: user.FamilyAccountID,
	}

	family, err := s.repo.GetFamilyAccountByID(ctx, user.FamilyAccountID)
	if err != nil {
		return nil, fmt.Errorf("error getting family account: %w", err)
	}
	if family != nil {
		info.FamilyAccountName = family.AccountName
	}

	return &models.AuthResponse{
		Message: "Login successful",
		Token:   token,
		User:    info,
	}, nil
}

func (s *DefaultService) GetProfile(ctx context.Context, userID string) (*models.UserInfo, error) {
	user, err := s.ResolveActiveUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	info := &models.UserInfo{
		UserID:          user.ID,
		Email:           user.Email,
		FullName:        user.FullName,
		FamilyAccountID: user.FamilyAccountID,
	}

	family, err := s.repo.GetFamilyAccountByID(ctx, user.FamilyAccountID)
	if err != nil {
		return nil, fmt.Errorf("error getting family account: %w", err)
	}
	if family != nil {
		info.FamilyAccountName = family.AccountName
	}

	return info, nil
}

// ResolveActiveUser loads a user by id and rejects missing or deactivated
// accounts. The auth middleware uses this to turn a verified token subject
// into a tenant identity.
func (s *DefaultService) ResolveActiveUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error getting user: %w", err)
	}

	if user == nil || !user.IsActive {
		return nil, errs.NewAuthError("User not found or inactive")
	}

	return user, nil
}

// Helper methods
func (s *DefaultService) generateJWT(user *models.User) (string, error) {
	expirationTime := s.now().Add(s.tokenDuration)

	claims := jwt.MapClaims{
		"sub":             user.ID,
		"email":           user.Email,
		"familyAccountId": user.FamilyAccountID,
		"exp":             expirationTime.Unix(),
		"iat":             s.now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
