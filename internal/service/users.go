package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/whuang/family-budget-server/internal/errs"
	"github.com/whuang/family-budget-server/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// Family member methods
func (s *DefaultService) GetFamilyMembers(ctx context.Context, familyAccountID string) ([]models.User, error) {
	members, err := s.repo.GetFamilyMembers(ctx, familyAccountID)
	if err != nil {
		return nil, fmt.Errorf("error getting family members: %w", err)
	}

	return members, nil
}

// AddFamilyMember creates a placeholder account in the caller's family. The
// member gets a random password hash until they set one through an invite flow.
func (s *DefaultService) AddFamilyMember(
	ctx context.Context,
	familyAccountID string,
	req models.AddFamilyMemberRequest,
) (*models.User, error) {
	existing, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("error checking user existence: %w", err)
	}

	if existing != nil {
		return nil, errs.NewConflictError("User with this email already exists")
	}

	placeholder, err := bcrypt.GenerateFromPassword([]byte(uuid.New().String()), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing placeholder password: %w", err)
	}

	user := &models.User{
		ID:              uuid.New().String(),
		Email:           req.Email,
		FullName:        req.FullName,
		PasswordHash:    string(placeholder),
		FamilyAccountID: familyAccountID,
		IsActive:        true,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("error creating family member: %w", err)
	}

	return user, nil
}

func (s *DefaultService) RemoveFamilyMember(ctx context.Context, familyAccountID, callerUserID, memberUserID string) error {
	if memberUserID == callerUserID {
		return errs.NewValidationError("Cannot remove yourself from family account")
	}

	removed, err := s.repo.DeactivateUser(ctx, familyAccountID, memberUserID)
	if err != nil {
		return fmt.Errorf("error removing family member: %w", err)
	}

	if !removed {
		return errs.NewNotFoundError("Family member not found")
	}

	return nil
}

func (s *DefaultService) UpdateProfile(ctx context.Context, userID string, req models.UpdateProfileRequest) error {
	if req.FullName == "" && req.ProfilePicture == "" {
		return errs.NewValidationError("Nothing to update")
	}

	user, err := s.ResolveActiveUser(ctx, userID)
	if err != nil {
		return err
	}

	if req.FullName != "" {
		user.FullName = req.FullName
	}
	if req.ProfilePicture != "" {
		user.ProfilePicture = &req.ProfilePicture
	}

	if err := s.repo.UpdateUserProfile(ctx, user); err != nil {
		return fmt.Errorf("error updating profile: %w", err)
	}

	return nil
}
