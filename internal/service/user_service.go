package service

import (
	"context"
	"strings"

	"deckvault/internal/models"
	"deckvault/internal/repository"
)

// UserService manages user profile records.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// GetProfile returns the profile for a UID.
func (s *UserService) GetProfile(ctx context.Context, uid string) (*models.User, error) {
	return s.userRepo.GetByUID(ctx, uid)
}

// SyncProfile creates or refreshes the caller's profile record. The UID
// comes from the verified token, never from the request body.
func (s *UserService) SyncProfile(ctx context.Context, uid, displayName string) (*models.User, error) {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return nil, models.NewValidationError("Display name is required")
	}
	if len(displayName) > 100 {
		return nil, models.NewValidationError("Display name too long (max 100 characters)")
	}

	user := &models.User{UID: uid, DisplayName: displayName}
	if err := s.userRepo.Upsert(ctx, user); err != nil {
		return nil, err
	}
	return s.userRepo.GetByUID(ctx, uid)
}
