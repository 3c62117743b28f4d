package repositories

import (
	"context"
	"errors"

	"mixbeat/internal/models"
)

var ErrProfileNotFound = errors.New("profile not found")

// ProfileRepository handles user profile persistence.
type ProfileRepository interface {
	GetByUID(ctx context.Context, uid string) (*models.UserProfile, error)
	Create(ctx context.Context, profile *models.UserProfile) error
	Update(ctx context.Context, profile *models.UserProfile) error
}
