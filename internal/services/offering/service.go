// Package offering manages the service-provider marketplace catalog.
package offering

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"mixbeat/internal/models"
	"mixbeat/internal/repositories"
)

var (
	ErrOfferingNotFound = errors.New("offering not found")
	ErrNotOwner         = errors.New("offering belongs to another provider")
	ErrInvalidOffering  = errors.New("invalid offering")
	ErrInvalidStatus    = errors.New("invalid offering status")
)

type Service interface {
	// Register stores a new offering for the provider. New offerings start
	// pending until a status update activates them.
	Register(ctx context.Context, providerID string, input *models.ServiceOffering) (*models.ServiceOffering, error)
	ListAll(ctx context.Context) ([]models.ServiceOffering, error)
	ListByProvider(ctx context.Context, providerID string) ([]models.ServiceOffering, error)
	// Update replaces the client-owned fields of an offering. Only the
	// provider that registered the offering may change it.
	Update(ctx context.Context, providerID, id string, input *models.ServiceOffering) (*models.ServiceOffering, error)
	UpdateStatus(ctx context.Context, providerID, id, status string) (*models.ServiceOffering, error)
	Delete(ctx context.Context, providerID, id string) error
}

type service struct {
	repo repositories.OfferingRepository
}

func NewService(repo repositories.OfferingRepository) Service {
	if repo == nil {
		panic("repo is required")
	}
	return &service{repo: repo}
}

func validStatus(status string) bool {
	switch status {
	case models.OfferingStatusPending, models.OfferingStatusActive, models.OfferingStatusInactive:
		return true
	}
	return false
}

func validate(input *models.ServiceOffering) error {
	if strings.TrimSpace(input.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidOffering)
	}
	if input.BasePrice.IsNegative() {
		return fmt.Errorf("%w: base price cannot be negative", ErrInvalidOffering)
	}
	return nil
}

func (s *service) Register(ctx context.Context, providerID string, input *models.ServiceOffering) (*models.ServiceOffering, error) {
	if providerID == "" {
		return nil, fmt.Errorf("%w: provider is required", ErrInvalidOffering)
	}
	if err := validate(input); err != nil {
		return nil, err
	}

	input.ID = ""
	input.ProviderID = providerID
	input.Status = models.OfferingStatusPending
	if err := s.repo.Create(ctx, input); err != nil {
		return nil, fmt.Errorf("failed to register offering: %w", err)
	}
	return input, nil
}

func (s *service) ListAll(ctx context.Context) ([]models.ServiceOffering, error) {
	offerings, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list offerings: %w", err)
	}
	return offerings, nil
}

func (s *service) ListByProvider(ctx context.Context, providerID string) ([]models.ServiceOffering, error) {
	offerings, err := s.repo.ListByProvider(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list provider offerings: %w", err)
	}
	return offerings, nil
}

// owned fetches the offering and checks that providerID registered it.
func (s *service) owned(ctx context.Context, providerID, id string) (*models.ServiceOffering, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrOfferingNotFound) {
		return nil, ErrOfferingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get offering: %w", err)
	}
	if existing.ProviderID != providerID {
		return nil, ErrNotOwner
	}
	return existing, nil
}

func (s *service) Update(ctx context.Context, providerID, id string, input *models.ServiceOffering) (*models.ServiceOffering, error) {
	if err := validate(input); err != nil {
		return nil, err
	}
	existing, err := s.owned(ctx, providerID, id)
	if err != nil {
		return nil, err
	}

	// Identity and lifecycle are server-owned.
	input.ID = existing.ID
	input.ProviderID = existing.ProviderID
	input.Status = existing.Status
	input.CreatedAt = existing.CreatedAt
	if err := s.repo.Update(ctx, input); err != nil {
		return nil, fmt.Errorf("failed to update offering: %w", err)
	}
	return input, nil
}

func (s *service) UpdateStatus(ctx context.Context, providerID, id, status string) (*models.ServiceOffering, error) {
	if !validStatus(status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	existing, err := s.owned(ctx, providerID, id)
	if err != nil {
		return nil, err
	}

	existing.Status = status
	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to update offering status: %w", err)
	}
	return existing, nil
}

func (s *service) Delete(ctx context.Context, providerID, id string) error {
	if _, err := s.owned(ctx, providerID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete offering: %w", err)
	}
	return nil
}
