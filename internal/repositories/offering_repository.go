package repositories

import (
	"context"
	"errors"

	"mixbeat/internal/models"
)

var ErrOfferingNotFound = errors.New("offering not found")

// OfferingRepository stores marketplace service listings.
type OfferingRepository interface {
	Create(ctx context.Context, offering *models.ServiceOffering) error
	GetByID(ctx context.Context, id string) (*models.ServiceOffering, error)
	ListAll(ctx context.Context) ([]models.ServiceOffering, error)
	ListByProvider(ctx context.Context, providerID string) ([]models.ServiceOffering, error)
	Update(ctx context.Context, offering *models.ServiceOffering) error
	Delete(ctx context.Context, id string) error
}
