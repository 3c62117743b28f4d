package repositories

import (
	"context"
	"errors"
	"fmt"

	"mixbeat/internal/models"

	"gorm.io/gorm"
)

type offeringRepository struct {
	db *gorm.DB
}

// NewOfferingRepository creates a GORM-backed marketplace store.
func NewOfferingRepository(db *gorm.DB) OfferingRepository {
	return &offeringRepository{db: db}
}

func (r *offeringRepository) Create(ctx context.Context, offering *models.ServiceOffering) error {
	if err := r.db.WithContext(ctx).Create(offering).Error; err != nil {
		return fmt.Errorf("failed to create offering: %w", err)
	}
	return nil
}

func (r *offeringRepository) GetByID(ctx context.Context, id string) (*models.ServiceOffering, error) {
	var offering models.ServiceOffering
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&offering).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOfferingNotFound
		}
		return nil, fmt.Errorf("failed to get offering: %w", err)
	}
	return &offering, nil
}

func (r *offeringRepository) ListAll(ctx context.Context) ([]models.ServiceOffering, error) {
	var offerings []models.ServiceOffering
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&offerings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list offerings: %w", err)
	}
	return offerings, nil
}

func (r *offeringRepository) ListByProvider(ctx context.Context, providerID string) ([]models.ServiceOffering, error) {
	var offerings []models.ServiceOffering
	err := r.db.WithContext(ctx).
		Where("provider_id = ?", providerID).
		Order("created_at DESC").
		Find(&offerings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list provider offerings: %w", err)
	}
	return offerings, nil
}

func (r *offeringRepository) Update(ctx context.Context, offering *models.ServiceOffering) error {
	if err := r.db.WithContext(ctx).Save(offering).Error; err != nil {
		return fmt.Errorf("failed to update offering: %w", err)
	}
	return nil
}

func (r *offeringRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.ServiceOffering{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete offering: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrOfferingNotFound
	}
	return nil
}
