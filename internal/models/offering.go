package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Offering statuses
const (
	OfferingStatusPending  = "pending"
	OfferingStatusActive   = "active"
	OfferingStatusInactive = "inactive"
)

// ServiceOffering is a musician's marketplace listing: a bookable service
// with a starting price. Contract and music-request transactions settle
// against the wallet once a listing is agreed on; the listing itself carries
// no money.
type ServiceOffering struct {
	ID          string          `gorm:"primarykey;type:uuid" json:"id"`
	ProviderID  string          `gorm:"index;not null;size:128" json:"providerId"`
	Name        string          `gorm:"not null;size:255" json:"name"`
	Description string          `json:"description"`
	Category    string          `gorm:"size:100" json:"category"` // dj, live_band, production, ...
	BasePrice   decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"basePrice"`
	// PriceDescription qualifies the base price ("per hour", "from").
	PriceDescription string    `json:"priceDescription,omitempty"`
	Status           string    `gorm:"not null;default:'pending';index" json:"status"`
	TechnicalDetails JSON      `gorm:"type:jsonb" json:"technicalDetails,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func (o *ServiceOffering) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}
