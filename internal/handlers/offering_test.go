package handlers

import (
	"context"
	"net/http"
	"testing"

	"mixbeat/internal/models"
	"mixbeat/internal/services/offering"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type stubOfferingService struct {
	offering *models.ServiceOffering
	err      error

	registeredBy string
	deleted      []string
}

func (s *stubOfferingService) Register(_ context.Context, providerID string, input *models.ServiceOffering) (*models.ServiceOffering, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.registeredBy = providerID
	input.ID = "off-1"
	input.ProviderID = providerID
	input.Status = models.OfferingStatusPending
	return input, nil
}

func (s *stubOfferingService) ListAll(_ context.Context) ([]models.ServiceOffering, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []models.ServiceOffering{*s.offering}, nil
}

func (s *stubOfferingService) ListByProvider(_ context.Context, providerID string) ([]models.ServiceOffering, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []models.ServiceOffering{*s.offering}, nil
}

func (s *stubOfferingService) Update(_ context.Context, providerID, id string, input *models.ServiceOffering) (*models.ServiceOffering, error) {
	if s.err != nil {
		return nil, s.err
	}
	input.ID = id
	input.ProviderID = providerID
	return input, nil
}

func (s *stubOfferingService) UpdateStatus(_ context.Context, providerID, id, status string) (*models.ServiceOffering, error) {
	if s.err != nil {
		return nil, s.err
	}
	o := *s.offering
	o.Status = status
	return &o, nil
}

func (s *stubOfferingService) Delete(_ context.Context, providerID, id string) error {
	if s.err != nil {
		return s.err
	}
	s.deleted = append(s.deleted, id)
	return nil
}

func newOfferingApp(os offering.Service) *fiber.App {
	h := NewOfferingHandler(os)
	app := fiber.New()
	services := app.Group("/api/services", authAs("prov-1"))
	services.Post("/", h.Register)
	services.Get("/", h.ListAll)
	services.Get("/provider/:uid", h.ListByProvider)
	services.Put("/:id/status", h.UpdateStatus)
	services.Put("/:id", h.Update)
	services.Delete("/:id", h.Delete)
	return app
}

func TestRegisterService(t *testing.T) {
	t.Run("uses the token identity as provider", func(t *testing.T) {
		os := &stubOfferingService{}
		app := newOfferingApp(os)

		resp, body := doJSON(t, app, http.MethodPost, "/api/services/", map[string]interface{}{
			"name":      "Stem mixing",
			"basePrice": "250",
		})
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, "prov-1", os.registeredBy)
		assert.Equal(t, "prov-1", body["providerId"])
		assert.Equal(t, models.OfferingStatusPending, body["status"])
	})

	t.Run("invalid input is a 400", func(t *testing.T) {
		os := &stubOfferingService{err: offering.ErrInvalidOffering}
		app := newOfferingApp(os)

		resp, _ := doJSON(t, app, http.MethodPost, "/api/services/", map[string]interface{}{})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestUpdateServiceStatus(t *testing.T) {
	base := &models.ServiceOffering{
		ID:         "off-1",
		ProviderID: "prov-1",
		Name:       "Stem mixing",
		BasePrice:  decimal.NewFromInt(250),
		Status:     models.OfferingStatusPending,
	}

	t.Run("activates", func(t *testing.T) {
		os := &stubOfferingService{offering: base}
		app := newOfferingApp(os)

		resp, body := doJSON(t, app, http.MethodPut, "/api/services/off-1/status", map[string]interface{}{
			"status": models.OfferingStatusActive,
		})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, models.OfferingStatusActive, body["status"])
	})

	t.Run("another provider's offering is a 403", func(t *testing.T) {
		os := &stubOfferingService{err: offering.ErrNotOwner}
		app := newOfferingApp(os)

		resp, _ := doJSON(t, app, http.MethodPut, "/api/services/off-1/status", map[string]interface{}{
			"status": models.OfferingStatusActive,
		})
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("unknown offering is a 404", func(t *testing.T) {
		os := &stubOfferingService{err: offering.ErrOfferingNotFound}
		app := newOfferingApp(os)

		resp, _ := doJSON(t, app, http.MethodDelete, "/api/services/missing", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
