package handlers

import (
	"errors"

	"mixbeat/internal/models"
	"mixbeat/internal/services/offering"
	"mixbeat/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type OfferingHandler struct {
	offeringService offering.Service
}

func NewOfferingHandler(offeringService offering.Service) *OfferingHandler {
	return &OfferingHandler{offeringService: offeringService}
}

func (h *OfferingHandler) offeringError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, offering.ErrOfferingNotFound):
		return response.NotFound(c, "service not found")
	case errors.Is(err, offering.ErrNotOwner):
		return response.Error(c, fiber.StatusForbidden, "service belongs to another provider")
	case errors.Is(err, offering.ErrInvalidOffering), errors.Is(err, offering.ErrInvalidStatus):
		return response.BadRequest(c, err.Error())
	}
	return response.ServerError(c, "failed to process service")
}

func (h *OfferingHandler) Register(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	var input models.ServiceOffering
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request format")
	}

	created, err := h.offeringService.Register(c.Context(), claims.UserID(), &input)
	if err != nil {
		return h.offeringError(c, err)
	}
	return response.Created(c, created)
}

func (h *OfferingHandler) ListAll(c *fiber.Ctx) error {
	offerings, err := h.offeringService.ListAll(c.Context())
	if err != nil {
		return response.ServerError(c, "failed to list services")
	}
	return response.Success(c, offerings)
}

func (h *OfferingHandler) ListByProvider(c *fiber.Ctx) error {
	providerID := c.Params("uid")
	if providerID == "" {
		return response.BadRequest(c, "provider uid is required")
	}

	offerings, err := h.offeringService.ListByProvider(c.Context(), providerID)
	if err != nil {
		return response.ServerError(c, "failed to list services")
	}
	return response.Success(c, offerings)
}

func (h *OfferingHandler) Update(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}
	id := c.Params("id")
	if id == "" {
		return response.BadRequest(c, "service id is required")
	}

	var input models.ServiceOffering
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request format")
	}

	updated, err := h.offeringService.Update(c.Context(), claims.UserID(), id, &input)
	if err != nil {
		return h.offeringError(c, err)
	}
	return response.Success(c, updated)
}

func (h *OfferingHandler) UpdateStatus(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}
	id := c.Params("id")
	if id == "" {
		return response.BadRequest(c, "service id is required")
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "invalid request format")
	}

	updated, err := h.offeringService.UpdateStatus(c.Context(), claims.UserID(), id, body.Status)
	if err != nil {
		return h.offeringError(c, err)
	}
	return response.Success(c, updated)
}

func (h *OfferingHandler) Delete(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}
	id := c.Params("id")
	if id == "" {
		return response.BadRequest(c, "service id is required")
	}

	if err := h.offeringService.Delete(c.Context(), claims.UserID(), id); err != nil {
		return h.offeringError(c, err)
	}
	return response.Success(c, fiber.Map{"deleted": id})
}
