package handlers

import (
	"errors"

	"mixbeat/internal/models"
	"mixbeat/internal/services/profile"
	"mixbeat/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type ProfileHandler struct {
	profileService profile.Service
}

func NewProfileHandler(profileService profile.Service) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

func (h *ProfileHandler) GetMyProfile(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	p, err := h.profileService.GetByUID(c.Context(), claims.UserID())
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return response.NotFound(c, "profile not found")
		}
		return response.ServerError(c, "failed to get profile")
	}

	// The app fetches the own profile on foreground; that is our presence
	// signal.
	h.profileService.TouchLastActive(c.Context(), claims.UserID())

	return response.Success(c, p)
}

// GetPublicProfile serves the anonymous projection, private fields hidden.
func (h *ProfileHandler) GetPublicProfile(c *fiber.Ctx) error {
	uid := c.Params("uid")
	if uid == "" {
		return response.BadRequest(c, "uid is required")
	}

	p, err := h.profileService.GetByUID(c.Context(), uid)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return response.NotFound(c, "profile not found")
		}
		return response.ServerError(c, "failed to get profile")
	}
	return response.Success(c, p.Public())
}

func (h *ProfileHandler) SaveProfile(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	var input models.UserProfile
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request format")
	}
	if input.UID != "" && input.UID != claims.UserID() {
		return response.BadRequest(c, "profile uid does not match token uid")
	}

	p, err := h.profileService.Upsert(c.Context(), claims.UserID(), &input)
	if err != nil {
		return response.ServerError(c, "failed to save profile")
	}
	return response.Success(c, p)
}
