package handlers

import (
	"errors"

	"mixbeat/internal/services/storage"
	"mixbeat/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type StorageHandler struct {
	storageService storage.Service
}

func NewStorageHandler(storageService storage.Service) *StorageHandler {
	return &StorageHandler{storageService: storageService}
}

// Upload accepts a multipart file and stores it under the given folder.
func (h *StorageHandler) Upload(c *fiber.Ctx) error {
	if _, err := extractUserClaims(c); err != nil {
		return response.Unauthorized(c)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.BadRequest(c, "file is required")
	}
	folder := c.FormValue("folder", "uploads")

	file, err := fileHeader.Open()
	if err != nil {
		return response.ServerError(c, "failed to read upload")
	}
	defer file.Close()

	key, err := h.storageService.Upload(c.Context(), file, fileHeader.Size, fileHeader.Filename, folder)
	if err != nil {
		return response.ServerError(c, "failed to store file")
	}
	return response.Created(c, fiber.Map{"key": key})
}

// Presign returns a time-limited download URL for a stored object.
func (h *StorageHandler) Presign(c *fiber.Ctx) error {
	key := c.Params("*")
	url, err := h.storageService.Presign(c.Context(), key, storage.DefaultPresignExpiry)
	if err != nil {
		if errors.Is(err, storage.ErrEmptyKey) {
			return response.BadRequest(c, "object key is required")
		}
		return response.ServerError(c, "failed to presign object")
	}
	return response.Success(c, fiber.Map{"url": url})
}
