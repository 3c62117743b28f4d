package handlers

import (
	"errors"

	"mixbeat/internal/services/pix"
	"mixbeat/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// WebhookHandler receives payment gateway notifications.
type WebhookHandler struct {
	pixService pix.Service
}

func NewWebhookHandler(pixService pix.Service) *WebhookHandler {
	return &WebhookHandler{pixService: pixService}
}

// PixNotification handles the gateway's payment status callback. Approved
// payments credit the wallet; rejections and expirations cancel the pending
// record. The gateway retries on non-2xx, so unknown references return 404
// to stop the retry loop only after we logged them.
func (h *WebhookHandler) PixNotification(c *fiber.Ctx) error {
	var input struct {
		PaymentID string `json:"paymentId"`
		Status    string `json:"status"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request format")
	}
	if input.PaymentID == "" {
		return response.BadRequest(c, "payment id is required")
	}

	switch input.Status {
	case "approved":
		ok, err := h.pixService.ConfirmPixPayment(c.Context(), input.PaymentID)
		if err != nil {
			if errors.Is(err, pix.ErrUnknownPayment) {
				log.Warn().Str("payment_id", input.PaymentID).Msg("confirmation for unknown payment")
				return response.NotFound(c, err.Error())
			}
			if errors.Is(err, pix.ErrPaymentCancelled) {
				return response.BadRequest(c, err.Error())
			}
			return response.ServerError(c, "failed to confirm payment")
		}
		return response.Success(c, fiber.Map{"confirmed": ok})

	case "rejected", "expired", "cancelled":
		if err := h.pixService.CancelPixPayment(c.Context(), input.PaymentID); err != nil {
			if errors.Is(err, pix.ErrUnknownPayment) {
				log.Warn().Str("payment_id", input.PaymentID).Msg("cancellation for unknown payment")
				return response.NotFound(c, err.Error())
			}
			return response.ServerError(c, "failed to cancel payment")
		}
		return response.Success(c, fiber.Map{"cancelled": true})

	default:
		// Intermediate statuses (in_process etc.) need no action.
		return response.Success(c, fiber.Map{"ignored": input.Status})
	}
}
