package handlers

import (
	"errors"

	"mixbeat/internal/models"
	"mixbeat/internal/services/pix"
	"mixbeat/internal/services/topup"
	"mixbeat/internal/services/wallet"
	"mixbeat/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type WalletHandler struct {
	walletService wallet.Service
	pixService    pix.Service
	topupService  topup.Service
}

func NewWalletHandler(walletService wallet.Service, pixService pix.Service, topupService topup.Service) *WalletHandler {
	return &WalletHandler{
		walletService: walletService,
		pixService:    pixService,
		topupService:  topupService,
	}
}

func extractUserClaims(c *fiber.Ctx) (*models.UserClaims, error) {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok || claims == nil {
		return nil, fiber.ErrUnauthorized
	}
	return claims, nil
}

func (h *WalletHandler) GetWallet(c *fiber.Ctx) error {
	userID := c.Params("userId")
	if userID == "" {
		return response.BadRequest(c, "user id is required")
	}

	w, err := h.walletService.GetOrCreateWallet(c.Context(), userID)
	if err != nil {
		return response.ServerError(c, "failed to get wallet")
	}
	return response.Success(c, w)
}

func (h *WalletHandler) GetTransactions(c *fiber.Ctx) error {
	userID := c.Params("userId")
	if userID == "" {
		return response.BadRequest(c, "user id is required")
	}

	w, err := h.walletService.GetOrCreateWallet(c.Context(), userID)
	if err != nil {
		return response.ServerError(c, "failed to get wallet")
	}

	limit := c.QueryInt("limit", wallet.DefaultPageSize)
	offset := c.QueryInt("offset", 0)
	txs, err := h.walletService.ListTransactions(c.Context(), w.ID, limit, offset)
	if err != nil {
		return response.ServerError(c, "failed to list transactions")
	}
	return response.Success(c, txs)
}

func (h *WalletHandler) GeneratePix(c *fiber.Ctx) error {
	var input struct {
		UserID string          `json:"userId"`
		Amount decimal.Decimal `json:"amount"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request format")
	}
	if input.UserID == "" {
		return response.BadRequest(c, "user id is required")
	}

	payload, err := h.pixService.GeneratePixPayment(c.Context(), input.UserID, input.Amount)
	if err != nil {
		switch {
		case errors.Is(err, pix.ErrInvalidAmount):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, pix.ErrGatewayTimeout), errors.Is(err, pix.ErrGateway):
			return response.GatewayError(c, "payment gateway unavailable")
		default:
			return response.ServerError(c, "failed to generate payment")
		}
	}
	return response.Success(c, fiber.Map{"pixPayload": payload})
}

func (h *WalletHandler) TopUp(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	var input struct {
		Amount decimal.Decimal `json:"amount"`
		Card   struct {
			Number      string `json:"number"`
			ExpiryMonth string `json:"expiryMonth"`
			ExpiryYear  string `json:"expiryYear"`
			CVC         string `json:"cvc"`
		} `json:"card"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request format")
	}

	err = h.topupService.TopUp(c.Context(), claims.UserID(), input.Amount, topup.Card{
		Number:      input.Card.Number,
		ExpiryMonth: input.Card.ExpiryMonth,
		ExpiryYear:  input.Card.ExpiryYear,
		CVC:         input.Card.CVC,
	})
	if err != nil {
		switch {
		case errors.Is(err, topup.ErrInvalidAmount), errors.Is(err, topup.ErrInvalidCard):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, topup.ErrChargeFailed):
			return response.GatewayError(c, "card charge failed")
		default:
			return response.ServerError(c, "top-up failed")
		}
	}
	return response.Success(c, fiber.Map{"message": "top-up successful", "amount": input.Amount})
}
