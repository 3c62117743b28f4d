package handlers

import (
	"errors"

	"mixbeat/internal/models"
	"mixbeat/internal/services/chat"
	"mixbeat/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type ChatHandler struct {
	chatService chat.Service
}

func NewChatHandler(chatService chat.Service) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

func (h *ChatHandler) GetConversation(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}
	other := c.Params("otherUid")
	if other == "" {
		return response.BadRequest(c, "other uid is required")
	}

	limit := c.QueryInt("limit", chat.DefaultHistoryLimit)
	msgs, err := h.chatService.Conversation(c.Context(), claims.UserID(), other, limit)
	if err != nil {
		return response.ServerError(c, "failed to load conversation")
	}
	return response.Success(c, msgs)
}

func (h *ChatHandler) SendMessage(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	var input models.ChatMessage
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request format")
	}
	input.SenderID = claims.UserID()

	msg, err := h.chatService.SendMessage(c.Context(), &input)
	if err != nil {
		if errors.Is(err, chat.ErrEmptyMessage) || errors.Is(err, chat.ErrSelfMessage) {
			return response.BadRequest(c, err.Error())
		}
		return response.ServerError(c, "failed to send message")
	}
	return response.Created(c, msg)
}

func (h *ChatHandler) MarkRead(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	var input struct {
		SenderID string `json:"senderId"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request format")
	}

	n, err := h.chatService.MarkRead(c.Context(), claims.UserID(), input.SenderID)
	if err != nil {
		return response.ServerError(c, "failed to mark messages read")
	}
	return response.Success(c, fiber.Map{"updated": n})
}
