package repositories

import (
	"context"

	"mixbeat/internal/models"
)

// ChatRepository stores direct messages in the document store.
type ChatRepository interface {
	Conversation(ctx context.Context, userA, userB string, limit int) ([]models.ChatMessage, error)
	SaveMessage(ctx context.Context, msg *models.ChatMessage) error
	MarkRead(ctx context.Context, receiverID, senderID string) (int64, error)
}
