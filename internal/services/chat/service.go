// Package chat persists direct messages and publishes delivery events.
// Actual real-time fan-out to connected clients is an external collaborator
// subscribed to the pub/sub channel.
package chat

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mixbeat/internal/models"
	"mixbeat/internal/repositories"

	"github.com/rs/zerolog/log"
)

var (
	ErrEmptyMessage = errors.New("message has no content")
	ErrSelfMessage  = errors.New("cannot message yourself")
)

const (
	DefaultHistoryLimit = 50

	// EventChannel is the pub/sub channel new-message events go out on.
	EventChannel = "chat:messages"
)

// Publisher emits chat events for the real-time delivery layer.
type Publisher interface {
	Publish(ctx context.Context, channel string, payload interface{}) error
}

type Service interface {
	Conversation(ctx context.Context, userA, userB string, limit int) ([]models.ChatMessage, error)
	SendMessage(ctx context.Context, msg *models.ChatMessage) (*models.ChatMessage, error)
	MarkRead(ctx context.Context, receiverID, senderID string) (int64, error)
}

type service struct {
	repo      repositories.ChatRepository
	publisher Publisher
}

// NewService creates a new chat service. The publisher is optional.
func NewService(repo repositories.ChatRepository, publisher Publisher) Service {
	if repo == nil {
		panic("repo is required")
	}
	return &service{repo: repo, publisher: publisher}
}

func (s *service) Conversation(ctx context.Context, userA, userB string, limit int) ([]models.ChatMessage, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	msgs, err := s.repo.Conversation(ctx, userA, userB, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}
	return msgs, nil
}

func (s *service) SendMessage(ctx context.Context, msg *models.ChatMessage) (*models.ChatMessage, error) {
	if msg.Text == "" && msg.MediaURL == "" {
		return nil, ErrEmptyMessage
	}
	if msg.SenderID == msg.ReceiverID {
		return nil, ErrSelfMessage
	}
	if msg.Type == "" {
		msg.Type = "text"
	}
	msg.IsRead = false
	msg.CreatedAt = time.Now().UTC()

	if err := s.repo.SaveMessage(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to save message: %w", err)
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, EventChannel, msg); err != nil {
			// Delivery is best effort; the message is already persisted.
			log.Warn().Err(err).Str("receiver_id", msg.ReceiverID).Msg("failed to publish chat event")
		}
	}
	return msg, nil
}

func (s *service) MarkRead(ctx context.Context, receiverID, senderID string) (int64, error) {
	n, err := s.repo.MarkRead(ctx, receiverID, senderID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark messages read: %w", err)
	}
	return n, nil
}
