package repositories

import (
	"context"
	"fmt"

	"mixbeat/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type chatRepository struct {
	messages *mongo.Collection
}

// NewChatRepository creates a MongoDB-backed message store.
func NewChatRepository(client *mongo.Client, dbName string) ChatRepository {
	return &chatRepository{
		messages: client.Database(dbName).Collection("messages"),
	}
}

func (r *chatRepository) Conversation(ctx context.Context, userA, userB string, limit int) ([]models.ChatMessage, error) {
	// Both directions of the conversation
	filter := bson.M{"$or": []bson.M{
		{"senderId": userA, "receiverId": userB},
		{"senderId": userB, "receiverId": userA},
	}}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.messages.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query conversation: %w", err)
	}
	defer cursor.Close(ctx)

	var msgs []models.ChatMessage
	if err := cursor.All(ctx, &msgs); err != nil {
		return nil, fmt.Errorf("failed to decode conversation: %w", err)
	}
	return msgs, nil
}

func (r *chatRepository) SaveMessage(ctx context.Context, msg *models.ChatMessage) error {
	res, err := r.messages.InsertOne(ctx, msg)
	if err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}
	if oid, ok := res.InsertedID.(bson.ObjectID); ok {
		msg.ID = oid
	}
	return nil
}

func (r *chatRepository) MarkRead(ctx context.Context, receiverID, senderID string) (int64, error) {
	filter := bson.M{"receiverId": receiverID, "isRead": false}
	if senderID != "" {
		filter["senderId"] = senderID
	}
	res, err := r.messages.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"isRead": true}})
	if err != nil {
		return 0, fmt.Errorf("failed to mark messages read: %w", err)
	}
	return res.ModifiedCount, nil
}
