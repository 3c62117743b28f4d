package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// ChatMessage is a direct message between two users, stored in MongoDB.
// Real-time fan-out happens outside this service; we only persist and
// publish an event.
type ChatMessage struct {
	ID         bson.ObjectID `bson:"_id,omitempty" json:"id"`
	SenderID   string        `bson:"senderId" json:"senderId"`
	ReceiverID string        `bson:"receiverId" json:"receiverId"`
	Text       string        `bson:"text" json:"text"`
	Type       string        `bson:"type" json:"type"` // text, image, audio
	MediaURL   string        `bson:"mediaUrl,omitempty" json:"mediaUrl,omitempty"`
	IsRead     bool          `bson:"isRead" json:"isRead"`
	CreatedAt  time.Time     `bson:"createdAt" json:"createdAt"`
}
