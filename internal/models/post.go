package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Post is a feed entry stored in MongoDB. Author fields are denormalized so
// the feed renders without joining against profiles.
type Post struct {
	ID              bson.ObjectID `bson:"_id,omitempty" json:"id"`
	AuthorID        string        `bson:"authorId" json:"authorId"`
	AuthorName      string        `bson:"authorName" json:"authorName"`
	AuthorPhotoURL  string        `bson:"authorPhotoUrl,omitempty" json:"authorPhotoUrl,omitempty"`
	MediaURLs       []string      `bson:"mediaUrls" json:"mediaUrls"`
	PostType        string        `bson:"postType" json:"postType"` // image, video, audio
	Caption         string        `bson:"caption" json:"caption"`
	Likes           []string      `bson:"likes" json:"likes"`
	TaggedUserIDs   []string      `bson:"taggedUserIds,omitempty" json:"taggedUserIds,omitempty"`
	CollaboratorIDs []string      `bson:"collaboratorIds,omitempty" json:"collaboratorIds,omitempty"`
	CreatedAt       time.Time     `bson:"createdAt" json:"createdAt"`
}

// Story is an ephemeral feed entry, visible until ExpiresAt.
type Story struct {
	ID             bson.ObjectID `bson:"_id,omitempty" json:"id"`
	AuthorID       string        `bson:"authorId" json:"authorId"`
	AuthorName     string        `bson:"authorName" json:"authorName"`
	AuthorPhotoURL string        `bson:"authorPhotoUrl,omitempty" json:"authorPhotoUrl,omitempty"`
	MediaURL       string        `bson:"mediaUrl" json:"mediaUrl"`
	MediaType      string        `bson:"mediaType" json:"mediaType"` // image, video
	Caption        string        `bson:"caption,omitempty" json:"caption,omitempty"`
	Viewers        []string      `bson:"viewers" json:"viewers"`
	CreatedAt      time.Time     `bson:"createdAt" json:"createdAt"`
	ExpiresAt      time.Time     `bson:"expiresAt" json:"expiresAt"`
}
