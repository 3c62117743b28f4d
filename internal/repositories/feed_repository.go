package repositories

import (
	"context"

	"mixbeat/internal/models"
)

// FeedRepository stores posts and stories in the document store.
type FeedRepository interface {
	GetFeed(ctx context.Context, limit int) ([]models.Post, error)
	GetUserPosts(ctx context.Context, authorID string) ([]models.Post, error)
	CreatePost(ctx context.Context, post *models.Post) error
	LikePost(ctx context.Context, postID, userID string) error
	UnlikePost(ctx context.Context, postID, userID string) error

	ActiveStories(ctx context.Context) ([]models.Story, error)
	CreateStory(ctx context.Context, story *models.Story) error
}
