// Package feed serves the social feed: posts, stories and likes.
package feed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mixbeat/internal/models"
	"mixbeat/internal/repositories"
)

var (
	ErrEmptyPost    = errors.New("post needs media or a caption")
	ErrInvalidLimit = errors.New("invalid feed limit")
)

const (
	DefaultFeedLimit = 20
	MaxFeedLimit     = 100

	// Stories expire a day after posting unless the author set a horizon.
	StoryTTL = 24 * time.Hour
)

type Service interface {
	GetFeed(ctx context.Context, limit int) ([]models.Post, error)
	GetUserPosts(ctx context.Context, authorID string) ([]models.Post, error)
	CreatePost(ctx context.Context, post *models.Post) (*models.Post, error)
	LikePost(ctx context.Context, postID, userID string) error
	UnlikePost(ctx context.Context, postID, userID string) error

	ActiveStories(ctx context.Context) ([]models.Story, error)
	CreateStory(ctx context.Context, story *models.Story) (*models.Story, error)
}

type service struct {
	repo repositories.FeedRepository
}

func NewService(repo repositories.FeedRepository) Service {
	if repo == nil {
		panic("repo is required")
	}
	return &service{repo: repo}
}

func (s *service) GetFeed(ctx context.Context, limit int) ([]models.Post, error) {
	if limit <= 0 {
		limit = DefaultFeedLimit
	}
	if limit > MaxFeedLimit {
		limit = MaxFeedLimit
	}
	posts, err := s.repo.GetFeed(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load feed: %w", err)
	}
	return posts, nil
}

func (s *service) GetUserPosts(ctx context.Context, authorID string) ([]models.Post, error) {
	posts, err := s.repo.GetUserPosts(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user posts: %w", err)
	}
	return posts, nil
}

func (s *service) CreatePost(ctx context.Context, post *models.Post) (*models.Post, error) {
	if len(post.MediaURLs) == 0 && post.Caption == "" {
		return nil, ErrEmptyPost
	}
	if post.PostType == "" {
		post.PostType = "image"
	}
	post.Likes = []string{}
	post.CreatedAt = time.Now().UTC()

	if err := s.repo.CreatePost(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return post, nil
}

func (s *service) LikePost(ctx context.Context, postID, userID string) error {
	return s.repo.LikePost(ctx, postID, userID)
}

func (s *service) UnlikePost(ctx context.Context, postID, userID string) error {
	return s.repo.UnlikePost(ctx, postID, userID)
}

func (s *service) ActiveStories(ctx context.Context) ([]models.Story, error) {
	stories, err := s.repo.ActiveStories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load stories: %w", err)
	}
	return stories, nil
}

func (s *service) CreateStory(ctx context.Context, story *models.Story) (*models.Story, error) {
	if story.MediaURL == "" {
		return nil, ErrEmptyPost
	}
	if story.MediaType == "" {
		story.MediaType = "image"
	}
	story.Viewers = []string{}
	story.CreatedAt = time.Now().UTC()
	if story.ExpiresAt.IsZero() {
		story.ExpiresAt = story.CreatedAt.Add(StoryTTL)
	}

	if err := s.repo.CreateStory(ctx, story); err != nil {
		return nil, fmt.Errorf("failed to create story: %w", err)
	}
	return story, nil
}
