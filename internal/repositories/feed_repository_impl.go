package repositories

import (
	"context"
	"fmt"
	"time"

	"mixbeat/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type feedRepository struct {
	posts   *mongo.Collection
	stories *mongo.Collection
}

// NewFeedRepository creates a MongoDB-backed feed store.
func NewFeedRepository(client *mongo.Client, dbName string) FeedRepository {
	db := client.Database(dbName)
	return &feedRepository{
		posts:   db.Collection("posts"),
		stories: db.Collection("stories"),
	}
}

func (r *feedRepository) GetFeed(ctx context.Context, limit int) ([]models.Post, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.posts.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query feed: %w", err)
	}
	defer cursor.Close(ctx)

	var posts []models.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("failed to decode feed: %w", err)
	}
	return posts, nil
}

func (r *feedRepository) GetUserPosts(ctx context.Context, authorID string) ([]models.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.posts.Find(ctx, bson.M{"authorId": authorID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query user posts: %w", err)
	}
	defer cursor.Close(ctx)

	var posts []models.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("failed to decode user posts: %w", err)
	}
	return posts, nil
}

func (r *feedRepository) CreatePost(ctx context.Context, post *models.Post) error {
	res, err := r.posts.InsertOne(ctx, post)
	if err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}
	if oid, ok := res.InsertedID.(bson.ObjectID); ok {
		post.ID = oid
	}
	return nil
}

func (r *feedRepository) LikePost(ctx context.Context, postID, userID string) error {
	oid, err := bson.ObjectIDFromHex(postID)
	if err != nil {
		return fmt.Errorf("invalid post id: %w", err)
	}
	// $addToSet keeps likes idempotent
	_, err = r.posts.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$addToSet": bson.M{"likes": userID}},
	)
	if err != nil {
		return fmt.Errorf("failed to like post: %w", err)
	}
	return nil
}

func (r *feedRepository) UnlikePost(ctx context.Context, postID, userID string) error {
	oid, err := bson.ObjectIDFromHex(postID)
	if err != nil {
		return fmt.Errorf("invalid post id: %w", err)
	}
	_, err = r.posts.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$pull": bson.M{"likes": userID}},
	)
	if err != nil {
		return fmt.Errorf("failed to unlike post: %w", err)
	}
	return nil
}

func (r *feedRepository) ActiveStories(ctx context.Context) ([]models.Story, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.stories.Find(ctx, bson.M{"expiresAt": bson.M{"$gt": time.Now().UTC()}}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query stories: %w", err)
	}
	defer cursor.Close(ctx)

	var stories []models.Story
	if err := cursor.All(ctx, &stories); err != nil {
		return nil, fmt.Errorf("failed to decode stories: %w", err)
	}
	return stories, nil
}

func (r *feedRepository) CreateStory(ctx context.Context, story *models.Story) error {
	res, err := r.stories.InsertOne(ctx, story)
	if err != nil {
		return fmt.Errorf("failed to insert story: %w", err)
	}
	if oid, ok := res.InsertedID.(bson.ObjectID); ok {
		story.ID = oid
	}
	return nil
}
