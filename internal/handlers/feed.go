package handlers

import (
	"errors"

	"mixbeat/internal/models"
	"mixbeat/internal/services/feed"
	"mixbeat/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type FeedHandler struct {
	feedService feed.Service
}

func NewFeedHandler(feedService feed.Service) *FeedHandler {
	return &FeedHandler{feedService: feedService}
}

func (h *FeedHandler) GetFeed(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", feed.DefaultFeedLimit)
	posts, err := h.feedService.GetFeed(c.Context(), limit)
	if err != nil {
		return response.ServerError(c, "failed to load feed")
	}
	return response.Success(c, posts)
}

func (h *FeedHandler) GetUserPosts(c *fiber.Ctx) error {
	uid := c.Params("uid")
	if uid == "" {
		return response.BadRequest(c, "uid is required")
	}
	posts, err := h.feedService.GetUserPosts(c.Context(), uid)
	if err != nil {
		return response.ServerError(c, "failed to load posts")
	}
	return response.Success(c, posts)
}

func (h *FeedHandler) CreatePost(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	var input models.Post
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request format")
	}
	input.AuthorID = claims.UserID()

	post, err := h.feedService.CreatePost(c.Context(), &input)
	if err != nil {
		if errors.Is(err, feed.ErrEmptyPost) {
			return response.BadRequest(c, err.Error())
		}
		return response.ServerError(c, "failed to create post")
	}
	return response.Created(c, post)
}

func (h *FeedHandler) LikePost(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	if err := h.feedService.LikePost(c.Context(), c.Params("id"), claims.UserID()); err != nil {
		return response.ServerError(c, "failed to like post")
	}
	return response.Success(c, fiber.Map{"liked": true})
}

func (h *FeedHandler) UnlikePost(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	if err := h.feedService.UnlikePost(c.Context(), c.Params("id"), claims.UserID()); err != nil {
		return response.ServerError(c, "failed to unlike post")
	}
	return response.Success(c, fiber.Map{"liked": false})
}

func (h *FeedHandler) GetStories(c *fiber.Ctx) error {
	stories, err := h.feedService.ActiveStories(c.Context())
	if err != nil {
		return response.ServerError(c, "failed to load stories")
	}
	return response.Success(c, stories)
}

func (h *FeedHandler) CreateStory(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	var input models.Story
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request format")
	}
	input.AuthorID = claims.UserID()

	story, err := h.feedService.CreateStory(c.Context(), &input)
	if err != nil {
		if errors.Is(err, feed.ErrEmptyPost) {
			return response.BadRequest(c, err.Error())
		}
		return response.ServerError(c, "failed to create story")
	}
	return response.Created(c, story)
}
