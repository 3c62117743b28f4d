// Package profile manages user profiles backed by the relational store.
package profile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mixbeat/internal/models"
	"mixbeat/internal/repositories"
)

var ErrProfileNotFound = errors.New("profile not found")

type Service interface {
	GetByUID(ctx context.Context, uid string) (*models.UserProfile, error)
	// Upsert creates the profile on first save and updates it afterwards,
	// keyed by the identity provider uid.
	Upsert(ctx context.Context, uid string, input *models.UserProfile) (*models.UserProfile, error)
	TouchLastActive(ctx context.Context, uid string)
}

type service struct {
	repo repositories.ProfileRepository
}

func NewService(repo repositories.ProfileRepository) Service {
	if repo == nil {
		panic("repo is required")
	}
	return &service{repo: repo}
}

func (s *service) GetByUID(ctx context.Context, uid string) (*models.UserProfile, error) {
	p, err := s.repo.GetByUID(ctx, uid)
	if errors.Is(err, repositories.ErrProfileNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return p, nil
}

func (s *service) Upsert(ctx context.Context, uid string, input *models.UserProfile) (*models.UserProfile, error) {
	existing, err := s.repo.GetByUID(ctx, uid)
	if errors.Is(err, repositories.ErrProfileNotFound) {
		input.ID = 0
		input.UID = uid
		if err := s.repo.Create(ctx, input); err != nil {
			return nil, fmt.Errorf("failed to create profile: %w", err)
		}
		return input, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	// Identity and counters are server-owned; everything else comes from
	// the client payload.
	input.ID = existing.ID
	input.UID = existing.UID
	input.CreatedAt = existing.CreatedAt
	input.FollowersCount = existing.FollowersCount
	input.FollowingCount = existing.FollowingCount
	if err := s.repo.Update(ctx, input); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return input, nil
}

func (s *service) TouchLastActive(ctx context.Context, uid string) {
	p, err := s.repo.GetByUID(ctx, uid)
	if err != nil {
		return
	}
	now := time.Now().UTC()
	p.LastActiveAt = &now
	_ = s.repo.Update(ctx, p)
}
