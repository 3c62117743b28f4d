package models

import (
	"time"
)

// UserProfile mirrors the mobile app's profile document. The UID comes from
// the external identity provider and is the stable key across subsystems.
type UserProfile struct {
	ID               uint       `gorm:"primarykey" json:"id"`
	UID              string     `gorm:"uniqueIndex;not null;size:128" json:"uid"`
	Email            string     `gorm:"not null;size:255" json:"email"`
	Name             string     `gorm:"not null;size:255" json:"name"`
	Role             string     `gorm:"default:'client';size:50" json:"role"` // client, musician, admin
	SubscriptionPlan string     `gorm:"default:'free';size:50" json:"subscriptionPlan"`
	Nickname         string     `json:"nickname,omitempty"`
	Bio              string     `json:"bio,omitempty"`
	AvatarURL        string     `json:"avatarUrl,omitempty"`
	PixKey           string     `json:"pixKey,omitempty"`
	InstagramURL     string     `json:"instagramUrl,omitempty"`
	YoutubeURL       string     `json:"youtubeUrl,omitempty"`
	FacebookURL      string     `json:"facebookUrl,omitempty"`
	GalleryURLs      StringList `gorm:"type:jsonb" json:"galleryUrls,omitempty"`
	FCMToken         string     `json:"-"`
	FollowersCount   int        `gorm:"default:0" json:"followersCount"`
	FollowingCount   int        `gorm:"default:0" json:"followingCount"`
	IsLive           bool       `gorm:"default:false" json:"isLive"`
	LiveUntil        *time.Time `json:"liveUntil,omitempty"`
	LastActiveAt     *time.Time `json:"lastActiveAt,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// PublicProfile is the projection returned to anonymous callers. Email, pix
// key and push tokens stay private.
type PublicProfile struct {
	UID            string     `json:"uid"`
	Name           string     `json:"name"`
	Nickname       string     `json:"nickname,omitempty"`
	Bio            string     `json:"bio,omitempty"`
	AvatarURL      string     `json:"avatarUrl,omitempty"`
	InstagramURL   string     `json:"instagramUrl,omitempty"`
	YoutubeURL     string     `json:"youtubeUrl,omitempty"`
	FacebookURL    string     `json:"facebookUrl,omitempty"`
	GalleryURLs    StringList `json:"galleryUrls,omitempty"`
	FollowersCount int        `json:"followersCount"`
	FollowingCount int        `json:"followingCount"`
	IsLive         bool       `json:"isLive"`
	LiveUntil      *time.Time `json:"liveUntil,omitempty"`
}

// Public returns the shareable view of the profile.
func (p *UserProfile) Public() PublicProfile {
	return PublicProfile{
		UID:            p.UID,
		Name:           p.Name,
		Nickname:       p.Nickname,
		Bio:            p.Bio,
		AvatarURL:      p.AvatarURL,
		InstagramURL:   p.InstagramURL,
		YoutubeURL:     p.YoutubeURL,
		FacebookURL:    p.FacebookURL,
		GalleryURLs:    p.GalleryURLs,
		FollowersCount: p.FollowersCount,
		FollowingCount: p.FollowingCount,
		IsLive:         p.IsLive,
		LiveUntil:      p.LiveUntil,
	}
}
