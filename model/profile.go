package model

import "time"

// Profile mirrors contact and social fields for an account.
type Profile struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	Email          string    `gorm:"size:255" json:"email"`
	FullName       string    `gorm:"size:150" json:"full_name"`
	Phone          string    `gorm:"size:30" json:"phone"`
	Address        string    `gorm:"size:255" json:"address"`
	FacebookURL    string    `gorm:"size:255" json:"facebook_url"`
	InstagramURL   string    `gorm:"size:255" json:"instagram_url"`
	TwitterURL     string    `gorm:"size:255" json:"twitter_url"`
	TripadvisorURL string    `gorm:"size:255" json:"tripadvisor_url"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type UpdateProfileInput struct {
	Email          string `json:"email" validate:"omitempty,email"`
	FullName       string `json:"fullName" validate:"max=150"`
	Phone          string `json:"phone" validate:"omitempty,e164"`
	Address        string `json:"address" validate:"max=255"`
	FacebookURL    string `json:"facebookUrl" validate:"omitempty,url"`
	InstagramURL   string `json:"instagramUrl" validate:"omitempty,url"`
	TwitterURL     string `json:"twitterUrl" validate:"omitempty,url"`
	TripadvisorURL string `json:"tripadvisorUrl" validate:"omitempty,url"`
}
