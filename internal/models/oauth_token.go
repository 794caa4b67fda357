package models

import (
	"time"
)

// OAuthToken records tokens issued by the password and refresh_token grants
type OAuthToken struct {
	ID           uint   `gorm:"primaryKey"`
	ClientID     string `gorm:"not null"`
	UserID       string `gorm:"not null;index"`
	AccessToken  string `gorm:"uniqueIndex;not null"`
	RefreshToken string `gorm:"index"`
	Scopes       string
	ExpiresAt    time.Time `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (OAuthToken) TableName() string {
	return "oauth_tokens"
}
