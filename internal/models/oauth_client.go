package models

import (
	"gorm.io/gorm"
	"time"
)

// OAuthClient identifies an application allowed to call the token endpoint.
// The secret is stored as a bcrypt hash.
type OAuthClient struct {
	ID         string `gorm:"primaryKey"`
	Secret     string `gorm:"not null"`
	Name       string
	Scopes     string // Space-separated list of allowed scopes
	GrantTypes string // Space-separated list: "password refresh_token"
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

func (OAuthClient) TableName() string {
	return "oauth_clients"
}
