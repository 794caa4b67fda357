package models

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is enforced on signup
const MinPasswordLength = 6

var ErrPasswordTooShort = errors.New("password must be at least 6 characters")

type User struct {
	ID           uint   `gorm:"primaryKey"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Name         string
	IsStaff      bool
	IsSuperuser  bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NormalizeEmail lowercases an email address so lookups and the unique
// index behave case-insensitively
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SetPassword hashes the raw password with bcrypt and stores the hash
func (u *User) SetPassword(raw string) error {
	if len(raw) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword compares a raw password against the stored hash
func (u *User) CheckPassword(raw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(raw)) == nil
}

// Role maps the staff/superuser flags to the role claim carried in tokens
func (u *User) Role() string {
	if u.IsStaff || u.IsSuperuser {
		return "admin"
	}
	return "user"
}
