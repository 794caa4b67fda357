package models

import (
	"time"
)

// Tag is a user-owned label attached to recipes. The owner is assigned on
// creation and never changes.
type Tag struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"-"`
	Name      string    `gorm:"not null" json:"name"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Ingredient has the same shape and ownership semantics as Tag but lives in
// its own table and join relation.
type Ingredient struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"-"`
	Name      string    `gorm:"not null" json:"name"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (t Tag) String() string {
	return t.Name
}

func (i Ingredient) String() string {
	return i.Name
}
