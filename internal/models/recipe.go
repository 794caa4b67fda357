package models

import (
	"time"
)

// Recipe is the central entity. Tags and Ingredients are many-to-many; the
// join tables use composite primary keys, so re-adding a member is a no-op.
type Recipe struct {
	ID            uint    `gorm:"primaryKey"`
	UserID        uint    `gorm:"index;not null"`
	Title         string  `gorm:"not null"`
	TimeInMinutes int     `gorm:"not null"`
	Price         float64 `gorm:"type:decimal(8,2)"`
	Link          string
	Image         string       // relative path under the media root, empty when unset
	Tags          []Tag        `gorm:"many2many:recipe_tags"`
	Ingredients   []Ingredient `gorm:"many2many:recipe_ingredients"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// RecipeSummary is the list-view shape: related tags and ingredients are
// rendered as bare id references.
type RecipeSummary struct {
	ID            uint    `json:"id"`
	Title         string  `json:"title"`
	TimeInMinutes int     `json:"time_in_minutes"`
	Price         float64 `json:"price"`
	Link          string  `json:"link,omitempty"`
	Image         string  `json:"image,omitempty"`
	Tags          []uint  `json:"tags"`
	Ingredients   []uint  `json:"ingredients"`
}

// RecipeDetail is the detail-view shape: related tags and ingredients are
// expanded to {id, name} objects.
type RecipeDetail struct {
	ID            uint         `json:"id"`
	Title         string       `json:"title"`
	TimeInMinutes int          `json:"time_in_minutes"`
	Price         float64      `json:"price"`
	Link          string       `json:"link,omitempty"`
	Image         string       `json:"image,omitempty"`
	Tags          []Tag        `json:"tags"`
	Ingredients   []Ingredient `json:"ingredients"`
}

// Summary renders the list-view shape for a recipe
func (r Recipe) Summary() RecipeSummary {
	s := RecipeSummary{
		ID:            r.ID,
		Title:         r.Title,
		TimeInMinutes: r.TimeInMinutes,
		Price:         r.Price,
		Link:          r.Link,
		Image:         r.Image,
		Tags:          make([]uint, 0, len(r.Tags)),
		Ingredients:   make([]uint, 0, len(r.Ingredients)),
	}
	for _, t := range r.Tags {
		s.Tags = append(s.Tags, t.ID)
	}
	for _, i := range r.Ingredients {
		s.Ingredients = append(s.Ingredients, i.ID)
	}
	return s
}

// Detail renders the detail-view shape for a recipe
func (r Recipe) Detail() RecipeDetail {
	d := RecipeDetail{
		ID:            r.ID,
		Title:         r.Title,
		TimeInMinutes: r.TimeInMinutes,
		Price:         r.Price,
		Link:          r.Link,
		Image:         r.Image,
		Tags:          r.Tags,
		Ingredients:   r.Ingredients,
	}
	if d.Tags == nil {
		d.Tags = []Tag{}
	}
	if d.Ingredients == nil {
		d.Ingredients = []Ingredient{}
	}
	return d
}
