package services

import (
	"strings"

	"github.com/romulino-travelperk/recipe-app-api/internal/models"
	"gorm.io/gorm"
)

// TagService provides ownership-scoped access to a user's tags. Every method
// takes the requesting user explicitly; no operation can reach another
// user's rows.
type TagService interface {
	// ListTags returns the user's tags ordered by name descending. With
	// assignedOnly set, only tags referenced by at least one recipe are
	// returned, each exactly once.
	ListTags(userID uint, assignedOnly bool) ([]models.Tag, error)
	GetTag(userID, id uint) (models.Tag, error)
	CreateTag(userID uint, name string) (models.Tag, error)
	UpdateTag(userID, id uint, name string) (models.Tag, error)
	DeleteTag(userID, id uint) error
}

// IngredientService mirrors TagService for ingredients
type IngredientService interface {
	ListIngredients(userID uint, assignedOnly bool) ([]models.Ingredient, error)
	GetIngredient(userID, id uint) (models.Ingredient, error)
	CreateIngredient(userID uint, name string) (models.Ingredient, error)
	UpdateIngredient(userID, id uint, name string) (models.Ingredient, error)
	DeleteIngredient(userID, id uint) error
}

type tagService struct {
	db *gorm.DB
}

func NewTagService(db *gorm.DB) TagService {
	return &tagService{db: db}
}

func (s *tagService) ListTags(userID uint, assignedOnly bool) ([]models.Tag, error) {
	q := s.db.Where("user_id = ?", userID).Order("name DESC")
	if assignedOnly {
		// Existence across any recipe, not just the caller's. The subquery
		// also deduplicates tags referenced by multiple recipes.
		q = q.Where("id IN (?)", s.db.Table("recipe_tags").Select("tag_id"))
	}

	var tags []models.Tag
	if err := q.Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (s *tagService) GetTag(userID, id uint) (models.Tag, error) {
	var tag models.Tag
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&tag).Error; err != nil {
		return models.Tag{}, err
	}
	return tag, nil
}

func (s *tagService) CreateTag(userID uint, name string) (models.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Tag{}, ErrEmptyName
	}

	// Owner comes from the authenticated identity, never from the payload
	tag := models.Tag{UserID: userID, Name: name}
	if err := s.db.Create(&tag).Error; err != nil {
		return models.Tag{}, err
	}
	return tag, nil
}

func (s *tagService) UpdateTag(userID, id uint, name string) (models.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Tag{}, ErrEmptyName
	}

	tag, err := s.GetTag(userID, id)
	if err != nil {
		return models.Tag{}, err
	}

	if err := s.db.Model(&tag).Update("name", name).Error; err != nil {
		return models.Tag{}, err
	}
	return tag, nil
}

func (s *tagService) DeleteTag(userID, id uint) error {
	res := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Tag{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	// Drop stale recipe memberships
	return s.db.Exec("DELETE FROM recipe_tags WHERE tag_id = ?", id).Error
}

type ingredientService struct {
	db *gorm.DB
}

func NewIngredientService(db *gorm.DB) IngredientService {
	return &ingredientService{db: db}
}

func (s *ingredientService) ListIngredients(userID uint, assignedOnly bool) ([]models.Ingredient, error) {
	q := s.db.Where("user_id = ?", userID).Order("name DESC")
	if assignedOnly {
		q = q.Where("id IN (?)", s.db.Table("recipe_ingredients").Select("ingredient_id"))
	}

	var ingredients []models.Ingredient
	if err := q.Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

func (s *ingredientService) GetIngredient(userID, id uint) (models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&ingredient).Error; err != nil {
		return models.Ingredient{}, err
	}
	return ingredient, nil
}

func (s *ingredientService) CreateIngredient(userID uint, name string) (models.Ingredient, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Ingredient{}, ErrEmptyName
	}

	ingredient := models.Ingredient{UserID: userID, Name: name}
	if err := s.db.Create(&ingredient).Error; err != nil {
		return models.Ingredient{}, err
	}
	return ingredient, nil
}

func (s *ingredientService) UpdateIngredient(userID, id uint, name string) (models.Ingredient, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Ingredient{}, ErrEmptyName
	}

	ingredient, err := s.GetIngredient(userID, id)
	if err != nil {
		return models.Ingredient{}, err
	}

	if err := s.db.Model(&ingredient).Update("name", name).Error; err != nil {
		return models.Ingredient{}, err
	}
	return ingredient, nil
}

func (s *ingredientService) DeleteIngredient(userID, id uint) error {
	res := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Ingredient{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return s.db.Exec("DELETE FROM recipe_ingredients WHERE ingredient_id = ?", id).Error
}
