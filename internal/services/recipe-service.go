package services

import (
	"errors"

	"github.com/romulino-travelperk/recipe-app-api/internal/models"
	"github.com/romulino-travelperk/recipe-app-api/internal/storage"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecipeInput carries the mutable recipe fields for create and update calls.
// TagIDs and IngredientIDs must reference rows owned by the same user.
type RecipeInput struct {
	Title         string
	TimeInMinutes int
	Price         float64
	Link          string
	TagIDs        []uint
	IngredientIDs []uint
}

// RecipeService provides ownership-scoped access to a user's recipes
type RecipeService interface {
	// ListRecipes returns the user's recipes, newest first. A non-empty
	// tagIDs restricts to recipes whose tag set intersects it; same for
	// ingredientIDs; both together compose as an AND.
	ListRecipes(userID uint, tagIDs, ingredientIDs []uint) ([]models.Recipe, error)
	GetRecipe(userID, id uint) (models.Recipe, error)
	CreateRecipe(userID uint, input RecipeInput) (models.Recipe, error)
	UpdateRecipe(userID, id uint, input RecipeInput) (models.Recipe, error)
	DeleteRecipe(userID, id uint) error
	// SetRecipeImage validates and stores an uploaded image, then points the
	// recipe at it. An invalid payload leaves the recipe untouched.
	SetRecipeImage(userID, id uint, originalName string, data []byte) (models.Recipe, error)
}

type recipeService struct {
	db     *gorm.DB
	images *storage.ImageStore
}

func NewRecipeService(db *gorm.DB, images *storage.ImageStore) RecipeService {
	return &recipeService{db: db, images: images}
}

func (s *recipeService) ListRecipes(userID uint, tagIDs, ingredientIDs []uint) ([]models.Recipe, error) {
	q := s.db.Preload("Tags").Preload("Ingredients").
		Where("user_id = ?", userID).
		Order("id DESC")

	if len(tagIDs) > 0 {
		q = q.Where("id IN (?)",
			s.db.Table("recipe_tags").Select("recipe_id").Where("tag_id IN ?", tagIDs))
	}
	if len(ingredientIDs) > 0 {
		q = q.Where("id IN (?)",
			s.db.Table("recipe_ingredients").Select("recipe_id").Where("ingredient_id IN ?", ingredientIDs))
	}

	var recipes []models.Recipe
	if err := q.Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (s *recipeService) GetRecipe(userID, id uint) (models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.Preload("Tags").Preload("Ingredients").
		Where("id = ? AND user_id = ?", id, userID).
		First(&recipe).Error
	if err != nil {
		return models.Recipe{}, err
	}
	return recipe, nil
}

func (s *recipeService) CreateRecipe(userID uint, input RecipeInput) (models.Recipe, error) {
	tags, err := s.resolveTags(userID, input.TagIDs)
	if err != nil {
		return models.Recipe{}, err
	}
	ingredients, err := s.resolveIngredients(userID, input.IngredientIDs)
	if err != nil {
		return models.Recipe{}, err
	}

	recipe := models.Recipe{
		UserID:        userID,
		Title:         input.Title,
		TimeInMinutes: input.TimeInMinutes,
		Price:         input.Price,
		Link:          input.Link,
		Tags:          tags,
		Ingredients:   ingredients,
	}
	if err := s.db.Create(&recipe).Error; err != nil {
		return models.Recipe{}, err
	}
	return recipe, nil
}

func (s *recipeService) UpdateRecipe(userID, id uint, input RecipeInput) (models.Recipe, error) {
	recipe, err := s.GetRecipe(userID, id)
	if err != nil {
		return models.Recipe{}, err
	}

	tags, err := s.resolveTags(userID, input.TagIDs)
	if err != nil {
		return models.Recipe{}, err
	}
	ingredients, err := s.resolveIngredients(userID, input.IngredientIDs)
	if err != nil {
		return models.Recipe{}, err
	}

	updates := map[string]interface{}{
		"title":           input.Title,
		"time_in_minutes": input.TimeInMinutes,
		"price":           input.Price,
		"link":            input.Link,
	}
	if err := s.db.Model(&recipe).Updates(updates).Error; err != nil {
		return models.Recipe{}, err
	}

	// Association lists are replaced wholesale on update
	if err := s.db.Model(&recipe).Association("Tags").Replace(&tags); err != nil {
		return models.Recipe{}, err
	}
	if err := s.db.Model(&recipe).Association("Ingredients").Replace(&ingredients); err != nil {
		return models.Recipe{}, err
	}

	return s.GetRecipe(userID, id)
}

func (s *recipeService) DeleteRecipe(userID, id uint) error {
	recipe, err := s.GetRecipe(userID, id)
	if err != nil {
		return err
	}

	// Select(Associations) clears the join rows along with the recipe
	if err := s.db.Select(clause.Associations).Delete(&recipe).Error; err != nil {
		return err
	}

	return s.images.Remove(recipe.Image)
}

func (s *recipeService) SetRecipeImage(userID, id uint, originalName string, data []byte) (models.Recipe, error) {
	recipe, err := s.GetRecipe(userID, id)
	if err != nil {
		return models.Recipe{}, err
	}

	// Validate and write the new file before touching the row, so a bad
	// payload or failed write never clobbers the existing image reference
	relPath, err := s.images.SaveRecipeImage(originalName, data)
	if err != nil {
		return models.Recipe{}, err
	}

	previous := recipe.Image
	if err := s.db.Model(&recipe).Update("image", relPath).Error; err != nil {
		// Roll back the orphaned file; the row still points at the old image
		_ = s.images.Remove(relPath)
		return models.Recipe{}, err
	}

	if previous != "" && previous != relPath {
		_ = s.images.Remove(previous)
	}

	recipe.Image = relPath
	return recipe, nil
}

// resolveTags maps ids to rows owned by the user. Any id that does not
// resolve fails the whole call.
func (s *recipeService) resolveTags(userID uint, ids []uint) ([]models.Tag, error) {
	if len(ids) == 0 {
		return []models.Tag{}, nil
	}

	var tags []models.Tag
	if err := s.db.Where("user_id = ? AND id IN ?", userID, ids).Find(&tags).Error; err != nil {
		return nil, err
	}
	if len(tags) != countUnique(ids) {
		return nil, ErrUnknownAttribute
	}
	return tags, nil
}

func (s *recipeService) resolveIngredients(userID uint, ids []uint) ([]models.Ingredient, error) {
	if len(ids) == 0 {
		return []models.Ingredient{}, nil
	}

	var ingredients []models.Ingredient
	if err := s.db.Where("user_id = ? AND id IN ?", userID, ids).Find(&ingredients).Error; err != nil {
		return nil, err
	}
	if len(ingredients) != countUnique(ids) {
		return nil, ErrUnknownAttribute
	}
	return ingredients, nil
}

func countUnique(ids []uint) int {
	seen := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		seen[id] = struct{}{}
	}
	return len(seen)
}

// IsNotFound reports whether err is the store's missing-row error
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
