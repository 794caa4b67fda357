package services

import (
	"testing"

	"github.com/romulino-travelperk/recipe-app-api/internal/models"
	"github.com/romulino-travelperk/recipe-app-api/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Tag{},
		&models.Ingredient{},
		&models.Recipe{},
		&models.OAuthClient{},
		&models.OAuthToken{},
	)
	require.NoError(t, err)

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	user := &models.User{Email: models.NormalizeEmail(email)}
	require.NoError(t, user.SetPassword("somePassword"))
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestRecipe(t *testing.T, db *gorm.DB, userID uint, title string) *models.Recipe {
	recipe := &models.Recipe{
		UserID:        userID,
		Title:         title,
		TimeInMinutes: 10,
		Price:         5.0,
	}
	require.NoError(t, db.Create(recipe).Error)
	return recipe
}

func TestListTagsScopedToOwner(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTagService(db)

	owner := createTestUser(t, db, "owner@email.com")
	other := createTestUser(t, db, "other@email.com")

	_, err := svc.CreateTag(owner.ID, "Vegan")
	require.NoError(t, err)
	_, err = svc.CreateTag(other.ID, "Dessert")
	require.NoError(t, err)

	tags, err := svc.ListTags(owner.ID, false)
	require.NoError(t, err)

	require.Len(t, tags, 1)
	assert.Equal(t, "Vegan", tags[0].Name)
	assert.Equal(t, owner.ID, tags[0].UserID)
}

func TestListTagsOrderedByNameDescending(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTagService(db)
	user := createTestUser(t, db, "an@email.com")

	for _, name := range []string{"Breakfast", "Vegan", "Dessert"} {
		_, err := svc.CreateTag(user.ID, name)
		require.NoError(t, err)
	}

	tags, err := svc.ListTags(user.ID, false)
	require.NoError(t, err)

	require.Len(t, tags, 3)
	assert.Equal(t, "Vegan", tags[0].Name)
	assert.Equal(t, "Dessert", tags[1].Name)
	assert.Equal(t, "Breakfast", tags[2].Name)
}

func TestListTagsAssignedOnly(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTagService(db)
	user := createTestUser(t, db, "an@email.com")

	assigned, err := svc.CreateTag(user.ID, "Tag1")
	require.NoError(t, err)
	unassigned, err := svc.CreateTag(user.ID, "Tag2")
	require.NoError(t, err)

	recipe := createTestRecipe(t, db, user.ID, "A recipe")
	require.NoError(t, db.Model(recipe).Association("Tags").Append(&assigned))

	tags, err := svc.ListTags(user.ID, true)
	require.NoError(t, err)

	require.Len(t, tags, 1)
	assert.Equal(t, assigned.ID, tags[0].ID)
	assert.NotEqual(t, unassigned.ID, tags[0].ID)
}

func TestListTagsAssignedOnlyDeduplicates(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTagService(db)
	user := createTestUser(t, db, "an@email.com")

	tag, err := svc.CreateTag(user.ID, "Vegan")
	require.NoError(t, err)
	_, err = svc.CreateTag(user.ID, "Unused")
	require.NoError(t, err)

	// Two recipes referencing the same tag must not double it in the list
	recipe1 := createTestRecipe(t, db, user.ID, "A recipe")
	recipe2 := createTestRecipe(t, db, user.ID, "Another recipe")
	require.NoError(t, db.Model(recipe1).Association("Tags").Append(&tag))
	require.NoError(t, db.Model(recipe2).Association("Tags").Append(&tag))

	tags, err := svc.ListTags(user.ID, true)
	require.NoError(t, err)

	require.Len(t, tags, 1)
	assert.Equal(t, tag.ID, tags[0].ID)
}

func TestListTagsAssignedOnlyIsSubsetOfFullList(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTagService(db)
	user := createTestUser(t, db, "an@email.com")

	t1, err := svc.CreateTag(user.ID, "Tag1")
	require.NoError(t, err)
	_, err = svc.CreateTag(user.ID, "Tag2")
	require.NoError(t, err)

	recipe := createTestRecipe(t, db, user.ID, "A recipe")
	require.NoError(t, db.Model(recipe).Association("Tags").Append(&t1))

	all, err := svc.ListTags(user.ID, false)
	require.NoError(t, err)
	assigned, err := svc.ListTags(user.ID, true)
	require.NoError(t, err)

	allIDs := make(map[uint]bool)
	for _, tag := range all {
		allIDs[tag.ID] = true
	}
	for _, tag := range assigned {
		assert.True(t, allIDs[tag.ID], "assigned tag %d missing from full list", tag.ID)
	}
	assert.LessOrEqual(t, len(assigned), len(all))
}

func TestCreateTagRejectsEmptyName(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTagService(db)
	user := createTestUser(t, db, "an@email.com")

	for _, name := range []string{"", "   ", "\t"} {
		_, err := svc.CreateTag(user.ID, name)
		assert.ErrorIs(t, err, ErrEmptyName)
	}

	// Failure must leave no row behind
	var count int64
	db.Model(&models.Tag{}).Count(&count)
	assert.Zero(t, count)
}

func TestGetTagOfAnotherUserIsNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTagService(db)

	owner := createTestUser(t, db, "owner@email.com")
	other := createTestUser(t, db, "other@email.com")

	tag, err := svc.CreateTag(owner.ID, "Vegan")
	require.NoError(t, err)

	_, err = svc.GetTag(other.ID, tag.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUpdateTagScopedToOwner(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTagService(db)

	owner := createTestUser(t, db, "owner@email.com")
	other := createTestUser(t, db, "other@email.com")

	tag, err := svc.CreateTag(owner.ID, "Vegan")
	require.NoError(t, err)

	_, err = svc.UpdateTag(other.ID, tag.ID, "Hijacked")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	updated, err := svc.UpdateTag(owner.ID, tag.ID, "Vegetarian")
	require.NoError(t, err)
	assert.Equal(t, "Vegetarian", updated.Name)
	assert.Equal(t, owner.ID, updated.UserID)
}

func TestDeleteTagScopedToOwnerAndClearsMemberships(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTagService(db)

	owner := createTestUser(t, db, "owner@email.com")
	other := createTestUser(t, db, "other@email.com")

	tag, err := svc.CreateTag(owner.ID, "Vegan")
	require.NoError(t, err)
	recipe := createTestRecipe(t, db, owner.ID, "A recipe")
	require.NoError(t, db.Model(recipe).Association("Tags").Append(&tag))

	assert.ErrorIs(t, svc.DeleteTag(other.ID, tag.ID), gorm.ErrRecordNotFound)

	require.NoError(t, svc.DeleteTag(owner.ID, tag.ID))

	var count int64
	db.Model(&models.Tag{}).Count(&count)
	assert.Zero(t, count)

	var joinCount int64
	db.Table("recipe_tags").Count(&joinCount)
	assert.Zero(t, joinCount)
}

func TestIngredientServiceMirrorsTagSemantics(t *testing.T) {
	db := setupTestDB(t)
	svc := NewIngredientService(db)
	recipes := NewRecipeService(db, storage.NewImageStore(t.TempDir()))

	user := createTestUser(t, db, "an@email.com")

	tomato, err := svc.CreateIngredient(user.ID, "Tomato")
	require.NoError(t, err)
	_, err = svc.CreateIngredient(user.ID, "Lettuce")
	require.NoError(t, err)

	_, err = recipes.CreateRecipe(user.ID, RecipeInput{
		Title:         "Salad",
		TimeInMinutes: 5,
		Price:         3.5,
		IngredientIDs: []uint{tomato.ID},
	})
	require.NoError(t, err)

	assigned, err := svc.ListIngredients(user.ID, true)
	require.NoError(t, err)

	require.Len(t, assigned, 1)
	assert.Equal(t, "Tomato", assigned[0].Name)

	_, err = svc.CreateIngredient(user.ID, "  ")
	assert.ErrorIs(t, err, ErrEmptyName)
}
