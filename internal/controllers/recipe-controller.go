package controllers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/romulino-travelperk/recipe-app-api/internal/models"
	"github.com/romulino-travelperk/recipe-app-api/internal/services"
)

// maxImageUploadBytes caps recipe image uploads
const maxImageUploadBytes = 10 << 20

// recipePayload is the request body for recipe create and update calls. The
// owner is never part of the payload; it always comes from the token.
type recipePayload struct {
	Title         string  `json:"title" binding:"required"`
	TimeInMinutes int     `json:"time_in_minutes" binding:"required"`
	Price         float64 `json:"price" binding:"required"`
	Link          string  `json:"link"`
	Tags          []uint  `json:"tags"`
	Ingredients   []uint  `json:"ingredients"`
}

func (p recipePayload) toInput() services.RecipeInput {
	return services.RecipeInput{
		Title:         p.Title,
		TimeInMinutes: p.TimeInMinutes,
		Price:         p.Price,
		Link:          p.Link,
		TagIDs:        p.Tags,
		IngredientIDs: p.Ingredients,
	}
}

// RecipeController handles HTTP requests related to recipes
type RecipeController interface {
	ListRecipes(c *gin.Context)
	GetRecipe(c *gin.Context)
	CreateRecipe(c *gin.Context)
	UpdateRecipe(c *gin.Context)
	DeleteRecipe(c *gin.Context)
	UploadImage(c *gin.Context)
}

type recipeController struct {
	service services.RecipeService
}

// NewRecipeController creates a new instance of RecipeController
func NewRecipeController(service services.RecipeService) RecipeController {
	return &recipeController{service: service}
}

// ListRecipes godoc
// @Summary List recipes
// @Description List the authenticated user's recipes, newest first, optionally filtered by tag and ingredient membership
// @Tags recipes
// @Produce json
// @Param tags query string false "Comma-separated tag IDs"
// @Param ingredients query string false "Comma-separated ingredient IDs"
// @Success 200 {array} models.RecipeSummary
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/recipes [get]
func (rc *recipeController) ListRecipes(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	tagIDs, err := parseIDList(ctx.Query("tags"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrInvalidFilter, "tags filter must be a comma-separated list of integers"))
		return
	}
	ingredientIDs, err := parseIDList(ctx.Query("ingredients"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrInvalidFilter, "ingredients filter must be a comma-separated list of integers"))
		return
	}

	recipes, err := rc.service.ListRecipes(userID, tagIDs, ingredientIDs)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	// List view keeps relations as bare id references
	summaries := make([]models.RecipeSummary, 0, len(recipes))
	for _, recipe := range recipes {
		summaries = append(summaries, recipe.Summary())
	}
	ctx.JSON(http.StatusOK, summaries)
}

// GetRecipe godoc
// @Summary Get recipe by ID
// @Description Get a single recipe with tags and ingredients expanded
// @Tags recipes
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 200 {object} models.RecipeDetail
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/recipes/{id} [get]
func (rc *recipeController) GetRecipe(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, "Invalid recipe ID format"))
		return
	}

	recipe, err := rc.service.GetRecipe(userID, uint(id))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, recipe.Detail())
}

// CreateRecipe godoc
// @Summary Create a recipe
// @Description Create a recipe owned by the authenticated user. Referenced tag and ingredient ids must belong to the same user.
// @Tags recipes
// @Accept json
// @Produce json
// @Param recipe body recipePayload true "Recipe"
// @Success 201 {object} models.RecipeDetail
// @Failure 400 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/recipes [post]
func (rc *recipeController) CreateRecipe(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var payload recipePayload
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, "Invalid request body"))
		return
	}

	recipe, err := rc.service.CreateRecipe(userID, payload.toInput())
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, recipe.Detail())
}

// UpdateRecipe godoc
// @Summary Update a recipe
// @Description Full update of a recipe; tag and ingredient lists are replaced wholesale
// @Tags recipes
// @Accept json
// @Produce json
// @Param id path int true "Recipe ID"
// @Param recipe body recipePayload true "Recipe"
// @Success 200 {object} models.RecipeDetail
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/recipes/{id} [put]
func (rc *recipeController) UpdateRecipe(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, "Invalid recipe ID format"))
		return
	}

	var payload recipePayload
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, "Invalid request body"))
		return
	}

	recipe, err := rc.service.UpdateRecipe(userID, uint(id), payload.toInput())
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, recipe.Detail())
}

// DeleteRecipe godoc
// @Summary Delete a recipe
// @Tags recipes
// @Param id path int true "Recipe ID"
// @Success 204
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/recipes/{id} [delete]
func (rc *recipeController) DeleteRecipe(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, "Invalid recipe ID format"))
		return
	}

	if err := rc.service.DeleteRecipe(userID, uint(id)); err != nil {
		handleServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusNoContent, nil)
}

// UploadImage godoc
// @Summary Upload a recipe image
// @Description Attach an image to a recipe. The payload must decode as a raster image; a failed upload leaves any existing image untouched.
// @Tags recipes
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Recipe ID"
// @Param image formData file true "Image file"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/recipes/{id}/upload-image [post]
func (rc *recipeController) UploadImage(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, "Invalid recipe ID format"))
		return
	}

	fileHeader, err := ctx.FormFile("image")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, "Multipart field 'image' is required"))
		return
	}
	if fileHeader.Size > maxImageUploadBytes {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, "Image exceeds the upload size limit"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to read upload"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to read upload"))
		return
	}

	recipe, err := rc.service.SetRecipeImage(userID, uint(id), fileHeader.Filename, data)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"id":        recipe.ID,
		"image_url": "/media/" + recipe.Image,
	})
}
