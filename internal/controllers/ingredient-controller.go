package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/romulino-travelperk/recipe-app-api/internal/models"
	"github.com/romulino-travelperk/recipe-app-api/internal/services"
)

// IngredientController mirrors TagController for ingredients
type IngredientController interface {
	ListIngredients(c *gin.Context)
	GetIngredient(c *gin.Context)
	CreateIngredient(c *gin.Context)
	UpdateIngredient(c *gin.Context)
	DeleteIngredient(c *gin.Context)
}

type ingredientController struct {
	service services.IngredientService
}

func NewIngredientController(service services.IngredientService) IngredientController {
	return &ingredientController{service: service}
}

// ListIngredients godoc
// @Summary List ingredients
// @Description List the authenticated user's ingredients, name descending. With assigned_only=true, only ingredients used by at least one recipe.
// @Tags ingredients
// @Produce json
// @Param assigned_only query bool false "Only ingredients assigned to recipes"
// @Success 200 {array} models.Ingredient
// @Failure 401 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/ingredients [get]
func (ic *ingredientController) ListIngredients(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	assignedOnly := ctx.Query("assigned_only") == "true"

	ingredients, err := ic.service.ListIngredients(userID, assignedOnly)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, ingredients)
}

// GetIngredient godoc
// @Summary Get ingredient by ID
// @Tags ingredients
// @Produce json
// @Param id path int true "Ingredient ID"
// @Success 200 {object} models.Ingredient
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/ingredients/{id} [get]
func (ic *ingredientController) GetIngredient(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, "Invalid ingredient ID format"))
		return
	}

	ingredient, err := ic.service.GetIngredient(userID, uint(id))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, ingredient)
}

// CreateIngredient godoc
// @Summary Create an ingredient
// @Tags ingredients
// @Accept json
// @Produce json
// @Param ingredient body attributePayload true "Ingredient name"
// @Success 201 {object} models.Ingredient
// @Failure 400 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/ingredients [post]
func (ic *ingredientController) CreateIngredient(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var payload attributePayload
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, "Invalid request body"))
		return
	}

	ingredient, err := ic.service.CreateIngredient(userID, payload.Name)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, ingredient)
}

// UpdateIngredient godoc
// @Summary Rename an ingredient
// @Tags ingredients
// @Accept json
// @Produce json
// @Param id path int true "Ingredient ID"
// @Param ingredient body attributePayload true "New name"
// @Success 200 {object} models.Ingredient
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/ingredients/{id} [put]
func (ic *ingredientController) UpdateIngredient(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, "Invalid ingredient ID format"))
		return
	}

	var payload attributePayload
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, "Invalid request body"))
		return
	}

	ingredient, err := ic.service.UpdateIngredient(userID, uint(id), payload.Name)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, ingredient)
}

// DeleteIngredient godoc
// @Summary Delete an ingredient
// @Tags ingredients
// @Param id path int true "Ingredient ID"
// @Success 204
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/ingredients/{id} [delete]
func (ic *ingredientController) DeleteIngredient(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, "Invalid ingredient ID format"))
		return
	}

	if err := ic.service.DeleteIngredient(userID, uint(id)); err != nil {
		handleServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusNoContent, nil)
}
