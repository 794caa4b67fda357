package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/romulino-travelperk/recipe-app-api/internal/models"
	"github.com/romulino-travelperk/recipe-app-api/internal/services"
)

// attributePayload is the request body for tag and ingredient writes
type attributePayload struct {
	Name string `json:"name" binding:"required"`
}

// TagController handles HTTP requests for the caller's tags
type TagController interface {
	ListTags(c *gin.Context)
	GetTag(c *gin.Context)
	CreateTag(c *gin.Context)
	UpdateTag(c *gin.Context)
	DeleteTag(c *gin.Context)
}

type tagController struct {
	service services.TagService
}

// NewTagController creates a new instance of TagController
func NewTagController(service services.TagService) TagController {
	return &tagController{service: service}
}

// ListTags godoc
// @Summary List tags
// @Description List the authenticated user's tags, name descending. With assigned_only=true, only tags used by at least one recipe.
// @Tags tags
// @Produce json
// @Param assigned_only query bool false "Only tags assigned to recipes"
// @Success 200 {array} models.Tag
// @Failure 401 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/tags [get]
func (tc *tagController) ListTags(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	assignedOnly := ctx.Query("assigned_only") == "true"

	tags, err := tc.service.ListTags(userID, assignedOnly)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, tags)
}

// GetTag godoc
// @Summary Get tag by ID
// @Tags tags
// @Produce json
// @Param id path int true "Tag ID"
// @Success 200 {object} models.Tag
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/tags/{id} [get]
func (tc *tagController) GetTag(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, "Invalid tag ID format"))
		return
	}

	tag, err := tc.service.GetTag(userID, uint(id))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, tag)
}

// CreateTag godoc
// @Summary Create a tag
// @Description Create a tag owned by the authenticated user
// @Tags tags
// @Accept json
// @Produce json
// @Param tag body attributePayload true "Tag name"
// @Success 201 {object} models.Tag
// @Failure 400 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/tags [post]
func (tc *tagController) CreateTag(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var payload attributePayload
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, "Invalid request body"))
		return
	}

	tag, err := tc.service.CreateTag(userID, payload.Name)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, tag)
}

// UpdateTag godoc
// @Summary Rename a tag
// @Tags tags
// @Accept json
// @Produce json
// @Param id path int true "Tag ID"
// @Param tag body attributePayload true "New name"
// @Success 200 {object} models.Tag
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/tags/{id} [put]
func (tc *tagController) UpdateTag(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, "Invalid tag ID format"))
		return
	}

	var payload attributePayload
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, "Invalid request body"))
		return
	}

	tag, err := tc.service.UpdateTag(userID, uint(id), payload.Name)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, tag)
}

// DeleteTag godoc
// @Summary Delete a tag
// @Tags tags
// @Param id path int true "Tag ID"
// @Success 204
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/tags/{id} [delete]
func (tc *tagController) DeleteTag(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, "Invalid tag ID format"))
		return
	}

	if err := tc.service.DeleteTag(userID, uint(id)); err != nil {
		handleServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusNoContent, nil)
}
