package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/romulino-travelperk/recipe-app-api/internal/middleware"
	"github.com/romulino-travelperk/recipe-app-api/internal/models"
	"github.com/romulino-travelperk/recipe-app-api/internal/services"
	"github.com/romulino-travelperk/recipe-app-api/internal/storage"
	"gorm.io/gorm"
)

// requireUserID pulls the authenticated user set by the auth middleware. On
// a missing identity it writes the 401 and reports false.
func requireUserID(ctx *gin.Context) (uint, bool) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, models.NewAPIError(models.ErrUnauthorized, "User not authenticated"))
		return 0, false
	}
	return userID, true
}

// parseIDList parses a comma-separated id list query value ("1,2,3"). Any
// malformed token fails the whole list.
func parseIDList(raw string) ([]uint, error) {
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]uint, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 32)
		if err != nil {
			return nil, err
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}

// handleServiceError translates service failures into API error responses
func handleServiceError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		ctx.JSON(http.StatusNotFound, models.NewAPIError(models.ErrNotFound, "Resource not found"))
	case errors.Is(err, services.ErrEmptyName):
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, err.Error()))
	case errors.Is(err, services.ErrUnknownAttribute):
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, err.Error()))
	case errors.Is(err, storage.ErrInvalidImage):
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrInvalidImage, err.Error()))
	default:
		ctx.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Unexpected error"))
	}
}
