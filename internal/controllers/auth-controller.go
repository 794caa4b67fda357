package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/romulino-travelperk/recipe-app-api/internal/models"
	"github.com/romulino-travelperk/recipe-app-api/internal/services"
)

type AuthController struct {
	userService services.UserService
}

func NewAuthController(userService services.UserService) *AuthController {
	return &AuthController{userService: userService}
}

// Register godoc
// @Summary Sign up
// @Description Create a new user account
// @Tags users
// @Accept json
// @Produce json
// @Param user body object true "email, password, name"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} models.APIError
// @Router /api/v1/users [post]
func (ac *AuthController) Register(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
		Name     string `json:"name"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, err.Error()))
		return
	}

	user, err := ac.userService.CreateUser(req.Email, req.Password, req.Name)
	if err != nil {
		// Short passwords and taken emails are both caller mistakes
		if errors.Is(err, services.ErrUserExists) || errors.Is(err, models.ErrPasswordTooShort) || errors.Is(err, services.ErrInvalidEmail) {
			c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to create user"))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":    user.ID,
		"email": user.Email,
		"name":  user.Name,
	})
}

// Me godoc
// @Summary Current user profile
// @Tags users
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/users/me [get]
func (ac *AuthController) Me(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	user, err := ac.userService.GetUserByID(userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":    user.ID,
		"email": user.Email,
		"name":  user.Name,
		"role":  user.Role(),
	})
}
