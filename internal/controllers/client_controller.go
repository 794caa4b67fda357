package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/romulino-travelperk/recipe-app-api/internal/models"
	"github.com/romulino-travelperk/recipe-app-api/internal/services"
)

// ClientController manages OAuth clients. All routes sit behind the admin
// role middleware.
type ClientController struct {
	service services.ClientService
}

func NewClientController(service services.ClientService) *ClientController {
	return &ClientController{service: service}
}

// ListClients godoc
// @Summary List OAuth clients
// @Tags admin
// @Produce json
// @Success 200 {array} map[string]interface{}
// @Failure 403 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/admin/clients [get]
func (cc *ClientController) ListClients(ctx *gin.Context) {
	clients, err := cc.service.ListClients()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to list clients"))
		return
	}

	// Never echo stored secret hashes
	out := make([]gin.H, 0, len(clients))
	for _, client := range clients {
		out = append(out, gin.H{
			"id":          client.ID,
			"name":        client.Name,
			"scopes":      client.Scopes,
			"grant_types": client.GrantTypes,
			"created_at":  client.CreatedAt,
		})
	}
	ctx.JSON(http.StatusOK, out)
}

// CreateClient godoc
// @Summary Create an OAuth client
// @Description Provision a client. The secret is returned once and stored only as a hash.
// @Tags admin
// @Accept json
// @Produce json
// @Param client body object true "id (optional), name, scopes"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} models.APIError
// @Failure 403 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/admin/clients [post]
func (cc *ClientController) CreateClient(ctx *gin.Context) {
	var req struct {
		ID     string `json:"id"`
		Name   string `json:"name" binding:"required"`
		Scopes string `json:"scopes"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, "Invalid request body"))
		return
	}

	client, secret, err := cc.service.CreateClient(req.ID, req.Name, req.Scopes)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to create client"))
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"id":     client.ID,
		"name":   client.Name,
		"scopes": client.Scopes,
		"secret": secret,
	})
}

// DeleteClient godoc
// @Summary Delete an OAuth client
// @Tags admin
// @Param id path string true "Client ID"
// @Success 204
// @Failure 403 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/admin/clients/{id} [delete]
func (cc *ClientController) DeleteClient(ctx *gin.Context) {
	if err := cc.service.DeleteClient(ctx.Param("id")); err != nil {
		handleServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusNoContent, nil)
}
