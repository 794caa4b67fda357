package auth

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-oauth2/oauth2/v4"
	"github.com/romulino-travelperk/recipe-app-api/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// HandleToken is the token endpoint. It supports the resource-owner password
// grant (email + password in exchange for a bearer token) and refresh_token.
// @Summary Token Endpoint
// @Description Obtain an access token using the password or refresh_token grant
// @Tags auth
// @Accept application/x-www-form-urlencoded
// @Produce json
// @Param grant_type formData string true "Grant type: password or refresh_token"
// @Param client_id formData string true "Client ID"
// @Param client_secret formData string true "Client Secret"
// @Param username formData string false "User email (password grant)"
// @Param password formData string false "User password (password grant)"
// @Param refresh_token formData string false "Refresh token (refresh_token grant)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/v1/users/token [post]
func (o *OAuthService) HandleToken(c *gin.Context) {
	grantType := c.PostForm("grant_type")

	switch grantType {
	case "password":
		o.handlePassword(c)
	case "refresh_token":
		o.handleRefresh(c)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": models.ErrUnsupportedGrantType})
	}
}

func (o *OAuthService) handlePassword(c *gin.Context) {
	clientID := c.PostForm("client_id")
	clientSecret := c.PostForm("client_secret")
	username := c.PostForm("username")
	password := c.PostForm("password")

	client, ok := o.validateClient(c, clientID, clientSecret)
	if !ok {
		return
	}

	// Resolve the resource owner. Same response for unknown email and wrong
	// password, so the endpoint cannot be used to probe for accounts.
	var user models.User
	if err := o.db.Where("email = ?", models.NormalizeEmail(username)).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": models.ErrInvalidGrant})
		return
	}
	if !user.CheckPassword(password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": models.ErrInvalidGrant})
		return
	}

	// The manager re-verifies the client through the store, so the secret
	// must travel with the request
	ti, err := o.server.Manager.GenerateAccessToken(c, oauth2.PasswordCredentials, &oauth2.TokenGenerateRequest{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		UserID:       strconv.FormatUint(uint64(user.ID), 10),
		Scope:        client.Scopes,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token_generation_failed"})
		return
	}

	respondWithToken(c, ti)
}

func (o *OAuthService) handleRefresh(c *gin.Context) {
	clientID := c.PostForm("client_id")
	clientSecret := c.PostForm("client_secret")
	refreshToken := c.PostForm("refresh_token")

	if _, ok := o.validateClient(c, clientID, clientSecret); !ok {
		return
	}

	if refreshToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": models.ErrInvalidRequest})
		return
	}

	ti, err := o.server.Manager.RefreshAccessToken(c, &oauth2.TokenGenerateRequest{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Refresh:      refreshToken,
	})
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": models.ErrInvalidGrant})
		return
	}

	respondWithToken(c, ti)
}

// validateClient loads the client row and verifies its bcrypt-hashed secret.
// On failure it writes the error response and returns ok=false.
func (o *OAuthService) validateClient(c *gin.Context, clientID, clientSecret string) (models.OAuthClient, bool) {
	var client models.OAuthClient
	if err := o.db.Where("id = ?", clientID).First(&client).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": models.ErrInvalidClient})
		return client, false
	}

	if err := bcrypt.CompareHashAndPassword([]byte(client.Secret), []byte(clientSecret)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": models.ErrInvalidClient})
		return client, false
	}

	return client, true
}

func respondWithToken(c *gin.Context, ti oauth2.TokenInfo) {
	resp := gin.H{
		"access_token": ti.GetAccess(),
		"token_type":   "Bearer",
		"expires_in":   int64(ti.GetAccessExpiresIn().Seconds()),
		"scope":        ti.GetScope(),
	}
	if ti.GetRefresh() != "" {
		resp["refresh_token"] = ti.GetRefresh()
	}
	c.JSON(http.StatusOK, resp)
}
