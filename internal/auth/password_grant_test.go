package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/romulino-travelperk/recipe-app-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	testClientID     = "test-client"
	testClientSecret = "test-secret"
	testJWTSecret    = "test-jwt-secret"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.OAuthClient{},
		&models.OAuthToken{},
	))
	return db
}

func seedClient(t *testing.T, db *gorm.DB) {
	hash, err := bcrypt.GenerateFromPassword([]byte(testClientSecret), bcrypt.DefaultCost)
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.OAuthClient{
		ID:         testClientID,
		Secret:     string(hash),
		Name:       "Test Client",
		Scopes:     "read write",
		GrantTypes: "password refresh_token",
	}).Error)
}

func seedUser(t *testing.T, db *gorm.DB, email, password string) *models.User {
	user := &models.User{Email: models.NormalizeEmail(email)}
	require.NoError(t, user.SetPassword(password))
	require.NoError(t, db.Create(user).Error)
	return user
}

func setupTokenRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	gin.SetMode(gin.TestMode)
	db := setupTestDB(t)
	seedClient(t, db)

	svc := NewOAuthService(db, testJWTSecret)
	router := gin.New()
	router.POST("/api/v1/users/token", svc.HandleToken)
	return router, db
}

func postToken(router *gin.Engine, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func passwordGrantForm(email, password string) url.Values {
	return url.Values{
		"grant_type":    {"password"},
		"client_id":     {testClientID},
		"client_secret": {testClientSecret},
		"username":      {email},
		"password":      {password},
	}
}

func TestPasswordGrant(t *testing.T) {
	router, db := setupTokenRouter(t)
	seedUser(t, db, "test@example.com", "testpass123")

	w := postToken(router, passwordGrantForm("test@example.com", "testpass123"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	access, _ := resp["access_token"].(string)
	assert.Equal(t, 3, len(strings.Split(access, ".")), "access token should be a JWT")
	assert.Equal(t, "Bearer", resp["token_type"])
	assert.NotEmpty(t, resp["refresh_token"])
	assert.Greater(t, resp["expires_in"].(float64), float64(0))

	// Token row is persisted for introspection and refresh
	var count int64
	db.Model(&models.OAuthToken{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestPasswordGrantCaseInsensitiveEmail(t *testing.T) {
	router, db := setupTokenRouter(t)
	seedUser(t, db, "test@example.com", "testpass123")

	w := postToken(router, passwordGrantForm("TEST@Example.COM", "testpass123"))
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestPasswordGrantWrongPassword(t *testing.T) {
	router, db := setupTokenRouter(t)
	seedUser(t, db, "test@example.com", "testpass123")

	w := postToken(router, passwordGrantForm("test@example.com", "wrongpass"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), models.ErrInvalidGrant)
}

func TestPasswordGrantUnknownUser(t *testing.T) {
	router, _ := setupTokenRouter(t)

	w := postToken(router, passwordGrantForm("nobody@example.com", "testpass123"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), models.ErrInvalidGrant)
}

func TestPasswordGrantBadClientCredentials(t *testing.T) {
	router, db := setupTokenRouter(t)
	seedUser(t, db, "test@example.com", "testpass123")

	form := passwordGrantForm("test@example.com", "testpass123")
	form.Set("client_secret", "not-the-secret")
	w := postToken(router, form)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), models.ErrInvalidClient)

	form = passwordGrantForm("test@example.com", "testpass123")
	form.Set("client_id", "no-such-client")
	w = postToken(router, form)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUnsupportedGrantType(t *testing.T) {
	router, _ := setupTokenRouter(t)

	w := postToken(router, url.Values{
		"grant_type":    {"authorization_code"},
		"client_id":     {testClientID},
		"client_secret": {testClientSecret},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), models.ErrUnsupportedGrantType)
}

func TestRefreshTokenGrant(t *testing.T) {
	router, db := setupTokenRouter(t)
	seedUser(t, db, "test@example.com", "testpass123")

	w := postToken(router, passwordGrantForm("test@example.com", "testpass123"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var first map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &first))
	refresh, _ := first["refresh_token"].(string)
	require.NotEmpty(t, refresh)

	w = postToken(router, url.Values{
		"grant_type":    {"refresh_token"},
		"client_id":     {testClientID},
		"client_secret": {testClientSecret},
		"refresh_token": {refresh},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var second map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &second))
	assert.NotEmpty(t, second["access_token"])
	assert.NotEqual(t, first["access_token"], second["access_token"])
}

func TestRefreshTokenGrantMissingToken(t *testing.T) {
	router, _ := setupTokenRouter(t)

	w := postToken(router, url.Values{
		"grant_type":    {"refresh_token"},
		"client_id":     {testClientID},
		"client_secret": {testClientSecret},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRefreshTokenGrantBogusToken(t *testing.T) {
	router, _ := setupTokenRouter(t)

	w := postToken(router, url.Values{
		"grant_type":    {"refresh_token"},
		"client_id":     {testClientID},
		"client_secret": {testClientSecret},
		"refresh_token": {"not-a-real-token"},
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
