package controllers

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/romulino-travelperk/recipe-app-api/internal/models"
	"github.com/romulino-travelperk/recipe-app-api/internal/services"
	"github.com/romulino-travelperk/recipe-app-api/internal/storage"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testEnv wires the controllers against an in-memory database behind routes
// matching the real router, with a stub auth middleware in place of JWTAuth.
type testEnv struct {
	router *gin.Engine
	db     *gorm.DB
}

func setupEnv(t *testing.T) *testEnv {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Tag{},
		&models.Ingredient{},
		&models.Recipe{},
	))

	userService := services.NewUserService(db)
	tagService := services.NewTagService(db)
	ingredientService := services.NewIngredientService(db)
	recipeService := services.NewRecipeService(db, storage.NewImageStore(t.TempDir()))

	authController := NewAuthController(userService)
	tagController := NewTagController(tagService)
	ingredientController := NewIngredientController(ingredientService)
	recipeController := NewRecipeController(recipeService)

	router := gin.New()
	router.POST("/api/v1/users", authController.Register)

	protected := router.Group("/api/v1")
	protected.Use(stubAuth(db))
	{
		protected.GET("/users/me", authController.Me)

		protected.GET("/tags", tagController.ListTags)
		protected.POST("/tags", tagController.CreateTag)
		protected.GET("/tags/:id", tagController.GetTag)
		protected.PUT("/tags/:id", tagController.UpdateTag)
		protected.DELETE("/tags/:id", tagController.DeleteTag)

		protected.GET("/ingredients", ingredientController.ListIngredients)
		protected.POST("/ingredients", ingredientController.CreateIngredient)
		protected.GET("/ingredients/:id", ingredientController.GetIngredient)
		protected.PUT("/ingredients/:id", ingredientController.UpdateIngredient)
		protected.DELETE("/ingredients/:id", ingredientController.DeleteIngredient)

		protected.GET("/recipes", recipeController.ListRecipes)
		protected.POST("/recipes", recipeController.CreateRecipe)
		protected.GET("/recipes/:id", recipeController.GetRecipe)
		protected.PUT("/recipes/:id", recipeController.UpdateRecipe)
		protected.DELETE("/recipes/:id", recipeController.DeleteRecipe)
		protected.POST("/recipes/:id/upload-image", recipeController.UploadImage)
	}

	return &testEnv{router: router, db: db}
}

// stubAuth stands in for the JWT middleware: it trusts the X-Test-User header
// so tests can act as different users without minting tokens.
func stubAuth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetHeader("X-Test-User")
		if email == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		var user models.User
		if err := db.Where("email = ?", email).First(&user).Error; err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Set("userID", user.ID)
		c.Set("userRole", user.Role())
		c.Next()
	}
}

func (e *testEnv) createUser(t *testing.T, email string) *models.User {
	user := &models.User{Email: email}
	require.NoError(t, user.SetPassword("testpass123"))
	require.NoError(t, e.db.Create(user).Error)
	return user
}

func (e *testEnv) do(t *testing.T, method, path, asUser string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if asUser != "" {
		req.Header.Set("X-Test-User", asUser)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) upload(t *testing.T, path, asUser, filename string, content []byte) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if asUser != "" {
		req.Header.Set("X-Test-User", asUser)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// idPath renders a decoded response's numeric id as a path segment
func idPath(obj map[string]interface{}) string {
	return strconv.FormatFloat(obj["id"].(float64), 'f', -1, 64)
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]interface{} {
	var out []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func decodeObject(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}
