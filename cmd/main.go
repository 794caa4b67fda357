package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/romulino-travelperk/recipe-app-api/docs" // Import generated docs
	"github.com/romulino-travelperk/recipe-app-api/internal/auth"
	"github.com/romulino-travelperk/recipe-app-api/internal/config"
	"github.com/romulino-travelperk/recipe-app-api/internal/controllers"
	"github.com/romulino-travelperk/recipe-app-api/internal/database"
	"github.com/romulino-travelperk/recipe-app-api/internal/middleware"
	"github.com/romulino-travelperk/recipe-app-api/internal/models"
	"github.com/romulino-travelperk/recipe-app-api/internal/services"
	"github.com/romulino-travelperk/recipe-app-api/internal/storage"
	log "github.com/sirupsen/logrus"
	"github.com/swaggo/files"
	"github.com/swaggo/gin-swagger"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	db                   *gorm.DB
	configuration        *config.Config
	oauthService         *auth.OAuthService
	authController       *controllers.AuthController
	tagController        controllers.TagController
	ingredientController controllers.IngredientController
	recipeController     controllers.RecipeController
	clientController     *controllers.ClientController
)

// @title Recipe API
// @version 1.0
// @description Recipe management API with per-user tags, ingredients and image upload
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Load environment variables
	loadDotenvFile()

	// Initialize logger
	setUpLogger()

	// Load configuration
	configuration = loadConfig()

	// Initialize database connection
	setupDatabase(configuration)

	// Initialize services and controllers
	images := storage.NewImageStore(configuration.MediaRoot)
	oauthService = auth.NewOAuthService(db, configuration.JWTSecret)
	authController = controllers.NewAuthController(services.NewUserService(db))
	tagController = controllers.NewTagController(services.NewTagService(db))
	ingredientController = controllers.NewIngredientController(services.NewIngredientService(db))
	recipeController = controllers.NewRecipeController(services.NewRecipeService(db, images))
	clientController = controllers.NewClientController(services.NewClientService(db))

	// Initialize Gin router
	var router *gin.Engine = setupRouter()

	// Start the server
	log.Infof("Starting server on %s:%d", configuration.Host, configuration.Port)
	router.Run(fmt.Sprintf("%v:%d", configuration.Host, configuration.Port))
}

// checkPanicErr checks if an error occurred and panics if it did
func checkPanicErr(err error) {
	if err != nil {
		panic(err)
	}
}

// loadDotenvFile loads environment variables from a .env file
// If the file is not found, it will log a warning and use system environment variables
func loadDotenvFile() {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using system environment variables")
	}
}

// setUpLogger initializes the logger with a JSON formatter and sets the log level based on the environment
func setUpLogger() {
	log.SetFormatter(&log.JSONFormatter{})
	environment := config.GetEnvWithDefault("APP_ENV", "development")
	switch environment {
	case "development":
		log.SetLevel(log.DebugLevel)
	case "production":
		log.SetLevel(log.ErrorLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
}

// loadConfig loads the application configuration from environment variables
// It returns a Config struct or panics if there is an error
func loadConfig() *config.Config {
	log.Info("Loading configuration from environment variables")
	conf, err := config.LoadConfig()
	checkPanicErr(err)
	return conf
}

// setupDatabase initializes the database connection and migrates the schema
func setupDatabase(conf *config.Config) *gorm.DB {
	var err error
	db, err = database.InitDatabase(database.DatabaseConfig{
		Driver:   conf.DBDriver,
		Host:     conf.DBHost,
		Port:     conf.DBPort,
		User:     conf.DBUser,
		Password: conf.DBPassword,
		Name:     conf.DBName,
		SSLMode:  conf.DBSSLMode,
		Path:     conf.DBPath,
	})
	checkPanicErr(err)

	// Migrate the schema
	err = db.AutoMigrate(
		&models.User{},
		&models.Tag{},
		&models.Ingredient{},
		&models.Recipe{},
		&models.OAuthClient{},
		&models.OAuthToken{},
	)
	checkPanicErr(err)

	// Seed an OAuth client so the token endpoint works out of the box
	var count int64
	db.Model(&models.OAuthClient{}).Count(&count)
	if count == 0 {
		log.Info("No OAuth clients found, seeding the development client")
		seedDatabase()
	} else {
		log.Info("Database already seeded")
	}
	return db
}

// seedDatabase creates the development OAuth client used by the token endpoint
func seedDatabase() {
	secret := config.GetEnvWithDefault("OAUTH_CLIENT_SECRET", "dev-secret-123")
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	checkPanicErr(err)

	client := models.OAuthClient{
		ID:         config.GetEnvWithDefault("OAUTH_CLIENT_ID", "recipe-web"),
		Secret:     string(hash),
		Name:       "Recipe Web Client",
		Scopes:     "read write",
		GrantTypes: "password refresh_token",
	}
	checkPanicErr(db.Create(&client).Error)
	log.WithField("client_id", client.ID).Info("Development OAuth client created")
}

// setupRouter initializes the Gin router and sets up the routes
// It returns the configured router
func setupRouter() *gin.Engine {
	router := gin.Default()

	setupRoutes(router)

	return router
}

// setupRoutes defines the routes for the Gin router
func setupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", healthCheckHandler)

	// Uploaded recipe images
	router.Static("/media", configuration.MediaRoot)

	v1 := router.Group("/api/v1")
	{
		// Signup and token issuance are the only public endpoints
		users := v1.Group("/users")
		{
			users.POST("", authController.Register)
			users.POST("/token", oauthService.HandleToken)
		}

		// Everything else requires a valid bearer token
		api := v1.Group("")
		api.Use(middleware.JWTAuth([]byte(configuration.JWTSecret)))
		{
			api.GET("/users/me", authController.Me)

			api.GET("/tags", tagController.ListTags)
			api.POST("/tags", tagController.CreateTag)
			api.GET("/tags/:id", tagController.GetTag)
			api.PUT("/tags/:id", tagController.UpdateTag)
			api.DELETE("/tags/:id", tagController.DeleteTag)

			api.GET("/ingredients", ingredientController.ListIngredients)
			api.POST("/ingredients", ingredientController.CreateIngredient)
			api.GET("/ingredients/:id", ingredientController.GetIngredient)
			api.PUT("/ingredients/:id", ingredientController.UpdateIngredient)
			api.DELETE("/ingredients/:id", ingredientController.DeleteIngredient)

			api.GET("/recipes", recipeController.ListRecipes)
			api.POST("/recipes", recipeController.CreateRecipe)
			api.GET("/recipes/:id", recipeController.GetRecipe)
			api.PUT("/recipes/:id", recipeController.UpdateRecipe)
			api.DELETE("/recipes/:id", recipeController.DeleteRecipe)
			api.POST("/recipes/:id/upload-image", recipeController.UploadImage)

			adminApi := api.Group("/admin")
			adminApi.Use(middleware.RequireRole("admin"))
			{
				adminApi.GET("/clients", clientController.ListClients)
				adminApi.POST("/clients", clientController.CreateClient)
				adminApi.DELETE("/clients/:id", clientController.DeleteClient)
			}
		}
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// healthCheckHandler handles the health check endpoint
// @Summary Health check
// @Description Check if the service is running
// @Tags health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "recipe-app-api",
	})
}
