package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Local copies of the persisted shapes so the script stays standalone

type User struct {
	ID           uint   `gorm:"primaryKey"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Name         string
	IsStaff      bool
	IsSuperuser  bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type OAuthClient struct {
	ID         string `gorm:"primaryKey"`
	Secret     string `gorm:"not null"`
	Name       string
	Scopes     string
	GrantTypes string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (OAuthClient) TableName() string {
	return "oauth_clients"
}

func main() {
	email := flag.String("email", "admin@example.com", "Superuser email")
	password := flag.String("password", "", "Superuser password (required)")
	dbPath := flag.String("db", "recipes.sqlite", "SQLite database path")
	flag.Parse()

	if *password == "" {
		log.Fatal("-password is required")
	}
	if len(*password) < 6 {
		log.Fatal("password must be at least 6 characters")
	}

	db, err := gorm.Open(sqlite.Open(*dbPath), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := db.AutoMigrate(&User{}, &OAuthClient{}); err != nil {
		log.Fatal("Failed to migrate schema:", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	user := User{
		Email:        *email,
		PasswordHash: string(hash),
		Name:         "Admin",
		IsStaff:      true,
		IsSuperuser:  true,
	}
	if err := db.Where("email = ?", *email).FirstOrCreate(&user).Error; err != nil {
		log.Fatal("Failed to create superuser:", err)
	}

	// Make sure a client exists for the token endpoint
	var count int64
	db.Model(&OAuthClient{}).Count(&count)
	if count == 0 {
		secretHash, err := bcrypt.GenerateFromPassword([]byte("dev-secret-123"), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal("Failed to hash client secret:", err)
		}
		client := OAuthClient{
			ID:         "recipe-web",
			Secret:     string(secretHash),
			Name:       "Recipe Web Client",
			Scopes:     "read write",
			GrantTypes: "password refresh_token",
		}
		if err := db.Create(&client).Error; err != nil {
			log.Fatal("Failed to create OAuth client:", err)
		}
		fmt.Println("Created OAuth client 'recipe-web' with secret 'dev-secret-123'")
	}

	fmt.Printf("Superuser %s ready (id=%d)\n", user.Email, user.ID)
}
