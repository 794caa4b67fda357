package auth

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-oauth2/oauth2/v4"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/romulino-travelperk/recipe-app-api/internal/models"
	"gorm.io/gorm"
)

// CustomJWTAccessGenerate generates JWT access tokens with custom claims including UserID and Role
type CustomJWTAccessGenerate struct {
	SignedKey    []byte
	SignedMethod jwt.SigningMethod
	DB           *gorm.DB // Database connection to fetch user information
}

// NewCustomJWTAccessGenerate creates a new custom JWT access token generator
func NewCustomJWTAccessGenerate(key []byte, method jwt.SigningMethod, db *gorm.DB) *CustomJWTAccessGenerate {
	return &CustomJWTAccessGenerate{
		SignedKey:    key,
		SignedMethod: method,
		DB:           db,
	}
}

// Token generates a JWT access token with custom claims
// This method is called by the OAuth2 library to generate access tokens
func (g *CustomJWTAccessGenerate) Token(ctx context.Context, data *oauth2.GenerateBasic, isGenRefresh bool) (string, string, error) {
	// jti keeps tokens unique even when two are minted within the same
	// second for the same user and client
	claims := jwt.MapClaims{
		"aud": data.Client.GetID(),
		"jti": uuid.NewString(),
		"iat": data.TokenInfo.GetAccessCreateAt().Unix(),
		"exp": data.TokenInfo.GetAccessCreateAt().Add(data.TokenInfo.GetAccessExpiresIn()).Unix(),
	}

	userID := data.UserID
	if userID == "" {
		userID = data.TokenInfo.GetUserID()
	}
	if userID == "" {
		return "", "", fmt.Errorf("cannot generate token: no user ID available")
	}
	claims["uid"] = userID

	// The role claim always reflects the database, not the request, which
	// rules out privilege escalation through crafted token requests
	role, err := g.getUserRole(userID)
	if err != nil {
		return "", "", fmt.Errorf("failed to fetch user role: %w", err)
	}
	claims["role"] = role

	if data.TokenInfo.GetScope() != "" {
		claims["scope"] = data.TokenInfo.GetScope()
	}

	token := jwt.NewWithClaims(g.SignedMethod, claims)
	access, err := token.SignedString(g.SignedKey)
	if err != nil {
		return "", "", err
	}

	refresh := ""
	if isGenRefresh {
		refreshClaims := jwt.MapClaims{
			"id":  data.TokenInfo.GetAccess(),
			"exp": data.TokenInfo.GetRefreshCreateAt().Add(data.TokenInfo.GetRefreshExpiresIn()).Unix(),
		}
		t := jwt.NewWithClaims(g.SignedMethod, refreshClaims)
		refresh, err = t.SignedString(g.SignedKey)
		if err != nil {
			return "", "", err
		}
	}

	return access, refresh, nil
}

// getUserRole fetches the user's role from the database
func (g *CustomJWTAccessGenerate) getUserRole(userIDStr string) (string, error) {
	userID, err := strconv.ParseUint(userIDStr, 10, 32)
	if err != nil {
		return "", fmt.Errorf("invalid user ID format: %w", err)
	}

	var user models.User
	if err := g.DB.First(&user, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", fmt.Errorf("user with ID %d not found", userID)
		}
		return "", fmt.Errorf("database error: %w", err)
	}

	return user.Role(), nil
}
