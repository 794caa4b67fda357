package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// JWTAuth validates Bearer access tokens and resolves them into a requesting
// user, stored on the context as userID/userRole. Every protected route runs
// behind this middleware; requests without a valid identity never reach a
// handler, per RFC 6750 bearer token usage.
func JWTAuth(jwtSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			respondUnauthorized(c, "authorization_required",
				"Missing Authorization header. A valid Bearer token is required.")
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			respondUnauthorized(c, "invalid_request",
				"Authorization header must use Bearer scheme. Format: 'Bearer <token>'")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			respondUnauthorized(c, "invalid_token", "Bearer token is empty")
			return
		}

		claims, err := parseAndValidateJWT(tokenString, jwtSecret)
		if err != nil {
			respondUnauthorized(c, "invalid_token", err.Error())
			return
		}

		if err := extractAndSetClaims(c, claims); err != nil {
			respondUnauthorized(c, "invalid_token", err.Error())
			return
		}

		c.Next()
	}
}

// respondUnauthorized aborts with an RFC 6750 style error body
func respondUnauthorized(c *gin.Context, errorCode, description string) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"error":             errorCode,
		"error_description": description,
	})
	c.Abort()
}

// parseAndValidateJWT parses the token and performs strict time-claim checks
func parseAndValidateJWT(tokenString string, jwtSecret []byte) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate the signing method to prevent algorithm confusion attacks
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v. Expected HMAC", token.Header["alg"])
		}
		return jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("token parsing failed: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("token is invalid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims format")
	}

	now := time.Now()

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return nil, fmt.Errorf("invalid exp claim: %w", err)
	}
	if exp != nil && exp.Before(now) {
		return nil, fmt.Errorf("token has expired")
	}

	nbf, err := claims.GetNotBefore()
	if err != nil {
		return nil, fmt.Errorf("invalid nbf claim: %w", err)
	}
	if nbf != nil && nbf.After(now) {
		return nil, fmt.Errorf("token not yet valid")
	}

	iat, err := claims.GetIssuedAt()
	if err != nil {
		return nil, fmt.Errorf("invalid iat claim: %w", err)
	}
	if iat != nil && iat.After(now) {
		return nil, fmt.Errorf("token issued in the future")
	}

	return claims, nil
}

// extractAndSetClaims pulls the identity out of the claims and stores it in
// the Gin context for handlers to consume
func extractAndSetClaims(c *gin.Context, claims jwt.MapClaims) error {
	userID, err := extractUserID(claims)
	if err != nil {
		return err
	}
	if userID == 0 {
		return fmt.Errorf("invalid user identifier: cannot be zero")
	}
	c.Set("userID", userID)

	role, err := extractRole(claims)
	if err != nil {
		return err
	}
	c.Set("userRole", role)

	if aud, ok := claims["aud"].(string); ok && aud != "" {
		c.Set("clientID", aud)
	} else if audArray, ok := claims["aud"].([]interface{}); ok && len(audArray) > 0 {
		if firstAud, ok := audArray[0].(string); ok && firstAud != "" {
			c.Set("clientID", firstAud)
		}
	}

	if scope, ok := claims["scope"].(string); ok && scope != "" {
		c.Set("scopes", scope)
	}

	return nil
}

// extractUserID reads the "uid" claim, which our token generator always sets
func extractUserID(claims jwt.MapClaims) (uint, error) {
	if uid, ok := claims["uid"].(string); ok && uid != "" {
		parsedID, err := strconv.ParseUint(uid, 10, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid uid claim format: must be a numeric string, got: %s", uid)
		}
		return uint(parsedID), nil
	}

	// JSON numbers arrive as float64
	if uid, ok := claims["uid"].(float64); ok {
		if uid <= 0 {
			return 0, fmt.Errorf("invalid uid claim: must be positive, got: %f", uid)
		}
		return uint(uid), nil
	}

	return 0, fmt.Errorf("token missing required 'uid' claim. This token is not valid for this API")
}

// extractRole reads and validates the role claim; no defaulting
func extractRole(claims jwt.MapClaims) (string, error) {
	role, ok := claims["role"].(string)
	if !ok || role == "" {
		return "", fmt.Errorf("token missing required 'role' claim. Tokens must explicitly specify user roles")
	}

	allowedRoles := map[string]bool{
		"admin": true,
		"user":  true,
	}
	if !allowedRoles[role] {
		return "", fmt.Errorf("invalid role '%s'. Allowed roles: admin, user", role)
	}

	return role, nil
}

// CurrentUserID returns the authenticated user id set by JWTAuth
func CurrentUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get("userID")
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
