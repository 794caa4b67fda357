package auth

import (
	"time"

	"github.com/go-oauth2/oauth2/v4/manage"
	"github.com/go-oauth2/oauth2/v4/server"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// Token lifetimes for the password grant. The refresh window is also used
// when loading stored refresh tokens, so keep the two in sync.
const (
	AccessTokenTTL  = 2 * time.Hour
	RefreshTokenTTL = 7 * 24 * time.Hour
)

type OAuthService struct {
	server *server.Server
	db     *gorm.DB
}

func NewOAuthService(db *gorm.DB, jwtSecret string) *OAuthService {
	manager := manage.NewDefaultManager()

	// Use JWT for access tokens, with uid/role claims baked in
	manager.MapAccessGenerate(NewCustomJWTAccessGenerate([]byte(jwtSecret), jwt.SigningMethodHS256, db))

	manager.SetPasswordTokenCfg(&manage.Config{
		AccessTokenExp:    AccessTokenTTL,
		RefreshTokenExp:   RefreshTokenTTL,
		IsGenerateRefresh: true,
	})

	// Configure token store
	tokenStore := NewGormTokenStore(db)
	manager.MustTokenStorage(tokenStore, nil)

	// Configure client store
	clientStore := NewGormClientStore(db)
	manager.MapClientStorage(clientStore)

	srv := server.NewDefaultServer(manager)
	srv.SetClientInfoHandler(server.ClientFormHandler)

	return &OAuthService{
		server: srv,
		db:     db,
	}
}

func (o *OAuthService) GetServer() *server.Server {
	return o.server
}
