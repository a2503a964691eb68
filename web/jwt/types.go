package jwt

import (
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type Handler interface {
	ExtractToken(ctx *gin.Context) string
	SetSessionToken(ctx *gin.Context, ssid string) error
	ClearSessionToken(ctx *gin.Context)
	CheckSession(ctx *gin.Context, ssid string) error

	JwtKey() []byte
	GetSessionClaims(ctx *gin.Context) (*SessionClaims, error)
}

type SessionClaims struct {
	jwt.RegisteredClaims
	Ssid      string
	UserAgent string
}
