package jwt

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/to404hanga/online_judge_frontend/constants"
)

type RedisJWTHandler struct {
	client        redis.Cmdable
	signingMethod jwt.SigningMethod
	jwtExpiration time.Duration
	jwtKey        []byte
}

func NewRedisJWTHandler(client redis.Cmdable, jwtKey []byte, jwtExpiration time.Duration) Handler {
	return &RedisJWTHandler{
		client:        client,
		signingMethod: jwt.SigningMethodHS512,
		jwtExpiration: jwtExpiration,
		jwtKey:        jwtKey,
	}
}

var _ Handler = &RedisJWTHandler{}

// CheckSession 校验 ssid 对应的会话在 redis 中仍然存在
func (h *RedisJWTHandler) CheckSession(ctx *gin.Context, ssid string) error {
	cnt, err := h.client.Exists(ctx, fmt.Sprintf(constants.SessionKey, ssid)).Result()
	if err != nil {
		return err
	}
	if cnt == 0 {
		return errors.New("session evicted")
	}
	return nil
}

func (h *RedisJWTHandler) ExtractToken(ctx *gin.Context) string {
	// 优先从 Header 提取 token
	authCode := ctx.GetHeader(constants.HeaderSessionTokenKey)
	if authCode != "" {
		segs := strings.Split(authCode, " ")
		if len(segs) == 2 && segs[0] == "Bearer" {
			return segs[1]
		}
	}

	// 如果 Header 中没有，尝试从 Cookie 中提取
	tokenFromCookie, err := ctx.Cookie(constants.CookieSessionKey)
	if err != nil {
		return ""
	}
	return tokenFromCookie
}

func (h *RedisJWTHandler) SetSessionToken(ctx *gin.Context, ssid string) error {
	sc := SessionClaims{
		Ssid:      ssid,
		UserAgent: ctx.GetHeader("User-Agent"),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(h.jwtExpiration)),
		},
	}
	token := jwt.NewWithClaims(h.signingMethod, sc)
	tokenStr, err := token.SignedString(h.jwtKey)
	if err != nil {
		return err
	}

	// 设置响应头
	ctx.Header(constants.HeaderSessionTokenKey, tokenStr)

	// 同时设置Cookie，支持浏览器自动携带
	ctx.SetCookie(
		constants.CookieSessionKey,     // cookie名称
		tokenStr,                       // cookie 值
		int(h.jwtExpiration.Seconds()), // 过期时间（秒）
		"/",                            // 路径
		"",                             // 域名
		false,                          // secure (HTTPS)
		true,                           // httpOnly
	)
	return nil
}

func (h *RedisJWTHandler) ClearSessionToken(ctx *gin.Context) {
	ctx.SetCookie(constants.CookieSessionKey, "", -1, "/", "", false, true)
}

func (h *RedisJWTHandler) JwtKey() []byte {
	return h.jwtKey
}

func (h *RedisJWTHandler) GetSessionClaims(ctx *gin.Context) (*SessionClaims, error) {
	scAny, exists := ctx.Get(constants.ContextSsidKey)
	if !exists {
		return nil, fmt.Errorf("session claims not found in context")
	}
	sc, ok := scAny.(SessionClaims)
	if !ok {
		return nil, fmt.Errorf("session claims type assertion error")
	}
	return &sc, nil
}
