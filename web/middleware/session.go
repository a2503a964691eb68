package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/to404hanga/online_judge_frontend/constants"
	"github.com/to404hanga/online_judge_frontend/service"
	ojjwt "github.com/to404hanga/online_judge_frontend/web/jwt"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

type SessionMiddlewareBuilder struct {
	ojjwt.Handler
	sessionSvc     service.SessionService
	log            loggerv2.Logger
	protectedPaths []string
}

func NewSessionMiddlewareBuilder(handler ojjwt.Handler, sessionSvc service.SessionService, log loggerv2.Logger, protectedPaths []string) *SessionMiddlewareBuilder {
	return &SessionMiddlewareBuilder{
		Handler:        handler,
		sessionSvc:     sessionSvc,
		log:            log,
		protectedPaths: protectedPaths,
	}
}

// CheckSession 受保护路径上解析会话 cookie 并把会话注入请求上下文
func (m *SessionMiddlewareBuilder) CheckSession() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		path := ctx.Request.URL.Path
		flag := false
		for _, p := range m.protectedPaths {
			if strings.HasPrefix(path, p) {
				flag = true
				break
			}
		}
		if !flag {
			ctx.Next()
			return
		}

		tokenStr := m.ExtractToken(ctx)
		if tokenStr == "" {
			// 无令牌直接拒绝, 不查询存储也不访问判题平台
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		var sc ojjwt.SessionClaims
		token, err := jwt.ParseWithClaims(tokenStr, &sc, func(t *jwt.Token) (any, error) {
			return m.JwtKey(), nil
		})
		if err != nil || token == nil || !token.Valid {
			m.log.ErrorContext(ctx, "CheckSession parse token failed",
				logger.Error(err),
				logger.Bool("token==nil", token == nil),
			)
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		if err = m.Handler.CheckSession(ctx, sc.Ssid); err != nil {
			m.log.ErrorContext(ctx, "CheckSession session evicted", logger.Error(err))
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		sess, err := m.sessionSvc.LoadSession(ctx.Request.Context(), sc.Ssid)
		if err != nil {
			m.log.ErrorContext(ctx, "CheckSession load session failed", logger.Error(err))
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		ctx.Set(constants.ContextSsidKey, sc)
		ctx.Set(constants.ContextSessionKey, sess)
		ctx.Next()
	}
}
