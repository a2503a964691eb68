package gintool

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/to404hanga/online_judge_frontend/constants"
	"github.com/to404hanga/online_judge_frontend/model"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

// ContextMiddleware 补齐请求 ID 并把公共字段注入日志上下文
func ContextMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader(constants.HeaderRequestIDKey) == "" {
			c.Request.Header.Set(constants.HeaderRequestIDKey, uuid.New().String())
		}
		c.Request = c.Request.WithContext(GinContextToLoggerContext(c))
		c.Next()
	}
}

// GinContextToLoggerContext 将 Gin 上下文转换为 Logger 上下文
func GinContextToLoggerContext(c *gin.Context) context.Context {
	baseCtx := c.Request.Context()

	fields := make([]logger.Field, 0, 2)

	if requestID := c.GetHeader(constants.HeaderRequestIDKey); requestID != "" {
		fields = append(fields, logger.String("RequestID", requestID))
	}
	if deviceID, err := c.Cookie(constants.CookieDeviceKey); err == nil && deviceID != "" {
		fields = append(fields, logger.String("DeviceID", deviceID))
	}

	return context.WithValue(baseCtx, loggerv2.FieldsKey, fields)
}

// SessionFromContext 从 Gin 上下文提取会话, 由鉴权中间件写入
func SessionFromContext(c *gin.Context) (model.Session, error) {
	sessAny, exists := c.Get(constants.ContextSessionKey)
	if !exists {
		return model.Session{}, fmt.Errorf("session not found in context")
	}
	sess, ok := sessAny.(model.Session)
	if !ok {
		return model.Session{}, fmt.Errorf("session type assertion failed")
	}
	return sess, nil
}

// DeviceFromContext 从 Gin 上下文提取设备 ID, 由设备中间件写入
func DeviceFromContext(c *gin.Context) (string, error) {
	idAny, exists := c.Get(constants.ContextDeviceKey)
	if !exists {
		return "", fmt.Errorf("device id not found in context")
	}
	id, ok := idAny.(string)
	if !ok || id == "" {
		return "", fmt.Errorf("device id type assertion failed")
	}
	return id, nil
}
