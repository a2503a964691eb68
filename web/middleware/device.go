package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/to404hanga/online_judge_frontend/constants"
)

const deviceCookieMaxAge = 3600 * 24 * 365

type DeviceMiddlewareBuilder struct{}

func NewDeviceMiddlewareBuilder() *DeviceMiddlewareBuilder {
	return &DeviceMiddlewareBuilder{}
}

// EnsureDeviceID 没有设备 cookie 时分配一个, 偏好按设备隔离
func (m *DeviceMiddlewareBuilder) EnsureDeviceID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		deviceID, err := ctx.Cookie(constants.CookieDeviceKey)
		if err != nil || deviceID == "" {
			deviceID = uuid.New().String()
			ctx.SetCookie(constants.CookieDeviceKey, deviceID, deviceCookieMaxAge, "/", "", false, true)
		}
		ctx.Set(constants.ContextDeviceKey, deviceID)
		ctx.Next()
	}
}
