package gintool

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/to404hanga/online_judge_frontend/model"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

// validate 在全部绑定完成后一次性校验.
// gin 自带的逐步校验被关闭, 否则分步绑定会在 JSON 绑定前就触发 required
var validate = func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.SetTagName("binding")
	return v
}()

type paramPtr[T any] interface {
	*T
}

type sessionParamPtr[T any] interface {
	*T
	model.SessionParamInterface
}

type deviceParamPtr[T any] interface {
	*T
	model.DeviceParamInterface
}

// bindParam 依次绑定 URI/Query/JSON, 失败时直接响应 400
func bindParam(c *gin.Context, param any, log loggerv2.Logger) bool {
	if len(c.Params) > 0 {
		if err := c.ShouldBindUri(param); err != nil {
			GinResponse(c, &Response{
				Code:    http.StatusBadRequest,
				Message: err.Error(),
			})
			log.ErrorContext(c.Request.Context(), "bindParam bind uri failed", logger.Error(err))
			return false
		}
	}

	if c.Request.URL != nil && c.Request.URL.RawQuery != "" {
		if err := c.ShouldBindQuery(param); err != nil {
			GinResponse(c, &Response{
				Code:    http.StatusBadRequest,
				Message: err.Error(),
			})
			log.ErrorContext(c.Request.Context(), "bindParam bind query failed", logger.Error(err))
			return false
		}
	}

	if c.Request.Body != nil && c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(param); err != nil {
			GinResponse(c, &Response{
				Code:    http.StatusBadRequest,
				Message: err.Error(),
			})
			log.ErrorContext(c.Request.Context(), "bindParam bind json failed", logger.Error(err))
			return false
		}
	}

	if err := validate.Struct(param); err != nil {
		GinResponse(c, &Response{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
		log.ErrorContext(c.Request.Context(), "bindParam validate failed", logger.Error(err))
		return false
	}

	return true
}

// WrapHandler 包装无需会话的处理函数
func WrapHandler[T any, PT paramPtr[T]](h func(c *gin.Context, param PT), log loggerv2.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		param := PT(new(T))
		if !bindParam(c, param, log) {
			return
		}
		h(c, param)
	}
}

// WrapSessionHandler 包装需要已登录会话的处理函数
func WrapSessionHandler[T any, PT sessionParamPtr[T]](h func(c *gin.Context, param PT), log loggerv2.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		param := PT(new(T))
		if !bindParam(c, param, log) {
			return
		}

		sess, err := SessionFromContext(c)
		if err != nil {
			GinResponse(c, &Response{
				Code:    http.StatusUnauthorized,
				Message: "not logged in",
			})
			log.ErrorContext(c.Request.Context(), "WrapSessionHandler session missing", logger.Error(err))
			return
		}
		param.SetSession(sess)

		h(c, param)
	}
}

// WrapDeviceHandler 包装按设备读写偏好的处理函数
func WrapDeviceHandler[T any, PT deviceParamPtr[T]](h func(c *gin.Context, param PT), log loggerv2.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		param := PT(new(T))
		if !bindParam(c, param, log) {
			return
		}

		deviceID, err := DeviceFromContext(c)
		if err != nil {
			GinResponse(c, &Response{
				Code:    http.StatusBadRequest,
				Message: "device id missing",
			})
			log.ErrorContext(c.Request.Context(), "WrapDeviceHandler device id missing", logger.Error(err))
			return
		}
		param.SetDeviceID(deviceID)

		h(c, param)
	}
}
