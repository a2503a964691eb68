package gintool

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/to404hanga/online_judge_frontend/constants"
)

// Response 统一响应信封. HTTP 状态恒为 200, 业务结果看 Code 字段
type Response struct {
	Code      int    `json:"code"`
	Message   string `json:"message"`
	Data      any    `json:"data,omitempty"`
	RequestID string `json:"request_id"`
}

// GinResponse 写出响应并回传请求链路 ID
func GinResponse(c *gin.Context, resp *Response) {
	resp.RequestID = c.GetHeader(constants.HeaderRequestIDKey)
	c.JSON(http.StatusOK, resp)
}
