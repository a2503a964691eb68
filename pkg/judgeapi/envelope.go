package judgeapi

import (
	"errors"
	"fmt"
	"net/http"
)

// Fault 归一化的请求失败, 对应成功响应之外的所有结果.
// 核心组件只消费该结构, 不接触原始传输错误
type Fault struct {
	Status    int    // HTTP 状态码, 传输层失败时为 0
	Reason    string // 上游 detail 或传输错误描述
	ErrorCode string // 上游业务错误码
}

func (f *Fault) Error() string {
	if f.Status == 0 {
		return fmt.Sprintf("judge api transport failure: %s", f.Reason)
	}
	return fmt.Sprintf("judge api failure: status=%d reason=%s code=%s", f.Status, f.Reason, f.ErrorCode)
}

func (f *Fault) IsUnauthorized() bool {
	return f.Status == http.StatusUnauthorized
}

func (f *Fault) IsNotFound() bool {
	return f.Status == http.StatusNotFound
}

// Transient 传输层失败或 5xx, 对只读请求可重试
func (f *Fault) Transient() bool {
	return f.Status == 0 || f.Status >= http.StatusInternalServerError
}

// AsFault 从错误链中提取 Fault
func AsFault(err error) (*Fault, bool) {
	var f *Fault
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

// errorBody 上游错误响应体
type errorBody struct {
	Detail string `json:"detail"`
	Code   string `json:"code"`
}
