package model

// Session 判题平台会话, 由会话网关写入, 其余组件只读.
// 不变量: 会话要么完全缺失, 要么 token 与身份同时存在, 不允许只有 token 的中间态
type Session struct {
	AccessToken     string `json:"access_token"`
	AccountID       uint64 `json:"account_id"`
	AccountUsername string `json:"account_username"`
}

func (s Session) Present() bool {
	return s.AccessToken != "" && s.AccountUsername != ""
}

// AuthStatus 会话校验结果
type AuthStatus int8

const (
	AuthUnauthorized      AuthStatus = 0 // 未授权, 需要跳转登录
	AuthAuthorized        AuthStatus = 1 // 已授权
	AuthAuthorizedUnknown AuthStatus = 2 // 校验失败但非 401, 会话保留
)

func (s AuthStatus) String() string {
	switch s {
	case AuthAuthorized:
		return "authorized"
	case AuthAuthorizedUnknown:
		return "unknown"
	default:
		return "unauthorized"
	}
}
