package model

import "encoding/json"

// LoginResult 登录接口返回
type LoginResult struct {
	Token    string `json:"token"`
	ID       uint64 `json:"id"`
	Username string `json:"username"`
}

// Profile 账号信息, 同时用于令牌有效性校验
type Profile struct {
	ID       uint64          `json:"id"`
	Username string          `json:"username"`
	Settings json.RawMessage `json:"settings"`
}
