package model

import "encoding/json"

// Page 页面详情, 按 Type 只填充对应变体, 在 API 边界完成解码
type Page struct {
	ID        uint64   `json:"id"`
	ContestID uint64   `json:"contest_id"`
	Type      PageType `json:"type"`

	Text *TextPage `json:"text_page,omitempty"`
	Quiz *QuizPage `json:"quiz_page,omitempty"`
	Code *CodePage `json:"code_page,omitempty"`
}

type TextPage struct {
	Name        string `json:"name"`
	Text        string `json:"text"`
	IsEnterPage bool   `json:"is_enter_page"`
}

type QuizPage struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Validator   json.RawMessage `json:"validator"` // 服务端校验规则, 客户端视为不透明 JSON
	Points      int             `json:"points"`
}

type CodePage struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	TestSuite   TestSuite `json:"test_suite"`
}

type TestSuite struct {
	TimeLimit   float64         `json:"time_limit"` // 单位: 秒
	MemLimitMb  int             `json:"mem_limit_mb"`
	PublicCases []PublicCase    `json:"public_cases"`
	Groups      json.RawMessage `json:"groups"`
	Precompile  json.RawMessage `json:"precompile"`
}

type PublicCase struct {
	In  string `json:"in"`
	Out string `json:"out"`
}
