package model

// PageType 比赛页面类型
type PageType string

const (
	PageTypeText PageType = "text"
	PageTypeQuiz PageType = "quiz"
	PageTypeCode PageType = "code"
)

func (t PageType) Valid() bool {
	return t == PageTypeText || t == PageTypeQuiz || t == PageTypeCode
}

// PageRef 比赛页面列表项, 顺序由服务端决定, 客户端不得重排
type PageRef struct {
	ID   uint64   `json:"id"`
	Type PageType `json:"type"`
	Name string   `json:"name"`
}

type Contest struct {
	ID               uint64    `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	Author           uint64    `json:"author"`
	IsStarted        bool      `json:"is_started"`
	IsEnded          bool      `json:"is_ended"`
	TimeLimitSeconds int       `json:"time_limit_seconds"`
	Pages            []PageRef `json:"pages"`
}
