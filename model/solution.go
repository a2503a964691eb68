package model

import (
	"encoding/json"
	"time"
)

// Solution 提交记录, 创建后客户端视角不可变, 评测结果通过重新拉取更新
type Solution struct {
	ID           uint64    `json:"id"`
	TaskID       uint64    `json:"task_id"`
	SubmittedAt  time.Time `json:"submitted_at"`
	ShortVerdict string    `json:"short_verdict"`
	Score        int       `json:"score"`
	IsSolved     bool      `json:"is_solved"`

	Quiz *QuizSolutionData `json:"quiz_data,omitempty"`
	Code *CodeSolutionData `json:"code_data,omitempty"`
}

type QuizSolutionData struct {
	Text string `json:"text"`
}

type CodeSolutionData struct {
	Compiler        string          `json:"compiler"`
	Submission      string          `json:"submission"` // 对象存储中代码文本的 URL
	GroupScores     json.RawMessage `json:"group_scores"`
	DetailedVerdict string          `json:"detailed_verdict"`
}

// SolutionType 提交类型, 与可作答页面类型一致
type SolutionType string

const (
	SolutionTypeQuiz SolutionType = "quiz"
	SolutionTypeCode SolutionType = "code"
)

func (t SolutionType) Valid() bool {
	return t == SolutionTypeQuiz || t == SolutionTypeCode
}
