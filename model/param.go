package model

import "encoding/json"

// SessionParam 需要已登录会话的请求公共参数, 由中间件注入
type SessionParam struct {
	Session Session `json:"-"`
}

type SessionParamInterface interface {
	SetSession(s Session)
}

func (p *SessionParam) SetSession(s Session) {
	p.Session = s
}

// DeviceParam 设备级请求公共参数, 设备 ID 来自 cookie, 由中间件注入
type DeviceParam struct {
	DeviceID string `json:"-"`
}

type DeviceParamInterface interface {
	SetDeviceID(id string)
}

func (p *DeviceParam) SetDeviceID(id string) {
	p.DeviceID = id
}

type LoginParam struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RegisterParam struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Password string `json:"password" binding:"required,min=6,max=128"`
}

type GetProfileParam struct {
	SessionParam `json:"-"`
}

type UpdateProfileParam struct {
	SessionParam `json:"-"`

	Settings json.RawMessage `json:"settings" binding:"required"`
}

type GetContestListParam struct {
	SessionParam `json:"-"`
}

type GetContestViewParam struct {
	SessionParam `json:"-"`

	ContestID uint64  `form:"contest_id" binding:"required"`
	PageType  *string `form:"page_type" binding:"omitempty,oneof=text quiz code"`
	PageID    *uint64 `form:"page_id" binding:"omitempty"`
}

type EnterContestParam struct {
	SessionParam `json:"-"`

	ContestID uint64 `json:"contest_id" binding:"required"`
}

type CreateContestParam struct {
	SessionParam `json:"-"`

	Name             string `json:"name" binding:"required"`
	Description      string `json:"description"`
	TimeLimitSeconds int    `json:"time_limit_seconds" binding:"omitempty,min=0"`
}

type UpdateContestParam struct {
	SessionParam `json:"-"`

	ContestID        uint64  `json:"contest_id" binding:"required"`
	Name             *string `json:"name"`
	Description      *string `json:"description"`
	TimeLimitSeconds *int    `json:"time_limit_seconds" binding:"omitempty,min=0"`
}

type DeleteContestParam struct {
	SessionParam `json:"-"`

	ContestID uint64 `json:"contest_id" binding:"required"`
}

// CreateContestPageParam 创建页面, Payload 为对应页面类型的原始字段,
// 其中管理端编辑的规则/配置字段在发送前做本地 JSON 校验
type CreateContestPageParam struct {
	SessionParam `json:"-"`

	ContestID uint64          `json:"contest_id" binding:"required"`
	PageType  string          `json:"page_type" binding:"required,oneof=text quiz code"`
	Payload   json.RawMessage `json:"payload" binding:"required"`
}

type UpdateContestPageParam struct {
	SessionParam `json:"-"`

	ContestID uint64          `json:"contest_id" binding:"required"`
	PageType  string          `json:"page_type" binding:"required,oneof=text quiz code"`
	PageID    uint64          `json:"page_id" binding:"required"`
	Payload   json.RawMessage `json:"payload" binding:"required"`
}

type DeleteContestPageParam struct {
	SessionParam `json:"-"`

	ContestID uint64 `json:"contest_id" binding:"required"`
	PageType  string `json:"page_type" binding:"required,oneof=text quiz code"`
	PageID    uint64 `json:"page_id" binding:"required"`
}

// SetSolutionDraftParam 更新草稿, 进入 composing 态
type SetSolutionDraftParam struct {
	SessionParam `json:"-"`

	ContestID uint64 `json:"contest_id" binding:"required"`
	TaskType  string `json:"task_type" binding:"required,oneof=quiz code"`
	TaskID    uint64 `json:"task_id" binding:"required"`
	Text      string `json:"text"`
}

type SelectCompilerParam struct {
	SessionParam `json:"-"`

	ContestID uint64 `json:"contest_id" binding:"required"`
	TaskID    uint64 `json:"task_id" binding:"required"`
	Compiler  string `json:"compiler" binding:"required"`
}

type SubmitSolutionParam struct {
	SessionParam `json:"-"`

	ContestID uint64 `json:"contest_id" binding:"required"`
	TaskType  string `json:"task_type" binding:"required,oneof=quiz code"`
	TaskID    uint64 `json:"task_id" binding:"required"`
}

type GetTaskSolutionListParam struct {
	SessionParam `json:"-"`

	TaskType string `form:"task_type" binding:"required,oneof=quiz code"`
	TaskID   uint64 `form:"task_id" binding:"required"`
}

type GetSolutionParam struct {
	SessionParam `json:"-"`

	SolutionType string `form:"solution_type" binding:"required,oneof=quiz code"`
	SolutionID   uint64 `form:"solution_id" binding:"required"`
}

type StandingsViewParam struct {
	SessionParam `json:"-"`

	ContestID uint64 `json:"contest_id" form:"contest_id" binding:"required"`
}

type ExportStandingsParam struct {
	SessionParam `json:"-"`

	ContestID uint64 `form:"contest_id" binding:"required"`
	Format    string `form:"format" binding:"required,oneof=csv xlsx"`
}

type GetPreferenceParam struct {
	DeviceParam `json:"-"`

	Key string `form:"key" binding:"required"`
}

// SetPreferenceParam 写入偏好, StrValue 与 BoolValue 恰好填一个
type SetPreferenceParam struct {
	DeviceParam `json:"-"`

	Key       string  `json:"key" binding:"required"`
	StrValue  *string `json:"str_value"`
	BoolValue *bool   `json:"bool_value"`
}
