package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/to404hanga/online_judge_frontend/model"
	"github.com/to404hanga/online_judge_frontend/pkg/judgeapi"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

var (
	// ErrCompilerNotSelected 代码题未绑定编译器时的本地拒绝, 不发网络请求
	ErrCompilerNotSelected = errors.New("compiler not selected")
	// ErrSubmissionInFlight 已有在途提交时的本地拒绝, 不发网络请求
	ErrSubmissionInFlight = errors.New("submission already in flight")
)

type SubmissionPhase string

const (
	PhaseIdle       SubmissionPhase = "idle"
	PhaseComposing  SubmissionPhase = "composing"
	PhaseSubmitting SubmissionPhase = "submitting"
	PhaseSubmitted  SubmissionPhase = "submitted"
)

// TaskSessionState 单个任务的答题会话快照
type TaskSessionState struct {
	Phase     SubmissionPhase `json:"phase"`
	Draft     string          `json:"draft"`
	Compiler  string          `json:"compiler,omitempty"`
	Highlight string          `json:"highlight,omitempty"`
}

// SubmitResult 提交成功后的结果, Redirect 指向任务的规范地址
type SubmitResult struct {
	Redirect string `json:"redirect"`
}

type SubmissionService interface {
	// SetDraft 更新草稿, 空草稿回到 idle
	SetDraft(ctx context.Context, ssid string, taskType model.SolutionType, taskID uint64, text string) TaskSessionState
	// SelectCompiler 绑定编译器, ID 需存在于编译器清单
	SelectCompiler(ctx context.Context, ssid string, taskID uint64, compilerID string) (TaskSessionState, error)
	// Submit 提交当前草稿. 同一任务同一时刻至多一个在途提交,
	// 代码题未选编译器时本地拒绝
	Submit(ctx context.Context, sess model.Session, ssid string, param *model.SubmitSolutionParam) (SubmitResult, error)
	// State 读取答题会话快照
	State(ctx context.Context, ssid string, taskType model.SolutionType, taskID uint64) TaskSessionState
	// PruneIdle 回收闲置超过 olderThan 的答题会话, 返回回收数量
	PruneIdle(olderThan time.Duration) int
}

// taskSession 单个 (ssid, 任务) 的答题状态.
// inFlight 是提交在途标记, 只通过 CAS 置位, 所有退出路径复位
type taskSession struct {
	mu        sync.Mutex
	phase     SubmissionPhase
	draft     string
	compiler  string
	highlight string
	inFlight  int32
	touched   time.Time
}

func (t *taskSession) state() TaskSessionState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return TaskSessionState{
		Phase:     t.phase,
		Draft:     t.draft,
		Compiler:  t.compiler,
		Highlight: t.highlight,
	}
}

type SubmissionServiceImpl struct {
	api       judgeapi.Client
	compilers CompilerService
	log       loggerv2.Logger
	mu        sync.Mutex
	sessions  map[string]*taskSession
}

var _ SubmissionService = (*SubmissionServiceImpl)(nil)

func NewSubmissionService(api judgeapi.Client, compilers CompilerService, log loggerv2.Logger) SubmissionService {
	return &SubmissionServiceImpl{
		api:       api,
		compilers: compilers,
		log:       log,
		sessions:  make(map[string]*taskSession),
	}
}

func (s *SubmissionServiceImpl) SetDraft(ctx context.Context, ssid string, taskType model.SolutionType, taskID uint64, text string) TaskSessionState {
	ts := s.getOrCreate(taskKey(ssid, taskType, taskID))
	ts.mu.Lock()
	ts.draft = text
	switch {
	case text == "":
		ts.phase = PhaseIdle
	case ts.phase == PhaseIdle || ts.phase == PhaseSubmitted:
		ts.phase = PhaseComposing
	}
	ts.touched = time.Now()
	ts.mu.Unlock()
	return ts.state()
}

func (s *SubmissionServiceImpl) SelectCompiler(ctx context.Context, ssid string, taskID uint64, compilerID string) (TaskSessionState, error) {
	compiler, err := s.compilers.Lookup(ctx, compilerID)
	if err != nil {
		return TaskSessionState{}, fmt.Errorf("SelectCompiler failed at lookup: %w", err)
	}

	ts := s.getOrCreate(taskKey(ssid, model.SolutionTypeCode, taskID))
	ts.mu.Lock()
	ts.compiler = compiler.ID
	ts.highlight = compiler.Highlight
	ts.touched = time.Now()
	ts.mu.Unlock()
	return ts.state(), nil
}

func (s *SubmissionServiceImpl) Submit(ctx context.Context, sess model.Session, ssid string, param *model.SubmitSolutionParam) (SubmitResult, error) {
	taskType := model.SolutionType(param.TaskType)
	ts := s.getOrCreate(taskKey(ssid, taskType, param.TaskID))

	ts.mu.Lock()
	draft := ts.draft
	compiler := ts.compiler
	ts.mu.Unlock()

	// 编译器前置校验先于在途标记, 被拒绝的提交不占用状态机
	if taskType == model.SolutionTypeCode && compiler == "" {
		return SubmitResult{}, ErrCompilerNotSelected
	}

	if !atomic.CompareAndSwapInt32(&ts.inFlight, 0, 1) {
		return SubmitResult{}, ErrSubmissionInFlight
	}
	defer atomic.StoreInt32(&ts.inFlight, 0)

	ts.setPhase(PhaseSubmitting)

	var err error
	switch taskType {
	case model.SolutionTypeQuiz:
		err = s.api.SubmitQuizSolution(ctx, sess.AccessToken, param.TaskID, draft)
	default:
		err = s.api.SubmitCodeSolution(ctx, sess.AccessToken, param.TaskID, draft, compiler)
	}
	if err != nil {
		// 失败保留草稿, 回到可编辑状态等待重试
		ts.setPhase(PhaseComposing)
		s.log.ErrorContext(ctx, "Submit failed",
			logger.Uint64("task_id", param.TaskID),
			logger.String("task_type", param.TaskType),
			logger.Error(err))
		return SubmitResult{}, fmt.Errorf("Submit failed at judge api: %w", err)
	}

	ts.mu.Lock()
	ts.phase = PhaseSubmitted
	ts.draft = ""
	ts.touched = time.Now()
	ts.mu.Unlock()

	return SubmitResult{
		Redirect: fmt.Sprintf("/contests/%d/%s/%d", param.ContestID, taskType, param.TaskID),
	}, nil
}

func (s *SubmissionServiceImpl) State(ctx context.Context, ssid string, taskType model.SolutionType, taskID uint64) TaskSessionState {
	return s.getOrCreate(taskKey(ssid, taskType, taskID)).state()
}

func (s *SubmissionServiceImpl) PruneIdle(olderThan time.Duration) int {
	deadline := time.Now().Add(-olderThan)
	s.mu.Lock()
	defer s.mu.Unlock()
	pruned := 0
	for k, ts := range s.sessions {
		ts.mu.Lock()
		idle := ts.touched.Before(deadline) && atomic.LoadInt32(&ts.inFlight) == 0
		ts.mu.Unlock()
		if idle {
			delete(s.sessions, k)
			pruned++
		}
	}
	return pruned
}

func (s *SubmissionServiceImpl) getOrCreate(key string) *taskSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	ts, ok := s.sessions[key]
	if !ok {
		ts = &taskSession{phase: PhaseIdle, touched: time.Now()}
		s.sessions[key] = ts
	}
	return ts
}

func (t *taskSession) setPhase(phase SubmissionPhase) {
	t.mu.Lock()
	t.phase = phase
	t.touched = time.Now()
	t.mu.Unlock()
}

func taskKey(ssid string, taskType model.SolutionType, taskID uint64) string {
	return fmt.Sprintf("%s:%s:%d", ssid, taskType, taskID)
}
