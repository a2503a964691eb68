package service

import (
	"context"
	stdjson "encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/to404hanga/online_judge_frontend/model"
	"github.com/to404hanga/online_judge_frontend/pkg/judgeapi"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
	"go.uber.org/zap"
)

func testLogger() loggerv2.Logger {
	return loggerv2.NewZapContextLogger(zap.NewNop())
}

func newTestRedis(t *testing.T) (*miniredis.Miniredis, redis.Cmdable) {
	t.Helper()
	mr := miniredis.RunT(t)
	return mr, redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

// fakeJudgeClient 只实现被测路径需要的方法, 未设置的调用直接 panic
type fakeJudgeClient struct {
	judgeapi.Client

	mu    sync.Mutex
	calls map[string]int

	loginFn             func(ctx context.Context, username, password string) (*model.LoginResult, error)
	getProfileFn        func(ctx context.Context, token string) (*model.Profile, error)
	getContestFn        func(ctx context.Context, token string, contestID uint64) (*model.Contest, error)
	getContestPageFn    func(ctx context.Context, token string, contestID uint64, pageType model.PageType, pageID uint64) (*model.Page, error)
	updateContestFn     func(ctx context.Context, token string, contestID uint64, payload any) error
	createContestPageFn func(ctx context.Context, token string, contestID uint64, pageType model.PageType, payload stdjson.RawMessage) error

	getCompilersFn func(ctx context.Context) ([]model.Compiler, error)
	submitQuizFn   func(ctx context.Context, token string, taskID uint64, text string) error
	submitCodeFn   func(ctx context.Context, token string, taskID uint64, text, compiler string) error
	getSolutionFn  func(ctx context.Context, token string, solutionType model.SolutionType, solutionID uint64) (*model.Solution, error)
	getStandingsFn func(ctx context.Context, token string, contestID uint64) (*model.Standings, error)
}

func (f *fakeJudgeClient) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[name]++
}

func (f *fakeJudgeClient) callCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeJudgeClient) Login(ctx context.Context, username, password string) (*model.LoginResult, error) {
	f.record("Login")
	if f.loginFn == nil {
		panic("unexpected Login call")
	}
	return f.loginFn(ctx, username, password)
}

func (f *fakeJudgeClient) GetProfile(ctx context.Context, token string) (*model.Profile, error) {
	f.record("GetProfile")
	if f.getProfileFn == nil {
		panic("unexpected GetProfile call")
	}
	return f.getProfileFn(ctx, token)
}

func (f *fakeJudgeClient) GetContest(ctx context.Context, token string, contestID uint64) (*model.Contest, error) {
	f.record("GetContest")
	if f.getContestFn == nil {
		panic("unexpected GetContest call")
	}
	return f.getContestFn(ctx, token, contestID)
}

func (f *fakeJudgeClient) GetContestPage(ctx context.Context, token string, contestID uint64, pageType model.PageType, pageID uint64) (*model.Page, error) {
	f.record("GetContestPage")
	if f.getContestPageFn == nil {
		panic(fmt.Sprintf("unexpected GetContestPage call: %s/%d", pageType, pageID))
	}
	return f.getContestPageFn(ctx, token, contestID, pageType, pageID)
}

func (f *fakeJudgeClient) UpdateContest(ctx context.Context, token string, contestID uint64, payload any) error {
	f.record("UpdateContest")
	if f.updateContestFn == nil {
		panic("unexpected UpdateContest call")
	}
	return f.updateContestFn(ctx, token, contestID, payload)
}

func (f *fakeJudgeClient) CreateContestPage(ctx context.Context, token string, contestID uint64, pageType model.PageType, payload stdjson.RawMessage) error {
	f.record("CreateContestPage")
	if f.createContestPageFn == nil {
		panic("unexpected CreateContestPage call")
	}
	return f.createContestPageFn(ctx, token, contestID, pageType, payload)
}

func (f *fakeJudgeClient) GetCompilers(ctx context.Context) ([]model.Compiler, error) {
	f.record("GetCompilers")
	if f.getCompilersFn == nil {
		panic("unexpected GetCompilers call")
	}
	return f.getCompilersFn(ctx)
}

func (f *fakeJudgeClient) SubmitQuizSolution(ctx context.Context, token string, taskID uint64, text string) error {
	f.record("SubmitQuizSolution")
	if f.submitQuizFn == nil {
		panic("unexpected SubmitQuizSolution call")
	}
	return f.submitQuizFn(ctx, token, taskID, text)
}

func (f *fakeJudgeClient) SubmitCodeSolution(ctx context.Context, token string, taskID uint64, text, compiler string) error {
	f.record("SubmitCodeSolution")
	if f.submitCodeFn == nil {
		panic("unexpected SubmitCodeSolution call")
	}
	return f.submitCodeFn(ctx, token, taskID, text, compiler)
}

func (f *fakeJudgeClient) GetSolution(ctx context.Context, token string, solutionType model.SolutionType, solutionID uint64) (*model.Solution, error) {
	f.record("GetSolution")
	if f.getSolutionFn == nil {
		panic("unexpected GetSolution call")
	}
	return f.getSolutionFn(ctx, token, solutionType, solutionID)
}

func (f *fakeJudgeClient) GetStandings(ctx context.Context, token string, contestID uint64) (*model.Standings, error) {
	f.record("GetStandings")
	if f.getStandingsFn == nil {
		panic("unexpected GetStandings call")
	}
	return f.getStandingsFn(ctx, token, contestID)
}
