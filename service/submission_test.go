package service

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/to404hanga/online_judge_frontend/model"
	"github.com/to404hanga/online_judge_frontend/pkg/judgeapi"
)

func newSubmissionService(t *testing.T, api *fakeJudgeClient) SubmissionService {
	t.Helper()
	if api.getCompilersFn == nil {
		api.getCompilersFn = func(ctx context.Context) ([]model.Compiler, error) {
			return []model.Compiler{
				{ID: "gcc-12", Highlight: "c"},
				{ID: "g++-12", Highlight: "cpp"},
			}, nil
		}
	}
	_, rdb := newTestRedis(t)
	compilers := NewCompilerService(api, rdb, testLogger())
	return NewSubmissionService(api, compilers, testLogger())
}

func submitParam(taskType string, taskID uint64) *model.SubmitSolutionParam {
	return &model.SubmitSolutionParam{ContestID: 7, TaskType: taskType, TaskID: taskID}
}

func TestSetDraftDrivesPhase(t *testing.T) {
	svc := newSubmissionService(t, &fakeJudgeClient{})
	ctx := context.Background()

	state := svc.State(ctx, "ssid-1", model.SolutionTypeCode, 3)
	assert.Equal(t, PhaseIdle, state.Phase)

	state = svc.SetDraft(ctx, "ssid-1", model.SolutionTypeCode, 3, "int main() {}")
	assert.Equal(t, PhaseComposing, state.Phase)
	assert.Equal(t, "int main() {}", state.Draft)

	state = svc.SetDraft(ctx, "ssid-1", model.SolutionTypeCode, 3, "")
	assert.Equal(t, PhaseIdle, state.Phase)
}

func TestSelectCompilerBindsHighlight(t *testing.T) {
	svc := newSubmissionService(t, &fakeJudgeClient{})

	state, err := svc.SelectCompiler(context.Background(), "ssid-1", 3, "g++-12")
	require.NoError(t, err)
	assert.Equal(t, "g++-12", state.Compiler)
	assert.Equal(t, "cpp", state.Highlight)
}

func TestSelectCompilerUnknownID(t *testing.T) {
	svc := newSubmissionService(t, &fakeJudgeClient{})

	_, err := svc.SelectCompiler(context.Background(), "ssid-1", 3, "tcc")
	assert.ErrorIs(t, err, ErrUnknownCompiler)
}

func TestSubmitCodeWithoutCompilerIsLocalReject(t *testing.T) {
	api := &fakeJudgeClient{}
	svc := newSubmissionService(t, api)
	ctx := context.Background()

	svc.SetDraft(ctx, "ssid-1", model.SolutionTypeCode, 3, "int main() {}")

	_, err := svc.Submit(ctx, model.Session{AccessToken: "tok"}, "ssid-1", submitParam("code", 3))
	assert.ErrorIs(t, err, ErrCompilerNotSelected)
	assert.Zero(t, api.callCount("SubmitCodeSolution"))

	// 被拒绝的提交不占用状态机, 草稿原样保留
	state := svc.State(ctx, "ssid-1", model.SolutionTypeCode, 3)
	assert.Equal(t, PhaseComposing, state.Phase)
	assert.Equal(t, "int main() {}", state.Draft)
}

func TestSubmitSecondAttemptWhileInFlight(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	api := &fakeJudgeClient{
		submitCodeFn: func(ctx context.Context, token string, taskID uint64, text, compiler string) error {
			close(entered)
			<-release
			return nil
		},
	}
	svc := newSubmissionService(t, api)
	ctx := context.Background()
	sess := model.Session{AccessToken: "tok"}

	svc.SetDraft(ctx, "ssid-1", model.SolutionTypeCode, 3, "int main() {}")
	_, err := svc.SelectCompiler(ctx, "ssid-1", 3, "gcc-12")
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(1)
	var firstResult SubmitResult
	go func() {
		defer wg.Done()
		var submitErr error
		firstResult, submitErr = svc.Submit(ctx, sess, "ssid-1", submitParam("code", 3))
		assert.NoError(t, submitErr)
	}()

	select {
	case <-entered:
	case <-time.After(2 * time.Second):
		t.Fatal("first submit never reached the judge api")
	}

	assert.Equal(t, PhaseSubmitting, svc.State(ctx, "ssid-1", model.SolutionTypeCode, 3).Phase)

	_, err = svc.Submit(ctx, sess, "ssid-1", submitParam("code", 3))
	assert.ErrorIs(t, err, ErrSubmissionInFlight)

	close(release)
	wg.Wait()

	assert.Equal(t, 1, api.callCount("SubmitCodeSolution"))
	assert.Equal(t, "/contests/7/code/3", firstResult.Redirect)
}

func TestSubmitFailureKeepsDraftAndReleasesGuard(t *testing.T) {
	api := &fakeJudgeClient{
		submitCodeFn: func(ctx context.Context, token string, taskID uint64, text, compiler string) error {
			return &judgeapi.Fault{Status: http.StatusBadGateway, Reason: "upstream down"}
		},
	}
	svc := newSubmissionService(t, api)
	ctx := context.Background()
	sess := model.Session{AccessToken: "tok"}

	svc.SetDraft(ctx, "ssid-1", model.SolutionTypeCode, 3, "int main() {}")
	_, err := svc.SelectCompiler(ctx, "ssid-1", 3, "gcc-12")
	require.NoError(t, err)

	_, err = svc.Submit(ctx, sess, "ssid-1", submitParam("code", 3))
	require.Error(t, err)

	state := svc.State(ctx, "ssid-1", model.SolutionTypeCode, 3)
	assert.Equal(t, PhaseComposing, state.Phase)
	assert.Equal(t, "int main() {}", state.Draft)

	// 在途标记已复位, 重试可以立即发起
	api.submitCodeFn = func(ctx context.Context, token string, taskID uint64, text, compiler string) error {
		assert.Equal(t, "int main() {}", text)
		assert.Equal(t, "gcc-12", compiler)
		return nil
	}
	result, err := svc.Submit(ctx, sess, "ssid-1", submitParam("code", 3))
	require.NoError(t, err)
	assert.Equal(t, "/contests/7/code/3", result.Redirect)
}

func TestSubmitSuccessClearsDraft(t *testing.T) {
	api := &fakeJudgeClient{
		submitQuizFn: func(ctx context.Context, token string, taskID uint64, text string) error {
			assert.Equal(t, "42", text)
			return nil
		},
	}
	svc := newSubmissionService(t, api)
	ctx := context.Background()

	svc.SetDraft(ctx, "ssid-1", model.SolutionTypeQuiz, 2, "42")

	result, err := svc.Submit(ctx, model.Session{AccessToken: "tok"}, "ssid-1", submitParam("quiz", 2))
	require.NoError(t, err)
	assert.Equal(t, "/contests/7/quiz/2", result.Redirect)

	state := svc.State(ctx, "ssid-1", model.SolutionTypeQuiz, 2)
	assert.Equal(t, PhaseSubmitted, state.Phase)
	assert.Empty(t, state.Draft)
}

func TestPruneIdleSkipsInFlightSession(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	api := &fakeJudgeClient{
		submitQuizFn: func(ctx context.Context, token string, taskID uint64, text string) error {
			close(entered)
			<-release
			return nil
		},
	}
	svc := newSubmissionService(t, api).(*SubmissionServiceImpl)
	ctx := context.Background()

	svc.SetDraft(ctx, "ssid-1", model.SolutionTypeQuiz, 2, "42")

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := svc.Submit(ctx, model.Session{AccessToken: "tok"}, "ssid-1", submitParam("quiz", 2))
		assert.NoError(t, err)
	}()

	select {
	case <-entered:
	case <-time.After(2 * time.Second):
		t.Fatal("submit never reached the judge api")
	}

	assert.Zero(t, svc.PruneIdle(0))

	close(release)
	wg.Wait()

	assert.Equal(t, 1, svc.PruneIdle(0))
}
