package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/to404hanga/online_judge_frontend/model"
)

type fakeSubmissionStore struct {
	text    string
	textErr error
	url     string
	urlErr  error

	fetchCalls   int
	presignCalls int
}

func (f *fakeSubmissionStore) FetchSubmissionText(ctx context.Context, submission string) (string, error) {
	f.fetchCalls++
	return f.text, f.textErr
}

func (f *fakeSubmissionStore) GetPresignedDownloadURL(ctx context.Context, submission string, durationSeconds int) (string, error) {
	f.presignCalls++
	return f.url, f.urlErr
}

func codeSolution(id uint64, submission string) *model.Solution {
	return &model.Solution{
		ID:     id,
		TaskID: 3,
		Code: &model.CodeSolutionData{
			Compiler:   "gcc-12",
			Submission: submission,
		},
	}
}

func TestGetCodeSolutionAttachesSourceTextAndURL(t *testing.T) {
	api := &fakeJudgeClient{
		getSolutionFn: func(ctx context.Context, token string, solutionType model.SolutionType, solutionID uint64) (*model.Solution, error) {
			assert.Equal(t, model.SolutionTypeCode, solutionType)
			return codeSolution(solutionID, "solutions/11.txt"), nil
		},
	}
	store := &fakeSubmissionStore{
		text: "int main() { return 0; }",
		url:  "https://store.local/solutions/11.txt?sig=abc",
	}
	svc := &SolutionServiceImpl{api: api, store: store, log: testLogger()}

	detail, err := svc.Get(context.Background(), model.Session{AccessToken: "tok"}, model.SolutionTypeCode, 11)
	require.NoError(t, err)
	assert.Equal(t, "int main() { return 0; }", detail.SourceText)
	assert.Equal(t, "https://store.local/solutions/11.txt?sig=abc", detail.SourceURL)
	assert.Equal(t, 1, store.fetchCalls)
	assert.Equal(t, 1, store.presignCalls)
}

func TestGetCodeSolutionSourceFetchFailureDegrades(t *testing.T) {
	api := &fakeJudgeClient{
		getSolutionFn: func(ctx context.Context, token string, solutionType model.SolutionType, solutionID uint64) (*model.Solution, error) {
			return codeSolution(solutionID, "solutions/11.txt"), nil
		},
	}
	store := &fakeSubmissionStore{
		textErr: errors.New("object not found"),
		url:     "https://store.local/solutions/11.txt?sig=abc",
	}
	svc := &SolutionServiceImpl{api: api, store: store, log: testLogger()}

	detail, err := svc.Get(context.Background(), model.Session{AccessToken: "tok"}, model.SolutionTypeCode, 11)
	require.NoError(t, err)
	assert.Empty(t, detail.SourceText)
	// 拉取失败仍然给出下载链接
	assert.Equal(t, "https://store.local/solutions/11.txt?sig=abc", detail.SourceURL)
}

func TestGetQuizSolutionSkipsStore(t *testing.T) {
	api := &fakeJudgeClient{
		getSolutionFn: func(ctx context.Context, token string, solutionType model.SolutionType, solutionID uint64) (*model.Solution, error) {
			return &model.Solution{ID: solutionID, Quiz: &model.QuizSolutionData{Text: "42"}}, nil
		},
	}
	store := &fakeSubmissionStore{}
	svc := &SolutionServiceImpl{api: api, store: store, log: testLogger()}

	detail, err := svc.Get(context.Background(), model.Session{AccessToken: "tok"}, model.SolutionTypeQuiz, 5)
	require.NoError(t, err)
	assert.Zero(t, store.fetchCalls)
	assert.Zero(t, store.presignCalls)
	assert.Empty(t, detail.SourceURL)
}

func TestGetSolutionWithoutStore(t *testing.T) {
	api := &fakeJudgeClient{
		getSolutionFn: func(ctx context.Context, token string, solutionType model.SolutionType, solutionID uint64) (*model.Solution, error) {
			return codeSolution(solutionID, "solutions/11.txt"), nil
		},
	}
	svc := NewSolutionService(api, nil, testLogger())

	detail, err := svc.Get(context.Background(), model.Session{AccessToken: "tok"}, model.SolutionTypeCode, 11)
	require.NoError(t, err)
	assert.Empty(t, detail.SourceText)
	assert.Empty(t, detail.SourceURL)
}
