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

func testContest() *model.Contest {
	return &model.Contest{
		ID:   7,
		Name: "warmup",
		Pages: []model.PageRef{
			{ID: 1, Type: model.PageTypeText, Name: "Rules"},
			{ID: 2, Type: model.PageTypeQuiz, Name: "Q1"},
			{ID: 3, Type: model.PageTypeCode, Name: "A + B"},
		},
	}
}

func viewParam(contestID uint64, pageType string, pageID uint64) *model.GetContestViewParam {
	p := &model.GetContestViewParam{ContestID: contestID}
	if pageType != "" {
		p.PageType = &pageType
		p.PageID = &pageID
	}
	return p
}

func TestResolveDefaultsToFirstPage(t *testing.T) {
	api := &fakeJudgeClient{
		getContestFn: func(ctx context.Context, token string, contestID uint64) (*model.Contest, error) {
			return testContest(), nil
		},
		getContestPageFn: func(ctx context.Context, token string, contestID uint64, pageType model.PageType, pageID uint64) (*model.Page, error) {
			assert.Equal(t, model.PageTypeText, pageType)
			assert.Equal(t, uint64(1), pageID)
			return &model.Page{ID: pageID, ContestID: contestID, Type: pageType}, nil
		},
	}
	svc := NewResolverService(api, testLogger())

	view, err := svc.Resolve(context.Background(), model.Session{AccessToken: "tok"}, "ssid-1", viewParam(7, "", 0))
	require.NoError(t, err)
	assert.Equal(t, ViewReady, view.State)
	assert.Equal(t, model.PageTypeText, view.PageType)
	assert.Equal(t, uint64(1), view.PageID)
	require.NotNil(t, view.Page)
	assert.Equal(t, "warmup", view.Contest.Name)
}

func TestResolveExplicitPage(t *testing.T) {
	api := &fakeJudgeClient{
		getContestFn: func(ctx context.Context, token string, contestID uint64) (*model.Contest, error) {
			return testContest(), nil
		},
		getContestPageFn: func(ctx context.Context, token string, contestID uint64, pageType model.PageType, pageID uint64) (*model.Page, error) {
			return &model.Page{ID: pageID, ContestID: contestID, Type: pageType}, nil
		},
	}
	svc := NewResolverService(api, testLogger())

	view, err := svc.Resolve(context.Background(), model.Session{AccessToken: "tok"}, "ssid-1", viewParam(7, "quiz", 2))
	require.NoError(t, err)
	assert.Equal(t, ViewReady, view.State)
	assert.Equal(t, model.PageTypeQuiz, view.PageType)
	assert.Equal(t, uint64(2), view.PageID)
}

func TestResolveContestWithoutPages(t *testing.T) {
	api := &fakeJudgeClient{
		getContestFn: func(ctx context.Context, token string, contestID uint64) (*model.Contest, error) {
			return &model.Contest{ID: contestID, Name: "empty"}, nil
		},
	}
	svc := NewResolverService(api, testLogger())

	view, err := svc.Resolve(context.Background(), model.Session{AccessToken: "tok"}, "ssid-1", viewParam(9, "", 0))
	require.NoError(t, err)
	assert.Equal(t, ViewNoPages, view.State)
	require.NotNil(t, view.Contest)
	assert.Zero(t, api.callCount("GetContestPage"))
}

func TestResolveContestNotFound(t *testing.T) {
	api := &fakeJudgeClient{
		getContestFn: func(ctx context.Context, token string, contestID uint64) (*model.Contest, error) {
			return nil, &judgeapi.Fault{Status: http.StatusNotFound, Reason: "Not found."}
		},
	}
	svc := NewResolverService(api, testLogger())

	view, err := svc.Resolve(context.Background(), model.Session{AccessToken: "tok"}, "ssid-1", viewParam(404, "", 0))
	require.NoError(t, err)
	assert.Equal(t, ViewContestNotFound, view.State)
	assert.Zero(t, api.callCount("GetContestPage"))
}

func TestResolveContestFetchErrorSurfaces(t *testing.T) {
	api := &fakeJudgeClient{
		getContestFn: func(ctx context.Context, token string, contestID uint64) (*model.Contest, error) {
			return nil, &judgeapi.Fault{Status: http.StatusBadGateway}
		},
	}
	svc := NewResolverService(api, testLogger())

	_, err := svc.Resolve(context.Background(), model.Session{AccessToken: "tok"}, "ssid-1", viewParam(7, "", 0))
	require.Error(t, err)
}

func TestResolvePageLoadFailed(t *testing.T) {
	api := &fakeJudgeClient{
		getContestFn: func(ctx context.Context, token string, contestID uint64) (*model.Contest, error) {
			return testContest(), nil
		},
		getContestPageFn: func(ctx context.Context, token string, contestID uint64, pageType model.PageType, pageID uint64) (*model.Page, error) {
			return nil, &judgeapi.Fault{Status: http.StatusInternalServerError, Reason: "boom"}
		},
	}
	svc := NewResolverService(api, testLogger())

	view, err := svc.Resolve(context.Background(), model.Session{AccessToken: "tok"}, "ssid-1", viewParam(7, "", 0))
	require.NoError(t, err)
	assert.Equal(t, ViewPageLoadFailed, view.State)
	assert.Equal(t, "boom", view.Reason)
	require.NotNil(t, view.Contest)
	assert.Nil(t, view.Page)
}

// 慢页面的迟到结果不得覆盖之后导航到的新页面
func TestResolveStaleResultDiscarded(t *testing.T) {
	quizEntered := make(chan struct{})
	quizRelease := make(chan struct{})
	api := &fakeJudgeClient{
		getContestFn: func(ctx context.Context, token string, contestID uint64) (*model.Contest, error) {
			return testContest(), nil
		},
	}
	api.getContestPageFn = func(ctx context.Context, token string, contestID uint64, pageType model.PageType, pageID uint64) (*model.Page, error) {
		if pageType == model.PageTypeQuiz {
			close(quizEntered)
			<-quizRelease
		}
		return &model.Page{ID: pageID, ContestID: contestID, Type: pageType}, nil
	}
	svc := NewResolverService(api, testLogger())
	sess := model.Session{AccessToken: "tok"}

	var wg sync.WaitGroup
	wg.Add(1)
	var slowView ResolvedView
	go func() {
		defer wg.Done()
		var err error
		slowView, err = svc.Resolve(context.Background(), sess, "ssid-1", viewParam(7, "quiz", 2))
		assert.NoError(t, err)
	}()

	select {
	case <-quizEntered:
	case <-time.After(2 * time.Second):
		t.Fatal("quiz page fetch was never started")
	}

	fastView, err := svc.Resolve(context.Background(), sess, "ssid-1", viewParam(7, "code", 3))
	require.NoError(t, err)
	assert.Equal(t, uint64(3), fastView.PageID)

	close(quizRelease)
	wg.Wait()

	// 两次调用都观察到最新导航的结果
	assert.Equal(t, ViewReady, slowView.State)
	assert.Equal(t, model.PageTypeCode, slowView.PageType)
	assert.Equal(t, uint64(3), slowView.PageID)
}

func TestInvalidateDropsCachedView(t *testing.T) {
	api := &fakeJudgeClient{
		getContestFn: func(ctx context.Context, token string, contestID uint64) (*model.Contest, error) {
			return testContest(), nil
		},
		getContestPageFn: func(ctx context.Context, token string, contestID uint64, pageType model.PageType, pageID uint64) (*model.Page, error) {
			return &model.Page{ID: pageID, ContestID: contestID, Type: pageType}, nil
		},
	}
	svc := NewResolverService(api, testLogger()).(*ResolverServiceImpl)

	_, err := svc.Resolve(context.Background(), model.Session{AccessToken: "tok"}, "ssid-1", viewParam(7, "", 0))
	require.NoError(t, err)
	require.Len(t, svc.views, 1)

	svc.Invalidate("ssid-1", 7)
	assert.Empty(t, svc.views)
}

func TestPruneIdleKeepsFreshViews(t *testing.T) {
	api := &fakeJudgeClient{
		getContestFn: func(ctx context.Context, token string, contestID uint64) (*model.Contest, error) {
			return testContest(), nil
		},
		getContestPageFn: func(ctx context.Context, token string, contestID uint64, pageType model.PageType, pageID uint64) (*model.Page, error) {
			return &model.Page{ID: pageID, ContestID: contestID, Type: pageType}, nil
		},
	}
	svc := NewResolverService(api, testLogger()).(*ResolverServiceImpl)

	_, err := svc.Resolve(context.Background(), model.Session{AccessToken: "tok"}, "ssid-1", viewParam(7, "", 0))
	require.NoError(t, err)

	assert.Zero(t, svc.PruneIdle(time.Minute))
	assert.Equal(t, 1, svc.PruneIdle(0))
	assert.Empty(t, svc.views)
}
