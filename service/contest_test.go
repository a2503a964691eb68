package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/to404hanga/online_judge_frontend/model"
)

func TestCreatePageRejectsBadPayloadLocally(t *testing.T) {
	api := &fakeJudgeClient{}
	resolver := NewResolverService(api, testLogger()).(*ResolverServiceImpl)
	resolver.getOrCreate("ssid-1", 7)
	svc := NewContestService(api, resolver, testLogger())

	err := svc.CreatePage(context.Background(), model.Session{AccessToken: "tok"}, "ssid-1", &model.CreateContestPageParam{
		ContestID: 7,
		PageType:  "quiz",
		Payload:   json.RawMessage(`{"title":`),
	})
	assert.ErrorIs(t, err, ErrInvalidPagePayload)
	assert.Zero(t, api.callCount("CreateContestPage"))
	// 本地拒绝不触发视图缓存失效
	assert.Len(t, resolver.views, 1)
}

func TestCreatePageInvalidatesViewOnSuccess(t *testing.T) {
	api := &fakeJudgeClient{
		createContestPageFn: func(ctx context.Context, token string, contestID uint64, pageType model.PageType, payload json.RawMessage) error {
			assert.Equal(t, model.PageTypeText, pageType)
			return nil
		},
	}
	resolver := NewResolverService(api, testLogger()).(*ResolverServiceImpl)
	resolver.getOrCreate("ssid-1", 7)
	svc := NewContestService(api, resolver, testLogger())

	err := svc.CreatePage(context.Background(), model.Session{AccessToken: "tok"}, "ssid-1", &model.CreateContestPageParam{
		ContestID: 7,
		PageType:  "text",
		Payload:   json.RawMessage(`{"name":"Rules","text":"be nice","is_enter_page":true}`),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, api.callCount("CreateContestPage"))
	assert.Empty(t, resolver.views)
}

func TestUpdateContestInvalidatesOnlyOwnView(t *testing.T) {
	api := &fakeJudgeClient{
		updateContestFn: func(ctx context.Context, token string, contestID uint64, payload any) error {
			fields, ok := payload.(map[string]any)
			require.True(t, ok)
			assert.Equal(t, "renamed", fields["name"])
			_, hasDescription := fields["description"]
			assert.False(t, hasDescription, "unset fields must not be sent")
			return nil
		},
	}
	resolver := NewResolverService(api, testLogger()).(*ResolverServiceImpl)
	resolver.getOrCreate("ssid-1", 7)
	resolver.getOrCreate("ssid-1", 8)
	svc := NewContestService(api, resolver, testLogger())

	name := "renamed"
	err := svc.Update(context.Background(), model.Session{AccessToken: "tok"}, "ssid-1", &model.UpdateContestParam{
		ContestID: 7,
		Name:      &name,
	})
	require.NoError(t, err)
	assert.Len(t, resolver.views, 1)
	_, stillThere := resolver.views[viewKey("ssid-1", 8)]
	assert.True(t, stillThere)
}

func TestValidatePagePayloadUnknownType(t *testing.T) {
	err := validatePagePayload(model.PageType("poll"), json.RawMessage(`{}`))
	assert.ErrorIs(t, err, ErrInvalidPagePayload)
}
