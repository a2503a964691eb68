package judgeapi

import (
	"context"
	stdjson "encoding/json"
	"fmt"
	"net/http"

	"github.com/to404hanga/online_judge_frontend/model"
)

func (c *HTTPClient) GetContestList(ctx context.Context, token string) ([]model.Contest, error) {
	var contests []model.Contest
	if err := c.get(ctx, "contests/", token, &contests); err != nil {
		return nil, err
	}
	return contests, nil
}

func (c *HTTPClient) GetContest(ctx context.Context, token string, contestID uint64) (*model.Contest, error) {
	var contest model.Contest
	if err := c.get(ctx, fmt.Sprintf("contests/%d/", contestID), token, &contest); err != nil {
		return nil, err
	}
	return &contest, nil
}

func (c *HTTPClient) CreateContest(ctx context.Context, token string, payload any) (*model.Contest, error) {
	var contest model.Contest
	if err := c.doJSON(ctx, http.MethodPost, "contests/", token, payload, &contest); err != nil {
		return nil, err
	}
	return &contest, nil
}

func (c *HTTPClient) UpdateContest(ctx context.Context, token string, contestID uint64, payload any) error {
	return c.doJSON(ctx, http.MethodPatch, fmt.Sprintf("contests/%d/", contestID), token, payload, nil)
}

func (c *HTTPClient) DeleteContest(ctx context.Context, token string, contestID uint64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("contests/%d/", contestID), token, nil, nil)
}

// GetContestPage 页面详情在边界处按请求类型解码为带标签的变体
func (c *HTTPClient) GetContestPage(ctx context.Context, token string, contestID uint64, pageType model.PageType, pageID uint64) (*model.Page, error) {
	path := fmt.Sprintf("contests/%d/tasks/%s/%d/", contestID, pageType, pageID)
	page := &model.Page{ID: pageID, ContestID: contestID, Type: pageType}
	switch pageType {
	case model.PageTypeText:
		var v model.TextPage
		if err := c.get(ctx, path, token, &v); err != nil {
			return nil, err
		}
		page.Text = &v
	case model.PageTypeQuiz:
		var v model.QuizPage
		if err := c.get(ctx, path, token, &v); err != nil {
			return nil, err
		}
		page.Quiz = &v
	case model.PageTypeCode:
		var v model.CodePage
		if err := c.get(ctx, path, token, &v); err != nil {
			return nil, err
		}
		page.Code = &v
	default:
		return nil, fmt.Errorf("unknown page type %q", pageType)
	}
	return page, nil
}

func (c *HTTPClient) CreateContestPage(ctx context.Context, token string, contestID uint64, pageType model.PageType, payload stdjson.RawMessage) error {
	return c.doJSON(ctx, http.MethodPost, fmt.Sprintf("contests/%d/tasks/%s/", contestID, pageType), token, payload, nil)
}

func (c *HTTPClient) UpdateContestPage(ctx context.Context, token string, contestID uint64, pageType model.PageType, pageID uint64, payload stdjson.RawMessage) error {
	return c.doJSON(ctx, http.MethodPatch, fmt.Sprintf("contests/%d/tasks/%s/%d/", contestID, pageType, pageID), token, payload, nil)
}

func (c *HTTPClient) DeleteContestPage(ctx context.Context, token string, contestID uint64, pageType model.PageType, pageID uint64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("contests/%d/tasks/%s/%d/", contestID, pageType, pageID), token, nil, nil)
}

func (c *HTTPClient) EnterContest(ctx context.Context, token string, contestID uint64) error {
	return c.doJSON(ctx, http.MethodPost, fmt.Sprintf("contests/%d/apply/", contestID), token, nil, nil)
}

// GetCompilers 编译器注册表接口无需鉴权
func (c *HTTPClient) GetCompilers(ctx context.Context) ([]model.Compiler, error) {
	var compilers []model.Compiler
	if err := c.get(ctx, "contests/compilers/", "", &compilers); err != nil {
		return nil, err
	}
	return compilers, nil
}
