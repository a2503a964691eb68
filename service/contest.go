package service

import (
	"context"
	"errors"
	"fmt"

	json "github.com/bytedance/sonic"
	"github.com/to404hanga/online_judge_frontend/model"
	"github.com/to404hanga/online_judge_frontend/pkg/judgeapi"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

// ErrInvalidPagePayload 页面编辑内容未通过本地校验, 不会发往判题平台
var ErrInvalidPagePayload = errors.New("invalid page payload")

type ContestService interface {
	// List 获取比赛列表
	List(ctx context.Context, sess model.Session) ([]model.Contest, error)
	// Create 创建比赛
	Create(ctx context.Context, sess model.Session, param *model.CreateContestParam) (*model.Contest, error)
	// Update 更新比赛, 成功后相关视图缓存失效
	Update(ctx context.Context, sess model.Session, ssid string, param *model.UpdateContestParam) error
	// Delete 删除比赛
	Delete(ctx context.Context, sess model.Session, ssid string, contestID uint64) error
	// Enter 报名进入比赛
	Enter(ctx context.Context, sess model.Session, contestID uint64) error

	// CreatePage 创建页面, 内容先做本地结构校验
	CreatePage(ctx context.Context, sess model.Session, ssid string, param *model.CreateContestPageParam) error
	// UpdatePage 更新页面, 内容先做本地结构校验, 成功后相关视图缓存失效
	UpdatePage(ctx context.Context, sess model.Session, ssid string, param *model.UpdateContestPageParam) error
	// DeletePage 删除页面
	DeletePage(ctx context.Context, sess model.Session, ssid string, param *model.DeleteContestPageParam) error
}

type ContestServiceImpl struct {
	api      judgeapi.Client
	resolver ResolverService
	log      loggerv2.Logger
}

var _ ContestService = (*ContestServiceImpl)(nil)

func NewContestService(api judgeapi.Client, resolver ResolverService, log loggerv2.Logger) ContestService {
	return &ContestServiceImpl{
		api:      api,
		resolver: resolver,
		log:      log,
	}
}

func (s *ContestServiceImpl) List(ctx context.Context, sess model.Session) ([]model.Contest, error) {
	contests, err := s.api.GetContestList(ctx, sess.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("List failed at judge api: %w", err)
	}
	return contests, nil
}

func (s *ContestServiceImpl) Create(ctx context.Context, sess model.Session, param *model.CreateContestParam) (*model.Contest, error) {
	contest, err := s.api.CreateContest(ctx, sess.AccessToken, map[string]any{
		"name":               param.Name,
		"description":        param.Description,
		"time_limit_seconds": param.TimeLimitSeconds,
	})
	if err != nil {
		return nil, fmt.Errorf("Create failed at judge api: %w", err)
	}
	return contest, nil
}

func (s *ContestServiceImpl) Update(ctx context.Context, sess model.Session, ssid string, param *model.UpdateContestParam) error {
	payload := make(map[string]any, 3)
	if param.Name != nil {
		payload["name"] = *param.Name
	}
	if param.Description != nil {
		payload["description"] = *param.Description
	}
	if param.TimeLimitSeconds != nil {
		payload["time_limit_seconds"] = *param.TimeLimitSeconds
	}
	if err := s.api.UpdateContest(ctx, sess.AccessToken, param.ContestID, payload); err != nil {
		return fmt.Errorf("Update failed at judge api: %w", err)
	}
	s.resolver.Invalidate(ssid, param.ContestID)
	return nil
}

func (s *ContestServiceImpl) Delete(ctx context.Context, sess model.Session, ssid string, contestID uint64) error {
	if err := s.api.DeleteContest(ctx, sess.AccessToken, contestID); err != nil {
		return fmt.Errorf("Delete failed at judge api: %w", err)
	}
	s.resolver.Invalidate(ssid, contestID)
	return nil
}

func (s *ContestServiceImpl) Enter(ctx context.Context, sess model.Session, contestID uint64) error {
	if err := s.api.EnterContest(ctx, sess.AccessToken, contestID); err != nil {
		return fmt.Errorf("Enter failed at judge api: %w", err)
	}
	return nil
}

func (s *ContestServiceImpl) CreatePage(ctx context.Context, sess model.Session, ssid string, param *model.CreateContestPageParam) error {
	pageType := model.PageType(param.PageType)
	if err := validatePagePayload(pageType, param.Payload); err != nil {
		return err
	}
	if err := s.api.CreateContestPage(ctx, sess.AccessToken, param.ContestID, pageType, param.Payload); err != nil {
		return fmt.Errorf("CreatePage failed at judge api: %w", err)
	}
	s.resolver.Invalidate(ssid, param.ContestID)
	return nil
}

func (s *ContestServiceImpl) UpdatePage(ctx context.Context, sess model.Session, ssid string, param *model.UpdateContestPageParam) error {
	pageType := model.PageType(param.PageType)
	if err := validatePagePayload(pageType, param.Payload); err != nil {
		return err
	}
	if err := s.api.UpdateContestPage(ctx, sess.AccessToken, param.ContestID, pageType, param.PageID, param.Payload); err != nil {
		return fmt.Errorf("UpdatePage failed at judge api: %w", err)
	}
	s.resolver.Invalidate(ssid, param.ContestID)
	return nil
}

func (s *ContestServiceImpl) DeletePage(ctx context.Context, sess model.Session, ssid string, param *model.DeleteContestPageParam) error {
	pageType := model.PageType(param.PageType)
	if err := s.api.DeleteContestPage(ctx, sess.AccessToken, param.ContestID, pageType, param.PageID); err != nil {
		return fmt.Errorf("DeletePage failed at judge api: %w", err)
	}
	s.resolver.Invalidate(ssid, param.ContestID)
	return nil
}

// validatePagePayload 按页面类型做本地结构校验, 非法内容不出网
func validatePagePayload(pageType model.PageType, payload []byte) error {
	switch pageType {
	case model.PageTypeText:
		var page model.TextPage
		if err := json.Unmarshal(payload, &page); err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidPagePayload, err.Error())
		}
	case model.PageTypeQuiz:
		var page model.QuizPage
		if err := json.Unmarshal(payload, &page); err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidPagePayload, err.Error())
		}
		if len(page.Validator) > 0 && !json.Valid(page.Validator) {
			return fmt.Errorf("%w: validator is not valid json", ErrInvalidPagePayload)
		}
	case model.PageTypeCode:
		var page model.CodePage
		if err := json.Unmarshal(payload, &page); err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidPagePayload, err.Error())
		}
	default:
		return fmt.Errorf("%w: unknown page type %q", ErrInvalidPagePayload, pageType)
	}
	return nil
}
