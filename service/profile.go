package service

import (
	"context"
	stdjson "encoding/json"
	"fmt"
	"io"

	"github.com/to404hanga/online_judge_frontend/model"
	"github.com/to404hanga/online_judge_frontend/pkg/judgeapi"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

type ProfileService interface {
	// Get 获取账号信息
	Get(ctx context.Context, sess model.Session) (*model.Profile, error)
	// UpdateSettings 更新账号设置
	UpdateSettings(ctx context.Context, sess model.Session, settings stdjson.RawMessage) error
	// Delete 注销账号并删除本地会话
	Delete(ctx context.Context, sess model.Session, ssid string) error
	// UploadPic 上传头像
	UploadPic(ctx context.Context, sess model.Session, filename string, pic io.Reader) error
}

type ProfileServiceImpl struct {
	api      judgeapi.Client
	sessions SessionService
	log      loggerv2.Logger
}

var _ ProfileService = (*ProfileServiceImpl)(nil)

func NewProfileService(api judgeapi.Client, sessions SessionService, log loggerv2.Logger) ProfileService {
	return &ProfileServiceImpl{
		api:      api,
		sessions: sessions,
		log:      log,
	}
}

func (s *ProfileServiceImpl) Get(ctx context.Context, sess model.Session) (*model.Profile, error) {
	profile, err := s.api.GetProfile(ctx, sess.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("Get failed at judge api: %w", err)
	}
	return profile, nil
}

func (s *ProfileServiceImpl) UpdateSettings(ctx context.Context, sess model.Session, settings stdjson.RawMessage) error {
	if err := s.api.UpdateProfile(ctx, sess.AccessToken, settings); err != nil {
		return fmt.Errorf("UpdateSettings failed at judge api: %w", err)
	}
	return nil
}

func (s *ProfileServiceImpl) Delete(ctx context.Context, sess model.Session, ssid string) error {
	if err := s.api.DeleteProfile(ctx, sess.AccessToken); err != nil {
		return fmt.Errorf("Delete failed at judge api: %w", err)
	}
	if err := s.sessions.Logout(ctx, ssid); err != nil {
		return fmt.Errorf("Delete failed at remove session: %w", err)
	}
	return nil
}

func (s *ProfileServiceImpl) UploadPic(ctx context.Context, sess model.Session, filename string, pic io.Reader) error {
	if err := s.api.SetProfilePic(ctx, sess.AccessToken, filename, pic); err != nil {
		return fmt.Errorf("UploadPic failed at judge api: %w", err)
	}
	return nil
}
