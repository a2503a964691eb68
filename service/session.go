package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/to404hanga/online_judge_frontend/constants"
	"github.com/to404hanga/online_judge_frontend/model"
	"github.com/to404hanga/online_judge_frontend/pkg/judgeapi"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

var ErrSessionNotFound = errors.New("session not found")

type SessionService interface {
	// Login 登录判题平台并创建本地会话, 返回 ssid
	Login(ctx context.Context, username, password string) (string, model.Session, error)
	// Register 注册
	Register(ctx context.Context, username, password string) error
	// CheckToken 校验令牌: 空令牌不发网络请求直接未授权;
	// 401 视为令牌失效; 其他任何失败不得登出, 返回 AuthorizedUnknown
	CheckToken(ctx context.Context, token string) (model.AuthStatus, *model.Profile)
	// EnsureAuthorized 按 ssid 校验会话, 校验通过时把身份与令牌一并回写
	EnsureAuthorized(ctx context.Context, ssid string) (model.AuthStatus, model.Session, error)
	// LoadSession 读取会话
	LoadSession(ctx context.Context, ssid string) (model.Session, error)
	// Logout 登出并删除会话
	Logout(ctx context.Context, ssid string) error
}

type SessionServiceImpl struct {
	api        judgeapi.Client
	rdb        redis.Cmdable
	log        loggerv2.Logger
	expiration time.Duration
}

var _ SessionService = (*SessionServiceImpl)(nil)

func NewSessionService(api judgeapi.Client, rdb redis.Cmdable, log loggerv2.Logger, expiration time.Duration) SessionService {
	return &SessionServiceImpl{
		api:        api,
		rdb:        rdb,
		log:        log,
		expiration: expiration,
	}
}

func (s *SessionServiceImpl) Login(ctx context.Context, username, password string) (string, model.Session, error) {
	result, err := s.api.Login(ctx, username, password)
	if err != nil {
		return "", model.Session{}, fmt.Errorf("Login failed at judge api: %w", err)
	}

	sess := model.Session{
		AccessToken:     result.Token,
		AccountID:       result.ID,
		AccountUsername: result.Username,
	}
	ssid := uuid.New().String()
	if err = s.saveSession(ctx, ssid, sess); err != nil {
		return "", model.Session{}, fmt.Errorf("Login failed at save session: %w", err)
	}
	return ssid, sess, nil
}

func (s *SessionServiceImpl) Register(ctx context.Context, username, password string) error {
	if err := s.api.Register(ctx, username, password); err != nil {
		return fmt.Errorf("Register failed at judge api: %w", err)
	}
	return nil
}

func (s *SessionServiceImpl) CheckToken(ctx context.Context, token string) (model.AuthStatus, *model.Profile) {
	if token == "" {
		// 无令牌直接拒绝, 不发起任何网络请求
		return model.AuthUnauthorized, nil
	}

	profile, err := s.api.GetProfile(ctx, token)
	if err == nil {
		return model.AuthAuthorized, profile
	}

	if f, ok := judgeapi.AsFault(err); ok && f.IsUnauthorized() {
		return model.AuthUnauthorized, nil
	}

	// 非 401 的失败(网络错误, 5xx)视为可恢复, 不得据此登出
	s.log.ErrorContext(ctx, "CheckToken profile check failed, session preserved", logger.Error(err))
	return model.AuthAuthorizedUnknown, nil
}

func (s *SessionServiceImpl) EnsureAuthorized(ctx context.Context, ssid string) (model.AuthStatus, model.Session, error) {
	if ssid == "" {
		return model.AuthUnauthorized, model.Session{}, nil
	}
	sess, err := s.LoadSession(ctx, ssid)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return model.AuthUnauthorized, model.Session{}, nil
		}
		return model.AuthAuthorizedUnknown, model.Session{}, err
	}

	status, profile := s.CheckToken(ctx, sess.AccessToken)
	switch status {
	case model.AuthAuthorized:
		// 身份与令牌作为一个整体回写, 其他组件不会观察到只有令牌的中间态
		sess.AccountID = profile.ID
		sess.AccountUsername = profile.Username
		if err = s.saveSession(ctx, ssid, sess); err != nil {
			s.log.ErrorContext(ctx, "EnsureAuthorized save identity failed", logger.Error(err))
		}
		return model.AuthAuthorized, sess, nil
	case model.AuthUnauthorized:
		if err = s.deleteSession(ctx, ssid); err != nil {
			s.log.ErrorContext(ctx, "EnsureAuthorized evict session failed", logger.Error(err))
		}
		return model.AuthUnauthorized, model.Session{}, nil
	default:
		return model.AuthAuthorizedUnknown, sess, nil
	}
}

func (s *SessionServiceImpl) LoadSession(ctx context.Context, ssid string) (model.Session, error) {
	key := fmt.Sprintf(constants.SessionKey, ssid)
	fields, err := s.rdb.HGetAll(ctx, key).Result()
	if err != nil {
		return model.Session{}, fmt.Errorf("LoadSession failed at read session hash: %w", err)
	}
	if len(fields) == 0 {
		return model.Session{}, ErrSessionNotFound
	}

	accountID, err := strconv.ParseUint(fields["account_id"], 10, 64)
	if err != nil {
		return model.Session{}, fmt.Errorf("LoadSession failed at parse account id: %w", err)
	}
	return model.Session{
		AccessToken:     fields["access_token"],
		AccountID:       accountID,
		AccountUsername: fields["account_username"],
	}, nil
}

func (s *SessionServiceImpl) Logout(ctx context.Context, ssid string) error {
	return s.deleteSession(ctx, ssid)
}

// saveSession 会话哈希一次 HSET 写全, 令牌与身份不可分离落库
func (s *SessionServiceImpl) saveSession(ctx context.Context, ssid string, sess model.Session) error {
	key := fmt.Sprintf(constants.SessionKey, ssid)
	pipe := s.rdb.TxPipeline()
	pipe.HSet(ctx, key,
		"access_token", sess.AccessToken,
		"account_id", strconv.FormatUint(sess.AccountID, 10),
		"account_username", sess.AccountUsername,
	)
	pipe.Expire(ctx, key, s.expiration)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("write session hash: %w", err)
	}
	return nil
}

func (s *SessionServiceImpl) deleteSession(ctx context.Context, ssid string) error {
	key := fmt.Sprintf(constants.SessionKey, ssid)
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("delete session hash: %w", err)
	}
	return nil
}
