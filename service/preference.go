package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/to404hanga/online_judge_frontend/constants"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

type PreferenceService interface {
	// GetStr 读取字符串偏好, 第二个返回值表示是否已设置
	GetStr(ctx context.Context, deviceID, key string) (string, bool, error)
	SetStr(ctx context.Context, deviceID, key, value string) error
	// GetBool 读取布尔偏好, 未设置时返回 false
	GetBool(ctx context.Context, deviceID, key string) (bool, error)
	SetBool(ctx context.Context, deviceID, key string, value bool) error
}

// PreferenceServiceImpl 设备级偏好, 按设备 ID 一个哈希,
// 字段名统一带 ls_ 前缀与历史数据兼容
type PreferenceServiceImpl struct {
	rdb redis.Cmdable
	log loggerv2.Logger
}

var _ PreferenceService = (*PreferenceServiceImpl)(nil)

func NewPreferenceService(rdb redis.Cmdable, log loggerv2.Logger) PreferenceService {
	return &PreferenceServiceImpl{
		rdb: rdb,
		log: log,
	}
}

func (s *PreferenceServiceImpl) GetStr(ctx context.Context, deviceID, key string) (string, bool, error) {
	val, err := s.rdb.HGet(ctx, prefKey(deviceID), prefField(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("GetStr failed at read preference: %w", err)
	}
	return val, true, nil
}

func (s *PreferenceServiceImpl) SetStr(ctx context.Context, deviceID, key, value string) error {
	if err := s.rdb.HSet(ctx, prefKey(deviceID), prefField(key), value).Err(); err != nil {
		return fmt.Errorf("SetStr failed at write preference: %w", err)
	}
	return nil
}

func (s *PreferenceServiceImpl) GetBool(ctx context.Context, deviceID, key string) (bool, error) {
	val, set, err := s.GetStr(ctx, deviceID, key)
	if err != nil {
		return false, err
	}
	if !set {
		return false, nil
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		// 脏值按未设置处理
		return false, nil
	}
	return parsed, nil
}

func (s *PreferenceServiceImpl) SetBool(ctx context.Context, deviceID, key string, value bool) error {
	return s.SetStr(ctx, deviceID, key, strconv.FormatBool(value))
}

func prefKey(deviceID string) string {
	return fmt.Sprintf(constants.PreferenceKey, deviceID)
}

func prefField(key string) string {
	return constants.PreferencePrefix + key
}
