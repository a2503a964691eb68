package service

import (
	"context"
	"errors"
	"fmt"

	json "github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
	"github.com/to404hanga/online_judge_frontend/constants"
	"github.com/to404hanga/online_judge_frontend/model"
	"github.com/to404hanga/online_judge_frontend/pkg/judgeapi"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

var ErrUnknownCompiler = errors.New("unknown compiler")

type CompilerService interface {
	// GetCompilers 返回编译器清单, 优先读缓存, 缺失时回源并回填
	GetCompilers(ctx context.Context) ([]model.Compiler, error)
	// Lookup 按编译器 ID 查询, 未知 ID 返回 ErrUnknownCompiler
	Lookup(ctx context.Context, id string) (model.Compiler, error)
	// Refresh 强制回源刷新缓存, 供定时任务调用
	Refresh(ctx context.Context) error
}

type CompilerServiceImpl struct {
	api judgeapi.Client
	rdb redis.Cmdable
	log loggerv2.Logger
}

var _ CompilerService = (*CompilerServiceImpl)(nil)

func NewCompilerService(api judgeapi.Client, rdb redis.Cmdable, log loggerv2.Logger) CompilerService {
	return &CompilerServiceImpl{
		api: api,
		rdb: rdb,
		log: log,
	}
}

func (s *CompilerServiceImpl) GetCompilers(ctx context.Context) ([]model.Compiler, error) {
	cached, err := s.rdb.Get(ctx, constants.CompilersKey).Result()
	if err == nil {
		var compilers []model.Compiler
		if err = json.Unmarshal([]byte(cached), &compilers); err == nil {
			return compilers, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("GetCompilers failed at read cache: %w", err)
	}

	return s.refresh(ctx)
}

func (s *CompilerServiceImpl) Lookup(ctx context.Context, id string) (model.Compiler, error) {
	compilers, err := s.GetCompilers(ctx)
	if err != nil {
		return model.Compiler{}, err
	}
	for _, c := range compilers {
		if c.ID == id {
			return c, nil
		}
	}
	return model.Compiler{}, ErrUnknownCompiler
}

func (s *CompilerServiceImpl) Refresh(ctx context.Context) error {
	_, err := s.refresh(ctx)
	return err
}

func (s *CompilerServiceImpl) refresh(ctx context.Context) ([]model.Compiler, error) {
	compilers, err := s.api.GetCompilers(ctx)
	if err != nil {
		return nil, fmt.Errorf("refresh compilers failed at judge api: %w", err)
	}

	data, err := json.Marshal(compilers)
	if err != nil {
		return nil, fmt.Errorf("refresh compilers failed at marshal: %w", err)
	}
	if err = s.rdb.Set(ctx, constants.CompilersKey, data, 0).Err(); err != nil {
		return nil, fmt.Errorf("refresh compilers failed at write cache: %w", err)
	}
	return compilers, nil
}
