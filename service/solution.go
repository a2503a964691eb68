package service

import (
	"context"
	"fmt"

	"github.com/to404hanga/online_judge_frontend/model"
	"github.com/to404hanga/online_judge_frontend/pkg/judgeapi"
	"github.com/to404hanga/online_judge_frontend/pkg/objectstore"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

// sourceURLTTLSeconds 源码预签名下载链接的有效期
const sourceURLTTLSeconds = 600

// SolutionDetail 提交详情. 代码提交的源码文本存放在伴生对象存储,
// 详情页按需拉取, 同时附带限时下载链接
type SolutionDetail struct {
	Solution   *model.Solution `json:"solution"`
	SourceText string          `json:"source_text,omitempty"`
	SourceURL  string          `json:"source_url,omitempty"`
}

// submissionStore 提交文本读取接口, 由对象存储客户端实现
type submissionStore interface {
	FetchSubmissionText(ctx context.Context, submission string) (string, error)
	GetPresignedDownloadURL(ctx context.Context, submission string, durationSeconds int) (string, error)
}

type SolutionService interface {
	// ListForTask 获取某题的提交记录列表
	ListForTask(ctx context.Context, sess model.Session, taskType model.SolutionType, taskID uint64) ([]model.Solution, error)
	// Get 获取提交详情, 代码提交附带源码文本
	Get(ctx context.Context, sess model.Session, solutionType model.SolutionType, solutionID uint64) (*SolutionDetail, error)
}

type SolutionServiceImpl struct {
	api   judgeapi.Client
	store submissionStore
	log   loggerv2.Logger
}

var _ SolutionService = (*SolutionServiceImpl)(nil)

func NewSolutionService(api judgeapi.Client, store *objectstore.Service, log loggerv2.Logger) SolutionService {
	impl := &SolutionServiceImpl{
		api: api,
		log: log,
	}
	// 客户端初始化失败时返回 nil 指针, 不能直接塞进接口字段
	if store != nil {
		impl.store = store
	}
	return impl
}

func (s *SolutionServiceImpl) ListForTask(ctx context.Context, sess model.Session, taskType model.SolutionType, taskID uint64) ([]model.Solution, error) {
	solutions, err := s.api.GetTaskSolutions(ctx, sess.AccessToken, taskType, taskID)
	if err != nil {
		return nil, fmt.Errorf("ListForTask failed at judge api: %w", err)
	}
	return solutions, nil
}

func (s *SolutionServiceImpl) Get(ctx context.Context, sess model.Session, solutionType model.SolutionType, solutionID uint64) (*SolutionDetail, error) {
	solution, err := s.api.GetSolution(ctx, sess.AccessToken, solutionType, solutionID)
	if err != nil {
		return nil, fmt.Errorf("Get failed at judge api: %w", err)
	}

	detail := &SolutionDetail{Solution: solution}
	if solution.Code != nil && solution.Code.Submission != "" && s.store != nil {
		text, err := s.store.FetchSubmissionText(ctx, solution.Code.Submission)
		if err != nil {
			// 源码拉取失败不影响详情展示
			s.log.ErrorContext(ctx, "Get fetch submission text failed",
				logger.Uint64("solution_id", solutionID), logger.Error(err))
		} else {
			detail.SourceText = text
		}

		url, err := s.store.GetPresignedDownloadURL(ctx, solution.Code.Submission, sourceURLTTLSeconds)
		if err != nil {
			s.log.ErrorContext(ctx, "Get presign submission url failed",
				logger.Uint64("solution_id", solutionID), logger.Error(err))
		} else {
			detail.SourceURL = url
		}
	}
	return detail, nil
}
