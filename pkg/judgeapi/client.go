package judgeapi

import (
	"bytes"
	"context"
	stdjson "encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	json "github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/to404hanga/online_judge_frontend/constants"
	"github.com/to404hanga/online_judge_frontend/model"
	"github.com/to404hanga/pkg404/gotools/retry"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

// Client 判题平台 REST API 客户端, 所有状态都经由它读写
type Client interface {
	// Login 登录
	Login(ctx context.Context, username, password string) (*model.LoginResult, error)
	// Register 注册
	Register(ctx context.Context, username, password string) error
	// GetProfile 获取账号信息, 同时用于令牌有效性校验
	GetProfile(ctx context.Context, token string) (*model.Profile, error)
	// UpdateProfile 更新账号设置
	UpdateProfile(ctx context.Context, token string, settings stdjson.RawMessage) error
	// DeleteProfile 注销账号
	DeleteProfile(ctx context.Context, token string) error
	// SetProfilePic 上传头像, multipart 透传
	SetProfilePic(ctx context.Context, token, filename string, pic io.Reader) error

	// GetContestList 获取比赛列表
	GetContestList(ctx context.Context, token string) ([]model.Contest, error)
	// GetContest 获取比赛详情
	GetContest(ctx context.Context, token string, contestID uint64) (*model.Contest, error)
	// CreateContest 创建比赛
	CreateContest(ctx context.Context, token string, payload any) (*model.Contest, error)
	// UpdateContest 更新比赛
	UpdateContest(ctx context.Context, token string, contestID uint64, payload any) error
	// DeleteContest 删除比赛
	DeleteContest(ctx context.Context, token string, contestID uint64) error
	// GetContestPage 获取页面详情, 按请求类型解码为对应变体
	GetContestPage(ctx context.Context, token string, contestID uint64, pageType model.PageType, pageID uint64) (*model.Page, error)
	// CreateContestPage 创建页面
	CreateContestPage(ctx context.Context, token string, contestID uint64, pageType model.PageType, payload stdjson.RawMessage) error
	// UpdateContestPage 更新页面
	UpdateContestPage(ctx context.Context, token string, contestID uint64, pageType model.PageType, pageID uint64, payload stdjson.RawMessage) error
	// DeleteContestPage 删除页面
	DeleteContestPage(ctx context.Context, token string, contestID uint64, pageType model.PageType, pageID uint64) error
	// EnterContest 报名进入比赛
	EnterContest(ctx context.Context, token string, contestID uint64) error
	// GetCompilers 获取编译器注册表
	GetCompilers(ctx context.Context) ([]model.Compiler, error)

	// SubmitQuizSolution 提交测验答案
	SubmitQuizSolution(ctx context.Context, token string, taskID uint64, text string) error
	// SubmitCodeSolution 提交代码
	SubmitCodeSolution(ctx context.Context, token string, taskID uint64, text, compiler string) error
	// GetTaskSolutions 获取某题的提交记录列表
	GetTaskSolutions(ctx context.Context, token string, taskType model.SolutionType, taskID uint64) ([]model.Solution, error)
	// GetSolution 获取提交详情
	GetSolution(ctx context.Context, token string, solutionType model.SolutionType, solutionID uint64) (*model.Solution, error)
	// GetStandings 获取排行榜快照
	GetStandings(ctx context.Context, token string, contestID uint64) (*model.Standings, error)
}

type HTTPClient struct {
	base           string
	client         *http.Client
	retryReadTimes int
	log            loggerv2.Logger
}

var _ Client = (*HTTPClient)(nil)

func NewHTTPClient(baseURL string, timeout time.Duration, retryReadTimes int, log loggerv2.Logger) *HTTPClient {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &HTTPClient{
		base:           baseURL,
		client:         &http.Client{Timeout: timeout},
		retryReadTimes: retryReadTimes,
		log:            log,
	}
}

// do 发送一次请求并把结果归一化: 2xx 解码进 out, 其余一律返回 *Fault
func (c *HTTPClient) do(ctx context.Context, method, path, token string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return fmt.Errorf("build request %s %s: %w", method, path, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	requestID := uuid.New().String()
	req.Header.Set(constants.HeaderRequestIDKey, requestID)

	resp, err := c.client.Do(req)
	if err != nil {
		return &Fault{Reason: err.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Fault{Reason: err.Error()}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var eb errorBody
		_ = json.Unmarshal(data, &eb)
		if eb.Detail == "" {
			eb.Detail = http.StatusText(resp.StatusCode)
		}
		c.log.ErrorContext(ctx, "judge api request failed",
			logger.String("method", method),
			logger.String("path", path),
			logger.String("request_id", requestID),
			logger.Int64("status", int64(resp.StatusCode)),
			logger.String("reason", eb.Detail))
		return &Fault{Status: resp.StatusCode, Reason: eb.Detail, ErrorCode: eb.Code}
	}

	if out == nil {
		return nil
	}
	if err = json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response of %s %s: %w", method, path, err)
	}
	return nil
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	contentType := ""
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body of %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
		contentType = "application/json"
	}
	return c.do(ctx, method, path, token, reader, contentType, out)
}

// get 只读请求, 瞬时失败做有限次重试; 非瞬时失败立即结束
func (c *HTTPClient) get(ctx context.Context, path, token string, out any) error {
	var last error
	attempts := 0
	_ = retry.Do(ctx, func() error {
		last = c.doJSON(ctx, http.MethodGet, path, token, nil, out)
		if last == nil {
			return nil
		}
		if f, ok := AsFault(last); ok && f.Transient() && attempts < c.retryReadTimes {
			attempts++
			return last
		}
		return nil
	})
	return last
}
