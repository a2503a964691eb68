package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/to404hanga/online_judge_frontend/model"
	"github.com/to404hanga/online_judge_frontend/pkg/judgeapi"
	"github.com/to404hanga/online_judge_frontend/service/exporter/factory"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

// StandingsSnapshot 榜单快照, 比赛结构与成绩表同时拉取,
// 以最后写入为准
type StandingsSnapshot struct {
	Contest   *model.Contest   `json:"contest"`
	Standings *model.Standings `json:"standings"`
	FetchedAt time.Time        `json:"fetched_at"`
}

type StandingsService interface {
	// EnterView 注册一个榜单观众, 首个观众会同步拉一次快照并启动轮询
	EnterView(ctx context.Context, sess model.Session, contestID uint64) error
	// LeaveView 注销观众, 最后一个观众离开后轮询确定性停止
	LeaveView(contestID uint64)
	// Snapshot 读取最近一次成功拉取的快照
	Snapshot(contestID uint64) (StandingsSnapshot, bool)
	// Export 导出榜单, format 为 csv 或 xlsx
	Export(ctx context.Context, sess model.Session, contestID uint64, format factory.ExporterType, w io.Writer) error
	// ReapIdle 停止超过 idleFor 无人读取快照的轮询, 返回停止数量.
	// 兜底观众关闭页面但没有调用 LeaveView 的情况
	ReapIdle(idleFor time.Duration) int
	// StopAll 停止全部轮询, 供进程退出时调用
	StopAll()
}

// contestPoller 单场比赛的轮询器. 每个 tick 在独立 goroutine 中拉取,
// 慢响应不会阻塞后续 tick, 快照以最后写入为准
type contestPoller struct {
	cancel context.CancelFunc

	mu          sync.Mutex
	viewers     int
	snapshot    StandingsSnapshot
	hasSnapshot bool
	touched     time.Time
}

func (p *contestPoller) setSnapshot(snap StandingsSnapshot) {
	p.mu.Lock()
	p.snapshot = snap
	p.hasSnapshot = true
	p.mu.Unlock()
}

func (p *contestPoller) getSnapshot() (StandingsSnapshot, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.touched = time.Now()
	return p.snapshot, p.hasSnapshot
}

var ErrUnknownExporter = errors.New("unknown exporter type")

type StandingsServiceImpl struct {
	api       judgeapi.Client
	exporters *factory.ExporterFactory
	log       loggerv2.Logger
	interval  time.Duration

	mu      sync.Mutex
	pollers map[uint64]*contestPoller
}

var _ StandingsService = (*StandingsServiceImpl)(nil)

func NewStandingsService(api judgeapi.Client, exporters *factory.ExporterFactory, log loggerv2.Logger, interval time.Duration) StandingsService {
	return &StandingsServiceImpl{
		api:       api,
		exporters: exporters,
		log:       log,
		interval:  interval,
		pollers:   make(map[uint64]*contestPoller),
	}
}

func (s *StandingsServiceImpl) EnterView(ctx context.Context, sess model.Session, contestID uint64) error {
	s.mu.Lock()
	p, ok := s.pollers[contestID]
	if ok {
		p.mu.Lock()
		p.viewers++
		p.touched = time.Now()
		p.mu.Unlock()
		s.mu.Unlock()
		return nil
	}

	pollCtx, cancel := context.WithCancel(context.Background())
	p = &contestPoller{cancel: cancel, viewers: 1, touched: time.Now()}
	s.pollers[contestID] = p
	s.mu.Unlock()

	// 首个观众同步拉一次, 进入页面即有数据
	if err := s.fetch(ctx, p, sess.AccessToken, contestID); err != nil {
		s.log.ErrorContext(ctx, "EnterView initial standings fetch failed",
			logger.Uint64("contest_id", contestID), logger.Error(err))
	}

	go s.pollLoop(pollCtx, p, sess.AccessToken, contestID)
	return nil
}

func (s *StandingsServiceImpl) LeaveView(contestID uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pollers[contestID]
	if !ok {
		return
	}
	p.mu.Lock()
	if p.viewers > 0 {
		p.viewers--
	}
	last := p.viewers == 0
	p.mu.Unlock()

	if last {
		p.cancel()
		delete(s.pollers, contestID)
	}
}

func (s *StandingsServiceImpl) Snapshot(contestID uint64) (StandingsSnapshot, bool) {
	s.mu.Lock()
	p, ok := s.pollers[contestID]
	s.mu.Unlock()
	if !ok {
		return StandingsSnapshot{}, false
	}
	return p.getSnapshot()
}

func (s *StandingsServiceImpl) Export(ctx context.Context, sess model.Session, contestID uint64, format factory.ExporterType, w io.Writer) error {
	exp := s.exporters.GetExporter(format)
	if exp == nil {
		return ErrUnknownExporter
	}

	snap, ok := s.Snapshot(contestID)
	if !ok {
		// 未在轮询时单独拉一次, 导出不依赖观众在场
		contest, err := s.api.GetContest(ctx, sess.AccessToken, contestID)
		if err != nil {
			return fmt.Errorf("Export failed at fetch contest: %w", err)
		}
		standings, err := s.api.GetStandings(ctx, sess.AccessToken, contestID)
		if err != nil {
			return fmt.Errorf("Export failed at fetch standings: %w", err)
		}
		snap = StandingsSnapshot{Contest: contest, Standings: standings, FetchedAt: time.Now()}
	}

	if err := exp.Export(ctx, snap.Contest, snap.Standings, w); err != nil {
		return fmt.Errorf("Export failed at write: %w", err)
	}
	return nil
}

func (s *StandingsServiceImpl) ReapIdle(idleFor time.Duration) int {
	deadline := time.Now().Add(-idleFor)
	s.mu.Lock()
	defer s.mu.Unlock()
	reaped := 0
	for id, p := range s.pollers {
		p.mu.Lock()
		idle := p.touched.Before(deadline)
		p.mu.Unlock()
		if idle {
			p.cancel()
			delete(s.pollers, id)
			reaped++
		}
	}
	return reaped
}

func (s *StandingsServiceImpl) StopAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, p := range s.pollers {
		p.cancel()
		delete(s.pollers, id)
	}
}

// pollLoop 固定间隔轮询, 第一次拉取发生在一个完整间隔之后
func (s *StandingsServiceImpl) pollLoop(ctx context.Context, p *contestPoller, token string, contestID uint64) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			go func() {
				if err := s.fetch(ctx, p, token, contestID); err != nil {
					s.log.ErrorContext(ctx, "standings poll tick failed",
						logger.Uint64("contest_id", contestID), logger.Error(err))
				}
			}()
		}
	}
}

// fetch 拉取比赛与榜单并写入快照. 失败的 tick 不影响后续 tick
func (s *StandingsServiceImpl) fetch(ctx context.Context, p *contestPoller, token string, contestID uint64) error {
	contest, err := s.api.GetContest(ctx, token, contestID)
	if err != nil {
		return fmt.Errorf("fetch contest: %w", err)
	}
	standings, err := s.api.GetStandings(ctx, token, contestID)
	if err != nil {
		return fmt.Errorf("fetch standings: %w", err)
	}
	p.setSnapshot(StandingsSnapshot{
		Contest:   contest,
		Standings: standings,
		FetchedAt: time.Now(),
	})
	return nil
}
