package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/to404hanga/online_judge_frontend/model"
	"github.com/to404hanga/online_judge_frontend/pkg/judgeapi"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

type ViewState string

const (
	ViewLoading         ViewState = "loading"
	ViewReady           ViewState = "ready"
	ViewContestNotFound ViewState = "contest_not_found"
	ViewNoPages         ViewState = "no_pages"
	ViewPageLoadFailed  ViewState = "page_load_failed"
)

// ResolvedView 比赛页面视图的解析结果
type ResolvedView struct {
	State    ViewState      `json:"state"`
	Contest  *model.Contest `json:"contest,omitempty"`
	Page     *model.Page    `json:"page,omitempty"`
	PageType model.PageType `json:"page_type,omitempty"`
	PageID   uint64         `json:"page_id,omitempty"`
	Reason   string         `json:"reason,omitempty"`
}

type ResolverService interface {
	// Resolve 解析比赛视图: 先取比赛, 再取页面; 未显式指定页面时
	// 落到比赛的第一个页面
	Resolve(ctx context.Context, sess model.Session, ssid string, param *model.GetContestViewParam) (ResolvedView, error)
	// Invalidate 丢弃视图缓存, 供编辑保存与提交成功后调用
	Invalidate(ssid string, contestID uint64)
	// PruneIdle 回收闲置超过 olderThan 的视图状态, 返回回收数量
	PruneIdle(olderThan time.Duration) int
}

type pageKey struct {
	pageType model.PageType
	pageID   uint64
}

// viewSession 单个浏览会话在单场比赛下的解析状态.
// seq 标记最近一次发起的解析, 迟到的旧结果按键与序号一并丢弃
type viewSession struct {
	mu      sync.Mutex
	seq     uint64
	key     pageKey
	current ResolvedView
	touched time.Time
}

func (v *viewSession) begin(key pageKey) uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.seq++
	v.key = key
	v.touched = time.Now()
	return v.seq
}

// commit 仅当 token 仍是最新请求且页面键未被后续导航替换时落地结果
func (v *viewSession) commit(token uint64, key pageKey, view ResolvedView) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.seq != token || v.key != key {
		return false
	}
	v.current = view
	return true
}

func (v *viewSession) snapshot() ResolvedView {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current
}

type ResolverServiceImpl struct {
	api   judgeapi.Client
	log   loggerv2.Logger
	mu    sync.Mutex
	views map[string]*viewSession
}

var _ ResolverService = (*ResolverServiceImpl)(nil)

func NewResolverService(api judgeapi.Client, log loggerv2.Logger) ResolverService {
	return &ResolverServiceImpl{
		api:   api,
		log:   log,
		views: make(map[string]*viewSession),
	}
}

func (s *ResolverServiceImpl) Resolve(ctx context.Context, sess model.Session, ssid string, param *model.GetContestViewParam) (ResolvedView, error) {
	vs := s.getOrCreate(ssid, param.ContestID)

	contest, err := s.api.GetContest(ctx, sess.AccessToken, param.ContestID)
	if err != nil {
		if f, ok := judgeapi.AsFault(err); ok && f.IsNotFound() {
			view := ResolvedView{State: ViewContestNotFound}
			vs.commit(vs.begin(pageKey{}), pageKey{}, view)
			return view, nil
		}
		return ResolvedView{}, fmt.Errorf("Resolve failed at fetch contest: %w", err)
	}

	key, ok := effectivePageKey(contest, param)
	if !ok {
		view := ResolvedView{State: ViewNoPages, Contest: contest}
		vs.commit(vs.begin(pageKey{}), pageKey{}, view)
		return view, nil
	}

	token := vs.begin(key)

	page, err := s.api.GetContestPage(ctx, sess.AccessToken, param.ContestID, key.pageType, key.pageID)
	if err != nil {
		s.log.ErrorContext(ctx, "Resolve fetch page failed",
			logger.Uint64("contest_id", param.ContestID),
			logger.String("page_type", string(key.pageType)),
			logger.Uint64("page_id", key.pageID),
			logger.Error(err))
		view := ResolvedView{
			State:    ViewPageLoadFailed,
			Contest:  contest,
			PageType: key.pageType,
			PageID:   key.pageID,
			Reason:   err.Error(),
		}
		if f, fOk := judgeapi.AsFault(err); fOk {
			view.Reason = f.Reason
		}
		vs.commit(token, key, view)
		return vs.snapshot(), nil
	}

	view := ResolvedView{
		State:    ViewReady,
		Contest:  contest,
		Page:     page,
		PageType: key.pageType,
		PageID:   key.pageID,
	}
	vs.commit(token, key, view)
	// 结果迟到被丢弃时返回当前最新视图, 旧页面不会覆盖新导航
	return vs.snapshot(), nil
}

func (s *ResolverServiceImpl) Invalidate(ssid string, contestID uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.views, viewKey(ssid, contestID))
}

func (s *ResolverServiceImpl) PruneIdle(olderThan time.Duration) int {
	deadline := time.Now().Add(-olderThan)
	s.mu.Lock()
	defer s.mu.Unlock()
	pruned := 0
	for k, vs := range s.views {
		vs.mu.Lock()
		idle := vs.touched.Before(deadline)
		vs.mu.Unlock()
		if idle {
			delete(s.views, k)
			pruned++
		}
	}
	return pruned
}

func (s *ResolverServiceImpl) getOrCreate(ssid string, contestID uint64) *viewSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := viewKey(ssid, contestID)
	vs, ok := s.views[k]
	if !ok {
		vs = &viewSession{touched: time.Now()}
		s.views[k] = vs
	}
	return vs
}

func viewKey(ssid string, contestID uint64) string {
	return fmt.Sprintf("%s:%d", ssid, contestID)
}

// effectivePageKey 显式指定页面时使用指定键, 否则落到第一个页面;
// 比赛没有任何页面时返回 false
func effectivePageKey(contest *model.Contest, param *model.GetContestViewParam) (pageKey, bool) {
	if param.PageType != nil && param.PageID != nil {
		return pageKey{pageType: model.PageType(*param.PageType), pageID: *param.PageID}, true
	}
	if len(contest.Pages) == 0 {
		return pageKey{}, false
	}
	first := contest.Pages[0]
	return pageKey{pageType: first.Type, pageID: first.ID}, true
}
