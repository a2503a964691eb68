package reaper

import (
	"context"
	"time"

	"github.com/to404hanga/online_judge_frontend/service"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

// ViewReaper 回收闲置的视图状态: 无观众的排行榜轮询器,
// 长期未触碰的解析缓存与答题会话
type ViewReaper struct {
	standingsSvc  service.StandingsService
	resolverSvc   service.ResolverService
	submissionSvc service.SubmissionService
	log           loggerv2.Logger
	idleFor       time.Duration
}

func NewViewReaper(standingsSvc service.StandingsService, resolverSvc service.ResolverService, submissionSvc service.SubmissionService, log loggerv2.Logger, idleFor time.Duration) *ViewReaper {
	return &ViewReaper{
		standingsSvc:  standingsSvc,
		resolverSvc:   resolverSvc,
		submissionSvc: submissionSvc,
		log:           log,
		idleFor:       idleFor,
	}
}

// RunCleanup 运行视图状态回收任务
func (r *ViewReaper) RunCleanup(ctx context.Context) error {
	r.log.InfoContext(ctx, "Starting view reap job")

	pollers := r.standingsSvc.ReapIdle(r.idleFor)
	views := r.resolverSvc.PruneIdle(r.idleFor)
	sessions := r.submissionSvc.PruneIdle(r.idleFor)

	r.log.InfoContext(ctx, "View reap completed",
		logger.Int64("pollers", int64(pollers)),
		logger.Int64("views", int64(views)),
		logger.Int64("task_sessions", int64(sessions)),
	)
	return nil
}
