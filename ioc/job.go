package ioc

import (
	"log"
	"time"

	"github.com/spf13/viper"
	"github.com/to404hanga/online_judge_frontend/config"
	"github.com/to404hanga/online_judge_frontend/job"
	"github.com/to404hanga/online_judge_frontend/job/reaper"
	"github.com/to404hanga/online_judge_frontend/job/refresher"
	"github.com/to404hanga/online_judge_frontend/service"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

func InitCronScheduler(l loggerv2.Logger, standingsSvc service.StandingsService, resolverSvc service.ResolverService, submissionSvc service.SubmissionService, compilerSvc service.CompilerService) *job.CronScheduler {
	scheduler := job.NewCronScheduler(l)

	var refreshCfg config.CompilerRefreshConfig
	if err := viper.UnmarshalKey(refreshCfg.Key(), &refreshCfg); err != nil {
		log.Panicf("unmarshal compiler refresh config failed, err: %v", err)
	}
	compilerRefresher := refresher.NewCompilerRefresher(compilerSvc, l)
	if err := scheduler.AddJob(&job.JobConfig{
		Name:     "compiler_refresh",
		CronExpr: refreshCfg.CronExpr,
		JobFunc:  compilerRefresher.RunRefresh,
		Enabled:  refreshCfg.Enabled,
		Timeout:  time.Duration(refreshCfg.Timeout) * time.Millisecond,
	}); err != nil {
		log.Panicf("add compiler refresh job failed, err: %v", err)
	}

	var janitorCfg config.PollerJanitorConfig
	if err := viper.UnmarshalKey(janitorCfg.Key(), &janitorCfg); err != nil {
		log.Panicf("unmarshal poller janitor config failed, err: %v", err)
	}
	var standingsCfg config.StandingsConfig
	if err := viper.UnmarshalKey(standingsCfg.Key(), &standingsCfg); err != nil {
		log.Panicf("unmarshal standings config failed, err: %v", err)
	}
	viewReaper := reaper.NewViewReaper(standingsSvc, resolverSvc, submissionSvc, l,
		time.Duration(standingsCfg.IdleTimeoutMs)*time.Millisecond)
	if err := scheduler.AddJob(&job.JobConfig{
		Name:     "view_reaper",
		CronExpr: janitorCfg.CronExpr,
		JobFunc:  viewReaper.RunCleanup,
		Enabled:  janitorCfg.Enabled,
		Timeout:  time.Duration(janitorCfg.Timeout) * time.Millisecond,
	}); err != nil {
		log.Panicf("add view reaper job failed, err: %v", err)
	}

	return scheduler
}
