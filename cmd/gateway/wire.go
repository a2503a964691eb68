//go:build wireinject

package main

import (
	"github.com/google/wire"
	gatewayioc "github.com/to404hanga/online_judge_frontend/cmd/gateway/ioc"
	commonioc "github.com/to404hanga/online_judge_frontend/ioc"
	"github.com/to404hanga/online_judge_frontend/service"
	"github.com/to404hanga/online_judge_frontend/service/exporter/factory"
	"github.com/to404hanga/online_judge_frontend/web"
)

func BuildDependency() *App {
	wire.Build(
		commonioc.InitLogger,
		commonioc.InitRedis,
		commonioc.InitJWTHandler,
		commonioc.InitJudgeAPIClient,
		commonioc.InitObjectStore,

		factory.NewExporterFactory,

		commonioc.InitSessionService,
		commonioc.InitStandingsService,
		service.NewCompilerService,
		service.NewResolverService,
		service.NewSubmissionService,
		service.NewPreferenceService,
		service.NewProfileService,
		service.NewContestService,
		service.NewSolutionService,

		web.NewAccountHandler,
		web.NewContestHandler,
		web.NewSolutionHandler,
		web.NewStandingsHandler,
		web.NewPreferenceHandler,
		web.NewHealthHandler,

		gatewayioc.InitGinServer,
		commonioc.InitCronScheduler,

		NewApp,
	)
	return &App{}
}
