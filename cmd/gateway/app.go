package main

import (
	"github.com/to404hanga/online_judge_frontend/job"
	"github.com/to404hanga/online_judge_frontend/web"
)

type App struct {
	server    *web.GinServer
	scheduler *job.CronScheduler
}

func NewApp(server *web.GinServer, scheduler *job.CronScheduler) *App {
	return &App{
		server:    server,
		scheduler: scheduler,
	}
}

func (a *App) Start() error {
	if err := a.scheduler.Start(); err != nil {
		return err
	}
	defer a.scheduler.Stop()
	return a.server.Start()
}
