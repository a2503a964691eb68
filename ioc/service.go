package ioc

import (
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"github.com/to404hanga/online_judge_frontend/config"
	"github.com/to404hanga/online_judge_frontend/pkg/judgeapi"
	"github.com/to404hanga/online_judge_frontend/service"
	"github.com/to404hanga/online_judge_frontend/service/exporter/factory"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

func InitSessionService(api judgeapi.Client, rdb redis.Cmdable, l loggerv2.Logger) service.SessionService {
	var cfg config.JWTConfig
	if err := viper.UnmarshalKey(cfg.Key(), &cfg); err != nil {
		log.Panicf("unmarshal jwt config failed, err: %v", err)
	}

	return service.NewSessionService(api, rdb, l,
		time.Duration(cfg.SessionExpiration)*time.Second)
}

func InitStandingsService(api judgeapi.Client, exporters *factory.ExporterFactory, l loggerv2.Logger) service.StandingsService {
	var cfg config.StandingsConfig
	if err := viper.UnmarshalKey(cfg.Key(), &cfg); err != nil {
		log.Panicf("unmarshal standings config failed, err: %v", err)
	}

	return service.NewStandingsService(api, exporters, l,
		time.Duration(cfg.PollIntervalMs)*time.Millisecond)
}
