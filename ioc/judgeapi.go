package ioc

import (
	"log"
	"time"

	"github.com/spf13/viper"
	"github.com/to404hanga/online_judge_frontend/config"
	"github.com/to404hanga/online_judge_frontend/pkg/judgeapi"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

func InitJudgeAPIClient(l loggerv2.Logger) judgeapi.Client {
	var cfg config.JudgeAPIConfig
	if err := viper.UnmarshalKey(cfg.Key(), &cfg); err != nil {
		log.Panicf("unmarshal judge api config failed, err: %v", err)
	}

	return judgeapi.NewHTTPClient(cfg.BaseURL,
		time.Duration(cfg.TimeoutMs)*time.Millisecond,
		cfg.RetryReadTimes, l)
}
