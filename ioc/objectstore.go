package ioc

import (
	"log"

	"github.com/spf13/viper"
	"github.com/to404hanga/online_judge_frontend/config"
	"github.com/to404hanga/online_judge_frontend/pkg/objectstore"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

func InitObjectStore(l loggerv2.Logger) *objectstore.Service {
	var cfg config.ObjectStoreConfig
	if err := viper.UnmarshalKey(cfg.Key(), &cfg); err != nil {
		log.Panicf("unmarshal object store config failed, err: %v", err)
	}

	return objectstore.NewService(l, cfg.Endpoint, cfg.UseSSL, cfg.SubmissionBucket)
}
