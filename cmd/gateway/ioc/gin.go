package ioc

import (
	"log"
	"os"
	"time"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/viper"
	"github.com/to404hanga/online_judge_frontend/config"
	"github.com/to404hanga/online_judge_frontend/pkg/gintool"
	"github.com/to404hanga/online_judge_frontend/service"
	"github.com/to404hanga/online_judge_frontend/web"
	"github.com/to404hanga/online_judge_frontend/web/jwt"
	"github.com/to404hanga/online_judge_frontend/web/middleware"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

func InitGinServer(l loggerv2.Logger, jwtHandler jwt.Handler, sessionSvc service.SessionService, accountHandler *web.AccountHandler, contestHandler *web.ContestHandler, solutionHandler *web.SolutionHandler, standingsHandler *web.StandingsHandler, preferenceHandler *web.PreferenceHandler, healthHandler *web.HealthHandler) *web.GinServer {
	var cfg config.GinConfig
	err := viper.UnmarshalKey(cfg.Key(), &cfg)
	if err != nil {
		log.Panicf("unmarshal gin config failed, err: %v", err)
	}

	// 优先使用环境变量中设置的服务端口
	if port := os.Getenv("SERVER_PORT"); port != "" {
		cfg.Addr = ":" + port
	}

	corsBuilder := middleware.NewCORSMiddlewareBuilder(
		cfg.AllowOrigins,
		cfg.AllowMethods,
		cfg.AllowHeaders,
		cfg.ExposeHeaders,
		cfg.AllowCredentials,
		time.Duration(cfg.MaxAge)*time.Second)
	sessionBuilder := middleware.NewSessionMiddlewareBuilder(jwtHandler, sessionSvc, l, cfg.ProtectedPaths)
	deviceBuilder := middleware.NewDeviceMiddlewareBuilder()

	engine := gin.Default()
	engine.Use(
		corsBuilder.Build(),
		sessionBuilder.CheckSession(),
		deviceBuilder.EnsureDeviceID(),
		gintool.ContextMiddleware(),
	)

	pprof.Register(engine)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	accountHandler.Register(engine)
	contestHandler.Register(engine)
	solutionHandler.Register(engine)
	standingsHandler.Register(engine)
	preferenceHandler.Register(engine)
	healthHandler.Register(engine)

	return &web.GinServer{
		Engine: engine,
		Addr:   cfg.Addr,
	}
}
