package refresher

import (
	"context"

	"github.com/to404hanga/online_judge_frontend/service"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

// CompilerRefresher 定期回源刷新编译器清单缓存
type CompilerRefresher struct {
	compilerSvc service.CompilerService
	log         loggerv2.Logger
}

func NewCompilerRefresher(compilerSvc service.CompilerService, log loggerv2.Logger) *CompilerRefresher {
	return &CompilerRefresher{
		compilerSvc: compilerSvc,
		log:         log,
	}
}

// RunRefresh 运行编译器清单刷新任务
func (r *CompilerRefresher) RunRefresh(ctx context.Context) error {
	r.log.InfoContext(ctx, "Starting compiler refresh job")

	if err := r.compilerSvc.Refresh(ctx); err != nil {
		return err
	}

	r.log.InfoContext(ctx, "Compiler refresh completed")
	return nil
}
