package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/to404hanga/online_judge_frontend/constants"
	"github.com/to404hanga/online_judge_frontend/model"
	"github.com/to404hanga/online_judge_frontend/pkg/gintool"
	"github.com/to404hanga/online_judge_frontend/service"
	"github.com/to404hanga/online_judge_frontend/web/jwt"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

type SolutionHandler struct {
	submissionSvc service.SubmissionService
	solutionSvc   service.SolutionService
	compilerSvc   service.CompilerService
	resolverSvc   service.ResolverService
	jwtHandler    jwt.Handler
	log           loggerv2.Logger
}

var _ Handler = (*SolutionHandler)(nil)

func NewSolutionHandler(submissionSvc service.SubmissionService, solutionSvc service.SolutionService, compilerSvc service.CompilerService, resolverSvc service.ResolverService, jwtHandler jwt.Handler, log loggerv2.Logger) *SolutionHandler {
	return &SolutionHandler{
		submissionSvc: submissionSvc,
		solutionSvc:   solutionSvc,
		compilerSvc:   compilerSvc,
		resolverSvc:   resolverSvc,
		jwtHandler:    jwtHandler,
		log:           log,
	}
}

func (h *SolutionHandler) Register(r *gin.Engine) {
	r.GET(constants.GetCompilerListPath, h.GetCompilerList)

	r.POST(constants.SetSolutionDraftPath, gintool.WrapSessionHandler(h.SetSolutionDraft, h.log))
	r.POST(constants.SelectCompilerPath, gintool.WrapSessionHandler(h.SelectCompiler, h.log))
	r.POST(constants.SubmitSolutionPath, gintool.WrapSessionHandler(h.SubmitSolution, h.log))
	r.GET(constants.GetTaskSolutionListPath, gintool.WrapSessionHandler(h.GetTaskSolutionList, h.log))
	r.GET(constants.GetSolutionPath, gintool.WrapSessionHandler(h.GetSolution, h.log))
}

// GetCompilerList 编译器清单无需登录, 登录页之前就要渲染高亮
func (h *SolutionHandler) GetCompilerList(c *gin.Context) {
	ctx := c.Request.Context()

	compilers, err := h.compilerSvc.GetCompilers(ctx)
	if err != nil {
		gintool.GinResponse(c, &gintool.Response{
			Code:    faultCode(err),
			Message: fmt.Sprintf("GetCompilerList failed: %s", err.Error()),
		})
		h.log.ErrorContext(ctx, "GetCompilerList failed", logger.Error(err))
		return
	}
	gintool.GinResponse(c, &gintool.Response{
		Code:    http.StatusOK,
		Message: "success",
		Data: model.GetCompilerListResponse{
			List:  compilers,
			Total: len(compilers),
		},
	})
}

func (h *SolutionHandler) SetSolutionDraft(c *gin.Context, param *model.SetSolutionDraftParam) {
	ctx := loggerv2.ContextWithFields(c.Request.Context(),
		logger.Uint64("task_id", param.TaskID),
		logger.String("task_type", param.TaskType))

	state := h.submissionSvc.SetDraft(ctx, h.ssid(c), model.SolutionType(param.TaskType), param.TaskID, param.Text)
	gintool.GinResponse(c, &gintool.Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    state,
	})
}

func (h *SolutionHandler) SelectCompiler(c *gin.Context, param *model.SelectCompilerParam) {
	ctx := loggerv2.ContextWithFields(c.Request.Context(),
		logger.Uint64("task_id", param.TaskID),
		logger.String("compiler", param.Compiler))

	state, err := h.submissionSvc.SelectCompiler(ctx, h.ssid(c), param.TaskID, param.Compiler)
	if err != nil {
		code := faultCode(err)
		if errors.Is(err, service.ErrUnknownCompiler) {
			code = http.StatusBadRequest
		}
		gintool.GinResponse(c, &gintool.Response{
			Code:    code,
			Message: fmt.Sprintf("SelectCompiler failed: %s", err.Error()),
		})
		h.log.ErrorContext(ctx, "SelectCompiler failed", logger.Error(err))
		return
	}
	gintool.GinResponse(c, &gintool.Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    state,
	})
}

func (h *SolutionHandler) SubmitSolution(c *gin.Context, param *model.SubmitSolutionParam) {
	ctx := loggerv2.ContextWithFields(c.Request.Context(),
		logger.Uint64("contest_id", param.ContestID),
		logger.Uint64("task_id", param.TaskID),
		logger.String("task_type", param.TaskType))

	start := time.Now()
	ssid := h.ssid(c)
	result, err := h.submissionSvc.Submit(ctx, param.Session, ssid, param)
	if err != nil {
		code := faultCode(err)
		reason := "upstream"
		switch {
		case errors.Is(err, service.ErrCompilerNotSelected):
			code = http.StatusPreconditionFailed
			reason = "compiler_not_selected"
		case errors.Is(err, service.ErrSubmissionInFlight):
			code = http.StatusConflict
			reason = "in_flight"
		}
		submitSolutionRequestsTotal.WithLabelValues(strconv.Itoa(code), reason, param.TaskType).Inc()
		submitSolutionDurationSeconds.WithLabelValues(strconv.Itoa(code), reason, param.TaskType).Observe(time.Since(start).Seconds())
		gintool.GinResponse(c, &gintool.Response{
			Code:    code,
			Message: fmt.Sprintf("SubmitSolution failed: %s", err.Error()),
		})
		h.log.ErrorContext(ctx, "SubmitSolution failed", logger.Error(err))
		return
	}
	submitSolutionRequestsTotal.WithLabelValues("200", "", param.TaskType).Inc()
	submitSolutionDurationSeconds.WithLabelValues("200", "", param.TaskType).Observe(time.Since(start).Seconds())

	// 提交成功后让视图缓存失效, 下次解析能看到新的提交记录
	h.resolverSvc.Invalidate(ssid, param.ContestID)

	gintool.GinResponse(c, &gintool.Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    result,
	})
}

func (h *SolutionHandler) GetTaskSolutionList(c *gin.Context, param *model.GetTaskSolutionListParam) {
	ctx := loggerv2.ContextWithFields(c.Request.Context(),
		logger.Uint64("task_id", param.TaskID),
		logger.String("task_type", param.TaskType))

	solutions, err := h.solutionSvc.ListForTask(ctx, param.Session, model.SolutionType(param.TaskType), param.TaskID)
	if err != nil {
		gintool.GinResponse(c, &gintool.Response{
			Code:    faultCode(err),
			Message: fmt.Sprintf("GetTaskSolutionList failed: %s", err.Error()),
		})
		h.log.ErrorContext(ctx, "GetTaskSolutionList failed", logger.Error(err))
		return
	}
	gintool.GinResponse(c, &gintool.Response{
		Code:    http.StatusOK,
		Message: "success",
		Data: model.GetTaskSolutionListResponse{
			List:  solutions,
			Total: len(solutions),
		},
	})
}

func (h *SolutionHandler) GetSolution(c *gin.Context, param *model.GetSolutionParam) {
	ctx := loggerv2.ContextWithFields(c.Request.Context(),
		logger.Uint64("solution_id", param.SolutionID),
		logger.String("solution_type", param.SolutionType))

	detail, err := h.solutionSvc.Get(ctx, param.Session, model.SolutionType(param.SolutionType), param.SolutionID)
	if err != nil {
		gintool.GinResponse(c, &gintool.Response{
			Code:    faultCode(err),
			Message: fmt.Sprintf("GetSolution failed: %s", err.Error()),
		})
		h.log.ErrorContext(ctx, "GetSolution failed", logger.Error(err))
		return
	}
	gintool.GinResponse(c, &gintool.Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    detail,
	})
}

func (h *SolutionHandler) ssid(c *gin.Context) string {
	sc, err := h.jwtHandler.GetSessionClaims(c)
	if err != nil {
		return ""
	}
	return sc.Ssid
}
