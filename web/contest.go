package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/to404hanga/online_judge_frontend/constants"
	"github.com/to404hanga/online_judge_frontend/model"
	"github.com/to404hanga/online_judge_frontend/pkg/gintool"
	"github.com/to404hanga/online_judge_frontend/service"
	"github.com/to404hanga/online_judge_frontend/web/jwt"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

type ContestHandler struct {
	contestSvc  service.ContestService
	resolverSvc service.ResolverService
	jwtHandler  jwt.Handler
	log         loggerv2.Logger
}

var _ Handler = (*ContestHandler)(nil)

func NewContestHandler(contestSvc service.ContestService, resolverSvc service.ResolverService, jwtHandler jwt.Handler, log loggerv2.Logger) *ContestHandler {
	return &ContestHandler{
		contestSvc:  contestSvc,
		resolverSvc: resolverSvc,
		jwtHandler:  jwtHandler,
		log:         log,
	}
}

func (h *ContestHandler) Register(r *gin.Engine) {
	r.GET(constants.GetContestListPath, gintool.WrapSessionHandler(h.GetContestList, h.log))
	r.GET(constants.GetContestViewPath, gintool.WrapSessionHandler(h.GetContestView, h.log))
	r.POST(constants.EnterContestPath, gintool.WrapSessionHandler(h.EnterContest, h.log))

	r.POST(constants.CreateContestPath, gintool.WrapSessionHandler(h.CreateContest, h.log))
	r.PUT(constants.UpdateContestPath, gintool.WrapSessionHandler(h.UpdateContest, h.log))
	r.DELETE(constants.DeleteContestPath, gintool.WrapSessionHandler(h.DeleteContest, h.log))

	r.POST(constants.CreateContestPagePath, gintool.WrapSessionHandler(h.CreateContestPage, h.log))
	r.PUT(constants.UpdateContestPagePath, gintool.WrapSessionHandler(h.UpdateContestPage, h.log))
	r.DELETE(constants.DeleteContestPagePath, gintool.WrapSessionHandler(h.DeleteContestPage, h.log))
}

func (h *ContestHandler) GetContestList(c *gin.Context, param *model.GetContestListParam) {
	ctx := c.Request.Context()

	contests, err := h.contestSvc.List(ctx, param.Session)
	if err != nil {
		gintool.GinResponse(c, &gintool.Response{
			Code:    faultCode(err),
			Message: fmt.Sprintf("GetContestList failed: %s", err.Error()),
		})
		h.log.ErrorContext(ctx, "GetContestList failed", logger.Error(err))
		return
	}
	gintool.GinResponse(c, &gintool.Response{
		Code:    http.StatusOK,
		Message: "success",
		Data: model.GetContestListResponse{
			List:  contests,
			Total: len(contests),
		},
	})
}

func (h *ContestHandler) GetContestView(c *gin.Context, param *model.GetContestViewParam) {
	ctx := loggerv2.ContextWithFields(c.Request.Context(),
		logger.Uint64("contest_id", param.ContestID))

	ssid := h.ssid(c)
	view, err := h.resolverSvc.Resolve(ctx, param.Session, ssid, param)
	if err != nil {
		gintool.GinResponse(c, &gintool.Response{
			Code:    faultCode(err),
			Message: fmt.Sprintf("GetContestView failed: %s", err.Error()),
		})
		h.log.ErrorContext(ctx, "GetContestView failed", logger.Error(err))
		return
	}
	gintool.GinResponse(c, &gintool.Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    view,
	})
}

func (h *ContestHandler) EnterContest(c *gin.Context, param *model.EnterContestParam) {
	ctx := loggerv2.ContextWithFields(c.Request.Context(),
		logger.Uint64("contest_id", param.ContestID))

	if err := h.contestSvc.Enter(ctx, param.Session, param.ContestID); err != nil {
		gintool.GinResponse(c, &gintool.Response{
			Code:    faultCode(err),
			Message: fmt.Sprintf("EnterContest failed: %s", err.Error()),
		})
		h.log.ErrorContext(ctx, "EnterContest failed", logger.Error(err))
		return
	}
	gintool.GinResponse(c, &gintool.Response{
		Code:    http.StatusOK,
		Message: "success",
	})
}

func (h *ContestHandler) CreateContest(c *gin.Context, param *model.CreateContestParam) {
	ctx := c.Request.Context()

	contest, err := h.contestSvc.Create(ctx, param.Session, param)
	if err != nil {
		gintool.GinResponse(c, &gintool.Response{
			Code:    faultCode(err),
			Message: fmt.Sprintf("CreateContest failed: %s", err.Error()),
		})
		h.log.ErrorContext(ctx, "CreateContest failed", logger.Error(err))
		return
	}
	gintool.GinResponse(c, &gintool.Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    contest,
	})
}

func (h *ContestHandler) UpdateContest(c *gin.Context, param *model.UpdateContestParam) {
	ctx := loggerv2.ContextWithFields(c.Request.Context(),
		logger.Uint64("contest_id", param.ContestID))

	if err := h.contestSvc.Update(ctx, param.Session, h.ssid(c), param); err != nil {
		gintool.GinResponse(c, &gintool.Response{
			Code:    faultCode(err),
			Message: fmt.Sprintf("UpdateContest failed: %s", err.Error()),
		})
		h.log.ErrorContext(ctx, "UpdateContest failed", logger.Error(err))
		return
	}
	gintool.GinResponse(c, &gintool.Response{
		Code:    http.StatusOK,
		Message: "success",
	})
}

func (h *ContestHandler) DeleteContest(c *gin.Context, param *model.DeleteContestParam) {
	ctx := loggerv2.ContextWithFields(c.Request.Context(),
		logger.Uint64("contest_id", param.ContestID))

	if err := h.contestSvc.Delete(ctx, param.Session, h.ssid(c), param.ContestID); err != nil {
		gintool.GinResponse(c, &gintool.Response{
			Code:    faultCode(err),
			Message: fmt.Sprintf("DeleteContest failed: %s", err.Error()),
		})
		h.log.ErrorContext(ctx, "DeleteContest failed", logger.Error(err))
		return
	}
	gintool.GinResponse(c, &gintool.Response{
		Code:    http.StatusOK,
		Message: "success",
	})
}

func (h *ContestHandler) CreateContestPage(c *gin.Context, param *model.CreateContestPageParam) {
	ctx := loggerv2.ContextWithFields(c.Request.Context(),
		logger.Uint64("contest_id", param.ContestID),
		logger.String("page_type", param.PageType))

	if err := h.contestSvc.CreatePage(ctx, param.Session, h.ssid(c), param); err != nil {
		h.pageEditError(c, ctx, "CreateContestPage", err)
		return
	}
	gintool.GinResponse(c, &gintool.Response{
		Code:    http.StatusOK,
		Message: "success",
	})
}

func (h *ContestHandler) UpdateContestPage(c *gin.Context, param *model.UpdateContestPageParam) {
	ctx := loggerv2.ContextWithFields(c.Request.Context(),
		logger.Uint64("contest_id", param.ContestID),
		logger.String("page_type", param.PageType),
		logger.Uint64("page_id", param.PageID))

	if err := h.contestSvc.UpdatePage(ctx, param.Session, h.ssid(c), param); err != nil {
		h.pageEditError(c, ctx, "UpdateContestPage", err)
		return
	}
	gintool.GinResponse(c, &gintool.Response{
		Code:    http.StatusOK,
		Message: "success",
	})
}

func (h *ContestHandler) DeleteContestPage(c *gin.Context, param *model.DeleteContestPageParam) {
	ctx := loggerv2.ContextWithFields(c.Request.Context(),
		logger.Uint64("contest_id", param.ContestID),
		logger.String("page_type", param.PageType),
		logger.Uint64("page_id", param.PageID))

	if err := h.contestSvc.DeletePage(ctx, param.Session, h.ssid(c), param); err != nil {
		h.pageEditError(c, ctx, "DeleteContestPage", err)
		return
	}
	gintool.GinResponse(c, &gintool.Response{
		Code:    http.StatusOK,
		Message: "success",
	})
}

func (h *ContestHandler) pageEditError(c *gin.Context, ctx context.Context, op string, err error) {
	code := faultCode(err)
	if errors.Is(err, service.ErrInvalidPagePayload) {
		code = http.StatusBadRequest
	}
	gintool.GinResponse(c, &gintool.Response{
		Code:    code,
		Message: fmt.Sprintf("%s failed: %s", op, err.Error()),
	})
	h.log.ErrorContext(ctx, op+" failed", logger.Error(err))
}

func (h *ContestHandler) ssid(c *gin.Context) string {
	sc, err := h.jwtHandler.GetSessionClaims(c)
	if err != nil {
		return ""
	}
	return sc.Ssid
}
