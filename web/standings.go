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
	"github.com/to404hanga/online_judge_frontend/service/exporter/factory"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

type StandingsHandler struct {
	standingsSvc service.StandingsService
	log          loggerv2.Logger
}

var _ Handler = (*StandingsHandler)(nil)

func NewStandingsHandler(standingsSvc service.StandingsService, log loggerv2.Logger) *StandingsHandler {
	return &StandingsHandler{
		standingsSvc: standingsSvc,
		log:          log,
	}
}

func (h *StandingsHandler) Register(r *gin.Engine) {
	r.POST(constants.EnterStandingsPath, gintool.WrapSessionHandler(h.EnterStandings, h.log))
	r.POST(constants.LeaveStandingsPath, gintool.WrapSessionHandler(h.LeaveStandings, h.log))
	r.GET(constants.GetStandingsPath, gintool.WrapSessionHandler(h.GetStandings, h.log))
	r.GET(constants.ExportStandingsPath, gintool.WrapSessionHandler(h.ExportStandings, h.log))
}

func (h *StandingsHandler) EnterStandings(c *gin.Context, param *model.StandingsViewParam) {
	ctx := loggerv2.ContextWithFields(c.Request.Context(),
		logger.Uint64("contest_id", param.ContestID))

	if err := h.standingsSvc.EnterView(ctx, param.Session, param.ContestID); err != nil {
		gintool.GinResponse(c, &gintool.Response{
			Code:    faultCode(err),
			Message: fmt.Sprintf("EnterStandings failed: %s", err.Error()),
		})
		h.log.ErrorContext(ctx, "EnterStandings failed", logger.Error(err))
		return
	}
	gintool.GinResponse(c, &gintool.Response{
		Code:    http.StatusOK,
		Message: "success",
	})
}

func (h *StandingsHandler) LeaveStandings(c *gin.Context, param *model.StandingsViewParam) {
	h.standingsSvc.LeaveView(param.ContestID)
	gintool.GinResponse(c, &gintool.Response{
		Code:    http.StatusOK,
		Message: "success",
	})
}

func (h *StandingsHandler) GetStandings(c *gin.Context, param *model.StandingsViewParam) {
	ctx := loggerv2.ContextWithFields(c.Request.Context(),
		logger.Uint64("contest_id", param.ContestID))

	snap, ok := h.standingsSvc.Snapshot(param.ContestID)
	if !ok {
		gintool.GinResponse(c, &gintool.Response{
			Code:    http.StatusNotFound,
			Message: "no standings snapshot, enter the standings view first",
		})
		h.log.ErrorContext(ctx, "GetStandings no snapshot")
		return
	}
	gintool.GinResponse(c, &gintool.Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    snap,
	})
}

func (h *StandingsHandler) ExportStandings(c *gin.Context, param *model.ExportStandingsParam) {
	ctx := loggerv2.ContextWithFields(c.Request.Context(),
		logger.Uint64("contest_id", param.ContestID),
		logger.String("format", param.Format))

	exporterType := factory.ParseExporterType(param.Format)
	if exporterType == factory.UnknownExporter {
		gintool.GinResponse(c, &gintool.Response{
			Code:    http.StatusBadRequest,
			Message: fmt.Sprintf("Unknown exporter type: %s", param.Format),
		})
		h.log.ErrorContext(ctx, "ExportStandings unknown exporter type")
		return
	}

	start := time.Now()
	filename := fmt.Sprintf("standings-%d%s", param.ContestID, factory.ExporterSuffixMap[exporterType])
	c.Header("Content-Type", factory.ExporterContentTypeMap[exporterType])
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)

	err := h.standingsSvc.Export(ctx, param.Session, param.ContestID, exporterType, c.Writer)
	code := http.StatusOK
	if err != nil {
		code = faultCode(err)
		if errors.Is(err, service.ErrUnknownExporter) {
			code = http.StatusBadRequest
		}
		h.log.ErrorContext(ctx, "ExportStandings failed", logger.Error(err))
		c.Status(code)
	}
	exportStandingsRequestsTotal.WithLabelValues(strconv.Itoa(code), param.Format).Inc()
	exportStandingsDurationSeconds.WithLabelValues(strconv.Itoa(code), param.Format).Observe(time.Since(start).Seconds())
}
