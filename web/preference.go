package web

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/to404hanga/online_judge_frontend/constants"
	"github.com/to404hanga/online_judge_frontend/model"
	"github.com/to404hanga/online_judge_frontend/pkg/gintool"
	"github.com/to404hanga/online_judge_frontend/service"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

type PreferenceHandler struct {
	prefSvc service.PreferenceService
	log     loggerv2.Logger
}

var _ Handler = (*PreferenceHandler)(nil)

func NewPreferenceHandler(prefSvc service.PreferenceService, log loggerv2.Logger) *PreferenceHandler {
	return &PreferenceHandler{
		prefSvc: prefSvc,
		log:     log,
	}
}

func (h *PreferenceHandler) Register(r *gin.Engine) {
	r.GET(constants.GetPreferencePath, gintool.WrapDeviceHandler(h.GetPreference, h.log))
	r.POST(constants.SetPreferencePath, gintool.WrapDeviceHandler(h.SetPreference, h.log))
}

func (h *PreferenceHandler) GetPreference(c *gin.Context, param *model.GetPreferenceParam) {
	ctx := loggerv2.ContextWithFields(c.Request.Context(),
		logger.String("key", param.Key))

	value, set, err := h.prefSvc.GetStr(ctx, param.DeviceID, param.Key)
	if err != nil {
		gintool.GinResponse(c, &gintool.Response{
			Code:    http.StatusInternalServerError,
			Message: fmt.Sprintf("GetPreference failed: %s", err.Error()),
		})
		h.log.ErrorContext(ctx, "GetPreference failed", logger.Error(err))
		return
	}
	gintool.GinResponse(c, &gintool.Response{
		Code:    http.StatusOK,
		Message: "success",
		Data: model.GetPreferenceResponse{
			Key:   param.Key,
			Value: value,
			Set:   set,
		},
	})
}

func (h *PreferenceHandler) SetPreference(c *gin.Context, param *model.SetPreferenceParam) {
	ctx := loggerv2.ContextWithFields(c.Request.Context(),
		logger.String("key", param.Key))

	if (param.StrValue == nil) == (param.BoolValue == nil) {
		gintool.GinResponse(c, &gintool.Response{
			Code:    http.StatusBadRequest,
			Message: "exactly one of str_value and bool_value must be set",
		})
		h.log.ErrorContext(ctx, "SetPreference invalid value")
		return
	}

	var err error
	if param.StrValue != nil {
		err = h.prefSvc.SetStr(ctx, param.DeviceID, param.Key, *param.StrValue)
	} else {
		err = h.prefSvc.SetBool(ctx, param.DeviceID, param.Key, *param.BoolValue)
	}
	if err != nil {
		gintool.GinResponse(c, &gintool.Response{
			Code:    http.StatusInternalServerError,
			Message: fmt.Sprintf("SetPreference failed: %s", err.Error()),
		})
		h.log.ErrorContext(ctx, "SetPreference failed", logger.Error(err))
		return
	}
	gintool.GinResponse(c, &gintool.Response{
		Code:    http.StatusOK,
		Message: "success",
	})
}
