package web

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/to404hanga/online_judge_frontend/constants"
	"github.com/to404hanga/online_judge_frontend/model"
	"github.com/to404hanga/online_judge_frontend/pkg/gintool"
	"github.com/to404hanga/online_judge_frontend/pkg/judgeapi"
	"github.com/to404hanga/online_judge_frontend/service"
	"github.com/to404hanga/online_judge_frontend/web/jwt"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

type AccountHandler struct {
	sessionSvc service.SessionService
	profileSvc service.ProfileService
	jwtHandler jwt.Handler
	log        loggerv2.Logger
}

var _ Handler = (*AccountHandler)(nil)

func NewAccountHandler(sessionSvc service.SessionService, profileSvc service.ProfileService, jwtHandler jwt.Handler, log loggerv2.Logger) *AccountHandler {
	return &AccountHandler{
		sessionSvc: sessionSvc,
		profileSvc: profileSvc,
		jwtHandler: jwtHandler,
		log:        log,
	}
}

func (h *AccountHandler) Register(r *gin.Engine) {
	r.POST(constants.LoginPath, gintool.WrapHandler(h.Login, h.log))
	r.POST(constants.RegisterPath, gintool.WrapHandler(h.RegisterAccount, h.log))
	r.POST(constants.LogoutPath, h.Logout)
	r.GET(constants.CheckAuthPath, h.CheckAuth)

	r.GET(constants.GetProfilePath, gintool.WrapSessionHandler(h.GetProfile, h.log))
	r.PUT(constants.UpdateProfilePath, gintool.WrapSessionHandler(h.UpdateProfile, h.log))
	r.DELETE(constants.DeleteProfilePath, h.DeleteProfile)
	r.POST(constants.UploadProfilePicPath, h.UploadProfilePic)
}

func (h *AccountHandler) Login(c *gin.Context, param *model.LoginParam) {
	ctx := loggerv2.ContextWithFields(c.Request.Context(),
		logger.String("username", param.Username))

	ssid, sess, err := h.sessionSvc.Login(ctx, param.Username, param.Password)
	if err != nil {
		code := http.StatusInternalServerError
		if f, ok := judgeapi.AsFault(err); ok && f.IsUnauthorized() {
			code = http.StatusUnauthorized
		}
		gintool.GinResponse(c, &gintool.Response{
			Code:    code,
			Message: fmt.Sprintf("Login failed: %s", err.Error()),
		})
		h.log.ErrorContext(ctx, "Login failed", logger.Error(err))
		return
	}

	if err = h.jwtHandler.SetSessionToken(c, ssid); err != nil {
		gintool.GinResponse(c, &gintool.Response{
			Code:    http.StatusInternalServerError,
			Message: fmt.Sprintf("Login failed: %s", err.Error()),
		})
		h.log.ErrorContext(ctx, "Login set session token failed", logger.Error(err))
		return
	}

	gintool.GinResponse(c, &gintool.Response{
		Code:    http.StatusOK,
		Message: "success",
		Data: model.LoginResponse{
			AccountID: sess.AccountID,
			Username:  sess.AccountUsername,
		},
	})
}

func (h *AccountHandler) RegisterAccount(c *gin.Context, param *model.RegisterParam) {
	ctx := loggerv2.ContextWithFields(c.Request.Context(),
		logger.String("username", param.Username))

	if err := h.sessionSvc.Register(ctx, param.Username, param.Password); err != nil {
		gintool.GinResponse(c, &gintool.Response{
			Code:    http.StatusInternalServerError,
			Message: fmt.Sprintf("Register failed: %s", err.Error()),
		})
		h.log.ErrorContext(ctx, "Register failed", logger.Error(err))
		return
	}
	gintool.GinResponse(c, &gintool.Response{
		Code:    http.StatusOK,
		Message: "success",
	})
}

func (h *AccountHandler) Logout(c *gin.Context) {
	ctx := c.Request.Context()

	sc, err := h.jwtHandler.GetSessionClaims(c)
	if err == nil {
		if err = h.sessionSvc.Logout(ctx, sc.Ssid); err != nil {
			h.log.ErrorContext(ctx, "Logout remove session failed", logger.Error(err))
		}
	}
	h.jwtHandler.ClearSessionToken(c)

	gintool.GinResponse(c, &gintool.Response{
		Code:    http.StatusOK,
		Message: "success",
	})
}

// CheckAuth 应用挂载时的一次性会话校验.
// 401 清除会话与 cookie, 其他失败保留会话并返回 unknown
func (h *AccountHandler) CheckAuth(c *gin.Context) {
	ctx := c.Request.Context()

	var ssid string
	if sc, err := h.jwtHandler.GetSessionClaims(c); err == nil {
		ssid = sc.Ssid
	}

	status, sess, err := h.sessionSvc.EnsureAuthorized(ctx, ssid)
	if err != nil {
		h.log.ErrorContext(ctx, "CheckAuth session check degraded", logger.Error(err))
	}
	if status == model.AuthUnauthorized && ssid != "" {
		h.jwtHandler.ClearSessionToken(c)
	}

	gintool.GinResponse(c, &gintool.Response{
		Code:    http.StatusOK,
		Message: "success",
		Data: model.CheckAuthResponse{
			Status:    status.String(),
			AccountID: sess.AccountID,
			Username:  sess.AccountUsername,
		},
	})
}

func (h *AccountHandler) GetProfile(c *gin.Context, param *model.GetProfileParam) {
	ctx := c.Request.Context()

	profile, err := h.profileSvc.Get(ctx, param.Session)
	if err != nil {
		gintool.GinResponse(c, &gintool.Response{
			Code:    faultCode(err),
			Message: fmt.Sprintf("GetProfile failed: %s", err.Error()),
		})
		h.log.ErrorContext(ctx, "GetProfile failed", logger.Error(err))
		return
	}
	gintool.GinResponse(c, &gintool.Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    profile,
	})
}

func (h *AccountHandler) UpdateProfile(c *gin.Context, param *model.UpdateProfileParam) {
	ctx := c.Request.Context()

	if err := h.profileSvc.UpdateSettings(ctx, param.Session, param.Settings); err != nil {
		gintool.GinResponse(c, &gintool.Response{
			Code:    faultCode(err),
			Message: fmt.Sprintf("UpdateProfile failed: %s", err.Error()),
		})
		h.log.ErrorContext(ctx, "UpdateProfile failed", logger.Error(err))
		return
	}
	gintool.GinResponse(c, &gintool.Response{
		Code:    http.StatusOK,
		Message: "success",
	})
}

func (h *AccountHandler) DeleteProfile(c *gin.Context) {
	ctx := c.Request.Context()

	sess, err := gintool.SessionFromContext(c)
	if err != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	sc, err := h.jwtHandler.GetSessionClaims(c)
	if err != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	if err = h.profileSvc.Delete(ctx, sess, sc.Ssid); err != nil {
		gintool.GinResponse(c, &gintool.Response{
			Code:    faultCode(err),
			Message: fmt.Sprintf("DeleteProfile failed: %s", err.Error()),
		})
		h.log.ErrorContext(ctx, "DeleteProfile failed", logger.Error(err))
		return
	}
	h.jwtHandler.ClearSessionToken(c)

	gintool.GinResponse(c, &gintool.Response{
		Code:    http.StatusOK,
		Message: "success",
	})
}

func (h *AccountHandler) UploadProfilePic(c *gin.Context) {
	ctx := c.Request.Context()

	sess, err := gintool.SessionFromContext(c)
	if err != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	fileHeader, err := c.FormFile("profile_pic")
	if err != nil {
		gintool.GinResponse(c, &gintool.Response{
			Code:    http.StatusBadRequest,
			Message: "profile_pic file missing",
		})
		h.log.ErrorContext(ctx, "UploadProfilePic form file missing", logger.Error(err))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		gintool.GinResponse(c, &gintool.Response{
			Code:    http.StatusBadRequest,
			Message: fmt.Sprintf("UploadProfilePic failed: %s", err.Error()),
		})
		h.log.ErrorContext(ctx, "UploadProfilePic open file failed", logger.Error(err))
		return
	}
	defer file.Close()

	if err = h.profileSvc.UploadPic(ctx, sess, fileHeader.Filename, file); err != nil {
		gintool.GinResponse(c, &gintool.Response{
			Code:    faultCode(err),
			Message: fmt.Sprintf("UploadProfilePic failed: %s", err.Error()),
		})
		h.log.ErrorContext(ctx, "UploadProfilePic failed", logger.Error(err))
		return
	}
	gintool.GinResponse(c, &gintool.Response{
		Code:    http.StatusOK,
		Message: "success",
	})
}

// faultCode 判题平台失败透传原始状态码, 其余按 502 处理
func faultCode(err error) int {
	if f, ok := judgeapi.AsFault(err); ok && f.Status != 0 {
		return f.Status
	}
	return http.StatusBadGateway
}
