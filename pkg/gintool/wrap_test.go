package gintool

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	json "github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/to404hanga/online_judge_frontend/constants"
	"github.com/to404hanga/online_judge_frontend/model"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
	gin.DisableBindValidation()
}

func testLogger() loggerv2.Logger {
	return loggerv2.NewZapContextLogger(zap.NewNop())
}

func doRequest(t *testing.T, engine *gin.Engine, method, path, body string) *Response {
	t.Helper()
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return &resp
}

func TestWrapHandlerBindsJSONBody(t *testing.T) {
	engine := gin.New()
	var got *model.LoginParam
	engine.POST("/login", WrapHandler(func(c *gin.Context, param *model.LoginParam) {
		got = param
		GinResponse(c, &Response{Code: http.StatusOK})
	}, testLogger()))

	resp := doRequest(t, engine, http.MethodPost, "/login", `{"username":"alice","password":"secret"}`)
	assert.Equal(t, http.StatusOK, resp.Code)
	require.NotNil(t, got)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, "secret", got.Password)
}

func TestWrapHandlerRejectsMissingRequiredField(t *testing.T) {
	engine := gin.New()
	called := false
	engine.POST("/login", WrapHandler(func(c *gin.Context, param *model.LoginParam) {
		called = true
	}, testLogger()))

	resp := doRequest(t, engine, http.MethodPost, "/login", `{"username":"alice"}`)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.False(t, called)
}

func TestWrapHandlerRejectsOneofViolation(t *testing.T) {
	engine := gin.New()
	called := false
	engine.GET("/solutions", WrapHandler(func(c *gin.Context, param *model.GetTaskSolutionListParam) {
		called = true
	}, testLogger()))

	resp := doRequest(t, engine, http.MethodGet, "/solutions?task_type=java&task_id=3", "")
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.False(t, called)
}

func TestWrapSessionHandlerRequiresSession(t *testing.T) {
	engine := gin.New()
	engine.GET("/profile", WrapSessionHandler(func(c *gin.Context, param *model.GetProfileParam) {
		GinResponse(c, &Response{Code: http.StatusOK})
	}, testLogger()))

	resp := doRequest(t, engine, http.MethodGet, "/profile", "")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestWrapSessionHandlerInjectsSession(t *testing.T) {
	engine := gin.New()
	engine.Use(func(c *gin.Context) {
		c.Set(constants.ContextSessionKey, model.Session{
			AccessToken:     "tok-1",
			AccountID:       42,
			AccountUsername: "alice",
		})
	})
	var got model.Session
	engine.GET("/profile", WrapSessionHandler(func(c *gin.Context, param *model.GetProfileParam) {
		got = param.Session
		GinResponse(c, &Response{Code: http.StatusOK})
	}, testLogger()))

	resp := doRequest(t, engine, http.MethodGet, "/profile", "")
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "tok-1", got.AccessToken)
	assert.Equal(t, uint64(42), got.AccountID)
}

func TestWrapDeviceHandlerInjectsDeviceID(t *testing.T) {
	engine := gin.New()
	engine.Use(func(c *gin.Context) {
		c.Set(constants.ContextDeviceKey, "dev-1")
	})
	var got string
	engine.GET("/preference", WrapDeviceHandler(func(c *gin.Context, param *model.GetPreferenceParam) {
		got = param.DeviceID
		GinResponse(c, &Response{Code: http.StatusOK})
	}, testLogger()))

	resp := doRequest(t, engine, http.MethodGet, "/preference?key=theme", "")
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "dev-1", got)
}
