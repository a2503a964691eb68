package constants

const (
	HeaderRequestIDKey    = "X-Request-ID"
	HeaderSessionTokenKey = "X-Frontend-Session-Token"
	HeaderDeviceIDKey     = "X-Device-ID"
)

const GatewayServiceName = "OnlineJudge-Frontend"

const (
	CookieSessionKey = "oj_frontend_session"
	CookieDeviceKey  = "oj_frontend_device"
)

const (
	ContextSessionKey = "X-Frontend-Session"
	ContextSsidKey    = "X-Frontend-Ssid"
	ContextDeviceKey  = "X-Frontend-Device"
)
