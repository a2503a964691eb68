package config

type GinConfig struct {
	Addr             string   `yaml:"addr" mapstructure:"addr"`
	AllowOrigins     []string `yaml:"allowOrigins" mapstructure:"allowOrigins"`
	AllowMethods     []string `yaml:"allowMethods" mapstructure:"allowMethods"`
	AllowHeaders     []string `yaml:"allowHeaders" mapstructure:"allowHeaders"`
	ExposeHeaders    []string `yaml:"exposeHeaders" mapstructure:"exposeHeaders"`
	AllowCredentials bool     `yaml:"allowCredentials" mapstructure:"allowCredentials"`
	MaxAge           int      `yaml:"maxAge" mapstructure:"maxAge"` // 单位: 秒
	ProtectedPaths   []string `yaml:"protectedPaths" mapstructure:"protectedPaths"`
}

func (GinConfig) Key() string {
	return "gin"
}

type JudgeAPIConfig struct {
	BaseURL        string `yaml:"baseURL" mapstructure:"baseURL"`               // 评测平台 API 根路径, 形如 http://host/api/v1/
	TimeoutMs      int    `yaml:"timeoutMs" mapstructure:"timeoutMs"`           // 单次请求超时, 单位: 毫秒
	RetryReadTimes int    `yaml:"retryReadTimes" mapstructure:"retryReadTimes"` // 只读请求瞬时失败重试次数
}

func (JudgeAPIConfig) Key() string {
	return "judgeAPI"
}

type RedisConfig struct {
	Addr     string `yaml:"addr" mapstructure:"addr"`
	Password string `yaml:"password" mapstructure:"password"`
	DB       int    `yaml:"db" mapstructure:"db"`
}

func (RedisConfig) Key() string {
	return "redis"
}

type JWTConfig struct {
	JWTKey            string `yaml:"jwtKey" mapstructure:"jwtKey"`
	JWTExpiration     int    `yaml:"jwtExpiration" mapstructure:"jwtExpiration"`         // 单位: 秒
	SessionExpiration int    `yaml:"sessionExpiration" mapstructure:"sessionExpiration"` // redis 会话过期时间, 单位: 秒
}

func (JWTConfig) Key() string {
	return "jwt"
}

type ObjectStoreConfig struct {
	Endpoint         string `yaml:"endpoint" mapstructure:"endpoint"`
	UseSSL           bool   `yaml:"useSSL" mapstructure:"useSSL"`
	SubmissionBucket string `yaml:"submissionBucket" mapstructure:"submissionBucket"`
}

func (ObjectStoreConfig) Key() string {
	return "objectStore"
}

type StandingsConfig struct {
	PollIntervalMs int `yaml:"pollIntervalMs" mapstructure:"pollIntervalMs"` // 排行榜刷新间隔, 单位: 毫秒
	IdleTimeoutMs  int `yaml:"idleTimeoutMs" mapstructure:"idleTimeoutMs"`   // 无观众轮询器回收阈值, 单位: 毫秒
}

func (StandingsConfig) Key() string {
	return "standings"
}

type BaseCronJobConfig struct {
	CronExpr string `yaml:"cronExpr" mapstructure:"cronExpr"`
	Enabled  bool   `yaml:"enabled" mapstructure:"enabled"`
	Timeout  int    `yaml:"timeout" mapstructure:"timeout"` // 单位: 毫秒
}

type CompilerRefreshConfig struct {
	BaseCronJobConfig `yaml:",inline" mapstructure:",squash"`
}

func (CompilerRefreshConfig) Key() string {
	return "compilerRefresh"
}

type PollerJanitorConfig struct {
	BaseCronJobConfig `yaml:",inline" mapstructure:",squash"`
}

func (PollerJanitorConfig) Key() string {
	return "pollerJanitor"
}
