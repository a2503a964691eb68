package constants

// redis key 格式, 统一前缀避免与其他服务冲突
const (
	SessionKey    = "frontend:session:%s" // 会话哈希, %s 为 ssid
	PreferenceKey = "frontend:pref:%s"    // 设备偏好哈希, %s 为设备 ID
	CompilersKey  = "frontend:compilers"  // 编译器注册表缓存
)

// 偏好键统一前缀, 与会话键隔离
const PreferencePrefix = "ls_"
