package constants

const (
	LoginPath     = "/Login"     // 登录
	RegisterPath  = "/Register"  // 注册
	LogoutPath    = "/Logout"    // 登出
	CheckAuthPath = "/CheckAuth" // 应用挂载时的一次性会话校验

	GetProfilePath       = "/GetProfile"       // 获取个人信息
	UpdateProfilePath    = "/UpdateProfile"    // 更新个人信息
	DeleteProfilePath    = "/DeleteProfile"    // 注销账号
	UploadProfilePicPath = "/UploadProfilePic" // 上传头像
)

const (
	GetContestListPath = "/GetContestList" // 获取比赛列表
	GetContestViewPath = "/GetContestView" // 解析比赛页面视图
	EnterContestPath   = "/EnterContest"   // 报名进入比赛

	CreateContestPath = "/CreateContest" // 创建比赛
	UpdateContestPath = "/UpdateContest" // 更新比赛
	DeleteContestPath = "/DeleteContest" // 删除比赛

	CreateContestPagePath = "/CreateContestPage" // 创建比赛页面
	UpdateContestPagePath = "/UpdateContestPage" // 更新比赛页面
	DeleteContestPagePath = "/DeleteContestPage" // 删除比赛页面

	GetCompilerListPath = "/GetCompilerList" // 获取可用编译器列表
)

const (
	SetSolutionDraftPath    = "/SetSolutionDraft"    // 更新答案草稿
	SelectCompilerPath      = "/SelectCompiler"      // 绑定编译器
	SubmitSolutionPath      = "/SubmitSolution"      // 提交当前草稿
	GetTaskSolutionListPath = "/GetTaskSolutionList" // 获取题目提交记录
	GetSolutionPath         = "/GetSolution"         // 获取提交详情

	EnterStandingsPath  = "/EnterStandings"  // 挂载排行榜视图
	LeaveStandingsPath  = "/LeaveStandings"  // 卸载排行榜视图
	GetStandingsPath    = "/GetStandings"    // 获取排行榜快照
	ExportStandingsPath = "/ExportStandings" // 导出排行榜
)

const (
	GetPreferencePath = "/GetPreference" // 读取本地偏好
	SetPreferencePath = "/SetPreference" // 写入本地偏好
)
