package model

type LoginResponse struct {
	AccountID uint64 `json:"account_id"`
	Username  string `json:"username"`
}

type CheckAuthResponse struct {
	Status    string `json:"status"`
	AccountID uint64 `json:"account_id,omitempty"`
	Username  string `json:"username,omitempty"`
}

type GetContestListResponse struct {
	List  []Contest `json:"list"`
	Total int       `json:"total"`
}

type GetCompilerListResponse struct {
	List  []Compiler `json:"list"`
	Total int        `json:"total"`
}

type GetTaskSolutionListResponse struct {
	List  []Solution `json:"list"`
	Total int        `json:"total"`
}

type GetPreferenceResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	Set   bool   `json:"set"`
}
