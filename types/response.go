package types

type DataResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type AskResponse struct {
	Response string `json:"response"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

type DashboardEntry struct {
	Username  string `json:"username"`
	Prompt    string `json:"prompt"`
	Response  string `json:"response"`
	CreatedAt int64  `json:"created_at"`
}

type DashboardResponse struct {
	Logs []DashboardEntry `json:"logs"`
}
