package model

// The response bodies are flat on purpose: existing platform clients parse
// top-level message/token/user fields.

type MessageResponse struct {
	Message string `json:"message"`
}

type RegisterResponse struct {
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    UserProfile `json:"user"`
}

type LoginResponse struct {
	Message    string      `json:"message"`
	Token      string      `json:"token"`
	User       UserProfile `json:"user"`
	RememberMe bool        `json:"rememberMe"`
}

type VerifyResponse struct {
	Valid   bool         `json:"valid"`
	User    *UserProfile `json:"user,omitempty"`
	Message string       `json:"message,omitempty"`
}

type DashboardResponse struct {
	WalletBalance    float64 `json:"walletBalance"`
	TotalWithdrawn   float64 `json:"totalWithdrawn"`
	PendingWithdrawn float64 `json:"pendingWithdrawn"`
}

type UserListResponse struct {
	Users []UserProfile `json:"users"`
}

type AuditListResponse struct {
	Entries []AuditEntry `json:"entries"`
	Meta    Meta         `json:"meta"`
}

type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}
