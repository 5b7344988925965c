package model

type RegisterRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type LoginRequest struct {
	UserInput  string `json:"userInput"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}

type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type CreateWithdrawalRequest struct {
	Amount float64 `json:"amount"`
	Method string  `json:"method"`
}
