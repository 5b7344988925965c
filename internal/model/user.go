package model

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	PasswordHash  string    `json:"-"`
	WalletBalance float64   `json:"walletBalance"`
	Role          string    `json:"role"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Profile is the client-facing projection of a user. The password hash
// never leaves the server.
func (u User) Profile() UserProfile {
	return UserProfile{
		ID:            u.ID,
		Name:          u.Name,
		Username:      u.Username,
		Email:         u.Email,
		Phone:         u.Phone,
		WalletBalance: u.WalletBalance,
		Role:          u.Role,
	}
}

type UserProfile struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Username      string  `json:"username"`
	Email         string  `json:"email"`
	Phone         string  `json:"phone"`
	WalletBalance float64 `json:"walletBalance"`
	Role          string  `json:"role"`
}

// AuthClaims is the decoded identity carried by a bearer token.
type AuthClaims struct {
	UserID    string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type Withdrawal struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Amount      float64   `json:"amount"`
	Method      string    `json:"method"`
	Status      string    `json:"status"`
	RequestedAt time.Time `json:"requestedAt"`
}

type AuditEntry struct {
	Action     string    `json:"action"`
	ActorID    string    `json:"actorId,omitempty"`
	Username   string    `json:"username,omitempty"`
	IP         string    `json:"ip,omitempty"`
	Status     string    `json:"status"`
	Detail     string    `json:"detail,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

type AuditQuery struct {
	Action string
	Status string
	Page   int
	Limit  int
}
