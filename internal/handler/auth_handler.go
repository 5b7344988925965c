package handler

import (
	"encoding/json"
	"net/http"

	"referral-platform/internal/middleware"
	"referral-platform/internal/model"
	"referral-platform/internal/service"
)

type AuthHandler struct {
	auth  *service.AuthService
	audit *service.AuditService
}

func NewAuthHandler(auth *service.AuthService, audit *service.AuditService) *AuthHandler {
	return &AuthHandler{auth: auth, audit: audit}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	result, err := h.auth.Register(r.Context(), payload)
	if err != nil {
		h.record(r, "register", payload.Username, "", "failure", err.Error())
		writeError(w, err)
		return
	}

	h.record(r, "register", result.User.Username, result.User.ID, "success", "")
	writeJSON(w, http.StatusCreated, model.RegisterResponse{
		Message: "User registered successfully",
		Token:   result.Token,
		User:    result.User,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	result, err := h.auth.Login(r.Context(), payload)
	if err != nil {
		h.record(r, "login", payload.UserInput, "", "failure", "")
		writeError(w, err)
		return
	}

	h.record(r, "login", result.User.Username, result.User.ID, "success", "")
	writeJSON(w, http.StatusOK, model.LoginResponse{
		Message:    "Login successful",
		Token:      result.Token,
		User:       result.User,
		RememberMe: payload.RememberMe,
	})
}

// Verify runs behind the auth gate; it confirms the token's subject still
// exists and returns the password-free projection.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, model.VerifyResponse{Valid: false, Message: "No token provided"})
		return
	}

	user, err := h.auth.VerifyUser(r.Context(), claims.UserID)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, model.VerifyResponse{Valid: false, Message: "Invalid token"})
		return
	}

	writeJSON(w, http.StatusOK, model.VerifyResponse{Valid: true, User: &user})
}

// Logout is a stateless acknowledgment; tokens are discarded client-side.
func (h *AuthHandler) Logout(w http.ResponseWriter, _ *http.Request) {
	writeMessage(w, http.StatusOK, "Logged out successfully")
}

func (h *AuthHandler) record(r *http.Request, action string, username string, actorID string, status string, detail string) {
	h.audit.Record(r.Context(), model.AuditEntry{
		Action:   action,
		ActorID:  actorID,
		Username: username,
		IP:       middleware.ClientIP(r),
		Status:   status,
		Detail:   detail,
	})
}
