package handler

import (
	"encoding/json"
	"net/http"

	"referral-platform/internal/middleware"
	"referral-platform/internal/model"
	"referral-platform/internal/service"
)

type ProfileHandler struct {
	profiles    *service.ProfileService
	withdrawals *service.WithdrawalService
	audit       *service.AuditService
}

func NewProfileHandler(profiles *service.ProfileService, withdrawals *service.WithdrawalService, audit *service.AuditService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, withdrawals: withdrawals, audit: audit}
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return
	}

	profile, err := h.profiles.Get(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return
	}

	var payload model.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	profile, err := h.profiles.Update(r.Context(), claims.UserID, payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return
	}

	dashboard, err := h.profiles.Dashboard(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dashboard)
}

func (h *ProfileHandler) ListWithdrawals(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return
	}

	withdrawals, err := h.withdrawals.List(r.Context(), claims.UserID, r.URL.Query().Get("type"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, withdrawals)
}

func (h *ProfileHandler) CreateWithdrawal(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return
	}

	var payload model.CreateWithdrawalRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	withdrawal, err := h.withdrawals.Create(r.Context(), claims.UserID, payload)
	if err != nil {
		h.audit.Record(r.Context(), model.AuditEntry{
			Action:  "withdrawal",
			ActorID: claims.UserID,
			IP:      middleware.ClientIP(r),
			Status:  "failure",
			Detail:  err.Error(),
		})
		writeError(w, err)
		return
	}

	h.audit.Record(r.Context(), model.AuditEntry{
		Action:  "withdrawal",
		ActorID: claims.UserID,
		IP:      middleware.ClientIP(r),
		Status:  "success",
	})
	writeJSON(w, http.StatusCreated, withdrawal)
}
