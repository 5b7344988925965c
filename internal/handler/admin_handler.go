package handler

import (
	"net/http"
	"strconv"

	"referral-platform/internal/model"
	"referral-platform/internal/service"
)

type AdminHandler struct {
	profiles *service.ProfileService
	audit    *service.AuditService
}

func NewAdminHandler(profiles *service.ProfileService, audit *service.AuditService) *AdminHandler {
	return &AdminHandler{profiles: profiles, audit: audit}
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.profiles.ListUsers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.UserListResponse{Users: users})
}

func (h *AdminHandler) ListAudit(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	entries, meta, err := h.audit.Query(r.Context(), model.AuditQuery{
		Action: q.Get("action"),
		Status: q.Get("status"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.AuditListResponse{Entries: entries, Meta: meta})
}
