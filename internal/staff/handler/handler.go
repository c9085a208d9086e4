package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/martshift/dashboard-service/internal/model"
	"github.com/martshift/dashboard-service/internal/staff"
	"github.com/martshift/dashboard-service/pkg/httputil"
	"github.com/martshift/dashboard-service/pkg/i18n"
	"github.com/martshift/dashboard-service/pkg/logger"
)

type StaffHandler struct {
	repo   staff.Repository
	logger logger.ZapLogger
}

func NewStaffHandler(repo staff.Repository, log logger.ZapLogger) *StaffHandler {
	return &StaffHandler{repo: repo, logger: log}
}

func (h *StaffHandler) Register(r chi.Router) {
	r.Get("/staff", h.List)
}

func (h *StaffHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		users []model.User
		err   error
	)
	if role := r.URL.Query().Get("role"); role != "" {
		users, err = h.repo.ListByRole(r.Context(), role)
	} else {
		users, err = h.repo.FindAll(r.Context())
	}
	if err != nil {
		h.logger.Error("list staff failed", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, i18n.T("error.invalid_request"))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{"staff": users})
}
