package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/martshift/dashboard-service/internal/dashboard"
	"github.com/martshift/dashboard-service/pkg/httputil"
	"github.com/martshift/dashboard-service/pkg/i18n"
	"github.com/martshift/dashboard-service/pkg/logger"
)

type DashboardHandler struct {
	uc     dashboard.UseCase
	logger logger.ZapLogger
}

func NewDashboardHandler(uc dashboard.UseCase, log logger.ZapLogger) *DashboardHandler {
	return &DashboardHandler{uc: uc, logger: log}
}

func (h *DashboardHandler) Register(r chi.Router) {
	r.Get("/dashboard/summary", h.Summary)
}

// Summary returns the whole dashboard payload, or a bare error envelope.
// There is deliberately no partial response: a zero sales total from a dead
// order store would be indistinguishable from a slow morning.
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.uc.Summary(r.Context())
	if err != nil {
		h.logger.Error("dashboard summary failed", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, i18n.T("dashboard.load_failed"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, summary)
}
