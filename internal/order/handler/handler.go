package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/martshift/dashboard-service/internal/model"
	"github.com/martshift/dashboard-service/internal/order"
	"github.com/martshift/dashboard-service/pkg/httputil"
	"github.com/martshift/dashboard-service/pkg/i18n"
	"github.com/martshift/dashboard-service/pkg/logger"
)

type OrderHandler struct {
	repo   order.Repository
	logger logger.ZapLogger
}

func NewOrderHandler(repo order.Repository, log logger.ZapLogger) *OrderHandler {
	return &OrderHandler{repo: repo, logger: log}
}

func (h *OrderHandler) Register(r chi.Router) {
	r.Route("/orders", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
	})
}

// List returns orders for one calendar day, defaulting to today.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	day := time.Now()
	if raw := q.Get("date"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			httputil.WriteError(w, http.StatusBadRequest, i18n.T("error.invalid_request"))
			return
		}
		day = parsed
	}
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.Local)
	to := from.AddDate(0, 0, 1)

	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(q.Get("pageSize"))
	if pageSize < 1 || pageSize > 500 {
		pageSize = 100
	}

	orders, count, err := h.repo.ListRange(r.Context(), from, to, page, pageSize)
	if err != nil {
		h.logger.Error("list orders failed", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, i18n.T("error.invalid_request"))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"orders": orders,
		"total":  count,
	})
}

type createOrderInput struct {
	TotalAmount int64  `json:"totalAmount"`
	ItemCount   int    `json:"itemCount"`
	Source      string `json:"source"`
}

// Create records a walk-in sale entered manually from the dashboard. POS
// sales normally arrive through the kafka listener instead.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input createOrderInput
	if err := httputil.DecodeJSON(r, &input); err != nil || input.TotalAmount < 0 {
		httputil.WriteError(w, http.StatusBadRequest, i18n.T("error.invalid_request"))
		return
	}

	source := input.Source
	if source == "" {
		source = "pos"
	}

	o := &model.Order{
		ID:          uuid.New().String(),
		TotalAmount: input.TotalAmount,
		ItemCount:   input.ItemCount,
		Source:      source,
		CreatedAt:   time.Now(),
	}
	if err := h.repo.Create(r.Context(), o); err != nil {
		h.logger.Error("create order failed", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, i18n.T("error.invalid_request"))
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, o)
}
