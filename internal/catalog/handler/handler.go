package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/martshift/dashboard-service/internal/auth"
	"github.com/martshift/dashboard-service/internal/catalog"
	"github.com/martshift/dashboard-service/internal/catalog/dto"
	catalogUC "github.com/martshift/dashboard-service/internal/catalog/usecase"
	"github.com/martshift/dashboard-service/pkg/httputil"
	"github.com/martshift/dashboard-service/pkg/i18n"
	"github.com/martshift/dashboard-service/pkg/logger"
)

type CatalogHandler struct {
	uc     catalog.UseCase
	logger logger.ZapLogger
}

func NewCatalogHandler(uc catalog.UseCase, log logger.ZapLogger) *CatalogHandler {
	return &CatalogHandler{uc: uc, logger: log}
}

func (h *CatalogHandler) Register(r chi.Router) {
	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Post("/{id}/adjust-stock", h.AdjustStock)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireRole("owner"))
			r.Post("/", h.Create)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
		})
	})
}

func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(q.Get("pageSize"))
	if pageSize < 1 || pageSize > 200 {
		pageSize = 50
	}

	filters := &dto.ProductFilters{
		Category:    q.Get("category"),
		SearchQuery: q.Get("search"),
		SortBy:      q.Get("sortBy"),
		SortOrder:   q.Get("sortOrder"),
		Page:        page,
		PageSize:    pageSize,
	}

	products, count, err := h.uc.ListProducts(r.Context(), filters)
	if err != nil {
		h.logger.Error("list products failed", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, i18n.T("error.invalid_request"))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"products": products,
		"total":    count,
	})
}

func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.uc.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.logger.Error("get product failed", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, i18n.T("error.invalid_request"))
		return
	}
	if p == nil {
		httputil.WriteError(w, http.StatusNotFound, i18n.T("error.not_found"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p)
}

func (h *CatalogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input dto.CreateProductInput
	if err := httputil.DecodeJSON(r, &input); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, i18n.T("error.invalid_request"))
		return
	}

	p, err := h.uc.CreateProduct(r.Context(), &input)
	if err != nil {
		h.logger.Error("create product failed", zap.Error(err))
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, p)
}

func (h *CatalogHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input dto.UpdateProductInput
	if err := httputil.DecodeJSON(r, &input); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, i18n.T("error.invalid_request"))
		return
	}
	input.ID = chi.URLParam(r, "id")

	p, err := h.uc.UpdateProduct(r.Context(), &input)
	if err != nil {
		h.logger.Error("update product failed", zap.Error(err))
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p)
}

func (h *CatalogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.logger.Error("delete product failed", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, i18n.T("error.invalid_request"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CatalogHandler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	var input dto.AdjustStockInput
	if err := httputil.DecodeJSON(r, &input); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, i18n.T("error.invalid_request"))
		return
	}
	input.ProductID = chi.URLParam(r, "id")
	input.UserID = auth.GetUserID(r.Context())

	p, err := h.uc.AdjustStock(r.Context(), &input)
	if err != nil {
		if errors.Is(err, catalogUC.ErrInsufficientStock) {
			httputil.WriteError(w, http.StatusConflict, err.Error())
			return
		}
		h.logger.Error("adjust stock failed", zap.Error(err))
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p)
}
