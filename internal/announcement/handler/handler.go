package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/martshift/dashboard-service/internal/announcement"
	"github.com/martshift/dashboard-service/internal/auth"
	"github.com/martshift/dashboard-service/internal/model"
	"github.com/martshift/dashboard-service/pkg/httputil"
	"github.com/martshift/dashboard-service/pkg/i18n"
	"github.com/martshift/dashboard-service/pkg/logger"
)

type AnnouncementHandler struct {
	repo   announcement.Repository
	logger logger.ZapLogger
}

func NewAnnouncementHandler(repo announcement.Repository, log logger.ZapLogger) *AnnouncementHandler {
	return &AnnouncementHandler{repo: repo, logger: log}
}

func (h *AnnouncementHandler) Register(r chi.Router) {
	r.Route("/announcements", func(r chi.Router) {
		r.Get("/", h.List)

		// Only the owner manages notices; staff just read them.
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireRole("owner"))
			r.Post("/", h.Create)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
		})
	})
}

func (h *AnnouncementHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error("list announcements failed", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, i18n.T("error.invalid_request"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"announcements": items})
}

type announcementInput struct {
	Title  string `json:"title"`
	Body   string `json:"body"`
	Pinned bool   `json:"pinned"`
}

func (h *AnnouncementHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input announcementInput
	if err := httputil.DecodeJSON(r, &input); err != nil || input.Title == "" {
		httputil.WriteError(w, http.StatusBadRequest, i18n.T("error.invalid_request"))
		return
	}

	now := time.Now()
	a := &model.Announcement{
		BaseModel: model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		Title:     input.Title,
		Body:      input.Body,
		AuthorID:  auth.GetUserID(r.Context()),
		Pinned:    input.Pinned,
	}
	if err := h.repo.Create(r.Context(), a); err != nil {
		h.logger.Error("create announcement failed", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, i18n.T("error.invalid_request"))
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, a)
}

func (h *AnnouncementHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input announcementInput
	if err := httputil.DecodeJSON(r, &input); err != nil || input.Title == "" {
		httputil.WriteError(w, http.StatusBadRequest, i18n.T("error.invalid_request"))
		return
	}

	a, err := h.repo.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.logger.Error("find announcement failed", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, i18n.T("error.invalid_request"))
		return
	}
	if a == nil {
		httputil.WriteError(w, http.StatusNotFound, i18n.T("error.not_found"))
		return
	}

	a.Title = input.Title
	a.Body = input.Body
	a.Pinned = input.Pinned
	a.UpdatedAt = time.Now()

	if err := h.repo.Update(r.Context(), a); err != nil {
		h.logger.Error("update announcement failed", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, i18n.T("error.invalid_request"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, a)
}

func (h *AnnouncementHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.logger.Error("delete announcement failed", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, i18n.T("error.invalid_request"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
