package handler

import (
	"net/http"

	"cafe-site/internal/model"
	"cafe-site/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// MenuHandler handles menu-related HTTP requests.
type MenuHandler struct {
	service service.MenuService
	logger  zerolog.Logger
}

// NewMenuHandler creates a new menu handler.
func NewMenuHandler(service service.MenuService, logger zerolog.Logger) *MenuHandler {
	return &MenuHandler{
		service: service,
		logger:  logger.With().Str("handler", "menu").Logger(),
	}
}

// List handles GET /api/menu requests.
//
// Query parameters: category (id or slug), q, available, featured and sort.
func (h *MenuHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := model.MenuFilter{
		Category:      query.Get("category"),
		Search:        query.Get("q"),
		AvailableOnly: queryBool(r, "available"),
		FeaturedOnly:  queryBool(r, "featured"),
		Sort:          query.Get("sort"),
	}

	items, err := h.service.List(r.Context(), filter)
	if err != nil {
		writeServiceError(w, err, "failed to retrieve menu", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, items)
}

// Get handles GET /api/menu/{id} requests.
func (h *MenuHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err, "failed to retrieve menu item", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// Create handles POST /api/admin/menu requests.
func (h *MenuHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.MenuItemRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	item, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err, "failed to create menu item", h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, item)
}

// Update handles PUT /api/admin/menu/{id} requests.
func (h *MenuHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req model.MenuItemRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	item, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		writeServiceError(w, err, "failed to update menu item", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// Delete handles DELETE /api/admin/menu/{id} requests.
func (h *MenuHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err, "failed to delete menu item", h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
