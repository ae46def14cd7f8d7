package handler

import (
	"net/http"

	"cafe-site/internal/model"
	"cafe-site/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// PromotionHandler handles promotion-related HTTP requests.
type PromotionHandler struct {
	service service.PromotionService
	logger  zerolog.Logger
}

// NewPromotionHandler creates a new promotion handler.
func NewPromotionHandler(service service.PromotionService, logger zerolog.Logger) *PromotionHandler {
	return &PromotionHandler{
		service: service,
		logger:  logger.With().Str("handler", "promotion").Logger(),
	}
}

// Active handles GET /api/promotions/active requests.
func (h *PromotionHandler) Active(w http.ResponseWriter, r *http.Request) {
	promotions, err := h.service.Active(r.Context())
	if err != nil {
		writeServiceError(w, err, "failed to retrieve promotions", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, promotions)
}

// List handles GET /api/admin/promotions requests.
func (h *PromotionHandler) List(w http.ResponseWriter, r *http.Request) {
	promotions, err := h.service.List(r.Context())
	if err != nil {
		writeServiceError(w, err, "failed to retrieve promotions", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, promotions)
}

// Get handles GET /api/admin/promotions/{id} requests.
func (h *PromotionHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err, "failed to retrieve promotion", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

// Create handles POST /api/admin/promotions requests.
func (h *PromotionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.PromotionRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	p, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err, "failed to create promotion", h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, p)
}

// Update handles PUT /api/admin/promotions/{id} requests.
func (h *PromotionHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req model.PromotionRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	p, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		writeServiceError(w, err, "failed to update promotion", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

// Delete handles DELETE /api/admin/promotions/{id} requests.
func (h *PromotionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err, "failed to delete promotion", h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
