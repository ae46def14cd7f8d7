package handler

import (
	"errors"
	"net/http"

	"cafe-site/internal/metrics"
	"cafe-site/internal/model"
	"cafe-site/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// OrderHandler handles order-related HTTP requests.
type OrderHandler struct {
	service service.OrderService
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler. m may be nil.
func NewOrderHandler(service service.OrderService, m *metrics.Metrics, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		metrics: m,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// Create handles POST /api/orders requests.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.OrderRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	order, err := h.service.CreateOrder(r.Context(), &req)
	if err != nil {
		// An unknown menu item is a bad order, not a missing order
		if errors.Is(err, model.ErrMenuItemNotFound) {
			writeError(w, http.StatusBadRequest, model.ErrCodeNotFound, model.ErrMenuItemNotFound.Message, h.logger)
			return
		}
		writeServiceError(w, err, "failed to create order", h.logger)
		return
	}

	if h.metrics != nil {
		h.metrics.OrderPlaced()
	}
	writeJSON(w, http.StatusCreated, order)
}

// GetByID handles GET /api/orders/{id} requests.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	orderIDStr := chi.URLParam(r, "id")
	if orderIDStr == "" {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidationFailed, "order ID is required", h.logger)
		return
	}

	orderID, err := uuid.Parse(orderIDStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidationFailed, "invalid order ID format", h.logger)
		return
	}

	order, err := h.service.GetByID(r.Context(), orderID)
	if err != nil {
		writeServiceError(w, err, "failed to retrieve order", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// List handles GET /api/admin/orders requests with pagination.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", 20)
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidationFailed, "invalid limit parameter", h.logger)
		return
	}

	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidationFailed, "invalid offset parameter", h.logger)
		return
	}

	orders, err := h.service.List(r.Context(), limit, offset)
	if err != nil {
		writeServiceError(w, err, "failed to retrieve orders", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, orders)
}
