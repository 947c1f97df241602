package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"storefront/internal/middleware"
	"storefront/internal/model"
	"storefront/internal/query"
	"storefront/internal/readmodel"
	"storefront/internal/service"
)

// OrderHandler handles checkout and order requests.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// Checkout handles POST /api/order/checkout.
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFrom(r.Context())

	var req model.CheckoutRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, err, h.logger)
		return
	}

	resp, err := h.service.Checkout(r.Context(), claims.UserID, &req)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, Format(Result{Msg: "Order placed", Data: resp, HasData: true}))
}

// List handles GET /api/order for the current user.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFrom(r.Context())
	opts := query.Parse(r.URL.Query(), readmodel.OrderListing)

	orders, total, err := h.service.ListForUser(r.Context(), claims.UserID, opts)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, Format(Result{
		Data: opts.Project(orders),
		Page: &PageInfo{Page: opts.Page, PageSize: opts.PageSize, TotalCount: total},
	}))
}

// GetByID handles GET /api/order/{id}. A customer can only read their own
// orders; admins can read any.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFrom(r.Context())

	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	view, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}
	if claims.Role != model.RoleAdmin && view.OrderBy != claims.UserID {
		respondError(w, model.NotFound("Order"), h.logger)
		return
	}
	writeJSON(w, http.StatusOK, Format(Result{Data: view}))
}

// UpdateStatus handles the admin PUT /api/order/{id}/status.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	var req model.UpdateOrderStatusRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, err, h.logger)
		return
	}

	if err := h.service.UpdateStatus(r.Context(), id, req.Status); err != nil {
		respondError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, Format(Result{Msg: "Order status updated"}))
}
