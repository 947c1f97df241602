package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"storefront/internal/model"
	"storefront/internal/query"
	"storefront/internal/repository"
	"storefront/internal/service"
)

// CouponHandler handles coupon requests.
type CouponHandler struct {
	service service.CouponService
	logger  zerolog.Logger
}

// NewCouponHandler creates a new coupon handler.
func NewCouponHandler(service service.CouponService, logger zerolog.Logger) *CouponHandler {
	return &CouponHandler{
		service: service,
		logger:  logger.With().Str("handler", "coupon").Logger(),
	}
}

// Create handles POST /api/coupon.
func (h *CouponHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateCouponRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, err, h.logger)
		return
	}

	coupon, err := h.service.Create(r.Context(), &req)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, Format(Result{Msg: "Coupon created", Data: coupon, HasData: true}))
}

// GetByID handles GET /api/coupon/{id}.
func (h *CouponHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	coupon, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, Format(Result{Data: coupon}))
}

// List handles GET /api/coupon.
func (h *CouponHandler) List(w http.ResponseWriter, r *http.Request) {
	opts := query.Parse(r.URL.Query(), repository.CouponListing)

	coupons, total, err := h.service.List(r.Context(), opts)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, Format(Result{
		Data: opts.Project(coupons),
		Page: &PageInfo{Page: opts.Page, PageSize: opts.PageSize, TotalCount: total},
	}))
}

// Update handles PUT /api/coupon/{id}.
func (h *CouponHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	var req model.CreateCouponRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, err, h.logger)
		return
	}

	coupon, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, Format(Result{Msg: "Coupon updated", Data: coupon, HasData: true}))
}

// Delete handles DELETE /api/coupon/{id}.
func (h *CouponHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		respondError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, Format(Result{Msg: "Coupon deleted"}))
}
