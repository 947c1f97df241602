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

// maxUploadMemory bounds in-memory buffering of multipart uploads.
const maxUploadMemory = 32 << 20

// ProductHandler handles product, detail and configuration requests.
type ProductHandler struct {
	service service.ProductService
	logger  zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service service.ProductService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger.With().Str("handler", "product").Logger(),
	}
}

// Create handles POST /api/product.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateProductRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, err, h.logger)
		return
	}

	product, err := h.service.Create(r.Context(), &req)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, Format(Result{Msg: "Product created", Data: product, HasData: true}))
}

// List handles GET /api/product with the full filter/sort/pagination
// parameter set.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	opts := query.Parse(r.URL.Query(), readmodel.ProductListing)

	products, total, err := h.service.List(r.Context(), opts)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, Format(Result{
		Data: opts.Project(products),
		Page: &PageInfo{Page: opts.Page, PageSize: opts.PageSize, TotalCount: total},
	}))
}

// GetByID handles GET /api/product/{id}.
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
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
	writeJSON(w, http.StatusOK, Format(Result{Data: view}))
}

// Update handles PUT /api/product/{id}.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	var req model.UpdateProductRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, err, h.logger)
		return
	}

	product, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, Format(Result{Msg: "Product updated", Data: product, HasData: true}))
}

// Delete handles DELETE /api/product/{id}.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		respondError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, Format(Result{Msg: "Product deleted"}))
}

// UploadImages handles PUT /api/product/{id}/images with a multipart body.
func (h *ProductHandler) UploadImages(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart body")
		return
	}

	headers := r.MultipartForm.File["images"]
	if len(headers) == 0 {
		writeError(w, http.StatusBadRequest, "At least one image is required")
		return
	}

	var uploads []service.Upload
	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid multipart body")
			return
		}
		defer file.Close()
		uploads = append(uploads, service.Upload{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Body:        file,
		})
	}

	urls, err := h.service.UploadImages(r.Context(), id, uploads)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, Format(Result{Msg: "Images uploaded", Data: urls, HasData: true}))
}

// Rate handles PUT /api/product/{id}/rating.
func (h *ProductHandler) Rate(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFrom(r.Context())

	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	var req model.RateProductRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, err, h.logger)
		return
	}

	total, err := h.service.Rate(r.Context(), id, claims.UserID, &req)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, Format(Result{
		Msg:     "Rating saved",
		Data:    map[string]any{"totalRating": total},
		HasData: true,
	}))
}

// CreateDetail handles POST /api/product-detail.
func (h *ProductHandler) CreateDetail(w http.ResponseWriter, r *http.Request) {
	var req model.CreateProductDetailRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, err, h.logger)
		return
	}

	detail, err := h.service.CreateDetail(r.Context(), &req)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, Format(Result{Msg: "Product detail created", Data: detail, HasData: true}))
}

// GetDetail handles GET /api/product-detail/{id}.
func (h *ProductHandler) GetDetail(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	view, err := h.service.GetDetail(r.Context(), id)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, Format(Result{Data: view}))
}

// UpdateDetail handles PUT /api/product-detail/{id}.
func (h *ProductHandler) UpdateDetail(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	var detail model.ProductDetail
	if err := decodeAndValidate(r, &detail); err != nil {
		respondError(w, err, h.logger)
		return
	}
	detail.ID = id

	if err := h.service.UpdateDetail(r.Context(), &detail); err != nil {
		respondError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, Format(Result{Msg: "Product detail updated", Data: detail, HasData: true}))
}

// DeleteDetail handles DELETE /api/product-detail/{id}.
func (h *ProductHandler) DeleteDetail(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	if err := h.service.DeleteDetail(r.Context(), id); err != nil {
		respondError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, Format(Result{Msg: "Product detail deleted"}))
}

// CreateConfiguration handles POST /api/product-configuration.
func (h *ProductHandler) CreateConfiguration(w http.ResponseWriter, r *http.Request) {
	var req model.CreateConfigurationRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, err, h.logger)
		return
	}

	config, err := h.service.CreateConfiguration(r.Context(), &req)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, Format(Result{Msg: "Configuration created", Data: config, HasData: true}))
}

// ListConfigurations handles GET /api/product-detail/{id}/configurations.
func (h *ProductHandler) ListConfigurations(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	configs, err := h.service.ListConfigurations(r.Context(), id)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	count := len(configs)
	writeJSON(w, http.StatusOK, Format(Result{Count: &count, Data: configs}))
}

// DeleteConfiguration handles DELETE /api/product-configuration/{id}.
func (h *ProductHandler) DeleteConfiguration(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	if err := h.service.DeleteConfiguration(r.Context(), id); err != nil {
		respondError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, Format(Result{Msg: "Configuration deleted"}))
}
