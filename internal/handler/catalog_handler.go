package handler

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"storefront/internal/model"
	"storefront/internal/query"
	"storefront/internal/repository"
	"storefront/internal/service"
)

// CatalogHandler handles category, category item and brand requests.
type CatalogHandler struct {
	service service.CatalogService
	logger  zerolog.Logger
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(service service.CatalogService, logger zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		logger:  logger.With().Str("handler", "catalog").Logger(),
	}
}

// CreateCategory handles POST /api/category. The body is multipart: a
// "name" field plus an optional "thumbnail" file.
func (h *CatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart body")
		return
	}

	req := model.CreateCategoryRequest{Name: r.FormValue("name")}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}

	var thumbnail *service.Upload
	if file, header, err := r.FormFile("thumbnail"); err == nil {
		defer file.Close()
		thumbnail = &service.Upload{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Body:        file,
		}
	}

	category, err := h.service.CreateCategory(r.Context(), &req, thumbnail)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, Format(Result{Msg: "Category created", Data: category, HasData: true}))
}

// GetCategory handles GET /api/category/{id}.
func (h *CatalogHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	category, err := h.service.GetCategory(r.Context(), id)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, Format(Result{Data: category}))
}

// ListCategories handles GET /api/category.
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	opts := query.Parse(r.URL.Query(), repository.CategoryListing)

	categories, total, err := h.service.ListCategories(r.Context(), opts)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, Format(Result{
		Data: opts.Project(categories),
		Page: &PageInfo{Page: opts.Page, PageSize: opts.PageSize, TotalCount: total},
	}))
}

// UpdateCategory handles PUT /api/category/{id}.
func (h *CatalogHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	var category model.Category
	if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	category.ID = id
	if category.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}

	if err := h.service.UpdateCategory(r.Context(), &category); err != nil {
		respondError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, Format(Result{Msg: "Category updated", Data: category, HasData: true}))
}

// DeleteCategory handles DELETE /api/category/{id}. Items referencing the
// category stay behind; reads resolve the reference to null.
func (h *CatalogHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	if err := h.service.DeleteCategory(r.Context(), id); err != nil {
		respondError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, Format(Result{Msg: "Category deleted"}))
}

// CreateCategoryItem handles POST /api/category-item.
func (h *CatalogHandler) CreateCategoryItem(w http.ResponseWriter, r *http.Request) {
	var req model.CreateCategoryItemRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, err, h.logger)
		return
	}

	item, err := h.service.CreateCategoryItem(r.Context(), &req)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, Format(Result{Msg: "Category item created", Data: item, HasData: true}))
}

// ListCategoryItems handles GET /api/category-item.
func (h *CatalogHandler) ListCategoryItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListCategoryItems(r.Context())
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	count := len(items)
	writeJSON(w, http.StatusOK, Format(Result{Count: &count, Data: items}))
}

// DeleteCategoryItem handles DELETE /api/category-item/{id}.
func (h *CatalogHandler) DeleteCategoryItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	if err := h.service.DeleteCategoryItem(r.Context(), id); err != nil {
		respondError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, Format(Result{Msg: "Category item deleted"}))
}

// CreateBrand handles POST /api/brand.
func (h *CatalogHandler) CreateBrand(w http.ResponseWriter, r *http.Request) {
	var req model.CreateBrandRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, err, h.logger)
		return
	}

	brand, err := h.service.CreateBrand(r.Context(), &req)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, Format(Result{Msg: "Brand created", Data: brand, HasData: true}))
}

// ListBrands handles GET /api/brand.
func (h *CatalogHandler) ListBrands(w http.ResponseWriter, r *http.Request) {
	brands, err := h.service.ListBrands(r.Context())
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	count := len(brands)
	writeJSON(w, http.StatusOK, Format(Result{Count: &count, Data: brands}))
}

// DeleteBrand handles DELETE /api/brand/{id}.
func (h *CatalogHandler) DeleteBrand(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	if err := h.service.DeleteBrand(r.Context(), id); err != nil {
		respondError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, Format(Result{Msg: "Brand deleted"}))
}
