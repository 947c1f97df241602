package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"storefront/internal/middleware"
	"storefront/internal/model"
	"storefront/internal/query"
	"storefront/internal/repository"
	"storefront/internal/service"
)

// BlogHandler handles blog content requests.
type BlogHandler struct {
	service service.BlogService
	logger  zerolog.Logger
}

// NewBlogHandler creates a new blog handler.
func NewBlogHandler(service service.BlogService, logger zerolog.Logger) *BlogHandler {
	return &BlogHandler{
		service: service,
		logger:  logger.With().Str("handler", "blog").Logger(),
	}
}

// Create handles POST /api/blog.
func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFrom(r.Context())

	var req model.CreateBlogRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, err, h.logger)
		return
	}

	blog, err := h.service.Create(r.Context(), claims.UserID, &req)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, Format(Result{Msg: "Blog created", Data: blog, HasData: true}))
}

// View handles GET /api/blog/{id}. Each read counts a view.
func (h *BlogHandler) View(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	blog, err := h.service.View(r.Context(), id)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, Format(Result{Data: blog}))
}

// List handles GET /api/blog.
func (h *BlogHandler) List(w http.ResponseWriter, r *http.Request) {
	opts := query.Parse(r.URL.Query(), repository.BlogListing)

	blogs, total, err := h.service.List(r.Context(), opts)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, Format(Result{
		Data: opts.Project(blogs),
		Page: &PageInfo{Page: opts.Page, PageSize: opts.PageSize, TotalCount: total},
	}))
}

// Update handles PUT /api/blog/{id}.
func (h *BlogHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	var req model.UpdateBlogRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, err, h.logger)
		return
	}

	blog, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, Format(Result{Msg: "Blog updated", Data: blog, HasData: true}))
}

// Delete handles DELETE /api/blog/{id}.
func (h *BlogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		respondError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, Format(Result{Msg: "Blog deleted"}))
}

// React handles PUT /api/blog/{id}/like and /dislike. The toggle result is
// returned as the new like and dislike counts.
func (h *BlogHandler) React(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middleware.ClaimsFrom(r.Context())

		id, err := pathID(r, "id")
		if err != nil {
			respondError(w, err, h.logger)
			return
		}

		likes, dislikes, err := h.service.React(r.Context(), id, claims.UserID, kind)
		if err != nil {
			respondError(w, err, h.logger)
			return
		}

		writeJSON(w, http.StatusOK, Format(Result{
			Data: map[string]int{"likes": likes, "dislikes": dislikes},
		}))
	}
}

// CreateCategory handles POST /api/blog-category.
func (h *BlogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req model.CreateBlogCategoryRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, err, h.logger)
		return
	}

	category, err := h.service.CreateCategory(r.Context(), &req)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, Format(Result{Msg: "Blog category created", Data: category, HasData: true}))
}

// ListCategories handles GET /api/blog-category.
func (h *BlogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	count := len(categories)
	writeJSON(w, http.StatusOK, Format(Result{Count: &count, Data: categories}))
}

// DeleteCategory handles DELETE /api/blog-category/{id}.
func (h *BlogHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	if err := h.service.DeleteCategory(r.Context(), id); err != nil {
		respondError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, Format(Result{Msg: "Blog category deleted"}))
}
