package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"storefront/internal/model"
	"storefront/internal/query"
	"storefront/internal/repository"
)

// blogService implements BlogService.
type blogService struct {
	blogRepo repository.BlogRepository
	logger   zerolog.Logger
}

// NewBlogService creates a new blog service.
func NewBlogService(blogRepo repository.BlogRepository, logger zerolog.Logger) BlogService {
	return &blogService{
		blogRepo: blogRepo,
		logger:   logger.With().Str("service", "blog").Logger(),
	}
}

// Create creates a blog post authored by the caller.
func (s *blogService) Create(ctx context.Context, authorID uuid.UUID, req *model.CreateBlogRequest) (*model.Blog, error) {
	blog := &model.Blog{
		ID:        uuid.New(),
		Title:     req.Title,
		Body:      req.Body,
		AuthorID:  &authorID,
		CreatedAt: time.Now().UTC(),
	}
	blog.UpdatedAt = blog.CreatedAt

	if req.CategoryID != "" {
		categoryID, err := uuid.Parse(req.CategoryID)
		if err != nil {
			return nil, model.ErrInvalidID
		}
		blog.CategoryID = &categoryID
	}

	if err := s.blogRepo.Create(ctx, blog); err != nil {
		return nil, err
	}

	s.logger.Info().Str("blog_id", blog.ID.String()).Msg("blog created")
	return blog, nil
}

// View returns the blog after counting the view.
func (s *blogService) View(ctx context.Context, id uuid.UUID) (*model.Blog, error) {
	blog, err := s.blogRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if blog == nil {
		return nil, model.NotFound("Blog")
	}

	if err := s.blogRepo.IncrementViews(ctx, id); err != nil {
		return nil, err
	}
	blog.Views++

	return blog, nil
}

// List retrieves a blog page.
func (s *blogService) List(ctx context.Context, opts query.Options) ([]model.Blog, int, error) {
	return s.blogRepo.List(ctx, opts)
}

// Update merges the given fields into the blog post.
func (s *blogService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateBlogRequest) (*model.Blog, error) {
	blog, err := s.blogRepo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	if blog == nil {
		return nil, model.NotFound("Blog")
	}
	return blog, nil
}

// Delete removes a blog post.
func (s *blogService) Delete(ctx context.Context, id uuid.UUID) error {
	found, err := s.blogRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return model.NotFound("Blog")
	}
	return nil
}

// React toggles the caller's like or dislike and returns the resulting
// counts.
func (s *blogService) React(ctx context.Context, blogID, userID uuid.UUID, kind string) (int, int, error) {
	if kind != model.ReactionLike && kind != model.ReactionDislike {
		return 0, 0, model.Invalid("Unknown reaction")
	}

	blog, err := s.blogRepo.GetByID(ctx, blogID)
	if err != nil {
		return 0, 0, err
	}
	if blog == nil {
		return 0, 0, model.NotFound("Blog")
	}

	return s.blogRepo.React(ctx, blogID, userID, kind)
}

// CreateCategory creates a blog category.
func (s *blogService) CreateCategory(ctx context.Context, req *model.CreateBlogCategoryRequest) (*model.BlogCategory, error) {
	category := &model.BlogCategory{
		ID:   uuid.New(),
		Name: req.Name,
	}
	if err := s.blogRepo.CreateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// ListCategories lists all blog categories.
func (s *blogService) ListCategories(ctx context.Context) ([]model.BlogCategory, error) {
	return s.blogRepo.ListCategories(ctx)
}

// DeleteCategory removes a blog category.
func (s *blogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	found, err := s.blogRepo.DeleteCategory(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return model.NotFound("Blog category")
	}
	return nil
}
