package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"storefront/internal/model"
	"storefront/internal/query"
	"storefront/internal/repository"
	"storefront/internal/storage"
)

// catalogService implements CatalogService.
type catalogService struct {
	catalogRepo repository.CatalogRepository
	store       storage.ObjectStore
	logger      zerolog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(catalogRepo repository.CatalogRepository, store storage.ObjectStore, logger zerolog.Logger) CatalogService {
	return &catalogService{
		catalogRepo: catalogRepo,
		store:       store,
		logger:      logger.With().Str("service", "catalog").Logger(),
	}
}

// CreateCategory creates a category, uploading the optional thumbnail first.
// The thumbnail object is removed again when the database write fails.
func (s *catalogService) CreateCategory(ctx context.Context, req *model.CreateCategoryRequest, thumbnail *Upload) (*model.Category, error) {
	now := time.Now().UTC()
	category := &model.Category{
		ID:        uuid.New(),
		Name:      req.Name,
		Slug:      model.Slugify(req.Name),
		CreatedAt: now,
		UpdatedAt: now,
	}

	var key string
	if thumbnail != nil {
		key = storage.ObjectKey("categories", thumbnail.Filename)
		url, err := s.store.Put(ctx, key, thumbnail.ContentType, thumbnail.Body)
		if err != nil {
			return nil, err
		}
		category.Thumbnail = url
	}

	if err := s.catalogRepo.CreateCategory(ctx, category); err != nil {
		if key != "" {
			if delErr := s.store.Delete(ctx, key); delErr != nil {
				s.logger.Error().Err(delErr).Str("key", key).Msg("failed to clean up orphaned thumbnail")
			}
		}
		return nil, err
	}

	s.logger.Info().Str("category_id", category.ID.String()).Msg("category created")
	return category, nil
}

// GetCategory retrieves one category.
func (s *catalogService) GetCategory(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	category, err := s.catalogRepo.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, model.NotFound("Category")
	}
	return category, nil
}

// ListCategories retrieves a category page.
func (s *catalogService) ListCategories(ctx context.Context, opts query.Options) ([]model.Category, int, error) {
	return s.catalogRepo.ListCategories(ctx, opts)
}

// UpdateCategory replaces the category row.
func (s *catalogService) UpdateCategory(ctx context.Context, c *model.Category) error {
	c.Slug = model.Slugify(c.Name)
	return s.catalogRepo.UpdateCategory(ctx, c)
}

// DeleteCategory removes a category. Items referencing it stay behind and
// resolve to null in reads.
func (s *catalogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	found, err := s.catalogRepo.DeleteCategory(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return model.NotFound("Category")
	}
	return nil
}

// CreateCategoryItem creates a second-level grouping under a category.
func (s *catalogService) CreateCategoryItem(ctx context.Context, req *model.CreateCategoryItemRequest) (*model.CategoryItem, error) {
	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return nil, model.ErrInvalidID
	}

	category, err := s.catalogRepo.GetCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, model.NotFound("Category")
	}

	now := time.Now().UTC()
	item := &model.CategoryItem{
		ID:         uuid.New(),
		Name:       req.Name,
		Slug:       model.Slugify(req.Name),
		CategoryID: &categoryID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.catalogRepo.CreateCategoryItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// ListCategoryItems lists all category items.
func (s *catalogService) ListCategoryItems(ctx context.Context) ([]model.CategoryItem, error) {
	return s.catalogRepo.ListCategoryItems(ctx)
}

// DeleteCategoryItem removes a category item.
func (s *catalogService) DeleteCategoryItem(ctx context.Context, id uuid.UUID) error {
	found, err := s.catalogRepo.DeleteCategoryItem(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return model.NotFound("Category item")
	}
	return nil
}

// CreateBrand creates a brand.
func (s *catalogService) CreateBrand(ctx context.Context, req *model.CreateBrandRequest) (*model.Brand, error) {
	brand := &model.Brand{
		ID:        uuid.New(),
		Name:      req.Name,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.catalogRepo.CreateBrand(ctx, brand); err != nil {
		return nil, err
	}
	return brand, nil
}

// ListBrands lists all brands.
func (s *catalogService) ListBrands(ctx context.Context) ([]model.Brand, error) {
	return s.catalogRepo.ListBrands(ctx)
}

// DeleteBrand removes a brand.
func (s *catalogService) DeleteBrand(ctx context.Context, id uuid.UUID) error {
	found, err := s.catalogRepo.DeleteBrand(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return model.NotFound("Brand")
	}
	return nil
}
