package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"storefront/internal/model"
	"storefront/internal/query"
	"storefront/internal/readmodel"
	"storefront/internal/repository"
	"storefront/internal/storage"
)

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	detailRepo  repository.ProductDetailRepository
	configRepo  repository.ConfigurationRepository
	catalogRepo repository.CatalogRepository
	varRepo     repository.VariationRepository
	reader      *readmodel.Reader
	store       storage.ObjectStore
	logger      zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(
	productRepo repository.ProductRepository,
	detailRepo repository.ProductDetailRepository,
	configRepo repository.ConfigurationRepository,
	catalogRepo repository.CatalogRepository,
	varRepo repository.VariationRepository,
	reader *readmodel.Reader,
	store storage.ObjectStore,
	logger zerolog.Logger,
) ProductService {
	return &productService{
		productRepo: productRepo,
		detailRepo:  detailRepo,
		configRepo:  configRepo,
		catalogRepo: catalogRepo,
		varRepo:     varRepo,
		reader:      reader,
		store:       store,
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

// Create creates a product after checking its brand and category item exist.
func (s *productService) Create(ctx context.Context, req *model.CreateProductRequest) (*model.Product, error) {
	brandID, err := uuid.Parse(req.BrandID)
	if err != nil {
		return nil, model.ErrInvalidID
	}
	categoryItemID, err := uuid.Parse(req.CategoryItemID)
	if err != nil {
		return nil, model.ErrInvalidID
	}

	exists, err := s.catalogRepo.BrandExists(ctx, brandID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, model.NotFound("Brand")
	}

	exists, err = s.catalogRepo.CategoryItemExists(ctx, categoryItemID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, model.NotFound("Category item")
	}

	now := time.Now().UTC()
	product := &model.Product{
		ID:             uuid.New(),
		Name:           req.Name,
		Slug:           model.Slugify(req.Name),
		Description:    req.Description,
		Price:          req.Price,
		BrandID:        &brandID,
		CategoryItemID: &categoryItemID,
		Images:         []string{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info().Str("product_id", product.ID.String()).Msg("product created")
	return product, nil
}

// GetByID retrieves a single product with its references resolved.
func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*readmodel.ProductView, error) {
	view, err := s.reader.ProductByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if view == nil {
		return nil, model.NotFound("Product")
	}
	return view, nil
}

// List retrieves a product page under the normalized listing options.
func (s *productService) List(ctx context.Context, opts query.Options) ([]readmodel.ProductView, int, error) {
	return s.reader.ProductPage(ctx, opts)
}

// Update merges the given fields into the product. A changed brand or
// category item is checked for existence.
func (s *productService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateProductRequest) (*model.Product, error) {
	if req.BrandID != nil {
		brandID, err := uuid.Parse(*req.BrandID)
		if err != nil {
			return nil, model.ErrInvalidID
		}
		exists, err := s.catalogRepo.BrandExists(ctx, brandID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, model.NotFound("Brand")
		}
	}
	if req.CategoryItemID != nil {
		categoryItemID, err := uuid.Parse(*req.CategoryItemID)
		if err != nil {
			return nil, model.ErrInvalidID
		}
		exists, err := s.catalogRepo.CategoryItemExists(ctx, categoryItemID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, model.NotFound("Category item")
		}
	}

	product, err := s.productRepo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, model.NotFound("Product")
	}
	return product, nil
}

// Delete removes a product. Details referencing it stay behind and resolve
// to null in reads.
func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	found, err := s.productRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return model.NotFound("Product")
	}
	return nil
}

// UploadImages stores product images and records their URLs. On a database
// failure all objects uploaded for this call are removed again.
func (s *productService) UploadImages(ctx context.Context, id uuid.UUID, files []Upload) ([]string, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, model.NotFound("Product")
	}

	var keys []string
	urls := product.Images
	for _, file := range files {
		key := storage.ObjectKey("products", file.Filename)
		url, err := s.store.Put(ctx, key, file.ContentType, file.Body)
		if err != nil {
			s.cleanupObjects(ctx, keys)
			return nil, err
		}
		keys = append(keys, key)
		urls = append(urls, url)
	}

	if err := s.productRepo.SetImages(ctx, id, urls); err != nil {
		s.cleanupObjects(ctx, keys)
		return nil, err
	}

	s.logger.Info().Str("product_id", id.String()).Int("count", len(files)).Msg("product images uploaded")
	return urls, nil
}

func (s *productService) cleanupObjects(ctx context.Context, keys []string) {
	for _, key := range keys {
		if err := s.store.Delete(ctx, key); err != nil {
			s.logger.Error().Err(err).Str("key", key).Msg("failed to clean up orphaned upload")
		}
	}
}

// Rate stores the caller's star rating and returns the recomputed total.
func (s *productService) Rate(ctx context.Context, productID, userID uuid.UUID, req *model.RateProductRequest) (float64, error) {
	if req.Star < 1 || req.Star > 5 {
		return 0, model.ErrStarOutOfRange
	}

	exists, err := s.productRepo.Exists(ctx, productID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, model.NotFound("Product")
	}

	rating := &model.Rating{
		ProductID: productID,
		UserID:    userID,
		Star:      req.Star,
		Comment:   req.Comment,
		CreatedAt: time.Now().UTC(),
	}

	total, err := s.productRepo.UpsertRating(ctx, rating)
	if err != nil {
		return 0, err
	}

	s.logger.Debug().
		Str("product_id", productID.String()).
		Int("star", req.Star).
		Float64("total_rating", total).
		Msg("product rated")

	return total, nil
}

// CreateDetail creates a purchasable variant row for a product.
func (s *productService) CreateDetail(ctx context.Context, req *model.CreateProductDetailRequest) (*model.ProductDetail, error) {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, model.ErrInvalidID
	}

	exists, err := s.productRepo.Exists(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, model.NotFound("Product")
	}

	now := time.Now().UTC()
	detail := &model.ProductDetail{
		ID:        uuid.New(),
		Name:      req.Name,
		Slug:      model.Slugify(req.Name),
		Color:     req.Color,
		Size:      req.Size,
		Price:     req.Price,
		Inventory: req.Inventory,
		ProductID: productID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.detailRepo.Create(ctx, detail); err != nil {
		return nil, err
	}
	return detail, nil
}

// GetDetail retrieves a detail with its product resolved.
func (s *productService) GetDetail(ctx context.Context, id uuid.UUID) (*readmodel.DetailView, error) {
	view, err := s.reader.DetailByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if view == nil {
		return nil, model.ErrDetailNotFound
	}
	return view, nil
}

// UpdateDetail replaces the detail row.
func (s *productService) UpdateDetail(ctx context.Context, d *model.ProductDetail) error {
	d.Slug = model.Slugify(d.Name)
	return s.detailRepo.Update(ctx, d)
}

// DeleteDetail removes a detail.
func (s *productService) DeleteDetail(ctx context.Context, id uuid.UUID) error {
	found, err := s.detailRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return model.ErrDetailNotFound
	}
	return nil
}

// CreateConfiguration binds a detail to a variation option set. The set is
// canonicalized to sorted order so duplicates collide regardless of input
// order.
func (s *productService) CreateConfiguration(ctx context.Context, req *model.CreateConfigurationRequest) (*model.ProductConfiguration, error) {
	detailID, err := uuid.Parse(req.ProductDetailID)
	if err != nil {
		return nil, model.ErrInvalidID
	}

	optionIDs := make([]uuid.UUID, 0, len(req.VariationOptionIDs))
	for _, raw := range req.VariationOptionIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, model.ErrInvalidID
		}
		optionIDs = append(optionIDs, id)
	}
	sort.Slice(optionIDs, func(i, j int) bool {
		return optionIDs[i].String() < optionIDs[j].String()
	})

	exists, err := s.detailRepo.Exists(ctx, detailID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, model.ErrDetailNotFound
	}

	ok, err := s.varRepo.OptionsExist(ctx, optionIDs)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, model.ErrDanglingOptionRef
	}

	config := &model.ProductConfiguration{
		ID:              uuid.New(),
		ProductDetailID: detailID,
		OptionIDs:       optionIDs,
	}

	if err := s.configRepo.Create(ctx, config); err != nil {
		return nil, err
	}
	return config, nil
}

// ListConfigurations lists the option sets bound to a detail.
func (s *productService) ListConfigurations(ctx context.Context, detailID uuid.UUID) ([]model.ProductConfiguration, error) {
	return s.configRepo.ListForDetail(ctx, detailID)
}

// DeleteConfiguration removes one option-set binding.
func (s *productService) DeleteConfiguration(ctx context.Context, id uuid.UUID) error {
	found, err := s.configRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return model.NotFound("Configuration")
	}
	return nil
}
