package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"storefront/internal/model"
	"storefront/internal/readmodel"
	"storefront/internal/repository"
)

// cartService implements CartService.
type cartService struct {
	cartRepo   repository.CartRepository
	detailRepo repository.ProductDetailRepository
	varRepo    repository.VariationRepository
	reader     *readmodel.Reader
	logger     zerolog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(
	cartRepo repository.CartRepository,
	detailRepo repository.ProductDetailRepository,
	varRepo repository.VariationRepository,
	reader *readmodel.Reader,
	logger zerolog.Logger,
) CartService {
	return &cartService{
		cartRepo:   cartRepo,
		detailRepo: detailRepo,
		varRepo:    varRepo,
		reader:     reader,
		logger:     logger.With().Str("service", "cart").Logger(),
	}
}

// Get assembles the user's cart with resolved details and options.
func (s *cartService) Get(ctx context.Context, userID uuid.UUID) ([]readmodel.CartLineView, error) {
	return s.reader.CartForUser(ctx, userID)
}

// Add upserts a cart line. A line matching the same detail and ordered
// option list has its quantity incremented; anything else appends.
func (s *cartService) Add(ctx context.Context, userID uuid.UUID, req *model.AddCartLineRequest) error {
	if req.Quantity <= 0 {
		return model.ErrInvalidQuantity
	}

	detailID, err := uuid.Parse(req.ProductDetailID)
	if err != nil {
		return model.ErrInvalidID
	}

	optionIDs := make([]uuid.UUID, 0, len(req.VariationOptionIDs))
	for _, raw := range req.VariationOptionIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return model.ErrInvalidID
		}
		optionIDs = append(optionIDs, id)
	}

	exists, err := s.detailRepo.Exists(ctx, detailID)
	if err != nil {
		return err
	}
	if !exists {
		return model.ErrDetailNotFound
	}

	if len(optionIDs) > 0 {
		ok, err := s.varRepo.OptionsExist(ctx, optionIDs)
		if err != nil {
			return err
		}
		if !ok {
			return model.ErrDanglingOptionRef
		}
	}

	line := &model.CartLine{
		ID:              uuid.New(),
		UserID:          userID,
		ProductDetailID: detailID,
		OptionIDs:       optionIDs,
		Quantity:        req.Quantity,
		CreatedAt:       time.Now().UTC(),
	}

	if err := s.cartRepo.Upsert(ctx, line); err != nil {
		return err
	}

	s.logger.Debug().
		Str("user_id", userID.String()).
		Str("product_detail_id", detailID.String()).
		Int("quantity", req.Quantity).
		Msg("cart line upserted")

	return nil
}

// Remove deletes one cart line owned by the user.
func (s *cartService) Remove(ctx context.Context, userID, lineID uuid.UUID) error {
	found, err := s.cartRepo.Delete(ctx, userID, lineID)
	if err != nil {
		return err
	}
	if !found {
		return model.ErrCartLineNotFound
	}
	return nil
}
