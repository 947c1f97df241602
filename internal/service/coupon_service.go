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

// couponService implements CouponService.
type couponService struct {
	couponRepo repository.CouponRepository
	logger     zerolog.Logger
}

// NewCouponService creates a new coupon service.
func NewCouponService(couponRepo repository.CouponRepository, logger zerolog.Logger) CouponService {
	return &couponService{
		couponRepo: couponRepo,
		logger:     logger.With().Str("service", "coupon").Logger(),
	}
}

// Create creates a coupon. Expiry must lie in the future.
func (s *couponService) Create(ctx context.Context, req *model.CreateCouponRequest) (*model.Coupon, error) {
	if !req.Expiry.After(time.Now()) {
		return nil, model.ErrCouponExpiryPast
	}

	coupon := &model.Coupon{
		ID:        uuid.New(),
		Name:      req.Name,
		Discount:  req.Discount,
		Expiry:    req.Expiry,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.couponRepo.Create(ctx, coupon); err != nil {
		return nil, err
	}

	s.logger.Info().Str("coupon_id", coupon.ID.String()).Msg("coupon created")
	return coupon, nil
}

// GetByID retrieves one coupon.
func (s *couponService) GetByID(ctx context.Context, id uuid.UUID) (*model.Coupon, error) {
	coupon, err := s.couponRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, model.NotFound("Coupon")
	}
	return coupon, nil
}

// List retrieves a coupon page.
func (s *couponService) List(ctx context.Context, opts query.Options) ([]model.Coupon, int, error) {
	return s.couponRepo.List(ctx, opts)
}

// Update replaces the coupon's fields. Expiry must lie in the future.
func (s *couponService) Update(ctx context.Context, id uuid.UUID, req *model.CreateCouponRequest) (*model.Coupon, error) {
	if !req.Expiry.After(time.Now()) {
		return nil, model.ErrCouponExpiryPast
	}

	coupon, err := s.couponRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, model.NotFound("Coupon")
	}

	coupon.Name = req.Name
	coupon.Discount = req.Discount
	coupon.Expiry = req.Expiry

	if err := s.couponRepo.Update(ctx, coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

// Delete removes a coupon.
func (s *couponService) Delete(ctx context.Context, id uuid.UUID) error {
	found, err := s.couponRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return model.NotFound("Coupon")
	}
	return nil
}
