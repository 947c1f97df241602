package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"storefront/internal/model"
	"storefront/internal/query"
)

// MockCouponRepository is a mock implementation of repository.CouponRepository.
type MockCouponRepository struct {
	mock.Mock
}

func (m *MockCouponRepository) Create(ctx context.Context, c *model.Coupon) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCouponRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Coupon, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Coupon), args.Error(1)
}

func (m *MockCouponRepository) List(ctx context.Context, opts query.Options) ([]model.Coupon, int, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]model.Coupon), args.Int(1), args.Error(2)
}

func (m *MockCouponRepository) Update(ctx context.Context, c *model.Coupon) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCouponRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func TestCouponService_Create(t *testing.T) {
	ctx := context.Background()
	logger := zerolog.Nop()

	t.Run("rejects an expiry in the past", func(t *testing.T) {
		repo := new(MockCouponRepository)
		svc := NewCouponService(repo, logger)

		_, err := svc.Create(ctx, &model.CreateCouponRequest{
			Name:     "SUMMER10",
			Discount: 10,
			Expiry:   time.Now().Add(-time.Hour),
		})
		assert.ErrorIs(t, err, model.ErrCouponExpiryPast)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("persists a coupon with a future expiry", func(t *testing.T) {
		expiry := time.Now().Add(24 * time.Hour)
		repo := new(MockCouponRepository)
		repo.On("Create", ctx, mock.MatchedBy(func(c *model.Coupon) bool {
			return c.Name == "SUMMER10" && c.Discount == 10 && c.Expiry.Equal(expiry)
		})).Return(nil)

		svc := NewCouponService(repo, logger)

		coupon, err := svc.Create(ctx, &model.CreateCouponRequest{
			Name:     "SUMMER10",
			Discount: 10,
			Expiry:   expiry,
		})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, coupon.ID)
		repo.AssertExpectations(t)
	})
}

func TestCouponService_Update(t *testing.T) {
	ctx := context.Background()
	logger := zerolog.Nop()
	id := uuid.New()

	t.Run("rejects an expiry in the past", func(t *testing.T) {
		repo := new(MockCouponRepository)
		svc := NewCouponService(repo, logger)

		_, err := svc.Update(ctx, id, &model.CreateCouponRequest{
			Name:     "SUMMER15",
			Discount: 15,
			Expiry:   time.Now().Add(-time.Minute),
		})
		assert.ErrorIs(t, err, model.ErrCouponExpiryPast)
	})

	t.Run("unknown coupon", func(t *testing.T) {
		repo := new(MockCouponRepository)
		repo.On("GetByID", ctx, id).Return(nil, nil)

		svc := NewCouponService(repo, logger)

		_, err := svc.Update(ctx, id, &model.CreateCouponRequest{
			Name:     "SUMMER15",
			Discount: 15,
			Expiry:   time.Now().Add(time.Hour),
		})
		var derr *model.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, model.ErrCodeNotFound, derr.Code)
	})

	t.Run("replaces the coupon fields", func(t *testing.T) {
		expiry := time.Now().Add(48 * time.Hour)
		existing := &model.Coupon{ID: id, Name: "SUMMER10", Discount: 10, Expiry: time.Now().Add(time.Hour)}

		repo := new(MockCouponRepository)
		repo.On("GetByID", ctx, id).Return(existing, nil)
		repo.On("Update", ctx, mock.MatchedBy(func(c *model.Coupon) bool {
			return c.ID == id && c.Name == "SUMMER15" && c.Discount == 15 && c.Expiry.Equal(expiry)
		})).Return(nil)

		svc := NewCouponService(repo, logger)

		coupon, err := svc.Update(ctx, id, &model.CreateCouponRequest{
			Name:     "SUMMER15",
			Discount: 15,
			Expiry:   expiry,
		})
		require.NoError(t, err)
		assert.Equal(t, "SUMMER15", coupon.Name)
		repo.AssertExpectations(t)
	})
}

func TestCouponService_Delete(t *testing.T) {
	ctx := context.Background()
	logger := zerolog.Nop()
	id := uuid.New()

	t.Run("unknown coupon", func(t *testing.T) {
		repo := new(MockCouponRepository)
		repo.On("Delete", ctx, id).Return(false, nil)

		svc := NewCouponService(repo, logger)

		err := svc.Delete(ctx, id)
		var derr *model.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, model.ErrCodeNotFound, derr.Code)
	})

	t.Run("removes an existing coupon", func(t *testing.T) {
		repo := new(MockCouponRepository)
		repo.On("Delete", ctx, id).Return(true, nil)

		svc := NewCouponService(repo, logger)
		require.NoError(t, svc.Delete(ctx, id))
	})
}
