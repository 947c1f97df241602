package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"storefront/internal/model"
)

// MockCartRepository is a mock implementation of repository.CartRepository.
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) Upsert(ctx context.Context, line *model.CartLine) error {
	args := m.Called(ctx, line)
	return args.Error(0)
}

func (m *MockCartRepository) Delete(ctx context.Context, userID, lineID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, lineID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCartRepository) Clear(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockProductDetailRepository is a mock implementation of
// repository.ProductDetailRepository.
type MockProductDetailRepository struct {
	mock.Mock
}

func (m *MockProductDetailRepository) Create(ctx context.Context, d *model.ProductDetail) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockProductDetailRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.ProductDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProductDetail), args.Error(1)
}

func (m *MockProductDetailRepository) Update(ctx context.Context, d *model.ProductDetail) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockProductDetailRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductDetailRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockVariationRepository is a mock implementation of
// repository.VariationRepository.
type MockVariationRepository struct {
	mock.Mock
}

func (m *MockVariationRepository) CreateVariation(ctx context.Context, v *model.Variation) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockVariationRepository) ListVariations(ctx context.Context, categoryID *uuid.UUID) ([]model.Variation, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Variation), args.Error(1)
}

func (m *MockVariationRepository) DeleteVariation(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockVariationRepository) VariationExists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockVariationRepository) CreateOption(ctx context.Context, o *model.VariationOption) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockVariationRepository) ListOptions(ctx context.Context, variationID *uuid.UUID) ([]model.VariationOption, error) {
	args := m.Called(ctx, variationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.VariationOption), args.Error(1)
}

func (m *MockVariationRepository) DeleteOption(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockVariationRepository) OptionsExist(ctx context.Context, ids []uuid.UUID) (bool, error) {
	args := m.Called(ctx, ids)
	return args.Bool(0), args.Error(1)
}

func TestCartService_Add(t *testing.T) {
	ctx := context.Background()
	logger := zerolog.Nop()
	userID := uuid.New()
	detailID := uuid.New()
	optionID := uuid.New()

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		svc := NewCartService(new(MockCartRepository), new(MockProductDetailRepository), new(MockVariationRepository), nil, logger)

		err := svc.Add(ctx, userID, &model.AddCartLineRequest{
			ProductDetailID: detailID.String(),
			Quantity:        0,
		})
		assert.ErrorIs(t, err, model.ErrInvalidQuantity)
	})

	t.Run("rejects malformed detail id", func(t *testing.T) {
		svc := NewCartService(new(MockCartRepository), new(MockProductDetailRepository), new(MockVariationRepository), nil, logger)

		err := svc.Add(ctx, userID, &model.AddCartLineRequest{
			ProductDetailID: "not-a-uuid",
			Quantity:        1,
		})
		assert.ErrorIs(t, err, model.ErrInvalidID)
	})

	t.Run("rejects unknown detail", func(t *testing.T) {
		detailRepo := new(MockProductDetailRepository)
		detailRepo.On("Exists", ctx, detailID).Return(false, nil)

		svc := NewCartService(new(MockCartRepository), detailRepo, new(MockVariationRepository), nil, logger)

		err := svc.Add(ctx, userID, &model.AddCartLineRequest{
			ProductDetailID: detailID.String(),
			Quantity:        1,
		})
		assert.ErrorIs(t, err, model.ErrDetailNotFound)
		detailRepo.AssertExpectations(t)
	})

	t.Run("rejects dangling option references", func(t *testing.T) {
		detailRepo := new(MockProductDetailRepository)
		detailRepo.On("Exists", ctx, detailID).Return(true, nil)
		varRepo := new(MockVariationRepository)
		varRepo.On("OptionsExist", ctx, []uuid.UUID{optionID}).Return(false, nil)

		svc := NewCartService(new(MockCartRepository), detailRepo, varRepo, nil, logger)

		err := svc.Add(ctx, userID, &model.AddCartLineRequest{
			ProductDetailID:    detailID.String(),
			VariationOptionIDs: []string{optionID.String()},
			Quantity:           1,
		})
		assert.ErrorIs(t, err, model.ErrDanglingOptionRef)
		varRepo.AssertExpectations(t)
	})

	t.Run("upserts a valid line", func(t *testing.T) {
		detailRepo := new(MockProductDetailRepository)
		detailRepo.On("Exists", ctx, detailID).Return(true, nil)
		varRepo := new(MockVariationRepository)
		varRepo.On("OptionsExist", ctx, []uuid.UUID{optionID}).Return(true, nil)

		cartRepo := new(MockCartRepository)
		cartRepo.On("Upsert", ctx, mock.MatchedBy(func(line *model.CartLine) bool {
			return line.UserID == userID &&
				line.ProductDetailID == detailID &&
				len(line.OptionIDs) == 1 && line.OptionIDs[0] == optionID &&
				line.Quantity == 3
		})).Return(nil)

		svc := NewCartService(cartRepo, detailRepo, varRepo, nil, logger)

		err := svc.Add(ctx, userID, &model.AddCartLineRequest{
			ProductDetailID:    detailID.String(),
			VariationOptionIDs: []string{optionID.String()},
			Quantity:           3,
		})
		require.NoError(t, err)
		cartRepo.AssertExpectations(t)
	})

	t.Run("skips option lookup when no options given", func(t *testing.T) {
		detailRepo := new(MockProductDetailRepository)
		detailRepo.On("Exists", ctx, detailID).Return(true, nil)
		varRepo := new(MockVariationRepository)
		cartRepo := new(MockCartRepository)
		cartRepo.On("Upsert", ctx, mock.Anything).Return(nil)

		svc := NewCartService(cartRepo, detailRepo, varRepo, nil, logger)

		err := svc.Add(ctx, userID, &model.AddCartLineRequest{
			ProductDetailID: detailID.String(),
			Quantity:        1,
		})
		require.NoError(t, err)
		varRepo.AssertNotCalled(t, "OptionsExist", mock.Anything, mock.Anything)
	})
}

func TestCartService_Remove(t *testing.T) {
	ctx := context.Background()
	logger := zerolog.Nop()
	userID := uuid.New()
	lineID := uuid.New()

	t.Run("missing line reports not found", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		cartRepo.On("Delete", ctx, userID, lineID).Return(false, nil)

		svc := NewCartService(cartRepo, new(MockProductDetailRepository), new(MockVariationRepository), nil, logger)

		err := svc.Remove(ctx, userID, lineID)
		assert.ErrorIs(t, err, model.ErrCartLineNotFound)
	})

	t.Run("existing line is removed", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		cartRepo.On("Delete", ctx, userID, lineID).Return(true, nil)

		svc := NewCartService(cartRepo, new(MockProductDetailRepository), new(MockVariationRepository), nil, logger)

		require.NoError(t, svc.Remove(ctx, userID, lineID))
	})
}
