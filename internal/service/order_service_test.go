package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"storefront/internal/model"
)

// MockOrderRepository is a mock implementation of repository.OrderRepository.
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) CreateWithLines(ctx context.Context, order *model.Order, lines []model.OrderLine) error {
	args := m.Called(ctx, order, lines)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (bool, error) {
	args := m.Called(ctx, id, status)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) SetPaymentSession(ctx context.Context, id uuid.UUID, sessionID string) error {
	args := m.Called(ctx, id, sessionID)
	return args.Error(0)
}

// MockPaymentClient is a mock implementation of payment.Client.
type MockPaymentClient struct {
	mock.Mock
}

func (m *MockPaymentClient) CreateSession(ctx context.Context, orderID uuid.UUID, amount float64) (string, error) {
	args := m.Called(ctx, orderID, amount)
	return args.String(0), args.Error(1)
}

func TestOrderService_Checkout(t *testing.T) {
	ctx := context.Background()
	logger := zerolog.Nop()
	userID := uuid.New()
	detailID := uuid.New()

	detail := &model.ProductDetail{ID: detailID, Name: "Tee Red M", Price: 20, Inventory: 10}

	t.Run("rejects an empty order", func(t *testing.T) {
		svc := NewOrderService(new(MockOrderRepository), new(MockProductDetailRepository), new(MockPaymentClient), nil, logger)

		_, err := svc.Checkout(ctx, userID, &model.CheckoutRequest{})
		assert.ErrorIs(t, err, model.ErrEmptyOrder)
	})

	t.Run("rejects an unknown detail", func(t *testing.T) {
		detailRepo := new(MockProductDetailRepository)
		detailRepo.On("GetByID", ctx, detailID).Return(nil, nil)

		svc := NewOrderService(new(MockOrderRepository), detailRepo, new(MockPaymentClient), nil, logger)

		_, err := svc.Checkout(ctx, userID, &model.CheckoutRequest{
			Lines: []model.CheckoutLineRequest{{ProductDetailID: detailID.String(), Quantity: 1}},
		})
		assert.ErrorIs(t, err, model.ErrDetailNotFound)
	})

	t.Run("computes the amount from detail prices", func(t *testing.T) {
		detailRepo := new(MockProductDetailRepository)
		detailRepo.On("GetByID", ctx, detailID).Return(detail, nil)

		orderRepo := new(MockOrderRepository)
		orderRepo.On("CreateWithLines", ctx, mock.MatchedBy(func(o *model.Order) bool {
			return o.OrderBy == userID && o.Status == model.StatusWaitingDelivery
		}), mock.MatchedBy(func(lines []model.OrderLine) bool {
			return len(lines) == 1 && lines[0].Quantity == 3
		})).Return(nil)
		orderRepo.On("SetPaymentSession", ctx, mock.Anything, "sess_123").Return(nil)

		payments := new(MockPaymentClient)
		payments.On("CreateSession", ctx, mock.Anything, 60.0).Return("sess_123", nil)

		svc := NewOrderService(orderRepo, detailRepo, payments, nil, logger)

		resp, err := svc.Checkout(ctx, userID, &model.CheckoutRequest{
			Lines: []model.CheckoutLineRequest{{ProductDetailID: detailID.String(), Quantity: 3}},
		})
		require.NoError(t, err)
		assert.Equal(t, "sess_123", resp.SessionID)
		orderRepo.AssertExpectations(t)
		payments.AssertExpectations(t)
	})

	t.Run("payment provider failure surfaces as unavailable", func(t *testing.T) {
		detailRepo := new(MockProductDetailRepository)
		detailRepo.On("GetByID", ctx, detailID).Return(detail, nil)

		orderRepo := new(MockOrderRepository)
		orderRepo.On("CreateWithLines", ctx, mock.Anything, mock.Anything).Return(nil)

		payments := new(MockPaymentClient)
		payments.On("CreateSession", ctx, mock.Anything, mock.Anything).Return("", errors.New("connection refused"))

		svc := NewOrderService(orderRepo, detailRepo, payments, nil, logger)

		_, err := svc.Checkout(ctx, userID, &model.CheckoutRequest{
			Lines: []model.CheckoutLineRequest{{ProductDetailID: detailID.String(), Quantity: 1}},
		})
		assert.ErrorIs(t, err, model.ErrPaymentUnavailable)
		orderRepo.AssertNotCalled(t, "SetPaymentSession", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestOrderService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	logger := zerolog.Nop()
	orderID := uuid.New()

	t.Run("rejects a status outside the enum", func(t *testing.T) {
		svc := NewOrderService(new(MockOrderRepository), new(MockProductDetailRepository), new(MockPaymentClient), nil, logger)

		err := svc.UpdateStatus(ctx, orderID, "Shipped To Mars")
		assert.ErrorIs(t, err, model.ErrInvalidOrderStatus)
	})

	t.Run("accepts any enum member regardless of current status", func(t *testing.T) {
		for _, status := range []string{
			model.StatusPending, model.StatusWaitingDelivery,
			model.StatusDelivering, model.StatusDone, model.StatusCancel,
		} {
			orderRepo := new(MockOrderRepository)
			orderRepo.On("UpdateStatus", ctx, orderID, status).Return(true, nil)

			svc := NewOrderService(orderRepo, new(MockProductDetailRepository), new(MockPaymentClient), nil, logger)
			require.NoError(t, svc.UpdateStatus(ctx, orderID, status))
		}
	})

	t.Run("missing order reports not found", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		orderRepo.On("UpdateStatus", ctx, orderID, model.StatusDone).Return(false, nil)

		svc := NewOrderService(orderRepo, new(MockProductDetailRepository), new(MockPaymentClient), nil, logger)

		err := svc.UpdateStatus(ctx, orderID, model.StatusDone)
		require.Error(t, err)

		var domainErr *model.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, model.ErrCodeNotFound, domainErr.Code)
	})
}
