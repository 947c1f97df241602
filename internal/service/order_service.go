package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"storefront/internal/model"
	"storefront/internal/payment"
	"storefront/internal/query"
	"storefront/internal/readmodel"
	"storefront/internal/repository"
)

// orderService implements OrderService.
type orderService struct {
	orderRepo  repository.OrderRepository
	detailRepo repository.ProductDetailRepository
	payments   payment.Client
	reader     *readmodel.Reader
	logger     zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	detailRepo repository.ProductDetailRepository,
	payments payment.Client,
	reader *readmodel.Reader,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo:  orderRepo,
		detailRepo: detailRepo,
		payments:   payments,
		reader:     reader,
		logger:     logger.With().Str("service", "order").Logger(),
	}
}

// Checkout persists the order with its lines and creates a payment session.
// The order lands in "Waiting Delivering" awaiting payment confirmation; the
// session id is recorded on the order once the provider answers.
func (s *orderService) Checkout(ctx context.Context, userID uuid.UUID, req *model.CheckoutRequest) (*model.CheckoutResponse, error) {
	if len(req.Lines) == 0 {
		return nil, model.ErrEmptyOrder
	}

	orderID := uuid.New()
	var amount float64
	lines := make([]model.OrderLine, 0, len(req.Lines))
	for _, lr := range req.Lines {
		if lr.Quantity <= 0 {
			return nil, model.ErrInvalidQuantity
		}
		detailID, err := uuid.Parse(lr.ProductDetailID)
		if err != nil {
			return nil, model.ErrInvalidID
		}

		detail, err := s.detailRepo.GetByID(ctx, detailID)
		if err != nil {
			return nil, err
		}
		if detail == nil {
			return nil, model.ErrDetailNotFound
		}
		amount += detail.Price * float64(lr.Quantity)

		line := model.OrderLine{
			ID:              uuid.New(),
			OrderID:         orderID,
			ProductDetailID: detailID,
			Quantity:        lr.Quantity,
		}
		if lr.VariationOptionID != "" {
			optionID, err := uuid.Parse(lr.VariationOptionID)
			if err != nil {
				return nil, model.ErrInvalidID
			}
			line.VariationOptionID = &optionID
		}
		lines = append(lines, line)
	}

	now := time.Now().UTC()
	order := &model.Order{
		ID:        orderID,
		OrderBy:   userID,
		Status:    model.StatusWaitingDelivery,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.orderRepo.CreateWithLines(ctx, order, lines); err != nil {
		return nil, err
	}

	sessionID, err := s.payments.CreateSession(ctx, orderID, amount)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", orderID.String()).Msg("payment session creation failed")
		return nil, model.ErrPaymentUnavailable
	}

	if err := s.orderRepo.SetPaymentSession(ctx, orderID, sessionID); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("order_id", orderID.String()).
		Str("user_id", userID.String()).
		Int("lines", len(lines)).
		Float64("amount", amount).
		Msg("order checked out")

	return &model.CheckoutResponse{OrderID: orderID, SessionID: sessionID}, nil
}

// ListForUser retrieves a page of the user's orders with lines resolved.
func (s *orderService) ListForUser(ctx context.Context, userID uuid.UUID, opts query.Options) ([]readmodel.OrderView, int, error) {
	return s.reader.OrdersForUser(ctx, userID, opts)
}

// GetByID retrieves one order with lines resolved.
func (s *orderService) GetByID(ctx context.Context, id uuid.UUID) (*readmodel.OrderView, error) {
	view, err := s.reader.OrderByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if view == nil {
		return nil, model.NotFound("Order")
	}
	return view, nil
}

// UpdateStatus sets the order status. Any member of the enum is accepted
// from any current status.
func (s *orderService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	if !model.ValidOrderStatus(status) {
		return model.ErrInvalidOrderStatus
	}

	found, err := s.orderRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		return err
	}
	if !found {
		return model.NotFound("Order")
	}

	s.logger.Info().Str("order_id", id.String()).Str("status", status).Msg("order status updated")
	return nil
}
