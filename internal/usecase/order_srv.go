package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"healthhive/internal/apperr"
	"healthhive/internal/authz"
	"healthhive/internal/data/entity"
	"healthhive/internal/data/repository"
	"healthhive/internal/dto/request"
	"healthhive/internal/dto/response"
	"healthhive/internal/gateway"
	"healthhive/pkg/utils"

	"go.uber.org/zap"
)

type OrderService interface {
	PlaceOrder(ctx context.Context, req *request.PlaceOrderRequest) (*response.OrderResponse, error)
	ListCart(ctx context.Context, customerEmail string) ([]response.OrderResponse, error)
	UpdateQuantity(ctx context.Context, id string, req *request.QuantityRequest) (*response.OrderResponse, error)
	RemoveItem(ctx context.Context, id string) error
	ClearCart(ctx context.Context, customerEmail string) (int64, error)
	GetOrder(ctx context.Context, id, caller string) (*response.OrderResponse, error)

	// Payment
	CreatePaymentIntent(ctx context.Context, req *request.PaymentIntentRequest) (*response.PaymentIntentResponse, error)
	ConfirmPayment(ctx context.Context, id string, req *request.ConfirmPaymentRequest) (*response.OrderResponse, error)
	PaymentHistory(ctx context.Context, customerEmail string) ([]response.OrderResponse, error)
	SellerPaymentHistory(ctx context.Context, sellerEmail string) ([]response.OrderResponse, error)
	AdminAllConfirmed(ctx context.Context, admin string) ([]response.OrderResponse, error)
}

type orderService struct {
	repo     *repository.Repository
	policy   *authz.Policy
	payments gateway.PaymentGateway
	currency string
	events   events
	log      *zap.Logger
	now      func() time.Time
}

func NewOrderService(deps Dependencies) OrderService {
	log := deps.Log.With(zap.String("service", "order"))
	currency := "usd"
	if deps.Config != nil && deps.Config.Payment.Currency != "" {
		currency = deps.Config.Payment.Currency
	}
	return &orderService{
		repo:     deps.Repo,
		policy:   deps.Policy,
		payments: deps.Payments,
		currency: currency,
		events:   events{publisher: deps.Events, log: log},
		log:      log,
		now:      time.Now,
	}
}

// PlaceOrder adds a cart line. Item details are copied from the listing and
// the order always starts pending/pending.
func (s *orderService) PlaceOrder(ctx context.Context, req *request.PlaceOrderRequest) (*response.OrderResponse, error) {
	if err := validate(req); err != nil {
		s.log.Warn("Place order validation failed", zap.Error(err))
		return nil, err
	}

	medicine, err := s.repo.Medicine.FindByID(ctx, req.MedicineID)
	if err != nil {
		return nil, internalErr(s.log, "failed to load medicine", err)
	}
	if medicine == nil {
		return nil, fmt.Errorf("%w: medicine not found", apperr.ErrNotFound)
	}

	order := &entity.Order{
		ID:            utils.NewID(),
		CustomerEmail: req.CustomerEmail,
		CustomerName:  req.CustomerName,
		SellerEmail:   medicine.SellerEmail,
		SellerName:    medicine.SellerName,
		MedicineID:    medicine.ID,
		MedicineName:  medicine.Name,
		Image:         medicine.Image,
		Category:      medicine.Category,
		Company:       medicine.Company,
		Price:         medicine.Price,
		Discount:      medicine.Discount,
		Quantity:      req.Quantity,
		OrderStatus:   entity.OrderStatusPending,
		PaymentStatus: entity.PaymentStatusPending,
		OrderTime:     s.now().UTC(),
	}

	if err := s.repo.Order.Create(ctx, order); err != nil {
		return nil, internalErr(s.log, "failed to place order", err)
	}

	s.log.Info("Order placed",
		zap.String("order_id", order.ID),
		zap.String("customer_email", order.CustomerEmail),
		zap.String("medicine_id", order.MedicineID),
	)
	s.events.publish(ctx, gateway.EventOrderPlaced, order.ID, map[string]any{
		"customer_email": order.CustomerEmail,
		"seller_email":   order.SellerEmail,
		"medicine_id":    order.MedicineID,
		"quantity":       order.Quantity,
	})

	resp := response.OrderToResponse(order)
	return &resp, nil
}

func (s *orderService) ListCart(ctx context.Context, customerEmail string) ([]response.OrderResponse, error) {
	return s.find(ctx, repository.OrderFilter{
		CustomerEmail: customerEmail,
		OrderStatus:   entity.OrderStatusPending,
		PaymentStatus: entity.PaymentStatusPending,
	})
}

func (s *orderService) UpdateQuantity(ctx context.Context, id string, req *request.QuantityRequest) (*response.OrderResponse, error) {
	if err := validID("order", id); err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		return nil, err
	}

	order, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := order.ChangeQuantity(req.Quantity); err != nil {
		return nil, s.transitionErr(order, err)
	}

	if err := s.repo.Order.UpdatePendingQuantity(ctx, id, order.Quantity); err != nil {
		return nil, s.writeErr(id, "failed to update quantity", err)
	}

	resp := response.OrderToResponse(order)
	return &resp, nil
}

func (s *orderService) RemoveItem(ctx context.Context, id string) error {
	if err := validID("order", id); err != nil {
		return err
	}

	order, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := order.CanRemove(); err != nil {
		return s.transitionErr(order, err)
	}

	if err := s.repo.Order.DeletePending(ctx, id); err != nil {
		return s.writeErr(id, "failed to remove cart item", err)
	}
	return nil
}

func (s *orderService) ClearCart(ctx context.Context, customerEmail string) (int64, error) {
	deleted, err := s.repo.Order.DeleteCart(ctx, customerEmail)
	if err != nil {
		return 0, internalErr(s.log, "failed to clear cart", err)
	}

	s.log.Info("Cart cleared", zap.String("customer_email", customerEmail), zap.Int64("deleted", deleted))
	return deleted, nil
}

// GetOrder returns a cart line only to its customer, and a receipt to its
// customer, its seller or an admin.
func (s *orderService) GetOrder(ctx context.Context, id, caller string) (*response.OrderResponse, error) {
	if err := validID("order", id); err != nil {
		return nil, err
	}

	order, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if !order.VisibleTo(caller) {
		if !order.IsPaid() {
			return nil, fmt.Errorf("%w: forbidden access", apperr.ErrForbidden)
		}
		admin, err := s.policy.IsAdmin(ctx, caller)
		if err != nil {
			return nil, err
		}
		if !admin {
			return nil, fmt.Errorf("%w: forbidden access", apperr.ErrForbidden)
		}
	}

	resp := response.OrderToResponse(order)
	return &resp, nil
}

func (s *orderService) CreatePaymentIntent(ctx context.Context, req *request.PaymentIntentRequest) (*response.PaymentIntentResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	amountMinor, err := gateway.ToMinorUnits(req.Amount)
	if err != nil {
		s.log.Warn("Payment amount out of range", zap.Float64("amount", req.Amount))
		return nil, apperr.Validation(err.Error(), map[string]string{"amount": "Exceeds the maximum payable amount"})
	}
	if amountMinor <= 0 {
		return nil, apperr.Validation("amount is below the smallest currency unit",
			map[string]string{"amount": "Must be greater than 0"})
	}

	secret, err := s.payments.CreateIntent(ctx, amountMinor, s.currency)
	if err != nil {
		return nil, internalErr(s.log, "failed to create payment intent", err)
	}

	s.log.Info("Payment intent created", zap.Int64("amount_minor", amountMinor), zap.String("currency", s.currency))
	return &response.PaymentIntentResponse{
		ClientSecret: secret,
		AmountMinor:  amountMinor,
		Currency:     s.currency,
	}, nil
}

// ConfirmPayment is the single pending -> confirmed transition. A second
// confirmation of the same order is a Conflict.
func (s *orderService) ConfirmPayment(ctx context.Context, id string, req *request.ConfirmPaymentRequest) (*response.OrderResponse, error) {
	if err := validID("order", id); err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		return nil, err
	}

	order, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	err = order.ConfirmPayment(entity.OrderStatus(req.OrderStatus), req.Payment, req.TransactionID, s.now().UTC())
	if err != nil {
		return nil, s.transitionErr(order, err)
	}

	if err := s.repo.Order.ConfirmPayment(ctx, order); err != nil {
		return nil, s.writeErr(id, "failed to confirm payment", err)
	}

	s.log.Info("Payment confirmed",
		zap.String("order_id", order.ID),
		zap.String("customer_email", order.CustomerEmail),
		zap.String("transaction_id", order.TransactionID),
	)
	s.events.publish(ctx, gateway.EventPaymentConfirmed, order.ID, map[string]any{
		"customer_email": order.CustomerEmail,
		"seller_email":   order.SellerEmail,
		"transaction_id": order.TransactionID,
	})

	resp := response.OrderToResponse(order)
	return &resp, nil
}

func (s *orderService) PaymentHistory(ctx context.Context, customerEmail string) ([]response.OrderResponse, error) {
	return s.find(ctx, repository.OrderFilter{
		CustomerEmail:   customerEmail,
		PaymentStatus:   entity.PaymentStatusConfirmed,
		NewestPaidFirst: true,
	})
}

func (s *orderService) SellerPaymentHistory(ctx context.Context, sellerEmail string) ([]response.OrderResponse, error) {
	return s.find(ctx, repository.OrderFilter{
		SellerEmail:     sellerEmail,
		PaymentStatus:   entity.PaymentStatusConfirmed,
		NewestPaidFirst: true,
	})
}

func (s *orderService) AdminAllConfirmed(ctx context.Context, admin string) ([]response.OrderResponse, error) {
	if _, err := s.policy.RequireRole(ctx, admin, entity.RoleAdmin); err != nil {
		return nil, err
	}
	return s.find(ctx, repository.OrderFilter{
		PaymentStatus:   entity.PaymentStatusConfirmed,
		NewestPaidFirst: true,
	})
}

func (s *orderService) load(ctx context.Context, id string) (*entity.Order, error) {
	order, err := s.repo.Order.FindByID(ctx, id)
	if err != nil {
		return nil, internalErr(s.log, "failed to load order", err)
	}
	if order == nil {
		return nil, fmt.Errorf("%w: order not found", apperr.ErrNotFound)
	}
	return order, nil
}

func (s *orderService) find(ctx context.Context, filter repository.OrderFilter) ([]response.OrderResponse, error) {
	orders, err := s.repo.Order.Find(ctx, filter)
	if err != nil {
		return nil, internalErr(s.log, "failed to list orders", err)
	}
	return response.OrdersToResponse(orders), nil
}

func (s *orderService) transitionErr(order *entity.Order, err error) error {
	switch {
	case errors.Is(err, entity.ErrInvalidQuantity):
		return apperr.Validation(err.Error(), map[string]string{"quantity": "Minimum value is 1"})
	case errors.Is(err, entity.ErrInvalidStateTransition):
		s.log.Warn("Rejected order transition",
			zap.String("order_id", order.ID),
			zap.String("payment_status", string(order.PaymentStatus)),
		)
		return fmt.Errorf("%w: order payment already confirmed", apperr.ErrConflict)
	default:
		return internalErr(s.log, "order transition failed", err)
	}
}

// writeErr maps a conditional write that matched nothing: the order was paid
// or removed between the read and the write.
func (s *orderService) writeErr(id, msg string, err error) error {
	if errors.Is(err, repository.ErrStateChanged) {
		s.log.Warn("Order changed concurrently", zap.String("order_id", id))
		return fmt.Errorf("%w: order is no longer in the cart", apperr.ErrConflict)
	}
	return internalErr(s.log, msg, err)
}
