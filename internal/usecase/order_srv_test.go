package usecase

import (
	"context"
	"testing"

	"healthhive/internal/apperr"
	"healthhive/internal/data/entity"
	"healthhive/internal/dto/request"
	"healthhive/internal/gateway"

	"github.com/stretchr/testify/require"
)

func newOrderEnv(t *testing.T) (*testEnv, string) {
	t.Helper()
	env := newTestEnv(t)
	env.register(t, "seller@x.com", entity.RoleSeller, entity.StatusApproved, "")
	env.register(t, "admin@x.com", entity.RoleAdmin, entity.StatusApproved, "")
	env.register(t, "buyer@x.com", entity.RoleUser, entity.StatusPending, "")
	return env, env.listing(t, "seller@x.com", 0)
}

func TestOrderService_PlaceOrderCopiesListing(t *testing.T) {
	env, medicineID := newOrderEnv(t)
	ctx := context.Background()

	o, err := env.svc.Order.PlaceOrder(ctx, &request.PlaceOrderRequest{
		CustomerEmail: "buyer@x.com",
		MedicineID:    medicineID,
		Quantity:      2,
	})
	require.NoError(t, err)
	require.Equal(t, "seller@x.com", o.SellerEmail)
	require.Equal(t, "Paracetamol", o.MedicineName)
	require.Equal(t, 12.5, o.Price)
	require.Equal(t, entity.OrderStatusPending, o.OrderStatus)
	require.Equal(t, entity.PaymentStatusPending, o.PaymentStatus)
	require.False(t, o.OrderTime.IsZero())

	_, err = env.svc.Order.PlaceOrder(ctx, &request.PlaceOrderRequest{
		CustomerEmail: "buyer@x.com",
		MedicineID:    "7f1b8c1e-0000-4000-8000-000000000000",
		Quantity:      1,
	})
	require.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = env.svc.Order.PlaceOrder(ctx, &request.PlaceOrderRequest{
		CustomerEmail: "buyer@x.com",
		MedicineID:    medicineID,
	})
	require.ErrorIs(t, err, apperr.ErrValidation)
}

func TestOrderService_Lifecycle(t *testing.T) {
	env, medicineID := newOrderEnv(t)
	ctx := context.Background()
	id := env.order(t, "buyer@x.com", medicineID)

	cart, err := env.svc.Order.ListCart(ctx, "buyer@x.com")
	require.NoError(t, err)
	require.Len(t, cart, 1)

	again, err := env.svc.Order.ListCart(ctx, "buyer@x.com")
	require.NoError(t, err)
	require.Equal(t, cart, again)

	history, err := env.svc.Order.PaymentHistory(ctx, "buyer@x.com")
	require.NoError(t, err)
	require.Empty(t, history)

	updated, err := env.svc.Order.UpdateQuantity(ctx, id, &request.QuantityRequest{Quantity: 3})
	require.NoError(t, err)
	require.Equal(t, 3, updated.Quantity)

	paid, err := env.svc.Order.ConfirmPayment(ctx, id, confirmRequest("tx-1"))
	require.NoError(t, err)
	require.Equal(t, entity.PaymentStatusConfirmed, paid.PaymentStatus)
	require.NotNil(t, paid.PaymentTime)
	require.Equal(t, "tx-1", paid.TransactionID)

	cart, err = env.svc.Order.ListCart(ctx, "buyer@x.com")
	require.NoError(t, err)
	require.Empty(t, cart)

	history, err = env.svc.Order.PaymentHistory(ctx, "buyer@x.com")
	require.NoError(t, err)
	require.Len(t, history, 1)

	sellerHistory, err := env.svc.Order.SellerPaymentHistory(ctx, "seller@x.com")
	require.NoError(t, err)
	require.Len(t, sellerHistory, 1)

	all, err := env.svc.Order.AdminAllConfirmed(ctx, "admin@x.com")
	require.NoError(t, err)
	require.Len(t, all, 1)

	_, err = env.svc.Order.AdminAllConfirmed(ctx, "buyer@x.com")
	require.ErrorIs(t, err, apperr.ErrForbidden)

	require.Contains(t, env.events.Types(), gateway.EventOrderPlaced)
	require.Contains(t, env.events.Types(), gateway.EventPaymentConfirmed)
}

func TestOrderService_ReceiptIsImmutable(t *testing.T) {
	env, medicineID := newOrderEnv(t)
	ctx := context.Background()
	id := env.order(t, "buyer@x.com", medicineID)

	_, err := env.svc.Order.ConfirmPayment(ctx, id, confirmRequest("tx-1"))
	require.NoError(t, err)

	_, err = env.svc.Order.ConfirmPayment(ctx, id, confirmRequest("tx-2"))
	require.ErrorIs(t, err, apperr.ErrConflict)

	_, err = env.svc.Order.UpdateQuantity(ctx, id, &request.QuantityRequest{Quantity: 9})
	require.ErrorIs(t, err, apperr.ErrConflict)

	require.ErrorIs(t, env.svc.Order.RemoveItem(ctx, id), apperr.ErrConflict)

	stored, err := env.repo.Order.FindByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, 1, stored.Quantity)
	require.Equal(t, "tx-1", stored.TransactionID)
}

func TestOrderService_ClearCart(t *testing.T) {
	env, medicineID := newOrderEnv(t)
	ctx := context.Background()

	env.order(t, "buyer@x.com", medicineID)
	env.order(t, "buyer@x.com", medicineID)
	paidID := env.order(t, "buyer@x.com", medicineID)
	otherID := env.order(t, "other@x.com", medicineID)

	_, err := env.svc.Order.ConfirmPayment(ctx, paidID, confirmRequest("tx"))
	require.NoError(t, err)

	n, err := env.svc.Order.ClearCart(ctx, "buyer@x.com")
	require.NoError(t, err)
	require.EqualValues(t, 2, n)

	paid, err := env.repo.Order.FindByID(ctx, paidID)
	require.NoError(t, err)
	require.NotNil(t, paid)

	other, err := env.repo.Order.FindByID(ctx, otherID)
	require.NoError(t, err)
	require.NotNil(t, other)
}

func TestOrderService_RemoveAndValidation(t *testing.T) {
	env, medicineID := newOrderEnv(t)
	ctx := context.Background()
	id := env.order(t, "buyer@x.com", medicineID)

	require.ErrorIs(t, env.svc.Order.RemoveItem(ctx, "bad-id"), apperr.ErrValidation)
	require.NoError(t, env.svc.Order.RemoveItem(ctx, id))
	require.ErrorIs(t, env.svc.Order.RemoveItem(ctx, id), apperr.ErrNotFound)

	_, err := env.svc.Order.UpdateQuantity(ctx, id, &request.QuantityRequest{Quantity: 0})
	require.ErrorIs(t, err, apperr.ErrValidation)

	_, err = env.svc.Order.ConfirmPayment(ctx, "bad-id", confirmRequest("tx"))
	require.ErrorIs(t, err, apperr.ErrValidation)

	_, err = env.svc.Order.ConfirmPayment(ctx, id, &request.ConfirmPaymentRequest{PaymentStatus: "confirmed"})
	require.ErrorIs(t, err, apperr.ErrValidation)

	_, err = env.svc.Order.ConfirmPayment(ctx, id, confirmRequest("tx"))
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestOrderService_GetOrderVisibility(t *testing.T) {
	env, medicineID := newOrderEnv(t)
	ctx := context.Background()
	id := env.order(t, "buyer@x.com", medicineID)

	_, err := env.svc.Order.GetOrder(ctx, "bad-id", "buyer@x.com")
	require.ErrorIs(t, err, apperr.ErrValidation)

	_, err = env.svc.Order.GetOrder(ctx, id, "buyer@x.com")
	require.NoError(t, err)

	// the seller only sees the order once it is a receipt
	_, err = env.svc.Order.GetOrder(ctx, id, "seller@x.com")
	require.ErrorIs(t, err, apperr.ErrForbidden)

	_, err = env.svc.Order.GetOrder(ctx, id, "stranger@x.com")
	require.ErrorIs(t, err, apperr.ErrForbidden)

	// a cart line stays private to its customer, admins included
	_, err = env.svc.Order.GetOrder(ctx, id, "admin@x.com")
	require.ErrorIs(t, err, apperr.ErrForbidden)

	_, err = env.svc.Order.ConfirmPayment(ctx, id, confirmRequest("tx"))
	require.NoError(t, err)

	_, err = env.svc.Order.GetOrder(ctx, id, "seller@x.com")
	require.NoError(t, err)

	_, err = env.svc.Order.GetOrder(ctx, id, "admin@x.com")
	require.NoError(t, err)
}

func TestOrderService_CreatePaymentIntent(t *testing.T) {
	env, _ := newOrderEnv(t)
	ctx := context.Background()

	resp, err := env.svc.Order.CreatePaymentIntent(ctx, &request.PaymentIntentRequest{Amount: 19.99})
	require.NoError(t, err)
	require.Equal(t, "pi_secret_usd", resp.ClientSecret)
	require.EqualValues(t, 1999, resp.AmountMinor)
	require.Equal(t, []int64{1999}, env.payments.amounts)

	_, err = env.svc.Order.CreatePaymentIntent(ctx, &request.PaymentIntentRequest{Amount: 0.001})
	require.ErrorIs(t, err, apperr.ErrValidation)

	_, err = env.svc.Order.CreatePaymentIntent(ctx, &request.PaymentIntentRequest{Amount: 1e18})
	require.ErrorIs(t, err, apperr.ErrValidation)
	require.Equal(t, []int64{1999}, env.payments.amounts)

	env.payments.err = errBoom
	_, err = env.svc.Order.CreatePaymentIntent(ctx, &request.PaymentIntentRequest{Amount: 5})
	require.ErrorIs(t, err, apperr.ErrInternal)
}
