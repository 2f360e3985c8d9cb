package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newCartOrder() *Order {
	return &Order{
		ID:            "c0a8b1e2-0000-4000-8000-000000000001",
		CustomerEmail: "buyer@x.com",
		SellerEmail:   "seller@x.com",
		Quantity:      1,
		OrderStatus:   OrderStatusPending,
		PaymentStatus: PaymentStatusPending,
	}
}

func TestConfirmPaymentMovesOrderOutOfCart(t *testing.T) {
	o := newCartOrder()
	require.True(t, o.IsCartItem())

	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	err := o.ConfirmPayment(OrderStatusConfirmed, map[string]any{"method": "card"}, "pi_123", at)
	require.NoError(t, err)

	require.False(t, o.IsCartItem())
	require.True(t, o.IsPaid())
	require.Equal(t, "pi_123", o.TransactionID)
	require.Equal(t, OrderStatusConfirmed, o.OrderStatus)
	require.NotNil(t, o.PaymentTime)
	require.True(t, at.Equal(*o.PaymentTime))
}

func TestConfirmPaymentOnlyOnce(t *testing.T) {
	o := newCartOrder()
	require.NoError(t, o.ConfirmPayment(OrderStatusConfirmed, nil, "pi_1", time.Now()))

	err := o.ConfirmPayment(OrderStatusConfirmed, nil, "pi_2", time.Now())
	require.ErrorIs(t, err, ErrInvalidStateTransition)
	require.Equal(t, "pi_1", o.TransactionID)
}

func TestConfirmPaymentRejectsPendingOrderStatus(t *testing.T) {
	o := newCartOrder()
	err := o.ConfirmPayment(OrderStatusPending, nil, "pi_1", time.Now())
	require.ErrorIs(t, err, ErrInvalidStateTransition)
	require.True(t, o.IsCartItem())
}

func TestReceiptRejectsCartMutations(t *testing.T) {
	o := newCartOrder()
	require.NoError(t, o.ChangeQuantity(3))
	require.Equal(t, 3, o.Quantity)
	require.ErrorIs(t, o.ChangeQuantity(0), ErrInvalidQuantity)

	require.NoError(t, o.ConfirmPayment(OrderStatusConfirmed, nil, "pi_1", time.Now()))
	require.ErrorIs(t, o.ChangeQuantity(5), ErrInvalidStateTransition)
	require.ErrorIs(t, o.CanRemove(), ErrInvalidStateTransition)
	require.Equal(t, 3, o.Quantity)
}

func TestOrderVisibility(t *testing.T) {
	o := newCartOrder()
	require.True(t, o.VisibleTo("buyer@x.com"))
	require.False(t, o.VisibleTo("seller@x.com"))

	require.NoError(t, o.ConfirmPayment(OrderStatusConfirmed, nil, "pi_1", time.Now()))
	require.True(t, o.VisibleTo("seller@x.com"))
	require.False(t, o.VisibleTo("other@x.com"))
}
