package entity

import (
	"errors"
	"time"
)

var (
	ErrInvalidStateTransition = errors.New("order: invalid state transition")
	ErrInvalidQuantity        = errors.New("order: quantity must be greater than zero")
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusConfirmed PaymentStatus = "confirmed"
)

// Order is a cart line while payment is pending and a receipt once paid.
type Order struct {
	ID            string         `json:"id" db:"id" bson:"_id"`
	CustomerEmail string         `json:"customer_email" db:"customer_email" bson:"customer_email"`
	CustomerName  string         `json:"customer_name,omitempty" db:"customer_name" bson:"customer_name,omitempty"`
	SellerEmail   string         `json:"seller_email" db:"seller_email" bson:"seller_email"`
	SellerName    string         `json:"seller_name,omitempty" db:"seller_name" bson:"seller_name,omitempty"`
	MedicineID    string         `json:"medicine_id" db:"medicine_id" bson:"medicine_id"`
	MedicineName  string         `json:"medicine_name" db:"medicine_name" bson:"medicine_name"`
	Image         string         `json:"image,omitempty" db:"image" bson:"image,omitempty"`
	Category      string         `json:"category,omitempty" db:"category" bson:"category,omitempty"`
	Company       string         `json:"company,omitempty" db:"company" bson:"company,omitempty"`
	Price         float64        `json:"price" db:"price" bson:"price"`
	Discount      float64        `json:"discount" db:"discount" bson:"discount"`
	Quantity      int            `json:"quantity" db:"quantity" bson:"quantity"`
	OrderStatus   OrderStatus    `json:"order_status" db:"order_status" bson:"order_status"`
	PaymentStatus PaymentStatus  `json:"payment_status" db:"payment_status" bson:"payment_status"`
	OrderTime     time.Time      `json:"order_time" db:"order_time" bson:"order_time"`
	Payment       map[string]any `json:"payment,omitempty" db:"payment" bson:"payment,omitempty"`
	TransactionID string         `json:"transactionId,omitempty" db:"transaction_id" bson:"transactionId,omitempty"`
	PaymentTime   *time.Time     `json:"payment_time,omitempty" db:"payment_time" bson:"payment_time,omitempty"`
}

// IsCartItem reports whether the order is still an unpaid cart line.
func (o *Order) IsCartItem() bool {
	return o.OrderStatus == OrderStatusPending && o.PaymentStatus == PaymentStatusPending
}

func (o *Order) IsPaid() bool {
	return o.PaymentStatus == PaymentStatusConfirmed
}

// ChangeQuantity is only allowed while the order is a cart line.
func (o *Order) ChangeQuantity(quantity int) error {
	if o.IsPaid() {
		return ErrInvalidStateTransition
	}
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	o.Quantity = quantity
	return nil
}

// CanRemove guards cart removal; receipts are never deleted through the cart.
func (o *Order) CanRemove() error {
	if o.IsPaid() {
		return ErrInvalidStateTransition
	}
	return nil
}

// ConfirmPayment is the single pending -> confirmed transition.
func (o *Order) ConfirmPayment(orderStatus OrderStatus, payment map[string]any, transactionID string, at time.Time) error {
	if o.IsPaid() {
		return ErrInvalidStateTransition
	}
	if orderStatus == OrderStatusPending {
		return ErrInvalidStateTransition
	}

	o.PaymentStatus = PaymentStatusConfirmed
	o.OrderStatus = orderStatus
	o.Payment = payment
	o.TransactionID = transactionID
	paidAt := at
	o.PaymentTime = &paidAt
	return nil
}

// VisibleTo reports whether the email may read this order. Admin access is
// decided by the caller.
func (o *Order) VisibleTo(email string) bool {
	if o.CustomerEmail == email {
		return true
	}
	return o.IsPaid() && o.SellerEmail == email
}
