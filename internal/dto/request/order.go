package request

type PlaceOrderRequest struct {
	CustomerEmail string `json:"customer_email" validate:"required,email"`
	CustomerName  string `json:"customer_name,omitempty"`
	MedicineID    string `json:"medicine_id" validate:"required,uuid"`
	Quantity      int    `json:"quantity" validate:"required,min=1"`
}

type QuantityRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

type PaymentIntentRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

type ConfirmPaymentRequest struct {
	PaymentStatus string         `json:"payment_status" validate:"required,oneof=confirmed"`
	OrderStatus   string         `json:"order_status" validate:"required,oneof=confirmed"`
	Payment       map[string]any `json:"payment" validate:"required"`
	TransactionID string         `json:"transactionId" validate:"required"`
}
