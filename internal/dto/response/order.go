package response

import (
	"time"

	"healthhive/internal/data/entity"
)

type OrderResponse struct {
	ID            string               `json:"id"`
	CustomerEmail string               `json:"customer_email"`
	CustomerName  string               `json:"customer_name,omitempty"`
	SellerEmail   string               `json:"seller_email"`
	SellerName    string               `json:"seller_name,omitempty"`
	MedicineID    string               `json:"medicine_id"`
	MedicineName  string               `json:"medicine_name"`
	Image         string               `json:"image,omitempty"`
	Category      string               `json:"category,omitempty"`
	Company       string               `json:"company,omitempty"`
	Price         float64              `json:"price"`
	Discount      float64              `json:"discount"`
	Quantity      int                  `json:"quantity"`
	OrderStatus   entity.OrderStatus   `json:"order_status"`
	PaymentStatus entity.PaymentStatus `json:"payment_status"`
	OrderTime     time.Time            `json:"order_time"`
	Payment       map[string]any       `json:"payment,omitempty"`
	TransactionID string               `json:"transactionId,omitempty"`
	PaymentTime   *time.Time           `json:"payment_time,omitempty"`
}

type ClearCartResponse struct {
	DeletedCount int64 `json:"deleted_count"`
}

type PaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
	AmountMinor  int64  `json:"amount_minor"`
	Currency     string `json:"currency"`
}

type PaymentHistoryResponse struct {
	Payments []OrderResponse `json:"payments"`
}

func OrderToResponse(o *entity.Order) OrderResponse {
	return OrderResponse{
		ID:            o.ID,
		CustomerEmail: o.CustomerEmail,
		CustomerName:  o.CustomerName,
		SellerEmail:   o.SellerEmail,
		SellerName:    o.SellerName,
		MedicineID:    o.MedicineID,
		MedicineName:  o.MedicineName,
		Image:         o.Image,
		Category:      o.Category,
		Company:       o.Company,
		Price:         o.Price,
		Discount:      o.Discount,
		Quantity:      o.Quantity,
		OrderStatus:   o.OrderStatus,
		PaymentStatus: o.PaymentStatus,
		OrderTime:     o.OrderTime,
		Payment:       o.Payment,
		TransactionID: o.TransactionID,
		PaymentTime:   o.PaymentTime,
	}
}

func OrdersToResponse(orders []*entity.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, OrderToResponse(o))
	}
	return out
}
