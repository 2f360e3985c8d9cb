package adaptor

import (
	"net/http"

	"healthhive/internal/dto/request"
	"healthhive/internal/dto/response"
	"healthhive/internal/usecase"
	"healthhive/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type OrderHandler struct {
	service usecase.OrderService
	log     *zap.Logger
}

func NewOrderHandler(service usecase.OrderService, log *zap.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		log:     log.With(zap.String("handler", "order")),
	}
}

// PlaceOrder handles POST /order-medicine
func (h *OrderHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req request.PlaceOrderRequest
	if !decodeBody(w, r, &req, false) {
		return
	}

	order, err := h.service.PlaceOrder(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "place order")
		return
	}

	utils.ResponseCreated(w, "Order placed successfully", order)
}

// Cart handles GET /cart/{email}
func (h *OrderHandler) Cart(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListCart(r.Context(), utils.URLParamEmail(r, "email"))
	if err != nil {
		handleServiceError(w, h.log, err, "fetch cart items")
		return
	}

	utils.ResponseSuccess(w, "success", orders)
}

// UpdateQuantity handles PATCH /cart/quantity/{id}
func (h *OrderHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	var req request.QuantityRequest
	if !decodeBody(w, r, &req, false) {
		return
	}

	order, err := h.service.UpdateQuantity(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update quantity")
		return
	}

	utils.ResponseSuccess(w, "Quantity updated", order)
}

// RemoveItem handles DELETE /cart/remove/{id}
func (h *OrderHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	if err := h.service.RemoveItem(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "remove cart item")
		return
	}

	utils.ResponseSuccess(w, "Item removed from cart", nil)
}

// ClearCart handles DELETE /cart/clear/{email}
func (h *OrderHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.service.ClearCart(r.Context(), utils.URLParamEmail(r, "email"))
	if err != nil {
		handleServiceError(w, h.log, err, "clear cart")
		return
	}

	utils.ResponseSuccess(w, "Cart cleared", response.ClearCartResponse{DeletedCount: deleted})
}

// GetOrder handles GET /single-order/{id}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.service.GetOrder(r.Context(), chi.URLParam(r, "id"), subject(r))
	if err != nil {
		handleServiceError(w, h.log, err, "fetch order")
		return
	}

	utils.ResponseSuccess(w, "success", order)
}

// CreatePaymentIntent handles POST /create-payment-intent
func (h *OrderHandler) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	var req request.PaymentIntentRequest
	if !decodeBody(w, r, &req, false) {
		return
	}

	intent, err := h.service.CreatePaymentIntent(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create payment intent")
		return
	}

	utils.ResponseSuccess(w, "success", intent)
}

// ConfirmPayment handles PATCH /cart/confirm-payment/{id}
func (h *OrderHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	var req request.ConfirmPaymentRequest
	if !decodeBody(w, r, &req, false) {
		return
	}

	order, err := h.service.ConfirmPayment(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "confirm payment")
		return
	}

	utils.ResponseSuccess(w, "Payment confirmed", order)
}

// PaymentHistory handles GET /payments/history/{email}
func (h *OrderHandler) PaymentHistory(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.PaymentHistory(r.Context(), utils.URLParamEmail(r, "email"))
	if err != nil {
		handleServiceError(w, h.log, err, "fetch payment history")
		return
	}

	utils.ResponseSuccess(w, "success", response.PaymentHistoryResponse{Payments: orders})
}

// SellerPaymentHistory handles GET /seller/payment-history/{email}
func (h *OrderHandler) SellerPaymentHistory(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.SellerPaymentHistory(r.Context(), utils.URLParamEmail(r, "email"))
	if err != nil {
		handleServiceError(w, h.log, err, "fetch seller payment history")
		return
	}

	utils.ResponseSuccess(w, "success", orders)
}

// AllConfirmed handles GET /admin/payments/all-confirmed
func (h *OrderHandler) AllConfirmed(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.AdminAllConfirmed(r.Context(), subject(r))
	if err != nil {
		handleServiceError(w, h.log, err, "fetch confirmed payments")
		return
	}

	utils.ResponseSuccess(w, "success", orders)
}
