package wire

import (
	"healthhive/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireOrder(r chi.Router, h *adaptor.OrderHandler, auth routeAuth) {
	// Cart writes are open; the order state guards them.
	r.Post("/order-medicine", h.PlaceOrder)
	r.Patch("/cart/quantity/{id}", h.UpdateQuantity)
	r.Delete("/cart/remove/{id}", h.RemoveItem)
	r.Delete("/cart/clear/{email}", h.ClearCart)
	r.Post("/create-payment-intent", h.CreatePaymentIntent)
	r.Patch("/cart/confirm-payment/{id}", h.ConfirmPayment)

	r.Group(func(r chi.Router) {
		r.Use(auth.authenticated)

		r.Get("/single-order/{id}", h.GetOrder)
		r.Get("/admin/payments/all-confirmed", h.AllConfirmed)

		r.With(auth.self).Get("/cart/{email}", h.Cart)
		r.With(auth.self).Get("/payments/history/{email}", h.PaymentHistory)
		r.With(auth.self).Get("/seller/payment-history/{email}", h.SellerPaymentHistory)
	})
}
