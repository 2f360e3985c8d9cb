package wire

import (
	"healthhive/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireMedicine(r chi.Router, h *adaptor.MedicineHandler, auth routeAuth) {
	r.Get("/medicines", h.List)
	r.Get("/medicines/discount", h.ListDiscounted)

	r.Group(func(r chi.Router) {
		r.Use(auth.authenticated)

		// seller ownership is decided from the token subject, not the body
		r.Post("/medicine/post", h.Create)
		r.Put("/medicine/update/{id}", h.Update)
		r.Delete("/medicine/{id}", h.Delete)
		r.With(auth.self).Get("/medicine/seller/{email}", h.ListBySeller)

		r.Patch("/admin/medicine/update/{id}", h.AdminUpdate)
		r.Delete("/admin/medicine/delete/{id}", h.AdminDelete)
	})
}
