package wire

import (
	"healthhive/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireUser(r chi.Router, h *adaptor.UserHandler, auth routeAuth) {
	// anonymous callers may only create plain user accounts
	r.With(auth.identify).Post("/users/request", h.Register)
	r.Put("/users/update-login-time/{email}", h.UpdateLoginTime)
	r.Get("/users/check/{email}", h.CheckExists)

	r.Group(func(r chi.Router) {
		r.Use(auth.authenticated)

		// admin role is checked against the token subject in the service
		r.Get("/users", h.ListUsers)
		r.Get("/applied/sellers", h.ListPendingSellers)
		r.Patch("/user/approval", h.ResolveApplication)

		r.Get("/sellers/all", h.ListSellers)
		r.With(auth.self).Get("/users/{email}", h.GetUser)
	})
}
