package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/users", h.createUser)
		r.Post("/auth/login", h.login)
		r.Get("/ping", h.ping)
	})

	// protected routes
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		// registered method-by-method: a Route mount on /users would also
		// capture the open POST /users registered above
		r.Get("/users", h.listUsers)
		r.Get("/users/{id}", h.getUser)
		r.Put("/users/{id}", h.updateUser)
		r.Patch("/users/{id}", h.patchUser)
		r.Delete("/users/{id}", h.deleteUser)

		r.Route("/flights", func(r chi.Router) {
			r.Get("/", h.listFlights)
			r.Post("/", h.createFlight)
			r.Get("/{id}", h.getFlight)
			r.Put("/{id}", h.updateFlight)
			r.Patch("/{id}", h.patchFlight)
			r.Delete("/{id}", h.deleteFlight)

			r.Get("/{id}/tickets", h.listFlightTickets)
			r.Post("/{id}/tickets", h.createFlightTickets)
		})

		r.Route("/tickets", func(r chi.Router) {
			r.Get("/", h.listTickets)
			r.Post("/", h.createTicket)
			r.Get("/{id}", h.getTicket)
			r.Put("/{id}", h.updateTicket)
			r.Patch("/{id}", h.patchTicket)
			r.Delete("/{id}", h.deleteTicket)
		})

		r.Route("/bookings", func(r chi.Router) {
			r.Get("/", h.listBookings)
			r.Post("/", h.createBooking)
			r.Get("/{id}", h.getBooking)
			r.Put("/{id}", h.updateBooking)
			r.Patch("/{id}", h.patchBooking)
			r.Delete("/{id}", h.deleteBooking)
		})
	})

	return router
}
