package wire

import (
	"net/http"

	"muthawwif-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler, authJWT func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(authJWT)

		// POST /api/bookings - Reserve slots (customers only)
		r.Post("/api/bookings", bookingHandler.Create)

		// GET /api/bookings - Booking history of the caller
		r.Get("/api/bookings", bookingHandler.GetMine)

		// PUT /api/bookings/{id}/cancel - Cancel a pending booking
		r.Put("/api/bookings/{id}/cancel", bookingHandler.Cancel)
	})
}
