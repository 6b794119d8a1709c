package wire

import (
	"net/http"

	"muthawwif-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAvailability(r chi.Router, availabilityHandler *adaptor.AvailabilityHandler, authJWT func(http.Handler) http.Handler) {
	// Public calendar of one muthawwif
	r.Get("/api/muthawwif/{id}/availability", availabilityHandler.GetByMuthawwif)

	// Calendar maintenance, muthawwif only
	r.Group(func(r chi.Router) {
		r.Use(authJWT)

		r.Get("/api/availability", availabilityHandler.GetMine)
		r.Post("/api/availability", availabilityHandler.Add)
		r.Delete("/api/availability", availabilityHandler.Remove)
	})
}
