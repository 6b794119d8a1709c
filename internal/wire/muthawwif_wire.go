package wire

import (
	"net/http"

	"muthawwif-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireMuthawwif(r chi.Router, muthawwifHandler *adaptor.MuthawwifHandler, authJWT func(http.Handler) http.Handler) {
	// Public directory
	r.Get("/api/muthawwif", muthawwifHandler.List)
	r.Get("/api/muthawwif/{id}", muthawwifHandler.Detail)
	r.Get("/api/nationalities", muthawwifHandler.Nationalities)

	// Service management, muthawwif only
	r.Group(func(r chi.Router) {
		r.Use(authJWT)

		r.Get("/api/muthawwif/services", muthawwifHandler.GetMyServices)
		r.Post("/api/muthawwif/services", muthawwifHandler.CreateService)
		r.Put("/api/muthawwif/services/{id}", muthawwifHandler.UpdateService)
		r.Delete("/api/muthawwif/services/{id}", muthawwifHandler.DeleteService)
	})
}
