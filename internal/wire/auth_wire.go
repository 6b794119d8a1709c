package wire

import (
	"net/http"

	"muthawwif-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler, authJWT func(http.Handler) http.Handler) {
	// Public routes
	r.Post("/api/auth/register", authHandler.Register)
	r.Post("/api/auth/login", authHandler.Login)
	r.Post("/api/auth/refresh", authHandler.Refresh)

	// Protected routes
	r.With(authJWT).Post("/api/auth/logout", authHandler.Logout)
}
