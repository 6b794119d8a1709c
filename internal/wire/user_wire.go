package wire

import (
	"net/http"

	"muthawwif-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireUser(r chi.Router, userHandler *adaptor.UserHandler, authJWT func(http.Handler) http.Handler) {
	r.With(authJWT).Get("/api/users/me", userHandler.GetProfile)
}
