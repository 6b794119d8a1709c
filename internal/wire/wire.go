package wire

import (
	"net/http"

	"muthawwif-booking/internal/adaptor"
	"muthawwif-booking/internal/data/repository"
	"muthawwif-booking/internal/usecase"
	"muthawwif-booking/pkg/database"
	"muthawwif-booking/pkg/middleware"
	"muthawwif-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type App struct {
	Router *chi.Mux
}

// Wiring builds the usecase and handler graph and mounts every route.
func Wiring(
	db database.PgxIface,
	repo *repository.Repository,
	cache usecase.Cache,
	blacklist middleware.Blacklist,
	notifier usecase.Notifier,
	config *utils.Config,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(db, repo, cache, notifier, config, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, blacklist, config, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	blacklist middleware.Blacklist,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	authJWT := middleware.AuthJWT(blacklist, config.JWT.Secret, logger)

	wireAuth(r, handler.Auth, authJWT)
	wireUser(r, handler.User, authJWT)
	wireMuthawwif(r, handler.Muthawwif, authJWT)
	wireAvailability(r, handler.Availability, authJWT)
	wireBooking(r, handler.Booking, authJWT)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
