package adaptor

import (
	"errors"
	"net/http"
	"strings"

	"muthawwif-booking/internal/usecase"
	"muthawwif-booking/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth         *AuthHandler
	User         *UserHandler
	Muthawwif    *MuthawwifHandler
	Availability *AvailabilityHandler
	Booking      *BookingHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(service.Auth, log),
		User:         NewUserHandler(service.User, log),
		Muthawwif:    NewMuthawwifHandler(service.Muthawwif, log),
		Availability: NewAvailabilityHandler(service.Availability, log),
		Booking:      NewBookingHandler(service.Booking, log),
	}
}

// handleServiceError maps usecase errors onto HTTP responses. Conflict
// errors carry their detail payload so the client knows which slot or
// date blocked the request.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var slotConflict *usecase.SlotConflictError
	var dateConflict *usecase.DateConflictError
	var notPending *usecase.NotPendingError

	switch {
	case errors.As(err, &slotConflict):
		log.Warn(operation+" failed - slot conflict", zap.Error(err))
		ids := make([]string, 0, len(slotConflict.SlotIDs))
		for _, id := range slotConflict.SlotIDs {
			ids = append(ids, id.String())
		}
		utils.ResponseConflict(w, err.Error(), map[string]any{"unavailable_slots": ids})

	case errors.As(err, &dateConflict):
		log.Warn(operation+" failed - date conflict", zap.Error(err))
		utils.ResponseConflict(w, err.Error(), map[string]any{
			"non_existent": dateConflict.NonExistent,
			"booked":       dateConflict.Booked,
		})

	case errors.As(err, &notPending):
		log.Warn(operation+" failed - not pending", zap.Error(err))
		utils.ResponseConflict(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrDuplicateBooking):
		log.Warn(operation+" failed - duplicate booking", zap.Error(err))
		utils.ResponseConflict(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrServiceTypeExists):
		log.Warn(operation+" failed - service type exists", zap.Error(err))
		utils.ResponseConflict(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrUserNotFound),
		errors.Is(err, usecase.ErrServiceNotFound),
		errors.Is(err, usecase.ErrBookingNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrNotCustomer),
		errors.Is(err, usecase.ErrNotMuthawwif):
		log.Warn(operation+" failed - forbidden", zap.Error(err))
		utils.ResponseForbidden(w, err.Error())

	case errors.Is(err, usecase.ErrInvalidCredentials),
		errors.Is(err, usecase.ErrInvalidToken):
		log.Warn(operation+" failed - unauthorized", zap.Error(err))
		utils.ResponseUnauthorized(w, err.Error())

	case strings.Contains(err.Error(), "validation failed"),
		strings.Contains(err.Error(), "invalid"),
		strings.Contains(err.Error(), "already"),
		strings.Contains(err.Error(), "before"),
		strings.Contains(err.Error(), "in the past"),
		strings.Contains(err.Error(), "exceeds"),
		strings.Contains(err.Error(), "no dates"):
		log.Warn(operation+" failed - bad request", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		log.Error(operation+" failed", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
