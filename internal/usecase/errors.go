package usecase

import (
	"errors"
	"fmt"
	"strings"

	"muthawwif-booking/internal/data/entity"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrServiceNotFound    = errors.New("service not found")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrNotCustomer        = errors.New("only customers can perform this action")
	ErrNotMuthawwif       = errors.New("only muthawwif can perform this action")
	ErrServiceTypeExists  = errors.New("a service of this type already exists")
	ErrDuplicateBooking   = errors.New("one or more slots are already booked for this service")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// SlotConflictError reports the requested slots that could not be
// reserved, either because they are already booked or do not belong to
// the muthawwif offering the service.
type SlotConflictError struct {
	SlotIDs []uuid.UUID
}

func (e *SlotConflictError) Error() string {
	ids := make([]string, 0, len(e.SlotIDs))
	for _, id := range e.SlotIDs {
		ids = append(ids, id.String())
	}
	return fmt.Sprintf("slots unavailable: %s", strings.Join(ids, ", "))
}

// DateConflictError reports why an availability removal was rejected.
// Removal is all-or-nothing: one bad date fails the whole request.
type DateConflictError struct {
	NonExistent []string
	Booked      []string
}

func (e *DateConflictError) Error() string {
	var parts []string
	if len(e.NonExistent) > 0 {
		parts = append(parts, fmt.Sprintf("not found: %s", strings.Join(e.NonExistent, ", ")))
	}
	if len(e.Booked) > 0 {
		parts = append(parts, fmt.Sprintf("already booked: %s", strings.Join(e.Booked, ", ")))
	}
	return fmt.Sprintf("dates cannot be removed (%s)", strings.Join(parts, "; "))
}

// NotPendingError rejects a cancellation of a booking that already left
// the pending state.
type NotPendingError struct {
	Status entity.BookingStatus
}

func (e *NotPendingError) Error() string {
	return fmt.Sprintf("booking is %s, only pending bookings can be cancelled", string(e.Status))
}
