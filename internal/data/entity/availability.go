package entity

import (
	"time"

	"github.com/google/uuid"
)

// Availability is one (muthawwif, calendar date) slot. At most one row
// exists per pair; IsBooked flips to true only inside a successful
// booking transaction and back to false only on cancellation.
type Availability struct {
	BaseSimple
	UserID        uuid.UUID `db:"user_id"`
	AvailableDate time.Time `db:"available_date"`
	IsBooked      bool      `db:"is_booked"`
}
