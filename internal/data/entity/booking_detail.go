package entity

import (
	"github.com/google/uuid"
)

// BookingDetail links a booking to one consumed availability slot.
// ServiceType and DailyRate are copied from the service at booking
// time so later service edits never change historical bookings.
type BookingDetail struct {
	BaseSimple
	BookingID      uuid.UUID     `db:"booking_id"`
	ServiceID      uuid.UUID     `db:"service_id"`
	AvailabilityID uuid.UUID     `db:"availability_id"`
	ServiceType    ServiceType   `db:"service_type"`
	DailyRate      float64       `db:"daily_rate"`
	Status         BookingStatus `db:"booking_status"`
}
