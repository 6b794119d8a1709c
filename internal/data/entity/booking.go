package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

// Booking is one customer reservation transaction. Slots are reached
// only through BookingDetail rows, never referenced here directly.
type Booking struct {
	Base
	UserID          uuid.UUID     `db:"user_id"`
	Status          BookingStatus `db:"booking_status"`
	NumberCompanion int           `db:"number_companion"`
	TotalAmount     float64       `db:"total_amount"`
}

// BookingSummary is the joined row behind the customer's booking list.
type BookingSummary struct {
	ID              uuid.UUID
	Status          BookingStatus
	NumberCompanion int
	TotalAmount     float64
	CreatedAt       time.Time
	BookingDates    []time.Time
	MuthawwifName   string
	MobileNumber    *string
	WhatsappNumber  *string
}
