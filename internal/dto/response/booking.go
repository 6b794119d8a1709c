package response

import (
	"time"

	"muthawwif-booking/internal/data/entity"
	"muthawwif-booking/pkg/utils"
)

type BookingResponse struct {
	ID              string               `json:"id"`
	Status          entity.BookingStatus `json:"status"`
	NumberCompanion int                  `json:"number_companion"`
	TotalAmount     float64              `json:"total_amount"`
	TotalDays       int                  `json:"total_days"`
	BookingDates    []string             `json:"booking_dates"`
	CreatedAt       time.Time            `json:"created_at"`
}

type BookingSummaryResponse struct {
	ID              string               `json:"id"`
	Status          entity.BookingStatus `json:"status"`
	NumberCompanion int                  `json:"number_companion"`
	TotalAmount     float64              `json:"total_amount"`
	BookingDates    []string             `json:"booking_dates"`
	MuthawwifName   string               `json:"muthawwif_name"`
	MobileNumber    *string              `json:"mobile_number,omitempty"`
	WhatsappNumber  *string              `json:"whatsapp_number,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
}

func BookingToResponse(booking *entity.Booking, dates []time.Time) BookingResponse {
	formatted := make([]string, 0, len(dates))
	for _, date := range dates {
		formatted = append(formatted, utils.FormatDate(date))
	}

	return BookingResponse{
		ID:              booking.ID.String(),
		Status:          booking.Status,
		NumberCompanion: booking.NumberCompanion,
		TotalAmount:     booking.TotalAmount,
		TotalDays:       len(dates),
		BookingDates:    formatted,
		CreatedAt:       booking.CreatedAt,
	}
}

func SummaryToResponse(summary *entity.BookingSummary) BookingSummaryResponse {
	formatted := make([]string, 0, len(summary.BookingDates))
	for _, date := range summary.BookingDates {
		formatted = append(formatted, utils.FormatDate(date))
	}

	return BookingSummaryResponse{
		ID:              summary.ID.String(),
		Status:          summary.Status,
		NumberCompanion: summary.NumberCompanion,
		TotalAmount:     summary.TotalAmount,
		BookingDates:    formatted,
		MuthawwifName:   summary.MuthawwifName,
		MobileNumber:    summary.MobileNumber,
		WhatsappNumber:  summary.WhatsappNumber,
		CreatedAt:       summary.CreatedAt,
	}
}
