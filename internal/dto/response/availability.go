package response

import (
	"muthawwif-booking/internal/data/entity"
	"muthawwif-booking/pkg/utils"
)

type AvailabilitySlotResponse struct {
	ID   string `json:"id"`
	Date string `json:"date"`
}

type AvailabilityListResponse struct {
	Available []AvailabilitySlotResponse `json:"available"`
	Booked    []AvailabilitySlotResponse `json:"booked"`
}

type AddAvailabilityResponse struct {
	Requested int64 `json:"requested"`
	Added     int64 `json:"added"`
	Skipped   int64 `json:"skipped"`
}

type RemoveAvailabilityResponse struct {
	Removed int64 `json:"removed"`
}

func SlotToResponse(slot *entity.Availability) AvailabilitySlotResponse {
	return AvailabilitySlotResponse{
		ID:   slot.ID.String(),
		Date: utils.FormatDate(slot.AvailableDate),
	}
}

// SlotsToListResponse splits a calendar into free and taken slots. The
// JSON arrays are never null even when one side is empty.
func SlotsToListResponse(slots []*entity.Availability) AvailabilityListResponse {
	resp := AvailabilityListResponse{
		Available: []AvailabilitySlotResponse{},
		Booked:    []AvailabilitySlotResponse{},
	}
	for _, slot := range slots {
		if slot.IsBooked {
			resp.Booked = append(resp.Booked, SlotToResponse(slot))
		} else {
			resp.Available = append(resp.Available, SlotToResponse(slot))
		}
	}
	return resp
}
