package response

import (
	"muthawwif-booking/internal/data/entity"
)

// MuthawwifResponse is the public directory card: profile fields plus
// published services, without contact details or credentials.
type MuthawwifResponse struct {
	ID          string            `json:"id"`
	FullName    string            `json:"full_name"`
	Nationality *string           `json:"nationality,omitempty"`
	PhotoURL    *string           `json:"photo_url,omitempty"`
	Bio         *string           `json:"bio,omitempty"`
	Experience  *int              `json:"experience,omitempty"`
	Services    []ServiceResponse `json:"services"`
}

type MuthawwifDetailResponse struct {
	MuthawwifResponse
	Availability []AvailabilitySlotResponse `json:"availability"`
}

func MuthawwifToResponse(user *entity.User, services []*entity.MuthawwifService) MuthawwifResponse {
	return MuthawwifResponse{
		ID:          user.ID.String(),
		FullName:    user.FullName,
		Nationality: user.Nationality,
		PhotoURL:    user.PhotoURL,
		Bio:         user.Bio,
		Experience:  user.Experience,
		Services:    ServicesToResponse(services),
	}
}
