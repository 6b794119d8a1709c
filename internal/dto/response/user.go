package response

import (
	"time"

	"muthawwif-booking/internal/data/entity"
)

type UserResponse struct {
	ID             string          `json:"id"`
	Username       string          `json:"username"`
	Email          string          `json:"email"`
	Type           entity.UserType `json:"type"`
	FullName       string          `json:"full_name"`
	PassportNumber *string         `json:"passport_number,omitempty"`
	MobileNumber   *string         `json:"mobile_number,omitempty"`
	WhatsappNumber *string         `json:"whatsapp_number,omitempty"`
	Nationality    *string         `json:"nationality,omitempty"`
	PhotoURL       *string         `json:"photo_url,omitempty"`
	Bio            *string         `json:"bio,omitempty"`
	Experience     *int            `json:"experience,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// Helper converters
func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:             user.ID.String(),
		Username:       user.Username,
		Email:          user.Email,
		Type:           user.Type,
		FullName:       user.FullName,
		PassportNumber: user.PassportNumber,
		MobileNumber:   user.MobileNumber,
		WhatsappNumber: user.WhatsappNumber,
		Nationality:    user.Nationality,
		PhotoURL:       user.PhotoURL,
		Bio:            user.Bio,
		Experience:     user.Experience,
		CreatedAt:      user.CreatedAt,
	}
}
