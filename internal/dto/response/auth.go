package response

import (
	"time"

	"muthawwif-booking/internal/data/entity"
)

type AuthResponse struct {
	UserID       string          `json:"user_id"`
	Username     string          `json:"username"`
	Type         entity.UserType `json:"type"`
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	ExpiresAt    time.Time       `json:"expires_at"`
}

type RefreshResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}
