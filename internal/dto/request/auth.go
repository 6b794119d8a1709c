package request

type RegisterRequest struct {
	Username       string  `json:"username" validate:"required,min=3,max=50"`
	Email          string  `json:"email" validate:"required,email"`
	Password       string  `json:"password" validate:"required,min=8"`
	Type           string  `json:"type" validate:"required,oneof=customer muthawwif"`
	FullName       string  `json:"full_name" validate:"required,min=2,max=100"`
	PassportNumber *string `json:"passport_number,omitempty" validate:"omitempty,min=5,max=20"`
	MobileNumber   *string `json:"mobile_number,omitempty" validate:"omitempty,min=8,max=20"`
	WhatsappNumber *string `json:"whatsapp_number,omitempty" validate:"omitempty,min=8,max=20"`
	Nationality    *string `json:"nationality,omitempty" validate:"omitempty,max=50"`
	Bio            *string `json:"bio,omitempty" validate:"omitempty,max=1000"`
	Experience     *int    `json:"experience,omitempty" validate:"omitempty,min=0,max=60"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}
