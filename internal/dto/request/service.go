package request

type CreateServiceRequest struct {
	ServiceType string  `json:"service_type" validate:"required,oneof=private group"`
	DailyRate   float64 `json:"daily_rate" validate:"required,gt=0"`
	City        string  `json:"city" validate:"required,min=2,max=100"`
}

type UpdateServiceRequest struct {
	ServiceType *string  `json:"service_type,omitempty" validate:"omitempty,oneof=private group"`
	DailyRate   *float64 `json:"daily_rate,omitempty" validate:"omitempty,gt=0"`
	City        *string  `json:"city,omitempty" validate:"omitempty,min=2,max=100"`
}
