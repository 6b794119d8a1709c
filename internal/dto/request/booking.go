package request

type CreateBookingRequest struct {
	ServiceID       string   `json:"service_id" validate:"required,uuid4"`
	AvailabilityIDs []string `json:"availability_ids" validate:"required,min=1,dive,uuid4"`
	NumberCompanion int      `json:"number_companion,omitempty" validate:"omitempty,min=1,max=50"`
}
