package request

type ListMuthawwifRequest struct {
	PaginatedRequest
	Nationality string `json:"nationality,omitempty"`
	ServiceType string `json:"service_type,omitempty" validate:"omitempty,oneof=private group"`
	StartDate   string `json:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate     string `json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}
