package request

type AddAvailabilityRequest struct {
	StartDate       string   `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate         string   `json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ExcludeWeekdays []int    `json:"exclude_weekdays,omitempty" validate:"omitempty,dive,min=0,max=6"`
	ExcludeDates    []string `json:"exclude_dates,omitempty" validate:"omitempty,dive,datetime=2006-01-02"`
}

type RemoveAvailabilityRequest struct {
	Dates []string `json:"dates" validate:"required,min=1,dive,datetime=2006-01-02"`
}
