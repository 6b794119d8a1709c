package response

import (
	"time"

	"muthawwif-booking/internal/data/entity"
)

type ServiceResponse struct {
	ID          string             `json:"id"`
	UserID      string             `json:"user_id"`
	ServiceType entity.ServiceType `json:"service_type"`
	DailyRate   float64            `json:"daily_rate"`
	City        string             `json:"city"`
	CreatedAt   time.Time          `json:"created_at"`
}

func ServiceToResponse(service *entity.MuthawwifService) ServiceResponse {
	return ServiceResponse{
		ID:          service.ID.String(),
		UserID:      service.UserID.String(),
		ServiceType: service.ServiceType,
		DailyRate:   service.DailyRate,
		City:        service.City,
		CreatedAt:   service.CreatedAt,
	}
}

func ServicesToResponse(services []*entity.MuthawwifService) []ServiceResponse {
	out := make([]ServiceResponse, 0, len(services))
	for _, service := range services {
		out = append(out, ServiceToResponse(service))
	}
	return out
}
