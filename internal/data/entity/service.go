package entity

import (
	"github.com/google/uuid"
)

type ServiceType string

const (
	ServiceTypePrivate ServiceType = "private"
	ServiceTypeGroup   ServiceType = "group"
)

// MuthawwifService is one offering on a muthawwif's catalog. A
// muthawwif may carry at most one active service per service type.
type MuthawwifService struct {
	Base
	UserID      uuid.UUID   `db:"user_id"`
	ServiceType ServiceType `db:"service_type"`
	DailyRate   float64     `db:"daily_rate"`
	City        string      `db:"city"`
}
