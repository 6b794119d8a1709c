package repository

import (
	"muthawwif-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User          UserRepository
	Service       ServiceRepository
	Availability  AvailabilityRepository
	Booking       BookingRepository
	BookingDetail BookingDetailRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:          NewUserRepository(db, log),
		Service:       NewServiceRepository(db, log),
		Availability:  NewAvailabilityRepository(db, log),
		Booking:       NewBookingRepository(db, log),
		BookingDetail: NewBookingDetailRepository(db, log),
	}
}
