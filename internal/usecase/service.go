package usecase

import (
	"context"
	"time"

	"muthawwif-booking/internal/data/entity"
	"muthawwif-booking/internal/data/repository"
	"muthawwif-booking/pkg/database"
	"muthawwif-booking/pkg/mailer"
	"muthawwif-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Cache is the slice of the Redis layer the usecases depend on.
type Cache interface {
	GetAvailability(ctx context.Context, userID uuid.UUID) ([]*entity.Availability, error)
	SetAvailability(ctx context.Context, userID uuid.UUID, slots []*entity.Availability) error
	InvalidateAvailability(ctx context.Context, userID uuid.UUID) error

	BlacklistToken(ctx context.Context, token string, ttl time.Duration) error
	IsTokenBlacklisted(ctx context.Context, token string) (bool, error)

	StoreRefreshToken(ctx context.Context, userID uuid.UUID, token string, ttl time.Duration) error
	GetRefreshToken(ctx context.Context, userID uuid.UUID) (string, error)
	DeleteRefreshToken(ctx context.Context, userID uuid.UUID) error
}

// Notifier sends booking notifications. Delivery failures must never
// fail the booking itself.
type Notifier interface {
	SendBookingConfirmation(bc mailer.BookingConfirmation) error
}

type Service struct {
	Auth         AuthService
	User         UserService
	Muthawwif    MuthawwifService
	Availability AvailabilityService
	Booking      BookingService
}

func NewService(
	db database.PgxIface,
	repo *repository.Repository,
	cache Cache,
	notifier Notifier,
	config *utils.Config,
	log *zap.Logger,
) *Service {
	return &Service{
		Auth:         NewAuthService(repo, cache, config, log),
		User:         NewUserService(repo.User, log),
		Muthawwif:    NewMuthawwifService(repo, cache, log),
		Availability: NewAvailabilityService(db, repo, cache, config, log),
		Booking:      NewBookingService(db, repo, cache, notifier, config, log),
	}
}
