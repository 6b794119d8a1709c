package usecase

import (
	"context"
	"fmt"
	"time"

	"muthawwif-booking/internal/data/entity"
	"muthawwif-booking/internal/data/repository"
	"muthawwif-booking/internal/dto/request"
	"muthawwif-booking/internal/dto/response"
	"muthawwif-booking/pkg/database"
	"muthawwif-booking/pkg/mailer"
	"muthawwif-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	CreateBooking(ctx context.Context, userID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	CancelBooking(ctx context.Context, userID, bookingID uuid.UUID) error
	GetMyBookings(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingSummaryResponse], error)
}

type bookingService struct {
	db       database.PgxIface
	repo     *repository.Repository
	cache    Cache
	notifier Notifier
	config   *utils.Config
	log      *zap.Logger
}

func NewBookingService(
	db database.PgxIface,
	repo *repository.Repository,
	cache Cache,
	notifier Notifier,
	config *utils.Config,
	log *zap.Logger,
) BookingService {
	return &bookingService{
		db:       db,
		repo:     repo,
		cache:    cache,
		notifier: notifier,
		config:   config,
		log:      log.With(zap.String("service", "booking")),
	}
}

// CreateBooking reserves the requested slots inside one transaction.
// The service row is locked first, then the slots in ascending id
// order, so concurrent requests for the same muthawwif serialize
// instead of deadlocking. Requests touching any unavailable slot fail
// whole; there are no partial reservations.
func (s *bookingService) CreateBooking(ctx context.Context, userID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	serviceID, err := uuid.Parse(req.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("invalid service ID format %s: %w", req.ServiceID, err)
	}

	slotIDs := make([]uuid.UUID, 0, len(req.AvailabilityIDs))
	seen := make(map[uuid.UUID]bool, len(req.AvailabilityIDs))
	for _, raw := range req.AvailabilityIDs {
		slotID, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid availability ID format %s: %w", raw, err)
		}
		if !seen[slotID] {
			seen[slotID] = true
			slotIDs = append(slotIDs, slotID)
		}
	}

	customer, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrUserNotFound
	}
	if customer.Type != entity.UserTypeCustomer {
		return nil, ErrNotCustomer
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		s.log.Error("Failed to begin booking transaction", zap.Error(err))
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Bound the wait on contended rows; a timed-out request fails fast
	// and the client retries.
	lockTimeout := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", s.config.Booking.LockTimeout.Milliseconds())
	if _, err := tx.Exec(ctx, lockTimeout); err != nil {
		s.log.Error("Failed to set lock timeout", zap.Error(err))
		return nil, fmt.Errorf("set lock timeout: %w", err)
	}

	service, err := s.repo.Service.FindForUpdate(ctx, tx, serviceID)
	if err != nil {
		return nil, err
	}
	if service == nil {
		return nil, ErrServiceNotFound
	}

	locked, err := s.repo.Availability.LockSlots(ctx, tx, service.UserID, slotIDs)
	if err != nil {
		return nil, err
	}

	// Slots missing from the locked set belong to someone else or do
	// not exist; locked-but-booked slots lost a race to another
	// customer. Either way the whole request fails.
	lockedByID := make(map[uuid.UUID]*entity.Availability, len(locked))
	for _, slot := range locked {
		lockedByID[slot.ID] = slot
	}

	var unavailable []uuid.UUID
	for _, slotID := range slotIDs {
		slot, ok := lockedByID[slotID]
		if !ok || slot.IsBooked {
			unavailable = append(unavailable, slotID)
		}
	}
	if len(unavailable) > 0 {
		return nil, &SlotConflictError{SlotIDs: unavailable}
	}

	// The is_booked flags are clean under lock, but a cancelled-then-
	// rebooked slot may still carry live detail rows from a racing
	// request on another service row. Recheck before writing.
	exists, err := s.repo.BookingDetail.ExistsForSlots(ctx, tx, serviceID, slotIDs)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateBooking
	}

	numberCompanion := req.NumberCompanion
	if numberCompanion < 1 {
		numberCompanion = 1
	}
	totalAmount := service.DailyRate * float64(len(slotIDs))

	now := time.Now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:          userID,
		Status:          entity.BookingStatusPending,
		NumberCompanion: numberCompanion,
		TotalAmount:     totalAmount,
	}

	if err := s.repo.Booking.Create(ctx, tx, booking); err != nil {
		return nil, err
	}

	details := make([]*entity.BookingDetail, 0, len(slotIDs))
	for _, slotID := range slotIDs {
		details = append(details, &entity.BookingDetail{
			BaseSimple: entity.BaseSimple{
				ID:        uuid.New(),
				CreatedAt: now,
			},
			BookingID:      booking.ID,
			ServiceID:      serviceID,
			AvailabilityID: slotID,
			ServiceType:    service.ServiceType,
			DailyRate:      service.DailyRate,
			Status:         entity.BookingStatusPending,
		})
	}

	if err := s.repo.BookingDetail.CreateBatch(ctx, tx, details); err != nil {
		return nil, err
	}

	if err := s.repo.Availability.SetBooked(ctx, tx, slotIDs, true); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		s.log.Error("Failed to commit booking transaction", zap.Error(err), zap.String("booking_id", booking.ID.String()))
		return nil, fmt.Errorf("commit booking: %w", err)
	}

	if err := s.cache.InvalidateAvailability(ctx, service.UserID); err != nil {
		s.log.Warn("Failed to invalidate availability cache", zap.Error(err), zap.String("user_id", service.UserID.String()))
	}

	dates := make([]time.Time, 0, len(locked))
	for _, slot := range locked {
		dates = append(dates, slot.AvailableDate)
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("service_id", serviceID.String()),
		zap.Int("slots", len(slotIDs)),
		zap.Float64("total_amount", totalAmount),
	)

	go s.sendConfirmation(customer, service.UserID, booking, dates)

	resp := response.BookingToResponse(booking, dates)
	return &resp, nil
}

// CancelBooking returns a pending booking's slots to the open pool.
// Only the owning customer can cancel, and only while pending.
func (s *bookingService) CancelBooking(ctx context.Context, userID, bookingID uuid.UUID) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		s.log.Error("Failed to begin cancel transaction", zap.Error(err))
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	lockTimeout := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", s.config.Booking.LockTimeout.Milliseconds())
	if _, err := tx.Exec(ctx, lockTimeout); err != nil {
		s.log.Error("Failed to set lock timeout", zap.Error(err))
		return fmt.Errorf("set lock timeout: %w", err)
	}

	booking, err := s.repo.Booking.FindForUpdate(ctx, tx, bookingID, userID)
	if err != nil {
		return err
	}
	if booking == nil {
		return ErrBookingNotFound
	}
	if booking.Status != entity.BookingStatusPending {
		return &NotPendingError{Status: booking.Status}
	}

	if err := s.repo.Booking.UpdateStatus(ctx, tx, bookingID, entity.BookingStatusCancelled); err != nil {
		return err
	}
	if err := s.repo.BookingDetail.UpdateStatusByBooking(ctx, tx, bookingID, entity.BookingStatusCancelled); err != nil {
		return err
	}

	muthawwifIDs, err := s.repo.Availability.ReleaseByBooking(ctx, tx, bookingID)
	if err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		s.log.Error("Failed to commit cancel transaction", zap.Error(err), zap.String("booking_id", bookingID.String()))
		return fmt.Errorf("commit cancel: %w", err)
	}

	for _, muthawwifID := range muthawwifIDs {
		if err := s.cache.InvalidateAvailability(ctx, muthawwifID); err != nil {
			s.log.Warn("Failed to invalidate availability cache", zap.Error(err), zap.String("user_id", muthawwifID.String()))
		}
	}

	s.log.Info("Booking cancelled",
		zap.String("booking_id", bookingID.String()),
		zap.String("user_id", userID.String()),
	)

	return nil
}

func (s *bookingService) GetMyBookings(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingSummaryResponse], error) {
	summaries, err := s.repo.Booking.FindSummariesByUserID(ctx, userID, req.Limit(), req.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Booking.CountByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]response.BookingSummaryResponse, 0, len(summaries))
	for _, summary := range summaries {
		out = append(out, response.SummaryToResponse(summary))
	}

	return response.NewPaginatedResponse(out, req.Page, req.Limit(), total), nil
}

func (s *bookingService) sendConfirmation(customer *entity.User, muthawwifID uuid.UUID, booking *entity.Booking, dates []time.Time) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	muthawwif, err := s.repo.User.FindByID(ctx, muthawwifID)
	if err != nil || muthawwif == nil {
		s.log.Warn("Failed to load muthawwif for confirmation mail",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
		return
	}

	formatted := make([]string, 0, len(dates))
	for _, date := range dates {
		formatted = append(formatted, utils.FormatDate(date))
	}

	err = s.notifier.SendBookingConfirmation(mailer.BookingConfirmation{
		BookingID:       booking.ID.String(),
		CustomerName:    customer.FullName,
		CustomerEmail:   customer.Email,
		MuthawwifName:   muthawwif.FullName,
		MuthawwifEmail:  muthawwif.Email,
		BookingDates:    formatted,
		NumberCompanion: booking.NumberCompanion,
		TotalAmount:     booking.TotalAmount,
	})
	if err != nil {
		s.log.Warn("Failed to send booking confirmation",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
	}
}
