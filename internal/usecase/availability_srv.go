package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"muthawwif-booking/internal/data/entity"
	"muthawwif-booking/internal/data/repository"
	"muthawwif-booking/internal/dto/request"
	"muthawwif-booking/internal/dto/response"
	"muthawwif-booking/pkg/database"
	"muthawwif-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxRangeDays bounds a single add request so a typo in end_date cannot
// flood the calendar.
const maxRangeDays = 366

type AvailabilityService interface {
	AddRange(ctx context.Context, userID uuid.UUID, req *request.AddAvailabilityRequest) (*response.AddAvailabilityResponse, error)
	Remove(ctx context.Context, userID uuid.UUID, req *request.RemoveAvailabilityRequest) (*response.RemoveAvailabilityResponse, error)
	List(ctx context.Context, muthawwifID uuid.UUID, from, to *time.Time) (*response.AvailabilityListResponse, error)
}

type availabilityService struct {
	db     database.PgxIface
	repo   *repository.Repository
	cache  Cache
	config *utils.Config
	log    *zap.Logger
}

func NewAvailabilityService(db database.PgxIface, repo *repository.Repository, cache Cache, config *utils.Config, log *zap.Logger) AvailabilityService {
	return &availabilityService{
		db:     db,
		repo:   repo,
		cache:  cache,
		config: config,
		log:    log.With(zap.String("service", "availability")),
	}
}

// AddRange opens slots for every date in [start_date, end_date] minus
// the excluded weekdays and dates. Dates the muthawwif already has are
// skipped rather than rejected, so the operation is safe to retry.
func (s *availabilityService) AddRange(ctx context.Context, userID uuid.UUID, req *request.AddAvailabilityRequest) (*response.AddAvailabilityResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	if err := s.requireMuthawwif(ctx, userID); err != nil {
		return nil, err
	}

	start, err := utils.ParseDate(req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start_date %s: %w", req.StartDate, err)
	}

	end := start
	if req.EndDate != "" {
		end, err = utils.ParseDate(req.EndDate)
		if err != nil {
			return nil, fmt.Errorf("invalid end_date %s: %w", req.EndDate, err)
		}
	}

	today := utils.TodayUTC()
	if start.Before(today) {
		return nil, fmt.Errorf("start_date %s is in the past", req.StartDate)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("end_date is before start_date")
	}
	if end.Sub(start) > maxRangeDays*24*time.Hour {
		return nil, fmt.Errorf("date range exceeds %d days", maxRangeDays)
	}

	excludeDates := make(map[time.Time]bool, len(req.ExcludeDates))
	var pastExcludes []string
	for _, raw := range req.ExcludeDates {
		date, err := utils.ParseDate(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude date %s: %w", raw, err)
		}
		if date.Before(today) {
			pastExcludes = append(pastExcludes, raw)
			continue
		}
		excludeDates[date] = true
	}
	if len(pastExcludes) > 0 {
		return nil, fmt.Errorf("exclude dates cannot be in the past: %s", strings.Join(pastExcludes, ", "))
	}

	excludeWeekdays := make(map[time.Weekday]bool, len(req.ExcludeWeekdays))
	for _, weekday := range req.ExcludeWeekdays {
		excludeWeekdays[time.Weekday(weekday)] = true
	}

	dates := enumerateDates(start, end, excludeWeekdays, excludeDates)
	if len(dates) == 0 {
		return nil, fmt.Errorf("no dates remain after exclusions")
	}

	added, err := s.repo.Availability.AddDates(ctx, userID, dates)
	if err != nil {
		return nil, err
	}

	if err := s.cache.InvalidateAvailability(ctx, userID); err != nil {
		s.log.Warn("Failed to invalidate availability cache", zap.Error(err), zap.String("user_id", userID.String()))
	}

	s.log.Info("Availability added",
		zap.String("user_id", userID.String()),
		zap.Int("requested", len(dates)),
		zap.Int64("added", added),
	)

	return &response.AddAvailabilityResponse{
		Requested: int64(len(dates)),
		Added:     added,
		Skipped:   int64(len(dates)) - added,
	}, nil
}

// Remove deletes the named dates, all of them or none. A date that does
// not exist or already carries a booking fails the whole request with a
// DateConflictError naming every offender. Check and delete share one
// transaction holding the row locks, so a reservation racing the
// removal cannot turn it into a partial delete.
func (s *availabilityService) Remove(ctx context.Context, userID uuid.UUID, req *request.RemoveAvailabilityRequest) (*response.RemoveAvailabilityResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	if err := s.requireMuthawwif(ctx, userID); err != nil {
		return nil, err
	}

	dates := make([]time.Time, 0, len(req.Dates))
	seen := make(map[time.Time]bool, len(req.Dates))
	for _, raw := range req.Dates {
		date, err := utils.ParseDate(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid date %s: %w", raw, err)
		}
		if !seen[date] {
			seen[date] = true
			dates = append(dates, date)
		}
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		s.log.Error("Failed to begin removal transaction", zap.Error(err))
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	lockTimeout := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", s.config.Booking.LockTimeout.Milliseconds())
	if _, err := tx.Exec(ctx, lockTimeout); err != nil {
		s.log.Error("Failed to set lock timeout", zap.Error(err))
		return nil, fmt.Errorf("set lock timeout: %w", err)
	}

	existing, err := s.repo.Availability.LockDates(ctx, tx, userID, dates)
	if err != nil {
		return nil, err
	}

	found := make(map[time.Time]*entity.Availability, len(existing))
	for _, slot := range existing {
		found[utils.NormalizeDate(slot.AvailableDate)] = slot
	}

	conflict := &DateConflictError{}
	for _, date := range dates {
		slot, ok := found[date]
		if !ok {
			conflict.NonExistent = append(conflict.NonExistent, utils.FormatDate(date))
			continue
		}
		if slot.IsBooked {
			conflict.Booked = append(conflict.Booked, utils.FormatDate(date))
		}
	}
	if len(conflict.NonExistent) > 0 || len(conflict.Booked) > 0 {
		return nil, conflict
	}

	removed, err := s.repo.Availability.DeleteDates(ctx, tx, userID, dates)
	if err != nil {
		return nil, err
	}
	if removed != int64(len(dates)) {
		return nil, fmt.Errorf("remove availability: expected %d dates, removed %d", len(dates), removed)
	}

	if err := tx.Commit(ctx); err != nil {
		s.log.Error("Failed to commit removal transaction", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("commit removal: %w", err)
	}

	if err := s.cache.InvalidateAvailability(ctx, userID); err != nil {
		s.log.Warn("Failed to invalidate availability cache", zap.Error(err), zap.String("user_id", userID.String()))
	}

	s.log.Info("Availability removed",
		zap.String("user_id", userID.String()),
		zap.Int64("removed", removed),
	)

	return &response.RemoveAvailabilityResponse{Removed: removed}, nil
}

// List returns one muthawwif's calendar split into free and booked
// slots. Unfiltered lists are served from cache and may lag a
// concurrent booking by up to the cache TTL.
func (s *availabilityService) List(ctx context.Context, muthawwifID uuid.UUID, from, to *time.Time) (*response.AvailabilityListResponse, error) {
	unfiltered := from == nil && to == nil

	if unfiltered {
		cached, err := s.cache.GetAvailability(ctx, muthawwifID)
		if err != nil {
			s.log.Warn("Failed to read availability cache", zap.Error(err), zap.String("user_id", muthawwifID.String()))
		} else if cached != nil {
			resp := response.SlotsToListResponse(cached)
			return &resp, nil
		}
	}

	slots, err := s.repo.Availability.ListByUser(ctx, muthawwifID, from, to)
	if err != nil {
		return nil, err
	}

	if unfiltered {
		if err := s.cache.SetAvailability(ctx, muthawwifID, slots); err != nil {
			s.log.Warn("Failed to write availability cache", zap.Error(err), zap.String("user_id", muthawwifID.String()))
		}
	}

	resp := response.SlotsToListResponse(slots)
	return &resp, nil
}

func (s *availabilityService) requireMuthawwif(ctx context.Context, userID uuid.UUID) error {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if user.Type != entity.UserTypeMuthawwif {
		return ErrNotMuthawwif
	}
	return nil
}

func enumerateDates(start, end time.Time, excludeWeekdays map[time.Weekday]bool, excludeDates map[time.Time]bool) []time.Time {
	var dates []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if excludeWeekdays[d.Weekday()] || excludeDates[d] {
			continue
		}
		dates = append(dates, d)
	}
	return dates
}
