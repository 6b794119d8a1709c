package repository

import (
	"context"
	"fmt"
	"time"

	"muthawwif-booking/internal/data/entity"
	"muthawwif-booking/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AvailabilityRepository interface {
	// Read path, no locks. Listings may observe slightly stale
	// is_booked state; writes never rely on them.
	ListByUser(ctx context.Context, userID uuid.UUID, from, to *time.Time) ([]*entity.Availability, error)

	// Maintenance path. LockDates and DeleteDates must run on the
	// caller's transaction so removal stays all-or-nothing against a
	// concurrent reservation.
	AddDates(ctx context.Context, userID uuid.UUID, dates []time.Time) (int64, error)
	LockDates(ctx context.Context, q database.Querier, userID uuid.UUID, dates []time.Time) ([]*entity.Availability, error)
	DeleteDates(ctx context.Context, q database.Querier, userID uuid.UUID, dates []time.Time) (int64, error)

	// Reservation path. These must run on the caller's transaction.
	LockSlots(ctx context.Context, q database.Querier, userID uuid.UUID, slotIDs []uuid.UUID) ([]*entity.Availability, error)
	SetBooked(ctx context.Context, q database.Querier, slotIDs []uuid.UUID, booked bool) error
	ReleaseByBooking(ctx context.Context, q database.Querier, bookingID uuid.UUID) ([]uuid.UUID, error)
}

type availabilityRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAvailabilityRepository(db database.PgxIface, log *zap.Logger) AvailabilityRepository {
	return &availabilityRepository{
		db:  db,
		log: log.With(zap.String("repository", "availability")),
	}
}

func (r *availabilityRepository) ListByUser(ctx context.Context, userID uuid.UUID, from, to *time.Time) ([]*entity.Availability, error) {
	query := `
		SELECT id, user_id, available_date, is_booked, created_at
		FROM muthawwif_availability
		WHERE user_id = $1
	`
	args := []any{userID}

	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(" AND available_date >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(" AND available_date <= $%d", len(args))
	}
	query += " ORDER BY available_date"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list availability",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("list availability for user %s: %w", userID.String(), err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

// LockDates takes exclusive row locks on the slots matching the given
// dates, in ascending id order like LockSlots, so maintenance and
// reservations serialize on contended rows instead of deadlocking.
func (r *availabilityRepository) LockDates(ctx context.Context, q database.Querier, userID uuid.UUID, dates []time.Time) ([]*entity.Availability, error) {
	if len(dates) == 0 {
		return []*entity.Availability{}, nil
	}

	query := `
		SELECT id, user_id, available_date, is_booked, created_at
		FROM muthawwif_availability
		WHERE user_id = $1 AND available_date = ANY($2)
		ORDER BY id
		FOR UPDATE
	`

	rows, err := q.Query(ctx, query, userID, dates)
	if err != nil {
		r.log.Error("Failed to lock availability by dates",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.Int("date_count", len(dates)),
		)
		return nil, fmt.Errorf("lock availability by dates for user %s: %w", userID.String(), err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

// AddDates inserts one free slot per date, silently skipping dates the
// muthawwif already has. Returns how many rows were actually inserted.
func (r *availabilityRepository) AddDates(ctx context.Context, userID uuid.UUID, dates []time.Time) (int64, error) {
	if len(dates) == 0 {
		return 0, nil
	}

	query := `INSERT INTO muthawwif_availability (id, user_id, available_date, is_booked, created_at) VALUES `
	args := []any{}

	now := time.Now()
	for i, date := range dates {
		if i > 0 {
			query += ", "
		}
		query += fmt.Sprintf("($%d, $%d, $%d, FALSE, $%d)",
			i*4+1, i*4+2, i*4+3, i*4+4)
		args = append(args, uuid.New(), userID, date, now)
	}
	query += " ON CONFLICT (user_id, available_date) DO NOTHING"

	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to add availability dates",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.Int("date_count", len(dates)),
		)
		return 0, fmt.Errorf("add availability dates for user %s: %w", userID.String(), err)
	}

	return result.RowsAffected(), nil
}

// DeleteDates removes the given dates in one statement. The caller
// holds the row locks from LockDates and has verified that every date
// exists and none is booked; the is_booked guard here is a final
// safety net.
func (r *availabilityRepository) DeleteDates(ctx context.Context, q database.Querier, userID uuid.UUID, dates []time.Time) (int64, error) {
	if len(dates) == 0 {
		return 0, nil
	}

	query := `
		DELETE FROM muthawwif_availability
		WHERE user_id = $1 AND available_date = ANY($2) AND is_booked = FALSE
	`

	result, err := q.Exec(ctx, query, userID, dates)
	if err != nil {
		r.log.Error("Failed to delete availability dates",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.Int("date_count", len(dates)),
		)
		return 0, fmt.Errorf("delete availability dates for user %s: %w", userID.String(), err)
	}

	return result.RowsAffected(), nil
}

// LockSlots takes exclusive row locks on the requested slots of one
// muthawwif. Rows are locked in ascending id order so two overlapping
// reservations cannot deadlock on each other. Slots belonging to a
// different muthawwif are filtered out by the query and simply absent
// from the result.
func (r *availabilityRepository) LockSlots(ctx context.Context, q database.Querier, userID uuid.UUID, slotIDs []uuid.UUID) ([]*entity.Availability, error) {
	if len(slotIDs) == 0 {
		return []*entity.Availability{}, nil
	}

	query := `
		SELECT id, user_id, available_date, is_booked, created_at
		FROM muthawwif_availability
		WHERE user_id = $1 AND id = ANY($2)
		ORDER BY id
		FOR UPDATE
	`

	rows, err := q.Query(ctx, query, userID, slotIDs)
	if err != nil {
		r.log.Error("Failed to lock availability slots",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.Int("slot_count", len(slotIDs)),
		)
		return nil, fmt.Errorf("lock availability slots for user %s: %w", userID.String(), err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

func (r *availabilityRepository) SetBooked(ctx context.Context, q database.Querier, slotIDs []uuid.UUID, booked bool) error {
	if len(slotIDs) == 0 {
		return nil
	}

	query := `UPDATE muthawwif_availability SET is_booked = $2 WHERE id = ANY($1)`

	result, err := q.Exec(ctx, query, slotIDs, booked)
	if err != nil {
		r.log.Error("Failed to update slot booked flag",
			zap.Error(err),
			zap.Int("slot_count", len(slotIDs)),
			zap.Bool("is_booked", booked),
		)
		return fmt.Errorf("set booked flag on %d slots: %w", len(slotIDs), err)
	}

	if result.RowsAffected() != int64(len(slotIDs)) {
		return fmt.Errorf("set booked flag: expected %d slots, updated %d", len(slotIDs), result.RowsAffected())
	}

	return nil
}

// ReleaseByBooking frees every slot consumed by a booking and returns
// the distinct muthawwif ids whose calendars changed, so the caller
// can invalidate their cached listings.
func (r *availabilityRepository) ReleaseByBooking(ctx context.Context, q database.Querier, bookingID uuid.UUID) ([]uuid.UUID, error) {
	query := `
		UPDATE muthawwif_availability
		SET is_booked = FALSE
		WHERE id IN (
			SELECT availability_id
			FROM booking_details
			WHERE booking_id = $1
		)
		RETURNING user_id
	`

	rows, err := q.Query(ctx, query, bookingID)
	if err != nil {
		r.log.Error("Failed to release slots for booking",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("release slots for booking %s: %w", bookingID.String(), err)
	}
	defer rows.Close()

	seen := map[uuid.UUID]bool{}
	var userIDs []uuid.UUID
	for rows.Next() {
		var userID uuid.UUID
		if err := rows.Scan(&userID); err != nil {
			r.log.Error("Failed to scan released slot row", zap.Error(err))
			return nil, fmt.Errorf("scan released slot row: %w", err)
		}
		if !seen[userID] {
			seen[userID] = true
			userIDs = append(userIDs, userID)
		}
	}

	return userIDs, rows.Err()
}

func scanSlots(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]*entity.Availability, error) {
	var slots []*entity.Availability
	for rows.Next() {
		var slot entity.Availability
		err := rows.Scan(
			&slot.ID,
			&slot.UserID,
			&slot.AvailableDate,
			&slot.IsBooked,
			&slot.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan availability row: %w", err)
		}
		slots = append(slots, &slot)
	}
	return slots, rows.Err()
}
