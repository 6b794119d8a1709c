package repository

import (
	"context"
	"fmt"

	"muthawwif-booking/internal/data/entity"
	"muthawwif-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingRepository interface {
	// Create must run on the same transaction that locked the slots.
	Create(ctx context.Context, q database.Querier, booking *entity.Booking) error

	// FindForUpdate locks the booking header owned by userID, or
	// returns nil when no such booking exists for that owner.
	FindForUpdate(ctx context.Context, q database.Querier, id, userID uuid.UUID) (*entity.Booking, error)

	UpdateStatus(ctx context.Context, q database.Querier, id uuid.UUID, status entity.BookingStatus) error

	FindSummariesByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.BookingSummary, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

func (r *bookingRepository) Create(ctx context.Context, q database.Querier, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, user_id, booking_status, number_companion, total_amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := q.Exec(ctx, query,
		booking.ID,
		booking.UserID,
		booking.Status,
		booking.NumberCompanion,
		booking.TotalAmount,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
			zap.String("user_id", booking.UserID.String()),
		)
		return fmt.Errorf("create booking %s: %w", booking.ID.String(), err)
	}

	return nil
}

func (r *bookingRepository) FindForUpdate(ctx context.Context, q database.Querier, id, userID uuid.UUID) (*entity.Booking, error) {
	query := `
		SELECT id, user_id, booking_status, number_companion, total_amount, created_at, updated_at
		FROM bookings
		WHERE id = $1 AND user_id = $2
		FOR UPDATE
	`

	var booking entity.Booking
	err := q.QueryRow(ctx, query, id, userID).Scan(
		&booking.ID,
		&booking.UserID,
		&booking.Status,
		&booking.NumberCompanion,
		&booking.TotalAmount,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to lock booking row",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("lock booking %s: %w", id.String(), err)
	}

	return &booking, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, q database.Querier, id uuid.UUID, status entity.BookingStatus) error {
	query := `UPDATE bookings SET booking_status = $2, updated_at = NOW() WHERE id = $1`

	result, err := q.Exec(ctx, query, id, status)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update booking %s status to %s: %w", id.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", id.String())
	}

	return nil
}

func (r *bookingRepository) FindSummariesByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.BookingSummary, error) {
	query := `
		SELECT
			b.id,
			b.booking_status,
			b.number_companion,
			b.total_amount,
			b.created_at,
			array_agg(DISTINCT ma.available_date ORDER BY ma.available_date) AS booking_dates,
			u.full_name AS muthawwif_name,
			u.mobile_number,
			u.whatsapp_number
		FROM bookings b
		INNER JOIN booking_details bd ON bd.booking_id = b.id
		INNER JOIN muthawwif_availability ma ON ma.id = bd.availability_id
		INNER JOIN muthawwif_services ms ON ms.id = bd.service_id
		INNER JOIN users u ON u.id = ms.user_id
		WHERE b.user_id = $1
		GROUP BY b.id, b.booking_status, b.number_companion, b.total_amount, b.created_at,
			u.full_name, u.mobile_number, u.whatsapp_number
		ORDER BY b.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find booking summaries",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find bookings for user %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var summaries []*entity.BookingSummary
	for rows.Next() {
		var summary entity.BookingSummary
		err := rows.Scan(
			&summary.ID,
			&summary.Status,
			&summary.NumberCompanion,
			&summary.TotalAmount,
			&summary.CreatedAt,
			&summary.BookingDates,
			&summary.MuthawwifName,
			&summary.MobileNumber,
			&summary.WhatsappNumber,
		)
		if err != nil {
			r.log.Error("Failed to scan booking summary row", zap.Error(err))
			return nil, fmt.Errorf("scan booking summary row: %w", err)
		}
		summaries = append(summaries, &summary)
	}

	return summaries, rows.Err()
}

func (r *bookingRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE user_id = $1`

	var count int64
	err := r.db.QueryRow(ctx, query, userID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count bookings for user %s: %w", userID.String(), err)
	}

	return count, nil
}
