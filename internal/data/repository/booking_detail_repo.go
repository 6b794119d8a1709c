package repository

import (
	"context"
	"fmt"

	"muthawwif-booking/internal/data/entity"
	"muthawwif-booking/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingDetailRepository interface {
	// CreateBatch must run on the same transaction as the booking header.
	CreateBatch(ctx context.Context, q database.Querier, details []*entity.BookingDetail) error

	// ExistsForSlots reports whether any of the slots already carries a
	// non-cancelled detail for the same service. Guards against the same
	// customer (or a racing request) double-booking identical slots.
	ExistsForSlots(ctx context.Context, q database.Querier, serviceID uuid.UUID, slotIDs []uuid.UUID) (bool, error)

	UpdateStatusByBooking(ctx context.Context, q database.Querier, bookingID uuid.UUID, status entity.BookingStatus) error
}

type bookingDetailRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingDetailRepository(db database.PgxIface, log *zap.Logger) BookingDetailRepository {
	return &bookingDetailRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking_detail")),
	}
}

func (r *bookingDetailRepository) CreateBatch(ctx context.Context, q database.Querier, details []*entity.BookingDetail) error {
	if len(details) == 0 {
		return nil
	}

	query := `INSERT INTO booking_details (id, booking_id, service_id, availability_id, service_type, daily_rate, booking_status, created_at) VALUES `
	args := []any{}

	for i, detail := range details {
		if i > 0 {
			query += ", "
		}
		query += fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			i*8+1, i*8+2, i*8+3, i*8+4, i*8+5, i*8+6, i*8+7, i*8+8)
		args = append(args,
			detail.ID,
			detail.BookingID,
			detail.ServiceID,
			detail.AvailabilityID,
			detail.ServiceType,
			detail.DailyRate,
			detail.Status,
			detail.CreatedAt,
		)
	}

	_, err := q.Exec(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to create booking details",
			zap.Error(err),
			zap.String("booking_id", details[0].BookingID.String()),
			zap.Int("detail_count", len(details)),
		)
		return fmt.Errorf("create %d booking details: %w", len(details), err)
	}

	return nil
}

func (r *bookingDetailRepository) ExistsForSlots(ctx context.Context, q database.Querier, serviceID uuid.UUID, slotIDs []uuid.UUID) (bool, error) {
	if len(slotIDs) == 0 {
		return false, nil
	}

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM booking_details
			WHERE service_id = $1
			  AND availability_id = ANY($2)
			  AND booking_status != 'cancelled'
		)
	`

	var exists bool
	err := q.QueryRow(ctx, query, serviceID, slotIDs).Scan(&exists)
	if err != nil {
		r.log.Error("Failed to check existing booking details",
			zap.Error(err),
			zap.String("service_id", serviceID.String()),
			zap.Int("slot_count", len(slotIDs)),
		)
		return false, fmt.Errorf("check existing details for service %s: %w", serviceID.String(), err)
	}

	return exists, nil
}

func (r *bookingDetailRepository) UpdateStatusByBooking(ctx context.Context, q database.Querier, bookingID uuid.UUID, status entity.BookingStatus) error {
	query := `UPDATE booking_details SET booking_status = $2 WHERE booking_id = $1`

	_, err := q.Exec(ctx, query, bookingID, status)
	if err != nil {
		r.log.Error("Failed to update booking detail status",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update details of booking %s to %s: %w", bookingID.String(), string(status), err)
	}

	return nil
}
