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

type ServiceRepository interface {
	Create(ctx context.Context, service *entity.MuthawwifService) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.MuthawwifService, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, sort string, limit, offset int) ([]*entity.MuthawwifService, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
	ExistsByUserAndType(ctx context.Context, userID uuid.UUID, serviceType entity.ServiceType, excludeID *uuid.UUID) (bool, error)
	Update(ctx context.Context, service *entity.MuthawwifService) error
	Delete(ctx context.Context, id, userID uuid.UUID) error

	// FindForUpdate locks the service row for the duration of the
	// caller's transaction so a concurrent edit cannot change the
	// rate or type mid-booking.
	FindForUpdate(ctx context.Context, q database.Querier, id uuid.UUID) (*entity.MuthawwifService, error)
}

type serviceRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewServiceRepository(db database.PgxIface, log *zap.Logger) ServiceRepository {
	return &serviceRepository{
		db:  db,
		log: log.With(zap.String("repository", "service")),
	}
}

func (r *serviceRepository) Create(ctx context.Context, service *entity.MuthawwifService) error {
	query := `
		INSERT INTO muthawwif_services (id, user_id, service_type, daily_rate, city, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		service.ID,
		service.UserID,
		service.ServiceType,
		service.DailyRate,
		service.City,
		service.CreatedAt,
		service.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create service",
			zap.Error(err),
			zap.String("user_id", service.UserID.String()),
			zap.String("service_type", string(service.ServiceType)),
		)
		return fmt.Errorf("create service for user %s: %w", service.UserID.String(), err)
	}

	return nil
}

func (r *serviceRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.MuthawwifService, error) {
	query := `
		SELECT id, user_id, service_type, daily_rate, city, created_at, updated_at
		FROM muthawwif_services
		WHERE id = $1
	`

	var service entity.MuthawwifService
	err := r.db.QueryRow(ctx, query, id).Scan(
		&service.ID,
		&service.UserID,
		&service.ServiceType,
		&service.DailyRate,
		&service.City,
		&service.CreatedAt,
		&service.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find service by ID",
			zap.Error(err),
			zap.String("service_id", id.String()),
		)
		return nil, fmt.Errorf("find service by ID %s: %w", id.String(), err)
	}

	return &service, nil
}

func (r *serviceRepository) FindByUserID(ctx context.Context, userID uuid.UUID, sort string, limit, offset int) ([]*entity.MuthawwifService, error) {
	query := `
		SELECT id, user_id, service_type, daily_rate, city, created_at, updated_at
		FROM muthawwif_services
		WHERE user_id = $1
	`

	switch sort {
	case "lowest_rate":
		query += " ORDER BY daily_rate ASC"
	case "highest_rate":
		query += " ORDER BY daily_rate DESC"
	default:
		query += " ORDER BY created_at"
	}
	query += " LIMIT $2 OFFSET $3"

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find services by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find services by user ID %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var services []*entity.MuthawwifService
	for rows.Next() {
		var service entity.MuthawwifService
		err := rows.Scan(
			&service.ID,
			&service.UserID,
			&service.ServiceType,
			&service.DailyRate,
			&service.City,
			&service.CreatedAt,
			&service.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan service row", zap.Error(err))
			return nil, fmt.Errorf("scan service row: %w", err)
		}
		services = append(services, &service)
	}

	return services, rows.Err()
}

func (r *serviceRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM muthawwif_services WHERE user_id = $1`

	var count int64
	err := r.db.QueryRow(ctx, query, userID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count services by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count services by user ID %s: %w", userID.String(), err)
	}

	return count, nil
}

func (r *serviceRepository) ExistsByUserAndType(ctx context.Context, userID uuid.UUID, serviceType entity.ServiceType, excludeID *uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM muthawwif_services WHERE user_id = $1 AND service_type = $2`
	args := []any{userID, serviceType}

	if excludeID != nil {
		query += ` AND id != $3`
		args = append(args, *excludeID)
	}
	query += `)`

	var exists bool
	err := r.db.QueryRow(ctx, query, args...).Scan(&exists)
	if err != nil {
		r.log.Error("Failed to check service type existence",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("service_type", string(serviceType)),
		)
		return false, fmt.Errorf("check service type %s for user %s: %w", string(serviceType), userID.String(), err)
	}

	return exists, nil
}

func (r *serviceRepository) Update(ctx context.Context, service *entity.MuthawwifService) error {
	query := `
		UPDATE muthawwif_services
		SET service_type = $3, daily_rate = $4, city = $5, updated_at = $6
		WHERE id = $1 AND user_id = $2
	`

	result, err := r.db.Exec(ctx, query,
		service.ID,
		service.UserID,
		service.ServiceType,
		service.DailyRate,
		service.City,
		service.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update service",
			zap.Error(err),
			zap.String("service_id", service.ID.String()),
		)
		return fmt.Errorf("update service %s: %w", service.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("service %s not found", service.ID.String())
	}

	return nil
}

func (r *serviceRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	query := `DELETE FROM muthawwif_services WHERE id = $1 AND user_id = $2`

	result, err := r.db.Exec(ctx, query, id, userID)
	if err != nil {
		r.log.Error("Failed to delete service",
			zap.Error(err),
			zap.String("service_id", id.String()),
		)
		return fmt.Errorf("delete service %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("service %s not found", id.String())
	}

	r.log.Info("Service deleted", zap.String("service_id", id.String()))
	return nil
}

func (r *serviceRepository) FindForUpdate(ctx context.Context, q database.Querier, id uuid.UUID) (*entity.MuthawwifService, error) {
	query := `
		SELECT id, user_id, service_type, daily_rate, city, created_at, updated_at
		FROM muthawwif_services
		WHERE id = $1
		FOR UPDATE
	`

	var service entity.MuthawwifService
	err := q.QueryRow(ctx, query, id).Scan(
		&service.ID,
		&service.UserID,
		&service.ServiceType,
		&service.DailyRate,
		&service.City,
		&service.CreatedAt,
		&service.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to lock service row",
			zap.Error(err),
			zap.String("service_id", id.String()),
		)
		return nil, fmt.Errorf("lock service %s: %w", id.String(), err)
	}

	return &service, nil
}
