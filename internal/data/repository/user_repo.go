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

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindMuthawwifByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	ListMuthawwif(ctx context.Context, filter entity.MuthawwifFilter, limit, offset int) ([]*entity.User, error)
	CountMuthawwif(ctx context.Context, filter entity.MuthawwifFilter) (int64, error)
	ListNationalities(ctx context.Context) ([]string, error)
}

type userRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewUserRepository(db database.PgxIface, log *zap.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log.With(zap.String("repository", "user")),
	}
}

const userColumns = `id, username, email, password, type, full_name, passport_number,
	mobile_number, whatsapp_number, nationality, photo_url, bio, experience,
	created_at, updated_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	var user entity.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.Type,
		&user.FullName,
		&user.PassportNumber,
		&user.MobileNumber,
		&user.WhatsappNumber,
		&user.Nationality,
		&user.PhotoURL,
		&user.Bio,
		&user.Experience,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, username, email, password, type, full_name, passport_number,
			mobile_number, whatsapp_number, nationality, photo_url, bio, experience,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.db.Exec(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.Type,
		user.FullName,
		user.PassportNumber,
		user.MobileNumber,
		user.WhatsappNumber,
		user.Nationality,
		user.PhotoURL,
		user.Bio,
		user.Experience,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create user",
			zap.Error(err),
			zap.String("username", user.Username),
		)
		return fmt.Errorf("create user %s: %w", user.Username, err)
	}

	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)

	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find user by ID",
			zap.Error(err),
			zap.String("user_id", id.String()),
		)
		return nil, fmt.Errorf("find user by ID %s: %w", id.String(), err)
	}

	return user, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE username = $1`, userColumns)

	user, err := scanUser(r.db.QueryRow(ctx, query, username))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find user by username",
			zap.Error(err),
			zap.String("username", username),
		)
		return nil, fmt.Errorf("find user by username %s: %w", username, err)
	}

	return user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1`, userColumns)

	user, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find user by email",
			zap.Error(err),
			zap.String("email", email),
		)
		return nil, fmt.Errorf("find user by email %s: %w", email, err)
	}

	return user, nil
}

// muthawwifFilterClause builds the WHERE tail shared by ListMuthawwif
// and CountMuthawwif. Only muthawwif with at least one published
// service are listed; the availability filter requires a free slot in
// the requested window.
func muthawwifFilterClause(filter entity.MuthawwifFilter, args []any) (string, []any) {
	clause := ` AND EXISTS (SELECT 1 FROM muthawwif_services ms WHERE ms.user_id = u.id`
	if filter.ServiceType != nil {
		args = append(args, *filter.ServiceType)
		clause += fmt.Sprintf(" AND ms.service_type = $%d", len(args))
	}
	clause += `)`

	if filter.Nationality != nil {
		args = append(args, *filter.Nationality)
		clause += fmt.Sprintf(" AND u.nationality = $%d", len(args))
	}

	if filter.From != nil || filter.To != nil {
		clause += ` AND EXISTS (SELECT 1 FROM muthawwif_availability ma WHERE ma.user_id = u.id AND ma.is_booked = FALSE`
		if filter.From != nil {
			args = append(args, *filter.From)
			clause += fmt.Sprintf(" AND ma.available_date >= $%d", len(args))
		}
		if filter.To != nil {
			args = append(args, *filter.To)
			clause += fmt.Sprintf(" AND ma.available_date <= $%d", len(args))
		}
		clause += `)`
	}

	return clause, args
}

func (r *userRepository) ListMuthawwif(ctx context.Context, filter entity.MuthawwifFilter, limit, offset int) ([]*entity.User, error) {
	query := `
		SELECT u.id, u.username, u.email, u.password, u.type, u.full_name, u.passport_number,
			u.mobile_number, u.whatsapp_number, u.nationality, u.photo_url, u.bio, u.experience,
			u.created_at, u.updated_at
		FROM users u
		WHERE u.type = 'muthawwif'
	`
	clause, args := muthawwifFilterClause(filter, nil)
	query += clause

	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY u.full_name LIMIT $%d", len(args))
	args = append(args, offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list muthawwif", zap.Error(err))
		return nil, fmt.Errorf("list muthawwif: %w", err)
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			r.log.Error("Failed to scan muthawwif row", zap.Error(err))
			return nil, fmt.Errorf("scan muthawwif row: %w", err)
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

func (r *userRepository) CountMuthawwif(ctx context.Context, filter entity.MuthawwifFilter) (int64, error) {
	query := `SELECT COUNT(*) FROM users u WHERE u.type = 'muthawwif'`
	clause, args := muthawwifFilterClause(filter, nil)
	query += clause

	var count int64
	err := r.db.QueryRow(ctx, query, args...).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count muthawwif", zap.Error(err))
		return 0, fmt.Errorf("count muthawwif: %w", err)
	}

	return count, nil
}

// ListNationalities returns the distinct nationalities on record,
// feeding the directory filter dropdown.
func (r *userRepository) ListNationalities(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT nationality
		FROM users
		WHERE nationality IS NOT NULL
		ORDER BY nationality
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list nationalities", zap.Error(err))
		return nil, fmt.Errorf("list nationalities: %w", err)
	}
	defer rows.Close()

	var nationalities []string
	for rows.Next() {
		var nationality string
		if err := rows.Scan(&nationality); err != nil {
			r.log.Error("Failed to scan nationality row", zap.Error(err))
			return nil, fmt.Errorf("scan nationality row: %w", err)
		}
		nationalities = append(nationalities, nationality)
	}

	return nationalities, rows.Err()
}

func (r *userRepository) FindMuthawwifByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1 AND type = 'muthawwif'`, userColumns)

	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find muthawwif by ID",
			zap.Error(err),
			zap.String("user_id", id.String()),
		)
		return nil, fmt.Errorf("find muthawwif by ID %s: %w", id.String(), err)
	}

	return user, nil
}
