package usecase

import (
	"context"
	"time"

	"muthawwif-booking/internal/data/entity"
	"muthawwif-booking/internal/data/repository"
	"muthawwif-booking/pkg/database"
	"muthawwif-booking/pkg/mailer"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/mock"
)

// Shared mocks for the usecase tests.

func newTestRepository(
	users *MockUserRepository,
	services *MockServiceRepository,
	slots *MockAvailabilityRepository,
	bookings *MockBookingRepository,
	details *MockBookingDetailRepository,
) *repository.Repository {
	return &repository.Repository{
		User:          users,
		Service:       services,
		Availability:  slots,
		Booking:       bookings,
		BookingDetail: details,
	}
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) FindMuthawwifByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) ListMuthawwif(ctx context.Context, filter entity.MuthawwifFilter, limit, offset int) ([]*entity.User, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.User), args.Error(1)
}

func (m *MockUserRepository) CountMuthawwif(ctx context.Context, filter entity.MuthawwifFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) ListNationalities(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockServiceRepository struct {
	mock.Mock
}

func (m *MockServiceRepository) Create(ctx context.Context, service *entity.MuthawwifService) error {
	args := m.Called(ctx, service)
	return args.Error(0)
}

func (m *MockServiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.MuthawwifService, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.MuthawwifService), args.Error(1)
}

func (m *MockServiceRepository) FindByUserID(ctx context.Context, userID uuid.UUID, sort string, limit, offset int) ([]*entity.MuthawwifService, error) {
	args := m.Called(ctx, userID, sort, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.MuthawwifService), args.Error(1)
}

func (m *MockServiceRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockServiceRepository) ExistsByUserAndType(ctx context.Context, userID uuid.UUID, serviceType entity.ServiceType, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, serviceType, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockServiceRepository) Update(ctx context.Context, service *entity.MuthawwifService) error {
	args := m.Called(ctx, service)
	return args.Error(0)
}

func (m *MockServiceRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *MockServiceRepository) FindForUpdate(ctx context.Context, q database.Querier, id uuid.UUID) (*entity.MuthawwifService, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.MuthawwifService), args.Error(1)
}

type MockAvailabilityRepository struct {
	mock.Mock
}

func (m *MockAvailabilityRepository) ListByUser(ctx context.Context, userID uuid.UUID, from, to *time.Time) ([]*entity.Availability, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Availability), args.Error(1)
}

func (m *MockAvailabilityRepository) AddDates(ctx context.Context, userID uuid.UUID, dates []time.Time) (int64, error) {
	args := m.Called(ctx, userID, dates)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAvailabilityRepository) LockDates(ctx context.Context, q database.Querier, userID uuid.UUID, dates []time.Time) ([]*entity.Availability, error) {
	args := m.Called(ctx, q, userID, dates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Availability), args.Error(1)
}

func (m *MockAvailabilityRepository) DeleteDates(ctx context.Context, q database.Querier, userID uuid.UUID, dates []time.Time) (int64, error) {
	args := m.Called(ctx, q, userID, dates)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAvailabilityRepository) LockSlots(ctx context.Context, q database.Querier, userID uuid.UUID, slotIDs []uuid.UUID) ([]*entity.Availability, error) {
	args := m.Called(ctx, q, userID, slotIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Availability), args.Error(1)
}

func (m *MockAvailabilityRepository) SetBooked(ctx context.Context, q database.Querier, slotIDs []uuid.UUID, booked bool) error {
	args := m.Called(ctx, q, slotIDs, booked)
	return args.Error(0)
}

func (m *MockAvailabilityRepository) ReleaseByBooking(ctx context.Context, q database.Querier, bookingID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, q, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, q database.Querier, booking *entity.Booking) error {
	args := m.Called(ctx, q, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) FindForUpdate(ctx context.Context, q database.Querier, id, userID uuid.UUID) (*entity.Booking, error) {
	args := m.Called(ctx, q, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, q database.Querier, id uuid.UUID, status entity.BookingStatus) error {
	args := m.Called(ctx, q, id, status)
	return args.Error(0)
}

func (m *MockBookingRepository) FindSummariesByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.BookingSummary, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.BookingSummary), args.Error(1)
}

func (m *MockBookingRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type MockBookingDetailRepository struct {
	mock.Mock
}

func (m *MockBookingDetailRepository) CreateBatch(ctx context.Context, q database.Querier, details []*entity.BookingDetail) error {
	args := m.Called(ctx, q, details)
	return args.Error(0)
}

func (m *MockBookingDetailRepository) ExistsForSlots(ctx context.Context, q database.Querier, serviceID uuid.UUID, slotIDs []uuid.UUID) (bool, error) {
	args := m.Called(ctx, q, serviceID, slotIDs)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingDetailRepository) UpdateStatusByBooking(ctx context.Context, q database.Querier, bookingID uuid.UUID, status entity.BookingStatus) error {
	args := m.Called(ctx, q, bookingID, status)
	return args.Error(0)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetAvailability(ctx context.Context, userID uuid.UUID) ([]*entity.Availability, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Availability), args.Error(1)
}

func (m *MockCache) SetAvailability(ctx context.Context, userID uuid.UUID, slots []*entity.Availability) error {
	args := m.Called(ctx, userID, slots)
	return args.Error(0)
}

func (m *MockCache) InvalidateAvailability(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockCache) BlacklistToken(ctx context.Context, token string, ttl time.Duration) error {
	args := m.Called(ctx, token, ttl)
	return args.Error(0)
}

func (m *MockCache) IsTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	args := m.Called(ctx, token)
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) StoreRefreshToken(ctx context.Context, userID uuid.UUID, token string, ttl time.Duration) error {
	args := m.Called(ctx, userID, token, ttl)
	return args.Error(0)
}

func (m *MockCache) GetRefreshToken(ctx context.Context, userID uuid.UUID) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *MockCache) DeleteRefreshToken(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendBookingConfirmation(bc mailer.BookingConfirmation) error {
	args := m.Called(bc)
	return args.Error(0)
}

// MockTx embeds pgx.Tx; only the methods the booking transactions use
// are implemented, the rest panic if touched.
type MockTx struct {
	pgx.Tx
	mock.Mock
}

func (m *MockTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	called := m.Called(ctx, sql, args)
	return called.Get(0).(pgconn.CommandTag), called.Error(1)
}

func (m *MockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockDB hands out the transaction; the direct query surface is never
// used by the booking usecases.
type MockDB struct {
	mock.Mock
}

func (m *MockDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	panic("not used")
}

func (m *MockDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	panic("not used")
}

func (m *MockDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	panic("not used")
}

func (m *MockDB) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockDB) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDB) Close() {}
