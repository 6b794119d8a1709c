package usecase

import (
	"context"
	"testing"
	"time"

	"muthawwif-booking/internal/data/entity"
	"muthawwif-booking/internal/dto/request"
	"muthawwif-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type availabilityFixture struct {
	db      *MockDB
	tx      *MockTx
	users   *MockUserRepository
	slots   *MockAvailabilityRepository
	cache   *MockCache
	service AvailabilityService
}

func newAvailabilityFixture() *availabilityFixture {
	f := &availabilityFixture{
		db:    &MockDB{},
		tx:    &MockTx{},
		users: &MockUserRepository{},
		slots: &MockAvailabilityRepository{},
		cache: &MockCache{},
	}

	config := &utils.Config{
		Booking: utils.BookingConfig{LockTimeout: 3 * time.Second},
	}

	repo := newTestRepository(f.users, &MockServiceRepository{}, f.slots, &MockBookingRepository{}, &MockBookingDetailRepository{})
	f.service = NewAvailabilityService(f.db, repo, f.cache, config, zap.NewNop())
	return f
}

func (f *availabilityFixture) expectTransaction() {
	f.db.On("Begin", mock.Anything).Return(f.tx, nil).Once()
	f.tx.On("Exec", mock.Anything, "SET LOCAL lock_timeout = '3000ms'", mock.Anything).
		Return(pgconn.NewCommandTag("SET"), nil).Once()
	f.tx.On("Rollback", mock.Anything).Return(nil)
}

func muthawwifUser(id uuid.UUID) *entity.User {
	return &entity.User{
		Base:     entity.Base{ID: id},
		Username: "guide",
		Email:    "guide@example.com",
		Type:     entity.UserTypeMuthawwif,
		FullName: "Guide One",
	}
}

func TestEnumerateDates(t *testing.T) {
	// 2026-09-07 is a Monday.
	start := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 13, 0, 0, 0, 0, time.UTC)

	fridayOff := map[time.Weekday]bool{time.Friday: true}
	skipWednesday := map[time.Time]bool{
		time.Date(2026, 9, 9, 0, 0, 0, 0, time.UTC): true,
	}

	dates := enumerateDates(start, end, fridayOff, skipWednesday)

	// Seven days minus Friday the 11th and Wednesday the 9th.
	assert.Len(t, dates, 5)
	for _, date := range dates {
		assert.NotEqual(t, time.Friday, date.Weekday())
		assert.False(t, date.Equal(time.Date(2026, 9, 9, 0, 0, 0, 0, time.UTC)))
	}
}

func TestEnumerateDates_SingleDay(t *testing.T) {
	day := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	dates := enumerateDates(day, day, nil, nil)
	assert.Equal(t, []time.Time{day}, dates)
}

func TestAddRange_Success(t *testing.T) {
	f := newAvailabilityFixture()
	ctx := context.Background()
	userID := uuid.New()

	start := utils.TodayUTC().AddDate(0, 0, 7)
	end := start.AddDate(0, 0, 2)

	f.users.On("FindByID", ctx, userID).Return(muthawwifUser(userID), nil).Once()
	f.slots.On("AddDates", ctx, userID, mock.Anything).Return(int64(2), nil).Once()
	f.cache.On("InvalidateAvailability", ctx, userID).Return(nil).Once()

	resp, err := f.service.AddRange(ctx, userID, &request.AddAvailabilityRequest{
		StartDate: utils.FormatDate(start),
		EndDate:   utils.FormatDate(end),
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(3), resp.Requested)
	assert.Equal(t, int64(2), resp.Added)
	assert.Equal(t, int64(1), resp.Skipped)
	f.cache.AssertExpectations(t)
}

func TestAddRange_PastStartDate(t *testing.T) {
	f := newAvailabilityFixture()
	ctx := context.Background()
	userID := uuid.New()

	f.users.On("FindByID", ctx, userID).Return(muthawwifUser(userID), nil).Once()

	resp, err := f.service.AddRange(ctx, userID, &request.AddAvailabilityRequest{
		StartDate: utils.FormatDate(utils.TodayUTC().AddDate(0, 0, -1)),
	})

	assert.Nil(t, resp)
	assert.ErrorContains(t, err, "in the past")
	f.slots.AssertNotCalled(t, "AddDates", mock.Anything, mock.Anything, mock.Anything)
}

func TestAddRange_PastExcludeDate(t *testing.T) {
	f := newAvailabilityFixture()
	ctx := context.Background()
	userID := uuid.New()

	start := utils.TodayUTC().AddDate(0, 0, 7)
	past := utils.TodayUTC().AddDate(0, 0, -10)

	f.users.On("FindByID", ctx, userID).Return(muthawwifUser(userID), nil).Once()

	resp, err := f.service.AddRange(ctx, userID, &request.AddAvailabilityRequest{
		StartDate:    utils.FormatDate(start),
		EndDate:      utils.FormatDate(start.AddDate(0, 0, 2)),
		ExcludeDates: []string{utils.FormatDate(past)},
	})

	assert.Nil(t, resp)
	assert.ErrorContains(t, err, "exclude dates cannot be in the past")
	assert.ErrorContains(t, err, utils.FormatDate(past))
	f.slots.AssertNotCalled(t, "AddDates", mock.Anything, mock.Anything, mock.Anything)
}

func TestAddRange_EndBeforeStart(t *testing.T) {
	f := newAvailabilityFixture()
	ctx := context.Background()
	userID := uuid.New()

	start := utils.TodayUTC().AddDate(0, 0, 7)

	f.users.On("FindByID", ctx, userID).Return(muthawwifUser(userID), nil).Once()

	resp, err := f.service.AddRange(ctx, userID, &request.AddAvailabilityRequest{
		StartDate: utils.FormatDate(start),
		EndDate:   utils.FormatDate(start.AddDate(0, 0, -2)),
	})

	assert.Nil(t, resp)
	assert.ErrorContains(t, err, "before start_date")
}

func TestAddRange_CustomerForbidden(t *testing.T) {
	f := newAvailabilityFixture()
	ctx := context.Background()
	userID := uuid.New()

	f.users.On("FindByID", ctx, userID).Return(&entity.User{
		Base: entity.Base{ID: userID},
		Type: entity.UserTypeCustomer,
	}, nil).Once()

	resp, err := f.service.AddRange(ctx, userID, &request.AddAvailabilityRequest{
		StartDate: utils.FormatDate(utils.TodayUTC()),
	})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrNotMuthawwif)
}

func TestRemove_Success(t *testing.T) {
	f := newAvailabilityFixture()
	ctx := context.Background()
	userID := uuid.New()

	day := utils.TodayUTC().AddDate(0, 0, 7)
	existing := []*entity.Availability{
		{BaseSimple: entity.BaseSimple{ID: uuid.New()}, UserID: userID, AvailableDate: day, IsBooked: false},
	}

	f.users.On("FindByID", ctx, userID).Return(muthawwifUser(userID), nil).Once()
	f.expectTransaction()
	f.slots.On("LockDates", ctx, f.tx, userID, mock.Anything).Return(existing, nil).Once()
	f.slots.On("DeleteDates", ctx, f.tx, userID, mock.Anything).Return(int64(1), nil).Once()
	f.tx.On("Commit", mock.Anything).Return(nil).Once()
	f.cache.On("InvalidateAvailability", ctx, userID).Return(nil).Once()

	resp, err := f.service.Remove(ctx, userID, &request.RemoveAvailabilityRequest{
		Dates: []string{utils.FormatDate(day)},
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(1), resp.Removed)
	f.tx.AssertExpectations(t)
}

func TestRemove_PartialDeleteRollsBack(t *testing.T) {
	f := newAvailabilityFixture()
	ctx := context.Background()
	userID := uuid.New()

	dayA := utils.TodayUTC().AddDate(0, 0, 7)
	dayB := dayA.AddDate(0, 0, 1)
	existing := []*entity.Availability{
		{BaseSimple: entity.BaseSimple{ID: uuid.New()}, UserID: userID, AvailableDate: dayA, IsBooked: false},
		{BaseSimple: entity.BaseSimple{ID: uuid.New()}, UserID: userID, AvailableDate: dayB, IsBooked: false},
	}

	f.users.On("FindByID", ctx, userID).Return(muthawwifUser(userID), nil).Once()
	f.expectTransaction()
	f.slots.On("LockDates", ctx, f.tx, userID, mock.Anything).Return(existing, nil).Once()
	f.slots.On("DeleteDates", ctx, f.tx, userID, mock.Anything).Return(int64(1), nil).Once()

	resp, err := f.service.Remove(ctx, userID, &request.RemoveAvailabilityRequest{
		Dates: []string{utils.FormatDate(dayA), utils.FormatDate(dayB)},
	})

	assert.Nil(t, resp)
	assert.ErrorContains(t, err, "expected 2 dates, removed 1")
	f.tx.AssertNotCalled(t, "Commit", mock.Anything)
	f.tx.AssertCalled(t, "Rollback", mock.Anything)
	f.cache.AssertNotCalled(t, "InvalidateAvailability", mock.Anything, mock.Anything)
}

func TestRemove_AllOrNothing(t *testing.T) {
	f := newAvailabilityFixture()
	ctx := context.Background()
	userID := uuid.New()

	dayFree := utils.TodayUTC().AddDate(0, 0, 7)
	dayBooked := dayFree.AddDate(0, 0, 1)
	dayMissing := dayFree.AddDate(0, 0, 2)

	existing := []*entity.Availability{
		{BaseSimple: entity.BaseSimple{ID: uuid.New()}, UserID: userID, AvailableDate: dayFree, IsBooked: false},
		{BaseSimple: entity.BaseSimple{ID: uuid.New()}, UserID: userID, AvailableDate: dayBooked, IsBooked: true},
	}

	f.users.On("FindByID", ctx, userID).Return(muthawwifUser(userID), nil).Once()
	f.expectTransaction()
	f.slots.On("LockDates", ctx, f.tx, userID, mock.Anything).Return(existing, nil).Once()

	resp, err := f.service.Remove(ctx, userID, &request.RemoveAvailabilityRequest{
		Dates: []string{
			utils.FormatDate(dayFree),
			utils.FormatDate(dayBooked),
			utils.FormatDate(dayMissing),
		},
	})

	assert.Nil(t, resp)
	var conflict *DateConflictError
	assert.ErrorAs(t, err, &conflict)
	assert.Equal(t, []string{utils.FormatDate(dayMissing)}, conflict.NonExistent)
	assert.Equal(t, []string{utils.FormatDate(dayBooked)}, conflict.Booked)

	// The free date survives because the request failed whole.
	f.slots.AssertNotCalled(t, "DeleteDates", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.tx.AssertNotCalled(t, "Commit", mock.Anything)
	f.tx.AssertCalled(t, "Rollback", mock.Anything)
}

func TestList_CacheHitOnUnfilteredList(t *testing.T) {
	f := newAvailabilityFixture()
	ctx := context.Background()
	muthawwifID := uuid.New()

	cached := []*entity.Availability{
		{BaseSimple: entity.BaseSimple{ID: uuid.New()}, UserID: muthawwifID, AvailableDate: utils.TodayUTC(), IsBooked: false},
		{BaseSimple: entity.BaseSimple{ID: uuid.New()}, UserID: muthawwifID, AvailableDate: utils.TodayUTC().AddDate(0, 0, 1), IsBooked: true},
	}

	f.cache.On("GetAvailability", ctx, muthawwifID).Return(cached, nil).Once()

	resp, err := f.service.List(ctx, muthawwifID, nil, nil)

	assert.NoError(t, err)
	assert.Len(t, resp.Available, 1)
	assert.Len(t, resp.Booked, 1)
	f.slots.AssertNotCalled(t, "ListByUser", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestList_FilteredBypassesCache(t *testing.T) {
	f := newAvailabilityFixture()
	ctx := context.Background()
	muthawwifID := uuid.New()

	from := utils.TodayUTC()
	slots := []*entity.Availability{
		{BaseSimple: entity.BaseSimple{ID: uuid.New()}, UserID: muthawwifID, AvailableDate: from, IsBooked: false},
	}

	f.slots.On("ListByUser", ctx, muthawwifID, &from, (*time.Time)(nil)).Return(slots, nil).Once()

	resp, err := f.service.List(ctx, muthawwifID, &from, nil)

	assert.NoError(t, err)
	assert.Len(t, resp.Available, 1)
	f.cache.AssertNotCalled(t, "GetAvailability", mock.Anything, mock.Anything)
	f.cache.AssertNotCalled(t, "SetAvailability", mock.Anything, mock.Anything, mock.Anything)
}
