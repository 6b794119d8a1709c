package usecase

import (
	"context"
	"testing"
	"time"

	"muthawwif-booking/internal/data/entity"
	"muthawwif-booking/internal/dto/request"
	"muthawwif-booking/pkg/auth"
	"muthawwif-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

type authFixture struct {
	users   *MockUserRepository
	cache   *MockCache
	service AuthService
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		users: &MockUserRepository{},
		cache: &MockCache{},
	}

	config := &utils.Config{
		JWT: utils.JWTConfig{
			Secret:        testSecret,
			AccessExpiry:  15 * time.Minute,
			RefreshExpiry: 24 * time.Hour,
		},
	}

	repo := newTestRepository(f.users, &MockServiceRepository{}, &MockAvailabilityRepository{}, &MockBookingRepository{}, &MockBookingDetailRepository{})
	f.service = NewAuthService(repo, f.cache, config, zap.NewNop())
	return f
}

func TestRegister_Success(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	f.users.On("FindByUsername", ctx, "pilgrim").Return(nil, nil).Once()
	f.users.On("FindByEmail", ctx, "pilgrim@example.com").Return(nil, nil).Once()
	f.users.On("Create", ctx, mock.AnythingOfType("*entity.User")).Return(nil).Once()

	resp, err := f.service.Register(ctx, &request.RegisterRequest{
		Username: "pilgrim",
		Email:    "pilgrim@example.com",
		Password: "password123",
		Type:     "customer",
		FullName: "Pilgrim One",
	})

	assert.NoError(t, err)
	assert.Equal(t, "pilgrim", resp.Username)
	assert.Equal(t, entity.UserTypeCustomer, resp.Type)
	f.users.AssertExpectations(t)
}

func TestRegister_UsernameTaken(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	f.users.On("FindByUsername", ctx, "pilgrim").Return(&entity.User{
		Base:     entity.Base{ID: uuid.New()},
		Username: "pilgrim",
	}, nil).Once()

	resp, err := f.service.Register(ctx, &request.RegisterRequest{
		Username: "pilgrim",
		Email:    "pilgrim@example.com",
		Password: "password123",
		Type:     "customer",
		FullName: "Pilgrim One",
	})

	assert.Nil(t, resp)
	assert.ErrorContains(t, err, "already taken")
	f.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLogin_Success(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	userID := uuid.New()
	hashed, err := utils.HashPassword("password123")
	assert.NoError(t, err)

	f.users.On("FindByUsername", ctx, "pilgrim").Return(&entity.User{
		Base:         entity.Base{ID: userID},
		Username:     "pilgrim",
		PasswordHash: hashed,
		Type:         entity.UserTypeCustomer,
	}, nil).Once()
	f.cache.On("StoreRefreshToken", ctx, userID, mock.Anything, 24*time.Hour).Return(nil).Once()

	resp, err := f.service.Login(ctx, &request.LoginRequest{
		Username: "pilgrim",
		Password: "password123",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)

	claims, err := auth.ParseToken(testSecret, resp.AccessToken)
	assert.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "customer", claims.Type)
}

func TestLogin_WrongPassword(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	hashed, err := utils.HashPassword("password123")
	assert.NoError(t, err)

	f.users.On("FindByUsername", ctx, "pilgrim").Return(&entity.User{
		Base:         entity.Base{ID: uuid.New()},
		Username:     "pilgrim",
		PasswordHash: hashed,
	}, nil).Once()

	resp, err := f.service.Login(ctx, &request.LoginRequest{
		Username: "pilgrim",
		Password: "wrongpassword",
	})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	f.cache.AssertNotCalled(t, "StoreRefreshToken", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestLogin_UnknownUser(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	f.users.On("FindByUsername", ctx, "ghost").Return(nil, nil).Once()

	resp, err := f.service.Login(ctx, &request.LoginRequest{
		Username: "ghost",
		Password: "password123",
	})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefresh_RotatesToken(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	userID := uuid.New()
	refreshToken, err := auth.CreateToken(testSecret, userID.String(), "pilgrim", "customer", 24*time.Hour)
	assert.NoError(t, err)

	f.cache.On("GetRefreshToken", ctx, userID).Return(refreshToken, nil).Once()
	f.cache.On("StoreRefreshToken", ctx, userID, mock.Anything, 24*time.Hour).Return(nil).Once()

	resp, err := f.service.Refresh(ctx, &request.RefreshTokenRequest{RefreshToken: refreshToken})

	assert.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	f.cache.AssertExpectations(t)
}

func TestRefresh_RejectsReplacedToken(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	userID := uuid.New()
	oldToken, err := auth.CreateToken(testSecret, userID.String(), "pilgrim", "customer", 24*time.Hour)
	assert.NoError(t, err)

	// The store holds a different token: this one was rotated out.
	f.cache.On("GetRefreshToken", ctx, userID).Return("another-token", nil).Once()

	resp, err := f.service.Refresh(ctx, &request.RefreshTokenRequest{RefreshToken: oldToken})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrInvalidToken)
	f.cache.AssertNotCalled(t, "StoreRefreshToken", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestLogout_BlacklistsAndDeletesRefresh(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	userID := uuid.New()
	token, err := auth.CreateToken(testSecret, userID.String(), "pilgrim", "customer", 15*time.Minute)
	assert.NoError(t, err)

	f.cache.On("BlacklistToken", ctx, token, mock.Anything).Return(nil).Once()
	f.cache.On("DeleteRefreshToken", ctx, userID).Return(nil).Once()

	err = f.service.Logout(ctx, userID, token)

	assert.NoError(t, err)
	f.cache.AssertExpectations(t)
}
