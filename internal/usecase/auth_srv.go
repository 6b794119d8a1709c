package usecase

import (
	"context"
	"fmt"
	"time"

	"muthawwif-booking/internal/data/entity"
	"muthawwif-booking/internal/data/repository"
	"muthawwif-booking/internal/dto/request"
	"muthawwif-booking/internal/dto/response"
	"muthawwif-booking/pkg/auth"
	"muthawwif-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	Refresh(ctx context.Context, req *request.RefreshTokenRequest) (*response.RefreshResponse, error)
	Logout(ctx context.Context, userID uuid.UUID, accessToken string) error
}

type authService struct {
	repo   *repository.Repository
	cache  Cache
	config *utils.Config
	log    *zap.Logger
}

func NewAuthService(repo *repository.Repository, cache Cache, config *utils.Config, log *zap.Logger) AuthService {
	return &authService{
		repo:   repo,
		cache:  cache,
		config: config,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	existing, err := s.repo.User.FindByUsername(ctx, req.Username)
	if err != nil {
		s.log.Error("Failed to check username", zap.Error(err), zap.String("username", req.Username))
		return nil, fmt.Errorf("check username: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("username %s already taken", req.Username)
	}

	existing, err = s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to check email", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("email %s already registered", req.Email)
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("process password: %w", err)
	}

	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Username:       req.Username,
		Email:          req.Email,
		PasswordHash:   hashed,
		Type:           entity.UserType(req.Type),
		FullName:       req.FullName,
		PassportNumber: req.PassportNumber,
		MobileNumber:   req.MobileNumber,
		WhatsappNumber: req.WhatsappNumber,
		Nationality:    req.Nationality,
		Bio:            req.Bio,
		Experience:     req.Experience,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("type", string(user.Type)),
	)

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	user, err := s.repo.User.FindByUsername(ctx, req.Username)
	if err != nil {
		s.log.Error("Failed to find user for login", zap.Error(err), zap.String("username", req.Username))
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil || !utils.CheckPassword(user.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := auth.CreateToken(
		s.config.JWT.Secret,
		user.ID.String(),
		user.Username,
		string(user.Type),
		s.config.JWT.AccessExpiry,
	)
	if err != nil {
		s.log.Error("Failed to create access token", zap.Error(err))
		return nil, fmt.Errorf("create access token: %w", err)
	}

	refreshToken, err := auth.CreateToken(
		s.config.JWT.Secret,
		user.ID.String(),
		user.Username,
		string(user.Type),
		s.config.JWT.RefreshExpiry,
	)
	if err != nil {
		s.log.Error("Failed to create refresh token", zap.Error(err))
		return nil, fmt.Errorf("create refresh token: %w", err)
	}

	// One valid refresh token per user; a new login invalidates the old.
	if err := s.cache.StoreRefreshToken(ctx, user.ID, refreshToken, s.config.JWT.RefreshExpiry); err != nil {
		s.log.Error("Failed to store refresh token", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	s.log.Info("User logged in", zap.String("user_id", user.ID.String()))

	return &response.AuthResponse{
		UserID:       user.ID.String(),
		Username:     user.Username,
		Type:         user.Type,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(s.config.JWT.AccessExpiry),
	}, nil
}

func (s *authService) Refresh(ctx context.Context, req *request.RefreshTokenRequest) (*response.RefreshResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	claims, err := auth.ParseToken(s.config.JWT.Secret, req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, ErrInvalidToken
	}

	stored, err := s.cache.GetRefreshToken(ctx, userID)
	if err != nil {
		s.log.Error("Failed to load stored refresh token", zap.Error(err), zap.String("user_id", claims.UserID))
		return nil, fmt.Errorf("load refresh token: %w", err)
	}
	if stored == "" || stored != req.RefreshToken {
		return nil, ErrInvalidToken
	}

	accessToken, err := auth.CreateToken(
		s.config.JWT.Secret,
		claims.UserID,
		claims.Username,
		claims.Type,
		s.config.JWT.AccessExpiry,
	)
	if err != nil {
		s.log.Error("Failed to create access token", zap.Error(err))
		return nil, fmt.Errorf("create access token: %w", err)
	}

	// Rotate the refresh token on every use.
	refreshToken, err := auth.CreateToken(
		s.config.JWT.Secret,
		claims.UserID,
		claims.Username,
		claims.Type,
		s.config.JWT.RefreshExpiry,
	)
	if err != nil {
		s.log.Error("Failed to create refresh token", zap.Error(err))
		return nil, fmt.Errorf("create refresh token: %w", err)
	}

	if err := s.cache.StoreRefreshToken(ctx, userID, refreshToken, s.config.JWT.RefreshExpiry); err != nil {
		s.log.Error("Failed to rotate refresh token", zap.Error(err), zap.String("user_id", claims.UserID))
		return nil, fmt.Errorf("rotate refresh token: %w", err)
	}

	return &response.RefreshResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(s.config.JWT.AccessExpiry),
	}, nil
}

func (s *authService) Logout(ctx context.Context, userID uuid.UUID, accessToken string) error {
	claims, err := auth.ParseToken(s.config.JWT.Secret, accessToken)
	if err != nil {
		return ErrInvalidToken
	}

	// Blacklist the access token for whatever lifetime it has left.
	var ttl time.Duration
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	if err := s.cache.BlacklistToken(ctx, accessToken, ttl); err != nil {
		s.log.Error("Failed to blacklist token", zap.Error(err), zap.String("user_id", userID.String()))
		return fmt.Errorf("blacklist token: %w", err)
	}

	if err := s.cache.DeleteRefreshToken(ctx, userID); err != nil {
		s.log.Error("Failed to delete refresh token", zap.Error(err), zap.String("user_id", userID.String()))
		return fmt.Errorf("delete refresh token: %w", err)
	}

	s.log.Info("User logged out", zap.String("user_id", userID.String()))
	return nil
}
