package usecase

import (
	"context"
	"fmt"
	"time"

	"muthawwif-booking/internal/data/entity"
	"muthawwif-booking/internal/data/repository"
	"muthawwif-booking/internal/dto/request"
	"muthawwif-booking/internal/dto/response"
	"muthawwif-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MuthawwifService interface {
	// Public directory.
	List(ctx context.Context, req *request.ListMuthawwifRequest) (*response.PaginatedResponse[response.MuthawwifResponse], error)
	Detail(ctx context.Context, muthawwifID uuid.UUID) (*response.MuthawwifDetailResponse, error)
	Nationalities(ctx context.Context) ([]string, error)

	// Service management, muthawwif only.
	CreateService(ctx context.Context, userID uuid.UUID, req *request.CreateServiceRequest) (*response.ServiceResponse, error)
	UpdateService(ctx context.Context, userID, serviceID uuid.UUID, req *request.UpdateServiceRequest) (*response.ServiceResponse, error)
	DeleteService(ctx context.Context, userID, serviceID uuid.UUID) error
	GetMyServices(ctx context.Context, userID uuid.UUID, sort string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ServiceResponse], error)
}

type muthawwifService struct {
	repo  *repository.Repository
	cache Cache
	log   *zap.Logger
}

func NewMuthawwifService(repo *repository.Repository, cache Cache, log *zap.Logger) MuthawwifService {
	return &muthawwifService{
		repo:  repo,
		cache: cache,
		log:   log.With(zap.String("service", "muthawwif")),
	}
}

func (s *muthawwifService) List(ctx context.Context, req *request.ListMuthawwifRequest) (*response.PaginatedResponse[response.MuthawwifResponse], error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	filter, err := buildMuthawwifFilter(req)
	if err != nil {
		return nil, err
	}

	users, err := s.repo.User.ListMuthawwif(ctx, *filter, req.Limit(), req.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.repo.User.CountMuthawwif(ctx, *filter)
	if err != nil {
		return nil, err
	}

	cards := make([]response.MuthawwifResponse, 0, len(users))
	for _, user := range users {
		services, err := s.repo.Service.FindByUserID(ctx, user.ID, "", 100, 0)
		if err != nil {
			return nil, err
		}
		cards = append(cards, response.MuthawwifToResponse(user, services))
	}

	return response.NewPaginatedResponse(cards, req.Page, req.Limit(), total), nil
}

func (s *muthawwifService) Detail(ctx context.Context, muthawwifID uuid.UUID) (*response.MuthawwifDetailResponse, error) {
	user, err := s.repo.User.FindMuthawwifByID(ctx, muthawwifID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	services, err := s.repo.Service.FindByUserID(ctx, muthawwifID, "", 100, 0)
	if err != nil {
		return nil, err
	}

	// Detail shows the forward calendar, free slots only.
	from := utils.TodayUTC()
	slots, err := s.repo.Availability.ListByUser(ctx, muthawwifID, &from, nil)
	if err != nil {
		return nil, err
	}

	availability := make([]response.AvailabilitySlotResponse, 0, len(slots))
	for _, slot := range slots {
		if !slot.IsBooked {
			availability = append(availability, response.SlotToResponse(slot))
		}
	}

	return &response.MuthawwifDetailResponse{
		MuthawwifResponse: response.MuthawwifToResponse(user, services),
		Availability:      availability,
	}, nil
}

func (s *muthawwifService) Nationalities(ctx context.Context) ([]string, error) {
	nationalities, err := s.repo.User.ListNationalities(ctx)
	if err != nil {
		return nil, err
	}
	if nationalities == nil {
		nationalities = []string{}
	}
	return nationalities, nil
}

func (s *muthawwifService) CreateService(ctx context.Context, userID uuid.UUID, req *request.CreateServiceRequest) (*response.ServiceResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	if err := s.requireMuthawwif(ctx, userID); err != nil {
		return nil, err
	}

	serviceType := entity.ServiceType(req.ServiceType)

	// One service per type per muthawwif.
	exists, err := s.repo.Service.ExistsByUserAndType(ctx, userID, serviceType, nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrServiceTypeExists
	}

	now := time.Now()
	service := &entity.MuthawwifService{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:      userID,
		ServiceType: serviceType,
		DailyRate:   req.DailyRate,
		City:        req.City,
	}

	if err := s.repo.Service.Create(ctx, service); err != nil {
		return nil, err
	}

	s.log.Info("Service created",
		zap.String("service_id", service.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("service_type", req.ServiceType),
	)

	resp := response.ServiceToResponse(service)
	return &resp, nil
}

func (s *muthawwifService) UpdateService(ctx context.Context, userID, serviceID uuid.UUID, req *request.UpdateServiceRequest) (*response.ServiceResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	service, err := s.repo.Service.FindByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if service == nil || service.UserID != userID {
		return nil, ErrServiceNotFound
	}

	if req.ServiceType != nil {
		newType := entity.ServiceType(*req.ServiceType)
		if newType != service.ServiceType {
			exists, err := s.repo.Service.ExistsByUserAndType(ctx, userID, newType, &serviceID)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, ErrServiceTypeExists
			}
			service.ServiceType = newType
		}
	}
	if req.DailyRate != nil {
		service.DailyRate = *req.DailyRate
	}
	if req.City != nil {
		service.City = *req.City
	}
	service.UpdatedAt = time.Now()

	if err := s.repo.Service.Update(ctx, service); err != nil {
		return nil, err
	}

	resp := response.ServiceToResponse(service)
	return &resp, nil
}

func (s *muthawwifService) DeleteService(ctx context.Context, userID, serviceID uuid.UUID) error {
	service, err := s.repo.Service.FindByID(ctx, serviceID)
	if err != nil {
		return err
	}
	if service == nil || service.UserID != userID {
		return ErrServiceNotFound
	}

	return s.repo.Service.Delete(ctx, serviceID, userID)
}

func (s *muthawwifService) GetMyServices(ctx context.Context, userID uuid.UUID, sort string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ServiceResponse], error) {
	services, err := s.repo.Service.FindByUserID(ctx, userID, sort, req.Limit(), req.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Service.CountByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return response.NewPaginatedResponse(response.ServicesToResponse(services), req.Page, req.Limit(), total), nil
}

func (s *muthawwifService) requireMuthawwif(ctx context.Context, userID uuid.UUID) error {
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

func buildMuthawwifFilter(req *request.ListMuthawwifRequest) (*entity.MuthawwifFilter, error) {
	filter := &entity.MuthawwifFilter{}

	if req.Nationality != "" {
		filter.Nationality = &req.Nationality
	}
	if req.ServiceType != "" {
		serviceType := entity.ServiceType(req.ServiceType)
		filter.ServiceType = &serviceType
	}
	if req.StartDate != "" {
		from, err := utils.ParseDate(req.StartDate)
		if err != nil {
			return nil, fmt.Errorf("invalid start_date %s: %w", req.StartDate, err)
		}
		filter.From = &from
	}
	if req.EndDate != "" {
		to, err := utils.ParseDate(req.EndDate)
		if err != nil {
			return nil, fmt.Errorf("invalid end_date %s: %w", req.EndDate, err)
		}
		filter.To = &to
	}
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return nil, fmt.Errorf("end_date is before start_date")
	}

	return filter, nil
}
