package holidays

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AutoService/internal/domain"
	holidayRepo "github.com/m04kA/SMC-AutoService/internal/infra/storage/holiday"
	"github.com/m04kA/SMC-AutoService/internal/service/holidays/models"
)

// Service сервис для управления праздниками и нерабочими периодами
type Service struct {
	holidayRepo HolidayRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса праздников
func NewService(holidayRepo HolidayRepository, logger Logger) *Service {
	return &Service{
		holidayRepo: holidayRepo,
		logger:      logger,
	}
}

// Create создает праздник
// Доступно только администратору
func (s *Service) Create(ctx context.Context, req *models.HolidayRequest) (*models.HolidayResponse, error) {
	s.logger.Info("Create: creating holiday for date=%s", req.Date)

	// 1. Разбираем и валидируем входные данные
	holiday, err := s.parse(req)
	if err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	// 2. Сохраняем
	created, err := s.holidayRepo.Create(ctx, holiday)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created holiday id=%d", created.ID)
	return models.FromDomainHoliday(created), nil
}

// GetByID получает праздник по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.HolidayResponse, error) {
	holiday, err := s.holidayRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, holidayRepo.ErrHolidayNotFound) {
			s.logger.Warn("GetByID: holiday id=%d not found", id)
			return nil, ErrHolidayNotFound
		}
		s.logger.Error("GetByID: repository error for holiday id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainHoliday(holiday), nil
}

// List получает праздники за период
// Публичный метод - доступен всем
func (s *Service) List(ctx context.Context, req *models.ListHolidaysRequest) (*models.HolidayListResponse, error) {
	if req.From != nil && req.To != nil && req.To.Before(*req.From) {
		s.logger.Warn("List: invalid period from=%s to=%s",
			req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat))
		return nil, fmt.Errorf("%w: 'to' must not be before 'from'", ErrInvalidInput)
	}

	holidays, err := s.holidayRepo.List(ctx, req.From, req.To)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d holidays", len(holidays))
	return models.FromDomainHolidayList(holidays), nil
}

// Update полностью заменяет данные праздника
// Доступно только администратору
func (s *Service) Update(ctx context.Context, id int64, req *models.HolidayRequest) (*models.HolidayResponse, error) {
	s.logger.Info("Update: updating holiday id=%d", id)

	// 1. Разбираем и валидируем входные данные
	holiday, err := s.parse(req)
	if err != nil {
		s.logger.Warn("Update: validation failed for holiday id=%d: %v", id, err)
		return nil, err
	}
	holiday.ID = id

	// 2. Сохраняем
	updated, err := s.holidayRepo.Update(ctx, holiday)
	if err != nil {
		if errors.Is(err, holidayRepo.ErrHolidayNotFound) {
			s.logger.Warn("Update: holiday id=%d not found", id)
			return nil, ErrHolidayNotFound
		}
		s.logger.Error("Update: repository error for holiday id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated holiday id=%d", id)
	return models.FromDomainHoliday(updated), nil
}

// Delete удаляет праздник
// Доступно только администратору
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.holidayRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, holidayRepo.ErrHolidayNotFound) {
			s.logger.Warn("Delete: holiday id=%d not found", id)
			return ErrHolidayNotFound
		}
		s.logger.Error("Delete: repository error for holiday id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted holiday id=%d", id)
	return nil
}

// parse разбирает запрос и проверяет бизнес-правила праздника
func (s *Service) parse(req *models.HolidayRequest) (*domain.Holiday, error) {
	holiday, err := req.ToDomainHoliday()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// Конец без начала допустим: блокировка с 00:00
	if holiday.StartTime != nil && holiday.EndTime != nil && !holiday.StartTime.IsBefore(*holiday.EndTime) {
		return nil, fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}

	if holiday.Reason != nil && len(*holiday.Reason) > domain.MaxHolidayReasonLen {
		return nil, fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, domain.MaxHolidayReasonLen)
	}

	return holiday, nil
}
