package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AutoService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AutoService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AutoService/internal/service/appointments/models"
)

// Service сервис чтения и смены статуса записей
type Service struct {
	appointmentRepo AppointmentRepository
	customers       CustomerFinder
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	customers CustomerFinder,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		customers:       customers,
		logger:          logger,
	}
}

// GetByID получает запись по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	appointment, err := s.getByID(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainAppointment(appointment), nil
}

// Filter ищет записи по набору необязательных условий
// Все заданные условия объединяются через AND, сортировка по дате и времени начала
func (s *Service) Filter(ctx context.Context, req *models.FilterRequest) (*models.AppointmentListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("Filter: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	appointments, err := s.appointmentRepo.Filter(ctx, filter)
	if err != nil {
		s.logger.Error("Filter: repository error: %v", err)
		return nil, fmt.Errorf("%w: Filter - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Filter: fetched %d appointments", len(appointments))
	return models.FromDomainAppointmentList(appointments), nil
}

// GetCustomerAppointments возвращает записи текущего пользователя
// userIdentifier - NIC или телефон клиента; неизвестный клиент получает пустой список
func (s *Service) GetCustomerAppointments(ctx context.Context, userIdentifier string) (*models.AppointmentListResponse, error) {
	customer, err := s.customers.FindCustomer(ctx, userIdentifier)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Info("GetCustomerAppointments: no customer for identifier, returning empty list")
			return models.FromDomainAppointmentList(nil), nil
		}
		if errors.Is(err, domain.ErrValidation) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		s.logger.Error("GetCustomerAppointments: failed to find customer: %v", err)
		return nil, fmt.Errorf("%w: failed to find customer: %v", ErrInternal, err)
	}

	appointments, err := s.appointmentRepo.Filter(ctx, domain.AppointmentFilter{CustomerID: &customer.ID})
	if err != nil {
		s.logger.Error("GetCustomerAppointments: repository error for customer=%d: %v", customer.ID, err)
		return nil, fmt.Errorf("%w: GetCustomerAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCustomerAppointments: fetched %d appointments for customer=%d", len(appointments), customer.ID)
	return models.FromDomainAppointmentList(appointments), nil
}

// UpdateStatus переводит запись в COMPLETED или CANCELLED
// Завершенные и отмененные записи изменить нельзя
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("UpdateStatus: updating appointment id=%d to status=%s", id, req.Status)

	// 1. Валидируем целевой статус
	target, err := models.ToDomainStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if target == domain.StatusUpcoming {
		return nil, fmt.Errorf("%w: status can only be changed to %s or %s",
			ErrInvalidInput, domain.StatusCompleted, domain.StatusCancelled)
	}

	// 2. Получаем текущую запись
	current, err := s.getByID(ctx, "UpdateStatus", id)
	if err != nil {
		return nil, err
	}

	// 3. Проверяем допустимость перехода
	if !current.Status.CanTransitionTo(target) {
		s.logger.Warn("UpdateStatus: appointment id=%d is %s, cannot become %s", id, current.Status, target)
		return nil, fmt.Errorf("%w: appointment is %s", ErrInvalidTransition, current.Status)
	}

	// 4. Обновляем статус при условии, что он не изменился с момента чтения
	if err := s.appointmentRepo.UpdateStatus(ctx, id, current.Status, target); err != nil {
		switch {
		case errors.Is(err, appointmentRepo.ErrStatusChanged):
			s.logger.Warn("UpdateStatus: appointment id=%d status changed concurrently", id)
			return nil, fmt.Errorf("%w: appointment status changed concurrently", ErrInvalidTransition)
		case errors.Is(err, appointmentRepo.ErrAppointmentNotFound):
			return nil, ErrAppointmentNotFound
		default:
			s.logger.Error("UpdateStatus: repository error for appointment id=%d: %v", id, err)
			return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}
	}

	current.Status = target
	s.logger.Info("UpdateStatus: appointment id=%d is now %s", id, target)
	return models.FromDomainAppointment(current), nil
}

func (s *Service) getByID(ctx context.Context, op string, id int64) (*domain.Appointment, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%d not found", op, id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return appointment, nil
}
