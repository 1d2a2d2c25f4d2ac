package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AutoService/internal/domain"
)

// UseCase use case для получения доступных слотов на день
type UseCase struct {
	calendar        *domain.Calendar
	durations       DurationResolver
	holidayRepo     HolidayRepository
	appointmentRepo AppointmentRepository
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	calendar *domain.Calendar,
	durations DurationResolver,
	holidayRepo HolidayRepository,
	appointmentRepo AppointmentRepository,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		calendar:        calendar,
		durations:       durations,
		holidayRepo:     holidayRepo,
		appointmentRepo: appointmentRepo,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case получения доступных слотов
// Результат вычисляется заново при каждом вызове и не кэшируется
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: date=%s, vehicle=%s %s, services=%d",
		req.Date.Format(domain.DateFormat), req.VehicleMake, req.VehicleModel, len(req.ServiceDescriptions))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	uc.metrics.IncSlotQuery()

	// 2. Длительность выбранных услуг для модели автомобиля
	duration, err := uc.durations.TotalDuration(ctx, req.VehicleMake, req.VehicleModel, req.ServiceDescriptions)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: failed to resolve duration: %v", err)
		return nil, err
	}

	// 3. Праздники и неотмененные записи на дату
	holidays, err := uc.holidayRepo.ListByDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get holidays: %v", err)
		return nil, fmt.Errorf("%w: failed to get holidays: %v", ErrInternal, err)
	}

	appointments, err := uc.appointmentRepo.ListActiveByDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 4. Генерируем слоты
	slots, err := GenerateSlots(uc.calendar, duration, holidays, appointments)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return nil, err
		}
		uc.logger.Error("GetAvailableSlots: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	// 5. Прошедшее время недоступно для записи
	slots = dropStarted(slots, req.Date, uc.timeProvider.Now())

	uc.logger.Info("GetAvailableSlots: %d slots of %d min on %s (holidays=%d, appointments=%d)",
		len(slots), duration, req.Date.Format(domain.DateFormat), len(holidays), len(appointments))

	return &Response{
		Date:            req.Date,
		DurationMinutes: duration,
		Slots:           slots,
	}, nil
}
