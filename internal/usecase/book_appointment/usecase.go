package book_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AutoService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AutoService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AutoService/internal/infra/lock"
	"github.com/m04kA/SMC-AutoService/pkg/txmanager"
)

// UseCase use case для записи на обслуживание
type UseCase struct {
	calendar        *domain.Calendar
	customers       CustomerResolver
	durations       DurationResolver
	holidayRepo     HolidayRepository
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	locker          Locker
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
// locker может быть lock.NoopLock, если Redis не настроен
func NewUseCase(
	calendar *domain.Calendar,
	customers CustomerResolver,
	durations DurationResolver,
	holidayRepo HolidayRepository,
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	locker Locker,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		calendar:        calendar,
		customers:       customers,
		durations:       durations,
		holidayRepo:     holidayRepo,
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		locker:          locker,
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

// Execute выполняет use case записи
// Проверка пересечений и вставка выполняются в одной сериализуемой транзакции,
// exclusion-ограничение в БД страхует от параллельной вставки
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BookAppointment: date=%s, time=%s, vehicle=%s, customer=%s, services=%d",
		req.Date.Format(domain.DateFormat), req.StartTime, req.Vehicle.Kind, req.Customer.Kind, len(req.ServiceDescriptions))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BookAppointment: validation failed: %v", err)
		return nil, err
	}
	if err := validateNotInPast(req, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("BookAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Блокировка на дату
	lockKey := "appointments:" + req.Date.Format(domain.DateFormat)
	release, err := uc.locker.Acquire(ctx, lockKey)
	if err != nil {
		if errors.Is(err, lock.ErrLockTimeout) {
			uc.logger.Warn("BookAppointment: lock %s is busy", lockKey)
			uc.metrics.IncBookingConflict(conflictBusy)
			return nil, ErrBusy
		}
		uc.logger.Error("BookAppointment: failed to acquire lock %s: %v", lockKey, err)
		return nil, fmt.Errorf("%w: failed to acquire lock: %v", ErrInternal, err)
	}
	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			uc.logger.Warn("BookAppointment: failed to release lock %s: %v", lockKey, err)
		}
	}()

	var result *domain.Appointment

	// 3. Проверки и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Клиент и автомобиль
		customer, err := uc.customers.ResolveCustomer(txCtx, req.Customer, req.CustomerDetails)
		if err != nil {
			return err
		}

		vehicle, err := uc.customers.ResolveVehicle(txCtx, req.Vehicle, req.VehicleDetails, &customer.ID)
		if err != nil {
			return err
		}

		// 3.2. Длительность выбранных услуг для модели автомобиля
		duration, err := uc.durations.TotalDuration(txCtx, vehicle.Make, vehicle.Model, req.ServiceDescriptions)
		if err != nil {
			return err
		}

		// 3.3. Рабочие часы
		endTime, err := req.StartTime.AddMinutes(duration)
		if err != nil {
			uc.logger.Warn("BookAppointment: %s + %d min is past midnight", req.StartTime, duration)
			uc.metrics.IncBookingConflict(conflictOutsideHours)
			return ErrOutsideWorkingHours
		}
		requested := domain.Interval{Start: req.StartTime.Minutes(), End: endTime.Minutes()}
		if !uc.calendar.IsWithinWorkingHours(requested) {
			uc.logger.Warn("BookAppointment: %s-%s is outside working hours %s-%s",
				req.StartTime, endTime, uc.calendar.WorkingStart(), uc.calendar.WorkingEnd())
			uc.metrics.IncBookingConflict(conflictOutsideHours)
			return ErrOutsideWorkingHours
		}

		// 3.4. Праздники
		holidays, err := uc.holidayRepo.ListByDate(txCtx, req.Date)
		if err != nil {
			uc.logger.Error("BookAppointment: failed to get holidays: %v", err)
			return fmt.Errorf("%w: failed to get holidays: %w", ErrInternal, err)
		}
		for _, h := range holidays {
			if requested.Overlaps(h.BlockedInterval()) {
				uc.logger.Warn("BookAppointment: %s-%s overlaps holiday id=%d", req.StartTime, endTime, h.ID)
				uc.metrics.IncBookingConflict(conflictHoliday)
				return ErrHoliday
			}
		}

		// 3.5. Пересечение с неотмененными записями
		busy, err := uc.appointmentRepo.ExistsOverlapping(txCtx, req.Date, req.StartTime, endTime)
		if err != nil {
			uc.logger.Error("BookAppointment: failed to check overlapping appointments: %v", err)
			return fmt.Errorf("%w: failed to check overlapping appointments: %w", ErrInternal, err)
		}
		if busy {
			uc.logger.Warn("BookAppointment: %s %s-%s is already taken",
				req.Date.Format(domain.DateFormat), req.StartTime, endTime)
			uc.metrics.IncBookingConflict(conflictSlotTaken)
			return ErrSlotNotAvailable
		}

		// 3.6. Создаем запись
		created, err := uc.appointmentRepo.Create(txCtx, &domain.Appointment{
			Date:                 req.Date,
			StartTime:            req.StartTime,
			EndTime:              endTime,
			Status:               domain.StatusUpcoming,
			VehicleID:            vehicle.ID,
			CustomerID:           &customer.ID,
			AdvanceFee:           req.AdvanceFee,
			PaymentTransactionID: newPaymentReference(),
		})
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrOverlap) {
				uc.logger.Warn("BookAppointment: lost commit race for %s %s-%s",
					req.Date.Format(domain.DateFormat), req.StartTime, endTime)
				uc.metrics.IncBookingConflict(conflictLostRace)
				return ErrLostCommitRace
			}
			uc.logger.Error("BookAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrRetriesExhausted) {
			uc.logger.Warn("BookAppointment: %v", err)
			uc.metrics.IncBookingConflict(conflictBusy)
			return nil, ErrBusy
		}
		return nil, err
	}

	uc.metrics.IncBookingCommitted()
	uc.logger.Info("BookAppointment: created appointment id=%d %s %s-%s",
		result.ID, result.Date.Format(domain.DateFormat), result.StartTime, result.EndTime)

	return &Response{
		ID:                   result.ID,
		Date:                 result.Date,
		StartTime:            result.StartTime,
		EndTime:              result.EndTime,
		DurationMinutes:      result.DurationMinutes(),
		Status:               result.Status,
		VehicleID:            result.VehicleID,
		CustomerID:           result.CustomerID,
		AdvanceFee:           result.AdvanceFee,
		PaymentTransactionID: result.PaymentTransactionID,
		CreatedAt:            result.CreatedAt,
		UpdatedAt:            result.UpdatedAt,
	}, nil
}

// newPaymentReference генерирует идентификатор платежа за аванс
func newPaymentReference() string {
	return domain.PaymentReferencePrefix + uuid.NewString()
}
