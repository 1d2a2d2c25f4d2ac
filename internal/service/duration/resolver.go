package duration

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-AutoService/internal/domain"
	servicefeeRepo "github.com/m04kA/SMC-AutoService/internal/infra/storage/servicefee"
)

// Quote итог по выбранным услугам: длительность и стоимость
type Quote struct {
	Items                []*domain.ServiceFee
	TotalDurationMinutes int
	TotalFee             decimal.Decimal
}

// Resolver вычисляет длительность визита по выбранным услугам
type Resolver struct {
	feeRepo ServiceFeeRepository
	logger  Logger
}

// NewResolver создает новый экземпляр resolver
func NewResolver(feeRepo ServiceFeeRepository, logger Logger) *Resolver {
	return &Resolver{
		feeRepo: feeRepo,
		logger:  logger,
	}
}

// TotalDuration суммирует длительности услуг для марки и модели
// Повторяющиеся описания учитываются каждое отдельно
func (r *Resolver) TotalDuration(ctx context.Context, vehicleMake, vehicleModel string, descriptions []string) (int, error) {
	quote, err := r.Quote(ctx, vehicleMake, vehicleModel, descriptions)
	if err != nil {
		return 0, err
	}
	return quote.TotalDurationMinutes, nil
}

// Quote собирает позиции прайса и считает суммарные длительность и стоимость
func (r *Resolver) Quote(ctx context.Context, vehicleMake, vehicleModel string, descriptions []string) (*Quote, error) {
	vehicleMake = strings.TrimSpace(vehicleMake)
	vehicleModel = strings.TrimSpace(vehicleModel)
	if vehicleMake == "" || vehicleModel == "" {
		return nil, ErrVehicleModelRequired
	}
	if len(descriptions) == 0 {
		return nil, ErrNoServicesSelected
	}
	if len(descriptions) > domain.MaxServicesPerBooking {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyServices, len(descriptions), domain.MaxServicesPerBooking)
	}

	quote := &Quote{
		Items:    make([]*domain.ServiceFee, 0, len(descriptions)),
		TotalFee: decimal.Zero,
	}

	for _, description := range descriptions {
		description = strings.TrimSpace(description)
		if description == "" {
			return nil, fmt.Errorf("%w: empty service description", ErrNoServicesSelected)
		}

		fee, err := r.feeRepo.GetByDescription(ctx, description, vehicleMake, vehicleModel)
		if err != nil {
			if errors.Is(err, servicefeeRepo.ErrServiceFeeNotFound) {
				r.logger.Warn("Quote: service %q not found for %s %s", description, vehicleMake, vehicleModel)
				return nil, fmt.Errorf("%w: %q for %s %s", ErrServiceNotFound, description, vehicleMake, vehicleModel)
			}
			r.logger.Error("Quote: failed to get service %q: %v", description, err)
			return nil, fmt.Errorf("%w: failed to get service fee: %w", ErrInternal, err)
		}

		quote.Items = append(quote.Items, fee)
		quote.TotalDurationMinutes += fee.DurationMinutes
		quote.TotalFee = quote.TotalFee.Add(fee.Fee)
	}

	return quote, nil
}

// Catalog возвращает услуги, доступные для марки и модели
func (r *Resolver) Catalog(ctx context.Context, vehicleMake, vehicleModel string) ([]*domain.ServiceFee, error) {
	vehicleMake = strings.TrimSpace(vehicleMake)
	vehicleModel = strings.TrimSpace(vehicleModel)
	if vehicleMake == "" || vehicleModel == "" {
		return nil, ErrVehicleModelRequired
	}

	fees, err := r.feeRepo.ListByModel(ctx, vehicleMake, vehicleModel)
	if err != nil {
		r.logger.Error("Catalog: failed to list services for %s %s: %v", vehicleMake, vehicleModel, err)
		return nil, fmt.Errorf("%w: failed to list service fees: %w", ErrInternal, err)
	}
	return fees, nil
}
