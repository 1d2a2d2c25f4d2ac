package servicefee

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AutoService/internal/domain"
	"github.com/m04kA/SMC-AutoService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AutoService/pkg/psqlbuilder"
)

var (
	// ErrServiceFeeNotFound возвращается, если для модели нет такой услуги в прайсе
	ErrServiceFeeNotFound = errors.New("servicefee.repository: service fee not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("servicefee.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("servicefee.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("servicefee.repository: failed to scan row")
)

var serviceFeeColumns = []string{
	"id",
	"description",
	"make",
	"model",
	"fee",
	"duration_minutes",
}

// Repository прайс услуг по маркам и моделям автомобилей
type Repository struct {
	db dbmetrics.DBExecutor
}

func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByDescription получает услугу по описанию для марки и модели
func (r *Repository) GetByDescription(ctx context.Context, description, vehicleMake, vehicleModel string) (*domain.ServiceFee, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceFeeColumns...).
		From("service_fees").
		Where(squirrel.Eq{
			"description": description,
			"make":        vehicleMake,
			"model":       vehicleModel,
		}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByDescription - build select query: %v", ErrBuildQuery, err)
	}

	var fee domain.ServiceFee
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&fee.ID,
		&fee.Description,
		&fee.Make,
		&fee.Model,
		&fee.Fee,
		&fee.DurationMinutes,
	)

	if err == sql.ErrNoRows {
		return nil, ErrServiceFeeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDescription - scan service fee: %w", ErrScanRow, err)
	}

	return &fee, nil
}

// ListByModel получает все услуги, доступные для марки и модели
func (r *Repository) ListByModel(ctx context.Context, vehicleMake, vehicleModel string) ([]*domain.ServiceFee, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceFeeColumns...).
		From("service_fees").
		Where(squirrel.Eq{"make": vehicleMake, "model": vehicleModel}).
		OrderBy("description ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByModel - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByModel - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	fees := make([]*domain.ServiceFee, 0)
	for rows.Next() {
		var fee domain.ServiceFee
		if err := rows.Scan(
			&fee.ID,
			&fee.Description,
			&fee.Make,
			&fee.Model,
			&fee.Fee,
			&fee.DurationMinutes,
		); err != nil {
			return nil, fmt.Errorf("%w: ListByModel - scan row: %w", ErrScanRow, err)
		}
		fees = append(fees, &fee)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByModel - rows error: %w", ErrScanRow, err)
	}

	return fees, nil
}
