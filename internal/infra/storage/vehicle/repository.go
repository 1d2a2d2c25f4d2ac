package vehicle

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AutoService/internal/domain"
	"github.com/m04kA/SMC-AutoService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AutoService/pkg/pgerrors"
	"github.com/m04kA/SMC-AutoService/pkg/psqlbuilder"
)

var (
	// ErrVehicleNotFound возвращается, когда автомобиль не найден
	ErrVehicleNotFound = errors.New("vehicle.repository: vehicle not found")

	// ErrDuplicateVehicle возвращается при нарушении уникальности госномера или шасси
	ErrDuplicateVehicle = errors.New("vehicle.repository: vehicle with this number or chassis already exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("vehicle.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("vehicle.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("vehicle.repository: failed to scan row")
)

// Repository репозиторий автомобилей клиентов
type Repository struct {
	db dbmetrics.DBExecutor
}

func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByNumber получает автомобиль по госномеру
func (r *Repository) GetByNumber(ctx context.Context, vehicleNumber string) (*domain.Vehicle, error) {
	return r.getBy(ctx, "GetByNumber", squirrel.Eq{"vehicle_number": vehicleNumber})
}

// GetByChassis получает автомобиль по номеру шасси
func (r *Repository) GetByChassis(ctx context.Context, chassisNo string) (*domain.Vehicle, error) {
	return r.getBy(ctx, "GetByChassis", squirrel.Eq{"chassis_no": chassisNo})
}

// Create создает автомобиль
func (r *Repository) Create(ctx context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("vehicles").
		Columns("vehicle_number", "chassis_no", "make", "model", "year", "owner_id").
		Values(
			vehicle.VehicleNumber,
			vehicle.ChassisNo,
			vehicle.Make,
			vehicle.Model,
			vehicle.Year,
			vehicle.OwnerID,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&vehicle.ID,
		&vehicle.CreatedAt,
		&vehicle.UpdatedAt,
	)
	if err != nil {
		if pgerrors.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateVehicle, pgerrors.Constraint(err))
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return vehicle, nil
}

func (r *Repository) getBy(ctx context.Context, op string, where squirrel.Eq) (*domain.Vehicle, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"vehicle_number",
		"chassis_no",
		"make",
		"model",
		"year",
		"owner_id",
		"created_at",
		"updated_at",
	).
		From("vehicles").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var v domain.Vehicle
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&v.ID,
		&v.VehicleNumber,
		&v.ChassisNo,
		&v.Make,
		&v.Model,
		&v.Year,
		&v.OwnerID,
		&v.CreatedAt,
		&v.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrVehicleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan vehicle: %w", ErrScanRow, op, err)
	}

	return &v, nil
}
