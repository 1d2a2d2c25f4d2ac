package appointment

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AutoService/internal/domain"
	"github.com/m04kA/SMC-AutoService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AutoService/pkg/pgerrors"
	"github.com/m04kA/SMC-AutoService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-AutoService/pkg/types"
)

// OverlapConstraint имя exclusion-ограничения на пересечение активных записей
const OverlapConstraint = "appointments_no_overlap"

var appointmentColumns = []string{
	"a.id",
	"a.date",
	"a.start_time",
	"a.end_time",
	"a.status",
	"a.vehicle_id",
	"a.customer_id",
	"a.advance_fee",
	"a.payment_transaction_id",
	"a.created_at",
	"a.updated_at",
	"v.vehicle_number",
	"v.chassis_no",
	"c.name",
}

// Repository репозиторий для работы с записями на обслуживание
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую запись
// Пересечение с активной записью того же дня (exclusion-ограничение) возвращается как ErrOverlap
func (r *Repository) Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"date",
			"start_time",
			"end_time",
			"status",
			"vehicle_id",
			"customer_id",
			"advance_fee",
			"payment_transaction_id",
		).
		Values(
			appointment.Date.Format(domain.DateFormat),
			appointment.StartTime,
			appointment.EndTime,
			appointment.Status,
			appointment.VehicleID,
			appointment.CustomerID,
			appointment.AdvanceFee,
			appointment.PaymentTransactionID,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appointment.ID,
		&appointment.CreatedAt,
		&appointment.UpdatedAt,
	)
	if err != nil {
		if pgerrors.IsExclusionViolation(err) && pgerrors.Constraint(err) == OverlapConstraint {
			return nil, ErrOverlap
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return appointment, nil
}

// GetByID получает запись по ID вместе с данными автомобиля и клиента
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.selectWithRelations().
		Where(squirrel.Eq{"a.id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	appointments, err := r.scanAppointments(rows)
	if err != nil {
		return nil, err
	}
	if len(appointments) == 0 {
		return nil, ErrAppointmentNotFound
	}

	return appointments[0], nil
}

// ListActiveByDate получает неотмененные записи на дату, отсортированные по времени начала
// Внутри транзакции строки блокируются (FOR UPDATE)
func (r *Repository) ListActiveByDate(ctx context.Context, date time.Time) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"date",
		"start_time",
		"end_time",
		"status",
		"vehicle_id",
		"customer_id",
		"advance_fee",
		"payment_transaction_id",
		"created_at",
		"updated_at",
	).
		From("appointments").
		Where(squirrel.Eq{"date": date.Format(domain.DateFormat)}).
		Where(squirrel.NotEq{"status": domain.StatusCancelled}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	appointments := make([]*domain.Appointment, 0)
	for rows.Next() {
		var a domain.Appointment
		if err := rows.Scan(
			&a.ID,
			&a.Date,
			&a.StartTime,
			&a.EndTime,
			&a.Status,
			&a.VehicleID,
			&a.CustomerID,
			&a.AdvanceFee,
			&a.PaymentTransactionID,
			&a.CreatedAt,
			&a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: ListActiveByDate - scan row: %w", ErrScanRow, err)
		}
		appointments = append(appointments, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActiveByDate - rows error: %w", ErrScanRow, err)
	}

	return appointments, nil
}

// ExistsOverlapping проверяет, есть ли неотмененная запись на дату,
// пересекающая полуоткрытый интервал [start, end)
func (r *Repository) ExistsOverlapping(ctx context.Context, date time.Time, start, end types.TimeString) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("appointments").
		Where(squirrel.Eq{"date": date.Format(domain.DateFormat)}).
		Where(squirrel.NotEq{"status": domain.StatusCancelled}).
		Where(squirrel.Lt{"start_time": end}).
		Where(squirrel.Gt{"end_time": start}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: ExistsOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: ExistsOverlapping - execute query: %w", ErrExecQuery, err)
	}

	return exists, nil
}

// Filter ищет записи по фильтру, сортировка по дате и времени начала (ASC)
// Текстовые поля сравниваются по подстроке без учета регистра
func (r *Repository) Filter(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := r.selectWithRelations()

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"a.date": filter.StartDate.Format(domain.DateFormat)})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"a.date": filter.EndDate.Format(domain.DateFormat)})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"a.status": *filter.Status})
	}
	if filter.CustomerID != nil {
		// Записи клиента и записи на его автомобили, оформленные на другой идентификатор
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.Eq{"a.customer_id": *filter.CustomerID},
			squirrel.Eq{"v.owner_id": *filter.CustomerID},
		})
	}
	if filter.VehicleNumber != nil {
		selectBuilder = selectBuilder.Where(squirrel.ILike{"v.vehicle_number": containsPattern(*filter.VehicleNumber)})
	}
	if filter.ChassisNumber != nil {
		selectBuilder = selectBuilder.Where(squirrel.ILike{"v.chassis_no": containsPattern(*filter.ChassisNumber)})
	}
	if filter.CustomerName != nil {
		selectBuilder = selectBuilder.Where(squirrel.ILike{"c.name": containsPattern(*filter.CustomerName)})
	}

	query, args, err := selectBuilder.
		OrderBy("a.date ASC", "a.start_time ASC", "a.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Filter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Filter - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanAppointments(rows)
}

// UpdateStatus меняет статус записи с from на to
// Если запись существует, но ее статус уже не from, возвращает ErrStatusChanged
func (r *Repository) UpdateStatus(ctx context.Context, id int64, from, to domain.AppointmentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrStatusChanged
	}

	return nil
}

func (r *Repository) selectWithRelations() squirrel.SelectBuilder {
	return psqlbuilder.Select(appointmentColumns...).
		From("appointments a").
		Join("vehicles v ON v.id = a.vehicle_id").
		LeftJoin("customers c ON c.id = a.customer_id")
}

// scanAppointments сканирует результаты запроса с JOIN в слайс записей
func (r *Repository) scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		var a domain.Appointment
		var vehicleNumber, chassisNo, customerName sql.NullString

		err := rows.Scan(
			&a.ID,
			&a.Date,
			&a.StartTime,
			&a.EndTime,
			&a.Status,
			&a.VehicleID,
			&a.CustomerID,
			&a.AdvanceFee,
			&a.PaymentTransactionID,
			&a.CreatedAt,
			&a.UpdatedAt,
			&vehicleNumber,
			&chassisNo,
			&customerName,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %w", ErrScanRow, err)
		}

		a.VehicleNumber = nullStringPtr(vehicleNumber)
		a.ChassisNo = nullStringPtr(chassisNo)
		a.CustomerName = nullStringPtr(customerName)

		appointments = append(appointments, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %w", ErrScanRow, err)
	}

	return appointments, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern строит ILIKE-шаблон "содержит" с экранированием спецсимволов
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.TrimSpace(s)) + "%"
}

func nullStringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}
