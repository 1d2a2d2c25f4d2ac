package book_appointment

import (
	"context"
	"database/sql"
	"os"
	"sync"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AutoService/internal/domain"
	"github.com/m04kA/SMC-AutoService/internal/infra/lock"
	appointmentRepo "github.com/m04kA/SMC-AutoService/internal/infra/storage/appointment"
	customerRepo "github.com/m04kA/SMC-AutoService/internal/infra/storage/customer"
	holidayRepo "github.com/m04kA/SMC-AutoService/internal/infra/storage/holiday"
	servicefeeRepo "github.com/m04kA/SMC-AutoService/internal/infra/storage/servicefee"
	vehicleRepo "github.com/m04kA/SMC-AutoService/internal/infra/storage/vehicle"
	"github.com/m04kA/SMC-AutoService/internal/service/customers"
	"github.com/m04kA/SMC-AutoService/internal/service/duration"
	"github.com/m04kA/SMC-AutoService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AutoService/pkg/txmanager"
	"github.com/m04kA/SMC-AutoService/pkg/types"
)

// Интеграционный тест, выполняется только при заданном SCHEDULER_TEST_DATABASE_DSN
func TestExecute_PostgresConcurrentOverlappingBookings(t *testing.T) {
	dsn := os.Getenv("SCHEDULER_TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("SCHEDULER_TEST_DATABASE_DSN is not set")
	}

	sqlDB, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	defer sqlDB.Close()

	ctx := context.Background()
	schema, err := os.ReadFile("../../../migrations/0001_init.sql")
	require.NoError(t, err)
	_, err = sqlDB.ExecContext(ctx, string(schema))
	require.NoError(t, err)
	_, err = sqlDB.ExecContext(ctx, `TRUNCATE appointments, holidays, vehicles, customers, service_fees RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
	_, err = sqlDB.ExecContext(ctx, `
		INSERT INTO service_fees (description, make, model, fee, duration_minutes)
		VALUES ('Oil Change', 'Toyota', 'Axio', 4500, 30)`)
	require.NoError(t, err)
	_, err = sqlDB.ExecContext(ctx, `
		INSERT INTO customers (name, nic_no) VALUES ('Nimal', '901234567V');
		INSERT INTO vehicles (vehicle_number, make, model, year, owner_id) VALUES ('CAB-1234', 'Toyota', 'Axio', 2012, 1)`)
	require.NoError(t, err)

	db := dbmetrics.Wrap(sqlDB, nil)
	cal, err := domain.NewCalendar("09:00", "17:00", 15)
	require.NoError(t, err)

	uc := NewUseCase(
		cal,
		customers.NewService(customerRepo.NewRepository(db), vehicleRepo.NewRepository(db), nopLogger{}),
		duration.NewResolver(servicefeeRepo.NewRepository(db), nopLogger{}),
		holidayRepo.NewRepository(db),
		appointmentRepo.NewRepository(db),
		txmanager.NewTransactionManager(db, txmanager.WithMaxAttempts(5), txmanager.WithBackoff(10*time.Millisecond)),
		lock.NoopLock{},
		&recordingMetrics{},
		nopLogger{},
	).WithTimeProvider(fixedTime{now: time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)})

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
		errs    []error
	)
	for _, start := range []string{"10:00", "10:15", "10:00", "10:15"} {
		wg.Add(1)
		go func(start string) {
			defer wg.Done()
			_, err := uc.Execute(ctx, &Request{
				Date:                bookingDate,
				StartTime:           types.TimeString(start),
				Vehicle:             domain.VehicleIdentifier{Kind: domain.VehicleIdentifierPlate, Value: "CAB-1234"},
				Customer:            domain.CustomerIdentifier{Kind: domain.CustomerIdentifierNIC, Value: "901234567V"},
				AdvanceFee:          decimal.NewFromInt(1000),
				ServiceDescriptions: []string{"Oil Change"},
			})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				success++
				return
			}
			errs = append(errs, err)
		}(start)
	}
	wg.Wait()

	assert.Equal(t, 1, success)
	for _, err := range errs {
		assert.ErrorIs(t, err, domain.ErrSchedulingConflict)
	}

	var count int
	require.NoError(t, sqlDB.QueryRowContext(ctx, `SELECT COUNT(*) FROM appointments WHERE status <> 'CANCELLED'`).Scan(&count))
	assert.Equal(t, 1, count)
}
