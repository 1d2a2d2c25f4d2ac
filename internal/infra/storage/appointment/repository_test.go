package appointment

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AutoService/internal/domain"
	"github.com/m04kA/SMC-AutoService/internal/infra/storage/storagetest"
	"github.com/m04kA/SMC-AutoService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AutoService/pkg/ptr"
	"github.com/m04kA/SMC-AutoService/pkg/types"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db := storagetest.OpenDB(t)
	_, err := db.ExecContext(context.Background(), `
		INSERT INTO customers (name, nic_no) VALUES ('Nimal Perera', '901234567V');
		INSERT INTO vehicles (vehicle_number, chassis_no, make, model, year, owner_id)
		VALUES ('CAB-1234', 'NZE141-0001', 'Toyota', 'Axio', 2012, 1)`)
	require.NoError(t, err)

	return db
}

var day = time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC)

func newAppointment(start, end, ref string) *domain.Appointment {
	return &domain.Appointment{
		Date:                 day,
		StartTime:            types.TimeString(start),
		EndTime:              types.TimeString(end),
		Status:               domain.StatusUpcoming,
		VehicleID:            1,
		CustomerID:           ptr.Ptr(int64(1)),
		AdvanceFee:           decimal.NewFromInt(1000),
		PaymentTransactionID: ref,
	}
}

func TestRepository_CreateAndOverlap(t *testing.T) {
	repo := NewRepository(dbmetrics.Wrap(openTestDB(t), nil))
	ctx := context.Background()

	created, err := repo.Create(ctx, newAppointment("10:00", "10:45", "PAY-1"))
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	exists, err := repo.ExistsOverlapping(ctx, day, "10:30", "11:00")
	require.NoError(t, err)
	assert.True(t, exists)

	// Полуоткрытые интервалы: касание концами не пересечение
	exists, err = repo.ExistsOverlapping(ctx, day, "10:45", "11:15")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = repo.Create(ctx, newAppointment("10:15", "10:30", "PAY-2"))
	require.ErrorIs(t, err, ErrOverlap)

	_, err = repo.Create(ctx, newAppointment("10:45", "11:15", "PAY-3"))
	require.NoError(t, err)
}

func TestRepository_CancelledFreesTime(t *testing.T) {
	repo := NewRepository(dbmetrics.Wrap(openTestDB(t), nil))
	ctx := context.Background()

	created, err := repo.Create(ctx, newAppointment("10:00", "10:45", "PAY-1"))
	require.NoError(t, err)

	require.NoError(t, repo.UpdateStatus(ctx, created.ID, domain.StatusUpcoming, domain.StatusCancelled))
	require.ErrorIs(t, repo.UpdateStatus(ctx, created.ID, domain.StatusUpcoming, domain.StatusCompleted), ErrStatusChanged)
	require.ErrorIs(t, repo.UpdateStatus(ctx, 999, domain.StatusUpcoming, domain.StatusCompleted), ErrAppointmentNotFound)

	active, err := repo.ListActiveByDate(ctx, day)
	require.NoError(t, err)
	assert.Empty(t, active)

	_, err = repo.Create(ctx, newAppointment("10:00", "10:45", "PAY-2"))
	require.NoError(t, err)
}

func TestRepository_Filter(t *testing.T) {
	repo := NewRepository(dbmetrics.Wrap(openTestDB(t), nil))
	ctx := context.Background()

	_, err := repo.Create(ctx, newAppointment("14:00", "14:30", "PAY-1"))
	require.NoError(t, err)
	_, err = repo.Create(ctx, newAppointment("09:00", "09:30", "PAY-2"))
	require.NoError(t, err)

	found, err := repo.Filter(ctx, domain.AppointmentFilter{
		StartDate:     &day,
		EndDate:       &day,
		Status:        ptr.Ptr(domain.StatusUpcoming),
		VehicleNumber: ptr.Ptr("cab"),
		CustomerName:  ptr.Ptr("PERERA"),
	})
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, types.TimeString("09:00"), found[0].StartTime)
	assert.Equal(t, "CAB-1234", ptr.Deref(found[0].VehicleNumber))

	found, err = repo.Filter(ctx, domain.AppointmentFilter{ChassisNumber: ptr.Ptr("XYZ")})
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestRepository_FilterByCustomerIncludesOwnedVehicles(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(dbmetrics.Wrap(db, nil))
	ctx := context.Background()

	_, err := db.ExecContext(ctx, `
		INSERT INTO customers (name, phone_no) VALUES ('Kamal Silva', '0771234567');
		INSERT INTO vehicles (vehicle_number, make, model, year, owner_id)
		VALUES ('WP-5678', 'Honda', 'Fit', 2015, 2)`)
	require.NoError(t, err)

	// Машина клиента 1, запись оформлена на клиента 2
	onOwnedVehicle := newAppointment("09:00", "09:30", "PAY-1")
	onOwnedVehicle.CustomerID = ptr.Ptr(int64(2))
	_, err = repo.Create(ctx, onOwnedVehicle)
	require.NoError(t, err)

	// Машина и запись клиента 2
	foreign := newAppointment("10:00", "10:30", "PAY-2")
	foreign.VehicleID = 2
	foreign.CustomerID = ptr.Ptr(int64(2))
	_, err = repo.Create(ctx, foreign)
	require.NoError(t, err)

	found, err := repo.Filter(ctx, domain.AppointmentFilter{CustomerID: ptr.Ptr(int64(1))})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "PAY-1", found[0].PaymentTransactionID)

	found, err = repo.Filter(ctx, domain.AppointmentFilter{CustomerID: ptr.Ptr(int64(2))})
	require.NoError(t, err)
	assert.Len(t, found, 2)
}
