package book_appointment

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AutoService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AutoService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AutoService/internal/infra/lock"
	"github.com/m04kA/SMC-AutoService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-AutoService/pkg/txmanager"
	"github.com/m04kA/SMC-AutoService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// memStore хранилище записей в памяти; проверка и вставка не атомарны сами по себе,
// атомарность обеспечивает serialTx
type memStore struct {
	mu           sync.Mutex
	appointments []*domain.Appointment
	holidays     []*domain.Holiday
	nextID       int64
}

func (s *memStore) ExistsOverlapping(_ context.Context, date time.Time, start, end types.TimeString) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	want := domain.Interval{Start: start.Minutes(), End: end.Minutes()}
	for _, a := range s.appointments {
		if a.Date.Equal(date) && !a.IsCancelled() && a.Interval().Overlaps(want) {
			return true, nil
		}
	}
	return false, nil
}

func (s *memStore) Create(_ context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	created := *a
	created.ID = s.nextID
	s.appointments = append(s.appointments, &created)
	return &created, nil
}

func (s *memStore) ListByDate(_ context.Context, date time.Time) ([]*domain.Holiday, error) {
	out := make([]*domain.Holiday, 0)
	for _, h := range s.holidays {
		if h.Date.Equal(date) {
			out = append(out, h)
		}
	}
	return out, nil
}

func (s *memStore) ListActiveByDate(_ context.Context, date time.Time) ([]*domain.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.Appointment, 0)
	for _, a := range s.appointments {
		if a.Date.Equal(date) && !a.IsCancelled() {
			out = append(out, a)
		}
	}
	return out, nil
}

// serialTx выполняет транзакции строго по одной
type serialTx struct {
	mu sync.Mutex
}

func (t *serialTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(ctx)
}

type fakeCustomers struct{}

func (fakeCustomers) ResolveCustomer(_ context.Context, id domain.CustomerIdentifier, _ domain.CustomerDetails) (*domain.Customer, error) {
	return &domain.Customer{ID: 1, Name: id.Value}, nil
}

func (fakeCustomers) ResolveVehicle(_ context.Context, _ domain.VehicleIdentifier, _ domain.VehicleDetails, ownerID *int64) (*domain.Vehicle, error) {
	return &domain.Vehicle{ID: 2, Make: "Toyota", Model: "Axio", Year: 2012, OwnerID: ownerID}, nil
}

type fixedDuration int

func (d fixedDuration) TotalDuration(context.Context, string, string, []string) (int, error) {
	return int(d), nil
}

type recordingMetrics struct {
	mu        sync.Mutex
	committed int
	conflicts map[string]int
}

func (m *recordingMetrics) IncBookingCommitted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.committed++
}

func (m *recordingMetrics) IncBookingConflict(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.conflicts == nil {
		m.conflicts = make(map[string]int)
	}
	m.conflicts[reason]++
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

var bookingDate = time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC)

type fixture struct {
	calendar *domain.Calendar
	store    *memStore
	metrics  *recordingMetrics
	uc       *UseCase
}

func newFixture(t *testing.T, duration int) *fixture {
	t.Helper()
	cal, err := domain.NewCalendar("09:00", "17:00", 15)
	require.NoError(t, err)

	f := &fixture{calendar: cal, store: &memStore{}, metrics: &recordingMetrics{}}
	f.uc = NewUseCase(cal, fakeCustomers{}, fixedDuration(duration), f.store, f.store,
		&serialTx{}, lock.NoopLock{}, f.metrics, nopLogger{},
	).WithTimeProvider(fixedTime{now: time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)})
	return f
}

func request(start string) *Request {
	return &Request{
		Date:                bookingDate,
		StartTime:           types.TimeString(start),
		Vehicle:             domain.VehicleIdentifier{Kind: domain.VehicleIdentifierPlate, Value: "CAB-1234"},
		Customer:            domain.CustomerIdentifier{Kind: domain.CustomerIdentifierNIC, Value: "901234567V"},
		AdvanceFee:          decimal.RequireFromString("1500.00"),
		ServiceDescriptions: []string{"Oil Change"},
	}
}

func TestExecute_CreatesUpcomingAppointment(t *testing.T) {
	f := newFixture(t, 45)

	resp, err := f.uc.Execute(context.Background(), request("10:00"))
	require.NoError(t, err)

	assert.Equal(t, types.TimeString("10:45"), resp.EndTime)
	assert.Equal(t, 45, resp.DurationMinutes)
	assert.Equal(t, domain.StatusUpcoming, resp.Status)
	assert.Equal(t, int64(2), resp.VehicleID)
	assert.True(t, strings.HasPrefix(resp.PaymentTransactionID, domain.PaymentReferencePrefix))
	assert.True(t, decimal.RequireFromString("1500").Equal(resp.AdvanceFee))
	assert.Equal(t, 1, f.metrics.committed)
}

func TestExecute_OutsideWorkingHours(t *testing.T) {
	f := newFixture(t, 30)

	_, err := f.uc.Execute(context.Background(), request("16:45"))
	require.ErrorIs(t, err, ErrOutsideWorkingHours)
	assert.ErrorIs(t, err, domain.ErrSchedulingConflict)

	_, err = f.uc.Execute(context.Background(), request("08:45"))
	require.ErrorIs(t, err, ErrOutsideWorkingHours)

	// Ровно до конца рабочего дня допустимо
	_, err = f.uc.Execute(context.Background(), request("16:30"))
	require.NoError(t, err)

	assert.Equal(t, 2, f.metrics.conflicts[conflictOutsideHours])
}

func TestExecute_PastMidnightIsOutsideWorkingHours(t *testing.T) {
	f := newFixture(t, 120)

	_, err := f.uc.Execute(context.Background(), request("23:00"))
	require.ErrorIs(t, err, ErrOutsideWorkingHours)
}

func TestExecute_Holiday(t *testing.T) {
	f := newFixture(t, 30)
	start, end := types.TimeString("12:00"), types.TimeString("13:00")
	f.store.holidays = []*domain.Holiday{{ID: 1, Date: bookingDate, StartTime: &start, EndTime: &end}}

	_, err := f.uc.Execute(context.Background(), request("11:45"))
	require.ErrorIs(t, err, ErrHoliday)
	assert.ErrorIs(t, err, domain.ErrSchedulingConflict)

	_, err = f.uc.Execute(context.Background(), request("11:30"))
	require.NoError(t, err)
	_, err = f.uc.Execute(context.Background(), request("13:00"))
	require.NoError(t, err)
}

func TestExecute_SlotTaken(t *testing.T) {
	f := newFixture(t, 30)

	_, err := f.uc.Execute(context.Background(), request("10:00"))
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), request("10:15"))
	require.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Equal(t, 1, f.metrics.conflicts[conflictSlotTaken])

	// Граничащая запись не пересекается
	_, err = f.uc.Execute(context.Background(), request("10:30"))
	require.NoError(t, err)
}

func TestExecute_CancelledDoesNotBlock(t *testing.T) {
	f := newFixture(t, 30)
	f.store.appointments = []*domain.Appointment{{
		ID: 99, Date: bookingDate, StartTime: "10:00", EndTime: "10:45", Status: domain.StatusCancelled,
	}}

	_, err := f.uc.Execute(context.Background(), request("10:00"))
	require.NoError(t, err)
}

func TestExecute_GeneratedSlotIsBookable(t *testing.T) {
	f := newFixture(t, 45)
	hs, he := types.TimeString("12:00"), types.TimeString("13:00")
	f.store.holidays = []*domain.Holiday{{Date: bookingDate, StartTime: &hs, EndTime: &he}}

	for i := 0; i < 5; i++ {
		active, err := f.store.ListActiveByDate(context.Background(), bookingDate)
		require.NoError(t, err)
		holidays, err := f.store.ListByDate(context.Background(), bookingDate)
		require.NoError(t, err)

		slots, err := get_available_slots.GenerateSlots(f.calendar, 45, holidays, active)
		require.NoError(t, err)
		require.NotEmpty(t, slots)

		// Берем слот из середины списка, чтобы занятость была неравномерной
		slot := slots[len(slots)/2]
		_, err = f.uc.Execute(context.Background(), request(slot.StartTime.String()))
		require.NoError(t, err, "slot %s-%s", slot.StartTime, slot.EndTime)
	}
}

func TestExecute_ConcurrentOverlappingBookings(t *testing.T) {
	f := newFixture(t, 30)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
		errs    []error
	)
	for _, start := range []string{"10:00", "10:15"} {
		wg.Add(1)
		go func(start string) {
			defer wg.Done()
			_, err := f.uc.Execute(context.Background(), request(start))
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
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], domain.ErrSchedulingConflict)
	assert.Len(t, f.store.appointments, 1)
}

type overlapRepo struct{ *memStore }

func (overlapRepo) Create(context.Context, *domain.Appointment) (*domain.Appointment, error) {
	return nil, appointmentRepo.ErrOverlap
}

func TestExecute_LostCommitRace(t *testing.T) {
	f := newFixture(t, 30)
	f.uc.appointmentRepo = overlapRepo{f.store}

	_, err := f.uc.Execute(context.Background(), request("10:00"))
	require.ErrorIs(t, err, ErrLostCommitRace)
	assert.ErrorIs(t, err, domain.ErrSchedulingConflict)
}

type exhaustedTx struct{}

func (exhaustedTx) DoSerializable(context.Context, func(context.Context) error) error {
	return errors.Join(txmanager.ErrRetriesExhausted, errors.New("pq: could not serialize access"))
}

func TestExecute_RetriesExhausted(t *testing.T) {
	f := newFixture(t, 30)
	f.uc.txManager = exhaustedTx{}

	_, err := f.uc.Execute(context.Background(), request("10:00"))
	require.ErrorIs(t, err, ErrBusy)
	assert.Equal(t, 1, f.metrics.conflicts[conflictBusy])
}

type busyLock struct{}

func (busyLock) Acquire(context.Context, string) (lock.ReleaseFunc, error) {
	return nil, lock.ErrLockTimeout
}

func TestExecute_LockTimeout(t *testing.T) {
	f := newFixture(t, 30)
	f.uc.locker = busyLock{}

	_, err := f.uc.Execute(context.Background(), request("10:00"))
	require.ErrorIs(t, err, ErrBusy)
	assert.Empty(t, f.store.appointments)
}

func TestExecute_Validation(t *testing.T) {
	f := newFixture(t, 30)

	cases := map[string]func(r *Request){
		"no start time":     func(r *Request) { r.StartTime = "" },
		"bad start time":    func(r *Request) { r.StartTime = "9am" },
		"no services":       func(r *Request) { r.ServiceDescriptions = nil },
		"unknown vehicle":   func(r *Request) { r.Vehicle.Kind = "VIN" },
		"empty customer":    func(r *Request) { r.Customer.Value = " " },
		"negative fee":      func(r *Request) { r.AdvanceFee = decimal.NewFromInt(-1) },
		"date in the past":  func(r *Request) { r.Date = time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC) },
		"time already gone": func(r *Request) { r.Date = time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC); r.StartTime = "11:00" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := request("10:00")
			mutate(req)
			_, err := f.uc.Execute(context.Background(), req)
			require.ErrorIs(t, err, ErrInvalidInput)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
	assert.Empty(t, f.store.appointments)
}
