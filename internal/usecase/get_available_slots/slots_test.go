package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AutoService/internal/domain"
	"github.com/m04kA/SMC-AutoService/pkg/types"
)

func mustCalendar(t *testing.T, start, end string, granularity int) *domain.Calendar {
	t.Helper()
	cal, err := domain.NewCalendar(types.TimeString(start), types.TimeString(end), granularity)
	require.NoError(t, err)
	return cal
}

func ts(s string) *types.TimeString {
	v := types.TimeString(s)
	return &v
}

func appointmentAt(start, end string, status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		StartTime: types.TimeString(start),
		EndTime:   types.TimeString(end),
		Status:    status,
	}
}

func TestGenerateSlots_FullDay(t *testing.T) {
	cal := mustCalendar(t, "09:00", "17:00", 15)

	slots, err := GenerateSlots(cal, 30, nil, nil)
	require.NoError(t, err)
	require.Len(t, slots, 31)

	assert.Equal(t, domain.Slot{StartTime: "09:00", EndTime: "09:30"}, slots[0])
	assert.Equal(t, domain.Slot{StartTime: "16:30", EndTime: "17:00"}, slots[len(slots)-1])
}

func TestGenerateSlots_BoundsAlignmentLength(t *testing.T) {
	cal := mustCalendar(t, "08:30", "18:00", 20)
	appointments := []*domain.Appointment{appointmentAt("11:10", "12:00", domain.StatusUpcoming)}

	for _, duration := range []int{1, 20, 45, 90, 570} {
		slots, err := GenerateSlots(cal, duration, nil, appointments)
		require.NoError(t, err)

		prev := -1
		for _, s := range slots {
			start, end := s.StartTime.Minutes(), s.EndTime.Minutes()
			assert.GreaterOrEqual(t, start, cal.WorkingStart().Minutes())
			assert.LessOrEqual(t, end, cal.WorkingEnd().Minutes())
			assert.Equal(t, duration, end-start)
			assert.Zero(t, (start-cal.WorkingStart().Minutes())%cal.SlotGranularityMinutes())
			assert.Greater(t, start, prev)
			prev = start
		}
	}
}

func TestGenerateSlots_HolidayBlocks(t *testing.T) {
	cal := mustCalendar(t, "09:00", "17:00", 15)
	holidays := []*domain.Holiday{{StartTime: ts("12:00"), EndTime: ts("13:00")}}

	slots, err := GenerateSlots(cal, 30, holidays, nil)
	require.NoError(t, err)

	for _, s := range slots {
		assert.False(t, s.Interval().Overlaps(domain.Interval{Start: 12 * 60, End: 13 * 60}),
			"slot %s-%s overlaps holiday", s.StartTime, s.EndTime)
	}
	// Слоты, примыкающие к празднику, остаются
	assert.Contains(t, slots, domain.Slot{StartTime: "11:30", EndTime: "12:00"})
	assert.Contains(t, slots, domain.Slot{StartTime: "13:00", EndTime: "13:30"})
	assert.NotContains(t, slots, domain.Slot{StartTime: "11:45", EndTime: "12:15"})
}

func TestGenerateSlots_FullDayHoliday(t *testing.T) {
	cal := mustCalendar(t, "09:00", "17:00", 15)

	slots, err := GenerateSlots(cal, 30, []*domain.Holiday{{}}, nil)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateSlots_OpenEndedHoliday(t *testing.T) {
	cal := mustCalendar(t, "09:00", "17:00", 15)

	// Без конца: закрыто с 15:00 до конца дня
	slots, err := GenerateSlots(cal, 30, []*domain.Holiday{{StartTime: ts("15:00")}}, nil)
	require.NoError(t, err)
	require.NotEmpty(t, slots)
	assert.Equal(t, types.TimeString("15:00"), slots[len(slots)-1].EndTime)

	// Без начала: закрыто с 00:00 до 10:00
	slots, err = GenerateSlots(cal, 30, []*domain.Holiday{{EndTime: ts("10:00")}}, nil)
	require.NoError(t, err)
	require.NotEmpty(t, slots)
	assert.Equal(t, types.TimeString("10:00"), slots[0].StartTime)
}

func TestGenerateSlots_CancelledAppointmentIgnored(t *testing.T) {
	cal := mustCalendar(t, "09:00", "17:00", 15)
	appointments := []*domain.Appointment{appointmentAt("10:00", "10:45", domain.StatusCancelled)}

	slots, err := GenerateSlots(cal, 30, nil, appointments)
	require.NoError(t, err)
	assert.Len(t, slots, 31)
	assert.Contains(t, slots, domain.Slot{StartTime: "10:00", EndTime: "10:30"})
}

func TestGenerateSlots_ActiveAppointmentsBlock(t *testing.T) {
	cal := mustCalendar(t, "09:00", "17:00", 15)
	appointments := []*domain.Appointment{
		appointmentAt("10:00", "10:45", domain.StatusUpcoming),
		appointmentAt("14:00", "15:00", domain.StatusCompleted),
	}

	slots, err := GenerateSlots(cal, 30, nil, appointments)
	require.NoError(t, err)

	for _, s := range slots {
		for _, a := range appointments {
			assert.False(t, s.Interval().Overlaps(a.Interval()))
		}
	}
	assert.Contains(t, slots, domain.Slot{StartTime: "09:30", EndTime: "10:00"})
	assert.Contains(t, slots, domain.Slot{StartTime: "10:45", EndTime: "11:15"})
}

func TestGenerateSlots_Idempotent(t *testing.T) {
	cal := mustCalendar(t, "09:00", "17:00", 15)
	holidays := []*domain.Holiday{{StartTime: ts("12:00"), EndTime: ts("13:00")}}
	appointments := []*domain.Appointment{appointmentAt("09:15", "10:00", domain.StatusUpcoming)}

	first, err := GenerateSlots(cal, 45, holidays, appointments)
	require.NoError(t, err)
	second, err := GenerateSlots(cal, 45, holidays, appointments)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGenerateSlots_DurationLongerThanDay(t *testing.T) {
	cal := mustCalendar(t, "09:00", "17:00", 15)

	slots, err := GenerateSlots(cal, 8*60+1, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateSlots_InvalidDuration(t *testing.T) {
	cal := mustCalendar(t, "09:00", "17:00", 15)

	for _, d := range []int{0, -15} {
		_, err := GenerateSlots(cal, d, nil, nil)
		require.ErrorIs(t, err, ErrInvalidDuration)
		assert.ErrorIs(t, err, domain.ErrValidation)
	}
}

type fakeDurations struct {
	minutes int
	err     error
}

func (f *fakeDurations) TotalDuration(context.Context, string, string, []string) (int, error) {
	return f.minutes, f.err
}

type fakeHolidays struct {
	holidays []*domain.Holiday
}

func (f *fakeHolidays) ListByDate(context.Context, time.Time) ([]*domain.Holiday, error) {
	return f.holidays, nil
}

type fakeAppointments struct {
	appointments []*domain.Appointment
	err          error
}

func (f *fakeAppointments) ListActiveByDate(context.Context, time.Time) ([]*domain.Appointment, error) {
	return f.appointments, f.err
}

type countingMetrics struct{ slotQueries int }

func (m *countingMetrics) IncSlotQuery() { m.slotQueries++ }

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestExecute(t *testing.T) {
	cal := mustCalendar(t, "09:00", "17:00", 15)
	date := time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC)
	m := &countingMetrics{}

	uc := NewUseCase(cal,
		&fakeDurations{minutes: 30},
		&fakeHolidays{holidays: []*domain.Holiday{{Date: date, StartTime: ts("12:00"), EndTime: ts("13:00")}}},
		&fakeAppointments{appointments: []*domain.Appointment{appointmentAt("09:00", "09:30", domain.StatusUpcoming)}},
		m, nopLogger{},
	).WithTimeProvider(fixedTime{now: time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)})

	resp, err := uc.Execute(context.Background(), &Request{
		Date:                date,
		VehicleMake:         "Toyota",
		VehicleModel:        "Axio",
		ServiceDescriptions: []string{"Oil Change"},
	})
	require.NoError(t, err)
	assert.Equal(t, 30, resp.DurationMinutes)
	assert.Equal(t, domain.Slot{StartTime: "09:30", EndTime: "10:00"}, resp.Slots[0])
	assert.Equal(t, 1, m.slotQueries)
}

func TestExecute_TodayDropsStartedSlots(t *testing.T) {
	cal := mustCalendar(t, "09:00", "17:00", 15)
	now := time.Date(2026, 10, 15, 16, 10, 0, 0, time.UTC)

	uc := NewUseCase(cal, &fakeDurations{minutes: 30}, &fakeHolidays{}, &fakeAppointments{}, &countingMetrics{}, nopLogger{}).
		WithTimeProvider(fixedTime{now: now})

	resp, err := uc.Execute(context.Background(), &Request{
		Date:                time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC),
		VehicleMake:         "Toyota",
		VehicleModel:        "Axio",
		ServiceDescriptions: []string{"Oil Change"},
	})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 2)
	assert.Equal(t, types.TimeString("16:15"), resp.Slots[0].StartTime)

	resp, err = uc.Execute(context.Background(), &Request{
		Date:                time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC),
		VehicleMake:         "Toyota",
		VehicleModel:        "Axio",
		ServiceDescriptions: []string{"Oil Change"},
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_Errors(t *testing.T) {
	cal := mustCalendar(t, "09:00", "17:00", 15)
	req := &Request{
		Date:                time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC),
		VehicleMake:         "Toyota",
		VehicleModel:        "Axio",
		ServiceDescriptions: []string{"Oil Change"},
	}

	t.Run("no services", func(t *testing.T) {
		uc := NewUseCase(cal, &fakeDurations{minutes: 30}, &fakeHolidays{}, &fakeAppointments{}, &countingMetrics{}, nopLogger{})
		_, err := uc.Execute(context.Background(), &Request{Date: req.Date, VehicleMake: "Toyota", VehicleModel: "Axio"})
		require.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("unknown service", func(t *testing.T) {
		notFound := errors.Join(errors.New("duration: service \"Wax\""), domain.ErrNotFound)
		uc := NewUseCase(cal, &fakeDurations{err: notFound}, &fakeHolidays{}, &fakeAppointments{}, &countingMetrics{}, nopLogger{})
		_, err := uc.Execute(context.Background(), req)
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("repository failure", func(t *testing.T) {
		uc := NewUseCase(cal, &fakeDurations{minutes: 30}, &fakeHolidays{},
			&fakeAppointments{err: errors.New("db down")}, &countingMetrics{}, nopLogger{})
		_, err := uc.Execute(context.Background(), req)
		require.ErrorIs(t, err, ErrInternal)
	})
}
