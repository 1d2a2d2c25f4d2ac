package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AutoService/internal/domain"
	"github.com/m04kA/SMC-AutoService/pkg/types"
)

// GenerateSlots возвращает свободные интервалы длины durationMinutes в пределах рабочего дня
//
// Курсор стартует с начала рабочего дня и каждый раз сдвигается на шаг календаря,
// даже если кандидат отклонен. Кандидат [cursor, cursor+duration) отклоняется,
// если пересекается с праздником или неотмененной записью этого дня.
// Генерация останавливается, когда конец кандидата выходит за конец рабочего дня.
//
// Функция чистая: одинаковые входные данные дают одинаковый результат.
func GenerateSlots(
	calendar *domain.Calendar,
	durationMinutes int,
	holidays []*domain.Holiday,
	appointments []*domain.Appointment,
) ([]domain.Slot, error) {
	if calendar == nil {
		return nil, fmt.Errorf("%w: calendar is required", ErrInvalidInput)
	}
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDuration, durationMinutes)
	}

	busy := busyIntervals(holidays, appointments)
	hours := calendar.WorkingHours()
	step := calendar.SlotGranularityMinutes()

	slots := make([]domain.Slot, 0)
	for cursor := hours.Start; cursor+durationMinutes <= hours.End; cursor += step {
		candidate := domain.Interval{Start: cursor, End: cursor + durationMinutes}
		if overlapsAny(candidate, busy) {
			continue
		}

		start, err := types.FromMinutes(candidate.Start)
		if err != nil {
			return nil, err
		}
		end, err := types.FromMinutes(candidate.End)
		if err != nil {
			return nil, err
		}
		slots = append(slots, domain.Slot{StartTime: start, EndTime: end})
	}

	return slots, nil
}

// busyIntervals собирает занятые интервалы дня, отмененные записи пропускаются
func busyIntervals(holidays []*domain.Holiday, appointments []*domain.Appointment) []domain.Interval {
	busy := make([]domain.Interval, 0, len(holidays)+len(appointments))
	for _, h := range holidays {
		busy = append(busy, h.BlockedInterval())
	}
	for _, a := range appointments {
		if a.IsCancelled() {
			continue
		}
		busy = append(busy, a.Interval())
	}
	return busy
}

func overlapsAny(candidate domain.Interval, busy []domain.Interval) bool {
	for _, b := range busy {
		if candidate.Overlaps(b) {
			return true
		}
	}
	return false
}

// dropStarted убирает слоты, которые уже начались к моменту now
// Для прошедших дат возвращает пустой список, для будущих - исходный
func dropStarted(slots []domain.Slot, date, now time.Time) []domain.Slot {
	if isDateInPast(date, now) {
		return []domain.Slot{}
	}
	if !isSameDay(date, now) {
		return slots
	}

	nowMinutes := now.Hour()*60 + now.Minute()
	available := make([]domain.Slot, 0, len(slots))
	for _, s := range slots {
		if s.StartTime.Minutes() > nowMinutes {
			available = append(available, s)
		}
	}
	return available
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return dateOnly.Before(nowOnly)
}
