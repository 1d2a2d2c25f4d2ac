package book_appointment

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AutoService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("book_appointment: %w", domain.ErrValidation)

	// ErrOutsideWorkingHours возвращается, если запись не помещается в рабочие часы
	ErrOutsideWorkingHours = fmt.Errorf("book_appointment: outside working hours: %w", domain.ErrSchedulingConflict)

	// ErrHoliday возвращается, если запись пересекается с праздником или нерабочим периодом
	ErrHoliday = fmt.Errorf("book_appointment: facility is closed at this time: %w", domain.ErrSchedulingConflict)

	// ErrSlotNotAvailable возвращается, если время уже занято другой записью
	ErrSlotNotAvailable = fmt.Errorf("book_appointment: slot no longer available: %w", domain.ErrSchedulingConflict)

	// ErrLostCommitRace возвращается, если параллельная запись на то же время зафиксирована раньше
	ErrLostCommitRace = fmt.Errorf("book_appointment: lost commit race: %w", domain.ErrSchedulingConflict)

	// ErrBusy возвращается, если не удалось получить блокировку или исчерпаны повторы транзакции
	ErrBusy = fmt.Errorf("book_appointment: too many concurrent bookings, try again: %w", domain.ErrSchedulingConflict)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("book_appointment: internal error")
)

// Причины конфликтов для метрик
const (
	conflictOutsideHours = "outside_hours"
	conflictHoliday      = "holiday"
	conflictSlotTaken    = "slot_taken"
	conflictLostRace     = "lost_race"
	conflictBusy         = "busy"
)
