package domain

import "errors"

// Виды ошибок. Каждая ошибка use case оборачивает ровно один вид,
// по нему handlers выбирают HTTP-статус.
var (
	// ErrValidation некорректные входные данные
	ErrValidation = errors.New("validation error")

	// ErrSchedulingConflict запись невозможна: вне рабочих часов, праздник или слот занят
	ErrSchedulingConflict = errors.New("scheduling conflict")

	// ErrNotFound запрошенная запись не существует
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists нарушение уникальности (телефон, NIC, госномер, шасси)
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidTransition недопустимая смена статуса записи
	ErrInvalidTransition = errors.New("invalid status transition")
)

// ErrInvalidCalendar некорректная конфигурация календаря
var ErrInvalidCalendar = errors.New("domain: invalid calendar configuration")
