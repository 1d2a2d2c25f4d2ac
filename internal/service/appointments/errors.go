package appointments

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AutoService/internal/domain"
)

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = fmt.Errorf("appointments: appointment %w", domain.ErrNotFound)

	// ErrInvalidInput возвращается при некорректных параметрах фильтра или запроса
	ErrInvalidInput = fmt.Errorf("appointments: %w", domain.ErrValidation)

	// ErrInvalidTransition возвращается при попытке изменить статус завершенной или отмененной записи
	ErrInvalidTransition = fmt.Errorf("appointments: %w", domain.ErrInvalidTransition)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("appointments: internal error")
)
