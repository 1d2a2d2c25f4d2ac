package holidays

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AutoService/internal/domain"
)

var (
	// ErrHolidayNotFound возвращается, когда праздник не найден
	ErrHolidayNotFound = fmt.Errorf("holidays: holiday %w", domain.ErrNotFound)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("holidays: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("holidays: internal error")
)
