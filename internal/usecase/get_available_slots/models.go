package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-AutoService/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	Date                time.Time // Дата для получения слотов (без времени)
	VehicleMake         string
	VehicleModel        string
	ServiceDescriptions []string // Выбранные услуги, повторы учитываются
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date            time.Time
	DurationMinutes int           // Суммарная длительность выбранных услуг
	Slots           []domain.Slot // По возрастанию времени начала
}
