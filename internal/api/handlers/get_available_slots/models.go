package get_available_slots

import (
	"net/url"
	"strings"
	"time"

	"github.com/m04kA/SMC-AutoService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-AutoService/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель слота
type SlotResponse struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// AvailableSlotsResponse HTTP модель ответа
type AvailableSlotsResponse struct {
	Date            string         `json:"date"`
	DurationMinutes int            `json:"durationMinutes"`
	Slots           []SlotResponse `json:"slots"`
}

// ToUseCaseRequest собирает запрос use case из query-параметров.
// Услуги передаются повторяющимся параметром service.
func ToUseCaseRequest(query url.Values) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, query.Get("date"))
	if err != nil {
		return nil, err
	}

	services := make([]string, 0, len(query["service"]))
	for _, s := range query["service"] {
		if s = strings.TrimSpace(s); s != "" {
			services = append(services, s)
		}
	}

	return &getAvailableSlots.Request{
		Date:                date,
		VehicleMake:         strings.TrimSpace(query.Get("make")),
		VehicleModel:        strings.TrimSpace(query.Get("model")),
		ServiceDescriptions: services,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			StartTime: s.StartTime.String(),
			EndTime:   s.EndTime.String(),
		})
	}
	return &AvailableSlotsResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
	}
}
