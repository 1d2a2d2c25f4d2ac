package get_service_catalog

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-AutoService/internal/domain"
)

// ServiceResponse позиция прайса
type ServiceResponse struct {
	ID              int64           `json:"id"`
	Description     string          `json:"description"`
	Fee             decimal.Decimal `json:"fee"`
	DurationMinutes int             `json:"durationMinutes"`
}

// CatalogResponse прайс для марки и модели
type CatalogResponse struct {
	Make     string            `json:"make"`
	Model    string            `json:"model"`
	Services []ServiceResponse `json:"services"`
}

func FromDomainServiceFees(vehicleMake, vehicleModel string, fees []*domain.ServiceFee) *CatalogResponse {
	services := make([]ServiceResponse, 0, len(fees))
	for _, f := range fees {
		services = append(services, ServiceResponse{
			ID:              f.ID,
			Description:     f.Description,
			Fee:             f.Fee,
			DurationMinutes: f.DurationMinutes,
		})
	}
	return &CatalogResponse{
		Make:     vehicleMake,
		Model:    vehicleModel,
		Services: services,
	}
}
