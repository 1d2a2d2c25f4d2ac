package get_service_catalog

import (
	"context"

	"github.com/m04kA/SMC-AutoService/internal/domain"
)

type CatalogProvider interface {
	Catalog(ctx context.Context, vehicleMake, vehicleModel string) ([]*domain.ServiceFee, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
