package pre_bill

import (
	"context"

	"github.com/m04kA/SMC-AutoService/internal/service/duration"
)

type QuoteProvider interface {
	Quote(ctx context.Context, vehicleMake, vehicleModel string, descriptions []string) (*duration.Quote, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
