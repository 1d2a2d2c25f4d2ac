package domain

import "github.com/shopspring/decimal"

// ServiceFee represents a catalog entry: price and duration of a service for a vehicle model
type ServiceFee struct {
	ID              int64
	Description     string
	Make            string
	Model           string
	Fee             decimal.Decimal
	DurationMinutes int
}
