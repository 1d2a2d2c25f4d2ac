package pre_bill

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-AutoService/internal/service/duration"
)

var errInvalidCustomCost = errors.New("costs must not be negative and custom items need a description")

// CustomItem произвольная работа вне прайса
type CustomItem struct {
	Description string          `json:"description"`
	Cost        decimal.Decimal `json:"cost"`
}

// PreBillRequest HTTP request model
type PreBillRequest struct {
	Make                string          `json:"make"`
	Model               string          `json:"model"`
	ServiceDescriptions []string        `json:"serviceDescriptions"`
	CustomItems         []CustomItem    `json:"customItems,omitempty"`
	EstimatedPartsCost  decimal.Decimal `json:"estimatedPartsCost"`
}

// CostLine строка разбивки стоимости
type CostLine struct {
	Description     string          `json:"description"`
	Cost            decimal.Decimal `json:"cost"`
	DurationMinutes int             `json:"durationMinutes,omitempty"`
}

// PreBillResponse предварительный счет
type PreBillResponse struct {
	ServiceBreakdown     []CostLine      `json:"serviceBreakdown"`
	PartsCostEstimate    decimal.Decimal `json:"partsCostEstimate"`
	EstimatedTotal       decimal.Decimal `json:"estimatedTotal"`
	TotalDurationMinutes int             `json:"totalDurationMinutes"`
}

// Validate проверяет, что суммы вне прайса неотрицательны
func (r *PreBillRequest) Validate() error {
	if r.EstimatedPartsCost.IsNegative() {
		return errInvalidCustomCost
	}
	for _, item := range r.CustomItems {
		if item.Cost.IsNegative() || strings.TrimSpace(item.Description) == "" {
			return errInvalidCustomCost
		}
	}
	return nil
}

// BuildResponse складывает прайсовые позиции, позиции вне прайса и запчасти
func BuildResponse(quote *duration.Quote, req *PreBillRequest) *PreBillResponse {
	lines := make([]CostLine, 0, len(quote.Items)+len(req.CustomItems))
	for _, item := range quote.Items {
		lines = append(lines, CostLine{
			Description:     item.Description,
			Cost:            item.Fee,
			DurationMinutes: item.DurationMinutes,
		})
	}

	total := quote.TotalFee.Add(req.EstimatedPartsCost)
	for _, item := range req.CustomItems {
		lines = append(lines, CostLine{
			Description: strings.TrimSpace(item.Description),
			Cost:        item.Cost,
		})
		total = total.Add(item.Cost)
	}

	return &PreBillResponse{
		ServiceBreakdown:     lines,
		PartsCostEstimate:    req.EstimatedPartsCost,
		EstimatedTotal:       total,
		TotalDurationMinutes: quote.TotalDurationMinutes,
	}
}
