package list_holidays

import (
	"fmt"
	"net/url"
	"time"

	"github.com/m04kA/SMC-AutoService/internal/domain"
	"github.com/m04kA/SMC-AutoService/internal/service/holidays/models"
)

// ToServiceRequest разбирает необязательные параметры from и to
func ToServiceRequest(query url.Values) (*models.ListHolidaysRequest, error) {
	from, err := parseOptionalDate(query, "from")
	if err != nil {
		return nil, err
	}
	to, err := parseOptionalDate(query, "to")
	if err != nil {
		return nil, err
	}
	return &models.ListHolidaysRequest{From: from, To: to}, nil
}

func parseOptionalDate(query url.Values, name string) (*time.Time, error) {
	raw := query.Get(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(domain.DateFormat, raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &t, nil
}
