package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-AutoService/internal/domain"
	"github.com/m04kA/SMC-AutoService/pkg/types"
)

// Request модели

// HolidayRequest запрос на создание или полную замену праздника
type HolidayRequest struct {
	Date      string  `json:"date"`                // YYYY-MM-DD
	StartTime *string `json:"startTime,omitempty"` // NULL = с начала дня
	EndTime   *string `json:"endTime,omitempty"`   // NULL = до конца дня
	Reason    *string `json:"reason,omitempty"`
}

// ListHolidaysRequest запрос на получение праздников за период
type ListHolidaysRequest struct {
	From *time.Time
	To   *time.Time
}

// ToDomainHoliday разбирает запрос в domain модель
// Возвращает описание первой найденной ошибки формата
func (r *HolidayRequest) ToDomainHoliday() (*domain.Holiday, error) {
	date, err := time.Parse(domain.DateFormat, strings.TrimSpace(r.Date))
	if err != nil {
		return nil, fmt.Errorf("date must be in format %s", domain.DateFormat)
	}

	h := &domain.Holiday{Date: date}

	if r.StartTime != nil {
		start, err := types.NewTimeStringFromString(strings.TrimSpace(*r.StartTime))
		if err != nil {
			return nil, errors.New("startTime must be in format HH:MM")
		}
		h.StartTime = &start
	}

	if r.EndTime != nil {
		end, err := types.NewTimeStringFromString(strings.TrimSpace(*r.EndTime))
		if err != nil {
			return nil, errors.New("endTime must be in format HH:MM")
		}
		h.EndTime = &end
	}

	if r.Reason != nil {
		reason := strings.TrimSpace(*r.Reason)
		if reason != "" {
			h.Reason = &reason
		}
	}

	return h, nil
}

// Response модели

// HolidayResponse ответ с данными праздника
type HolidayResponse struct {
	ID        int64     `json:"id"`
	Date      string    `json:"date"`
	StartTime *string   `json:"startTime,omitempty"`
	EndTime   *string   `json:"endTime,omitempty"`
	FullDay   bool      `json:"fullDay"`
	Reason    *string   `json:"reason,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// HolidayListResponse ответ со списком праздников
type HolidayListResponse struct {
	Holidays []HolidayResponse `json:"holidays"`
}

// Методы конвертации

// FromDomainHoliday конвертирует domain модель в DTO
func FromDomainHoliday(h *domain.Holiday) *HolidayResponse {
	if h == nil {
		return nil
	}

	resp := &HolidayResponse{
		ID:        h.ID,
		Date:      h.Date.Format(domain.DateFormat),
		FullDay:   h.IsFullDay(),
		Reason:    h.Reason,
		CreatedAt: h.CreatedAt,
		UpdatedAt: h.UpdatedAt,
	}
	if h.StartTime != nil {
		s := h.StartTime.String()
		resp.StartTime = &s
	}
	if h.EndTime != nil {
		e := h.EndTime.String()
		resp.EndTime = &e
	}

	return resp
}

// FromDomainHolidayList конвертирует список domain моделей в DTO
func FromDomainHolidayList(holidays []*domain.Holiday) *HolidayListResponse {
	resp := &HolidayListResponse{
		Holidays: make([]HolidayResponse, 0, len(holidays)),
	}
	for _, h := range holidays {
		resp.Holidays = append(resp.Holidays, *FromDomainHoliday(h))
	}
	return resp
}
