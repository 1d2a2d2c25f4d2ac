package book_appointment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AutoService/internal/api/handlers"
	"github.com/m04kA/SMC-AutoService/internal/api/middleware"
	"github.com/m04kA/SMC-AutoService/internal/domain"
	bookAppointment "github.com/m04kA/SMC-AutoService/internal/usecase/book_appointment"
	"github.com/m04kA/SMC-AutoService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	executeFunc func(ctx context.Context, req *bookAppointment.Request) (*bookAppointment.Response, error)
}

func (f *fakeUseCase) Execute(ctx context.Context, req *bookAppointment.Request) (*bookAppointment.Response, error) {
	if f.executeFunc == nil {
		panic("Execute not configured")
	}
	return f.executeFunc(ctx, req)
}

const body = `{
	"date": "2026-11-02",
	"startTime": "10:00",
	"vehicle": {"kind": "plate", "value": " CAB-1234 ", "make": "Toyota", "model": "Axio", "year": 2012},
	"customer": {"kind": "NIC", "name": "Nimal"},
	"advanceFee": "1000.50",
	"serviceDescriptions": ["Oil Change", "Oil Change"]
}`

func serve(h *Handler, payload, userID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/user/appointments", strings.NewReader(payload))
	if userID != "" {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	uc := &fakeUseCase{
		executeFunc: func(_ context.Context, req *bookAppointment.Request) (*bookAppointment.Response, error) {
			assert.Equal(t, "2026-11-02", req.Date.Format(domain.DateFormat))
			assert.Equal(t, types.TimeString("10:00"), req.StartTime)
			assert.Equal(t, domain.VehicleIdentifier{Kind: domain.VehicleIdentifierPlate, Value: "CAB-1234"}, req.Vehicle)
			assert.Equal(t, domain.CustomerIdentifier{Kind: domain.CustomerIdentifierNIC, Value: "901234567V"}, req.Customer)
			assert.True(t, decimal.RequireFromString("1000.50").Equal(req.AdvanceFee))
			assert.Len(t, req.ServiceDescriptions, 2)

			return &bookAppointment.Response{
				ID:                   1,
				Date:                 req.Date,
				StartTime:            "10:00",
				EndTime:              "11:00",
				DurationMinutes:      60,
				Status:               domain.StatusUpcoming,
				VehicleID:            3,
				AdvanceFee:           req.AdvanceFee,
				PaymentTransactionID: "PAY-1",
				CreatedAt:            time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC),
				UpdatedAt:            time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC),
			}, nil
		},
	}

	rec := serve(NewHandler(uc, nopLogger{}), body, "901234567V")
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp AppointmentResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "11:00", resp.EndTime)
	assert.Equal(t, "UPCOMING", resp.Status)
	assert.Equal(t, "PAY-1", resp.PaymentTransactionID)
}

func TestHandle_Conflict(t *testing.T) {
	uc := &fakeUseCase{
		executeFunc: func(context.Context, *bookAppointment.Request) (*bookAppointment.Response, error) {
			return nil, bookAppointment.ErrSlotNotAvailable
		},
	}

	rec := serve(NewHandler(uc, nopLogger{}), body, "901234567V")
	require.Equal(t, http.StatusConflict, rec.Code)

	var resp handlers.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, handlers.CodeSchedulingConflict, resp.Code)
}

func TestHandle_BadInput(t *testing.T) {
	h := NewHandler(&fakeUseCase{}, nopLogger{})

	assert.Equal(t, http.StatusUnauthorized, serve(h, body, "").Code)
	assert.Equal(t, http.StatusBadRequest, serve(h, `{"date":`, "901234567V").Code)
	assert.Equal(t, http.StatusBadRequest, serve(h, strings.Replace(body, "10:00", "10-00", 1), "901234567V").Code)
	assert.Equal(t, http.StatusBadRequest, serve(h, strings.Replace(body, "2026-11-02", "02.11.2026", 1), "901234567V").Code)
}
