package get_available_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AutoService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-AutoService/internal/usecase/get_available_slots"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	got  *getAvailableSlots.Request
	resp *getAvailableSlots.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	f.got = req
	return f.resp, f.err
}

func TestHandle(t *testing.T) {
	uc := &fakeUseCase{resp: &getAvailableSlots.Response{
		DurationMinutes: 30,
		Slots: []domain.Slot{
			{StartTime: "09:00", EndTime: "09:30"},
			{StartTime: "09:15", EndTime: "09:45"},
		},
	}}
	h := NewHandler(uc, nopLogger{})

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet,
		"/api/v1/public/appointment-slots?date=2026-11-02&make=Toyota&model=Axio&service=Oil+Change&service=Wash", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, uc.got)
	assert.Equal(t, []string{"Oil Change", "Wash"}, uc.got.ServiceDescriptions)
	assert.Equal(t, "Toyota", uc.got.VehicleMake)

	var resp AvailableSlotsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Slots, 2)
	assert.Equal(t, SlotResponse{StartTime: "09:15", EndTime: "09:45"}, resp.Slots[1])
}

func TestHandle_Errors(t *testing.T) {
	h := NewHandler(&fakeUseCase{err: getAvailableSlots.ErrInvalidInput}, nopLogger{})

	for url, want := range map[string]int{
		"/api/v1/public/appointment-slots":                       http.StatusBadRequest,
		"/api/v1/public/appointment-slots?date=2026/11/02":       http.StatusBadRequest,
		"/api/v1/public/appointment-slots?date=2026-11-02&make=": http.StatusBadRequest,
	} {
		rec := httptest.NewRecorder()
		h.Handle(rec, httptest.NewRequest(http.MethodGet, url, nil))
		assert.Equal(t, want, rec.Code, url)
	}
}
