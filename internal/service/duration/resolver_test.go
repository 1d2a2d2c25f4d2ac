package duration

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AutoService/internal/domain"
	servicefeeRepo "github.com/m04kA/SMC-AutoService/internal/infra/storage/servicefee"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeFeeRepo struct {
	fees  map[string]*domain.ServiceFee // ключ: description|make|model
	err   error
	calls int
}

func (f *fakeFeeRepo) GetByDescription(_ context.Context, description, vehicleMake, vehicleModel string) (*domain.ServiceFee, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	fee, ok := f.fees[description+"|"+vehicleMake+"|"+vehicleModel]
	if !ok {
		return nil, servicefeeRepo.ErrServiceFeeNotFound
	}
	return fee, nil
}

func (f *fakeFeeRepo) ListByModel(_ context.Context, vehicleMake, vehicleModel string) ([]*domain.ServiceFee, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*domain.ServiceFee, 0)
	for _, fee := range f.fees {
		if fee.Make == vehicleMake && fee.Model == vehicleModel {
			out = append(out, fee)
		}
	}
	return out, nil
}

func newCatalog() *fakeFeeRepo {
	return &fakeFeeRepo{fees: map[string]*domain.ServiceFee{
		"Oil Change|Toyota|Axio": {
			ID: 1, Description: "Oil Change", Make: "Toyota", Model: "Axio",
			Fee: decimal.RequireFromString("4500.00"), DurationMinutes: 30,
		},
		"Body Wash|Toyota|Axio": {
			ID: 2, Description: "Body Wash", Make: "Toyota", Model: "Axio",
			Fee: decimal.RequireFromString("2000.50"), DurationMinutes: 45,
		},
		"Oil Change|Honda|Fit": {
			ID: 3, Description: "Oil Change", Make: "Honda", Model: "Fit",
			Fee: decimal.RequireFromString("4000"), DurationMinutes: 20,
		},
	}}
}

func TestTotalDuration_SumsSelectedServices(t *testing.T) {
	r := NewResolver(newCatalog(), nopLogger{})

	total, err := r.TotalDuration(context.Background(), "Toyota", "Axio", []string{"Oil Change", "Body Wash"})
	require.NoError(t, err)
	assert.Equal(t, 75, total)
}

func TestTotalDuration_DuplicatesCountedTwice(t *testing.T) {
	r := NewResolver(newCatalog(), nopLogger{})

	total, err := r.TotalDuration(context.Background(), "Toyota", "Axio", []string{"Oil Change", "Oil Change"})
	require.NoError(t, err)
	assert.Equal(t, 60, total)
}

func TestTotalDuration_ScopedToModel(t *testing.T) {
	r := NewResolver(newCatalog(), nopLogger{})

	total, err := r.TotalDuration(context.Background(), "Honda", "Fit", []string{"Oil Change"})
	require.NoError(t, err)
	assert.Equal(t, 20, total)

	_, err = r.TotalDuration(context.Background(), "Honda", "Fit", []string{"Body Wash"})
	require.ErrorIs(t, err, ErrServiceNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTotalDuration_EmptySelection(t *testing.T) {
	repo := newCatalog()
	r := NewResolver(repo, nopLogger{})

	_, err := r.TotalDuration(context.Background(), "Toyota", "Axio", nil)
	require.ErrorIs(t, err, ErrNoServicesSelected)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Zero(t, repo.calls)

	_, err = r.TotalDuration(context.Background(), "Toyota", "Axio", []string{"  "})
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestTotalDuration_RequiresModel(t *testing.T) {
	r := NewResolver(newCatalog(), nopLogger{})

	_, err := r.TotalDuration(context.Background(), "", "Axio", []string{"Oil Change"})
	require.ErrorIs(t, err, ErrVehicleModelRequired)
}

func TestTotalDuration_RepositoryFailure(t *testing.T) {
	repo := newCatalog()
	repo.err = errors.New("connection refused")
	r := NewResolver(repo, nopLogger{})

	_, err := r.TotalDuration(context.Background(), "Toyota", "Axio", []string{"Oil Change"})
	require.ErrorIs(t, err, ErrInternal)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

func TestQuote_SumsFees(t *testing.T) {
	r := NewResolver(newCatalog(), nopLogger{})

	quote, err := r.Quote(context.Background(), "Toyota", "Axio", []string{"Oil Change", "Body Wash"})
	require.NoError(t, err)
	assert.Equal(t, 75, quote.TotalDurationMinutes)
	assert.True(t, decimal.RequireFromString("6500.50").Equal(quote.TotalFee))
	require.Len(t, quote.Items, 2)
	assert.Equal(t, "Oil Change", quote.Items[0].Description)
}

func TestCatalog(t *testing.T) {
	r := NewResolver(newCatalog(), nopLogger{})

	fees, err := r.Catalog(context.Background(), "Toyota", "Axio")
	require.NoError(t, err)
	assert.Len(t, fees, 2)
}
