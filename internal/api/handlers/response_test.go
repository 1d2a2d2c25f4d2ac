package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AutoService/internal/domain"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{fmt.Errorf("x: %w", domain.ErrValidation), http.StatusBadRequest, CodeValidation},
		{fmt.Errorf("x: %w", domain.ErrSchedulingConflict), http.StatusConflict, CodeSchedulingConflict},
		{fmt.Errorf("x: %w", domain.ErrNotFound), http.StatusNotFound, CodeNotFound},
		{fmt.Errorf("x: %w", domain.ErrAlreadyExists), http.StatusConflict, CodeAlreadyExists},
		{fmt.Errorf("x: %w", domain.ErrInvalidTransition), http.StatusConflict, CodeInvalidTransition},
		{errors.New("db down"), http.StatusInternalServerError, CodeInternal},
	}
	for _, tc := range cases {
		status, code := StatusFor(tc.err)
		assert.Equal(t, tc.status, status, tc.err.Error())
		assert.Equal(t, tc.code, code, tc.err.Error())
	}
}

func TestRespondDomainError_HidesInternalDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	status := RespondDomainError(rec, errors.New("pq: password authentication failed"))
	require.Equal(t, http.StatusInternalServerError, status)

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, CodeInternal, body.Code)
	assert.NotContains(t, body.Message, "pq")
}

func TestRespondDomainError_Conflict(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondDomainError(rec, fmt.Errorf("book_appointment: slot no longer available: %w", domain.ErrSchedulingConflict))

	assert.Equal(t, http.StatusConflict, rec.Code)
	var body ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, CodeSchedulingConflict, body.Code)
	assert.Contains(t, body.Message, "slot no longer available")
}

func TestDecodeJSON_RejectsUnknownFields(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a"}`))
	require.NoError(t, DecodeJSON(r, &dst))
	assert.Equal(t, "a", dst.Name)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a","extra":1}`))
	assert.Error(t, DecodeJSON(r, &dst))
}
