package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorError(t *testing.T) {
	err := New(CodeDomainError, "listing", "Something went wrong", http.StatusBadRequest)
	assert.Equal(t, "[listing:DOMAIN_ERROR] Something went wrong", err.Error())

	cause := errors.New("connection reset")
	wrapped := Wrap(cause, CodeDBUnavailable, "infrastructure", "Database is unavailable", http.StatusServiceUnavailable)
	assert.Contains(t, wrapped.Error(), "connection reset")
	assert.ErrorIs(t, wrapped, cause)
}

func TestAsAppError(t *testing.T) {
	appErr := ErrAccountNotFound(map[string]uint{"id": 7})

	got, ok := AsAppError(fmt.Errorf("outer: %w", appErr))
	require.True(t, ok)
	assert.Equal(t, CodeAccountNotFound, got.Code)
	assert.Equal(t, http.StatusNotFound, got.HTTPCode)

	_, ok = AsAppError(errors.New("plain"))
	assert.False(t, ok)
}

func TestFactoriesCarryHTTPCodes(t *testing.T) {
	cases := []struct {
		err      *AppError
		code     ErrorCode
		httpCode int
	}{
		{InternalError(errors.New("boom")), CodeAppError, http.StatusInternalServerError},
		{ValidationError(map[string]string{"title": "required"}), CodeValidationError, http.StatusUnprocessableEntity},
		{NewUnauthorizedError("no token"), CodeUnauthorized, http.StatusUnauthorized},
		{ErrDatabaseUnavailable(errors.New("refused")), CodeDBUnavailable, http.StatusServiceUnavailable},
		{ErrDatabaseQuery(errors.New("syntax"), "accounts.find"), CodeDBQueryError, http.StatusInternalServerError},
		{ErrAccountAlreadyExists("a@umanitoba.ca"), CodeAccountAlreadyExists, http.StatusConflict},
		{ErrInvalidCredentials, CodeInvalidCredentials, http.StatusUnauthorized},
		{ErrTokenNotFound, CodeTokenNotFound, http.StatusNotFound},
		{ErrTokenExpired, CodeTokenExpired, http.StatusBadRequest},
		{ErrTokenAlreadyUsed, CodeTokenAlreadyUsed, http.StatusBadRequest},
		{ErrUnapprovedBehavior("listing", "cannot buy own listing"), CodeUnapprovedBehavior, http.StatusForbidden},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.code, tc.err.Code)
		assert.Equal(t, tc.httpCode, tc.err.HTTPCode, "code %s", tc.code)
	}
}

func TestInternalErrorHidesCause(t *testing.T) {
	err := InternalError(errors.New("pq: column does not exist"))
	assert.Equal(t, "Internal server error", err.Message)
	assert.NotContains(t, err.Message, "pq:")
}
