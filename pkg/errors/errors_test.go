package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	cause := errors.New("engine exploded")

	tests := []struct {
		name       string
		err        *AppError
		wantCode   string
		wantStatus int
		wantMsg    string
	}{
		{"not found", NotFound("Country"), CodeNotFound, http.StatusNotFound, "Country not found"},
		{"validation", Validation("invalid keystroke payload", nil), CodeValidation, http.StatusUnprocessableEntity, "invalid keystroke payload"},
		{"invalid input", InvalidInput("malformed JSON"), CodeInvalidInput, http.StatusBadRequest, "malformed JSON"},
		{"conflict", Conflict("session exists"), CodeConflict, http.StatusConflict, "session exists"},
		{"internal", Internal("formatting failed", cause), CodeInternal, http.StatusInternalServerError, "formatting failed"},
		{"timeout", Timeout("request timed out"), CodeTimeout, http.StatusGatewayTimeout, "request timed out"},
		{"unavailable", Unavailable("Phone input store"), CodeUnavailable, http.StatusServiceUnavailable, "Phone input store is temporarily unavailable"},
		{"rate limited", RateLimited("slow down"), CodeRateLimited, http.StatusTooManyRequests, "slow down"},
		{"unsupported media", UnsupportedMediaType("json only"), CodeUnsupportedType, http.StatusUnsupportedMediaType, "json only"},
		{"not implemented", NotImplemented("POST /api/demo-request"), CodeNotImplemented, http.StatusNotImplemented, "POST /api/demo-request is not implemented"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, tt.err.Code)
			assert.Equal(t, tt.wantStatus, tt.err.StatusCode())
			assert.Equal(t, tt.wantMsg, tt.err.Message)
		})
	}
}

func TestAppError_Error(t *testing.T) {
	plain := New(CodeNotFound, "country not found", http.StatusNotFound)
	assert.Equal(t, "NOT_FOUND: country not found", plain.Error())

	wrapped := Wrap(errors.New("boom"), CodeInternal, "internal error", http.StatusInternalServerError)
	assert.Equal(t, "INTERNAL_ERROR: internal error (caused by: boom)", wrapped.Error())
}

func TestAppError_UnwrapAndStatusDefault(t *testing.T) {
	cause := errors.New("original")
	appErr := Wrap(cause, CodeInternal, "wrapped", 0)

	assert.ErrorIs(t, appErr, cause)
	assert.Equal(t, http.StatusInternalServerError, appErr.StatusCode())
}

func TestNotFoundWithID(t *testing.T) {
	err := NotFoundWithID("Phone input", "4f1c")

	assert.Equal(t, "Phone input", err.Details["resource"])
	assert.Equal(t, "4f1c", err.Details["id"])
}

func TestAsAppError(t *testing.T) {
	appErr := NotFound("Country")
	assert.Same(t, appErr, AsAppError(appErr))

	nested := fmt.Errorf("handler: %w", appErr)
	assert.True(t, IsAppError(nested))
	assert.Same(t, appErr, AsAppError(nested))

	regular := errors.New("regular error")
	assert.False(t, IsAppError(regular))
	converted := AsAppError(regular)
	assert.Equal(t, CodeInternal, converted.Code)
	assert.Same(t, regular, converted.Err)
}

func TestAppError_ToJSON(t *testing.T) {
	err := Validation("validation failed", map[string]any{"field": "country"})

	data := string(err.ToJSON())
	require.NotEmpty(t, data)
	assert.Contains(t, data, `"code":"VALIDATION_ERROR"`)
	assert.Contains(t, data, `"field":"country"`)
}
