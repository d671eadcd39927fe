package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "pillziy/pkg/errors"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "not found", err: apperrors.NotFoundWithID("Phone input", "abc"), wantStatus: http.StatusNotFound, wantCode: apperrors.CodeNotFound},
		{name: "validation", err: apperrors.Validation("bad", nil), wantStatus: http.StatusUnprocessableEntity, wantCode: apperrors.CodeValidation},
		{name: "not implemented", err: apperrors.NotImplemented("POST /api/early-access"), wantStatus: http.StatusNotImplemented, wantCode: apperrors.CodeNotImplemented},
		{name: "plain error", err: errors.New("boom"), wantStatus: http.StatusInternalServerError, wantCode: apperrors.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			require.NoError(t, WriteError(w, tt.err))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

			var body ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Code)
			assert.NotContains(t, body.Message, "boom")
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Country string `json:"country"`
	}

	tests := []struct {
		name       string
		body       string
		allowEmpty bool
		wantErr    bool
		want       string
	}{
		{name: "valid", body: `{"country":"GB"}`, want: "GB"},
		{name: "empty allowed", body: ``, allowEmpty: true},
		{name: "empty not allowed", body: ``, wantErr: true},
		{name: "unknown field", body: `{"country":"GB","extra":1}`, wantErr: true},
		{name: "two objects", body: `{"country":"GB"}{"country":"DE"}`, wantErr: true},
		{name: "malformed", body: `{"country":`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var p payload
			err := DecodeJSON(r, &p, tt.allowEmpty)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Country)
		})
	}
}

func TestExtractLimit(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?limit=5", nil)
	limit, err := ExtractLimit(r)
	require.NoError(t, err)
	assert.Equal(t, 5, limit)

	r = httptest.NewRequest(http.MethodGet, "/?limit=abc", nil)
	_, err = ExtractLimit(r)
	assert.Error(t, err)
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.0.0.7:5123"
	assert.Equal(t, "10.0.0.7", ClientIP(r))

	r.Header.Set("X-Real-IP", "192.0.2.4")
	assert.Equal(t, "192.0.2.4", ClientIP(r))

	r.Header.Set("X-Forwarded-For", "198.51.100.1, 10.0.0.1")
	assert.Equal(t, "198.51.100.1", ClientIP(r))
}
