package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pillziy/internal/leads/validator"
	apperrors "pillziy/pkg/errors"
	"pillziy/pkg/logger"
)

func TestLeadRoutes(t *testing.T) {
	log := logger.Discard()
	router := httprouter.New()
	NewLeadHandler(validator.NewLeadValidator(log), log).RegisterRoutes(router)

	tests := []struct {
		name       string
		route      string
		body       string
		wantStatus int
		wantCode   string
	}{
		{name: "early access valid", route: RouteEarlyAccess, body: `{"email":" Ops@Clinic.org "}`, wantStatus: http.StatusNotImplemented, wantCode: apperrors.CodeNotImplemented},
		{name: "early access with name", route: RouteEarlyAccess, body: `{"email":"ops@clinic.org","name":"Ops"}`, wantStatus: http.StatusNotImplemented, wantCode: apperrors.CodeNotImplemented},
		{name: "early access missing email", route: RouteEarlyAccess, body: `{"name":"Ops"}`, wantStatus: http.StatusUnprocessableEntity, wantCode: apperrors.CodeValidation},
		{name: "early access bad email", route: RouteEarlyAccess, body: `{"email":"ops"}`, wantStatus: http.StatusUnprocessableEntity, wantCode: apperrors.CodeValidation},
		{name: "demo valid", route: RouteDemoRequest, body: `{"name":"Jane","email":"jane@pharmacy.com","company":"Acme","message":"Hi"}`, wantStatus: http.StatusNotImplemented, wantCode: apperrors.CodeNotImplemented},
		{name: "demo blank name", route: RouteDemoRequest, body: `{"name":"   ","email":"jane@pharmacy.com"}`, wantStatus: http.StatusUnprocessableEntity, wantCode: apperrors.CodeValidation},
		{name: "investor valid", route: RouteInvestorRequest, body: `{"name":"Ari","email":"ari@fund.vc"}`, wantStatus: http.StatusNotImplemented, wantCode: apperrors.CodeNotImplemented},
		{name: "investor missing name", route: RouteInvestorRequest, body: `{"email":"ari@fund.vc"}`, wantStatus: http.StatusUnprocessableEntity, wantCode: apperrors.CodeValidation},
		{name: "unknown field", route: RouteDemoRequest, body: `{"name":"Jane","email":"jane@pharmacy.com","phone":"1"}`, wantStatus: http.StatusBadRequest, wantCode: apperrors.CodeInvalidInput},
		{name: "malformed", route: RouteInvestorRequest, body: `{`, wantStatus: http.StatusBadRequest, wantCode: apperrors.CodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, tt.route, strings.NewReader(tt.body))
			r.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, r)

			assert.Equal(t, tt.wantStatus, w.Code)
			var resp apperrors.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantCode, resp.Code)
		})
	}
}
