package handler

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"pillziy/internal/leads/validator"
	apperrors "pillziy/pkg/errors"
	httputil "pillziy/pkg/http"
	"pillziy/pkg/logger"
	"pillziy/pkg/model"
	"pillziy/pkg/sanitizer"
)

const (
	RouteEarlyAccess     = "/api/early-access"
	RouteDemoRequest     = "/api/demo-request"
	RouteInvestorRequest = "/api/investor-request"
)

// LeadHandler serves the lead routes the marketing site posts to. Payloads
// are validated, but there is no backing service, so valid requests are
// answered with NOT_IMPLEMENTED.
type LeadHandler struct {
	validator *validator.LeadValidator
	log       *logger.Logger
}

func NewLeadHandler(validator *validator.LeadValidator, log *logger.Logger) *LeadHandler {
	return &LeadHandler{
		validator: validator,
		log:       log,
	}
}

func (h *LeadHandler) EarlyAccess(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.EarlyAccessRequest
	if !h.decode(w, r, "EarlyAccess", &req) {
		return
	}
	req.Email = sanitizer.NormalizeEmail(req.Email)
	req.Name = sanitizer.NormalizeName(req.Name)

	h.respond(w, "EarlyAccess", http.MethodPost+" "+RouteEarlyAccess, &req)
}

func (h *LeadHandler) DemoRequest(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.DemoRequest
	if !h.decode(w, r, "DemoRequest", &req) {
		return
	}
	normalizeContactRequest(&req)

	h.respond(w, "DemoRequest", http.MethodPost+" "+RouteDemoRequest, &req)
}

func (h *LeadHandler) InvestorRequest(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.InvestorRequest
	if !h.decode(w, r, "InvestorRequest", &req) {
		return
	}
	normalizeContactRequest((*model.DemoRequest)(&req))

	h.respond(w, "InvestorRequest", http.MethodPost+" "+RouteInvestorRequest, &req)
}

func (h *LeadHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST(RouteEarlyAccess, h.EarlyAccess)
	router.POST(RouteDemoRequest, h.DemoRequest)
	router.POST(RouteInvestorRequest, h.InvestorRequest)
}

func (h *LeadHandler) decode(w http.ResponseWriter, r *http.Request, handler string, dst any) bool {
	if err := httputil.DecodeJSON(r, dst, false); err != nil {
		h.writeError(w, handler, err)
		return false
	}
	return true
}

func (h *LeadHandler) respond(w http.ResponseWriter, handler, route string, req any) {
	if err := h.validator.Validate(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			h.writeError(w, handler, apperrors.Validation("Request validation failed", map[string]any{
				"errors": []validator.ValidationError(verrs),
			}))
			return
		}
		h.writeError(w, handler, apperrors.InvalidInput(err.Error()))
		return
	}

	h.log.Info("Lead received without a backing service", "route", route)
	h.writeError(w, handler, apperrors.NotImplemented(route))
}

func (h *LeadHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func normalizeContactRequest(req *model.DemoRequest) {
	req.Name = sanitizer.NormalizeName(req.Name)
	req.Email = sanitizer.NormalizeEmail(req.Email)
	req.Company = sanitizer.NormalizeName(req.Company)
	req.Message = sanitizer.NormalizeMessage(req.Message)
}
