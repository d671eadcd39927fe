package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"pillziy/internal/phoneinput/service"
	httputil "pillziy/pkg/http"
	"pillziy/pkg/logger"
	"pillziy/pkg/model"
)

type PhoneInputHandler struct {
	service service.PhoneInputService
	log     *logger.Logger
}

func NewPhoneInputHandler(service service.PhoneInputService, log *logger.Logger) *PhoneInputHandler {
	return &PhoneInputHandler{
		service: service,
		log:     log,
	}
}

func (h *PhoneInputHandler) ListCountries(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, err := httputil.ExtractLimit(r)
	if err != nil {
		h.writeError(w, "ListCountries", err)
		return
	}

	countries, total, err := h.service.ListCountries(r.Context(), r.URL.Query().Get("q"), limit)
	if err != nil {
		h.writeError(w, "ListCountries", err)
		return
	}

	if err := httputil.WriteList(w, countries, total, limit); err != nil {
		h.log.Error("failed to write list response", "handler", "ListCountries", "operation", "WriteList", "error", err)
	}
}

func (h *PhoneInputHandler) GetCountry(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	country, err := h.service.GetCountry(r.Context(), ps.ByName("code"))
	if err != nil {
		h.writeError(w, "GetCountry", err)
		return
	}
	h.writeSuccess(w, "GetCountry", country)
}

func (h *PhoneInputHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.CreatePhoneInputRequest
	if err := httputil.DecodeJSON(r, &req, true); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	state, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.writeError(w, "Create", err)
		return
	}

	w.Header().Set("Location", "/api/v1/phone-inputs/"+state.ID)
	if err := httputil.WriteCreated(w, state); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *PhoneInputHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	state, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}
	h.writeSuccess(w, "GetByID", state)
}

func (h *PhoneInputHandler) SelectCountry(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req model.SelectCountryRequest
	if err := httputil.DecodeJSON(r, &req, false); err != nil {
		h.writeError(w, "SelectCountry", err)
		return
	}

	state, err := h.service.SelectCountry(r.Context(), ps.ByName("id"), &req)
	if err != nil {
		h.writeError(w, "SelectCountry", err)
		return
	}
	h.writeSuccess(w, "SelectCountry", state)
}

// ApplyKeystroke answers 200 for rejected keystrokes too; rejection is a
// normal outcome carried in the body.
func (h *PhoneInputHandler) ApplyKeystroke(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req model.KeystrokeRequest
	if err := httputil.DecodeJSON(r, &req, false); err != nil {
		h.writeError(w, "ApplyKeystroke", err)
		return
	}

	result, err := h.service.ApplyKeystroke(r.Context(), ps.ByName("id"), &req)
	if err != nil {
		h.writeError(w, "ApplyKeystroke", err)
		return
	}
	h.writeSuccess(w, "ApplyKeystroke", result)
}

func (h *PhoneInputHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, "Delete", err)
		return
	}
	httputil.WriteNoContent(w)
}

func (h *PhoneInputHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/countries", h.ListCountries)
	router.GET("/api/v1/countries/:code", h.GetCountry)
	router.POST("/api/v1/phone-inputs", h.Create)
	router.GET("/api/v1/phone-inputs/:id", h.GetByID)
	router.PUT("/api/v1/phone-inputs/:id/country", h.SelectCountry)
	router.POST("/api/v1/phone-inputs/:id/keystrokes", h.ApplyKeystroke)
	router.DELETE("/api/v1/phone-inputs/:id", h.Delete)
}

func (h *PhoneInputHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *PhoneInputHandler) writeSuccess(w http.ResponseWriter, handler string, data any) {
	if err := httputil.WriteSuccess(w, data); err != nil {
		h.log.Error("failed to write success response", "handler", handler, "operation", "WriteSuccess", "error", err)
	}
}
