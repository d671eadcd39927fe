package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	httputil "pillziy/pkg/http"
	"pillziy/pkg/logger"
	"pillziy/pkg/phoneinput"
)

type HealthResponse struct {
	Status     string `json:"status"`
	NumberPlan string `json:"number_plan,omitempty"`
}

// HealthHandler reports liveness, and readiness once the numbering-plan
// engine formats a known number.
type HealthHandler struct {
	engine phoneinput.Engine
	log    *logger.Logger
}

func NewHealthHandler(engine phoneinput.Engine, log *logger.Logger) *HealthHandler {
	return &HealthHandler{
		engine: engine,
		log:    log,
	}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := httputil.WriteJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Health", "operation", "WriteJSON", "error", err)
	}
}

func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if _, err := h.engine.Format("2015550123", "US"); err != nil {
		h.log.Error("Numbering plan health check failed",
			"error", err,
			"path", r.URL.Path,
		)
		if writeErr := httputil.WriteJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:     "unavailable",
			NumberPlan: "error",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Ready", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteJSON(w, http.StatusOK, HealthResponse{
		Status:     "ready",
		NumberPlan: "ok",
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Ready", "operation", "WriteJSON", "error", err)
	}
}

func (h *HealthHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)
}
