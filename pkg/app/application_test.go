package app

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"

	"pillziy/pkg/config"
	"pillziy/pkg/contracts"
	"pillziy/pkg/logger"
	"pillziy/pkg/middleware"
)

type stubHealth struct{}

func (stubHealth) RegisterRoutes(router *httprouter.Router) {
	ok := func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusOK)
	}
	router.GET("/health", ok)
	router.GET("/ready", ok)
}

type stubApp struct{}

func (stubApp) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/echo", func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusAccepted)
	})
	router.GET("/api/v1/panic", func(http.ResponseWriter, *http.Request, httprouter.Params) {
		panic("handler bug")
	})
}

type stopCounter struct{ stopped int }

func (s *stopCounter) Stop() { s.stopped++ }

func testConfig() *config.Config {
	return &config.Config{
		Port:              "8080",
		RateLimitRequests: 4,
		RateLimitWindow:   time.Minute,
		RequestTimeout:    time.Second,
		MaxRequestSize:    64,
		ReadTimeout:       time.Second,
		WriteTimeout:      time.Second,
		IdleTimeout:       time.Second,
		ShutdownTimeout:   time.Second,
		Log:               logger.Discard(),
	}
}

func send(h http.Handler, method, path, body, contentType string) *httptest.ResponseRecorder {
	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	if contentType != "" {
		r.Header.Set("Content-Type", contentType)
	}
	r.RemoteAddr = "192.0.2.10:1000"
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func TestApplication_MiddlewareStack(t *testing.T) {
	worker := &stopCounter{}
	a := NewApplication(testConfig())
	a.SetApp(stubHealth{}, []contracts.Handler{stubApp{}}, worker)
	h := a.Handler()

	w := send(h, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	assert.Equal(t, http.StatusAccepted, send(h, http.MethodPost, "/api/v1/echo", `{}`, "application/json").Code)
	assert.Equal(t, http.StatusUnsupportedMediaType, send(h, http.MethodPost, "/api/v1/echo", `{}`, "text/plain").Code)
	assert.Equal(t, http.StatusRequestEntityTooLarge,
		send(h, http.MethodPost, "/api/v1/echo", `{"padding":"`+strings.Repeat("x", 100)+`"}`, "application/json").Code)
	assert.Equal(t, http.StatusInternalServerError, send(h, http.MethodGet, "/api/v1/panic", "", "").Code)

	// size and content-type rejections happen before the limiter, so two
	// requests have been counted so far
	assert.Equal(t, http.StatusAccepted, send(h, http.MethodPost, "/api/v1/echo", `{}`, "application/json").Code)
	assert.Equal(t, http.StatusAccepted, send(h, http.MethodPost, "/api/v1/echo", `{}`, "application/json").Code)
	assert.Equal(t, http.StatusTooManyRequests, send(h, http.MethodPost, "/api/v1/echo", `{}`, "application/json").Code)
	assert.Equal(t, http.StatusOK, send(h, http.MethodGet, "/ready", "", "").Code, "health is not rate limited")

	a.gracefulShutdown()
	assert.Equal(t, 1, worker.stopped)
}
