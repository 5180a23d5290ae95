package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
)

type panickingVenueHandler struct {
	MockVenueHandler
}

func (h *panickingVenueHandler) Ping(w http.ResponseWriter, r *http.Request) {
	panic("boom")
}

func newTestServer(venueHandler IVenueHandler) http.Handler {
	muxRouter := mux.NewRouter()
	router := NewRouter(venueHandler, &MockAccountHandler{}, muxRouter)
	return NewHolidazeHttpServer(router, muxRouter, ":0", time.Second).Handler()
}

func TestHolidazeHttpServer_Handler(t *testing.T) {
	h := newTestServer(&MockVenueHandler{})

	tests := []struct {
		name       string
		method     string
		path       string
		statusCode int
	}{
		{"Route", "GET", "/v1/venues/v1", http.StatusOK},
		{"Wrong Method", "PATCH", "/v1/venues/v1", http.StatusMethodNotAllowed},
		{"Unknown Route", "GET", "/v2/venues", http.StatusNotFound},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, httptest.NewRequest(test.method, test.path, nil))
			assert.Equal(t, test.statusCode, rr.Code)
		})
	}
}

func TestHolidazeHttpServer_RecoversFromPanics(t *testing.T) {
	h := newTestServer(&panickingVenueHandler{})

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/ping", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
