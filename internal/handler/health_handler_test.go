package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHealthHandler_Healthy(t *testing.T) {
	h := NewHealthHandler(&stubHealthChecker{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	h.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}

	result := decodeJSONBody(t, w)
	if result["status"] != "ok" {
		t.Errorf("status field = %v, want %q", result["status"], "ok")
	}
}

func TestHealthHandler_DBDown_ReturnsServiceUnavailable(t *testing.T) {
	h := NewHealthHandler(&stubHealthChecker{err: errors.New("connection refused")})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	h.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want %d", w.Code, http.StatusServiceUnavailable)
	}

	result := decodeJSONBody(t, w)
	if result["status"] != "unhealthy" {
		t.Errorf("status field = %v, want %q", result["status"], "unhealthy")
	}
}
