package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"parkd/pkg/logger"
)

func testLog() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Format: logger.JSON, Service: "test"})
}

func TestPlateRateLimiter_Allow(t *testing.T) {
	limiter := NewPlateRateLimiter(2, time.Minute, DefaultPlateExtractor, testLog())
	defer limiter.Stop()

	if !limiter.Allow("AB123") || !limiter.Allow("AB123") {
		t.Fatal("expected first two requests allowed")
	}
	if limiter.Allow("AB123") {
		t.Error("expected third request blocked")
	}

	// Other plates have their own window
	if !limiter.Allow("CD456") {
		t.Error("expected different plate allowed")
	}

	// Empty keys are never limited
	for i := 0; i < 10; i++ {
		if !limiter.Allow("") {
			t.Fatal("expected empty key always allowed")
		}
	}
}

func TestPlateRateLimit_Middleware(t *testing.T) {
	limiter := NewPlateRateLimiter(1, time.Minute, DefaultPlateExtractor, testLog())
	defer limiter.Stop()

	handler := PlateRateLimit(limiter)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func() int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/parking/entry", strings.NewReader(`{"plate":"ab-123"}`))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := send(); code != http.StatusOK {
		t.Fatalf("expected first request through, got %d", code)
	}
	if code := send(); code != http.StatusTooManyRequests {
		t.Errorf("expected 429 on second request, got %d", code)
	}
}

func TestDefaultPlateExtractor_RestoresBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"plate":" ka-01 ab 1234 "}`))

	if plate := DefaultPlateExtractor(req); plate != "KA01AB1234" {
		t.Errorf("expected sanitized plate, got %q", plate)
	}

	// A downstream handler must still be able to decode the body
	buf := make([]byte, 64)
	n, _ := req.Body.Read(buf)
	if !strings.Contains(string(buf[:n]), "ka-01") {
		t.Error("expected request body restored after extraction")
	}
}

func TestDefaultPlateExtractor_BadBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`not json`))
	if plate := DefaultPlateExtractor(req); plate != "" {
		t.Errorf("expected empty plate for malformed body, got %q", plate)
	}
}
