package httpserver_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	server "hotel_reservation/internal/adapters/http_server"
)

func TestTimeout_PlainText503(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	slow := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	})

	rr := httptest.NewRecorder()
	server.Timeout(10*time.Millisecond)(slow).ServeHTTP(rr, httptest.NewRequest("GET", "/v1/hotels", nil))

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rr.Code)
	}
	body, _ := io.ReadAll(rr.Body)
	if string(body) != "request timed out" {
		t.Fatalf("unexpected body %q", body)
	}
	if ct := rr.Header().Get("Content-Type"); strings.Contains(ct, "json") {
		t.Fatalf("timeout body must not claim JSON, got %q", ct)
	}
}
