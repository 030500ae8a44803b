package httpserver_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	server "hotel_reservation/internal/adapters/http_server"
	"hotel_reservation/internal/app"
	"hotel_reservation/internal/domain"
	mysqlrepo "hotel_reservation/internal/storage/mysql"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: mysqlrepo.NewLogger()})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	st := mysqlrepo.New(db)
	if err := st.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	srv := server.New()
	srv.MountHandlers(&server.Handlers{Hotels: app.NewHotelService(st, nil, time.Minute)})
	ts := httptest.NewServer(srv.Mux())
	t.Cleanup(ts.Close)
	return ts
}

func do(t *testing.T, method, url, body string, hdr ...string) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, rd)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	for i := 0; i+1 < len(hdr); i += 2 {
		req.Header.Set(hdr[i], hdr[i+1])
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	t.Cleanup(func() { res.Body.Close() })
	return res
}

func decodeBody[T any](t *testing.T, res *http.Response) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(res.Body).Decode(&v); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return v
}

func TestHotelRoutes_Lifecycle(t *testing.T) {
	ts := newTestServer(t)

	res := do(t, "POST", ts.URL+"/v1/hotels",
		`{"name":"Plaza Hotel","phone":"123","address":"X","images":[{"url":"a.jpg"},{"url":"b.jpg"}]}`)
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("create status %d", res.StatusCode)
	}
	created := decodeBody[domain.HotelDto](t, res)
	if created.Idx == 0 || len(created.Images) != 2 {
		t.Fatalf("unexpected created hotel: %+v", created)
	}
	if loc := res.Header.Get("Location"); !strings.HasSuffix(loc, "/v1/hotels/1") {
		t.Fatalf("unexpected Location %q", loc)
	}
	do(t, "POST", ts.URL+"/v1/hotels", `{"name":"Seaside Inn","phone":"9","address":"Y"}`)

	// single read with ETag round trip
	res = do(t, "GET", ts.URL+"/v1/hotels/1", "")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("get status %d", res.StatusCode)
	}
	etag := res.Header.Get("ETag")
	got := decodeBody[domain.HotelDto](t, res)
	if got.Name != "Plaza Hotel" || len(got.Images) != 2 || etag == "" {
		t.Fatalf("unexpected hotel %+v etag=%q", got, etag)
	}
	if res = do(t, "GET", ts.URL+"/v1/hotels/1", "", "If-None-Match", etag); res.StatusCode != http.StatusNotModified {
		t.Fatalf("expected 304, got %d", res.StatusCode)
	}

	// name search and list
	list := decodeBody[[]domain.HotelDto](t, do(t, "GET", ts.URL+"/v1/hotels?name=Plaza", ""))
	if len(list) != 1 || list[0].Idx != 1 {
		t.Fatalf("unexpected search result %+v", list)
	}
	list = decodeBody[[]domain.HotelDto](t, do(t, "GET", ts.URL+"/v1/hotels", ""))
	if len(list) != 2 {
		t.Fatalf("expected 2 hotels, got %d", len(list))
	}

	// partial update
	res = do(t, "PATCH", ts.URL+"/v1/hotels/1", `{"description":"sea view"}`)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("patch status %d", res.StatusCode)
	}
	got = decodeBody[domain.HotelDto](t, res)
	if got.Description != "sea view" || got.Name != "Plaza Hotel" || got.Phone != "123" {
		t.Fatalf("unexpected patched hotel %+v", got)
	}

	// remove, then remove again
	if res = do(t, "DELETE", ts.URL+"/v1/hotels/1", ""); res.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status %d", res.StatusCode)
	}
	if res = do(t, "GET", ts.URL+"/v1/hotels/1", ""); res.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", res.StatusCode)
	}
	if res = do(t, "DELETE", ts.URL+"/v1/hotels/1", ""); res.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", res.StatusCode)
	}
}

func TestAdminDelete_StatusBody(t *testing.T) {
	ts := newTestServer(t)
	do(t, "POST", ts.URL+"/v1/hotels", `{"name":"A","phone":"1","address":"X"}`)

	for _, want := range []string{"success", "fail"} {
		res := do(t, "DELETE", ts.URL+"/v1/admin/hotels/1", "")
		b, _ := io.ReadAll(res.Body)
		if res.StatusCode != http.StatusOK || string(b) != want {
			t.Fatalf("expected 200 %q, got %d %q", want, res.StatusCode, b)
		}
	}
}

func TestHotelRoutes_Errors(t *testing.T) {
	ts := newTestServer(t)

	cases := []struct {
		method, path, body string
		status             int
	}{
		{"POST", "/v1/hotels", `{"phone":"1","address":"X"}`, http.StatusBadRequest},
		{"POST", "/v1/hotels", `{not json`, http.StatusBadRequest},
		{"GET", "/v1/hotels/abc", "", http.StatusBadRequest},
		{"GET", "/v1/hotels/42", "", http.StatusNotFound},
		{"PATCH", "/v1/hotels/42", `{"name":"x"}`, http.StatusNotFound},
	}
	for _, tc := range cases {
		res := do(t, tc.method, ts.URL+tc.path, tc.body)
		if res.StatusCode != tc.status {
			t.Fatalf("%s %s: expected %d, got %d", tc.method, tc.path, tc.status, res.StatusCode)
		}
		if ct := res.Header.Get("Content-Type"); ct != "application/problem+json" {
			t.Fatalf("%s %s: unexpected content type %q", tc.method, tc.path, ct)
		}
	}
}
